package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"brokerage/internal/adapters/out/memory"
	"brokerage/internal/core/application/usecases/commands"
	"brokerage/internal/core/domain/model/assignment"
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/core/domain/services"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/keylock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type requestUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (x requestUoWFactory) Create() commands.RequestUoW { return x.f.Create() }

type resourceUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (x resourceUoWFactory) Create() commands.ResourceUoW { return x.f.Create() }

type uowFactory struct{ f *memory.UnitOfWorkFactory }

func (x uowFactory) Create() commands.UoW { return x.f.Create() }

type recordingPublisher struct {
	mu     sync.Mutex
	events []request.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events []request.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

// LifecycleScenarioSuite drives the handlers end to end against the memory store.
type LifecycleScenarioSuite struct {
	suite.Suite
	store     *memory.Store
	publisher *recordingPublisher

	create     commands.CreateRequestCommandHandler
	submit     commands.SubmitOfferCommandHandler
	selectOne  commands.SelectOfferCommandHandler
	rejectOne  commands.RejectOfferCommandHandler
	decline    commands.RejectRequestCommandHandler
	transition commands.TransitionCommandHandler
	warehouse  commands.AssignWarehouseCommandHandler
	assign     commands.CreateAssignmentCommandHandler
	resources  commands.ResourceCommandHandler

	operator audit.Actor
}

func TestLifecycleScenarioSuite(t *testing.T) {
	suite.Run(t, new(LifecycleScenarioSuite))
}

func (s *LifecycleScenarioSuite) SetupTest() {
	s.store = memory.NewStore()
	s.publisher = &recordingPublisher{}
	f := memory.NewUnitOfWorkFactory(s.store)
	deps := commands.Deps{Locker: keylock.New[kernel.UUID](), Publisher: s.publisher, Clock: clock}

	s.create = commands.NewCreateRequestCommandHandler(requestUoWFactory{f}, deps)
	s.submit = commands.NewSubmitOfferCommandHandler(requestUoWFactory{f}, deps)
	s.selectOne = commands.NewSelectOfferCommandHandler(requestUoWFactory{f}, deps)
	s.rejectOne = commands.NewRejectOfferCommandHandler(requestUoWFactory{f}, deps)
	s.decline = commands.NewRejectRequestCommandHandler(requestUoWFactory{f}, deps)
	s.transition = commands.NewTransitionCommandHandler(uowFactory{f}, deps)
	s.warehouse = commands.NewAssignWarehouseCommandHandler(uowFactory{f}, deps)
	s.assign = commands.NewCreateAssignmentCommandHandler(uowFactory{f}, services.NewResourceMatcher(), deps)
	s.resources = commands.NewResourceCommandHandler(resourceUoWFactory{f}, deps)

	var err error
	s.operator, err = audit.NewActor(kernel.NewUUID(), audit.RoleOperator)
	s.Require().NoError(err)
}

func (s *LifecycleScenarioSuite) endpoint(c kernel.Country, mode request.PickupMode) request.Endpoint {
	addr, err := kernel.NewAddress(c, "City", "", "")
	s.Require().NoError(err)
	ep, err := request.NewEndpoint(addr, mode)
	s.Require().NoError(err)
	return ep
}

func (s *LifecycleScenarioSuite) createRequest(sourceMode request.PickupMode) kernel.UUID {
	dims, err := request.NewDimensions(decimal.NewFromInt(30), decimal.NewFromInt(30), decimal.NewFromInt(30))
	s.Require().NoError(err)
	item, err := request.NewItem(decimal.NewFromInt(5), dims, "electronics", 1)
	s.Require().NoError(err)

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(id, kernel.NewUUID(),
		s.endpoint(egypt, sourceMode), s.endpoint(jordan, request.PickupDelegate),
		[]request.Item{item}, request.DeliveryKindFast)
	s.Require().NoError(err)
	s.Require().NoError(s.create.Handle(s.T().Context(), cmd))
	return id
}

func (s *LifecycleScenarioSuite) submitOffer(requestID, companyID kernel.UUID, cost int64) kernel.UUID {
	offerID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOfferCommand(requestID, offerID, companyID, kernel.MustMoney(cost), "")
	s.Require().NoError(err)
	s.Require().NoError(s.submit.Handle(s.T().Context(), cmd))
	return offerID
}

func (s *LifecycleScenarioSuite) accept(requestID kernel.UUID) kernel.UUID {
	company := kernel.NewUUID()
	offerID := s.submitOffer(requestID, company, 100)
	cmd, err := commands.NewSelectOfferCommand(requestID, offerID, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.selectOne.Handle(s.T().Context(), cmd))
	return company
}

func (s *LifecycleScenarioSuite) addDriver(c kernel.Country) kernel.UUID {
	addr, err := kernel.NewAddress(c, "City", "", "")
	s.Require().NoError(err)
	id := kernel.NewUUID()
	cmd, err := commands.NewAddDriverCommand(id, "Driver", []kernel.Address{addr}, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.AddDriver(s.T().Context(), cmd))
	return id
}

func (s *LifecycleScenarioSuite) addVehicle(c kernel.Country) kernel.UUID {
	id := kernel.NewUUID()
	cmd, err := commands.NewAddVehicleCommand(id, "V-"+id.String()[:4], c, nil, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.AddVehicle(s.T().Context(), cmd))
	return id
}

func (s *LifecycleScenarioSuite) vehicleStatus(id kernel.UUID) resource.VehicleStatus {
	v, err := memory.NewUnitOfWork(s.store).VehicleRepository().Get(s.T().Context(), id)
	s.Require().NoError(err)
	return v.Status()
}

func (s *LifecycleScenarioSuite) auditActions() []audit.Action {
	entries, err := s.store.AuditLog(s.T().Context(), audit.Filter{})
	s.Require().NoError(err)
	out := make([]audit.Action, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Action())
	}
	return out
}

func (s *LifecycleScenarioSuite) TestCheapestOfferSelection() {
	ctx := s.T().Context()
	id := s.createRequest(request.PickupDelegate)

	companies := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	s.submitOffer(id, companies[0], 100)
	s.submitOffer(id, companies[1], 120)
	cheapest := s.submitOffer(id, companies[2], 90)

	cmd, err := commands.NewSelectOfferCommand(id, cheapest, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.selectOne.Handle(ctx, cmd))

	req, err := s.store.GetRequest(ctx, id)
	s.Require().NoError(err)
	s.Equal(request.CommercialAccepted, req.CommercialStatus())
	s.Require().NotNil(req.PrimaryCost())
	s.True(req.PrimaryCost().IsEqual(kernel.MustMoney(90)))
	s.Equal(companies[2], *req.AssignedCompanyID())
	s.Equal(1, countOffers(req, request.OfferAccepted))
	s.Equal(2, countOffers(req, request.OfferPending))
	s.NoError(req.VerifyHistory())

	s.Contains(s.auditActions(), audit.ActionCostSet)
	s.Contains(s.auditActions(), audit.CommercialAction(request.CommercialAccepted))

	second, err := commands.NewSelectOfferCommand(id, req.CostOffers()[0].ID(), s.operator)
	s.Require().NoError(err)
	s.ErrorIs(s.selectOne.Handle(ctx, second), request.ErrRequestNotOpen)
}

func (s *LifecycleScenarioSuite) TestOfferLimitPerCompany() {
	id := s.createRequest(request.PickupDelegate)
	company := kernel.NewUUID()
	first := s.submitOffer(id, company, 10)
	s.submitOffer(id, company, 11)
	s.submitOffer(id, company, 12)

	fourth, err := commands.NewSubmitOfferCommand(id, kernel.NewUUID(), company, kernel.MustMoney(13), "")
	s.Require().NoError(err)
	s.ErrorIs(s.submit.Handle(s.T().Context(), fourth), request.ErrOfferLimitExceeded)

	reject, err := commands.NewRejectOfferCommand(id, first, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.rejectOne.Handle(s.T().Context(), reject))
	s.NoError(s.submit.Handle(s.T().Context(), fourth))
}

func (s *LifecycleScenarioSuite) TestWarehouseGate() {
	ctx := s.T().Context()
	id := s.createRequest(request.PickupSelf)
	company := s.accept(id)

	move, err := commands.NewTransitionDeliveryCommand(id, request.DeliveryPickedUpSource, s.operator)
	s.Require().NoError(err)
	s.ErrorIs(s.transition.HandleDelivery(ctx, move), request.ErrWarehouseRequired)

	addr, err := kernel.NewAddress(egypt, "Giza", "", "")
	s.Require().NoError(err)
	warehouseID := kernel.NewUUID()
	addWH, err := commands.NewAddWarehouseCommand(warehouseID, company, "W1", addr, 10, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.AddWarehouse(ctx, addWH))

	bind, err := commands.NewAssignWarehouseCommand(id, company, warehouseID, request.SideSource)
	s.Require().NoError(err)
	s.Require().NoError(s.warehouse.Handle(ctx, bind))
	s.ErrorIs(s.warehouse.Handle(ctx, bind), request.ErrAlreadyAssigned)

	s.Require().NoError(s.transition.HandleDelivery(ctx, move))

	req, err := s.store.GetRequest(ctx, id)
	s.Require().NoError(err)
	s.Equal(request.DeliveryPickedUpSource, req.DeliveryStatus())
	s.Equal(warehouseID, *req.Source().WarehouseID())
	s.Equal(warehouseID, *req.AssignedWarehouseID())
	s.NoError(req.VerifyHistory())
}

func (s *LifecycleScenarioSuite) TestAssignmentReusesVehicle() {
	ctx := s.T().Context()
	first := s.createRequest(request.PickupDelegate)
	second := s.createRequest(request.PickupDelegate)
	s.accept(first)
	s.accept(second)
	driver := s.addDriver(egypt)
	vehicle := s.addVehicle(egypt)

	cmd, err := commands.NewCreateAssignmentCommand(first, kernel.NewUUID(), driver, vehicle, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.assign.Handle(ctx, cmd))
	s.Equal(resource.VehicleInUse, s.vehicleStatus(vehicle))

	again, err := commands.NewCreateAssignmentCommand(second, kernel.NewUUID(), driver, vehicle, s.operator)
	s.Require().NoError(err)
	s.ErrorIs(s.assign.Handle(ctx, again), resource.ErrVehicleUnavailable)

	req, err := s.store.GetRequest(ctx, second)
	s.Require().NoError(err)
	s.Nil(req.AssignmentID())
}

func (s *LifecycleScenarioSuite) TestConcurrentAssignmentOfOneVehicle() {
	ctx := s.T().Context()
	first := s.createRequest(request.PickupDelegate)
	second := s.createRequest(request.PickupDelegate)
	s.accept(first)
	s.accept(second)
	driver := s.addDriver(egypt)
	vehicle := s.addVehicle(egypt)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i, requestID := range []kernel.UUID{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewCreateAssignmentCommand(requestID, kernel.NewUUID(), driver, vehicle, s.operator)
			if err != nil {
				results[i] = err
				return
			}
			results[i] = s.assign.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	succeeded, unavailable := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, resource.ErrVehicleUnavailable):
			unavailable++
		}
	}
	s.Equal(1, succeeded)
	s.Equal(1, unavailable)
}

func (s *LifecycleScenarioSuite) TestClosingReleasesVehicle() {
	ctx := s.T().Context()
	id := s.createRequest(request.PickupDelegate)
	s.accept(id)
	driver := s.addDriver(egypt)
	vehicle := s.addVehicle(egypt)

	cmd, err := commands.NewCreateAssignmentCommand(id, kernel.NewUUID(), driver, vehicle, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.assign.Handle(ctx, cmd))

	cancel, err := commands.NewTransitionDeliveryCommand(id, request.DeliveryCancelled, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.transition.HandleDelivery(ctx, cancel))

	s.Equal(resource.VehicleAvailable, s.vehicleStatus(vehicle))
	a, err := memory.NewUnitOfWork(s.store).AssignmentRepository().GetByRequest(ctx, id)
	s.Require().NoError(err)
	s.Equal(assignment.StatusCancelled, a.Status())
	s.Contains(s.auditActions(), audit.ActionVehicleReleased)
	s.Contains(s.auditActions(), audit.DeliveryAction(request.DeliveryCancelled))
}

func (s *LifecycleScenarioSuite) moveCommercial(requestID kernel.UUID, targets ...request.CommercialStatus) {
	for _, target := range targets {
		cmd, err := commands.NewTransitionCommercialCommand(requestID, target, s.operator)
		s.Require().NoError(err)
		s.Require().NoError(s.transition.HandleCommercial(s.T().Context(), cmd), target.String())
	}
}

func (s *LifecycleScenarioSuite) moveDelivery(requestID kernel.UUID, targets ...request.DeliveryStatus) {
	for _, target := range targets {
		cmd, err := commands.NewTransitionDeliveryCommand(requestID, target, s.operator)
		s.Require().NoError(err)
		s.Require().NoError(s.transition.HandleDelivery(s.T().Context(), cmd), target.String())
	}
}

func (s *LifecycleScenarioSuite) TestCommercialCompletionKeepsVehicleOnTheRoad() {
	ctx := s.T().Context()
	first := s.createRequest(request.PickupDelegate)
	second := s.createRequest(request.PickupDelegate)
	s.accept(first)
	s.accept(second)
	driver := s.addDriver(egypt)
	vehicle := s.addVehicle(egypt)

	cmd, err := commands.NewCreateAssignmentCommand(first, kernel.NewUUID(), driver, vehicle, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.assign.Handle(ctx, cmd))

	s.moveDelivery(first, request.DeliveryPickedUpSource)
	s.moveCommercial(first, request.CommercialActionNeeded, request.CommercialInProgress, request.CommercialCompleted)

	s.Equal(resource.VehicleInUse, s.vehicleStatus(vehicle))
	a, err := memory.NewUnitOfWork(s.store).AssignmentRepository().GetByRequest(ctx, first)
	s.Require().NoError(err)
	s.True(a.IsActive())
	s.NotContains(s.auditActions(), audit.ActionVehicleReleased)

	again, err := commands.NewCreateAssignmentCommand(second, kernel.NewUUID(), driver, vehicle, s.operator)
	s.Require().NoError(err)
	s.ErrorIs(s.assign.Handle(ctx, again), resource.ErrVehicleUnavailable)

	s.moveDelivery(first,
		request.DeliveryWarehouseSourceReceived,
		request.DeliveryInTransit,
		request.DeliveryWarehouseDestinationReceived,
		request.DeliveryPickedUpDestination,
		request.DeliveryDelivered,
	)

	s.Equal(resource.VehicleAvailable, s.vehicleStatus(vehicle))
	a, err = memory.NewUnitOfWork(s.store).AssignmentRepository().GetByRequest(ctx, first)
	s.Require().NoError(err)
	s.Equal(assignment.StatusCompleted, a.Status())
	s.NoError(s.assign.Handle(ctx, again))
}

func (s *LifecycleScenarioSuite) TestConcurrentOfferSelection() {
	ctx := s.T().Context()
	id := s.createRequest(request.PickupDelegate)
	offers := []kernel.UUID{
		s.submitOffer(id, kernel.NewUUID(), 100),
		s.submitOffer(id, kernel.NewUUID(), 110),
	}

	results := make([]error, len(offers))
	var wg sync.WaitGroup
	for i, offerID := range offers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewSelectOfferCommand(id, offerID, s.operator)
			if err != nil {
				results[i] = err
				return
			}
			results[i] = s.selectOne.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	s.Equal(1, countNil(results))
	s.Equal(1, countIs(results, request.ErrRequestNotOpen))

	req, err := s.store.GetRequest(ctx, id)
	s.Require().NoError(err)
	s.Equal(1, countOffers(req, request.OfferAccepted))
	s.Len(req.CommercialHistory(), 1)
	s.NoError(req.VerifyHistory())
}

func (s *LifecycleScenarioSuite) TestConcurrentWarehouseAssignment() {
	ctx := s.T().Context()
	id := s.createRequest(request.PickupSelf)
	company := s.accept(id)

	addr, err := kernel.NewAddress(egypt, "Giza", "", "")
	s.Require().NoError(err)
	warehouses := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	for _, w := range warehouses {
		add, addErr := commands.NewAddWarehouseCommand(w, company, "W", addr, 10, s.operator)
		s.Require().NoError(addErr)
		s.Require().NoError(s.resources.AddWarehouse(ctx, add))
	}

	results := make([]error, len(warehouses))
	var wg sync.WaitGroup
	for i, warehouseID := range warehouses {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, cmdErr := commands.NewAssignWarehouseCommand(id, company, warehouseID, request.SideSource)
			if cmdErr != nil {
				results[i] = cmdErr
				return
			}
			results[i] = s.warehouse.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	s.Equal(1, countNil(results))
	s.Equal(1, countIs(results, request.ErrAlreadyAssigned))

	req, err := s.store.GetRequest(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(req.Source().WarehouseID())
	s.Contains(warehouses, *req.Source().WarehouseID())
}

func (s *LifecycleScenarioSuite) TestVehicleMaintenanceBlocksAssignment() {
	ctx := s.T().Context()
	id := s.createRequest(request.PickupDelegate)
	s.accept(id)
	driver := s.addDriver(egypt)
	vehicle := s.addVehicle(egypt)

	toMaintenance, err := commands.NewChangeVehicleStatusCommand(vehicle, resource.VehicleMaintenance, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.ChangeVehicleStatus(ctx, toMaintenance))
	s.Equal(resource.VehicleMaintenance, s.vehicleStatus(vehicle))

	cmd, err := commands.NewCreateAssignmentCommand(id, kernel.NewUUID(), driver, vehicle, s.operator)
	s.Require().NoError(err)
	s.ErrorIs(s.assign.Handle(ctx, cmd), resource.ErrVehicleUnavailable)

	back, err := commands.NewChangeVehicleStatusCommand(vehicle, resource.VehicleAvailable, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.ChangeVehicleStatus(ctx, back))
	s.Require().NoError(s.assign.Handle(ctx, cmd))

	retire, err := commands.NewChangeVehicleStatusCommand(vehicle, resource.VehicleRetired, s.operator)
	s.Require().NoError(err)
	s.ErrorIs(s.resources.ChangeVehicleStatus(ctx, retire), resource.ErrVehicleUnavailable)
	s.Equal(resource.VehicleInUse, s.vehicleStatus(vehicle))

	s.Equal(2, countAction(s.auditActions(), audit.ActionVehicleStatusChanged))
}

func (s *LifecycleScenarioSuite) TestVehicleInUseIsNotOperatorTarget() {
	_, err := commands.NewChangeVehicleStatusCommand(kernel.NewUUID(), resource.VehicleInUse, s.operator)
	s.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (s *LifecycleScenarioSuite) TestWarehouseStatusAndStockGateBinding() {
	ctx := s.T().Context()
	id := s.createRequest(request.PickupSelf)
	company := s.accept(id)

	addr, err := kernel.NewAddress(egypt, "Giza", "", "")
	s.Require().NoError(err)
	warehouse := kernel.NewUUID()
	add, err := commands.NewAddWarehouseCommand(warehouse, company, "W", addr, 2, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.AddWarehouse(ctx, add))

	bind, err := commands.NewAssignWarehouseCommand(id, company, warehouse, request.SideSource)
	s.Require().NoError(err)

	closeIt, err := commands.NewChangeWarehouseStatusCommand(warehouse, resource.WarehouseInactive, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.ChangeWarehouseStatus(ctx, closeIt))
	s.ErrorIs(s.resources.ChangeWarehouseStatus(ctx, closeIt), resource.ErrWarehouseStatusUnchanged)
	s.ErrorIs(s.warehouse.Handle(ctx, bind), resource.ErrWarehouseInactive)

	reopen, err := commands.NewChangeWarehouseStatusCommand(warehouse, resource.WarehouseActive, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.ChangeWarehouseStatus(ctx, reopen))

	overfill, err := commands.NewAdjustWarehouseStockCommand(warehouse, 3, s.operator)
	s.Require().NoError(err)
	s.ErrorIs(s.resources.AdjustWarehouseStock(ctx, overfill), resource.ErrWarehouseFull)
	fill, err := commands.NewAdjustWarehouseStockCommand(warehouse, 2, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.AdjustWarehouseStock(ctx, fill))
	s.ErrorIs(s.warehouse.Handle(ctx, bind), resource.ErrWarehouseFull)

	drain, err := commands.NewAdjustWarehouseStockCommand(warehouse, -1, s.operator)
	s.Require().NoError(err)
	s.Require().NoError(s.resources.AdjustWarehouseStock(ctx, drain))
	s.Require().NoError(s.warehouse.Handle(ctx, bind))

	actions := s.auditActions()
	s.Equal(2, countAction(actions, audit.ActionWarehouseStatusChanged))
	s.Equal(2, countAction(actions, audit.ActionWarehouseStockAdjusted))
}

func (s *LifecycleScenarioSuite) TestDeclineIsPerCompany() {
	ctx := s.T().Context()
	id := s.createRequest(request.PickupDelegate)
	company := kernel.NewUUID()

	cmd, err := commands.NewRejectRequestCommand(id, company)
	s.Require().NoError(err)
	s.Require().NoError(s.decline.Handle(ctx, cmd))
	s.Require().NoError(s.decline.Handle(ctx, cmd))

	queue, err := s.store.CompanyQueue(ctx, company, 0)
	s.Require().NoError(err)
	s.Empty(queue)
	others, err := s.store.CompanyQueue(ctx, kernel.NewUUID(), 0)
	s.Require().NoError(err)
	s.Len(others, 1)

	declined := 0
	for _, a := range s.auditActions() {
		if a == audit.ActionRequestDeclined {
			declined++
		}
	}
	s.Equal(1, declined)

	req, err := s.store.GetRequest(ctx, id)
	s.Require().NoError(err)
	s.Equal(request.CommercialPending, req.CommercialStatus())
}

func (s *LifecycleScenarioSuite) TestEventsArePublishedAfterCommit() {
	id := s.createRequest(request.PickupDelegate)
	s.accept(id)

	kinds := make([]request.EventKind, 0)
	for _, ev := range s.publisher.events {
		if ev.RequestID == id {
			kinds = append(kinds, ev.Kind)
		}
	}
	s.Equal([]request.EventKind{
		request.EventRequestCreated,
		request.EventOfferSubmitted,
		request.EventOfferSelected,
		request.EventCommercialChanged,
	}, kinds)
}

func countOffers(r *request.ShipmentRequest, status request.OfferStatus) int {
	n := 0
	for _, o := range r.CostOffers() {
		if o.Status() == status {
			n++
		}
	}
	return n
}

func countNil(results []error) int {
	n := 0
	for _, err := range results {
		if err == nil {
			n++
		}
	}
	return n
}

func countIs(results []error, target error) int {
	n := 0
	for _, err := range results {
		if errors.Is(err, target) {
			n++
		}
	}
	return n
}

func countAction(actions []audit.Action, want audit.Action) int {
	n := 0
	for _, a := range actions {
		if a == want {
			n++
		}
	}
	return n
}
