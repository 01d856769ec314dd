package commands

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/core/domain/services"
)

// CreateAssignmentCommandHandler validates a driver/vehicle pair against an
// accepted request and marks the vehicle InUse with a compare-and-swap.
// When two requests race for one vehicle, exactly one swap succeeds; the
// other caller gets resource.ErrVehicleUnavailable and its transaction rolls back.
//
// Example:
//
//	handler := NewCreateAssignmentCommandHandler(uowFactory, services.NewResourceMatcher(), deps)
//	cmd, _ := NewCreateAssignmentCommand(requestID, kernel.NewUUID(), driverID, vehicleID, operator)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, resource.ErrVehicleUnavailable) {
//	    // pick another vehicle from the candidates
//	}
type CreateAssignmentCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.ResourceMatcher
	deps       Deps
}

func NewCreateAssignmentCommandHandler(
	uowFactory UoWFactory,
	matcher services.ResourceMatcher,
	deps Deps,
) CreateAssignmentCommandHandler {
	return CreateAssignmentCommandHandler{uowFactory: uowFactory, matcher: matcher, deps: deps.withDefaults()}
}

func (h *CreateAssignmentCommandHandler) Handle(ctx context.Context, cmd CreateAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := cmd.RequestID()
	return execute(ctx, h.deps, "create_assignment", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow UoW) error {
			repo := uow.RequestRepository()
			req, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}
			driver, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
			if err != nil {
				return err
			}
			vehicles := uow.VehicleRepository()
			vehicle, err := vehicles.Get(ctx, cmd.VehicleID())
			if err != nil {
				return err
			}

			now := h.deps.Clock()
			a, err := h.matcher.Bind(req, driver, vehicle, cmd.AssignmentID(), now)
			if err != nil {
				return err
			}
			if err = vehicles.CompareAndSwapStatus(ctx, vehicle.ID(), resource.VehicleAvailable, resource.VehicleInUse); err != nil {
				return err
			}
			if err = uow.AssignmentRepository().Add(ctx, a); err != nil {
				return err
			}
			if err = repo.Update(ctx, req); err != nil {
				return err
			}

			return record(ctx, uow.AuditRepository(), now, cmd.Actor(),
				audit.ActionAssignmentCreated, audit.ResourceAssignment, a.ID(),
				map[string]any{
					"requestId": id.String(),
					"driverId":  driver.ID().String(),
					"vehicleId": vehicle.ID().String(),
				})
		})
}
