package commands

import (
	"context"
	"time"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
)

// TransitionCommandHandler moves either status dimension of a request one
// legal step. Status, history and the ORDER_/DELIVERY_ audit entry are
// written in one transaction. When the move closes the request, the bound
// vehicle is released in the same transaction.
//
// Example:
//
//	handler := NewTransitionCommandHandler(uowFactory, deps)
//	cmd, _ := NewTransitionDeliveryCommand(requestID, request.DeliveryPickedUpSource, driver)
//
//	err := handler.HandleDelivery(ctx, cmd)
//	if errors.Is(err, request.ErrWarehouseRequired) {
//	    // assign the source warehouse first
//	}
type TransitionCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewTransitionCommandHandler(uowFactory UoWFactory, deps Deps) TransitionCommandHandler {
	return TransitionCommandHandler{uowFactory: uowFactory, deps: deps.withDefaults()}
}

func (h *TransitionCommandHandler) HandleCommercial(ctx context.Context, cmd TransitionCommercialCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := cmd.RequestID()
	return execute(ctx, h.deps, "transition_commercial", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow UoW) error {
			repo := uow.RequestRepository()
			req, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}

			now := h.deps.Clock()
			from := req.CommercialStatus()
			if err = req.TransitionCommercial(cmd.Target(), cmd.Actor().ID, now); err != nil {
				return err
			}
			if err = repo.Update(ctx, req); err != nil {
				return err
			}
			if err = record(ctx, uow.AuditRepository(), now, cmd.Actor(),
				audit.CommercialAction(cmd.Target()), audit.ResourceRequest, id,
				statusChange(from.String(), cmd.Target().String())); err != nil {
				return err
			}
			return followAssignment(ctx, uow, req, cmd.Actor(), now)
		})
}

func (h *TransitionCommandHandler) HandleDelivery(ctx context.Context, cmd TransitionDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := cmd.RequestID()
	return execute(ctx, h.deps, "transition_delivery", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow UoW) error {
			repo := uow.RequestRepository()
			req, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}

			now := h.deps.Clock()
			from := req.DeliveryStatus()
			if err = req.TransitionDelivery(cmd.Target(), cmd.Actor().ID, now); err != nil {
				return err
			}
			if err = repo.Update(ctx, req); err != nil {
				return err
			}
			if err = record(ctx, uow.AuditRepository(), now, cmd.Actor(),
				audit.DeliveryAction(cmd.Target()), audit.ResourceRequest, id,
				statusChange(from.String(), cmd.Target().String())); err != nil {
				return err
			}
			return followAssignment(ctx, uow, req, cmd.Actor(), now)
		})
}

// followAssignment closes the request's assignment once the request is closed
// and puts its vehicle back into the Available pool.
func followAssignment(ctx context.Context, uow UoW, req *request.ShipmentRequest, actor audit.Actor, at time.Time) error {
	if req.AssignmentID() == nil || !req.IsClosed() {
		return nil
	}

	assignments := uow.AssignmentRepository()
	a, err := assignments.GetByRequest(ctx, req.ID())
	if err != nil {
		return err
	}
	if !a.Follow(req) {
		return nil
	}
	if err = assignments.Update(ctx, a); err != nil {
		return err
	}

	if err = uow.VehicleRepository().CompareAndSwapStatus(ctx, a.VehicleID(),
		resource.VehicleInUse, resource.VehicleAvailable); err != nil {
		return err
	}
	return record(ctx, uow.AuditRepository(), at, actor,
		audit.ActionVehicleReleased, audit.ResourceVehicle, a.VehicleID(),
		map[string]any{
			"requestId":        req.ID().String(),
			"assignmentId":     a.ID().String(),
			"assignmentStatus": a.Status().String(),
			"from":             resource.VehicleInUse.String(),
			"to":               resource.VehicleAvailable.String(),
		})
}
