package commands

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
)

// AssignWarehouseCommandHandler binds a warehouse to one side of an accepted
// request. It never advances a status: the delivery gate only reads the binding.
//
// Business rules:
//   - The warehouse belongs to the company holding the accepted offer and is Active
//   - The side uses Self pickup and has no warehouse yet
//   - The warehouse lies in the side's country
type AssignWarehouseCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewAssignWarehouseCommandHandler(uowFactory UoWFactory, deps Deps) AssignWarehouseCommandHandler {
	return AssignWarehouseCommandHandler{uowFactory: uowFactory, deps: deps.withDefaults()}
}

func (h *AssignWarehouseCommandHandler) Handle(ctx context.Context, cmd AssignWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := cmd.RequestID()
	return execute(ctx, h.deps, "assign_warehouse", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow UoW) error {
			repo := uow.RequestRepository()
			req, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}
			warehouse, err := uow.WarehouseRepository().Get(ctx, cmd.WarehouseID())
			if err != nil {
				return err
			}
			if err = warehouse.CanServe(cmd.CompanyID()); err != nil {
				return err
			}

			now := h.deps.Clock()
			if err = req.AssignWarehouse(cmd.Side(), cmd.CompanyID(), warehouse.ID(), warehouse.Country(), now); err != nil {
				return err
			}
			if err = repo.Update(ctx, req); err != nil {
				return err
			}

			return record(ctx, uow.AuditRepository(), now, cmd.Actor(),
				audit.ActionWarehouseAssigned, audit.ResourceRequest, id,
				map[string]any{
					"side":        cmd.Side().String(),
					"warehouseId": warehouse.ID().String(),
					"country":     warehouse.Country().Name(),
				})
		})
}
