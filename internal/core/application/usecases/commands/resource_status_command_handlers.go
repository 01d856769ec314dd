package commands

import (
	"context"
	"fmt"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/resource"
)

// ChangeVehicleStatus takes a vehicle out of service or returns it. A vehicle
// bound to an assignment is only released by its request's lifecycle.
func (h *ResourceCommandHandler) ChangeVehicleStatus(ctx context.Context, cmd ChangeVehicleStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return execute(ctx, h.deps, "change_vehicle_status", nil, h.uowFactory.Create(),
		func(ctx context.Context, uow ResourceUoW) error {
			vehicles := uow.VehicleRepository()
			vehicle, err := vehicles.Get(ctx, cmd.VehicleID())
			if err != nil {
				return err
			}
			from := vehicle.Status()
			if from == resource.VehicleInUse {
				return fmt.Errorf("%w: vehicle %s is bound to an assignment", resource.ErrVehicleUnavailable, vehicle.ID())
			}
			if err = vehicle.ChangeStatus(cmd.Target()); err != nil {
				return err
			}
			if err = vehicles.CompareAndSwapStatus(ctx, vehicle.ID(), from, cmd.Target()); err != nil {
				return err
			}
			return record(ctx, uow.AuditRepository(), h.deps.Clock(), cmd.Actor(),
				audit.ActionVehicleStatusChanged, audit.ResourceVehicle, vehicle.ID(),
				statusChange(from.String(), cmd.Target().String()))
		})
}

func (h *ResourceCommandHandler) ChangeWarehouseStatus(ctx context.Context, cmd ChangeWarehouseStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	id := cmd.WarehouseID()

	return execute(ctx, h.deps, "change_warehouse_status", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow ResourceUoW) error {
			warehouses := uow.WarehouseRepository()
			warehouse, err := warehouses.Get(ctx, id)
			if err != nil {
				return err
			}
			from := warehouse.Status()
			if err = warehouse.ChangeStatus(cmd.Target()); err != nil {
				return err
			}
			if err = warehouses.Update(ctx, warehouse); err != nil {
				return err
			}
			return record(ctx, uow.AuditRepository(), h.deps.Clock(), cmd.Actor(),
				audit.ActionWarehouseStatusChanged, audit.ResourceWarehouse, id,
				statusChange(from.String(), cmd.Target().String()))
		})
}

func (h *ResourceCommandHandler) AdjustWarehouseStock(ctx context.Context, cmd AdjustWarehouseStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	id := cmd.WarehouseID()

	return execute(ctx, h.deps, "adjust_warehouse_stock", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow ResourceUoW) error {
			warehouses := uow.WarehouseRepository()
			warehouse, err := warehouses.Get(ctx, id)
			if err != nil {
				return err
			}
			from := warehouse.CurrentStock()
			if err = warehouse.AdjustStock(cmd.Delta()); err != nil {
				return err
			}
			if err = warehouses.Update(ctx, warehouse); err != nil {
				return err
			}
			return record(ctx, uow.AuditRepository(), h.deps.Clock(), cmd.Actor(),
				audit.ActionWarehouseStockAdjusted, audit.ResourceWarehouse, id,
				map[string]any{"from": from, "to": warehouse.CurrentStock(), "delta": cmd.Delta()})
		})
}
