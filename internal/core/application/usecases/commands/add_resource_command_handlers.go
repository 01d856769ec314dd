package commands

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/resource"
)

// ResourceCommandHandler registers the drivers, vehicles and warehouses the
// matcher draws from. Each registration is audited in its transaction.
type ResourceCommandHandler struct {
	uowFactory ResourceUoWFactory
	deps       Deps
}

func NewResourceCommandHandler(uowFactory ResourceUoWFactory, deps Deps) ResourceCommandHandler {
	return ResourceCommandHandler{uowFactory: uowFactory, deps: deps.withDefaults()}
}

func (h *ResourceCommandHandler) AddDriver(ctx context.Context, cmd AddDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	driver, err := resource.NewDriver(cmd.DriverID(), cmd.Name(), cmd.Addresses())
	if err != nil {
		return err
	}

	return execute(ctx, h.deps, "add_driver", nil, h.uowFactory.Create(),
		func(ctx context.Context, uow ResourceUoW) error {
			if err := uow.DriverRepository().Add(ctx, driver); err != nil {
				return err
			}
			countries := make([]string, 0)
			for _, c := range driver.Countries() {
				countries = append(countries, c.Name())
			}
			return record(ctx, uow.AuditRepository(), h.deps.Clock(), cmd.Actor(),
				audit.ActionDriverAdded, audit.ResourceDriver, driver.ID(),
				map[string]any{"name": driver.Name(), "countries": countries})
		})
}

func (h *ResourceCommandHandler) AddVehicle(ctx context.Context, cmd AddVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	vehicle, err := resource.NewVehicle(cmd.VehicleID(), cmd.Plate(), cmd.Country(), cmd.Rules())
	if err != nil {
		return err
	}

	return execute(ctx, h.deps, "add_vehicle", nil, h.uowFactory.Create(),
		func(ctx context.Context, uow ResourceUoW) error {
			if err := uow.VehicleRepository().Add(ctx, vehicle); err != nil {
				return err
			}
			return record(ctx, uow.AuditRepository(), h.deps.Clock(), cmd.Actor(),
				audit.ActionVehicleAdded, audit.ResourceVehicle, vehicle.ID(),
				map[string]any{
					"plate":   vehicle.Plate(),
					"country": vehicle.Country().Name(),
					"rules":   vehicle.Rules() != nil,
				})
		})
}

func (h *ResourceCommandHandler) AddWarehouse(ctx context.Context, cmd AddWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	warehouse, err := resource.NewWarehouse(cmd.WarehouseID(), cmd.CompanyID(), cmd.Name(), cmd.Address(), cmd.Capacity())
	if err != nil {
		return err
	}

	return execute(ctx, h.deps, "add_warehouse", nil, h.uowFactory.Create(),
		func(ctx context.Context, uow ResourceUoW) error {
			if err := uow.WarehouseRepository().Add(ctx, warehouse); err != nil {
				return err
			}
			return record(ctx, uow.AuditRepository(), h.deps.Clock(), cmd.Actor(),
				audit.ActionWarehouseAdded, audit.ResourceWarehouse, warehouse.ID(),
				map[string]any{
					"companyId": warehouse.CompanyID().String(),
					"country":   warehouse.Country().Name(),
					"capacity":  warehouse.Capacity(),
				})
		})
}
