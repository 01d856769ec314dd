package memory

import (
	"context"
	"fmt"
	"slices"

	"brokerage/internal/core/domain/model/assignment"
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"
)

func lookup[V any](staged, base *tables, pick func(*tables) map[kernel.UUID]V, id kernel.UUID) (V, bool) {
	if staged != nil {
		if v, ok := pick(staged)[id]; ok {
			return v, true
		}
	}
	v, ok := pick(base)[id]
	return v, ok
}

func requestsOf(t *tables) map[kernel.UUID]request.Snapshot          { return t.requests }
func driversOf(t *tables) map[kernel.UUID]*resource.Driver           { return t.drivers }
func vehiclesOf(t *tables) map[kernel.UUID]*resource.Vehicle         { return t.vehicles }
func warehousesOf(t *tables) map[kernel.UUID]*resource.Warehouse     { return t.warehouses }
func assignmentsOf(t *tables) map[kernel.UUID]*assignment.Assignment { return t.assignments }

type requestRepository struct{ uow *UnitOfWork }

func (r requestRepository) Add(ctx context.Context, aggregate *request.ShipmentRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	id := aggregate.ID()
	err := r.uow.write(ctx, func(staged *tables) error {
		var exists bool
		_ = r.uow.read(func(_, base *tables) error {
			_, exists = lookup(staged, base, requestsOf, id)
			return nil
		})
		if exists {
			return errs.NewConflictError("shipment request " + id.String())
		}
		staged.requests[id] = aggregate.Snapshot()
		staged.requestOrder = append(staged.requestOrder, id)
		return nil
	})
	if err != nil {
		return err
	}
	r.uow.track(aggregate)
	return nil
}

func (r requestRepository) Update(ctx context.Context, aggregate *request.ShipmentRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	id := aggregate.ID()
	err := r.uow.write(ctx, func(staged *tables) error {
		var (
			current request.Snapshot
			exists  bool
		)
		_ = r.uow.read(func(_, base *tables) error {
			current, exists = lookup(staged, base, requestsOf, id)
			return nil
		})
		if !exists {
			return errs.NewObjectNotFoundError("shipment request", id.String())
		}
		if current.Version != aggregate.Version() {
			return errs.NewConflictErrorWithCause("shipment request "+id.String(),
				fmt.Errorf("version %d is stale, stored %d", aggregate.Version(), current.Version))
		}
		aggregate.AdvanceVersion()
		staged.requests[id] = aggregate.Snapshot()
		return nil
	})
	if err != nil {
		return err
	}
	r.uow.track(aggregate)
	return nil
}

func (r requestRepository) Get(_ context.Context, id kernel.UUID) (*request.ShipmentRequest, error) {
	var (
		snap   request.Snapshot
		exists bool
	)
	_ = r.uow.read(func(staged, base *tables) error {
		snap, exists = lookup(staged, base, requestsOf, id)
		return nil
	})
	if !exists {
		return nil, errs.NewObjectNotFoundError("shipment request", id.String())
	}
	return request.RestoreShipmentRequest(snap)
}

type driverRepository struct{ uow *UnitOfWork }

func (r driverRepository) Add(ctx context.Context, driver *resource.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, func(staged *tables) error {
		var exists bool
		_ = r.uow.read(func(_, base *tables) error {
			_, exists = lookup(staged, base, driversOf, driver.ID())
			return nil
		})
		if exists {
			return errs.NewConflictError("driver " + driver.ID().String())
		}
		staged.drivers[driver.ID()] = driver
		return nil
	})
}

func (r driverRepository) Get(_ context.Context, id kernel.UUID) (*resource.Driver, error) {
	var (
		d      *resource.Driver
		exists bool
	)
	_ = r.uow.read(func(staged, base *tables) error {
		d, exists = lookup(staged, base, driversOf, id)
		return nil
	})
	if !exists {
		return nil, errs.NewObjectNotFoundError("driver", id.String())
	}
	return d, nil
}

func (r driverRepository) ListWithAddressIn(_ context.Context, country kernel.Country) ([]*resource.Driver, error) {
	var out []*resource.Driver
	_ = r.uow.read(func(staged, base *tables) error {
		var s map[kernel.UUID]*resource.Driver
		if staged != nil {
			s = staged.drivers
		}
		out = driversIn(base.drivers, s, country)
		return nil
	})
	return out, nil
}

type vehicleRepository struct{ uow *UnitOfWork }

func (r vehicleRepository) Add(ctx context.Context, vehicle *resource.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	stored, err := cloneVehicle(vehicle, vehicle.Status())
	if err != nil {
		return err
	}
	return r.uow.write(ctx, func(staged *tables) error {
		var exists bool
		_ = r.uow.read(func(_, base *tables) error {
			_, exists = lookup(staged, base, vehiclesOf, vehicle.ID())
			return nil
		})
		if exists {
			return errs.NewConflictError("vehicle " + vehicle.ID().String())
		}
		staged.vehicles[vehicle.ID()] = stored
		return nil
	})
}

func (r vehicleRepository) Get(_ context.Context, id kernel.UUID) (*resource.Vehicle, error) {
	var (
		v      *resource.Vehicle
		exists bool
	)
	_ = r.uow.read(func(staged, base *tables) error {
		v, exists = lookup(staged, base, vehiclesOf, id)
		return nil
	})
	if !exists {
		return nil, errs.NewObjectNotFoundError("vehicle", id.String())
	}
	return cloneVehicle(v, v.Status())
}

func (r vehicleRepository) ListAvailableIn(_ context.Context, country kernel.Country) ([]*resource.Vehicle, error) {
	var (
		out []*resource.Vehicle
		err error
	)
	_ = r.uow.read(func(staged, base *tables) error {
		var s map[kernel.UUID]*resource.Vehicle
		if staged != nil {
			s = staged.vehicles
		}
		out, err = availableVehiclesIn(base.vehicles, s, country)
		return nil
	})
	return out, err
}

// CompareAndSwapStatus is atomic because units of work never run concurrently.
func (r vehicleRepository) CompareAndSwapStatus(ctx context.Context, id kernel.UUID, from, to resource.VehicleStatus) error {
	if err := resource.ValidateVehicleTransition(from, to); err != nil {
		return err
	}
	return r.uow.write(ctx, func(staged *tables) error {
		var (
			current *resource.Vehicle
			exists  bool
		)
		_ = r.uow.read(func(_, base *tables) error {
			current, exists = lookup(staged, base, vehiclesOf, id)
			return nil
		})
		if !exists {
			return errs.NewObjectNotFoundError("vehicle", id.String())
		}
		if current.Status() != from {
			return fmt.Errorf("%w: vehicle %s is %s", resource.ErrVehicleUnavailable, id, current.Status())
		}
		next, err := cloneVehicle(current, to)
		if err != nil {
			return err
		}
		staged.vehicles[id] = next
		return nil
	})
}

type warehouseRepository struct{ uow *UnitOfWork }

func (r warehouseRepository) Add(ctx context.Context, warehouse *resource.Warehouse) error {
	if err := warehouse.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, func(staged *tables) error {
		var exists bool
		_ = r.uow.read(func(_, base *tables) error {
			_, exists = lookup(staged, base, warehousesOf, warehouse.ID())
			return nil
		})
		if exists {
			return errs.NewConflictError("warehouse " + warehouse.ID().String())
		}
		stored, err := cloneWarehouse(warehouse)
		if err != nil {
			return err
		}
		staged.warehouses[warehouse.ID()] = stored
		return nil
	})
}

func (r warehouseRepository) Update(ctx context.Context, warehouse *resource.Warehouse) error {
	if err := warehouse.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, func(staged *tables) error {
		var exists bool
		_ = r.uow.read(func(_, base *tables) error {
			_, exists = lookup(staged, base, warehousesOf, warehouse.ID())
			return nil
		})
		if !exists {
			return errs.NewObjectNotFoundError("warehouse", warehouse.ID().String())
		}
		stored, err := cloneWarehouse(warehouse)
		if err != nil {
			return err
		}
		staged.warehouses[warehouse.ID()] = stored
		return nil
	})
}

func (r warehouseRepository) Get(_ context.Context, id kernel.UUID) (*resource.Warehouse, error) {
	var (
		w      *resource.Warehouse
		exists bool
	)
	_ = r.uow.read(func(staged, base *tables) error {
		w, exists = lookup(staged, base, warehousesOf, id)
		return nil
	})
	if !exists {
		return nil, errs.NewObjectNotFoundError("warehouse", id.String())
	}
	return cloneWarehouse(w)
}

type assignmentRepository struct{ uow *UnitOfWork }

func (r assignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	stored, err := cloneAssignment(a)
	if err != nil {
		return err
	}
	return r.uow.write(ctx, func(staged *tables) error {
		var exists bool
		_ = r.uow.read(func(_, base *tables) error {
			_, exists = lookup(staged, base, assignmentsOf, a.RequestID())
			return nil
		})
		if exists {
			return fmt.Errorf("%w: request %s", request.ErrAssignmentExists, a.RequestID())
		}
		staged.assignments[a.RequestID()] = stored
		return nil
	})
}

func (r assignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	stored, err := cloneAssignment(a)
	if err != nil {
		return err
	}
	return r.uow.write(ctx, func(staged *tables) error {
		var (
			current *assignment.Assignment
			exists  bool
		)
		_ = r.uow.read(func(_, base *tables) error {
			current, exists = lookup(staged, base, assignmentsOf, a.RequestID())
			return nil
		})
		if !exists || !current.ID().IsEqual(a.ID()) {
			return errs.NewObjectNotFoundError("assignment", a.ID().String())
		}
		staged.assignments[a.RequestID()] = stored
		return nil
	})
}

func (r assignmentRepository) GetByRequest(_ context.Context, requestID kernel.UUID) (*assignment.Assignment, error) {
	var (
		a      *assignment.Assignment
		exists bool
	)
	_ = r.uow.read(func(staged, base *tables) error {
		a, exists = lookup(staged, base, assignmentsOf, requestID)
		return nil
	})
	if !exists {
		return nil, errs.NewObjectNotFoundError("assignment", requestID.String())
	}
	return cloneAssignment(a)
}

type auditRepository struct{ uow *UnitOfWork }

func (r auditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, func(staged *tables) error {
		staged.audit = append(staged.audit, entry)
		return nil
	})
}

func (r auditRepository) List(_ context.Context, filter audit.Filter) ([]*audit.Entry, error) {
	var out []*audit.Entry
	_ = r.uow.read(func(staged, base *tables) error {
		all := base.audit
		if staged != nil {
			all = append(slices.Clone(base.audit), staged.audit...)
		}
		out = filterAudit(all, filter)
		return nil
	})
	return out, nil
}
