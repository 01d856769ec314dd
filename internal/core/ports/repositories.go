// Package ports defines the contracts between the lifecycle engine and its
// infrastructure: the ledger store repositories, the unit of work that makes a
// mutation and its audit entries atomic, the per-request lock and the event
// publisher.
package ports

import (
	"context"

	"brokerage/internal/core/domain/model/assignment"
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
)

// RequestRepository persists ShipmentRequest aggregates with optimistic versioning.
type RequestRepository interface {
	// Add persists a new request.
	Add(ctx context.Context, aggregate *request.ShipmentRequest) error

	// Update writes the request if the stored version still equals
	// aggregate.Version(), then advances the aggregate's version.
	// A stale version yields an errs.ConflictError.
	Update(ctx context.Context, aggregate *request.ShipmentRequest) error

	// Get loads the complete aggregate including offers, history and exclusions.
	Get(ctx context.Context, id kernel.UUID) (*request.ShipmentRequest, error)
}

type DriverRepository interface {
	Add(ctx context.Context, driver *resource.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*resource.Driver, error)
	// ListWithAddressIn returns drivers with at least one address in country.
	ListWithAddressIn(ctx context.Context, country kernel.Country) ([]*resource.Driver, error)
}

type VehicleRepository interface {
	Add(ctx context.Context, vehicle *resource.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*resource.Vehicle, error)

	// ListAvailableIn returns Available vehicles registered in country.
	ListAvailableIn(ctx context.Context, country kernel.Country) ([]*resource.Vehicle, error)

	// CompareAndSwapStatus changes the status only if it currently equals from.
	// When another caller changed it first the error wraps resource.ErrVehicleUnavailable.
	CompareAndSwapStatus(ctx context.Context, id kernel.UUID, from, to resource.VehicleStatus) error
}

type WarehouseRepository interface {
	Add(ctx context.Context, warehouse *resource.Warehouse) error
	Get(ctx context.Context, id kernel.UUID) (*resource.Warehouse, error)
	// Update overwrites status and stock. Callers hold the warehouse's lock.
	Update(ctx context.Context, warehouse *resource.Warehouse) error
}

type AssignmentRepository interface {
	// Add fails with an errs.ConflictError when the request already has an assignment.
	Add(ctx context.Context, a *assignment.Assignment) error
	Update(ctx context.Context, a *assignment.Assignment) error
	GetByRequest(ctx context.Context, requestID kernel.UUID) (*assignment.Assignment, error)
}

// AuditRepository is append-only.
type AuditRepository interface {
	Append(ctx context.Context, entry *audit.Entry) error
	List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, error)
}
