package ports

import (
	"context"

	"brokerage/internal/core/domain/model/request"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. The primary mutation and its
// audit entries are written through the repositories of one unit of work and
// become durable together on Commit.
type UnitOfWork interface {
	// Begin starts a new transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	RequestRepository() RequestRepository
	DriverRepository() DriverRepository
	VehicleRepository() VehicleRepository
	WarehouseRepository() WarehouseRepository
	AssignmentRepository() AssignmentRepository
	AuditRepository() AuditRepository

	// TrackedEvents drains the lifecycle events of every request written
	// through this unit of work. Call it after Commit.
	TrackedEvents() []request.Event
}
