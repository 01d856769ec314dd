// Package commands contains the operations that mutate the lifecycle engine.
// Every command follows the same pattern: validation in the constructor, the
// per-request lock, one unit of work holding the mutation and its audit
// entries, commit, then event publishing.
package commands

import (
	"context"

	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/ports"
)

// Unit of Work interfaces give each handler access to just the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventTracker drains the events of the requests written in the transaction.
	EventTracker interface {
		TrackedEvents() []request.Event
	}

	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	ResourceRepoFactory interface {
		DriverRepository() ports.DriverRepository
		VehicleRepository() ports.VehicleRepository
		WarehouseRepository() ports.WarehouseRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// RequestUoW serves commands that only touch the request aggregate.
	RequestUoW interface {
		TxManager
		EventTracker
		RequestRepoFactory
		AuditRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// ResourceUoW serves resource registration.
	ResourceUoW interface {
		TxManager
		EventTracker
		ResourceRepoFactory
		AuditRepoFactory
	}

	ResourceUoWFactory interface {
		Create() ResourceUoW
	}

	// UoW spans requests, resources and assignments.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   req, err := uow.RequestRepository().Get(ctx, id)
	//   err = uow.VehicleRepository().CompareAndSwapStatus(ctx, vehicleID, from, to)
	//   // ... audit through uow.AuditRepository()
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		EventTracker
		RequestRepoFactory
		ResourceRepoFactory
		AssignmentRepoFactory
		AuditRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
