package commands

import (
	"context"
	"log/slog"
	"time"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/ports"
)

// CommandObserver receives the outcome of every handled command.
type CommandObserver interface {
	ObserveCommand(command string, err error)
}

// Deps are the collaborators shared by all command handlers.
// Zero values are replaced with no-op implementations.
type Deps struct {
	Locker    ports.RequestLocker
	Publisher ports.EventPublisher
	Observer  CommandObserver
	Logger    *slog.Logger
	Clock     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Locker == nil {
		d.Locker = noLock{}
	}
	if d.Publisher == nil {
		d.Publisher = noPublisher{}
	}
	if d.Observer == nil {
		d.Observer = noObserver{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	return d
}

type noLock struct{}

func (noLock) Lock(context.Context, kernel.UUID) (func(), error) { return func() {}, nil }

type noPublisher struct{}

func (noPublisher) Publish(context.Context, []request.Event) error { return nil }

type noObserver struct{}

func (noObserver) ObserveCommand(string, error) {}

type transactional interface {
	TxManager
	EventTracker
}

// execute runs body inside one transaction of uow while holding the lock of
// requestID (when given), then publishes the events tracked by the transaction.
// Publishing happens after commit and its failure is only logged.
func execute[U transactional](
	ctx context.Context,
	deps Deps,
	command string,
	requestID *kernel.UUID,
	uow U,
	body func(ctx context.Context, uow U) error,
) (err error) {
	defer func() { deps.Observer.ObserveCommand(command, err) }()

	if requestID != nil {
		unlock, lockErr := deps.Locker.Lock(ctx, *requestID)
		if lockErr != nil {
			return lockErr
		}
		defer unlock()
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = body(ctx, uow); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	events := uow.TrackedEvents()
	if len(events) == 0 {
		return nil
	}
	if pubErr := deps.Publisher.Publish(context.WithoutCancel(ctx), events); pubErr != nil {
		deps.Logger.WarnContext(ctx, "failed to publish lifecycle events",
			"command", command,
			"events", len(events),
			"error", pubErr,
		)
	}
	return nil
}

// record appends one audit entry through the repository of the running transaction.
func record(
	ctx context.Context,
	repo ports.AuditRepository,
	at time.Time,
	actor audit.Actor,
	action audit.Action,
	resourceType audit.ResourceType,
	resourceID kernel.UUID,
	changes map[string]any,
) error {
	entry, err := audit.NewEntry(kernel.NewUUID(), at, actor, action, resourceType, resourceID, changes)
	if err != nil {
		return err
	}
	return repo.Append(ctx, entry)
}
