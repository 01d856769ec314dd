package ports

import (
	"context"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
)

// RequestLocker linearizes operations on the same request id.
type RequestLocker interface {
	// Lock blocks until the request's lock is held or ctx is done. The
	// returned function releases the lock and is safe to call more than once.
	Lock(ctx context.Context, requestID kernel.UUID) (func(), error)
}

// EventPublisher delivers committed lifecycle events to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, events []request.Event) error
}
