// Package queries contains the read side of the lifecycle engine. Queries
// never mutate and are retried when the store is briefly unavailable.
package queries

import (
	"context"
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"
)

// ReadModel is the read access the query handlers need from the ledger store.
type ReadModel interface {
	GetRequest(ctx context.Context, id kernel.UUID) (*request.ShipmentRequest, error)

	// CompanyQueue returns Pending requests the company has not declined,
	// oldest first. A non-positive limit means no limit.
	CompanyQueue(ctx context.Context, companyID kernel.UUID, limit int) ([]*request.ShipmentRequest, error)

	DriversIn(ctx context.Context, country kernel.Country) ([]*resource.Driver, error)
	AvailableVehiclesIn(ctx context.Context, country kernel.Country) ([]*resource.Vehicle, error)

	// AuditLog returns matching entries ordered by timestamp.
	AuditLog(ctx context.Context, filter audit.Filter) ([]*audit.Entry, error)

	RequestIDs(ctx context.Context) ([]kernel.UUID, error)
}

func isTransient(err error) bool {
	return errs.IsRetryable(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
