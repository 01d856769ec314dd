package queries

import (
	"context"
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
	"brokerage/internal/pkg/retry"
)

const MaxAuditLimit = 1000

var ErrListAuditLogQueryIsNotConstructed = errors.New(
	"ListAuditLogQuery must be created via NewListAuditLogQuery constructor")

// ListAuditLogQuery filters the audit trail by action, actor, resource and time range.
type ListAuditLogQuery struct {
	filter audit.Filter
	guard  guard.ConstructorGuard
}

// NewListAuditLogQuery caps the limit at MaxAuditLimit; zero means the cap.
func NewListAuditLogQuery(filter audit.Filter) (ListAuditLogQuery, error) {
	if filter.Action != "" {
		if err := filter.Action.Validate(); err != nil {
			return ListAuditLogQuery{}, err
		}
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return ListAuditLogQuery{}, errs.NewValueIsInvalidError("time range")
	}
	if filter.Limit < 0 || filter.Limit > MaxAuditLimit {
		return ListAuditLogQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, MaxAuditLimit)
	}
	if filter.Limit == 0 {
		filter.Limit = MaxAuditLimit
	}
	return ListAuditLogQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrListAuditLogQueryIsNotConstructed)
}

func (q ListAuditLogQuery) Filter() audit.Filter { return q.filter }

type ListAuditLogQueryHandler struct {
	readModel ReadModel
	reader    *retry.Reader
}

func NewListAuditLogQueryHandler(readModel ReadModel, reader *retry.Reader) ListAuditLogQueryHandler {
	return ListAuditLogQueryHandler{readModel: readModel, reader: reader}
}

func (h ListAuditLogQueryHandler) Handle(ctx context.Context, query ListAuditLogQuery) ([]AuditEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := retry.Do(ctx, h.reader, "audit log", func(ctx context.Context) ([]*audit.Entry, error) {
		return h.readModel.AuditLog(ctx, query.Filter())
	})
	if err != nil {
		return nil, err
	}

	out := make([]AuditEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, newAuditEntryView(e))
	}
	return out, nil
}
