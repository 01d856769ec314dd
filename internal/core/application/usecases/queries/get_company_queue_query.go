package queries

import (
	"context"
	"errors"
	"time"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
	"brokerage/internal/pkg/retry"
)

const DefaultQueueLimit = 100

var ErrGetCompanyQueueQueryIsNotConstructed = errors.New(
	"GetCompanyQueueQuery must be created via NewGetCompanyQueueQuery constructor")

// GetCompanyQueueQuery lists the Pending requests a company may still bid on.
type GetCompanyQueueQuery struct {
	companyID kernel.UUID
	limit     int
	guard     guard.ConstructorGuard
}

// NewGetCompanyQueueQuery uses DefaultQueueLimit when limit is zero.
func NewGetCompanyQueueQuery(companyID kernel.UUID, limit int) (GetCompanyQueueQuery, error) {
	if err := companyID.Validate(); err != nil {
		return GetCompanyQueueQuery{}, errs.NewValueIsRequiredErrorWithCause("company id", err)
	}
	if limit < 0 {
		return GetCompanyQueueQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, nil)
	}
	if limit == 0 {
		limit = DefaultQueueLimit
	}
	return GetCompanyQueueQuery{companyID: companyID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCompanyQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetCompanyQueueQueryIsNotConstructed)
}

func (q GetCompanyQueueQuery) CompanyID() kernel.UUID { return q.companyID }
func (q GetCompanyQueueQuery) Limit() int             { return q.limit }

// QueueEntry summarizes a request in a company's queue.
type QueueEntry struct {
	ID                 string    `json:"id"`
	SourceCountry      string    `json:"sourceCountry"`
	DestinationCountry string    `json:"destinationCountry"`
	DeliveryKind       string    `json:"deliveryKind"`
	Items              int       `json:"items"`
	OpenOffers         int       `json:"openOffers"`
	CreatedAt          time.Time `json:"createdAt"`
}

type GetCompanyQueueQueryHandler struct {
	readModel ReadModel
	reader    *retry.Reader
}

func NewGetCompanyQueueQueryHandler(readModel ReadModel, reader *retry.Reader) GetCompanyQueueQueryHandler {
	return GetCompanyQueueQueryHandler{readModel: readModel, reader: reader}
}

// Handle returns requests oldest first. OpenOffers counts the calling
// company's non-rejected offers on each request.
func (h GetCompanyQueueQueryHandler) Handle(ctx context.Context, query GetCompanyQueueQuery) ([]QueueEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reqs, err := retry.Do(ctx, h.reader, "company queue", func(ctx context.Context) ([]*request.ShipmentRequest, error) {
		return h.readModel.CompanyQueue(ctx, query.CompanyID(), query.Limit())
	})
	if err != nil {
		return nil, err
	}

	out := make([]QueueEntry, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, QueueEntry{
			ID:                 r.ID().String(),
			SourceCountry:      r.Source().Address().Country().Name(),
			DestinationCountry: r.Destination().Address().Country().Name(),
			DeliveryKind:       r.DeliveryKind().String(),
			Items:              len(r.Items()),
			OpenOffers:         r.OpenOffersOf(query.CompanyID()),
			CreatedAt:          r.CreatedAt(),
		})
	}
	return out, nil
}
