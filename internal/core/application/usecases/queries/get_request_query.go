package queries

import (
	"context"
	"errors"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
	"brokerage/internal/pkg/retry"
)

var ErrGetRequestQueryIsNotConstructed = errors.New("GetRequestQuery must be created via NewGetRequestQuery constructor")

type GetRequestQuery struct {
	requestID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetRequestQuery(requestID kernel.UUID) (GetRequestQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetRequestQuery{}, errs.NewValueIsRequiredErrorWithCause("request id", err)
	}
	return GetRequestQuery{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

func (q GetRequestQuery) RequestID() kernel.UUID { return q.requestID }

// GetRequestQueryHandler returns the full view of one request: offers,
// both status histories and the exclusion set.
//
// Example:
//
//	handler := NewGetRequestQueryHandler(readModel, reader)
//	query, _ := NewGetRequestQuery(requestID)
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown request id
//	}
type GetRequestQueryHandler struct {
	readModel ReadModel
	reader    *retry.Reader
}

func NewGetRequestQueryHandler(readModel ReadModel, reader *retry.Reader) GetRequestQueryHandler {
	return GetRequestQueryHandler{readModel: readModel, reader: reader}
}

func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (RequestView, error) {
	if err := query.Validate(); err != nil {
		return RequestView{}, err
	}

	req, err := retry.Do(ctx, h.reader, "get request", func(ctx context.Context) (*request.ShipmentRequest, error) {
		return h.readModel.GetRequest(ctx, query.RequestID())
	})
	if err != nil {
		return RequestView{}, err
	}
	return newRequestView(req), nil
}
