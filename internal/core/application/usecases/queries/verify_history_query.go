package queries

import (
	"context"
	"errors"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/guard"
	"brokerage/internal/pkg/retry"
)

var ErrVerifyHistoryQueryIsNotConstructed = errors.New(
	"VerifyHistoryQuery must be created via NewVerifyHistoryQuery constructor")

// VerifyHistoryQuery replays the status history of every stored request.
type VerifyHistoryQuery struct {
	guard guard.ConstructorGuard
}

func NewVerifyHistoryQuery() VerifyHistoryQuery {
	return VerifyHistoryQuery{guard: guard.NewConstructorGuard()}
}

func (q VerifyHistoryQuery) Validate() error {
	return q.guard.Validate(ErrVerifyHistoryQueryIsNotConstructed)
}

type HistoryDrift struct {
	RequestID string `json:"requestId"`
	Reason    string `json:"reason"`
}

type VerifyHistoryQueryResponse struct {
	Checked int            `json:"checked"`
	Drifts  []HistoryDrift `json:"drifts"`
}

// VerifyHistoryQueryHandler reports every request whose replayed history
// disagrees with its stored statuses.
type VerifyHistoryQueryHandler struct {
	readModel ReadModel
	reader    *retry.Reader
}

func NewVerifyHistoryQueryHandler(readModel ReadModel, reader *retry.Reader) VerifyHistoryQueryHandler {
	return VerifyHistoryQueryHandler{readModel: readModel, reader: reader}
}

func (h VerifyHistoryQueryHandler) Handle(ctx context.Context, query VerifyHistoryQuery) (VerifyHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return VerifyHistoryQueryResponse{}, err
	}

	ids, err := retry.Do(ctx, h.reader, "request ids", func(ctx context.Context) ([]kernel.UUID, error) {
		return h.readModel.RequestIDs(ctx)
	})
	if err != nil {
		return VerifyHistoryQueryResponse{}, err
	}

	resp := VerifyHistoryQueryResponse{Drifts: make([]HistoryDrift, 0)}
	for _, id := range ids {
		if ctx.Err() != nil {
			return resp, ctx.Err()
		}
		req, err := retry.Do(ctx, h.reader, "get request", func(ctx context.Context) (*request.ShipmentRequest, error) {
			return h.readModel.GetRequest(ctx, id)
		})
		if err != nil && isTransient(err) {
			return resp, err
		}

		resp.Checked++
		if err == nil {
			err = req.VerifyHistory()
		}
		if err != nil {
			resp.Drifts = append(resp.Drifts, HistoryDrift{RequestID: id.String(), Reason: err.Error()})
		}
	}
	return resp, nil
}
