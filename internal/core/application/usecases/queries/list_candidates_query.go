package queries

import (
	"context"
	"errors"
	"fmt"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/core/domain/services"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
	"brokerage/internal/pkg/retry"
)

var ErrListCandidatesQueryIsNotConstructed = errors.New(
	"ListCandidatesQuery must be created via NewListCandidatesQuery constructor")

type ListCandidatesQuery struct {
	requestID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewListCandidatesQuery(requestID kernel.UUID) (ListCandidatesQuery, error) {
	if err := requestID.Validate(); err != nil {
		return ListCandidatesQuery{}, errs.NewValueIsRequiredErrorWithCause("request id", err)
	}
	return ListCandidatesQuery{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrListCandidatesQueryIsNotConstructed)
}

func (q ListCandidatesQuery) RequestID() kernel.UUID { return q.requestID }

type ListCandidatesQueryResponse struct {
	Drivers  []DriverView  `json:"drivers"`
	Vehicles []VehicleView `json:"vehicles"`
}

// ListCandidatesQueryHandler lists the drivers and vehicles a dispatcher may
// pick for an accepted request. Vehicle rules are checked against the items,
// so every returned vehicle can carry the shipment.
type ListCandidatesQueryHandler struct {
	readModel ReadModel
	matcher   services.ResourceMatcher
	reader    *retry.Reader
}

func NewListCandidatesQueryHandler(readModel ReadModel, matcher services.ResourceMatcher, reader *retry.Reader) ListCandidatesQueryHandler {
	return ListCandidatesQueryHandler{readModel: readModel, matcher: matcher, reader: reader}
}

func (h ListCandidatesQueryHandler) Handle(ctx context.Context, query ListCandidatesQuery) (ListCandidatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListCandidatesQueryResponse{}, err
	}

	req, err := retry.Do(ctx, h.reader, "get request", func(ctx context.Context) (*request.ShipmentRequest, error) {
		return h.readModel.GetRequest(ctx, query.RequestID())
	})
	if err != nil {
		return ListCandidatesQueryResponse{}, err
	}
	if req.CommercialStatus() != request.CommercialAccepted {
		return ListCandidatesQueryResponse{}, fmt.Errorf("%w: commercial status is %s",
			request.ErrRequestNotAccepted, req.CommercialStatus())
	}

	country := req.Source().Address().Country()
	drivers, err := retry.Do(ctx, h.reader, "list drivers", func(ctx context.Context) ([]*resource.Driver, error) {
		return h.readModel.DriversIn(ctx, country)
	})
	if err != nil {
		return ListCandidatesQueryResponse{}, err
	}
	vehicles, err := retry.Do(ctx, h.reader, "list vehicles", func(ctx context.Context) ([]*resource.Vehicle, error) {
		return h.readModel.AvailableVehiclesIn(ctx, country)
	})
	if err != nil {
		return ListCandidatesQueryResponse{}, err
	}

	resp := ListCandidatesQueryResponse{
		Drivers:  make([]DriverView, 0),
		Vehicles: make([]VehicleView, 0),
	}
	for _, d := range h.matcher.CandidateDrivers(req, drivers) {
		resp.Drivers = append(resp.Drivers, newDriverView(d))
	}
	for _, v := range h.matcher.CandidateVehicles(req, vehicles) {
		if rules := v.Rules(); rules != nil && rules.Check(req.Items()) != nil {
			continue
		}
		resp.Vehicles = append(resp.Vehicles, newVehicleView(v))
	}
	return resp, nil
}
