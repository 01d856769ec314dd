package commands

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
)

// SubmitOfferCommandHandler appends a Pending cost offer to an open request.
// A company may hold at most request.MaxOpenOffersPerCompany non-rejected offers.
type SubmitOfferCommandHandler struct {
	uowFactory RequestUoWFactory
	deps       Deps
}

func NewSubmitOfferCommandHandler(uowFactory RequestUoWFactory, deps Deps) SubmitOfferCommandHandler {
	return SubmitOfferCommandHandler{uowFactory: uowFactory, deps: deps.withDefaults()}
}

func (h *SubmitOfferCommandHandler) Handle(ctx context.Context, cmd SubmitOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := cmd.RequestID()
	return execute(ctx, h.deps, "submit_offer", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow RequestUoW) error {
			repo := uow.RequestRepository()
			req, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}

			now := h.deps.Clock()
			offer, err := req.SubmitOffer(cmd.OfferID(), cmd.CompanyID(), cmd.Cost(), cmd.Comment(), now)
			if err != nil {
				return err
			}
			if err = repo.Update(ctx, req); err != nil {
				return err
			}

			return record(ctx, uow.AuditRepository(), now, cmd.Actor(),
				audit.ActionCostOfferSubmitted, audit.ResourceOffer, offer.ID(),
				map[string]any{
					"requestId": id.String(),
					"companyId": offer.CompanyID().String(),
					"cost":      offer.Cost().String(),
				})
		})
}
