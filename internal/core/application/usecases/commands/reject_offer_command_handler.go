package commands

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
)

// RejectOfferCommandHandler rejects one Pending offer. A rejected offer no
// longer counts against its company's open offer limit.
type RejectOfferCommandHandler struct {
	uowFactory RequestUoWFactory
	deps       Deps
}

func NewRejectOfferCommandHandler(uowFactory RequestUoWFactory, deps Deps) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{uowFactory: uowFactory, deps: deps.withDefaults()}
}

func (h *RejectOfferCommandHandler) Handle(ctx context.Context, cmd RejectOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := cmd.RequestID()
	return execute(ctx, h.deps, "reject_offer", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow RequestUoW) error {
			repo := uow.RequestRepository()
			req, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}

			now := h.deps.Clock()
			offer, err := req.RejectOffer(cmd.OfferID(), now)
			if err != nil {
				return err
			}
			if err = repo.Update(ctx, req); err != nil {
				return err
			}

			return record(ctx, uow.AuditRepository(), now, cmd.Actor(),
				audit.ActionCostOfferRejected, audit.ResourceOffer, offer.ID(),
				map[string]any{
					"requestId": id.String(),
					"companyId": offer.CompanyID().String(),
				})
		})
}
