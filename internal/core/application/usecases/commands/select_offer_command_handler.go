package commands

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/request"
)

// SelectOfferCommandHandler accepts an offer and drives the commercial status
// to Accepted. Two audit entries are written: COST_SET and ORDER_ACCEPTED.
// Losing offers keep their status.
//
// Example:
//
//	handler := NewSelectOfferCommandHandler(uowFactory, deps)
//	cmd, _ := NewSelectOfferCommand(requestID, cheapest.ID(), operator)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, request.ErrRequestNotOpen) {
//	    // another offer was selected first
//	}
type SelectOfferCommandHandler struct {
	uowFactory RequestUoWFactory
	deps       Deps
}

func NewSelectOfferCommandHandler(uowFactory RequestUoWFactory, deps Deps) SelectOfferCommandHandler {
	return SelectOfferCommandHandler{uowFactory: uowFactory, deps: deps.withDefaults()}
}

func (h *SelectOfferCommandHandler) Handle(ctx context.Context, cmd SelectOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := cmd.RequestID()
	return execute(ctx, h.deps, "select_offer", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow RequestUoW) error {
			repo := uow.RequestRepository()
			req, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}

			now := h.deps.Clock()
			from := req.CommercialStatus()
			offer, err := req.SelectOffer(cmd.OfferID(), cmd.Actor().ID, now)
			if err != nil {
				return err
			}
			if err = repo.Update(ctx, req); err != nil {
				return err
			}

			auditRepo := uow.AuditRepository()
			if err = record(ctx, auditRepo, now, cmd.Actor(),
				audit.ActionCostSet, audit.ResourceRequest, id,
				map[string]any{
					"offerId":           offer.ID().String(),
					"assignedCompanyId": offer.CompanyID().String(),
					"primaryCost":       offer.Cost().String(),
				}); err != nil {
				return err
			}
			return record(ctx, auditRepo, now, cmd.Actor(),
				audit.CommercialAction(request.CommercialAccepted), audit.ResourceRequest, id,
				statusChange(from.String(), req.CommercialStatus().String()))
		})
}
