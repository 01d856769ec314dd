package commands

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
)

// RejectRequestCommandHandler records that a company declined a request.
// The shared statuses never change. Declining twice is a no-op that writes
// neither the request nor a second audit entry.
type RejectRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	deps       Deps
}

func NewRejectRequestCommandHandler(uowFactory RequestUoWFactory, deps Deps) RejectRequestCommandHandler {
	return RejectRequestCommandHandler{uowFactory: uowFactory, deps: deps.withDefaults()}
}

func (h *RejectRequestCommandHandler) Handle(ctx context.Context, cmd RejectRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	id := cmd.RequestID()
	return execute(ctx, h.deps, "reject_request", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow RequestUoW) error {
			repo := uow.RequestRepository()
			req, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}

			now := h.deps.Clock()
			added, err := req.Decline(cmd.CompanyID(), now)
			if err != nil || !added {
				return err
			}
			if err = repo.Update(ctx, req); err != nil {
				return err
			}

			return record(ctx, uow.AuditRepository(), now, cmd.Actor(),
				audit.ActionRequestDeclined, audit.ResourceRequest, id,
				map[string]any{"companyId": cmd.CompanyID().String()})
		})
}
