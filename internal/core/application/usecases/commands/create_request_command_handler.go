package commands

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/request"
)

// CreateRequestCommandHandler places a new request in Pending/Pending.
//
// Example:
//
//	handler := NewCreateRequestCommandHandler(uowFactory, deps)
//	cmd, _ := NewCreateRequestCommand(kernel.NewUUID(), clientID, src, dst, items, request.DeliveryKindNormal)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("request creation failed: %w", err)
//	}
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	deps       Deps
}

func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory, deps Deps) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

// Handle builds the aggregate before touching the store so invalid input is
// rejected without opening a transaction.
func (h *CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.deps.Clock()
	req, err := request.NewShipmentRequest(
		cmd.RequestID(), cmd.ClientID(), cmd.Source(), cmd.Destination(), cmd.Items(), cmd.DeliveryKind(), now,
	)
	if err != nil {
		return err
	}

	id := req.ID()
	return execute(ctx, h.deps, "create_request", &id, h.uowFactory.Create(),
		func(ctx context.Context, uow RequestUoW) error {
			if err := uow.RequestRepository().Add(ctx, req); err != nil {
				return err
			}
			return record(ctx, uow.AuditRepository(), now, cmd.Actor(),
				audit.ActionRequestCreated, audit.ResourceRequest, req.ID(),
				map[string]any{
					"sourceCountry":      req.Source().Address().Country().Name(),
					"destinationCountry": req.Destination().Address().Country().Name(),
					"sourcePickupMode":   req.Source().PickupMode().String(),
					"destinationMode":    req.Destination().PickupMode().String(),
					"deliveryKind":       req.DeliveryKind().String(),
					"items":              len(req.Items()),
				})
		})
}
