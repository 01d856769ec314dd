package commands

import (
	"errors"
	"fmt"
	"slices"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New("CreateRequestCommand must be created via NewCreateRequestCommand constructor")

// CreateRequestCommand places a new shipment request for a client.
// The client is the actor of the REQUEST_CREATED audit entry.
type CreateRequestCommand struct {
	requestID   kernel.UUID
	clientID    kernel.UUID
	source      request.Endpoint
	destination request.Endpoint
	items       []request.Item
	kind        request.DeliveryKind
	guard       guard.ConstructorGuard
}

func NewCreateRequestCommand(
	requestID, clientID kernel.UUID,
	source, destination request.Endpoint,
	items []request.Item,
	kind request.DeliveryKind,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setClientID(clientID),
		cmd.setEndpoints(source, destination),
		cmd.setItems(items),
		cmd.setKind(kind),
	); err != nil {
		return CreateRequestCommand{}, err
	}
	return cmd, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID             { return c.requestID }
func (c CreateRequestCommand) ClientID() kernel.UUID              { return c.clientID }
func (c CreateRequestCommand) Source() request.Endpoint           { return c.source }
func (c CreateRequestCommand) Destination() request.Endpoint      { return c.destination }
func (c CreateRequestCommand) Items() []request.Item              { return slices.Clone(c.items) }
func (c CreateRequestCommand) DeliveryKind() request.DeliveryKind { return c.kind }

func (c CreateRequestCommand) Actor() audit.Actor {
	return audit.Actor{ID: c.clientID, Role: audit.RoleClient}
}

func (c *CreateRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("request id", err)
	}
	c.requestID = id
	return nil
}

func (c *CreateRequestCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	c.clientID = id
	return nil
}

func (c *CreateRequestCommand) setEndpoints(source, destination request.Endpoint) error {
	if err := errors.Join(source.Validate(), destination.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("endpoints", err)
	}
	c.source, c.destination = source, destination
	return nil
}

func (c *CreateRequestCommand) setItems(items []request.Item) error {
	if len(items) == 0 {
		return request.ErrInvalidItems
	}
	for idx, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("%w: item %d: %w", request.ErrInvalidItems, idx, err)
		}
	}
	c.items = slices.Clone(items)
	return nil
}

func (c *CreateRequestCommand) setKind(kind request.DeliveryKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}
