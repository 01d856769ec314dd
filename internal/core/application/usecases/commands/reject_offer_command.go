package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New("RejectOfferCommand must be created via NewRejectOfferCommand constructor")

// RejectOfferCommand is the explicit operator action that rejects a Pending offer.
type RejectOfferCommand struct {
	requestID kernel.UUID
	offerID   kernel.UUID
	actor     audit.Actor
	guard     guard.ConstructorGuard
}

func NewRejectOfferCommand(requestID, offerID kernel.UUID, actor audit.Actor) (RejectOfferCommand, error) {
	cmd := RejectOfferCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		requireID("offer id", offerID, &cmd.offerID),
		requireActor(actor, &cmd.actor),
	); err != nil {
		return RejectOfferCommand{}, err
	}
	return cmd, nil
}

func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

func (c RejectOfferCommand) RequestID() kernel.UUID { return c.requestID }
func (c RejectOfferCommand) OfferID() kernel.UUID   { return c.offerID }
func (c RejectOfferCommand) Actor() audit.Actor     { return c.actor }
