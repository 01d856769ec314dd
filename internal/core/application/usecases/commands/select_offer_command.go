package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/guard"
)

var ErrSelectOfferCommandIsNotConstructed = errors.New("SelectOfferCommand must be created via NewSelectOfferCommand constructor")

// SelectOfferCommand accepts one offer of a Pending request.
type SelectOfferCommand struct {
	requestID kernel.UUID
	offerID   kernel.UUID
	actor     audit.Actor
	guard     guard.ConstructorGuard
}

func NewSelectOfferCommand(requestID, offerID kernel.UUID, actor audit.Actor) (SelectOfferCommand, error) {
	cmd := SelectOfferCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		requireID("offer id", offerID, &cmd.offerID),
		requireActor(actor, &cmd.actor),
	); err != nil {
		return SelectOfferCommand{}, err
	}
	return cmd, nil
}

func (c SelectOfferCommand) Validate() error {
	return c.guard.Validate(ErrSelectOfferCommandIsNotConstructed)
}

func (c SelectOfferCommand) RequestID() kernel.UUID { return c.requestID }
func (c SelectOfferCommand) OfferID() kernel.UUID   { return c.offerID }
func (c SelectOfferCommand) Actor() audit.Actor     { return c.actor }
