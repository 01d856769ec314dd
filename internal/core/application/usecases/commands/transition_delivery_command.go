package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/guard"
)

var ErrTransitionDeliveryCommandIsNotConstructed = errors.New(
	"TransitionDeliveryCommand must be created via NewTransitionDeliveryCommand constructor")

type TransitionDeliveryCommand struct {
	requestID kernel.UUID
	target    request.DeliveryStatus
	actor     audit.Actor
	guard     guard.ConstructorGuard
}

func NewTransitionDeliveryCommand(
	requestID kernel.UUID,
	target request.DeliveryStatus,
	actor audit.Actor,
) (TransitionDeliveryCommand, error) {
	cmd := TransitionDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		target.Validate(),
		requireActor(actor, &cmd.actor),
	); err != nil {
		return TransitionDeliveryCommand{}, err
	}
	cmd.target = target
	return cmd, nil
}

func (c TransitionDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDeliveryCommandIsNotConstructed)
}

func (c TransitionDeliveryCommand) RequestID() kernel.UUID         { return c.requestID }
func (c TransitionDeliveryCommand) Target() request.DeliveryStatus { return c.target }
func (c TransitionDeliveryCommand) Actor() audit.Actor             { return c.actor }
