package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/guard"
)

var ErrTransitionCommercialCommandIsNotConstructed = errors.New(
	"TransitionCommercialCommand must be created via NewTransitionCommercialCommand constructor")

type TransitionCommercialCommand struct {
	requestID kernel.UUID
	target    request.CommercialStatus
	actor     audit.Actor
	guard     guard.ConstructorGuard
}

func NewTransitionCommercialCommand(
	requestID kernel.UUID,
	target request.CommercialStatus,
	actor audit.Actor,
) (TransitionCommercialCommand, error) {
	cmd := TransitionCommercialCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		target.Validate(),
		requireActor(actor, &cmd.actor),
	); err != nil {
		return TransitionCommercialCommand{}, err
	}
	cmd.target = target
	return cmd, nil
}

func (c TransitionCommercialCommand) Validate() error {
	return c.guard.Validate(ErrTransitionCommercialCommandIsNotConstructed)
}

func (c TransitionCommercialCommand) RequestID() kernel.UUID           { return c.requestID }
func (c TransitionCommercialCommand) Target() request.CommercialStatus { return c.target }
func (c TransitionCommercialCommand) Actor() audit.Actor               { return c.actor }
