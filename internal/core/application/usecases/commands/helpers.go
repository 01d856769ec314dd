package commands

import (
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/errs"
)

func requireID(name string, id kernel.UUID, dst *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	*dst = id
	return nil
}

func requireActor(actor audit.Actor, dst *audit.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("actor", err)
	}
	*dst = actor
	return nil
}

func statusChange(from, to string) map[string]any {
	return map[string]any{"from": from, "to": to}
}
