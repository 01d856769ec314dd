package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/guard"
)

var ErrRejectRequestCommandIsNotConstructed = errors.New("RejectRequestCommand must be created via NewRejectRequestCommand constructor")

// RejectRequestCommand hides a Pending request from one company's queue.
type RejectRequestCommand struct {
	requestID kernel.UUID
	companyID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewRejectRequestCommand(requestID, companyID kernel.UUID) (RejectRequestCommand, error) {
	cmd := RejectRequestCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		requireID("company id", companyID, &cmd.companyID),
	); err != nil {
		return RejectRequestCommand{}, err
	}
	return cmd, nil
}

func (c RejectRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectRequestCommandIsNotConstructed)
}

func (c RejectRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c RejectRequestCommand) CompanyID() kernel.UUID { return c.companyID }

func (c RejectRequestCommand) Actor() audit.Actor {
	return audit.Actor{ID: c.companyID, Role: audit.RoleCompany}
}
