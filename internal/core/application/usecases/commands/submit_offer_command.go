package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/guard"
)

var ErrSubmitOfferCommandIsNotConstructed = errors.New("SubmitOfferCommand must be created via NewSubmitOfferCommand constructor")

// SubmitOfferCommand is a company's priced bid on a Pending request.
type SubmitOfferCommand struct {
	requestID kernel.UUID
	offerID   kernel.UUID
	companyID kernel.UUID
	cost      kernel.Money
	comment   string
	guard     guard.ConstructorGuard
}

func NewSubmitOfferCommand(requestID, offerID, companyID kernel.UUID, cost kernel.Money, comment string) (SubmitOfferCommand, error) {
	cmd := SubmitOfferCommand{guard: guard.NewConstructorGuard(), comment: comment}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		requireID("offer id", offerID, &cmd.offerID),
		requireID("company id", companyID, &cmd.companyID),
		cmd.setCost(cost),
	); err != nil {
		return SubmitOfferCommand{}, err
	}
	return cmd, nil
}

func (c SubmitOfferCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOfferCommandIsNotConstructed)
}

func (c SubmitOfferCommand) RequestID() kernel.UUID { return c.requestID }
func (c SubmitOfferCommand) OfferID() kernel.UUID   { return c.offerID }
func (c SubmitOfferCommand) CompanyID() kernel.UUID { return c.companyID }
func (c SubmitOfferCommand) Cost() kernel.Money     { return c.cost }
func (c SubmitOfferCommand) Comment() string        { return c.comment }

func (c SubmitOfferCommand) Actor() audit.Actor {
	return audit.Actor{ID: c.companyID, Role: audit.RoleCompany}
}

func (c *SubmitOfferCommand) setCost(cost kernel.Money) error {
	if !cost.IsPositive() {
		return request.ErrInvalidCost
	}
	c.cost = cost
	return nil
}
