package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/guard"
)

var ErrAssignWarehouseCommandIsNotConstructed = errors.New(
	"AssignWarehouseCommand must be created via NewAssignWarehouseCommand constructor")

// AssignWarehouseCommand binds a warehouse of the accepting company to a Self
// pickup side of a request.
type AssignWarehouseCommand struct {
	requestID   kernel.UUID
	companyID   kernel.UUID
	warehouseID kernel.UUID
	side        request.Side
	guard       guard.ConstructorGuard
}

func NewAssignWarehouseCommand(requestID, companyID, warehouseID kernel.UUID, side request.Side) (AssignWarehouseCommand, error) {
	cmd := AssignWarehouseCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		requireID("company id", companyID, &cmd.companyID),
		requireID("warehouse id", warehouseID, &cmd.warehouseID),
		side.Validate(),
	); err != nil {
		return AssignWarehouseCommand{}, err
	}
	cmd.side = side
	return cmd, nil
}

func (c AssignWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrAssignWarehouseCommandIsNotConstructed)
}

func (c AssignWarehouseCommand) RequestID() kernel.UUID   { return c.requestID }
func (c AssignWarehouseCommand) CompanyID() kernel.UUID   { return c.companyID }
func (c AssignWarehouseCommand) WarehouseID() kernel.UUID { return c.warehouseID }
func (c AssignWarehouseCommand) Side() request.Side       { return c.side }

func (c AssignWarehouseCommand) Actor() audit.Actor {
	return audit.Actor{ID: c.companyID, Role: audit.RoleCompany}
}
