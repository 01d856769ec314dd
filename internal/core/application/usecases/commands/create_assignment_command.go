package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/guard"
)

var ErrCreateAssignmentCommandIsNotConstructed = errors.New(
	"CreateAssignmentCommand must be created via NewCreateAssignmentCommand constructor")

// CreateAssignmentCommand binds the driver and vehicle a dispatcher picked to
// an accepted request.
type CreateAssignmentCommand struct {
	requestID    kernel.UUID
	assignmentID kernel.UUID
	driverID     kernel.UUID
	vehicleID    kernel.UUID
	actor        audit.Actor
	guard        guard.ConstructorGuard
}

func NewCreateAssignmentCommand(
	requestID, assignmentID, driverID, vehicleID kernel.UUID,
	actor audit.Actor,
) (CreateAssignmentCommand, error) {
	cmd := CreateAssignmentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		requireID("assignment id", assignmentID, &cmd.assignmentID),
		requireID("driver id", driverID, &cmd.driverID),
		requireID("vehicle id", vehicleID, &cmd.vehicleID),
		requireActor(actor, &cmd.actor),
	); err != nil {
		return CreateAssignmentCommand{}, err
	}
	return cmd, nil
}

func (c CreateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAssignmentCommandIsNotConstructed)
}

func (c CreateAssignmentCommand) RequestID() kernel.UUID    { return c.requestID }
func (c CreateAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c CreateAssignmentCommand) DriverID() kernel.UUID     { return c.driverID }
func (c CreateAssignmentCommand) VehicleID() kernel.UUID    { return c.vehicleID }
func (c CreateAssignmentCommand) Actor() audit.Actor        { return c.actor }
