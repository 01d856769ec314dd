package commands

import (
	"errors"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

var (
	ErrChangeVehicleStatusCommandIsNotConstructed = errors.New(
		"ChangeVehicleStatusCommand must be created via NewChangeVehicleStatusCommand constructor")
	ErrChangeWarehouseStatusCommandIsNotConstructed = errors.New(
		"ChangeWarehouseStatusCommand must be created via NewChangeWarehouseStatusCommand constructor")
	ErrAdjustWarehouseStockCommandIsNotConstructed = errors.New(
		"AdjustWarehouseStockCommand must be created via NewAdjustWarehouseStockCommand constructor")
)

// ChangeVehicleStatusCommand moves a vehicle in or out of service.
// InUse is owned by assignments and cannot be requested here.
type ChangeVehicleStatusCommand struct {
	vehicleID kernel.UUID
	target    resource.VehicleStatus
	actor     audit.Actor
	guard     guard.ConstructorGuard
}

func NewChangeVehicleStatusCommand(
	vehicleID kernel.UUID,
	target resource.VehicleStatus,
	actor audit.Actor,
) (ChangeVehicleStatusCommand, error) {
	cmd := ChangeVehicleStatusCommand{guard: guard.NewConstructorGuard()}

	targetErr := target.Validate()
	if targetErr == nil && target == resource.VehicleInUse {
		targetErr = errs.NewValueIsInvalidErrorWithCause("target",
			errors.New("InUse is set by creating an assignment"))
	}

	if err := errors.Join(
		requireID("vehicle id", vehicleID, &cmd.vehicleID),
		targetErr,
		requireActor(actor, &cmd.actor),
	); err != nil {
		return ChangeVehicleStatusCommand{}, err
	}
	cmd.target = target
	return cmd, nil
}

func (c ChangeVehicleStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeVehicleStatusCommandIsNotConstructed)
}

func (c ChangeVehicleStatusCommand) VehicleID() kernel.UUID         { return c.vehicleID }
func (c ChangeVehicleStatusCommand) Target() resource.VehicleStatus { return c.target }
func (c ChangeVehicleStatusCommand) Actor() audit.Actor             { return c.actor }

// ChangeWarehouseStatusCommand opens or closes a warehouse for new bindings.
type ChangeWarehouseStatusCommand struct {
	warehouseID kernel.UUID
	target      resource.WarehouseStatus
	actor       audit.Actor
	guard       guard.ConstructorGuard
}

func NewChangeWarehouseStatusCommand(
	warehouseID kernel.UUID,
	target resource.WarehouseStatus,
	actor audit.Actor,
) (ChangeWarehouseStatusCommand, error) {
	cmd := ChangeWarehouseStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("warehouse id", warehouseID, &cmd.warehouseID),
		target.Validate(),
		requireActor(actor, &cmd.actor),
	); err != nil {
		return ChangeWarehouseStatusCommand{}, err
	}
	cmd.target = target
	return cmd, nil
}

func (c ChangeWarehouseStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeWarehouseStatusCommandIsNotConstructed)
}

func (c ChangeWarehouseStatusCommand) WarehouseID() kernel.UUID         { return c.warehouseID }
func (c ChangeWarehouseStatusCommand) Target() resource.WarehouseStatus { return c.target }
func (c ChangeWarehouseStatusCommand) Actor() audit.Actor               { return c.actor }

// AdjustWarehouseStockCommand records goods arriving (positive delta) or
// leaving (negative delta) a warehouse.
type AdjustWarehouseStockCommand struct {
	warehouseID kernel.UUID
	delta       int
	actor       audit.Actor
	guard       guard.ConstructorGuard
}

func NewAdjustWarehouseStockCommand(warehouseID kernel.UUID, delta int, actor audit.Actor) (AdjustWarehouseStockCommand, error) {
	cmd := AdjustWarehouseStockCommand{guard: guard.NewConstructorGuard(), delta: delta}

	var deltaErr error
	if delta == 0 {
		deltaErr = errs.NewValueIsInvalidError("delta")
	}

	if err := errors.Join(
		requireID("warehouse id", warehouseID, &cmd.warehouseID),
		deltaErr,
		requireActor(actor, &cmd.actor),
	); err != nil {
		return AdjustWarehouseStockCommand{}, err
	}
	return cmd, nil
}

func (c AdjustWarehouseStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustWarehouseStockCommandIsNotConstructed)
}

func (c AdjustWarehouseStockCommand) WarehouseID() kernel.UUID { return c.warehouseID }
func (c AdjustWarehouseStockCommand) Delta() int               { return c.delta }
func (c AdjustWarehouseStockCommand) Actor() audit.Actor       { return c.actor }
