package commands

import (
	"errors"
	"slices"
	"strings"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

var (
	ErrAddDriverCommandIsNotConstructed    = errors.New("AddDriverCommand must be created via NewAddDriverCommand constructor")
	ErrAddVehicleCommandIsNotConstructed   = errors.New("AddVehicleCommand must be created via NewAddVehicleCommand constructor")
	ErrAddWarehouseCommandIsNotConstructed = errors.New("AddWarehouseCommand must be created via NewAddWarehouseCommand constructor")
)

// AddDriverCommand registers a driver with the countries they operate in.
type AddDriverCommand struct {
	driverID  kernel.UUID
	name      string
	addresses []kernel.Address
	actor     audit.Actor
	guard     guard.ConstructorGuard
}

func NewAddDriverCommand(driverID kernel.UUID, name string, addresses []kernel.Address, actor audit.Actor) (AddDriverCommand, error) {
	cmd := AddDriverCommand{guard: guard.NewConstructorGuard(), name: strings.TrimSpace(name)}

	var nameErr error
	if cmd.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	var addrErr error
	if len(addresses) == 0 {
		addrErr = errs.NewValueIsRequiredError("addresses")
	}

	if err := errors.Join(
		requireID("driver id", driverID, &cmd.driverID),
		nameErr,
		addrErr,
		requireActor(actor, &cmd.actor),
	); err != nil {
		return AddDriverCommand{}, err
	}
	cmd.addresses = slices.Clone(addresses)
	return cmd, nil
}

func (c AddDriverCommand) Validate() error {
	return c.guard.Validate(ErrAddDriverCommandIsNotConstructed)
}

func (c AddDriverCommand) DriverID() kernel.UUID       { return c.driverID }
func (c AddDriverCommand) Name() string                { return c.name }
func (c AddDriverCommand) Addresses() []kernel.Address { return slices.Clone(c.addresses) }
func (c AddDriverCommand) Actor() audit.Actor          { return c.actor }

// AddVehicleCommand registers an Available vehicle. Rules are optional.
type AddVehicleCommand struct {
	vehicleID kernel.UUID
	plate     string
	country   kernel.Country
	rules     *resource.VehicleRules
	actor     audit.Actor
	guard     guard.ConstructorGuard
}

func NewAddVehicleCommand(
	vehicleID kernel.UUID,
	plate string,
	country kernel.Country,
	rules *resource.VehicleRules,
	actor audit.Actor,
) (AddVehicleCommand, error) {
	cmd := AddVehicleCommand{guard: guard.NewConstructorGuard(), plate: strings.TrimSpace(plate), rules: rules}

	var plateErr error
	if cmd.plate == "" {
		plateErr = errs.NewValueIsRequiredError("plate")
	}

	if err := errors.Join(
		requireID("vehicle id", vehicleID, &cmd.vehicleID),
		plateErr,
		country.Validate(),
		requireActor(actor, &cmd.actor),
	); err != nil {
		return AddVehicleCommand{}, err
	}
	cmd.country = country
	return cmd, nil
}

func (c AddVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAddVehicleCommandIsNotConstructed)
}

func (c AddVehicleCommand) VehicleID() kernel.UUID        { return c.vehicleID }
func (c AddVehicleCommand) Plate() string                 { return c.plate }
func (c AddVehicleCommand) Country() kernel.Country       { return c.country }
func (c AddVehicleCommand) Rules() *resource.VehicleRules { return c.rules }
func (c AddVehicleCommand) Actor() audit.Actor            { return c.actor }

// AddWarehouseCommand registers an Active warehouse owned by a company.
type AddWarehouseCommand struct {
	warehouseID kernel.UUID
	companyID   kernel.UUID
	name        string
	address     kernel.Address
	capacity    int
	actor       audit.Actor
	guard       guard.ConstructorGuard
}

func NewAddWarehouseCommand(
	warehouseID, companyID kernel.UUID,
	name string,
	address kernel.Address,
	capacity int,
	actor audit.Actor,
) (AddWarehouseCommand, error) {
	cmd := AddWarehouseCommand{guard: guard.NewConstructorGuard(), name: strings.TrimSpace(name)}

	var nameErr, capErr error
	if cmd.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if capacity <= 0 {
		capErr = errs.NewValueIsInvalidError("capacity")
	}

	if err := errors.Join(
		requireID("warehouse id", warehouseID, &cmd.warehouseID),
		requireID("company id", companyID, &cmd.companyID),
		nameErr,
		address.Validate(),
		capErr,
		requireActor(actor, &cmd.actor),
	); err != nil {
		return AddWarehouseCommand{}, err
	}
	cmd.address, cmd.capacity = address, capacity
	return cmd, nil
}

func (c AddWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrAddWarehouseCommandIsNotConstructed)
}

func (c AddWarehouseCommand) WarehouseID() kernel.UUID { return c.warehouseID }
func (c AddWarehouseCommand) CompanyID() kernel.UUID   { return c.companyID }
func (c AddWarehouseCommand) Name() string             { return c.name }
func (c AddWarehouseCommand) Address() kernel.Address  { return c.address }
func (c AddWarehouseCommand) Capacity() int            { return c.capacity }
func (c AddWarehouseCommand) Actor() audit.Actor       { return c.actor }
