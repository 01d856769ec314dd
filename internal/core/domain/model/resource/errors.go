package resource

import (
	"errors"

	"brokerage/internal/pkg/errs"
)

var (
	ErrDriverIsNotConstructed    = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
	ErrVehicleIsNotConstructed   = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle constructor")
	ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse or RestoreWarehouse constructor")
)

var (
	// ErrVehicleUnavailable is returned when a vehicle is not Available at bind time,
	// including when a concurrent assignment flipped it first.
	ErrVehicleUnavailable = errs.NewConflictError("vehicle is not available")
	ErrNoEligibleDriver   = errs.NewPreconditionFailedError("driver has no address in the source country")
	ErrCapacityExceeded   = errs.NewPreconditionFailedError("vehicle rules exceeded")
	ErrWarehouseInactive  = errs.NewPreconditionFailedError("warehouse is not active")
	ErrWarehouseFull      = errs.NewPreconditionFailedError("warehouse is full")
	ErrInvalidVehicleMove = errs.NewPreconditionFailedError("invalid vehicle status transition")

	ErrWarehouseStatusUnchanged = errs.NewPreconditionFailedError("warehouse status unchanged")
	ErrStockUnderflow           = errs.NewPreconditionFailedError("warehouse stock cannot go below zero")
)
