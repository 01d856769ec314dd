package resource

import (
	"errors"
	"fmt"
	"strings"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

// VehicleStatus is the availability of a vehicle. It is shared by every
// request, so the Available <-> InUse flip is done with compare-and-swap by
// the repository.
type VehicleStatus int

const (
	VehicleUnknown VehicleStatus = iota
	VehicleAvailable
	VehicleInUse
	VehicleMaintenance
	VehicleRetired
)

func getVehicleStatusStrings() map[VehicleStatus]string {
	return map[VehicleStatus]string{
		VehicleUnknown:     "Unknown",
		VehicleAvailable:   "Available",
		VehicleInUse:       "InUse",
		VehicleMaintenance: "Maintenance",
		VehicleRetired:     "Retired",
	}
}

func getVehicleTransitions() map[VehicleStatus][]VehicleStatus {
	//nolint:exhaustive // Retired and Unknown have no outgoing edges
	return map[VehicleStatus][]VehicleStatus{
		VehicleAvailable:   {VehicleInUse, VehicleMaintenance, VehicleRetired},
		VehicleInUse:       {VehicleAvailable},
		VehicleMaintenance: {VehicleAvailable, VehicleRetired},
	}
}

func ParseVehicleStatus(s string) (VehicleStatus, error) {
	for status, name := range getVehicleStatusStrings() {
		if status != VehicleUnknown && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicle status", fmt.Errorf("%q is not a valid status", s))
}

func (s VehicleStatus) String() string {
	if str, ok := getVehicleStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s VehicleStatus) Validate() error {
	if _, ok := getVehicleStatusStrings()[s]; !ok || s == VehicleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ValidateVehicleTransition checks one status change. Repositories call it
// before the conditional write.
func ValidateVehicleTransition(from, to VehicleStatus) error {
	if err := to.Validate(); err != nil {
		return err
	}
	for _, next := range getVehicleTransitions()[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidVehicleMove, from, to)
}

// Vehicle is a truck or van registered in one country.
type Vehicle struct {
	id      kernel.UUID
	plate   string
	country kernel.Country
	status  VehicleStatus
	rules   *VehicleRules
	guard   guard.ConstructorGuard
}

// NewVehicle registers an Available vehicle. rules may be nil.
func NewVehicle(id kernel.UUID, plate string, country kernel.Country, rules *VehicleRules) (*Vehicle, error) {
	v := &Vehicle{status: VehicleAvailable, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		v.setID(id),
		v.setPlate(plate),
		v.setCountry(country),
		v.setRules(rules),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle rehydrates a persisted vehicle with its status.
func RestoreVehicle(
	id kernel.UUID,
	plate string,
	country kernel.Country,
	status VehicleStatus,
	rules *VehicleRules,
) (*Vehicle, error) {
	v, err := NewVehicle(id, plate, country, rules)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	v.status = status
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID         { return v.id }
func (v *Vehicle) Plate() string           { return v.plate }
func (v *Vehicle) Country() kernel.Country { return v.country }
func (v *Vehicle) Status() VehicleStatus   { return v.status }

// Rules returns the optional rule set, nil when the vehicle carries anything.
func (v *Vehicle) Rules() *VehicleRules { return v.rules }

func (v *Vehicle) IsAvailable() bool {
	return v.status == VehicleAvailable
}

// OperatesIn reports whether the vehicle is registered in country.
func (v *Vehicle) OperatesIn(country kernel.Country) bool {
	return v.country.IsEqual(country)
}

// ChangeStatus applies a validated status change to this copy. Shared state is
// changed by the repository's compare-and-swap, never by saving this value.
func (v *Vehicle) ChangeStatus(to VehicleStatus) error {
	if err := ValidateVehicleTransition(v.status, to); err != nil {
		return err
	}
	v.status = to
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlate(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return errs.NewValueIsRequiredError("plate")
	}
	v.plate = plate
	return nil
}

func (v *Vehicle) setCountry(c kernel.Country) error {
	if err := c.Validate(); err != nil {
		return err
	}
	v.country = c
	return nil
}

func (v *Vehicle) setRules(r *VehicleRules) error {
	if r == nil {
		return nil
	}
	if err := r.Validate(); err != nil {
		return err
	}
	v.rules = r
	return nil
}
