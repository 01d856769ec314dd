package resource

import (
	"errors"
	"slices"
	"strings"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

// Driver is a person who can be bound to an accepted request. A driver is
// eligible for a request when one of their addresses is in its source country.
type Driver struct {
	id        kernel.UUID
	name      string
	addresses []kernel.Address
	guard     guard.ConstructorGuard
}

func NewDriver(id kernel.UUID, name string, addresses []kernel.Address) (*Driver, error) {
	d := &Driver{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setAddresses(addresses),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver rehydrates a persisted driver.
func RestoreDriver(id kernel.UUID, name string, addresses []kernel.Address) (*Driver, error) {
	return NewDriver(id, name, addresses)
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID             { return d.id }
func (d *Driver) Name() string                { return d.name }
func (d *Driver) Addresses() []kernel.Address { return slices.Clone(d.addresses) }

// HasAddressIn reports whether any address is in country.
func (d *Driver) HasAddressIn(country kernel.Country) bool {
	for _, a := range d.addresses {
		if a.InCountry(country) {
			return true
		}
	}
	return false
}

// Countries lists the distinct countries of the driver's addresses in order.
func (d *Driver) Countries() []kernel.Country {
	var out []kernel.Country
	for _, a := range d.addresses {
		if !slices.ContainsFunc(out, a.Country().IsEqual) {
			out = append(out, a.Country())
		}
	}
	return out
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

// setAddresses keeps the first occurrence of each address.
func (d *Driver) setAddresses(addresses []kernel.Address) error {
	if len(addresses) == 0 {
		return errs.NewValueIsRequiredError("addresses")
	}
	out := make([]kernel.Address, 0, len(addresses))
	for _, a := range addresses {
		if err := a.Validate(); err != nil {
			return err
		}
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	d.addresses = out
	return nil
}
