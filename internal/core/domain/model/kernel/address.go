package kernel

import (
	"errors"
	"fmt"
	"strings"

	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly initialized Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// ErrCountryIsNotConstructed is returned for the zero Country.
var ErrCountryIsNotConstructed = errs.NewValueIsRequiredError("country must be created via NewCountry")

const maxCountryLength = 64

// Country names the country an address, vehicle or warehouse belongs to.
// Countries compare case-insensitively and ignore surrounding whitespace,
// so "Egypt" and " egypt " are the same country.
type Country struct {
	name string
}

// NewCountry validates and normalizes a country name.
func NewCountry(name string) (Country, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Country{}, errs.NewValueIsRequiredError("country")
	}
	if len(trimmed) > maxCountryLength {
		return Country{}, errs.NewValueIsOutOfRangeError("country length", len(trimmed), 1, maxCountryLength)
	}
	return Country{name: trimmed}, nil
}

// MustNewCountry is NewCountry that panics on error. Tests and fixtures only.
func MustNewCountry(name string) Country {
	c, err := NewCountry(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate reports whether the country was built by NewCountry.
func (c Country) Validate() error {
	if c.name == "" {
		return ErrCountryIsNotConstructed
	}
	return nil
}

// Name returns the country name as supplied, trimmed.
func (c Country) Name() string {
	return c.name
}

// Code returns the normalized comparison key.
func (c Country) Code() string {
	return strings.ToUpper(c.name)
}

// IsEqual reports whether both values name the same country.
func (c Country) IsEqual(other Country) bool {
	return c.name != "" && strings.EqualFold(c.name, other.name)
}

func (c Country) String() string {
	return c.name
}

// Address is a postal address. Only the country takes part in matching;
// the remaining parts are carried for display.
//
// Example:
//
//	addr, err := kernel.NewAddress(kernel.MustNewCountry("Egypt"), "Cairo", "12 Tahrir Sq", "11511")
type Address struct { //nolint:recvcheck //using for validation
	country    Country
	city       string
	line       string
	postalCode string
	guard      guard.ConstructorGuard
}

// NewAddress creates an Address. Country and city are required.
func NewAddress(country Country, city, line, postalCode string) (Address, error) {
	addr := Address{
		line:       strings.TrimSpace(line),
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(addr.setCountry(country), addr.setCity(city)); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks if the Address was properly constructed using NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Country() Country {
	return a.country
}

func (a Address) City() string {
	return a.city
}

func (a Address) Line() string {
	return a.line
}

func (a Address) PostalCode() string {
	return a.postalCode
}

// InCountry reports whether the address lies in c.
func (a Address) InCountry(c Country) bool {
	return a.country.IsEqual(c)
}

func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.line, a.city, a.postalCode, a.country.Name()} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (a *Address) setCountry(country Country) error {
	if err := country.Validate(); err != nil {
		return err
	}
	a.country = country
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredErrorWithCause("address", fmt.Errorf("city is empty"))
	}
	a.city = city
	return nil
}
