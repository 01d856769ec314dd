package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

var ErrEndpointIsNotConstructed = errors.New("Endpoint must be created via NewEndpoint or RestoreEndpoint constructor")

// PickupMode says whether the client hands over (or collects) goods at a
// company warehouse or at their own door.
type PickupMode int

const (
	PickupUnknown PickupMode = iota
	// PickupSelf means the client comes to a company-designated warehouse.
	PickupSelf
	// PickupDelegate means door service.
	PickupDelegate
)

func (m PickupMode) String() string {
	switch m {
	case PickupSelf:
		return "Self"
	case PickupDelegate:
		return "Delegate"
	default:
		return "Unknown"
	}
}

func (m PickupMode) Validate() error {
	if m != PickupSelf && m != PickupDelegate {
		return errs.NewValueIsInvalidErrorWithCause("pickup mode", fmt.Errorf("%d is not a valid pickup mode", m))
	}
	return nil
}

// ParsePickupMode accepts "Self" or "Delegate" in any case.
func ParsePickupMode(s string) (PickupMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "self":
		return PickupSelf, nil
	case "delegate":
		return PickupDelegate, nil
	default:
		return PickupUnknown, errs.NewValueIsInvalidErrorWithCause("pickup mode", fmt.Errorf("%q is not a valid pickup mode", s))
	}
}

// Side selects the source or destination endpoint of a request.
type Side int

const (
	SideUnknown Side = iota
	SideSource
	SideDestination
)

func (s Side) String() string {
	switch s {
	case SideSource:
		return "source"
	case SideDestination:
		return "destination"
	default:
		return "unknown"
	}
}

func (s Side) Validate() error {
	if s != SideSource && s != SideDestination {
		return errs.NewValueIsInvalidErrorWithCause("side", fmt.Errorf("%d is not a valid side", s))
	}
	return nil
}

// ParseSide accepts "source" or "destination" in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source":
		return SideSource, nil
	case "destination":
		return SideDestination, nil
	default:
		return SideUnknown, errs.NewValueIsInvalidErrorWithCause("side", fmt.Errorf("%q is not a valid side", s))
	}
}

// DeliveryKind is the requested service level.
type DeliveryKind int

const (
	DeliveryKindUnknown DeliveryKind = iota
	DeliveryKindNormal
	DeliveryKindFast
)

func (k DeliveryKind) String() string {
	switch k {
	case DeliveryKindNormal:
		return "Normal"
	case DeliveryKindFast:
		return "Fast"
	default:
		return "Unknown"
	}
}

func (k DeliveryKind) Validate() error {
	if k != DeliveryKindNormal && k != DeliveryKindFast {
		return errs.NewValueIsInvalidErrorWithCause("delivery kind", fmt.Errorf("%d is not a valid delivery kind", k))
	}
	return nil
}

// ParseDeliveryKind accepts "Normal" or "Fast" in any case.
func ParseDeliveryKind(s string) (DeliveryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return DeliveryKindNormal, nil
	case "fast":
		return DeliveryKindFast, nil
	default:
		return DeliveryKindUnknown, errs.NewValueIsInvalidErrorWithCause(
			"delivery kind", fmt.Errorf("%q is not a valid delivery kind", s))
	}
}

// Endpoint is one end of a shipment: the address, how goods are handed over,
// and, for self pickup, the warehouse bound to this side.
type Endpoint struct {
	address     kernel.Address
	pickupMode  PickupMode
	warehouseID *kernel.UUID
	assignedAt  *time.Time
	guard       guard.ConstructorGuard
}

// NewEndpoint creates an endpoint without a warehouse binding.
func NewEndpoint(address kernel.Address, mode PickupMode) (Endpoint, error) {
	if err := errors.Join(address.Validate(), mode.Validate()); err != nil {
		return Endpoint{}, err
	}
	return Endpoint{address: address, pickupMode: mode, guard: guard.NewConstructorGuard()}, nil
}

// RestoreEndpoint rehydrates a persisted endpoint. warehouseID and assignedAt
// must be both set or both nil.
func RestoreEndpoint(address kernel.Address, mode PickupMode, warehouseID *kernel.UUID, assignedAt *time.Time) (Endpoint, error) {
	ep, err := NewEndpoint(address, mode)
	if err != nil {
		return Endpoint{}, err
	}
	if (warehouseID == nil) != (assignedAt == nil) {
		return Endpoint{}, errs.NewValueIsInvalidErrorWithCause(
			"endpoint", errors.New("warehouse id and assignment time must be set together"))
	}
	if warehouseID != nil {
		if err = warehouseID.Validate(); err != nil {
			return Endpoint{}, err
		}
		id, at := *warehouseID, *assignedAt
		ep.warehouseID, ep.assignedAt = &id, &at
	}
	return ep, nil
}

func (e Endpoint) Validate() error {
	return e.guard.Validate(ErrEndpointIsNotConstructed)
}

func (e Endpoint) Address() kernel.Address { return e.address }
func (e Endpoint) PickupMode() PickupMode  { return e.pickupMode }

// WarehouseID returns the bound warehouse, nil when unbound.
func (e Endpoint) WarehouseID() *kernel.UUID {
	if e.warehouseID == nil {
		return nil
	}
	id := *e.warehouseID
	return &id
}

// WarehouseAssignedAt returns when the warehouse was bound, nil when unbound.
func (e Endpoint) WarehouseAssignedAt() *time.Time {
	if e.assignedAt == nil {
		return nil
	}
	at := *e.assignedAt
	return &at
}

// NeedsWarehouse reports a self pickup side that has no warehouse yet.
func (e Endpoint) NeedsWarehouse() bool {
	return e.pickupMode == PickupSelf && e.warehouseID == nil
}

func (e Endpoint) withWarehouse(id kernel.UUID, at time.Time) Endpoint {
	e.warehouseID = &id
	e.assignedAt = &at
	return e
}
