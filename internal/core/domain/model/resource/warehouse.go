package resource

import (
	"errors"
	"fmt"
	"strings"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

// ErrWarehouseNotOwned is returned when a company binds a warehouse it does not operate.
var ErrWarehouseNotOwned = errs.NewPreconditionFailedError("warehouse belongs to another company")

type WarehouseStatus int

const (
	WarehouseUnknown WarehouseStatus = iota
	WarehouseActive
	WarehouseInactive
)

func (s WarehouseStatus) String() string {
	switch s {
	case WarehouseActive:
		return "Active"
	case WarehouseInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

func (s WarehouseStatus) Validate() error {
	if s != WarehouseActive && s != WarehouseInactive {
		return errs.NewValueIsInvalidErrorWithCause("warehouse status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func ParseWarehouseStatus(s string) (WarehouseStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return WarehouseActive, nil
	case "inactive":
		return WarehouseInactive, nil
	default:
		return WarehouseUnknown, errs.NewValueIsInvalidErrorWithCause(
			"warehouse status", fmt.Errorf("%q is not a valid status", s))
	}
}

// Warehouse is a company-operated site where Self pickup clients hand over or
// collect goods.
type Warehouse struct {
	id           kernel.UUID
	companyID    kernel.UUID
	name         string
	address      kernel.Address
	capacity     int
	currentStock int
	status       WarehouseStatus
	guard        guard.ConstructorGuard
}

// NewWarehouse registers an empty Active warehouse.
func NewWarehouse(id, companyID kernel.UUID, name string, address kernel.Address, capacity int) (*Warehouse, error) {
	w := &Warehouse{status: WarehouseActive, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		w.setID(id),
		w.setCompanyID(companyID),
		w.setName(name),
		w.setAddress(address),
		w.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func RestoreWarehouse(
	id, companyID kernel.UUID,
	name string,
	address kernel.Address,
	capacity, currentStock int,
	status WarehouseStatus,
) (*Warehouse, error) {
	w, err := NewWarehouse(id, companyID, name, address, capacity)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if currentStock < 0 || currentStock > capacity {
		return nil, errs.NewValueIsOutOfRangeError("current stock", currentStock, 0, capacity)
	}
	w.currentStock = currentStock
	w.status = status
	return w, nil
}

func (w *Warehouse) Validate() error {
	if w == nil {
		return ErrWarehouseIsNotConstructed
	}
	return w.guard.Validate(ErrWarehouseIsNotConstructed)
}

func (w *Warehouse) ID() kernel.UUID         { return w.id }
func (w *Warehouse) CompanyID() kernel.UUID  { return w.companyID }
func (w *Warehouse) Name() string            { return w.name }
func (w *Warehouse) Address() kernel.Address { return w.address }
func (w *Warehouse) Country() kernel.Country { return w.address.Country() }
func (w *Warehouse) Capacity() int           { return w.capacity }
func (w *Warehouse) CurrentStock() int       { return w.currentStock }
func (w *Warehouse) Status() WarehouseStatus { return w.status }

// CanServe checks that the warehouse can take a binding for companyID.
func (w *Warehouse) CanServe(companyID kernel.UUID) error {
	if !w.companyID.IsEqual(companyID) {
		return fmt.Errorf("%w: %s", ErrWarehouseNotOwned, w.id)
	}
	if w.status != WarehouseActive {
		return fmt.Errorf("%w: %s is %s", ErrWarehouseInactive, w.id, w.status)
	}
	if w.currentStock >= w.capacity {
		return fmt.Errorf("%w: %d of %d", ErrWarehouseFull, w.currentStock, w.capacity)
	}
	return nil
}

// ChangeStatus opens or closes the warehouse for new bindings.
func (w *Warehouse) ChangeStatus(to WarehouseStatus) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if w.status == to {
		return fmt.Errorf("%w: warehouse is already %s", ErrWarehouseStatusUnchanged, to)
	}
	w.status = to
	return nil
}

// AdjustStock adds delta (negative to remove goods) to the current stock,
// keeping it within [0, capacity].
func (w *Warehouse) AdjustStock(delta int) error {
	if delta == 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock delta", errors.New("delta is 0"))
	}
	next := w.currentStock + delta
	switch {
	case next > w.capacity:
		return fmt.Errorf("%w: %d + %d exceeds %d", ErrWarehouseFull, w.currentStock, delta, w.capacity)
	case next < 0:
		return fmt.Errorf("%w: %d %d", ErrStockUnderflow, w.currentStock, delta)
	}
	w.currentStock = next
	return nil
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("company id", err)
	}
	w.companyID = id
	return nil
}

func (w *Warehouse) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Warehouse) setAddress(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}
	w.address = a
	return nil
}

func (w *Warehouse) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	w.capacity = capacity
	return nil
}
