// Package assignment holds the binding of a driver and a vehicle to an
// accepted shipment request.
package assignment

import (
	"errors"
	"fmt"
	"time"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment constructor")

type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (s Status) Validate() error {
	if s < StatusActive || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("assignment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusActive, StatusCompleted, StatusCancelled} {
		if st.String() == s {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("assignment status", fmt.Errorf("%q is not a valid status", s))
}

// DeriveStatus maps the request's statuses onto the assignment. The vehicle
// stays bound while the shipment is on the road: only a terminal delivery
// status, or a rejection before pickup, ends the assignment.
func DeriveStatus(commercial request.CommercialStatus, delivery request.DeliveryStatus) Status {
	switch {
	case delivery == request.DeliveryDelivered:
		return StatusCompleted
	case delivery.IsAbort():
		return StatusCancelled
	case commercial == request.CommercialRejected && delivery == request.DeliveryPending:
		return StatusCancelled
	default:
		return StatusActive
	}
}

type Assignment struct {
	id        kernel.UUID
	requestID kernel.UUID
	driverID  kernel.UUID
	vehicleID kernel.UUID
	status    Status
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewAssignment(id, requestID, driverID, vehicleID kernel.UUID, createdAt time.Time) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		requestID.Validate(),
		driverID.Validate(),
		vehicleID.Validate(),
	); err != nil {
		return nil, err
	}
	return &Assignment{
		id:        id,
		requestID: requestID,
		driverID:  driverID,
		vehicleID: vehicleID,
		status:    StatusActive,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func RestoreAssignment(id, requestID, driverID, vehicleID kernel.UUID, status Status, createdAt time.Time) (*Assignment, error) {
	a, err := NewAssignment(id, requestID, driverID, vehicleID, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	a.status = status
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID        { return a.id }
func (a *Assignment) RequestID() kernel.UUID { return a.requestID }
func (a *Assignment) DriverID() kernel.UUID  { return a.driverID }
func (a *Assignment) VehicleID() kernel.UUID { return a.vehicleID }
func (a *Assignment) Status() Status         { return a.status }
func (a *Assignment) CreatedAt() time.Time   { return a.createdAt }

func (a *Assignment) IsActive() bool {
	return a.status == StatusActive
}

// Follow updates the status from the request. It returns true when the
// assignment just left Active, which is when the vehicle must be released.
// Once finished an assignment never changes again.
func (a *Assignment) Follow(r *request.ShipmentRequest) bool {
	if !a.IsActive() {
		return false
	}
	next := DeriveStatus(r.CommercialStatus(), r.DeliveryStatus())
	if next == StatusActive {
		return false
	}
	a.status = next
	return true
}
