package request

import (
	"fmt"

	"brokerage/internal/pkg/errs"
)

// DeliveryStatus is the physical fulfilment phase of a request.
//
// State transitions:
//
//	Pending -> PickedUpSource -> WarehouseSourceReceived -> InTransit
//	        -> WarehouseDestinationReceived -> PickedUpDestination -> Delivered
//
// Failed and Cancelled are reachable from every non-terminal status.
// Delivered, Failed and Cancelled are terminal.
type DeliveryStatus int

const (
	DeliveryUnknown DeliveryStatus = iota
	DeliveryPending
	DeliveryPickedUpSource
	DeliveryWarehouseSourceReceived
	DeliveryInTransit
	DeliveryWarehouseDestinationReceived
	DeliveryPickedUpDestination
	DeliveryDelivered
	DeliveryFailed
	DeliveryCancelled
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:                      "Unknown",
		DeliveryPending:                      "Pending",
		DeliveryPickedUpSource:               "PickedUpSource",
		DeliveryWarehouseSourceReceived:      "WarehouseSourceReceived",
		DeliveryInTransit:                    "InTransit",
		DeliveryWarehouseDestinationReceived: "WarehouseDestinationReceived",
		DeliveryPickedUpDestination:          "PickedUpDestination",
		DeliveryDelivered:                    "Delivered",
		DeliveryFailed:                       "Failed",
		DeliveryCancelled:                    "Cancelled",
	}
}

func getDeliveryActionNames() map[DeliveryStatus]string {
	//nolint:exhaustive // Unknown has no action
	return map[DeliveryStatus]string{
		DeliveryPending:                      "PENDING",
		DeliveryPickedUpSource:               "PICKED_UP_SOURCE",
		DeliveryWarehouseSourceReceived:      "WAREHOUSE_SOURCE_RECEIVED",
		DeliveryInTransit:                    "IN_TRANSIT",
		DeliveryWarehouseDestinationReceived: "WAREHOUSE_DESTINATION_RECEIVED",
		DeliveryPickedUpDestination:          "PICKED_UP_DESTINATION",
		DeliveryDelivered:                    "DELIVERED",
		DeliveryFailed:                       "FAILED",
		DeliveryCancelled:                    "CANCELLED",
	}
}

// getDeliveryForwardPath lists the main path; each status may only move to its successor.
func getDeliveryForwardPath() []DeliveryStatus {
	return []DeliveryStatus{
		DeliveryPending,
		DeliveryPickedUpSource,
		DeliveryWarehouseSourceReceived,
		DeliveryInTransit,
		DeliveryWarehouseDestinationReceived,
		DeliveryPickedUpDestination,
		DeliveryDelivered,
	}
}

// ParseDeliveryStatus maps a status name such as "InTransit" back to its value.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for status, name := range getDeliveryStatusStrings() {
		if status != DeliveryUnknown && name == s {
			return status, nil
		}
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status", fmt.Errorf("%q is not a valid status", s))
}

func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[s]; !ok || s == DeliveryUnknown {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ActionName returns the upper snake case name used in audit actions.
func (s DeliveryStatus) ActionName() string {
	return getDeliveryActionNames()[s]
}

func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed || s == DeliveryCancelled
}

// IsAbort reports whether s is one of the shortcut terminal statuses.
func (s DeliveryStatus) IsAbort() bool {
	return s == DeliveryFailed || s == DeliveryCancelled
}

// Next returns the successor on the main path.
func (s DeliveryStatus) Next() (DeliveryStatus, bool) {
	path := getDeliveryForwardPath()
	for i := 0; i < len(path)-1; i++ {
		if path[i] == s {
			return path[i+1], true
		}
	}
	return DeliveryUnknown, false
}

func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	if s.IsTerminal() || s == DeliveryUnknown {
		return false
	}
	if target.IsAbort() {
		return true
	}
	next, ok := s.Next()
	return ok && next == target
}

// ValidateDeliveryTransition is the pure validator for one delivery step.
// Coupling to the commercial status and warehouse bindings lives on the aggregate.
func ValidateDeliveryTransition(from, to DeliveryStatus) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: delivery %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
