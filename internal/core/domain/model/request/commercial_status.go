package request

import (
	"fmt"

	"brokerage/internal/pkg/errs"
)

// CommercialStatus is the negotiation phase of a request.
//
// State transitions:
//
//	Pending ──> Accepted ──> ActionNeeded ──> InProgress ──> Completed
//	   │           │
//	   └───────────┴──> Rejected
//
// Completed and Rejected are terminal.
type CommercialStatus int

const (
	// CommercialUnknown catches uninitialized values.
	CommercialUnknown CommercialStatus = iota
	CommercialPending
	CommercialAccepted
	CommercialActionNeeded
	CommercialInProgress
	CommercialCompleted
	CommercialRejected
)

func getCommercialStatusStrings() map[CommercialStatus]string {
	return map[CommercialStatus]string{
		CommercialUnknown:      "Unknown",
		CommercialPending:      "Pending",
		CommercialAccepted:     "Accepted",
		CommercialActionNeeded: "ActionNeeded",
		CommercialInProgress:   "InProgress",
		CommercialCompleted:    "Completed",
		CommercialRejected:     "Rejected",
	}
}

func getCommercialActionNames() map[CommercialStatus]string {
	//nolint:exhaustive // Unknown has no action
	return map[CommercialStatus]string{
		CommercialPending:      "PENDING",
		CommercialAccepted:     "ACCEPTED",
		CommercialActionNeeded: "ACTION_NEEDED",
		CommercialInProgress:   "IN_PROGRESS",
		CommercialCompleted:    "COMPLETED",
		CommercialRejected:     "REJECTED",
	}
}

// getCommercialTransitions is the legal-transition table.
func getCommercialTransitions() map[CommercialStatus][]CommercialStatus {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing edges
	return map[CommercialStatus][]CommercialStatus{
		CommercialPending:      {CommercialAccepted, CommercialRejected},
		CommercialAccepted:     {CommercialActionNeeded, CommercialRejected},
		CommercialActionNeeded: {CommercialInProgress},
		CommercialInProgress:   {CommercialCompleted},
	}
}

// ParseCommercialStatus maps a status name such as "Accepted" back to its value.
func ParseCommercialStatus(s string) (CommercialStatus, error) {
	for status, name := range getCommercialStatusStrings() {
		if status != CommercialUnknown && name == s {
			return status, nil
		}
	}
	return CommercialUnknown, errs.NewValueIsInvalidErrorWithCause(
		"commercial status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined values.
func (s CommercialStatus) Validate() error {
	if _, ok := getCommercialStatusStrings()[s]; !ok || s == CommercialUnknown {
		return errs.NewValueIsInvalidErrorWithCause("commercial status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s CommercialStatus) String() string {
	if str, ok := getCommercialStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ActionName returns the upper snake case name used in audit actions.
func (s CommercialStatus) ActionName() string {
	return getCommercialActionNames()[s]
}

// IsTerminal reports whether no further transitions exist.
func (s CommercialStatus) IsTerminal() bool {
	return s == CommercialCompleted || s == CommercialRejected
}

// HasReachedAccepted reports whether the request is Accepted or later on the
// main path. Rejected does not count.
func (s CommercialStatus) HasReachedAccepted() bool {
	switch s {
	case CommercialAccepted, CommercialActionNeeded, CommercialInProgress, CommercialCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether target is directly reachable from s.
func (s CommercialStatus) CanTransitionTo(target CommercialStatus) bool {
	for _, next := range getCommercialTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateCommercialTransition is the pure validator for one commercial step.
// It knows nothing about offers; the Accepted precondition lives on the aggregate.
func ValidateCommercialTransition(from, to CommercialStatus) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: commercial %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
