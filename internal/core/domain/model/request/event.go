package request

import (
	"time"

	"brokerage/internal/core/domain/model/kernel"
)

// EventKind names a lifecycle event recorded by the aggregate.
type EventKind string

const (
	EventCommercialChanged EventKind = "commercial_status_changed"
	EventDeliveryChanged   EventKind = "delivery_status_changed"
	EventOfferSubmitted    EventKind = "offer_submitted"
	EventOfferSelected     EventKind = "offer_selected"
	EventOfferRejected     EventKind = "offer_rejected"
	EventWarehouseAssigned EventKind = "warehouse_assigned"
	EventAssignmentBound   EventKind = "assignment_created"
	EventRequestCreated    EventKind = "request_created"
	EventRequestDeclined   EventKind = "request_declined"
)

// Event is published after the transaction that produced it commits.
type Event struct {
	Kind      EventKind   `json:"kind"`
	RequestID kernel.UUID `json:"requestId"`
	From      string      `json:"from,omitempty"`
	To        string      `json:"to,omitempty"`
	SubjectID string      `json:"subjectId,omitempty"`
	At        time.Time   `json:"at"`
}
