package request

import (
	"time"

	"brokerage/internal/core/domain/model/kernel"
)

// StatusEvent is one entry of a status history: the status entered, by whom and when.
type StatusEvent[S CommercialStatus | DeliveryStatus] struct {
	Status  S
	ActorID kernel.UUID
	At      time.Time
}

func newStatusEvent[S CommercialStatus | DeliveryStatus](status S, actorID kernel.UUID, at time.Time) StatusEvent[S] {
	return StatusEvent[S]{Status: status, ActorID: actorID, At: at.UTC()}
}
