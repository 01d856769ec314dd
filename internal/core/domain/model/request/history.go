package request

import "fmt"

// ReplayCommercial re-derives the commercial status by applying every history
// entry to Pending with the same validator the aggregate uses.
func ReplayCommercial(history []StatusEvent[CommercialStatus]) (CommercialStatus, error) {
	current := CommercialPending
	for idx, ev := range history {
		if err := ValidateCommercialTransition(current, ev.Status); err != nil {
			return current, fmt.Errorf("%w: commercial entry %d: %w", ErrHistoryDrift, idx, err)
		}
		current = ev.Status
	}
	return current, nil
}

// ReplayDelivery is ReplayCommercial for the delivery dimension.
func ReplayDelivery(history []StatusEvent[DeliveryStatus]) (DeliveryStatus, error) {
	current := DeliveryPending
	for idx, ev := range history {
		if err := ValidateDeliveryTransition(current, ev.Status); err != nil {
			return current, fmt.Errorf("%w: delivery entry %d: %w", ErrHistoryDrift, idx, err)
		}
		current = ev.Status
	}
	return current, nil
}

// VerifyHistory checks that both histories replay to the stored status fields.
func (r *ShipmentRequest) VerifyHistory() error {
	commercial, err := ReplayCommercial(r.commercialHistory)
	if err != nil {
		return err
	}
	if commercial != r.commercialStatus {
		return fmt.Errorf("%w: commercial history replays to %s, stored %s",
			ErrHistoryDrift, commercial, r.commercialStatus)
	}

	delivery, err := ReplayDelivery(r.deliveryHistory)
	if err != nil {
		return err
	}
	if delivery != r.deliveryStatus {
		return fmt.Errorf("%w: delivery history replays to %s, stored %s",
			ErrHistoryDrift, delivery, r.deliveryStatus)
	}
	return nil
}
