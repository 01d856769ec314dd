package audit

import (
	"fmt"
	"regexp"

	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"
)

// Action is the enumerated kind of an audit entry, e.g. ORDER_ACCEPTED.
type Action string

const (
	ActionCostOfferSubmitted Action = "COST_OFFER_SUBMITTED"
	ActionCostOfferRejected  Action = "COST_OFFER_REJECTED"
	ActionCostSet            Action = "COST_SET"
	ActionRequestCreated     Action = "REQUEST_CREATED"
	ActionRequestDeclined    Action = "REQUEST_DECLINED"
	ActionWarehouseAssigned  Action = "WAREHOUSE_ASSIGNED"
	ActionAssignmentCreated  Action = "ASSIGNMENT_CREATED"
	ActionVehicleReleased    Action = "VEHICLE_RELEASED"
	ActionDriverAdded        Action = "DRIVER_ADDED"
	ActionVehicleAdded       Action = "VEHICLE_ADDED"
	ActionWarehouseAdded     Action = "WAREHOUSE_ADDED"

	ActionVehicleStatusChanged   Action = "VEHICLE_STATUS_CHANGED"
	ActionWarehouseStatusChanged Action = "WAREHOUSE_STATUS_CHANGED"
	ActionWarehouseStockAdjusted Action = "WAREHOUSE_STOCK_ADJUSTED"
)

var actionPattern = regexp.MustCompile(`^[A-Z][A-Z_]*[A-Z]$`)

// CommercialAction is ORDER_<TARGET> for a commercial transition.
func CommercialAction(target request.CommercialStatus) Action {
	return Action("ORDER_" + target.ActionName())
}

// DeliveryAction is DELIVERY_<TARGET> for a delivery transition.
func DeliveryAction(target request.DeliveryStatus) Action {
	return Action("DELIVERY_" + target.ActionName())
}

func (a Action) Validate() error {
	if !actionPattern.MatchString(string(a)) {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not an upper snake case action", string(a)))
	}
	return nil
}

func (a Action) String() string {
	return string(a)
}
