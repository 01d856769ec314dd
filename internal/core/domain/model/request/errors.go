package request

import (
	"errors"

	"brokerage/internal/pkg/errs"
)

// ErrShipmentRequestIsNotConstructed is returned when a ShipmentRequest instance was not created
// through NewShipmentRequest or RestoreShipmentRequest.
var ErrShipmentRequestIsNotConstructed = errors.New(
	"ShipmentRequest must be created via NewShipmentRequest or RestoreShipmentRequest constructor",
)

// State machine failures.
var (
	ErrInvalidTransition = errs.NewPreconditionFailedError("invalid transition")
	ErrPreconditionUnmet = errs.NewPreconditionFailedError("no cost offer is accepted")
	ErrWarehouseRequired = errs.NewPreconditionFailedError("warehouse required")
	ErrHistoryDrift      = errors.New("status history does not replay to the stored status")
)

// Offer negotiation failures.
var (
	ErrRequestNotOpen     = errs.NewPreconditionFailedError("request is not open")
	ErrOfferLimitExceeded = errs.NewPreconditionFailedError("offer limit exceeded")
	ErrOfferNotPending    = errs.NewPreconditionFailedError("offer is not pending")
	ErrInvalidCost        = errs.NewValueIsInvalidError("cost")
	ErrOfferNotFound      = errs.NewObjectNotFoundError("offer", "on request")
)

// Resource binding failures.
var (
	ErrInvalidItems       = errs.NewValueIsInvalidError("items")
	ErrRequestNotAccepted = errs.NewPreconditionFailedError("request is not accepted")
	ErrNotSelfPickup      = errs.NewPreconditionFailedError("side is not self pickup")
	ErrNotAssignedCompany = errs.NewPreconditionFailedError("company does not hold the accepted offer")
	ErrCountryMismatch    = errs.NewPreconditionFailedError("country mismatch")
	ErrAlreadyAssigned    = errs.NewConflictError("warehouse already assigned")
	ErrAssignmentExists   = errs.NewConflictError("request already has an assignment")
)
