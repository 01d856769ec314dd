package request

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

// ShipmentRequest is the aggregate root of the lifecycle engine. It owns two
// independent status dimensions, the cost offers made against it and the
// warehouse bindings of both endpoints.
//
// Invariants kept by the aggregate:
//   - delivery status only moves once the commercial status has reached Accepted
//   - a Self pickup side must carry a warehouse before delivery leaves Pending
//   - at most one cost offer is Accepted, and only while offers are being selected
//   - every status change is appended to the matching history in the same call
//
// All mutations go through methods; the current status fields are the source
// of truth and the histories are append-only logs checked by VerifyHistory.
type ShipmentRequest struct {
	id       kernel.UUID
	clientID kernel.UUID

	source      Endpoint
	destination Endpoint
	items       []Item
	kind        DeliveryKind

	commercialStatus CommercialStatus
	deliveryStatus   DeliveryStatus

	primaryCost         *kernel.Money
	assignedCompanyID   *kernel.UUID
	assignedWarehouseID *kernel.UUID
	assignmentID        *kernel.UUID

	offers            []*CostOffer
	commercialHistory []StatusEvent[CommercialStatus]
	deliveryHistory   []StatusEvent[DeliveryStatus]
	excluded          []kernel.UUID

	version   int64
	createdAt time.Time
	updatedAt time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewShipmentRequest creates a request at commercial Pending and delivery Pending.
//
// Example:
//
//	src, _ := request.NewEndpoint(cairo, request.PickupSelf)
//	dst, _ := request.NewEndpoint(alexandria, request.PickupDelegate)
//	req, err := request.NewShipmentRequest(kernel.NewUUID(), clientID, src, dst, items, request.DeliveryKindNormal, time.Now())
func NewShipmentRequest(
	id, clientID kernel.UUID,
	source, destination Endpoint,
	items []Item,
	kind DeliveryKind,
	createdAt time.Time,
) (*ShipmentRequest, error) {
	createdAt = createdAt.UTC()
	r := &ShipmentRequest{
		commercialStatus: CommercialPending,
		deliveryStatus:   DeliveryPending,
		version:          1,
		createdAt:        createdAt,
		updatedAt:        createdAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setClientID(clientID),
		r.setEndpoints(source, destination),
		r.setItems(items),
		kind.Validate(),
	); err != nil {
		return nil, err
	}
	if source.WarehouseID() != nil || destination.WarehouseID() != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"endpoint", errors.New("a new request cannot carry warehouse bindings"))
	}
	r.kind = kind

	r.record(Event{Kind: EventRequestCreated, To: CommercialPending.String()}, createdAt)
	return r, nil
}

// Snapshot is the full persisted state of a request. Adapters read it to
// store the aggregate and hand it back to RestoreShipmentRequest.
type Snapshot struct {
	ID                  kernel.UUID
	ClientID            kernel.UUID
	Source              Endpoint
	Destination         Endpoint
	Items               []Item
	DeliveryKind        DeliveryKind
	CommercialStatus    CommercialStatus
	DeliveryStatus      DeliveryStatus
	PrimaryCost         *kernel.Money
	AssignedCompanyID   *kernel.UUID
	AssignedWarehouseID *kernel.UUID
	AssignmentID        *kernel.UUID
	CostOffers          []CostOffer
	CommercialHistory   []StatusEvent[CommercialStatus]
	DeliveryHistory     []StatusEvent[DeliveryStatus]
	ExcludedCompanies   []kernel.UUID
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RestoreShipmentRequest rehydrates a request from a snapshot. History is
// restored as stored; drift between history and status is reported by
// VerifyHistory, not here.
func RestoreShipmentRequest(s Snapshot) (*ShipmentRequest, error) {
	r := &ShipmentRequest{
		version:   s.Version,
		createdAt: s.CreatedAt.UTC(),
		updatedAt: s.UpdatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(s.ID),
		r.setClientID(s.ClientID),
		r.setEndpoints(s.Source, s.Destination),
		r.setItems(s.Items),
		s.DeliveryKind.Validate(),
		s.CommercialStatus.Validate(),
		s.DeliveryStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if s.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version")
	}

	accepted := 0
	r.offers = make([]*CostOffer, 0, len(s.CostOffers))
	for idx := range s.CostOffers {
		offer := s.CostOffers[idx]
		if err := offer.Validate(); err != nil {
			return nil, fmt.Errorf("offer %d: %w", idx, err)
		}
		if offer.Status() == OfferAccepted {
			accepted++
		}
		r.offers = append(r.offers, &offer)
	}
	if accepted > 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"cost offers", fmt.Errorf("%d offers are accepted", accepted))
	}

	r.kind = s.DeliveryKind
	r.commercialStatus = s.CommercialStatus
	r.deliveryStatus = s.DeliveryStatus
	r.primaryCost = cloneMoney(s.PrimaryCost)
	r.assignedCompanyID = cloneUUID(s.AssignedCompanyID)
	r.assignedWarehouseID = cloneUUID(s.AssignedWarehouseID)
	r.assignmentID = cloneUUID(s.AssignmentID)
	r.commercialHistory = slices.Clone(s.CommercialHistory)
	r.deliveryHistory = slices.Clone(s.DeliveryHistory)
	r.excluded = slices.Clone(s.ExcludedCompanies)

	return r, nil
}

// Snapshot returns a deep copy of the request state.
func (r *ShipmentRequest) Snapshot() Snapshot {
	offers := make([]CostOffer, 0, len(r.offers))
	for _, o := range r.offers {
		offers = append(offers, *o)
	}
	return Snapshot{
		ID:                  r.id,
		ClientID:            r.clientID,
		Source:              r.source,
		Destination:         r.destination,
		Items:               slices.Clone(r.items),
		DeliveryKind:        r.kind,
		CommercialStatus:    r.commercialStatus,
		DeliveryStatus:      r.deliveryStatus,
		PrimaryCost:         cloneMoney(r.primaryCost),
		AssignedCompanyID:   cloneUUID(r.assignedCompanyID),
		AssignedWarehouseID: cloneUUID(r.assignedWarehouseID),
		AssignmentID:        cloneUUID(r.assignmentID),
		CostOffers:          offers,
		CommercialHistory:   slices.Clone(r.commercialHistory),
		DeliveryHistory:     slices.Clone(r.deliveryHistory),
		ExcludedCompanies:   slices.Clone(r.excluded),
		Version:             r.version,
		CreatedAt:           r.createdAt,
		UpdatedAt:           r.updatedAt,
	}
}

// Validate ensures the request was built by one of its constructors.
func (r *ShipmentRequest) Validate() error {
	if r == nil {
		return ErrShipmentRequestIsNotConstructed
	}
	return r.guard.Validate(ErrShipmentRequestIsNotConstructed)
}

func (r *ShipmentRequest) ID() kernel.UUID                    { return r.id }
func (r *ShipmentRequest) ClientID() kernel.UUID              { return r.clientID }
func (r *ShipmentRequest) Source() Endpoint                   { return r.source }
func (r *ShipmentRequest) Destination() Endpoint              { return r.destination }
func (r *ShipmentRequest) Items() []Item                      { return slices.Clone(r.items) }
func (r *ShipmentRequest) DeliveryKind() DeliveryKind         { return r.kind }
func (r *ShipmentRequest) CommercialStatus() CommercialStatus { return r.commercialStatus }
func (r *ShipmentRequest) DeliveryStatus() DeliveryStatus     { return r.deliveryStatus }
func (r *ShipmentRequest) PrimaryCost() *kernel.Money         { return cloneMoney(r.primaryCost) }
func (r *ShipmentRequest) AssignedCompanyID() *kernel.UUID    { return cloneUUID(r.assignedCompanyID) }
func (r *ShipmentRequest) AssignedWarehouseID() *kernel.UUID  { return cloneUUID(r.assignedWarehouseID) }
func (r *ShipmentRequest) AssignmentID() *kernel.UUID         { return cloneUUID(r.assignmentID) }
func (r *ShipmentRequest) Version() int64                     { return r.version }
func (r *ShipmentRequest) CreatedAt() time.Time               { return r.createdAt }
func (r *ShipmentRequest) UpdatedAt() time.Time               { return r.updatedAt }

// CostOffers returns the offers in submission order.
func (r *ShipmentRequest) CostOffers() []*CostOffer { return slices.Clone(r.offers) }

func (r *ShipmentRequest) CommercialHistory() []StatusEvent[CommercialStatus] {
	return slices.Clone(r.commercialHistory)
}

func (r *ShipmentRequest) DeliveryHistory() []StatusEvent[DeliveryStatus] {
	return slices.Clone(r.deliveryHistory)
}

// ExcludedCompanies lists companies that declined the request.
func (r *ShipmentRequest) ExcludedCompanies() []kernel.UUID { return slices.Clone(r.excluded) }

// Endpoint returns the endpoint of the given side.
func (r *ShipmentRequest) Endpoint(side Side) (Endpoint, error) {
	switch side {
	case SideSource:
		return r.source, nil
	case SideDestination:
		return r.destination, nil
	default:
		return Endpoint{}, side.Validate()
	}
}

// Offer looks up an offer by id.
func (r *ShipmentRequest) Offer(offerID kernel.UUID) (*CostOffer, error) {
	for _, o := range r.offers {
		if o.ID().IsEqual(offerID) {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOfferNotFound, offerID)
}

// AcceptedOffer returns the accepted offer, nil when none is accepted.
func (r *ShipmentRequest) AcceptedOffer() *CostOffer {
	for _, o := range r.offers {
		if o.Status() == OfferAccepted {
			return o
		}
	}
	return nil
}

// OpenOffersOf counts the non-rejected offers the company holds.
func (r *ShipmentRequest) OpenOffersOf(companyID kernel.UUID) int {
	n := 0
	for _, o := range r.offers {
		if o.CompanyID().IsEqual(companyID) && o.IsOpen() {
			n++
		}
	}
	return n
}

// IsExcluded reports whether the company declined the request.
func (r *ShipmentRequest) IsExcluded(companyID kernel.UUID) bool {
	return slices.ContainsFunc(r.excluded, companyID.IsEqual)
}

// SubmitOffer appends a Pending offer from a company.
func (r *ShipmentRequest) SubmitOffer(
	offerID, companyID kernel.UUID,
	cost kernel.Money,
	comment string,
	at time.Time,
) (*CostOffer, error) {
	if r.commercialStatus != CommercialPending {
		return nil, fmt.Errorf("%w: commercial status is %s", ErrRequestNotOpen, r.commercialStatus)
	}
	if n := r.OpenOffersOf(companyID); n >= MaxOpenOffersPerCompany {
		return nil, fmt.Errorf("%w: company %s holds %d open offers", ErrOfferLimitExceeded, companyID, n)
	}

	offer, err := NewCostOffer(offerID, companyID, cost, comment, at)
	if err != nil {
		return nil, err
	}
	r.offers = append(r.offers, offer)
	r.record(Event{Kind: EventOfferSubmitted, SubjectID: offerID.String()}, at)
	return offer, nil
}

// SelectOffer accepts one offer, copies its company and cost onto the request
// and moves the commercial status to Accepted. Other offers are left as they are.
func (r *ShipmentRequest) SelectOffer(offerID, actorID kernel.UUID, at time.Time) (*CostOffer, error) {
	if r.commercialStatus != CommercialPending {
		return nil, fmt.Errorf("%w: commercial status is %s", ErrRequestNotOpen, r.commercialStatus)
	}
	offer, err := r.Offer(offerID)
	if err != nil {
		return nil, err
	}
	if err = offer.accept(); err != nil {
		return nil, err
	}

	companyID, cost := offer.CompanyID(), offer.Cost()
	r.assignedCompanyID = &companyID
	r.primaryCost = &cost
	r.record(Event{Kind: EventOfferSelected, SubjectID: offerID.String()}, at)

	if err = r.TransitionCommercial(CommercialAccepted, actorID, at); err != nil {
		return nil, err
	}
	return offer, nil
}

// RejectOffer rejects a Pending offer. It is an explicit operator action and
// never happens implicitly on selection.
func (r *ShipmentRequest) RejectOffer(offerID kernel.UUID, at time.Time) (*CostOffer, error) {
	if r.commercialStatus.IsTerminal() {
		return nil, fmt.Errorf("%w: commercial status is %s", ErrRequestNotOpen, r.commercialStatus)
	}
	offer, err := r.Offer(offerID)
	if err != nil {
		return nil, err
	}
	if err = offer.reject(); err != nil {
		return nil, err
	}
	r.record(Event{Kind: EventOfferRejected, SubjectID: offerID.String()}, at)
	return offer, nil
}

// Decline hides the request from one company's queue. The shared status is
// untouched. It returns false when the company had already declined.
func (r *ShipmentRequest) Decline(companyID kernel.UUID, at time.Time) (bool, error) {
	if err := companyID.Validate(); err != nil {
		return false, errs.NewValueIsRequiredErrorWithCause("company id", err)
	}
	if r.commercialStatus != CommercialPending {
		return false, fmt.Errorf("%w: commercial status is %s", ErrRequestNotOpen, r.commercialStatus)
	}
	if r.IsExcluded(companyID) {
		return false, nil
	}
	r.excluded = append(r.excluded, companyID)
	r.record(Event{Kind: EventRequestDeclined, SubjectID: companyID.String()}, at)
	return true, nil
}

// TransitionCommercial moves the commercial status one legal step.
// Accepted additionally requires an Accepted offer.
func (r *ShipmentRequest) TransitionCommercial(target CommercialStatus, actorID kernel.UUID, at time.Time) error {
	if err := ValidateCommercialTransition(r.commercialStatus, target); err != nil {
		return err
	}
	if target == CommercialAccepted && r.AcceptedOffer() == nil {
		return ErrPreconditionUnmet
	}

	from := r.commercialStatus
	r.commercialStatus = target
	r.commercialHistory = append(r.commercialHistory, newStatusEvent(target, actorID, at))
	r.record(Event{Kind: EventCommercialChanged, From: from.String(), To: target.String()}, at)
	return nil
}

// TransitionDelivery moves the delivery status one step forward or to an abort
// status. Leaving Pending on the main path needs every Self side bound to a warehouse.
func (r *ShipmentRequest) TransitionDelivery(target DeliveryStatus, actorID kernel.UUID, at time.Time) error {
	if !r.commercialStatus.HasReachedAccepted() {
		return fmt.Errorf("%w: delivery cannot move while commercial status is %s",
			ErrInvalidTransition, r.commercialStatus)
	}
	if err := ValidateDeliveryTransition(r.deliveryStatus, target); err != nil {
		return err
	}
	if r.deliveryStatus == DeliveryPending && !target.IsAbort() {
		for _, side := range []Side{SideSource, SideDestination} {
			ep, _ := r.Endpoint(side)
			if ep.NeedsWarehouse() {
				return fmt.Errorf("%w: %s side is self pickup without a warehouse", ErrWarehouseRequired, side)
			}
		}
	}

	from := r.deliveryStatus
	r.deliveryStatus = target
	r.deliveryHistory = append(r.deliveryHistory, newStatusEvent(target, actorID, at))
	r.record(Event{Kind: EventDeliveryChanged, From: from.String(), To: target.String()}, at)
	return nil
}

// AssignWarehouse binds a warehouse to a Self pickup side. It never moves a
// status; the delivery gate only reads the binding. Binding the source side
// also makes the warehouse the request's handling warehouse.
func (r *ShipmentRequest) AssignWarehouse(
	side Side,
	companyID, warehouseID kernel.UUID,
	warehouseCountry kernel.Country,
	at time.Time,
) error {
	ep, err := r.Endpoint(side)
	if err != nil {
		return err
	}
	if ep.PickupMode() != PickupSelf {
		return fmt.Errorf("%w: %s side is %s", ErrNotSelfPickup, side, ep.PickupMode())
	}
	if current := ep.WarehouseID(); current != nil {
		return fmt.Errorf("%w: %s side holds warehouse %s", ErrAlreadyAssigned, side, current)
	}
	if !r.commercialStatus.HasReachedAccepted() || r.assignedCompanyID == nil {
		return fmt.Errorf("%w: commercial status is %s", ErrRequestNotAccepted, r.commercialStatus)
	}
	if !r.assignedCompanyID.IsEqual(companyID) {
		return fmt.Errorf("%w: %s", ErrNotAssignedCompany, companyID)
	}
	if !ep.Address().InCountry(warehouseCountry) {
		return fmt.Errorf("%w: warehouse is in %s, %s address is in %s",
			ErrCountryMismatch, warehouseCountry, side, ep.Address().Country())
	}

	at = at.UTC()
	switch side {
	case SideSource:
		r.source = ep.withWarehouse(warehouseID, at)
		id := warehouseID
		r.assignedWarehouseID = &id
	case SideDestination:
		r.destination = ep.withWarehouse(warehouseID, at)
	}
	r.record(Event{Kind: EventWarehouseAssigned, SubjectID: warehouseID.String(), To: side.String()}, at)
	return nil
}

// BindAssignment records the driver/vehicle assignment created for the request.
// A request carries at most one assignment.
func (r *ShipmentRequest) BindAssignment(assignmentID kernel.UUID, at time.Time) error {
	if r.commercialStatus != CommercialAccepted {
		return fmt.Errorf("%w: commercial status is %s", ErrRequestNotAccepted, r.commercialStatus)
	}
	if r.assignmentID != nil {
		return fmt.Errorf("%w: %s", ErrAssignmentExists, r.assignmentID)
	}
	id := assignmentID
	r.assignmentID = &id
	r.record(Event{Kind: EventAssignmentBound, SubjectID: assignmentID.String()}, at)
	return nil
}

// IsClosed reports whether either status dimension reached a terminal value
// that ends the physical work on the request.
func (r *ShipmentRequest) IsClosed() bool {
	return r.deliveryStatus.IsTerminal() || r.commercialStatus.IsTerminal()
}

// PullEvents returns and clears the events recorded since the last pull.
func (r *ShipmentRequest) PullEvents() []Event {
	events := r.events
	r.events = nil
	return events
}

// AdvanceVersion is called by repositories after a successful conditional write.
func (r *ShipmentRequest) AdvanceVersion() {
	r.version++
}

func (r *ShipmentRequest) record(ev Event, at time.Time) {
	at = at.UTC()
	ev.RequestID = r.id
	ev.At = at
	r.events = append(r.events, ev)
	if at.After(r.updatedAt) {
		r.updatedAt = at
	}
}

func (r *ShipmentRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *ShipmentRequest) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	r.clientID = id
	return nil
}

func (r *ShipmentRequest) setEndpoints(source, destination Endpoint) error {
	if err := errors.Join(source.Validate(), destination.Validate()); err != nil {
		return err
	}
	r.source = source
	r.destination = destination
	return nil
}

func (r *ShipmentRequest) setItems(items []Item) error {
	if err := validateItems(items); err != nil {
		return err
	}
	r.items = slices.Clone(items)
	return nil
}

func cloneUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneMoney(m *kernel.Money) *kernel.Money {
	if m == nil {
		return nil
	}
	v := *m
	return &v
}
