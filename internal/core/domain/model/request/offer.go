package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

// MaxOpenOffersPerCompany bounds the non-rejected offers one company may hold on a request.
const MaxOpenOffersPerCompany = 3

const maxCommentLength = 1000

var ErrCostOfferIsNotConstructed = errors.New("CostOffer must be created via NewCostOffer or RestoreCostOffer constructor")

// OfferStatus changes exactly once: Pending -> Accepted or Pending -> Rejected.
type OfferStatus int

const (
	OfferUnknown OfferStatus = iota
	OfferPending
	OfferAccepted
	OfferRejected
)

func getOfferStatusStrings() map[OfferStatus]string {
	return map[OfferStatus]string{
		OfferUnknown:  "Unknown",
		OfferPending:  "Pending",
		OfferAccepted: "Accepted",
		OfferRejected: "Rejected",
	}
}

func (s OfferStatus) String() string {
	if str, ok := getOfferStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s OfferStatus) Validate() error {
	if _, ok := getOfferStatusStrings()[s]; !ok || s == OfferUnknown {
		return errs.NewValueIsInvalidErrorWithCause("offer status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Accept transitions Pending -> Accepted.
func (s OfferStatus) Accept() (OfferStatus, error) {
	if s != OfferPending {
		return OfferUnknown, fmt.Errorf("%w: offer is %s", ErrOfferNotPending, s)
	}
	return OfferAccepted, nil
}

// Reject transitions Pending -> Rejected.
func (s OfferStatus) Reject() (OfferStatus, error) {
	if s != OfferPending {
		return OfferUnknown, fmt.Errorf("%w: offer is %s", ErrOfferNotPending, s)
	}
	return OfferRejected, nil
}

// CostOffer is a priced bid by a shipping company against a request.
type CostOffer struct {
	id        kernel.UUID
	companyID kernel.UUID
	cost      kernel.Money
	comment   string
	status    OfferStatus
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewCostOffer creates a Pending offer. The cost must be strictly positive.
func NewCostOffer(id, companyID kernel.UUID, cost kernel.Money, comment string, createdAt time.Time) (*CostOffer, error) {
	offer := &CostOffer{
		status:    OfferPending,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		offer.setID(id),
		offer.setCompanyID(companyID),
		offer.setCost(cost),
		offer.setComment(comment),
	); err != nil {
		return nil, err
	}

	return offer, nil
}

// RestoreCostOffer rehydrates a persisted offer with its status.
func RestoreCostOffer(
	id, companyID kernel.UUID,
	cost kernel.Money,
	comment string,
	status OfferStatus,
	createdAt time.Time,
) (*CostOffer, error) {
	offer, err := NewCostOffer(id, companyID, cost, comment, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	offer.status = status
	return offer, nil
}

func (o *CostOffer) Validate() error {
	if o == nil {
		return ErrCostOfferIsNotConstructed
	}
	return o.guard.Validate(ErrCostOfferIsNotConstructed)
}

func (o *CostOffer) ID() kernel.UUID        { return o.id }
func (o *CostOffer) CompanyID() kernel.UUID { return o.companyID }
func (o *CostOffer) Cost() kernel.Money     { return o.cost }
func (o *CostOffer) Comment() string        { return o.comment }
func (o *CostOffer) Status() OfferStatus    { return o.status }
func (o *CostOffer) CreatedAt() time.Time   { return o.createdAt }

// IsOpen reports a non-rejected offer; open offers count towards the company limit.
func (o *CostOffer) IsOpen() bool {
	return o.status != OfferRejected
}

func (o *CostOffer) accept() error {
	next, err := o.status.Accept()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *CostOffer) reject() error {
	next, err := o.status.Reject()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *CostOffer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *CostOffer) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("company id", err)
	}
	o.companyID = id
	return nil
}

func (o *CostOffer) setCost(cost kernel.Money) error {
	if err := cost.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCost, err)
	}
	if !cost.IsPositive() {
		return fmt.Errorf("%w: %s is not greater than 0", ErrInvalidCost, cost)
	}
	o.cost = cost
	return nil
}

func (o *CostOffer) setComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if len(comment) > maxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment length", len(comment), 0, maxCommentLength)
	}
	o.comment = comment
	return nil
}
