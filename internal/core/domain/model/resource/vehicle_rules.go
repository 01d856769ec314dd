package resource

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrVehicleRulesIsNotConstructed = errors.New("VehicleRules must be created via NewVehicleRules constructor")

// VehicleRules restricts what a vehicle may carry. Zero limits are unset:
// a zero max weight, zero dimensions or an empty category list impose nothing.
// Delivery days are stored for dispatchers and not enforced.
type VehicleRules struct {
	maxWeightKg       decimal.Decimal
	maxDimensions     request.Dimensions
	allowedCategories []string
	minDeliveryDays   int
	maxDeliveryDays   int
	guard             guard.ConstructorGuard
}

func NewVehicleRules(
	maxWeightKg decimal.Decimal,
	maxDimensions request.Dimensions,
	allowedCategories []string,
	minDeliveryDays, maxDeliveryDays int,
) (*VehicleRules, error) {
	if maxWeightKg.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("max weight", fmt.Errorf("%s is negative", maxWeightKg))
	}
	if minDeliveryDays < 0 || maxDeliveryDays < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery days", errors.New("days cannot be negative"))
	}
	if maxDeliveryDays > 0 && minDeliveryDays > maxDeliveryDays {
		return nil, errs.NewValueIsOutOfRangeError("min delivery days", minDeliveryDays, 0, maxDeliveryDays)
	}

	categories := make([]string, 0, len(allowedCategories))
	for _, c := range allowedCategories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" && !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}

	return &VehicleRules{
		maxWeightKg:       maxWeightKg,
		maxDimensions:     maxDimensions,
		allowedCategories: categories,
		minDeliveryDays:   minDeliveryDays,
		maxDeliveryDays:   maxDeliveryDays,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (r *VehicleRules) Validate() error {
	if r == nil {
		return ErrVehicleRulesIsNotConstructed
	}
	return r.guard.Validate(ErrVehicleRulesIsNotConstructed)
}

func (r *VehicleRules) MaxWeightKg() decimal.Decimal       { return r.maxWeightKg }
func (r *VehicleRules) MaxDimensions() request.Dimensions { return r.maxDimensions }
func (r *VehicleRules) AllowedCategories() []string       { return slices.Clone(r.allowedCategories) }
func (r *VehicleRules) MinDeliveryDays() int              { return r.minDeliveryDays }
func (r *VehicleRules) MaxDeliveryDays() int              { return r.maxDeliveryDays }

// Check fails with ErrCapacityExceeded on the first item that is heavier per
// unit than the max weight, outside the allowed categories or larger than the
// max dimensions.
func (r *VehicleRules) Check(items []request.Item) error {
	for idx, it := range items {
		if r.maxWeightKg.IsPositive() && it.WeightKg().GreaterThan(r.maxWeightKg) {
			return fmt.Errorf("%w: item %d weighs %s kg, limit %s kg",
				ErrCapacityExceeded, idx, it.WeightKg(), r.maxWeightKg)
		}
		if len(r.allowedCategories) > 0 &&
			!slices.Contains(r.allowedCategories, strings.ToLower(it.Category())) {
			return fmt.Errorf("%w: item %d category %q is not allowed", ErrCapacityExceeded, idx, it.Category())
		}
		if !r.maxDimensions.IsZero() && !it.Dimensions().FitsWithin(r.maxDimensions) {
			return fmt.Errorf("%w: item %d is %s, limit %s",
				ErrCapacityExceeded, idx, it.Dimensions(), r.maxDimensions)
		}
	}
	return nil
}
