package request

import (
	"errors"
	"fmt"
	"strings"

	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Dimensions are the outer measurements of one unit in centimetres.
type Dimensions struct {
	length decimal.Decimal
	width  decimal.Decimal
	height decimal.Decimal
}

// NewDimensions requires every measurement to be positive.
func NewDimensions(length, width, height decimal.Decimal) (Dimensions, error) {
	names := [3]string{"length", "width", "height"}
	for idx, v := range [3]decimal.Decimal{length, width, height} {
		if !v.IsPositive() {
			return Dimensions{}, errs.NewValueIsInvalidErrorWithCause(
				"dimensions", fmt.Errorf("%s %s is not greater than 0", names[idx], v))
		}
	}
	return Dimensions{length: length, width: width, height: height}, nil
}

func (d Dimensions) Length() decimal.Decimal { return d.length }
func (d Dimensions) Width() decimal.Decimal  { return d.width }
func (d Dimensions) Height() decimal.Decimal { return d.height }

// IsZero reports an unset value.
func (d Dimensions) IsZero() bool {
	return d.length.IsZero() && d.width.IsZero() && d.height.IsZero()
}

// FitsWithin reports whether every measurement is within limit on the same axis.
func (d Dimensions) FitsWithin(limit Dimensions) bool {
	return d.length.LessThanOrEqual(limit.length) &&
		d.width.LessThanOrEqual(limit.width) &&
		d.height.LessThanOrEqual(limit.height)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%sx%sx%s cm", d.length, d.width, d.height)
}

// Item is one line of a shipment request.
type Item struct {
	weightKg   decimal.Decimal
	dimensions Dimensions
	category   string
	quantity   int
	guard      guard.ConstructorGuard
}

// NewItem validates and creates an Item. Weight is the weight of one unit.
func NewItem(weightKg decimal.Decimal, dimensions Dimensions, category string, quantity int) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setWeight(weightKg),
		item.setDimensions(dimensions),
		item.setCategory(category),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) WeightKg() decimal.Decimal { return i.weightKg }
func (i Item) Dimensions() Dimensions    { return i.dimensions }
func (i Item) Category() string          { return i.category }
func (i Item) Quantity() int             { return i.quantity }

// TotalWeightKg is weight times quantity.
func (i Item) TotalWeightKg() decimal.Decimal {
	return i.weightKg.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setWeight(w decimal.Decimal) error {
	if !w.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", w))
	}
	i.weightKg = w
	return nil
}

func (i *Item) setDimensions(d Dimensions) error {
	if d.IsZero() {
		return errs.NewValueIsRequiredError("dimensions")
	}
	i.dimensions = d
	return nil
}

func (i *Item) setCategory(c string) error {
	c = strings.TrimSpace(c)
	if c == "" {
		return errs.NewValueIsRequiredError("category")
	}
	i.category = c
	return nil
}

func (i *Item) setQuantity(q int) error {
	if q <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", q))
	}
	i.quantity = q
	return nil
}

// validateItems enforces a non-empty list of constructed items.
func validateItems(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidItems)
	}
	for idx, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("%w: item %d: %w", ErrInvalidItems, idx, err)
		}
	}
	return nil
}
