package http

import (
	"errors"
	"fmt"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type AddressBody struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	Line       string `json:"line"`
	PostalCode string `json:"postalCode"`
}

func (b AddressBody) toDomain() (kernel.Address, error) {
	country, err := kernel.NewCountry(b.Country)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(country, b.City, b.Line, b.PostalCode)
}

type EndpointBody struct {
	Address    AddressBody `json:"address"`
	PickupMode string      `json:"pickupMode"`
}

func (b EndpointBody) toDomain() (request.Endpoint, error) {
	address, err := b.Address.toDomain()
	if err != nil {
		return request.Endpoint{}, err
	}
	mode, err := request.ParsePickupMode(b.PickupMode)
	if err != nil {
		return request.Endpoint{}, err
	}
	return request.NewEndpoint(address, mode)
}

type ItemBody struct {
	WeightKg decimal.Decimal `json:"weightKg"`
	Length   decimal.Decimal `json:"length"`
	Width    decimal.Decimal `json:"width"`
	Height   decimal.Decimal `json:"height"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
}

type CreateRequestBody struct {
	Source       EndpointBody `json:"source"`
	Destination  EndpointBody `json:"destination"`
	Items        []ItemBody   `json:"items"`
	DeliveryKind string       `json:"deliveryKind"`
}

func (b CreateRequestBody) items() ([]request.Item, error) {
	items := make([]request.Item, 0, len(b.Items))
	for idx, it := range b.Items {
		dims, err := request.NewDimensions(it.Length, it.Width, it.Height)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", idx, err)
		}
		item, err := request.NewItem(it.WeightKg, dims, it.Category, it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", idx, err)
		}
		items = append(items, item)
	}
	return items, nil
}

type SubmitOfferBody struct {
	Cost    decimal.Decimal `json:"cost"`
	Comment string          `json:"comment"`
}

type TransitionBody struct {
	Target string `json:"target"`
}

// StatusBody names the target status of a vehicle or warehouse.
type StatusBody struct {
	Status string `json:"status"`
}

type StockBody struct {
	Delta int `json:"delta"`
}

type AssignWarehouseBody struct {
	WarehouseID string `json:"warehouseId"`
	Side        string `json:"side"`
}

type CreateAssignmentBody struct {
	DriverID  string `json:"driverId"`
	VehicleID string `json:"vehicleId"`
}

type AddDriverBody struct {
	Name      string        `json:"name"`
	Addresses []AddressBody `json:"addresses"`
}

type RulesBody struct {
	MaxWeightKg       decimal.Decimal `json:"maxWeightKg"`
	MaxLength         decimal.Decimal `json:"maxLength"`
	MaxWidth          decimal.Decimal `json:"maxWidth"`
	MaxHeight         decimal.Decimal `json:"maxHeight"`
	AllowedCategories []string        `json:"allowedCategories"`
	MinDeliveryDays   int             `json:"minDeliveryDays"`
	MaxDeliveryDays   int             `json:"maxDeliveryDays"`
}

// toDomain leaves the dimension limit unset when all three are zero.
func (b *RulesBody) toDomain() (*resource.VehicleRules, error) {
	if b == nil {
		return nil, nil
	}
	var dims request.Dimensions
	if !b.MaxLength.IsZero() || !b.MaxWidth.IsZero() || !b.MaxHeight.IsZero() {
		var err error
		if dims, err = request.NewDimensions(b.MaxLength, b.MaxWidth, b.MaxHeight); err != nil {
			return nil, err
		}
	}
	return resource.NewVehicleRules(b.MaxWeightKg, dims, b.AllowedCategories, b.MinDeliveryDays, b.MaxDeliveryDays)
}

type AddVehicleBody struct {
	Plate   string     `json:"plate"`
	Country string     `json:"country"`
	Rules   *RulesBody `json:"rules"`
}

type AddWarehouseBody struct {
	CompanyID string      `json:"companyId"`
	Name      string      `json:"name"`
	Address   AddressBody `json:"address"`
	Capacity  int         `json:"capacity"`
}

func parseID(name, raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func joinAddresses(bodies []AddressBody) ([]kernel.Address, error) {
	out := make([]kernel.Address, 0, len(bodies))
	var errList []error
	for idx, b := range bodies {
		a, err := b.toDomain()
		if err != nil {
			errList = append(errList, fmt.Errorf("address %d: %w", idx, err))
			continue
		}
		out = append(out, a)
	}
	return out, errors.Join(errList...)
}
