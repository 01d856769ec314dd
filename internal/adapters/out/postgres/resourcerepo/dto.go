// Package resourcerepo persists drivers, vehicles and warehouses.
package resourcerepo

import (
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DriverDTO struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name      string             `gorm:"type:varchar(255);not null"`
	Addresses []DriverAddressDTO `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// DriverAddressDTO is indexed by country for candidate lookups.
type DriverAddressDTO struct {
	DriverID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Position int        `gorm:"primaryKey;autoIncrement:false"`
	Address  AddressDTO `gorm:"embedded"`
}

func (DriverAddressDTO) TableName() string {
	return "driver_addresses"
}

type AddressDTO struct {
	Country    string `gorm:"type:varchar(64);not null;index"`
	City       string `gorm:"type:varchar(255);not null"`
	Line       string `gorm:"type:varchar(255)"`
	PostalCode string `gorm:"type:varchar(32)"`
}

type VehicleDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Plate   string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Country string    `gorm:"type:varchar(64);not null;index:idx_vehicles_country_status"`
	Status  int       `gorm:"type:smallint;not null;index:idx_vehicles_country_status"`
	Rules   RulesDTO  `gorm:"embedded;embeddedPrefix:rules_"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

// RulesDTO holds the optional capacity rules of a vehicle. A row without
// rules has Present unset.
type RulesDTO struct {
	Present           bool
	MaxWeightKg       decimal.Decimal `gorm:"type:numeric(12,3)"`
	MaxLength         decimal.Decimal `gorm:"type:numeric(12,3)"`
	MaxWidth          decimal.Decimal `gorm:"type:numeric(12,3)"`
	MaxHeight         decimal.Decimal `gorm:"type:numeric(12,3)"`
	AllowedCategories []string        `gorm:"type:jsonb;serializer:json"`
	MinDeliveryDays   int
	MaxDeliveryDays   int
}

type WarehouseDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Address      AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Capacity     int        `gorm:"not null"`
	CurrentStock int        `gorm:"not null"`
	Status       int        `gorm:"type:smallint;not null"`
}

func (WarehouseDTO) TableName() string {
	return "warehouses"
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Country:    a.Country().Name(),
		City:       a.City(),
		Line:       a.Line(),
		PostalCode: a.PostalCode(),
	}
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	country, err := kernel.NewCountry(dto.Country)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(country, dto.City, dto.Line, dto.PostalCode)
}

func driverFromDomain(d *resource.Driver) DriverDTO {
	id := d.ID().Bytes()
	addresses := make([]DriverAddressDTO, 0, len(d.Addresses()))
	for pos, a := range d.Addresses() {
		addresses = append(addresses, DriverAddressDTO{
			DriverID: id,
			Position: pos,
			Address:  addressFromDomain(a),
		})
	}
	return DriverDTO{ID: id, Name: d.Name(), Addresses: addresses}
}

func driverToDomain(dto DriverDTO) (*resource.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	addresses := make([]kernel.Address, 0, len(dto.Addresses))
	for _, a := range dto.Addresses {
		addr, addrErr := addressToDomain(a.Address)
		if addrErr != nil {
			return nil, addrErr
		}
		addresses = append(addresses, addr)
	}
	return resource.RestoreDriver(id, dto.Name, addresses)
}

func vehicleFromDomain(v *resource.Vehicle) VehicleDTO {
	dto := VehicleDTO{
		ID:      v.ID().Bytes(),
		Plate:   v.Plate(),
		Country: v.Country().Name(),
		Status:  int(v.Status()),
	}
	if rules := v.Rules(); rules != nil {
		dims := rules.MaxDimensions()
		dto.Rules = RulesDTO{
			Present:           true,
			MaxWeightKg:       rules.MaxWeightKg(),
			MaxLength:         dims.Length(),
			MaxWidth:          dims.Width(),
			MaxHeight:         dims.Height(),
			AllowedCategories: rules.AllowedCategories(),
			MinDeliveryDays:   rules.MinDeliveryDays(),
			MaxDeliveryDays:   rules.MaxDeliveryDays(),
		}
	}
	return dto
}

func vehicleToDomain(dto VehicleDTO) (*resource.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	country, err := kernel.NewCountry(dto.Country)
	if err != nil {
		return nil, err
	}

	var rules *resource.VehicleRules
	if dto.Rules.Present {
		var dims request.Dimensions
		if dto.Rules.MaxLength.IsPositive() {
			dims, err = request.NewDimensions(dto.Rules.MaxLength, dto.Rules.MaxWidth, dto.Rules.MaxHeight)
			if err != nil {
				return nil, err
			}
		}
		rules, err = resource.NewVehicleRules(
			dto.Rules.MaxWeightKg, dims, dto.Rules.AllowedCategories,
			dto.Rules.MinDeliveryDays, dto.Rules.MaxDeliveryDays,
		)
		if err != nil {
			return nil, err
		}
	}
	return resource.RestoreVehicle(id, dto.Plate, country, resource.VehicleStatus(dto.Status), rules)
}

func warehouseFromDomain(w *resource.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		ID:           w.ID().Bytes(),
		CompanyID:    w.CompanyID().Bytes(),
		Name:         w.Name(),
		Address:      addressFromDomain(w.Address()),
		Capacity:     w.Capacity(),
		CurrentStock: w.CurrentStock(),
		Status:       int(w.Status()),
	}
}

func warehouseToDomain(dto WarehouseDTO) (*resource.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	address, err := addressToDomain(dto.Address)
	if err != nil {
		return nil, err
	}
	return resource.RestoreWarehouse(
		id, companyID, dto.Name, address, dto.Capacity, dto.CurrentStock, resource.WarehouseStatus(dto.Status),
	)
}
