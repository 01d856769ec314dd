package resourcerepo

import (
	"context"
	"errors"
	"fmt"

	"brokerage/internal/adapters/out/postgres/pgerr"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements DriverRepository using GORM.
type GormDriverRepository struct {
	db *gorm.DB
}

func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

func (r *GormDriverRepository) Add(ctx context.Context, driver *resource.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	dto := driverFromDomain(driver)
	return pgerr.Classify("add driver "+driver.ID().String(), r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*resource.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := withAddresses(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, pgerr.Classify("get driver "+id.String(), err)
	}
	return driverToDomain(dto)
}

// ListWithAddressIn returns drivers with at least one address in country, ordered by id.
func (r *GormDriverRepository) ListWithAddressIn(ctx context.Context, country kernel.Country) ([]*resource.Driver, error) {
	inCountry := r.db.Model(&DriverAddressDTO{}).Select("driver_id").Where("country = ?", country.Name())

	var dtos []DriverDTO
	if err := withAddresses(r.db.WithContext(ctx)).
		Where("id IN (?)", inCountry).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify("list drivers in "+country.Name(), err)
	}

	out := make([]*resource.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := driverToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func withAddresses(db *gorm.DB) *gorm.DB {
	return db.Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

// GormVehicleRepository implements VehicleRepository using GORM. Status
// changes go through CompareAndSwapStatus only.
type GormVehicleRepository struct {
	db *gorm.DB
}

func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

func (r *GormVehicleRepository) Add(ctx context.Context, vehicle *resource.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	dto := vehicleFromDomain(vehicle)
	return pgerr.Classify("add vehicle "+vehicle.ID().String(), r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*resource.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, pgerr.Classify("get vehicle "+id.String(), err)
	}
	return vehicleToDomain(dto)
}

// ListAvailableIn returns Available vehicles registered in country, ordered by plate.
func (r *GormVehicleRepository) ListAvailableIn(ctx context.Context, country kernel.Country) ([]*resource.Vehicle, error) {
	var dtos []VehicleDTO
	if err := r.db.WithContext(ctx).
		Where("country = ? AND status = ?", country.Name(), int(resource.VehicleAvailable)).
		Order("plate").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify("list vehicles in "+country.Name(), err)
	}

	out := make([]*resource.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		v, err := vehicleToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// CompareAndSwapStatus issues a single conditional UPDATE so that of two
// concurrent callers exactly one sees a changed row.
func (r *GormVehicleRepository) CompareAndSwapStatus(
	ctx context.Context,
	id kernel.UUID,
	from, to resource.VehicleStatus,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := resource.ValidateVehicleTransition(from, to); err != nil {
		return err
	}

	op := "swap vehicle status " + id.String()
	result := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(from)).
		Update("status", int(to))
	if result.Error != nil {
		return pgerr.Classify(op, result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var current int
	err := r.db.WithContext(ctx).Model(&VehicleDTO{}).Select("status").Where("id = ?", id.Bytes()).Take(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("vehicle", id.String())
	}
	if err != nil {
		return pgerr.Classify(op, err)
	}
	return fmt.Errorf("%w: vehicle %s is %s", resource.ErrVehicleUnavailable, id, resource.VehicleStatus(current))
}

// GormWarehouseRepository implements WarehouseRepository using GORM.
type GormWarehouseRepository struct {
	db *gorm.DB
}

func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) Add(ctx context.Context, warehouse *resource.Warehouse) error {
	if err := warehouse.Validate(); err != nil {
		return err
	}
	dto := warehouseFromDomain(warehouse)
	return pgerr.Classify("add warehouse "+warehouse.ID().String(), r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*resource.Warehouse, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WarehouseDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("warehouse", id.String())
		}
		return nil, pgerr.Classify("get warehouse "+id.String(), err)
	}
	return warehouseToDomain(dto)
}

// Update writes the mutable columns of a warehouse.
func (r *GormWarehouseRepository) Update(ctx context.Context, warehouse *resource.Warehouse) error {
	if err := warehouse.Validate(); err != nil {
		return err
	}

	id := warehouse.ID()
	result := r.db.WithContext(ctx).
		Model(&WarehouseDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"current_stock": warehouse.CurrentStock(),
			"status":        int(warehouse.Status()),
		})
	if result.Error != nil {
		return pgerr.Classify("update warehouse "+id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("warehouse", id.String())
	}
	return nil
}
