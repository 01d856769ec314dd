package postgres

import (
	"fmt"
	"time"

	"brokerage/internal/adapters/out/postgres/assignmentrepo"
	"brokerage/internal/adapters/out/postgres/auditrepo"
	"brokerage/internal/adapters/out/postgres/requestrepo"
	"brokerage/internal/adapters/out/postgres/resourcerepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a libpq style connection string.
func DSN(host, port, user, password, name, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslMode)
}

// Open connects to PostgreSQL. Driver errors are translated so duplicate keys
// surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&requestrepo.ShipmentRequestDTO{},
		&requestrepo.ItemDTO{},
		&requestrepo.CostOfferDTO{},
		&requestrepo.StatusEventDTO{},
		&requestrepo.ExclusionDTO{},
		&resourcerepo.DriverDTO{},
		&resourcerepo.DriverAddressDTO{},
		&resourcerepo.VehicleDTO{},
		&resourcerepo.WarehouseDTO{},
		&assignmentrepo.AssignmentDTO{},
		&auditrepo.EntryDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
