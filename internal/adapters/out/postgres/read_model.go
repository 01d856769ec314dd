package postgres

import (
	"context"

	"brokerage/internal/adapters/out/postgres/auditrepo"
	"brokerage/internal/adapters/out/postgres/requestrepo"
	"brokerage/internal/adapters/out/postgres/resourcerepo"
	"brokerage/internal/core/application/usecases/queries"
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"

	"gorm.io/gorm"
)

// ReadModel serves the query handlers straight from the pool, outside any
// unit of work.
type ReadModel struct {
	requests *requestrepo.GormRequestRepository
	drivers  *resourcerepo.GormDriverRepository
	vehicles *resourcerepo.GormVehicleRepository
	audit    *auditrepo.GormAuditRepository
}

var _ queries.ReadModel = (*ReadModel)(nil)

func NewReadModel(db *gorm.DB) *ReadModel {
	return &ReadModel{
		requests: requestrepo.NewGormRequestRepository(db, discardTracker{}),
		drivers:  resourcerepo.NewGormDriverRepository(db),
		vehicles: resourcerepo.NewGormVehicleRepository(db),
		audit:    auditrepo.NewGormAuditRepository(db),
	}
}

func (m *ReadModel) GetRequest(ctx context.Context, id kernel.UUID) (*request.ShipmentRequest, error) {
	return m.requests.Get(ctx, id)
}

func (m *ReadModel) CompanyQueue(ctx context.Context, companyID kernel.UUID, limit int) ([]*request.ShipmentRequest, error) {
	return m.requests.ListPendingFor(ctx, companyID, limit)
}

func (m *ReadModel) DriversIn(ctx context.Context, country kernel.Country) ([]*resource.Driver, error) {
	return m.drivers.ListWithAddressIn(ctx, country)
}

func (m *ReadModel) AvailableVehiclesIn(ctx context.Context, country kernel.Country) ([]*resource.Vehicle, error) {
	return m.vehicles.ListAvailableIn(ctx, country)
}

func (m *ReadModel) AuditLog(ctx context.Context, filter audit.Filter) ([]*audit.Entry, error) {
	return m.audit.List(ctx, filter)
}

func (m *ReadModel) RequestIDs(ctx context.Context) ([]kernel.UUID, error) {
	return m.requests.ListIDs(ctx)
}

type discardTracker struct{}

func (discardTracker) TrackAggregate(kernel.UUID, any) {}
