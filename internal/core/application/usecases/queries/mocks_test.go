package queries_test

import (
	"context"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"

	"github.com/stretchr/testify/mock"
)

type MockReadModel struct{ mock.Mock }

func (m *MockReadModel) GetRequest(ctx context.Context, id kernel.UUID) (*request.ShipmentRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.ShipmentRequest), args.Error(1)
}

func (m *MockReadModel) CompanyQueue(ctx context.Context, companyID kernel.UUID, limit int) ([]*request.ShipmentRequest, error) {
	args := m.Called(ctx, companyID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.ShipmentRequest), args.Error(1)
}

func (m *MockReadModel) DriversIn(ctx context.Context, country kernel.Country) ([]*resource.Driver, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resource.Driver), args.Error(1)
}

func (m *MockReadModel) AvailableVehiclesIn(ctx context.Context, country kernel.Country) ([]*resource.Vehicle, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resource.Vehicle), args.Error(1)
}

func (m *MockReadModel) AuditLog(ctx context.Context, filter audit.Filter) ([]*audit.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

func (m *MockReadModel) RequestIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}
