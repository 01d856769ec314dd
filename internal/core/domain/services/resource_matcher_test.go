package services_test

import (
	"testing"
	"time"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	egypt = kernel.MustNewCountry("Egypt")
	libya = kernel.MustNewCountry("Libya")
	now   = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
)

func address(t *testing.T, c kernel.Country) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(c, "City", "", "")
	require.NoError(t, err)
	return a
}

func acceptedRequest(t *testing.T, weightKg int64, category string) *request.ShipmentRequest {
	t.Helper()
	src, err := request.NewEndpoint(address(t, egypt), request.PickupDelegate)
	require.NoError(t, err)
	dst, err := request.NewEndpoint(address(t, libya), request.PickupDelegate)
	require.NoError(t, err)
	d, err := request.NewDimensions(decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.NewFromInt(10))
	require.NoError(t, err)
	it, err := request.NewItem(decimal.NewFromInt(weightKg), d, category, 1)
	require.NoError(t, err)

	req, err := request.NewShipmentRequest(kernel.NewUUID(), kernel.NewUUID(), src, dst,
		[]request.Item{it}, request.DeliveryKindNormal, now)
	require.NoError(t, err)
	offer, err := req.SubmitOffer(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(100), "", now)
	require.NoError(t, err)
	_, err = req.SelectOffer(offer.ID(), kernel.NewUUID(), now)
	require.NoError(t, err)
	return req
}

func driverIn(t *testing.T, countries ...kernel.Country) *resource.Driver {
	t.Helper()
	addrs := make([]kernel.Address, 0, len(countries))
	for _, c := range countries {
		addrs = append(addrs, address(t, c))
	}
	d, err := resource.NewDriver(kernel.NewUUID(), "Driver", addrs)
	require.NoError(t, err)
	return d
}

func vehicleIn(t *testing.T, c kernel.Country, status resource.VehicleStatus, rules *resource.VehicleRules) *resource.Vehicle {
	t.Helper()
	v, err := resource.RestoreVehicle(kernel.NewUUID(), "V-1", c, status, rules)
	require.NoError(t, err)
	return v
}

func TestResourceMatcher_Candidates(t *testing.T) {
	req := acceptedRequest(t, 5, "books")
	matcher := services.NewResourceMatcher()

	egyptian := driverIn(t, egypt)
	both := driverIn(t, libya, egypt)
	libyan := driverIn(t, libya)

	drivers := matcher.CandidateDrivers(req, []*resource.Driver{egyptian, libyan, both})
	require.Len(t, drivers, 2)
	assert.Equal(t, egyptian.ID(), drivers[0].ID())
	assert.Equal(t, both.ID(), drivers[1].ID())

	free := vehicleIn(t, egypt, resource.VehicleAvailable, nil)
	busy := vehicleIn(t, egypt, resource.VehicleInUse, nil)
	abroad := vehicleIn(t, libya, resource.VehicleAvailable, nil)

	vehicles := matcher.CandidateVehicles(req, []*resource.Vehicle{busy, free, abroad})
	require.Len(t, vehicles, 1)
	assert.Equal(t, free.ID(), vehicles[0].ID())
}

func TestResourceMatcher_Bind(t *testing.T) {
	matcher := services.NewResourceMatcher()

	t.Run("should bind an eligible pair", func(t *testing.T) {
		req := acceptedRequest(t, 5, "books")
		d := driverIn(t, egypt)
		v := vehicleIn(t, egypt, resource.VehicleAvailable, nil)
		id := kernel.NewUUID()

		a, err := matcher.Bind(req, d, v, id, now)

		require.NoError(t, err)
		assert.True(t, a.IsActive())
		assert.Equal(t, d.ID(), a.DriverID())
		assert.Equal(t, v.ID(), a.VehicleID())
		require.NotNil(t, req.AssignmentID())
		assert.True(t, req.AssignmentID().IsEqual(id))
	})

	heavyRules, err := resource.NewVehicleRules(decimal.NewFromInt(10), request.Dimensions{}, []string{"books"}, 0, 0)
	require.NoError(t, err)

	tests := []struct {
		name    string
		weight  int64
		cat     string
		driver  func(t *testing.T) *resource.Driver
		vehicle func(t *testing.T) *resource.Vehicle
		wantErr error
	}{
		{
			name: "driver abroad", weight: 5, cat: "books",
			driver:  func(t *testing.T) *resource.Driver { return driverIn(t, libya) },
			vehicle: func(t *testing.T) *resource.Vehicle { return vehicleIn(t, egypt, resource.VehicleAvailable, nil) },
			wantErr: resource.ErrNoEligibleDriver,
		},
		{
			name: "vehicle in use", weight: 5, cat: "books",
			driver:  func(t *testing.T) *resource.Driver { return driverIn(t, egypt) },
			vehicle: func(t *testing.T) *resource.Vehicle { return vehicleIn(t, egypt, resource.VehicleInUse, nil) },
			wantErr: resource.ErrVehicleUnavailable,
		},
		{
			name: "vehicle abroad", weight: 5, cat: "books",
			driver:  func(t *testing.T) *resource.Driver { return driverIn(t, egypt) },
			vehicle: func(t *testing.T) *resource.Vehicle { return vehicleIn(t, libya, resource.VehicleAvailable, nil) },
			wantErr: request.ErrCountryMismatch,
		},
		{
			name: "item too heavy", weight: 11, cat: "books",
			driver:  func(t *testing.T) *resource.Driver { return driverIn(t, egypt) },
			vehicle: func(t *testing.T) *resource.Vehicle { return vehicleIn(t, egypt, resource.VehicleAvailable, heavyRules) },
			wantErr: resource.ErrCapacityExceeded,
		},
		{
			name: "category not allowed", weight: 1, cat: "chemicals",
			driver:  func(t *testing.T) *resource.Driver { return driverIn(t, egypt) },
			vehicle: func(t *testing.T) *resource.Vehicle { return vehicleIn(t, egypt, resource.VehicleAvailable, heavyRules) },
			wantErr: resource.ErrCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := acceptedRequest(t, tt.weight, tt.cat)

			_, err := matcher.Bind(req, tt.driver(t), tt.vehicle(t), kernel.NewUUID(), now)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, req.AssignmentID())
		})
	}

	t.Run("should refuse a second assignment", func(t *testing.T) {
		req := acceptedRequest(t, 5, "books")
		_, err := matcher.Bind(req, driverIn(t, egypt), vehicleIn(t, egypt, resource.VehicleAvailable, nil), kernel.NewUUID(), now)
		require.NoError(t, err)

		_, err = matcher.Bind(req, driverIn(t, egypt), vehicleIn(t, egypt, resource.VehicleAvailable, nil), kernel.NewUUID(), now)

		require.ErrorIs(t, err, request.ErrAssignmentExists)
	})

	t.Run("should refuse a request past Accepted", func(t *testing.T) {
		req := acceptedRequest(t, 5, "books")
		require.NoError(t, req.TransitionCommercial(request.CommercialActionNeeded, kernel.NewUUID(), now))

		_, err := matcher.Bind(req, driverIn(t, egypt), vehicleIn(t, egypt, resource.VehicleAvailable, nil), kernel.NewUUID(), now)

		require.ErrorIs(t, err, request.ErrRequestNotAccepted)
	})
}
