package resource_test

import (
	"testing"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	egypt  = kernel.MustNewCountry("Egypt")
	jordan = kernel.MustNewCountry("Jordan")
)

func address(t *testing.T, c kernel.Country, city string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(c, city, "", "")
	require.NoError(t, err)
	return a
}

func dims(t *testing.T, l, w, h int64) request.Dimensions {
	t.Helper()
	d, err := request.NewDimensions(decimal.NewFromInt(l), decimal.NewFromInt(w), decimal.NewFromInt(h))
	require.NoError(t, err)
	return d
}

func item(t *testing.T, weight int64, category string, d request.Dimensions) request.Item {
	t.Helper()
	it, err := request.NewItem(decimal.NewFromInt(weight), d, category, 3)
	require.NoError(t, err)
	return it
}

func TestDriver(t *testing.T) {
	t.Run("should match only countries of its addresses", func(t *testing.T) {
		d, err := resource.NewDriver(kernel.NewUUID(), "Omar", []kernel.Address{
			address(t, egypt, "Cairo"),
			address(t, egypt, "Cairo"),
			address(t, jordan, "Amman"),
		})

		require.NoError(t, err)
		assert.Len(t, d.Addresses(), 2)
		assert.True(t, d.HasAddressIn(egypt))
		assert.True(t, d.HasAddressIn(kernel.MustNewCountry("egypt")))
		assert.False(t, d.HasAddressIn(kernel.MustNewCountry("Libya")))
		assert.Len(t, d.Countries(), 2)
	})

	t.Run("should require a name and an address", func(t *testing.T) {
		_, err := resource.NewDriver(kernel.NewUUID(), " ", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "addresses")
	})
}

func TestVehicleStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to resource.VehicleStatus
		ok       bool
	}{
		{resource.VehicleAvailable, resource.VehicleInUse, true},
		{resource.VehicleInUse, resource.VehicleAvailable, true},
		{resource.VehicleAvailable, resource.VehicleMaintenance, true},
		{resource.VehicleMaintenance, resource.VehicleAvailable, true},
		{resource.VehicleMaintenance, resource.VehicleRetired, true},
		{resource.VehicleInUse, resource.VehicleInUse, false},
		{resource.VehicleInUse, resource.VehicleRetired, false},
		{resource.VehicleRetired, resource.VehicleAvailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+" to "+tt.to.String(), func(t *testing.T) {
			err := resource.ValidateVehicleTransition(tt.from, tt.to)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, resource.ErrInvalidVehicleMove)
		})
	}
}

func TestVehicle(t *testing.T) {
	v, err := resource.NewVehicle(kernel.NewUUID(), " ab-123 ", egypt, nil)
	require.NoError(t, err)

	assert.Equal(t, "AB-123", v.Plate())
	assert.True(t, v.IsAvailable())
	assert.True(t, v.OperatesIn(egypt))
	assert.False(t, v.OperatesIn(jordan))
	assert.Nil(t, v.Rules())

	require.NoError(t, v.ChangeStatus(resource.VehicleInUse))
	assert.False(t, v.IsAvailable())
	require.Error(t, v.ChangeStatus(resource.VehicleMaintenance))

	_, err = resource.RestoreVehicle(kernel.NewUUID(), "X", egypt, resource.VehicleUnknown, nil)
	require.Error(t, err)
}

func TestVehicleRules_Check(t *testing.T) {
	small := dims(t, 10, 10, 10)
	rules, err := resource.NewVehicleRules(decimal.NewFromInt(20), dims(t, 50, 50, 50), []string{"Food", " food", "books"}, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "books"}, rules.AllowedCategories())

	tests := []struct {
		name  string
		items []request.Item
		fail  bool
	}{
		{"within every limit", []request.Item{item(t, 20, "FOOD", small)}, false},
		{"limit applies per unit", []request.Item{item(t, 10, "books", small)}, false},
		{"too heavy", []request.Item{item(t, 5, "books", small), item(t, 21, "books", small)}, true},
		{"category not allowed", []request.Item{item(t, 1, "chemicals", small)}, true},
		{"too long", []request.Item{item(t, 1, "books", dims(t, 51, 1, 1))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.Check(tt.items)
			if !tt.fail {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, resource.ErrCapacityExceeded)
			assert.Equal(t, errs.KindPrecondition, errs.KindOf(err))
		})
	}

	t.Run("unset limits impose nothing", func(t *testing.T) {
		open, err := resource.NewVehicleRules(decimal.Zero, request.Dimensions{}, nil, 0, 0)
		require.NoError(t, err)

		require.NoError(t, open.Check([]request.Item{item(t, 5000, "anything", dims(t, 900, 900, 900))}))
	})

	t.Run("should reject inverted delivery days", func(t *testing.T) {
		_, err := resource.NewVehicleRules(decimal.Zero, request.Dimensions{}, nil, 5, 2)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsOutOfRangeError{}, err)
	})
}

func TestWarehouse_CanServe(t *testing.T) {
	owner := kernel.NewUUID()
	addr := address(t, egypt, "Cairo")

	t.Run("active with room", func(t *testing.T) {
		w, err := resource.NewWarehouse(kernel.NewUUID(), owner, "Cairo Hub", addr, 10)
		require.NoError(t, err)

		require.NoError(t, w.CanServe(owner))
		assert.True(t, w.Country().IsEqual(egypt))
	})

	t.Run("another company", func(t *testing.T) {
		w, err := resource.NewWarehouse(kernel.NewUUID(), owner, "Cairo Hub", addr, 10)
		require.NoError(t, err)

		require.ErrorIs(t, w.CanServe(kernel.NewUUID()), resource.ErrWarehouseNotOwned)
	})

	t.Run("inactive", func(t *testing.T) {
		w, err := resource.RestoreWarehouse(kernel.NewUUID(), owner, "Old", addr, 10, 0, resource.WarehouseInactive)
		require.NoError(t, err)

		require.ErrorIs(t, w.CanServe(owner), resource.ErrWarehouseInactive)
	})

	t.Run("full", func(t *testing.T) {
		w, err := resource.RestoreWarehouse(kernel.NewUUID(), owner, "Small", addr, 2, 2, resource.WarehouseActive)
		require.NoError(t, err)

		require.ErrorIs(t, w.CanServe(owner), resource.ErrWarehouseFull)
	})

	t.Run("stock above capacity is rejected on restore", func(t *testing.T) {
		_, err := resource.RestoreWarehouse(kernel.NewUUID(), owner, "Small", addr, 2, 3, resource.WarehouseActive)

		require.Error(t, err)
	})
}

func TestWarehouse_ChangeStatus(t *testing.T) {
	w, err := resource.NewWarehouse(kernel.NewUUID(), kernel.NewUUID(), "Cairo Hub", address(t, egypt, "Cairo"), 10)
	require.NoError(t, err)

	require.NoError(t, w.ChangeStatus(resource.WarehouseInactive))
	assert.Equal(t, resource.WarehouseInactive, w.Status())
	require.ErrorIs(t, w.ChangeStatus(resource.WarehouseInactive), resource.ErrWarehouseStatusUnchanged)
	require.ErrorIs(t, w.ChangeStatus(resource.WarehouseUnknown), errs.ErrValueIsInvalid)
	require.NoError(t, w.ChangeStatus(resource.WarehouseActive))
}

func TestWarehouse_AdjustStock(t *testing.T) {
	owner := kernel.NewUUID()
	w, err := resource.NewWarehouse(kernel.NewUUID(), owner, "Small", address(t, egypt, "Cairo"), 3)
	require.NoError(t, err)

	require.NoError(t, w.AdjustStock(3))
	assert.Equal(t, 3, w.CurrentStock())
	require.ErrorIs(t, w.CanServe(owner), resource.ErrWarehouseFull)

	require.ErrorIs(t, w.AdjustStock(1), resource.ErrWarehouseFull)
	require.ErrorIs(t, w.AdjustStock(-4), resource.ErrStockUnderflow)
	require.ErrorIs(t, w.AdjustStock(0), errs.ErrValueIsInvalid)
	assert.Equal(t, 3, w.CurrentStock())

	require.NoError(t, w.AdjustStock(-1))
	require.NoError(t, w.CanServe(owner))
}
