package request_test

import (
	"testing"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	d := decimal.NewFromInt

	t.Run("should report the first non-positive axis", func(t *testing.T) {
		_, err := request.NewDimensions(d(10), d(0), d(-1))

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "width 0 is not greater than 0")
	})

	t.Run("should compare per axis", func(t *testing.T) {
		small, err := request.NewDimensions(d(10), d(10), d(10))
		require.NoError(t, err)
		limit, err := request.NewDimensions(d(100), d(50), d(10))
		require.NoError(t, err)
		tall, err := request.NewDimensions(d(10), d(10), d(11))
		require.NoError(t, err)

		assert.True(t, small.FitsWithin(limit))
		assert.False(t, tall.FitsWithin(limit))
		assert.False(t, limit.IsZero())
	})
}

func TestNewItem(t *testing.T) {
	dims, err := request.NewDimensions(decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1))
	require.NoError(t, err)

	tests := []struct {
		name     string
		weight   decimal.Decimal
		dims     request.Dimensions
		category string
		qty      int
		wantErr  string
	}{
		{"zero weight", decimal.Zero, dims, "books", 1, "weight"},
		{"missing dimensions", decimal.NewFromInt(1), request.Dimensions{}, "books", 1, "dimensions"},
		{"blank category", decimal.NewFromInt(1), dims, "  ", 1, "category"},
		{"zero quantity", decimal.NewFromInt(1), dims, "books", 0, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := request.NewItem(tt.weight, tt.dims, tt.category, tt.qty)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("should compute total weight", func(t *testing.T) {
		item, err := request.NewItem(decimal.RequireFromString("2.5"), dims, " books ", 4)

		require.NoError(t, err)
		assert.Equal(t, "books", item.Category())
		assert.True(t, item.TotalWeightKg().Equal(decimal.NewFromInt(10)))
	})
}

func TestEndpoint(t *testing.T) {
	addr, err := kernel.NewAddress(kernel.MustNewCountry("Egypt"), "Cairo", "", "")
	require.NoError(t, err)

	t.Run("self pickup needs a warehouse until restored with one", func(t *testing.T) {
		ep, err := request.NewEndpoint(addr, request.PickupSelf)
		require.NoError(t, err)
		assert.True(t, ep.NeedsWarehouse())

		id, at := kernel.NewUUID(), now
		restored, err := request.RestoreEndpoint(addr, request.PickupSelf, &id, &at)
		require.NoError(t, err)
		assert.False(t, restored.NeedsWarehouse())
		assert.True(t, restored.WarehouseID().IsEqual(id))
	})

	t.Run("should reject a half binding", func(t *testing.T) {
		id := kernel.NewUUID()

		_, err := request.RestoreEndpoint(addr, request.PickupSelf, &id, nil)

		require.Error(t, err)
	})

	t.Run("should parse modes and sides", func(t *testing.T) {
		mode, err := request.ParsePickupMode("self")
		require.NoError(t, err)
		assert.Equal(t, request.PickupSelf, mode)

		side, err := request.ParseSide("Destination")
		require.NoError(t, err)
		assert.Equal(t, request.SideDestination, side)

		_, err = request.ParseSide("middle")
		require.Error(t, err)
	})
}

func TestOfferStatus(t *testing.T) {
	next, err := request.OfferPending.Accept()
	require.NoError(t, err)
	assert.Equal(t, request.OfferAccepted, next)

	_, err = request.OfferAccepted.Reject()
	require.ErrorIs(t, err, request.ErrOfferNotPending)

	_, err = request.OfferRejected.Accept()
	require.ErrorIs(t, err, request.ErrOfferNotPending)
}
