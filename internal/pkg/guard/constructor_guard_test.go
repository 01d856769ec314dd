package guard_test

import (
	"errors"
	"testing"

	"brokerage/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Offer must be created via NewOffer")

	tests := []struct {
		name    string
		guard   guard.ConstructorGuard
		passed  error
		wantErr error
	}{
		{"constructed_with_custom_error", guard.NewConstructorGuard(), errNotConstructed, nil},
		{"constructed_with_nil_error", guard.NewConstructorGuard(), nil, nil},
		{"zero_value_returns_custom_error", guard.ConstructorGuard{}, errNotConstructed, errNotConstructed},
		{"zero_value_returns_default_error", guard.ConstructorGuard{}, nil, guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.passed)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type weight struct {
		kg    int
		guard guard.ConstructorGuard
	}
	errWeightNotConstructed := errors.New("weight must be created via newWeight")

	newWeight := func(kg int) (weight, error) {
		if kg <= 0 {
			return weight{}, errors.New("weight must be positive")
		}
		return weight{kg: kg, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_output_validates", func(t *testing.T) {
		w, err := newWeight(12)
		require.NoError(t, err)
		require.NoError(t, w.guard.Validate(errWeightNotConstructed))
		assert.Equal(t, 12, w.kg)
	})

	t.Run("struct_literal_fails", func(t *testing.T) {
		w := weight{kg: 12}
		assert.Equal(t, errWeightNotConstructed, w.guard.Validate(errWeightNotConstructed))
	})

	t.Run("copies_keep_state", func(t *testing.T) {
		w, err := newWeight(3)
		require.NoError(t, err)
		cp := w
		require.NoError(t, cp.guard.Validate(errWeightNotConstructed))
	})
}

func TestErrDefaultConstructorGuard(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}
