package kernel_test

import (
	"math"
	"testing"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	t.Run("should accept zero and positive values", func(t *testing.T) {
		for _, v := range []float64{0, 0.01, 50, 1999.99} {
			a, err := kernel.NewAmount("unitPrice", v)
			require.NoError(t, err)
			assert.InDelta(t, v, a.Float64(), 1e-9)
		}
	})

	t.Run("should reject negative values as out of range", func(t *testing.T) {
		_, err := kernel.NewAmount("unitPrice", -0.01)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should accept the largest storable amount", func(t *testing.T) {
		a, err := kernel.NewAmount("totalAmount", kernel.MaxAmount)
		require.NoError(t, err)
		assert.Equal(t, kernel.Amount(kernel.MaxAmount), a)
	})

	t.Run("should reject amounts above the storable maximum", func(t *testing.T) {
		for _, v := range []float64{1e10, 1e15} {
			_, err := kernel.NewAmount("totalAmount", v)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should reject sub-cent precision", func(t *testing.T) {
		for _, v := range []float64{0.333, 0.005, 19.999, 1.0001} {
			_, err := kernel.NewAmount("unitPrice", v)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "value %v", v)
		}
	})

	t.Run("should reject NaN and infinity", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := kernel.NewAmount("totalAmount", v)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestAmount_Arithmetic(t *testing.T) {
	t.Run("should multiply by quantity and add", func(t *testing.T) {
		sum := kernel.Amount(50).Times(2).Add(kernel.Amount(19.99).Times(3))
		assert.InDelta(t, 159.97, sum.Float64(), 1e-9)
	})
}

func TestAmount_ApproxEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     kernel.Amount
		expected bool
	}{
		{name: "identical", a: 100, b: 100, expected: true},
		{name: "binary rounding noise", a: kernel.Amount(0.1).Add(0.2), b: 0.3, expected: true},
		{name: "below tolerance", a: 100, b: 100.004, expected: true},
		{name: "one cent off", a: 100, b: 100.01, expected: false},
		{name: "far off", a: 100, b: 90, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.ApproxEqual(tt.b))
			assert.Equal(t, tt.expected, tt.b.ApproxEqual(tt.a))
		})
	}
}
