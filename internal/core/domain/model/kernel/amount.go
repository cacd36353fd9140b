package kernel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"shoporders/internal/pkg/errs"
)

// AmountTolerance is the largest difference at which two amounts are treated as equal.
// Half a cent: float rounding noise passes, a one-cent mismatch does not.
const AmountTolerance = 0.005

// AmountScale is the number of decimal places an amount may carry.
const AmountScale = 2

// MaxAmount is the largest amount the order store can hold (NUMERIC(12,2)).
const MaxAmount = 9_999_999_999.99

// Amount is a non-negative monetary value in the shop currency.
type Amount float64

// NewAmount validates that v is a finite number in [0, MaxAmount] with at most
// AmountScale decimal places.
func NewAmount(paramName string, v float64) (Amount, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%v is not a finite number", v))
	}
	if v < 0 || v > MaxAmount {
		return 0, errs.NewValueIsOutOfRangeError(paramName, v, 0, MaxAmount)
	}
	if decimals(v) > AmountScale {
		return 0, errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%v has more than %d decimal places", v, AmountScale))
	}
	return Amount(v), nil
}

// decimals counts the fractional digits of the shortest representation of v.
func decimals(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	return len(s) - dot - 1
}

// Times returns the amount multiplied by a quantity.
func (a Amount) Times(quantity int) Amount {
	return Amount(float64(a) * float64(quantity))
}

// Add returns the sum of both amounts.
func (a Amount) Add(other Amount) Amount {
	return a + other
}

// ApproxEqual reports whether both amounts differ by no more than AmountTolerance.
func (a Amount) ApproxEqual(other Amount) bool {
	return math.Abs(float64(a)-float64(other)) <= AmountTolerance
}

// Float64 returns the raw value for serialization.
func (a Amount) Float64() float64 {
	return float64(a)
}
