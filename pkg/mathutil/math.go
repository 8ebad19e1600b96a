package mathutil

import (
	"math"

	"github.com/shopspring/decimal"
)

// ToUnits converts a human readable amount into the integer amount of base
// units of an asset with the given precision, ie. 0.001 with precision 8
// becomes 100000. Fractions of a base unit are truncated.
func ToUnits(amount float64, precision int32) decimal.Decimal {
	return decimal.NewFromFloat(amount).Shift(precision).Floor()
}

// FromUnits is the inverse of ToUnits.
func FromUnits(units decimal.Decimal, precision int32) float64 {
	f, _ := units.Shift(-precision).Float64()
	return f
}

// LessPercentage returns amount decreased by the given fraction, ie.
// LessPercentage(100, 0.003) = 99.7.
func LessPercentage(amount, fraction float64) float64 {
	return amount * (1 - fraction)
}

// IsPositive returns whether x is a finite number strictly greater than zero.
func IsPositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
