package mathutil_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/pkg/mathutil"
)

func TestUnitsConversion(t *testing.T) {
	tests := []struct {
		amount    float64
		precision int32
		units     string
	}{
		{0.001, 8, "100000"},
		{1, 6, "1000000"},
		{0.29, 6, "290000"},
		{0.001, 18, "1000000000000000"},
		{12.5, 18, "12500000000000000000"},
		{0.123456789, 6, "123456"},
	}

	for _, tt := range tests {
		units := mathutil.ToUnits(tt.amount, tt.precision)
		require.Equal(t, tt.units, units.String())
	}

	require.Equal(t, 0.001, mathutil.FromUnits(decimal.NewFromInt(100000), 8))
	require.Equal(t, 12.5, mathutil.FromUnits(decimal.RequireFromString("12500000000000000000"), 18))
}

func TestLessPercentage(t *testing.T) {
	require.InDelta(t, 29660.75, mathutil.LessPercentage(0.5*59500, 0.003), 1e-6)
	require.Equal(t, 100.0, mathutil.LessPercentage(100, 0))
}

func TestIsPositive(t *testing.T) {
	require.True(t, mathutil.IsPositive(0.0001))
	require.False(t, mathutil.IsPositive(0))
	require.False(t, mathutil.IsPositive(-1))
	require.False(t, mathutil.IsPositive(math.Inf(1)))
	require.False(t, mathutil.IsPositive(math.NaN()))
}
