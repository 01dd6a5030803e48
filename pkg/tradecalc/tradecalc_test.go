package tradecalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestRiskReward(t *testing.T) {
	tests := []struct {
		name       string
		entry      float64
		stopLoss   *float64
		takeProfit *float64
		want       *float64
	}{
		{
			name:       "eurusd long",
			entry:      1.1000,
			stopLoss:   ptr(1.0950),
			takeProfit: ptr(1.1100),
			want:       ptr(2.00),
		},
		{
			name:       "short uses absolute distances",
			entry:      27000,
			stopLoss:   ptr(27200),
			takeProfit: ptr(26000),
			want:       ptr(5.00),
		},
		{
			name:       "rounds to two decimals",
			entry:      100,
			stopLoss:   ptr(97),
			takeProfit: ptr(110),
			want:       ptr(3.33),
		},
		{
			name:       "exact half rounds to even",
			entry:      10,
			stopLoss:   ptr(2),
			takeProfit: ptr(19),
			want:       ptr(1.12),
		},
		{
			name:       "exact half rounds up to even",
			entry:      10,
			stopLoss:   ptr(2),
			takeProfit: ptr(21),
			want:       ptr(1.38),
		},
		{
			name:       "missing stop loss",
			entry:      1.1,
			takeProfit: ptr(1.2),
		},
		{
			name:     "missing take profit",
			entry:    1.1,
			stopLoss: ptr(1.0),
		},
		{
			name:       "stop loss equals entry",
			entry:      1.1,
			stopLoss:   ptr(1.1),
			takeProfit: ptr(1.2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RiskReward(tt.entry, tt.stopLoss, tt.takeProfit)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestResultPips(t *testing.T) {
	got := ResultPips(1.1000, ptr(1.1050), Buy)
	require.NotNil(t, got)
	assert.InDelta(t, 0.5, *got, 1e-9)

	got = ResultPips(1.1000, ptr(1.1050), Sell)
	require.NotNil(t, got)
	assert.InDelta(t, -0.5, *got, 1e-9)

	got = ResultPips(1900, ptr(1910), Buy)
	require.NotNil(t, got)
	assert.InDelta(t, 1000, *got, 1e-9)

	assert.Nil(t, ResultPips(1.1, nil, Buy))
}

func TestResultPipsIgnoresInstrument(t *testing.T) {
	// USD/JPY moves are scaled by the same factor as every other pair
	got := ResultPips(150.00, ptr(150.25), Buy)
	require.NotNil(t, got)
	assert.InDelta(t, 25, *got, 1e-9)
}

func TestResultUSD(t *testing.T) {
	got := ResultUSD(27000, ptr(26500), Sell, 0.5)
	require.NotNil(t, got)
	assert.InDelta(t, 250, *got, 1e-9)

	got = ResultUSD(1900, ptr(1910), Buy, 1)
	require.NotNil(t, got)
	assert.InDelta(t, 10, *got, 1e-9)

	got = ResultUSD(1.1000, ptr(1.1050), Buy, 1000)
	require.NotNil(t, got)
	assert.InDelta(t, 5, *got, 1e-9)

	// 0.005 is stored as 0.0049999... and rounds down
	got = ResultUSD(1.1000, ptr(1.1050), Buy, 1)
	require.NotNil(t, got)
	assert.InDelta(t, 0, *got, 1e-9)

	// 0.125 and 0.375 are exact in binary, ties go to the even digit
	got = ResultUSD(10, ptr(10.125), Buy, 1)
	require.NotNil(t, got)
	assert.Equal(t, 0.12, *got)

	got = ResultUSD(10, ptr(10.375), Buy, 1)
	require.NotNil(t, got)
	assert.Equal(t, 0.38, *got)

	got = ResultUSD(10, ptr(10.125), Sell, 1)
	require.NotNil(t, got)
	assert.Equal(t, -0.12, *got)

	assert.Nil(t, ResultUSD(1.1, nil, Buy, 1))
	assert.Nil(t, ResultUSD(1.1, ptr(1.2), Buy, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.12, Round2(1.125))
	assert.Equal(t, 1.38, Round2(1.375))
	assert.Equal(t, 2.67, Round2(2.675)) // 2.675 is stored as 2.67499999...
	assert.Equal(t, 3.33, Round2(10.0/3))
	assert.Equal(t, 0.0, Round2(0.004999999999999893))
	assert.Equal(t, -2.5, Round2(-2.5))
}

func TestDirection(t *testing.T) {
	assert.True(t, Buy.Valid())
	assert.True(t, Sell.Valid())
	assert.False(t, Direction("LONG").Valid())

	assert.Equal(t, 1.0, Buy.Sign())
	assert.Equal(t, -1.0, Sell.Sign())
	assert.Equal(t, 0.0, Direction("").Sign())
}
