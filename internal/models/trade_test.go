package models

import (
	"testing"
	"time"

	"github.com/dushixiang/tradejournal/pkg/tradecalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeApplyClose(t *testing.T) {
	sl, tp := 27200.0, 26000.0
	trade := Trade{
		Pair:         "BTC/USD",
		Direction:    tradecalc.Sell,
		EntryPrice:   27000,
		StopLoss:     &sl,
		TakeProfit:   &tp,
		PositionSize: 0.5,
		Status:       TradeStatusOpen,
	}
	assert.False(t, trade.IsClosed())

	closedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	trade.ApplyClose(26500, closedAt)

	assert.True(t, trade.IsClosed())
	require.NotNil(t, trade.ExitPrice)
	require.NotNil(t, trade.ClosedAt)
	require.NotNil(t, trade.ResultPips)
	require.NotNil(t, trade.ResultUSD)
	require.NotNil(t, trade.RiskReward)
	assert.InDelta(t, 26500, *trade.ExitPrice, 1e-9)
	assert.True(t, trade.ClosedAt.Equal(closedAt))
	assert.InDelta(t, 50000, *trade.ResultPips, 1e-6)
	assert.InDelta(t, 250, *trade.ResultUSD, 1e-9)
	assert.InDelta(t, 5, *trade.RiskReward, 1e-9)
	assert.True(t, trade.UpdatedAt.Equal(closedAt))
}

func TestTradeRefreshRiskRewardWithoutLevels(t *testing.T) {
	trade := Trade{EntryPrice: 1.1, Direction: tradecalc.Buy}
	trade.RefreshRiskReward()
	assert.Nil(t, trade.RiskReward)
}

func TestTradeStatusValid(t *testing.T) {
	assert.True(t, TradeStatusOpen.Valid())
	assert.True(t, TradeStatusClosed.Valid())
	assert.False(t, TradeStatus("PENDING").Valid())
}
