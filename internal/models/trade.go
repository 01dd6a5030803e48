package models

import (
	"time"

	"github.com/dushixiang/tradejournal/pkg/tradecalc"
	"gorm.io/gorm"
)

// TradeStatus 交易状态
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "OPEN"   // 持仓中
	TradeStatusClosed TradeStatus = "CLOSED" // 已平仓
)

// Valid 是否为合法状态
func (s TradeStatus) Valid() bool {
	switch s {
	case TradeStatusOpen, TradeStatusClosed:
		return true
	default:
		return false
	}
}

// Trade 交易日志记录
type Trade struct {
	ID            string              `gorm:"primaryKey;type:varchar(26)" json:"id"`
	Pair          string              `gorm:"type:varchar(20);not null;index" json:"pair"`          // 交易品种，如 EUR/USD
	Direction     tradecalc.Direction `gorm:"type:varchar(10);not null" json:"direction"`           // BUY/SELL
	EntryPrice    float64             `gorm:"not null" json:"entry_price"`                          // 入场价格
	ExitPrice     *float64            `json:"exit_price"`                                           // 出场价格（仅平仓时有值）
	StopLoss      *float64            `json:"stop_loss"`                                            // 止损价格
	TakeProfit    *float64            `json:"take_profit"`                                          // 止盈价格
	PositionSize  float64             `gorm:"not null" json:"position_size"`                        // 仓位大小
	RiskReward    *float64            `json:"risk_reward"`                                          // 盈亏比
	ResultPips    *float64            `json:"result_pips"`                                          // 点数结果
	ResultUSD     *float64            `gorm:"column:result_usd" json:"result_usd"`                  // 美元盈亏
	Notes         *string             `gorm:"type:text" json:"notes"`                               // 交易笔记
	ScreenshotURL *string             `json:"screenshot_url"`                                       // 截图地址
	Status        TradeStatus         `gorm:"type:varchar(10);not null;default:'OPEN';index" json:"status"`
	OpenedAt      time.Time           `gorm:"not null;index" json:"opened_at"` // 开仓时间
	ClosedAt      *time.Time          `gorm:"index" json:"closed_at"`          // 平仓时间
	CreatedAt     time.Time           `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Trade) TableName() string {
	return "trades"
}

// IsClosed 是否已平仓
func (t *Trade) IsClosed() bool {
	switch t.Status {
	case TradeStatusClosed:
		return true
	case TradeStatusOpen:
		return false
	default:
		return false
	}
}

// RefreshRiskReward 根据当前价格字段重算盈亏比
func (t *Trade) RefreshRiskReward() {
	t.RiskReward = tradecalc.RiskReward(t.EntryPrice, t.StopLoss, t.TakeProfit)
}

// ApplyClose 平仓并计算结果字段
func (t *Trade) ApplyClose(exitPrice float64, closedAt time.Time) {
	t.ExitPrice = &exitPrice
	t.ClosedAt = &closedAt
	t.Status = TradeStatusClosed
	t.ResultPips = tradecalc.ResultPips(t.EntryPrice, t.ExitPrice, t.Direction)
	t.ResultUSD = tradecalc.ResultUSD(t.EntryPrice, t.ExitPrice, t.Direction, t.PositionSize)
	t.RefreshRiskReward()
	t.UpdatedAt = closedAt
}
