package tradecalc

import (
	"math"
	"strconv"
)

// PipFactor 点值换算系数，所有品种（含JPY货币对）统一使用该值
const PipFactor = 0.01

// Direction 交易方向
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Valid 是否为合法方向
func (d Direction) Valid() bool {
	switch d {
	case Buy, Sell:
		return true
	default:
		return false
	}
}

// Sign 做多为 +1，做空为 -1，非法方向为 0
func (d Direction) Sign() float64 {
	switch d {
	case Buy:
		return 1
	case Sell:
		return -1
	default:
		return 0
	}
}

// Round2 保留两位小数，按浮点数的精确值舍入，恰好一半时取偶数
func Round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

// RiskReward 计算盈亏比，止损或止盈缺失、风险为0时返回nil
func RiskReward(entry float64, stopLoss, takeProfit *float64) *float64 {
	if stopLoss == nil || takeProfit == nil {
		return nil
	}
	risk := math.Abs(entry - *stopLoss)
	if risk == 0 {
		return nil
	}
	reward := math.Abs(*takeProfit - entry)
	rr := Round2(reward / risk)
	return &rr
}

// ResultPips 计算点数结果，未平仓时返回nil
func ResultPips(entry float64, exitPrice *float64, direction Direction) *float64 {
	if exitPrice == nil {
		return nil
	}
	pips := Round2((*exitPrice - entry) * direction.Sign() / PipFactor)
	return &pips
}

// ResultUSD 计算美元盈亏，未平仓或仓位为0时返回nil
func ResultUSD(entry float64, exitPrice *float64, direction Direction, positionSize float64) *float64 {
	if exitPrice == nil || positionSize == 0 {
		return nil
	}
	usd := Round2((*exitPrice - entry) * direction.Sign() * positionSize)
	return &usd
}
