package service

import (
	"context"
	"time"

	"github.com/dushixiang/tradejournal/internal/models"
	"github.com/dushixiang/tradejournal/internal/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatsService 交易统计服务
type StatsService struct {
	logger *zap.Logger
	*repo.TradeRepo
}

// NewStatsService 创建统计服务
func NewStatsService(db *gorm.DB, logger *zap.Logger) *StatsService {
	return &StatsService{
		logger:    logger,
		TradeRepo: repo.NewTradeRepo(db),
	}
}

// SummaryStats 汇总统计
type SummaryStats struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`
	AvgRiskReward float64 `json:"avg_risk_reward"`
	TotalProfit   float64 `json:"total_profit"`
}

// EquityPoint 资金曲线上的一个点
type EquityPoint struct {
	Date   time.Time `json:"date"`
	Equity float64   `json:"equity"`
}

// SummaryStats 统计所有已平仓交易
func (s *StatsService) SummaryStats(ctx context.Context) (*SummaryStats, error) {
	status := models.TradeStatusClosed
	trades, err := s.TradeRepo.FindByFilter(ctx, repo.TradeFilter{Status: &status})
	if err != nil {
		return nil, err
	}
	stats := ComputeSummary(trades)
	return &stats, nil
}

// EquityCurve 按平仓时间累计美元盈亏
func (s *StatsService) EquityCurve(ctx context.Context) ([]EquityPoint, error) {
	trades, err := s.TradeRepo.FindClosedOrderByClosedAt(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeEquityCurve(trades), nil
}

// ComputeSummary 计算汇总统计。
// 缺失盈亏比的交易计入分母但不计入分子。
func ComputeSummary(trades []models.Trade) SummaryStats {
	var stats SummaryStats
	var sumRiskReward float64

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		stats.TotalTrades++
		if t.ResultUSD != nil {
			stats.TotalProfit += *t.ResultUSD
			switch {
			case *t.ResultUSD > 0:
				stats.WinningTrades++
			case *t.ResultUSD < 0:
				stats.LosingTrades++
			}
		}
		if t.RiskReward != nil {
			sumRiskReward += *t.RiskReward
		}
	}

	if stats.TotalTrades == 0 {
		return stats
	}
	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades)
	stats.AvgRiskReward = sumRiskReward / float64(stats.TotalTrades)
	return stats
}

// ComputeEquityCurve 按传入顺序生成资金曲线，每笔交易一个点
func ComputeEquityCurve(trades []models.Trade) []EquityPoint {
	curve := make([]EquityPoint, 0, len(trades))
	equity := 0.0
	for _, t := range trades {
		if t.ResultUSD != nil {
			equity += *t.ResultUSD
		}
		var date time.Time
		if t.ClosedAt != nil {
			date = *t.ClosedAt
		}
		curve = append(curve, EquityPoint{Date: date, Equity: equity})
	}
	return curve
}
