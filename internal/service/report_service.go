package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dushixiang/tradejournal/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"
)

const reportTemplate = `*Trading journal report*
Closed trades: {{total_trades}} ({{winning_trades}}W / {{losing_trades}}L)
Win rate: {{win_rate}}%
Avg R:R: {{avg_risk_reward}}
Total profit: {{total_profit}} USD
Equity: {{equity}} USD`

// ReportService 定时推送交易日志汇总
type ReportService struct {
	logger       *zap.Logger
	statsService *StatsService
	notifier     Notifier
	conf         config.ReportConf

	mu   sync.Mutex
	cron *cron.Cron
}

// NewReportService 创建汇总推送服务，notifier 可以为 nil
func NewReportService(logger *zap.Logger, statsService *StatsService, notifier Notifier, conf *config.Config) *ReportService {
	return &ReportService{
		logger:       logger,
		statsService: statsService,
		notifier:     notifier,
		conf:         conf.Report,
	}
}

// Start 启动定时任务，未启用或未配置通知渠道时直接返回
func (s *ReportService) Start() error {
	if !s.conf.Enabled {
		return nil
	}
	if s.notifier == nil {
		s.logger.Warn("report enabled but no notifier configured, skip scheduling")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return errors.New("report scheduler is already running")
	}

	c := cron.New()
	_, err := c.AddFunc(s.conf.Cron, func() {
		if err := s.SendReport(context.Background()); err != nil {
			s.logger.Error("failed to send journal report", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add report cron job: %w", err)
	}
	c.Start()
	s.cron = c

	s.logger.Info("journal report scheduled", zap.String("cron_expression", s.conf.Cron))
	return nil
}

// Stop 停止定时任务并等待正在执行的任务结束
func (s *ReportService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron = nil
	s.logger.Info("journal report scheduler stopped")
}

// SendReport 生成并推送一次汇总
func (s *ReportService) SendReport(ctx context.Context) error {
	if s.notifier == nil {
		return nil
	}
	msg, err := s.BuildReport(ctx)
	if err != nil {
		return err
	}
	return s.notifier.Notify(msg)
}

// BuildReport 生成汇总文本
func (s *ReportService) BuildReport(ctx context.Context) (string, error) {
	stats, err := s.statsService.SummaryStats(ctx)
	if err != nil {
		return "", err
	}
	curve, err := s.statsService.EquityCurve(ctx)
	if err != nil {
		return "", err
	}
	equity := 0.0
	if len(curve) > 0 {
		equity = curve[len(curve)-1].Equity
	}

	tmpl := fasttemplate.New(reportTemplate, "{{", "}}")
	return tmpl.ExecuteString(map[string]interface{}{
		"total_trades":    fmt.Sprintf("%d", stats.TotalTrades),
		"winning_trades":  fmt.Sprintf("%d", stats.WinningTrades),
		"losing_trades":   fmt.Sprintf("%d", stats.LosingTrades),
		"win_rate":        fmt.Sprintf("%.2f", stats.WinRate*100),
		"avg_risk_reward": fmt.Sprintf("%.2f", stats.AvgRiskReward),
		"total_profit":    fmt.Sprintf("%.2f", stats.TotalProfit),
		"equity":          fmt.Sprintf("%.2f", equity),
	}), nil
}
