package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dushixiang/tradejournal/internal/models"
	"github.com/dushixiang/tradejournal/internal/repo"
	"github.com/dushixiang/tradejournal/internal/telegram"
	"github.com/dushixiang/tradejournal/internal/xe"
	"github.com/dushixiang/tradejournal/pkg/nostd"
	"github.com/dushixiang/tradejournal/pkg/tradecalc"
	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const closeNotifyTemplate = `*{{pair}}* {{direction}} closed
Entry: {{entry_price}}  Exit: {{exit_price}}
Result: {{result_pips}} pips / {{result_usd}} USD`

// TradeService 交易日志服务
type TradeService struct {
	logger *zap.Logger

	*orz.Service
	*repo.TradeRepo

	clock    Clock
	notifier Notifier
}

// NewTradeService 创建交易日志服务，notifier 可以为 nil
func NewTradeService(db *gorm.DB, logger *zap.Logger, clock Clock, notifier Notifier) *TradeService {
	return &TradeService{
		logger:    logger,
		Service:   orz.NewService(db),
		TradeRepo: repo.NewTradeRepo(db),
		clock:     clock,
		notifier:  notifier,
	}
}

// TradeCreate 新建交易请求
type TradeCreate struct {
	Pair          string              `json:"pair" validate:"required"`
	Direction     tradecalc.Direction `json:"direction" validate:"required,oneof=BUY SELL"`
	EntryPrice    float64             `json:"entry_price" validate:"gt=0"`
	StopLoss      *float64            `json:"stop_loss" validate:"omitempty,gt=0"`
	TakeProfit    *float64            `json:"take_profit" validate:"omitempty,gt=0"`
	PositionSize  float64             `json:"position_size" validate:"gt=0"`
	Notes         *string             `json:"notes"`
	ScreenshotURL *string             `json:"screenshot_url"`
}

func (req TradeCreate) validate() error {
	if strings.TrimSpace(req.Pair) == "" {
		return invalidParams("pair is required")
	}
	if !req.Direction.Valid() {
		return invalidParams("direction must be BUY or SELL")
	}
	if !isPositive(req.EntryPrice) {
		return invalidParams("entry_price must be greater than 0")
	}
	if req.StopLoss != nil && !isPositive(*req.StopLoss) {
		return invalidParams("stop_loss must be greater than 0")
	}
	if req.TakeProfit != nil && !isPositive(*req.TakeProfit) {
		return invalidParams("take_profit must be greater than 0")
	}
	if !isPositive(req.PositionSize) {
		return invalidParams("position_size must be greater than 0")
	}
	return nil
}

// TradeUpdate 部分更新请求，仅应用显式提供的字段
type TradeUpdate struct {
	EntryPrice    nostd.Optional[float64] `json:"entry_price"`
	StopLoss      nostd.Optional[float64] `json:"stop_loss"`
	TakeProfit    nostd.Optional[float64] `json:"take_profit"`
	PositionSize  nostd.Optional[float64] `json:"position_size"`
	Notes         nostd.Optional[string]  `json:"notes"`
	ScreenshotURL nostd.Optional[string]  `json:"screenshot_url"`
}

func (req TradeUpdate) validate() error {
	required := []struct {
		name  string
		field nostd.Optional[float64]
	}{
		{"entry_price", req.EntryPrice},
		{"position_size", req.PositionSize},
	}
	for _, f := range required {
		if f.field.Set && f.field.Null {
			return invalidParams("%s cannot be null", f.name)
		}
		if f.field.HasValue() && !isPositive(f.field.Value) {
			return invalidParams("%s must be greater than 0", f.name)
		}
	}

	nullable := []struct {
		name  string
		field nostd.Optional[float64]
	}{
		{"stop_loss", req.StopLoss},
		{"take_profit", req.TakeProfit},
	}
	for _, f := range nullable {
		if f.field.HasValue() && !isPositive(f.field.Value) {
			return invalidParams("%s must be greater than 0", f.name)
		}
	}
	return nil
}

// apply 写入补丁字段，不重算衍生指标
func (req TradeUpdate) apply(trade *models.Trade) {
	if req.EntryPrice.HasValue() {
		trade.EntryPrice = req.EntryPrice.Value
	}
	if req.StopLoss.Set {
		trade.StopLoss = req.StopLoss.Ptr()
	}
	if req.TakeProfit.Set {
		trade.TakeProfit = req.TakeProfit.Ptr()
	}
	if req.PositionSize.HasValue() {
		trade.PositionSize = req.PositionSize.Value
	}
	if req.Notes.Set {
		trade.Notes = req.Notes.Ptr()
	}
	if req.ScreenshotURL.Set {
		trade.ScreenshotURL = req.ScreenshotURL.Ptr()
	}
}

// Create 新建交易，状态为 OPEN 并立即计算盈亏比
func (s *TradeService) Create(ctx context.Context, req TradeCreate) (*models.Trade, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	now := s.clock()
	trade := &models.Trade{
		ID:            ulid.Make().String(),
		Pair:          strings.TrimSpace(req.Pair),
		Direction:     req.Direction,
		EntryPrice:    req.EntryPrice,
		StopLoss:      req.StopLoss,
		TakeProfit:    req.TakeProfit,
		PositionSize:  req.PositionSize,
		Notes:         req.Notes,
		ScreenshotURL: req.ScreenshotURL,
		Status:        models.TradeStatusOpen,
		OpenedAt:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	trade.RefreshRiskReward()

	if err := s.TradeRepo.Create(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	s.logger.Info("trade created",
		zap.String("trade_id", trade.ID),
		zap.String("pair", trade.Pair),
		zap.String("direction", string(trade.Direction)))
	return trade, nil
}

// Get 获取单笔交易
func (s *TradeService) Get(ctx context.Context, id string) (*models.Trade, error) {
	trade, err := s.TradeRepo.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrTradeNotFound
		}
		return nil, err
	}
	return &trade, nil
}

// List 按条件列出交易
func (s *TradeService) List(ctx context.Context, filter repo.TradeFilter) ([]models.Trade, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, invalidParams("status must be OPEN or CLOSED")
	}
	return s.TradeRepo.FindByFilter(ctx, filter)
}

// Update 部分更新交易字段
func (s *TradeService) Update(ctx context.Context, id string, req TradeUpdate) (*models.Trade, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	trade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.apply(trade)
	trade.UpdatedAt = s.clock()

	if err := s.TradeRepo.Save(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to update trade %s: %w", id, err)
	}
	return trade, nil
}

// Delete 删除交易并返回被删除的记录
func (s *TradeService) Delete(ctx context.Context, id string) (*models.Trade, error) {
	trade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.TradeRepo.DeleteById(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete trade %s: %w", id, err)
	}

	s.logger.Info("trade deleted", zap.String("trade_id", id))
	return trade, nil
}

// Close 平仓，交易不存在或已平仓时返回同一个错误
func (s *TradeService) Close(ctx context.Context, id string, exitPrice float64) (*models.Trade, error) {
	if !isPositive(exitPrice) {
		return nil, invalidParams("exit_price must be greater than 0")
	}

	var closed models.Trade
	err := s.Transaction(ctx, func(ctx context.Context) error {
		trade, err := s.TradeRepo.FindById(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return xe.ErrTradeNotFoundOrClosed
			}
			return err
		}
		if trade.IsClosed() {
			return xe.ErrTradeNotFoundOrClosed
		}

		trade.ApplyClose(exitPrice, s.clock())
		if err := s.TradeRepo.Save(ctx, &trade); err != nil {
			return fmt.Errorf("failed to close trade %s: %w", id, err)
		}
		closed = trade
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("trade closed",
		zap.String("trade_id", closed.ID),
		zap.String("pair", closed.Pair),
		zap.Float64("exit_price", exitPrice))

	s.notifyClosed(&closed)
	return &closed, nil
}

func (s *TradeService) notifyClosed(trade *models.Trade) {
	if s.notifier == nil {
		return
	}
	msg := RenderCloseMessage(trade)
	if err := s.notifier.Notify(msg); err != nil {
		s.logger.Warn("failed to send close notification",
			zap.String("trade_id", trade.ID),
			zap.Error(err))
	}
}

// RenderCloseMessage 生成平仓通知文本
func RenderCloseMessage(trade *models.Trade) string {
	tmpl := fasttemplate.New(closeNotifyTemplate, "{{", "}}")
	return tmpl.ExecuteString(map[string]interface{}{
		"pair":        telegram.EscapeMarkdown(trade.Pair),
		"direction":   string(trade.Direction),
		"entry_price": formatFloat(&trade.EntryPrice),
		"exit_price":  formatFloat(trade.ExitPrice),
		"result_pips": formatFloat(trade.ResultPips),
		"result_usd":  formatFloat(trade.ResultUSD),
	})
}

func formatFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

// SeedDemo 空库时写入演示交易
func (s *TradeService) SeedDemo(ctx context.Context) error {
	count, err := s.TradeRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("trades already exist, skip demo seed")
		return nil
	}

	now := s.clock()
	notesGold, notesBtc := "Gold breakout", "BTC short scalp"
	demos := []struct {
		req      TradeCreate
		exit     float64
		openedAt time.Time
		closedAt time.Time
	}{
		{
			req: TradeCreate{
				Pair:         "XAU/USD",
				Direction:    tradecalc.Buy,
				EntryPrice:   1900.0,
				StopLoss:     floatPtr(1895.0),
				TakeProfit:   floatPtr(1920.0),
				PositionSize: 1.0,
				Notes:        &notesGold,
			},
			exit:     1910.0,
			openedAt: now.Add(-48 * time.Hour),
			closedAt: now.Add(-24 * time.Hour),
		},
		{
			req: TradeCreate{
				Pair:         "BTC/USD",
				Direction:    tradecalc.Sell,
				EntryPrice:   27000.0,
				StopLoss:     floatPtr(27200.0),
				TakeProfit:   floatPtr(26000.0),
				PositionSize: 0.5,
				Notes:        &notesBtc,
			},
			exit:     26500.0,
			openedAt: now.Add(-72 * time.Hour),
			closedAt: now.Add(-48 * time.Hour),
		},
	}

	return s.Transaction(ctx, func(ctx context.Context) error {
		for _, demo := range demos {
			trade := &models.Trade{
				ID:           ulid.Make().String(),
				Pair:         demo.req.Pair,
				Direction:    demo.req.Direction,
				EntryPrice:   demo.req.EntryPrice,
				StopLoss:     demo.req.StopLoss,
				TakeProfit:   demo.req.TakeProfit,
				PositionSize: demo.req.PositionSize,
				Notes:        demo.req.Notes,
				Status:       models.TradeStatusOpen,
				OpenedAt:     demo.openedAt,
				CreatedAt:    demo.openedAt,
				UpdatedAt:    demo.openedAt,
			}
			trade.ApplyClose(demo.exit, demo.closedAt)
			if err := s.TradeRepo.Create(ctx, trade); err != nil {
				return fmt.Errorf("failed to seed trade %s: %w", demo.req.Pair, err)
			}
		}
		s.logger.Info("seeded demo trades", zap.Int("count", len(demos)))
		return nil
	})
}

func floatPtr(v float64) *float64 {
	return &v
}
