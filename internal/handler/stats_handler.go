package handler

import (
	"net/http"

	"github.com/dushixiang/tradejournal/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StatsHandler 统计HTTP处理器
type StatsHandler struct {
	logger       *zap.Logger
	statsService *service.StatsService
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(logger *zap.Logger, statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		logger:       logger,
		statsService: statsService,
	}
}

// Summary 汇总统计
// GET /api/v1/stats/summary
func (h *StatsHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.statsService.SummaryStats(ctx)
	if err != nil {
		h.logger.Error("failed to compute summary stats", zap.Error(err))
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// EquityCurve 资金曲线
// GET /api/v1/stats/equity_curve
func (h *StatsHandler) EquityCurve(c echo.Context) error {
	ctx := c.Request().Context()

	curve, err := h.statsService.EquityCurve(ctx)
	if err != nil {
		h.logger.Error("failed to compute equity curve", zap.Error(err))
		return err
	}
	return c.JSON(http.StatusOK, curve)
}

// RegisterRoutes 注册路由
func (h *StatsHandler) RegisterRoutes(stats *echo.Group) {
	stats.GET("/summary", h.Summary)
	stats.GET("/equity_curve", h.EquityCurve)
}
