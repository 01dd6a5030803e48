package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dushixiang/tradejournal/internal/models"
	"github.com/dushixiang/tradejournal/internal/repo"
	"github.com/dushixiang/tradejournal/internal/service"
	"github.com/dushixiang/tradejournal/internal/xe"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TradeHandler 交易日志HTTP处理器
type TradeHandler struct {
	logger       *zap.Logger
	tradeService *service.TradeService
}

// NewTradeHandler 创建交易处理器
func NewTradeHandler(logger *zap.Logger, tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		logger:       logger,
		tradeService: tradeService,
	}
}

// Create 新建交易
// POST /api/v1/trades
func (h *TradeHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.TradeCreate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	trade, err := h.tradeService.Create(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// List 交易列表
// GET /api/v1/trades?pair=EUR/USD&status=OPEN&start=2024-01-01T00:00:00Z&end=...
func (h *TradeHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := parseTradeFilter(c)
	if err != nil {
		return err
	}

	trades, err := h.tradeService.List(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trades)
}

func parseTradeFilter(c echo.Context) (repo.TradeFilter, error) {
	var filter repo.TradeFilter
	if pair := c.QueryParam("pair"); pair != "" {
		filter.Pair = &pair
	}
	if status := c.QueryParam("status"); status != "" {
		s := models.TradeStatus(status)
		if !s.Valid() {
			return filter, fmt.Errorf("%w: status must be OPEN or CLOSED", xe.ErrInvalidParams)
		}
		filter.Status = &s
	}

	parseTime := func(name string) (*time.Time, error) {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an RFC3339 timestamp", xe.ErrInvalidParams, name)
		}
		t = t.UTC()
		return &t, nil
	}

	var err error
	if filter.Start, err = parseTime("start"); err != nil {
		return filter, err
	}
	if filter.End, err = parseTime("end"); err != nil {
		return filter, err
	}
	return filter, nil
}

// Get 获取单笔交易
// GET /api/v1/trades/:id
func (h *TradeHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	trade, err := h.tradeService.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// Update 部分更新交易
// PUT /api/v1/trades/:id
func (h *TradeHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req service.TradeUpdate
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", xe.ErrInvalidParams, err)
	}

	trade, err := h.tradeService.Update(ctx, id, req)
	if err != nil {
		return err
	}

	h.logger.Debug("trade updated", zap.String("trade_id", id))
	return c.JSON(http.StatusOK, trade)
}

// Delete 删除交易，返回被删除的记录
// DELETE /api/v1/trades/:id
func (h *TradeHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	trade, err := h.tradeService.Delete(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// Close 平仓
// PATCH /api/v1/trades/:id/close?exit_price=1.1050
func (h *TradeHandler) Close(c echo.Context) error {
	ctx := c.Request().Context()

	exitPrice, err := parseExitPrice(c)
	if err != nil {
		return err
	}

	trade, err := h.tradeService.Close(ctx, c.Param("id"), exitPrice)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// parseExitPrice 优先读取查询参数，其次读取 JSON 请求体
func parseExitPrice(c echo.Context) (float64, error) {
	if raw := c.QueryParam("exit_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: exit_price must be a number", xe.ErrInvalidParams)
		}
		return v, nil
	}

	var body struct {
		ExitPrice *float64 `json:"exit_price"`
	}
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return 0, fmt.Errorf("%w: %v", xe.ErrInvalidParams, err)
	}
	if body.ExitPrice == nil {
		return 0, fmt.Errorf("%w: exit_price is required", xe.ErrInvalidParams)
	}
	return *body.ExitPrice, nil
}

// RegisterRoutes 注册路由
func (h *TradeHandler) RegisterRoutes(trades *echo.Group) {
	trades.POST("", h.Create)
	trades.GET("", h.List)
	trades.GET("/:id", h.Get)
	trades.PUT("/:id", h.Update)
	trades.DELETE("/:id", h.Delete)
	trades.PATCH("/:id/close", h.Close)
}
