package handler

import (
	"net/http"

	"github.com/dushixiang/tradejournal/internal/middleware"
	"github.com/dushixiang/tradejournal/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	logger      *zap.Logger
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(logger *zap.Logger, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		authService: authService,
	}
}

// Signup 注册
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.Credentials
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Signup(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.Credentials
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(ctx, req, c.RealIP())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCurrentUser 获取当前用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	ctx := c.Request().Context()

	// 从Context中获取用户ID（由JWT中间件设置）
	userID, _ := c.Get(middleware.ContextKeyUserID).(string)

	user, err := h.authService.GetCurrentUser(ctx, userID)
	if err != nil {
		h.logger.Error("failed to get current user", zap.Error(err))
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RegisterRoutes 注册公开路由
func (h *AuthHandler) RegisterRoutes(auth *echo.Group) {
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
}

// RegisterProtectedRoutes 注册需要认证的路由
func (h *AuthHandler) RegisterProtectedRoutes(auth *echo.Group) {
	auth.GET("/me", h.GetCurrentUser)
}
