package middleware

import (
	"github.com/dushixiang/tradejournal/internal/service"
	"github.com/dushixiang/tradejournal/internal/xe"
	"github.com/dushixiang/tradejournal/pkg/nostd"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
)

// JWTAuthConfig JWT认证配置
type JWTAuthConfig struct {
	AuthService *service.AuthService
	Logger      *zap.Logger
}

// JWTAuth JWT认证中间件，失败时返回 xe.ErrInvalidToken 交给错误处理中间件
func JWTAuth(config JWTAuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := nostd.GetToken(c)
			if tokenString == "" {
				config.Logger.Warn("JWT token missing",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()))
				return xe.ErrInvalidToken
			}

			claims, err := config.AuthService.ValidateToken(tokenString)
			if err != nil {
				config.Logger.Warn("invalid JWT token",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()),
					zap.Error(err))
				return err
			}

			// 将用户信息存入Context
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyEmail, claims.Email)

			config.Logger.Debug("JWT authenticated",
				zap.String("user_id", claims.UserID),
				zap.String("path", c.Request().URL.Path))

			return next(c)
		}
	}
}
