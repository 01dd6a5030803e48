package internal

import (
	"errors"
	"net/http"

	"github.com/dushixiang/tradejournal/internal/xe"
	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusOf 业务错误到HTTP状态码的映射
func statusOf(err error) int {
	switch {
	case errors.Is(err, xe.ErrTradeNotFound), errors.Is(err, xe.ErrTradeNotFoundOrClosed):
		return http.StatusNotFound
	case errors.Is(err, xe.ErrInvalidToken), errors.Is(err, xe.ErrIncorrectPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func WithErrorHandler(logger *zap.Logger) func(next echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					return c.JSON(he.Code, orz.Map{
						"code":    he.Code,
						"message": err.Error(),
					})
				}

				var oe *orz.Error
				if errors.As(err, &oe) {
					return c.JSON(statusOf(err), orz.Map{
						"code":    oe.Code,
						"message": err.Error(),
					})
				}

				logger.Error("api", zap.String("path", c.Request().URL.Path), zap.Error(err))

				return c.JSON(http.StatusInternalServerError, orz.Map{
					"code":    http.StatusInternalServerError,
					"message": err.Error(),
				})
			}
			return nil
		}
	}
}
