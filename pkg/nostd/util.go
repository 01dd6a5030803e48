package nostd

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
	TokenQueryParam     = "access_token"
)

// GetToken 从 Authorization 头或查询参数中提取 bearer token
func GetToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(AuthorizationHeader)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], BearerScheme) {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.QueryParam(TokenQueryParam)
}
