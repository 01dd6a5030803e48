package handler

import (
	"fmt"

	"github.com/dushixiang/tradejournal/internal/xe"
	"github.com/labstack/echo/v4"
)

// bindAndValidate 绑定并校验请求体，失败时包装为参数错误
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: %v", xe.ErrInvalidParams, err)
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", xe.ErrInvalidParams, err)
	}
	return nil
}
