package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dushixiang/tradejournal/internal/xe"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody int
	}{
		{"invalid params", fmt.Errorf("%w: pair is required", xe.ErrInvalidParams), http.StatusBadRequest, 10400},
		{"trade not found", xe.ErrTradeNotFound, http.StatusNotFound, 10404},
		{"not found or closed", xe.ErrTradeNotFoundOrClosed, http.StatusNotFound, 10405},
		{"duplicate account", xe.ErrAccountAlreadyUsed, http.StatusBadRequest, 10000},
		{"bad credentials", xe.ErrIncorrectPassword, http.StatusUnauthorized, 10001},
		{"bad token", fmt.Errorf("%w: token is expired", xe.ErrInvalidToken), http.StatusUnauthorized, 10403},
		{"http error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, http.StatusMethodNotAllowed},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(WithErrorHandler(zap.NewNop()))
			e.GET("/boom", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			var body struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWithErrorHandler_PassesSuccess(t *testing.T) {
	e := echo.New()
	e.Use(WithErrorHandler(zap.NewNop()))
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
