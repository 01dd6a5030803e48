package nostd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	StopLoss Optional[float64] `json:"stop_loss"`
	Notes    Optional[string]  `json:"notes"`
	Size     Optional[float64] `json:"position_size"`
}

func TestOptionalTriState(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"stop_loss": null, "notes": "breakout"}`), &p))

	assert.True(t, p.StopLoss.Set)
	assert.True(t, p.StopLoss.Null)
	assert.False(t, p.StopLoss.HasValue())
	assert.Nil(t, p.StopLoss.Ptr())

	assert.True(t, p.Notes.HasValue())
	require.NotNil(t, p.Notes.Ptr())
	assert.Equal(t, "breakout", *p.Notes.Ptr())

	assert.False(t, p.Size.Set)
	assert.False(t, p.Size.HasValue())
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"position_size": "big"}`), &p)
	assert.Error(t, err)
}

func TestOptionalMarshal(t *testing.T) {
	data, err := json.Marshal(patch{StopLoss: Some(1.095), Notes: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"stop_loss":1.095,"notes":null,"position_size":null}`, string(data))
}

func TestGetToken(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AuthorizationHeader, "Bearer abc.def")
	assert.Equal(t, "abc.def", GetToken(e.NewContext(req, httptest.NewRecorder())))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AuthorizationHeader, "Basic xyz")
	assert.Equal(t, "", GetToken(e.NewContext(req, httptest.NewRecorder())))

	req = httptest.NewRequest(http.MethodGet, "/?access_token=q1", nil)
	assert.Equal(t, "q1", GetToken(e.NewContext(req, httptest.NewRecorder())))
}

func TestCustomValidatorTranslates(t *testing.T) {
	cv := CustomValidator{Validator: validator.New()}
	require.NoError(t, cv.TransInit())

	type req struct {
		EntryPrice float64 `json:"entry_price" validate:"gt=0"`
		Email      string  `json:"email" validate:"required,email"`
	}

	err := cv.Validate(&req{EntryPrice: 0, Email: "trader@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry_price")

	assert.NoError(t, cv.Validate(&req{EntryPrice: 1.1, Email: "trader@example.com"}))
}

func TestBcrypt(t *testing.T) {
	hash, err := BcryptEncode([]byte("secret"))
	require.NoError(t, err)
	assert.NoError(t, BcryptMatch(hash, []byte("secret")))
	assert.Error(t, BcryptMatch(hash, []byte("wrong")))
	assert.True(t, IsEmail("trader@example.com"))
	assert.False(t, IsEmail("not-an-email"))
}
