package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionRequest struct {
	Option string `form:"option" validate:"required,numeric"`
}

func newContext(body string, htmx bool) echo.Context {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var req optionRequest
		require.NoError(t, BindAndValidate(newContext("option=2", false), &req))
		assert.Equal(t, "2", req.Option)
	})

	t.Run("missing field", func(t *testing.T) {
		var req optionRequest
		err := BindAndValidate(newContext("", false), &req)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
		assert.Equal(t, "Invalid option.", he.Message)
	})

	t.Run("not a number", func(t *testing.T) {
		var req optionRequest
		err := BindAndValidate(newContext("option=two", false), &req)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
	})
}

func TestIsHTMX(t *testing.T) {
	assert.True(t, IsHTMX(newContext("", true)))
	assert.False(t, IsHTMX(newContext("", false)))
}

func TestNewErrorResponse(t *testing.T) {
	assert.Equal(t, ErrorResponse{Code: "not_found", Message: "no such section"}, NewErrorResponse(http.StatusNotFound, "no such section"))
	assert.Equal(t, "internal", NewErrorResponse(http.StatusTeapot, "").Code)
}

func TestHealthGet(t *testing.T) {
	e := echo.New()
	e.GET("/health", HealthGet)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
