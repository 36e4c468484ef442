package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/tradeskills/internal/config"
	"github.com/nfrund/tradeskills/internal/handlers"
	"github.com/nfrund/tradeskills/internal/storage"
)

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	// --- Setup ---
	e := echo.New()

	// 1. Capture log output
	// We temporarily redirect slog's output to a buffer to inspect it.
	var logBuffer bytes.Buffer
	// Create a new logger that writes to our buffer
	handler := slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{
		AddSource: true,
	})
	logger := slog.New(handler)
	// Store the original default logger and defer its restoration
	originalLogger := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(originalLogger)

	// 2. Set up the error handler we want to test
	setupErrorHandling(e, "Trade Skills")

	// 3. Define a route that will always produce an unhandled error
	e.GET("/test-unhandled-error", func(c echo.Context) error {
		// This is the kind of error that should trigger our stack trace logging.
		return errors.New("a deliberate unhandled error occurred")
	})

	// --- Act ---
	req := httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// --- Assert ---
	// First, check that the HTTP response is correct (a 500 error)
	require.Equal(t, http.StatusInternalServerError, rec.Code, "Expected a 500 Internal Server Error response")

	// Now, check the captured log output
	logOutput := logBuffer.String()

	// Assert that the log contains the key pieces of information
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)", "Log message should indicate an unhandled error")
	assert.Contains(t, logOutput, "error=\"a deliberate unhandled error occurred\"", "Log should contain the original error message")
	assert.Contains(t, logOutput, "stack_trace=", "Log must contain the stack_trace field")

	// A good stack trace will contain the path to the Go runtime and this test file.
	// This is a strong indicator that a real stack trace was captured.
	assert.Contains(t, logOutput, "runtime/debug/stack.go", "Stack trace should originate from the debug package")
	assert.Contains(t, logOutput, "internal/server/server_test.go", "Stack trace should point back to this test file")
}

func TestHTTPErrorHandler_ResponseShapes(t *testing.T) {
	e := echo.New()
	setupErrorHandling(e, "Trade Skills")
	notFound := func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "We could not find that section.")
	}
	e.GET("/courses/:slug", notFound)
	e.GET("/api/courses/:slug", notFound)

	t.Run("api gets json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses/nope", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, handlers.ErrorResponse{Code: "not_found", Message: "We could not find that section."}, body)
	})

	t.Run("htmx gets a fragment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/courses/nope", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, `<p class="flash-error" role="alert">We could not find that section.</p>`, rec.Body.String())
	})

	t.Run("browsers get a page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "<title>404 Not Found</title>")
		assert.Contains(t, rec.Body.String(), "<h1>404</h1>")
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Addr:               ":0",
		SiteName:           "Trade Skills",
		ContentMode:        storage.ModeEmbed,
		SessionSecret:      "a-very-secret-key-for-testing-!",
		RateLimitPerMinute: 1000,
	}
}

func TestServer_EmbeddedContent(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Boot(context.Background()))
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PASMA Towers")
	assert.Contains(t, rec.Body.String(), "Asbestos Awareness")

	rec = get("/courses/pre-use-inspection")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Mobile Tower Pre-Use Inspection | PASMA Towers for Users</title>")
	assert.Contains(t, rec.Body.String(), `id="check-brakes"`)

	rec = get("/static/app.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), ".verdict-correct"))

	rec = get("/api/courses")
	require.Equal(t, http.StatusOK, rec.Code)
	var courses []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	assert.Len(t, courses, 5)

	rec = get("/courses/not-a-section")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew_RejectsMissingContentDir(t *testing.T) {
	cfg := testConfig()
	cfg.ContentMode = storage.ModeDisk
	cfg.ContentDir = t.TempDir() + "/missing"
	_, err := New(cfg)
	assert.Error(t, err)
}
