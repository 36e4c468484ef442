package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/tradeskills/internal/handlers"
	"github.com/nfrund/tradeskills/internal/middleware"
	"github.com/nfrund/tradeskills/internal/rendering"
	"github.com/nfrund/tradeskills/internal/seo"
	"github.com/nfrund/tradeskills/internal/view"
	"github.com/nfrund/tradeskills/web/src/templates/layouts"
	"github.com/nfrund/tradeskills/web/src/templates/pages"
)

const msgInternal = "Something went wrong on our side. Please try again."

// setupErrorHandling installs an error handler that answers in the shape
// the client asked for: JSON under /api, a fragment for htmx and a full page
// otherwise. Errors that are not echo.HTTPErrors are logged with a stack.
func setupErrorHandling(e *echo.Echo, siteName string) {
	renderer := rendering.NewUniversalRenderer()

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		code, msg := http.StatusInternalServerError, msgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			if code >= http.StatusInternalServerError {
				logger.Error("Internal Server Error", "error", err, "internal", he.Internal)
				msg = msgInternal
			}
		} else {
			logger.Error("Internal Server Error (Unhandled)", "error", err.Error(), "stack_trace", string(debug.Stack()))
		}

		var respErr error
		switch {
		case c.Request().Method == http.MethodHead:
			respErr = c.NoContent(code)
		case strings.HasPrefix(c.Request().URL.Path, "/api/"):
			respErr = c.JSON(code, handlers.NewErrorResponse(code, msg))
		case handlers.IsHTMX(c):
			respErr = renderer.RenderPage(c, code, h.P(h.Class("flash-error"), g.Attr("role", "alert"), g.Text(msg)))
		default:
			page := layouts.Base(layouts.Page{
				Meta:     seo.New(fmt.Sprintf("%d %s", code, http.StatusText(code)), msg),
				SiteName: siteName,
				Flash:    view.FlashData{},
			}, pages.Error(code, msg))
			respErr = renderer.RenderPage(c, code, page)
		}
		if respErr != nil {
			logger.Error("Failed to write error response", "error", respErr)
		}
	}
}
