package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func TestRenderComponent(t *testing.T) {
	r := NewUniversalRenderer()

	t.Run("gomponents node", func(t *testing.T) {
		out, err := r.RenderComponent(context.Background(), h.Div(h.ID("score"), g.Text("3/3 correct")))
		require.NoError(t, err)
		assert.Equal(t, `<div id="score">3/3 correct</div>`, string(out))
	})

	t.Run("templ component", func(t *testing.T) {
		c := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<p>ok</p>")
			return err
		})
		out, err := r.RenderComponent(context.Background(), c)
		require.NoError(t, err)
		assert.Equal(t, "<p>ok</p>", string(out))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := r.RenderComponent(context.Background(), 42)
		assert.ErrorContains(t, err, "unsupported component type int")
	})
}

func TestRenderPageAndEchoRenderer(t *testing.T) {
	e := echo.New()
	r := NewUniversalRenderer()
	e.Renderer = r
	e.GET("/page", func(c echo.Context) error {
		return r.RenderPage(c, http.StatusUnprocessableEntity, h.P(g.Text("Pick an option.")))
	})
	e.GET("/render", func(c echo.Context) error {
		return c.Render(http.StatusOK, "", h.P(g.Text("hello")))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, "<p>Pick an option.</p>", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>hello</p>", rec.Body.String())
}
