package seo_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nfrund/tradeskills/internal/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func renderHead(t *testing.T, cfg seo.Config, site string) string {
	t.Helper()
	var buf strings.Builder
	require.NoError(t, g.Group(seo.Head(cfg, site)).Render(&buf))
	return buf.String()
}

func TestResolve(t *testing.T) {
	t.Run("positional convention", func(t *testing.T) {
		cfg, err := seo.Resolve("Title X", "Description Y")
		require.NoError(t, err)
		assert.Equal(t, "Title X", cfg.Title)
		assert.Equal(t, "Description Y", cfg.Description)
	})

	t.Run("object convention", func(t *testing.T) {
		in := seo.Config{Title: "T", Description: "D", Schema: json.RawMessage(`{"@type":"Course"}`)}
		cfg, err := seo.Resolve(in)
		require.NoError(t, err)
		assert.Equal(t, in, cfg)

		cfg, err = seo.Resolve(&in)
		require.NoError(t, err)
		assert.Equal(t, in, cfg)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		for _, args := range [][]any{nil, {"only title"}, {1, 2}, {"a", "b", "c"}, {(*seo.Config)(nil)}} {
			_, err := seo.Resolve(args...)
			assert.ErrorIs(t, err, seo.ErrUnsupportedArgs, "args %v", args)
		}
	})
}

func TestHead(t *testing.T) {
	t.Run("sets exact title and description", func(t *testing.T) {
		html := renderHead(t, seo.New("Title X", "Description Y"), "")

		assert.Contains(t, html, "<title>Title X</title>")
		assert.Contains(t, html, `<meta name="description" content="Description Y">`)
	})

	t.Run("site name never changes the title", func(t *testing.T) {
		html := renderHead(t, seo.New("Title X", "Description Y"), "Trade Skills")
		assert.Contains(t, html, "<title>Title X</title>")
		assert.Contains(t, html, `<meta property="og:title" content="Title X">`)
		assert.Contains(t, html, `<meta property="og:site_name" content="Trade Skills">`)
	})

	t.Run("site name stands in for a missing title", func(t *testing.T) {
		html := renderHead(t, seo.Config{Description: "d"}, "Trade Skills")
		assert.Contains(t, html, "<title>Trade Skills</title>")
	})

	t.Run("schema passed through verbatim", func(t *testing.T) {
		cfg := seo.Config{Title: "T", Description: "D", Schema: json.RawMessage(`{"@type":"Course","name":"PASMA"}`)}
		html := renderHead(t, cfg, "")
		assert.Contains(t, html, `<script type="application/ld+json">{"@type":"Course","name":"PASMA"}</script>`)
	})

	t.Run("invalid schema is dropped", func(t *testing.T) {
		cfg := seo.Config{Title: "T", Description: "D", Schema: json.RawMessage(`{not json`)}
		assert.NotContains(t, renderHead(t, cfg, ""), "ld+json")
	})

	t.Run("schema cannot close the script element", func(t *testing.T) {
		cfg := seo.Config{Title: "T", Schema: json.RawMessage(`{"name":"</script><b>"}`)}
		html := renderHead(t, cfg, "")
		assert.Equal(t, 1, strings.Count(html, "</script>"))
	})

	t.Run("idempotent", func(t *testing.T) {
		cfg := seo.Config{Title: "T", Description: "D", Canonical: "https://example.com/a"}
		first := renderHead(t, cfg, "Site")
		second := renderHead(t, cfg, "Site")
		assert.Equal(t, first, second)
		assert.Equal(t, 1, strings.Count(first, "<title>"))
	})
}
