// Package seo applies page metadata (title, description and optional
// structured data) to the document head.
//
// Metadata is a plain value carried by each page and applied once by the
// layout. Two call conventions exist in older content: a positional
// (title, description) pair and a config object. Both are accepted here, at the
// boundary, and nowhere else.
package seo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// ErrUnsupportedArgs is returned by Resolve for argument shapes that match
// neither call convention.
var ErrUnsupportedArgs = errors.New("seo: expected (title, description) or a Config")

// Config is the metadata applied to a rendered page.
type Config struct {
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Canonical   string          `json:"canonical,omitempty" yaml:"canonical"`
	Schema      json.RawMessage `json:"schema,omitempty" yaml:"-"`
}

// New builds a Config from the positional call convention.
func New(title, description string) Config {
	return Config{Title: title, Description: description}
}

// FromConfig builds a Config from the object call convention.
func FromConfig(cfg Config) Config {
	return cfg
}

// Resolve accepts either call convention and returns the unified Config.
func Resolve(args ...any) (Config, error) {
	switch len(args) {
	case 1:
		switch v := args[0].(type) {
		case Config:
			return FromConfig(v), nil
		case *Config:
			if v == nil {
				return Config{}, ErrUnsupportedArgs
			}
			return FromConfig(*v), nil
		}
	case 2:
		title, ok1 := args[0].(string)
		description, ok2 := args[1].(string)
		if ok1 && ok2 {
			return New(title, description), nil
		}
	}
	return Config{}, fmt.Errorf("%w: got %d argument(s)", ErrUnsupportedArgs, len(args))
}

// PageTitle returns the document title. The configured title is used as
// given; siteName only stands in when the title is empty.
func (c Config) PageTitle(siteName string) string {
	if c.Title == "" {
		return siteName
	}
	return c.Title
}

// Head returns the head nodes for cfg. The output depends only on its
// arguments, so re-rendering never duplicates tags. The site name goes in
// og:site_name, never into the title.
func Head(cfg Config, siteName string) []g.Node {
	title := cfg.PageTitle(siteName)
	nodes := []g.Node{
		html.TitleEl(g.Text(title)),
		html.Meta(html.Name("description"), html.Content(cfg.Description)),
		html.Meta(g.Attr("property", "og:title"), html.Content(title)),
		html.Meta(g.Attr("property", "og:description"), html.Content(cfg.Description)),
	}
	if siteName != "" {
		nodes = append(nodes, html.Meta(g.Attr("property", "og:site_name"), html.Content(siteName)))
	}
	if cfg.Canonical != "" {
		nodes = append(nodes, html.Link(html.Rel("canonical"), html.Href(cfg.Canonical)))
	}
	if len(cfg.Schema) > 0 && json.Valid(cfg.Schema) {
		// "</" would end the script element early.
		schema := strings.ReplaceAll(string(cfg.Schema), "</", `<\/`)
		nodes = append(nodes, html.Script(html.Type("application/ld+json"), g.Raw(schema)))
	}
	return nodes
}
