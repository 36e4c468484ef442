// Package layouts holds the page shell shared by every full-page response.
package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/tradeskills/internal/seo"
	"github.com/nfrund/tradeskills/internal/view"
)

// HTMXSrc is the htmx build the pages load.
const HTMXSrc = "https://unpkg.com/htmx.org@2.0.3"

// htmxConfig makes htmx swap 422 responses so validation messages show.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"[45]..","swap":false,"error":true}]}`

// Page is everything the shell needs besides the body.
type Page struct {
	Meta     seo.Config
	SiteName string
	Flash    view.FlashData
}

// CalculateTitle returns the document title for a page title.
func CalculateTitle(title, siteName string) string {
	return seo.Config{Title: title}.PageTitle(siteName)
}

// Base wraps body in the document shell. The section's metadata is applied
// here and nowhere else.
func Base(p Page, body ...g.Node) g.Node {
	head := []g.Node{
		h.Meta(h.Charset("utf-8")),
		h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
	}
	head = append(head, seo.Head(p.Meta, p.SiteName)...)
	head = append(head,
		h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
		h.Meta(h.Name("htmx-config"), h.Content(htmxConfig)),
		h.Script(h.Src(HTMXSrc), g.Attr("defer")),
	)

	return h.Doctype(
		h.HTML(h.Lang("en-GB"),
			h.Head(head...),
			h.Body(
				h.Header(h.Class("site-header"),
					h.Div(h.Class("container"), h.A(h.Href("/"), g.Text(p.SiteName))),
				),
				h.Main(h.Class("container"),
					Flashes(p.Flash),
					g.Group(body),
				),
				view.Templ(context.Background(), footer(p.SiteName)),
			),
		),
	)
}

// Flashes renders pending flash messages, or nothing.
func Flashes(f view.FlashData) g.Node {
	if f.Empty() {
		return nil
	}
	return h.Div(h.ID("flash"),
		g.Map(f.Error, func(msg string) g.Node {
			return h.P(h.Class("flash-error"), g.Attr("role", "alert"), g.Text(msg))
		}),
		g.Map(f.Success, func(msg string) g.Node {
			return h.P(h.Class("flash-success"), g.Text(msg))
		}),
	)
}

func footer(siteName string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<footer class="site-footer container"><p>`+
			templ.EscapeString(siteName)+` training notes. Always follow your site rules and supervisor.</p></footer>`)
		return err
	})
}
