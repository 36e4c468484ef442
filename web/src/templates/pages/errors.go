// Package pages holds full-page bodies not owned by a module.
package pages

import (
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Error is the body shown for HTML requests that fail.
func Error(status int, message string) g.Node {
	return h.Section(h.Class("card"),
		h.H1(g.Text(fmt.Sprintf("%d", status))),
		h.P(g.Text(message)),
		h.P(h.A(h.Href("/"), g.Text("Back to all courses"))),
	)
}
