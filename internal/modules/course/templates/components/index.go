package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/tradeskills/internal/content"
	"github.com/nfrund/tradeskills/internal/domain"
)

// CourseIndex lists every section grouped by course.
func CourseIndex(siteName string, courses []content.Course) g.Node {
	return Div(Class("index"),
		H1(g.Text(siteName)),
		g.If(len(courses) == 0, P(g.Text("No courses are published yet."))),
		g.Map(courses, func(c content.Course) g.Node {
			return Section(Class("card"),
				H2(g.Text(c.Name)),
				Ol(g.Map(c.Sections, func(s *domain.Section) g.Node {
					return Li(A(Href(SectionURL(s.Slug)), g.Text(s.Title)),
						g.If(s.Subtitle != "", g.Group{g.Text(" · "), Span(Class("subtitle"), g.Text(s.Subtitle))}),
					)
				})),
			)
		}),
	)
}
