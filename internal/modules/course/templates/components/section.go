package components

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/tradeskills/internal/domain"
	"github.com/nfrund/tradeskills/internal/quiz"
)

// SectionView is a section together with the visitor's interaction state.
type SectionView struct {
	Section *domain.Section
	Checks  map[string]*quiz.Check
	Quiz    *quiz.Session
}

// SectionPage renders the body of a section page. Every section renders
// through this one template.
func SectionPage(v SectionView) g.Node {
	s := v.Section
	return Article(Class("section"),
		SectionHeader(s),
		SummaryBoxes(s.Summary),
		OutcomeList(s.Outcomes),
		ContentBlocks(v),
		quizNode(v),
		FAQList(s.FAQs),
		SectionNav(s.Prev, s.Next),
	)
}

func quizNode(v SectionView) g.Node {
	if v.Quiz == nil || v.Section.Quiz.Len() == 0 {
		return nil
	}
	return QuizPanel(v.Section.Slug, v.Quiz, "")
}

// SectionHeader renders the course breadcrumb, title and subtitle.
func SectionHeader(s *domain.Section) g.Node {
	crumbs := []string{s.Course}
	if s.Module != "" {
		crumbs = append(crumbs, s.Module)
	}
	return Header(Class("section-header"),
		P(Class("eyebrow"), g.Text(strings.Join(crumbs, " · "))),
		H1(g.Text(s.Title)),
		g.If(s.Subtitle != "", P(Class("subtitle"), g.Text(s.Subtitle))),
	)
}

// SummaryBoxes renders the at-a-glance cards.
func SummaryBoxes(boxes []domain.SummaryBox) g.Node {
	if len(boxes) == 0 {
		return nil
	}
	return Div(Class("summary"),
		g.Map(boxes, func(b domain.SummaryBox) g.Node {
			return Div(Class("card"), H3(g.Text(b.Title)), P(g.Text(b.Body)))
		}),
	)
}

// OutcomeList renders the learning outcomes.
func OutcomeList(outcomes []string) g.Node {
	if len(outcomes) == 0 {
		return nil
	}
	return Section(Class("outcomes"),
		H2(g.Text("Learning outcomes")),
		Ul(g.Map(outcomes, func(o string) g.Node { return Li(g.Text(o)) })),
	)
}

// ContentBlocks renders the prose with each block's inline check after it.
// Checks no block refers to follow the last block.
func ContentBlocks(v SectionView) g.Node {
	placed := make(map[string]bool)
	var nodes []g.Node
	for _, b := range v.Section.Blocks {
		nodes = append(nodes, block(b))
		if c, ok := v.Checks[b.CheckID]; ok && b.CheckID != "" {
			nodes = append(nodes, InlineCheck(v.Section.Slug, c, ""))
			placed[b.CheckID] = true
		}
	}
	for _, q := range v.Section.Checks {
		if c, ok := v.Checks[q.ID]; ok && !placed[q.ID] {
			nodes = append(nodes, InlineCheck(v.Section.Slug, c, ""))
		}
	}
	return Div(Class("blocks"), g.Group(nodes))
}

func block(b domain.Block) g.Node {
	return Section(Class("block"),
		g.If(b.Heading != "", H2(g.Text(b.Heading))),
		g.Map(b.Paragraphs, func(p string) g.Node { return P(g.Text(p)) }),
		g.If(len(b.Bullets) > 0, Ul(g.Map(b.Bullets, func(item string) g.Node { return Li(g.Text(item)) }))),
	)
}

// FAQList renders the frequently asked questions as disclosure widgets.
func FAQList(faqs []domain.FAQ) g.Node {
	if len(faqs) == 0 {
		return nil
	}
	return Section(Class("faqs"),
		H2(g.Text("Frequently asked questions")),
		g.Map(faqs, func(f domain.FAQ) g.Node {
			return Details(Summary(g.Text(f.Question)), P(g.Text(f.Answer)))
		}),
	)
}

// SectionNav renders the previous and next links.
func SectionNav(prev, next *domain.NavLink) g.Node {
	if prev == nil && next == nil {
		return nil
	}
	return Nav(Class("nav-links"), navLink(prev, "prev"), navLink(next, "next"))
}

func navLink(l *domain.NavLink, rel string) g.Node {
	if l == nil {
		return Span()
	}
	switch {
	case rel == "prev" && l.Label != "":
		return A(Href(l.Href), Rel(rel), g.Text("← "+l.Label))
	case rel == "prev":
		return A(Href(l.Href), Rel(rel), g.Text("← Previous"))
	case l.Label != "":
		return A(Href(l.Href), Rel(rel), g.Text(l.Label+" →"))
	default:
		return A(Href(l.Href), Rel(rel), g.Text("Next →"))
	}
}
