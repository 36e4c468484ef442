package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/tradeskills/internal/domain"
	"github.com/nfrund/tradeskills/internal/quiz"
)

// InlineCheck renders one knowledge check. Unanswered, each option is a
// submit button in a small form that htmx upgrades to a fragment swap.
// Answered, the options are disabled and the verdict and explanation shown.
func InlineCheck(slug string, check *quiz.Check, errMsg string) g.Node {
	q := check.Question()
	out, answered := check.Outcome()
	id := CheckElementID(q.ID)

	if !answered {
		target := checkURL(slug, q.ID)
		return Aside(ID(id), Class("check"),
			P(Strong(g.Text("Quick check: ")), g.Text(q.Prompt)),
			errorLine(errMsg),
			Form(Method("post"), Action(target),
				hx.Post(target), hx.Target("#"+id), hx.Swap("outerHTML"), hx.Sync(SyncQueue),
				g.Map(indexes(q.Options), func(i int) g.Node {
					return Button(Type("submit"), Class("option"), Name("option"), Value(strconv.Itoa(i)), g.Text(q.Options[i]))
				}),
			),
		)
	}

	return Aside(ID(id), Class("check"),
		P(Strong(g.Text("Quick check: ")), g.Text(q.Prompt)),
		revealedOptions(q, out.Selected),
		Verdict(out),
	)
}

// Verdict is the correctness badge and explanation for a revealed question.
func Verdict(out quiz.Outcome) g.Node {
	var badge g.Node
	switch {
	case out.Selected == quiz.Unanswered:
		badge = P(Class("verdict-incorrect"), g.Text("Not answered"))
	case out.Correct:
		badge = P(Class("verdict-correct"), g.Text("Correct"))
	default:
		badge = P(Class("verdict-incorrect"), g.Text("Incorrect"))
	}
	return g.Group{badge, P(Class("explanation"), g.Text(out.Explanation))}
}

func revealedOptions(q domain.Question, selected int) g.Node {
	return Div(Class("options"),
		g.Map(indexes(q.Options), func(i int) g.Node {
			return Button(Type("button"), Disabled(), Class(optionClass(i, selected, q.CorrectIndex)), g.Text(q.Options[i]))
		}),
	)
}

func optionClass(i, selected, correct int) string {
	class := "option"
	if i == selected {
		class += " selected"
	}
	if i == correct {
		class += " correct"
	}
	return class
}

func errorLine(msg string) g.Node {
	if msg == "" {
		return nil
	}
	return P(Class("flash-error"), g.Attr("role", "alert"), g.Text(msg))
}

func indexes[T any](items []T) []int {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	return idx
}
