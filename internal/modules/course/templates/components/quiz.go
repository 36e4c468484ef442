package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/tradeskills/internal/quiz"
)

// QuizPanel renders the end-of-section quiz. Without htmx it is a plain form:
// option buttons post to the answer endpoint and the submit button scores it.
func QuizPanel(slug string, s *quiz.Session, errMsg string) g.Node {
	submit := quizURL(slug, "submit")
	return Section(ID(QuizID), Class("quiz"),
		H2(g.Text(s.Spec().Title)),
		errorLine(errMsg),
		Form(Method("post"), Action(submit),
			hx.Post(submit), hx.Target("#"+QuizID), hx.Swap("outerHTML"), hx.Sync(SyncQueue),
			g.Map(indexes(s.Spec().Questions), func(i int) g.Node {
				return QuizQuestion(slug, s, i, "")
			}),
			ScorePanel(slug, s, false),
		),
	)
}

// QuizQuestion renders question i. Once answered, or once the quiz is
// submitted, its options lock and the explanation is revealed.
func QuizQuestion(slug string, s *quiz.Session, i int, errMsg string) g.Node {
	q := s.Spec().Questions[i]
	id := QuestionElementID(i)
	prompt := P(Strong(g.Textf("%d. ", i+1)), g.Text(q.Prompt))

	out, answered := s.Outcome(i)
	if answered || s.Submitted() {
		if !answered {
			out = quiz.Outcome{Selected: quiz.Unanswered, Explanation: q.Explanation}
		}
		return Div(ID(id), Class("quiz-question"),
			prompt,
			revealedOptions(q, out.Selected),
			Verdict(out),
		)
	}

	answer := quizURL(slug, "answer")
	return Div(ID(id), Class("quiz-question"),
		prompt,
		errorLine(errMsg),
		g.Map(indexes(q.Options), func(opt int) g.Node {
			return Button(Type("submit"), Class("option"),
				Name("answer"), Value(fmt.Sprintf("%d:%d", i, opt)),
				g.Attr("formaction", answer),
				hx.Post(answer), hx.Target("#"+id), hx.Swap("outerHTML"), hx.Sync(SyncQueue),
				g.Text(q.Options[opt]),
			)
		}),
	)
}

// ScorePanel shows progress while the quiz is open and the final score once
// it is submitted. With oob set it is marked for an htmx out-of-band swap.
func ScorePanel(slug string, s *quiz.Session, oob bool) g.Node {
	reset := quizURL(slug, "reset")
	resetButton := Button(Type("submit"), Class("secondary"),
		g.Attr("formaction", reset),
		hx.Post(reset), hx.Target("#"+QuizID), hx.Swap("outerHTML"), hx.Sync(SyncQueue),
		g.Text("Start again"),
	)

	if s.Submitted() {
		res := s.Result()
		return Div(ID(ScoreID), Class("score-panel"), g.If(oob, hx.SwapOOB("true")),
			P(Class("score"), g.Text(res.String())),
			P(g.Textf("You scored %d%%.", res.Percent())),
			resetButton,
		)
	}
	return Div(ID(ScoreID), Class("score-panel"), g.If(oob, hx.SwapOOB("true")),
		P(g.Textf("%d of %d answered", s.Answered(), s.Spec().Len())),
		Button(Type("submit"), g.Text("Submit answers")),
		resetButton,
	)
}
