package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/nfrund/tradeskills/internal/domain"
	"github.com/nfrund/tradeskills/internal/quiz"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func question(id string, correct int) domain.Question {
	return domain.Question{
		ID:           id,
		Prompt:       "Which tester proves dead?",
		Options:      []string{"Multimeter", "Two-pole voltage indicator", "Neon screwdriver"},
		CorrectIndex: correct,
		Explanation:  "Use an approved two-pole voltage indicator.",
	}
}

func TestInlineCheck(t *testing.T) {
	t.Run("unanswered shows every option and hides the explanation", func(t *testing.T) {
		c, err := quiz.NewCheck(question("tester", 1))
		require.NoError(t, err)
		out := render(t, InlineCheck("safe-isolation", c, ""))

		assert.Contains(t, out, `id="check-tester"`)
		assert.Equal(t, 3, strings.Count(out, `name="option"`))
		assert.Contains(t, out, `hx-post="/courses/safe-isolation/checks/tester"`)
		assert.NotContains(t, out, "approved two-pole")
	})

	t.Run("correct selection", func(t *testing.T) {
		c, err := quiz.RestoreCheck(question("tester", 1), 1)
		require.NoError(t, err)
		out := render(t, InlineCheck("safe-isolation", c, ""))

		assert.Contains(t, out, `class="verdict-correct"`)
		assert.Contains(t, out, "Use an approved two-pole voltage indicator.")
		assert.Contains(t, out, `class="option selected correct"`)
		assert.NotContains(t, out, "hx-post")
	})

	t.Run("incorrect selection still explains", func(t *testing.T) {
		c, err := quiz.RestoreCheck(question("tester", 1), 2)
		require.NoError(t, err)
		out := render(t, InlineCheck("safe-isolation", c, ""))

		assert.Contains(t, out, `class="verdict-incorrect"`)
		assert.Contains(t, out, "Use an approved two-pole voltage indicator.")
		assert.Contains(t, out, `class="option selected"`)
	})

	t.Run("error message", func(t *testing.T) {
		c, _ := quiz.NewCheck(question("tester", 1))
		assert.Contains(t, render(t, InlineCheck("s", c, "That option does not exist.")), "That option does not exist.")
	})
}

func TestQuizPanel(t *testing.T) {
	spec := domain.QuizSpec{Title: "Safe isolation quiz", Questions: []domain.Question{
		question("q1", 1), question("q2", 0), question("q3", 2),
	}}

	t.Run("open quiz", func(t *testing.T) {
		s, err := quiz.NewSession(spec)
		require.NoError(t, err)
		_, err = s.Answer(0, 1)
		require.NoError(t, err)
		out := render(t, QuizPanel("safe-isolation", s, ""))

		assert.Contains(t, out, `id="quiz"`)
		assert.Contains(t, out, `action="/courses/safe-isolation/quiz/submit"`)
		assert.Contains(t, out, `value="1:2"`)
		assert.NotContains(t, out, `value="0:1"`)
		assert.Contains(t, out, "1 of 3 answered")
		assert.Contains(t, out, "Submit answers")
	})

	t.Run("submitted quiz shows the score", func(t *testing.T) {
		s, _ := quiz.NewSession(spec)
		_, _ = s.Answer(0, 1)
		_, _ = s.Answer(1, 0)
		_, _ = s.Answer(2, 0)
		s.Submit()
		out := render(t, QuizPanel("safe-isolation", s, ""))

		assert.Contains(t, out, `<p class="score">2/3 correct</p>`)
		assert.Equal(t, 2, strings.Count(out, `class="verdict-correct"`))
		assert.Equal(t, 1, strings.Count(out, `class="verdict-incorrect"`))
		assert.NotContains(t, out, `name="answer"`)
	})

	t.Run("unanswered questions are revealed after submit", func(t *testing.T) {
		s, _ := quiz.NewSession(spec)
		s.Submit()
		out := render(t, QuizQuestion("safe-isolation", s, 2, ""))
		assert.Contains(t, out, "Not answered")
		assert.Contains(t, out, "Use an approved two-pole voltage indicator.")
	})

	t.Run("out of band score panel", func(t *testing.T) {
		s, _ := quiz.NewSession(spec)
		assert.Contains(t, render(t, ScorePanel("x", s, true)), `hx-swap-oob="true"`)
		assert.NotContains(t, render(t, ScorePanel("x", s, false)), "hx-swap-oob")
	})
}

func TestSectionPage(t *testing.T) {
	s := &domain.Section{
		Slug:     "safe-isolation",
		Course:   "Apprentice Electrical",
		Module:   "Module 6",
		Title:    "Safe Isolation",
		Subtitle: "Prove dead before you touch",
		Summary:  []domain.SummaryBox{{Title: "Key rule", Body: "Lock off and prove dead."}},
		Outcomes: []string{"Follow the safe isolation procedure"},
		Blocks: []domain.Block{
			{Heading: "Procedure", Paragraphs: []string{"Identify the circuit."}, Bullets: []string{"Isolate", "Lock off"}, CheckID: "order"},
		},
		Checks: []domain.Question{question("order", 0), question("tester", 1)},
		FAQs:   []domain.FAQ{{Question: "Can I use a multimeter?", Answer: "No."}},
		Prev:   &domain.NavLink{Label: "Module 6.1", Href: "/courses/module-6-1"},
	}
	checks := map[string]*quiz.Check{}
	for _, q := range s.Checks {
		c, err := quiz.NewCheck(q)
		require.NoError(t, err)
		checks[q.ID] = c
	}

	out := render(t, SectionPage(SectionView{Section: s, Checks: checks}))

	assert.Contains(t, out, "Apprentice Electrical · Module 6")
	assert.Contains(t, out, "<h1>Safe Isolation</h1>")
	assert.Contains(t, out, "Lock off and prove dead.")
	assert.Contains(t, out, "<li>Follow the safe isolation procedure</li>")
	assert.Less(t, strings.Index(out, "Identify the circuit."), strings.Index(out, `id="check-order"`))
	assert.Contains(t, out, `id="check-tester"`)
	assert.Contains(t, out, "<summary>Can I use a multimeter?</summary>")
	assert.Contains(t, out, `rel="prev"`)
	assert.NotContains(t, out, `id="quiz"`)
}

func TestSectionPageRendersIdentically(t *testing.T) {
	s := &domain.Section{Slug: "a", Course: "C", Title: "A", Checks: []domain.Question{question("x", 0)}}
	c, _ := quiz.NewCheck(s.Checks[0])
	v := SectionView{Section: s, Checks: map[string]*quiz.Check{"x": c}}

	first := render(t, SectionPage(v))
	assert.Equal(t, first, render(t, SectionPage(v)))
	assert.False(t, c.Answered())
}

func TestResumeURL(t *testing.T) {
	assert.Equal(t, "/courses/safe-isolation?resume=1#quiz", ResumeURL("safe-isolation", QuizID))
	assert.Equal(t, "/courses/safe-isolation?resume=1", ResumeURL("safe-isolation", ""))
}

func TestAnswerRequestsShareOneQueue(t *testing.T) {
	s := &domain.Section{
		Slug:   "safe-isolation",
		Course: "Apprentice Electrical",
		Title:  "Safe Isolation",
		Blocks: []domain.Block{{Heading: "Procedure", CheckID: "order"}},
		Checks: []domain.Question{question("order", 0), question("tester", 1)},
		Quiz:   domain.QuizSpec{Title: "Quiz", Questions: []domain.Question{question("q1", 1), question("q2", 0)}},
	}
	checks := map[string]*quiz.Check{}
	for _, q := range s.Checks {
		c, err := quiz.NewCheck(q)
		require.NoError(t, err)
		checks[q.ID] = c
	}
	qs, err := quiz.NewSession(s.Quiz)
	require.NoError(t, err)

	out := render(t, SectionPage(SectionView{Section: s, Checks: checks, Quiz: qs}))

	assert.Contains(t, out, `<article class="section">`)
	posts := strings.Count(out, "hx-post=")
	// two check forms, the quiz form, three options per question, the reset button
	assert.Equal(t, 2+1+2*3+1, posts)
	assert.Equal(t, posts, strings.Count(out, `hx-sync="closest article.section:queue all"`))
}
