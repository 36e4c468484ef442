package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion(id string) Question {
	return Question{
		ID:           id,
		Prompt:       "Who is the duty holder?",
		Options:      []string{"The client", "The visitor"},
		CorrectIndex: 0,
		Explanation:  "The duty to manage rests with the client.",
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(q *Question)
		wantField string
	}{
		{name: "valid", mutate: func(q *Question) {}},
		{name: "missing prompt", mutate: func(q *Question) { q.Prompt = " " }, wantField: "question"},
		{name: "one option", mutate: func(q *Question) { q.Options = q.Options[:1] }, wantField: "options"},
		{name: "blank option", mutate: func(q *Question) { q.Options[1] = "" }, wantField: "options[1]"},
		{name: "negative index", mutate: func(q *Question) { q.CorrectIndex = -1 }, wantField: "correctIndex"},
		{name: "index past end", mutate: func(q *Question) { q.CorrectIndex = 2 }, wantField: "correctIndex"},
		{name: "missing explanation", mutate: func(q *Question) { q.Explanation = "" }, wantField: "explanation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion("q1")
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSectionValidate(t *testing.T) {
	base := func() *Section {
		return &Section{
			Slug:   "asbestos-1-1",
			Title:  "What is asbestos?",
			Checks: []Question{validQuestion("check-1")},
			Blocks: []Block{{Heading: "Intro", CheckID: "check-1"}},
			Quiz:   QuizSpec{Title: "Quiz", Questions: []Question{validQuestion("q1"), validQuestion("q2")}},
			FAQs:   []FAQ{{Question: "Is it banned?", Answer: "Yes, since 1999."}},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("nested quiz error carries full path", func(t *testing.T) {
		s := base()
		s.Quiz.Questions[1].CorrectIndex = 5
		var verr *ValidationError
		require.ErrorAs(t, s.Validate(), &verr)
		assert.Equal(t, "quiz.questions[1].correctIndex", verr.Field)
	})

	t.Run("block references unknown check", func(t *testing.T) {
		s := base()
		s.Blocks[0].CheckID = "missing"
		var verr *ValidationError
		require.ErrorAs(t, s.Validate(), &verr)
		assert.Equal(t, "blocks[0].checkId", verr.Field)
	})

	t.Run("duplicate check id", func(t *testing.T) {
		s := base()
		s.Checks = append(s.Checks, validQuestion("check-1"))
		var verr *ValidationError
		require.ErrorAs(t, s.Validate(), &verr)
		assert.Equal(t, "checks[1].id", verr.Field)
	})

	t.Run("duplicate quiz id", func(t *testing.T) {
		s := base()
		s.Quiz.Questions[1].ID = "q1"
		var verr *ValidationError
		require.ErrorAs(t, s.Validate(), &verr)
		assert.Equal(t, "quiz.questions[1].id", verr.Field)
	})

	t.Run("faq needs both halves", func(t *testing.T) {
		s := base()
		s.FAQs[0].Answer = ""
		assert.Error(t, s.Validate())
	})
}

func TestSectionCheck(t *testing.T) {
	s := &Section{Checks: []Question{validQuestion("a"), validQuestion("b")}}
	q, ok := s.Check("b")
	assert.True(t, ok)
	assert.Equal(t, "b", q.ID)
	_, ok = s.Check("c")
	assert.False(t, ok)
}
