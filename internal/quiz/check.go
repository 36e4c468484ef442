// Package quiz holds the selection, reveal and scoring rules for inline
// checks and end-of-section quizzes. It does no I/O. Every Check and Session
// owns its state and shares nothing.
package quiz

import (
	"github.com/nfrund/tradeskills/internal/domain"
)

// Unanswered marks a question with no committed selection.
const Unanswered = -1

// Outcome is what gets revealed once a question is answered. Explanation is
// set whether or not the selection was correct.
type Outcome struct {
	Selected    int    `json:"selected"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

func outcomeFor(q domain.Question, selected int) Outcome {
	return Outcome{
		Selected:    selected,
		Correct:     q.IsCorrect(selected),
		Explanation: q.Explanation,
	}
}

// Check is a single inline knowledge check. The first valid selection is
// final.
type Check struct {
	question domain.Question
	selected int
}

// NewCheck returns an unanswered check. Malformed questions are rejected.
func NewCheck(q domain.Question) (*Check, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &Check{question: q, selected: Unanswered}, nil
}

// Question returns the question being asked.
func (c *Check) Question() domain.Question { return c.question }

// Answered reports whether a selection has been committed.
func (c *Check) Answered() bool { return c.selected != Unanswered }

// Outcome returns the revealed outcome and whether the check is answered.
func (c *Check) Outcome() (Outcome, bool) {
	if !c.Answered() {
		return Outcome{Selected: Unanswered}, false
	}
	return outcomeFor(c.question, c.selected), true
}

// Select commits option. Out-of-range options leave the check untouched. A
// second selection returns ErrAlreadyAnswered along with the first outcome.
func (c *Check) Select(option int) (Outcome, error) {
	if c.Answered() {
		out, _ := c.Outcome()
		return out, domain.ErrAlreadyAnswered
	}
	if !c.question.HasOption(option) {
		return Outcome{Selected: Unanswered}, domain.ErrOptionOutOfRange
	}
	c.selected = option
	return outcomeFor(c.question, option), nil
}
