package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nfrund/tradeskills/internal/domain"
)

// QuestionResult is the per-question line of a scored quiz.
type QuestionResult struct {
	Index       int    `json:"index"`
	QuestionID  string `json:"questionId,omitempty"`
	Selected    int    `json:"selected"`
	Answered    bool   `json:"answered"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// Result is the aggregate score of a quiz.
type Result struct {
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	Questions []QuestionResult `json:"questions"`
}

// String formats the score the way it is shown to learners, e.g. "7/8 correct".
func (r Result) String() string {
	return fmt.Sprintf("%d/%d correct", r.Score, r.Total)
}

// Percent returns the score as a whole-number percentage.
func (r Result) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

// Score grades selections against spec without keeping any state. Missing or
// out-of-range selections count as incorrect.
func Score(spec domain.QuizSpec, selections []int) Result {
	res := Result{Total: spec.Len(), Questions: make([]QuestionResult, spec.Len())}
	for i, q := range spec.Questions {
		sel := Unanswered
		if i < len(selections) && q.HasOption(selections[i]) {
			sel = selections[i]
		}
		qr := QuestionResult{
			Index:       i,
			QuestionID:  q.ID,
			Selected:    sel,
			Answered:    sel != Unanswered,
			Correct:     sel != Unanswered && q.IsCorrect(sel),
			Explanation: q.Explanation,
		}
		if qr.Correct {
			res.Score++
		}
		res.Questions[i] = qr
	}
	return res
}

// Session tracks one learner's pass through a quiz. Each question moves once
// from Unanswered to Answered. Submitting freezes the session.
type Session struct {
	spec      domain.QuizSpec
	selected  []int
	submitted bool
}

// NewSession returns a fresh session for spec.
func NewSession(spec domain.QuizSpec) (*Session, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	selected := make([]int, spec.Len())
	for i := range selected {
		selected[i] = Unanswered
	}
	return &Session{spec: spec, selected: selected}, nil
}

// Spec returns the quiz being taken.
func (s *Session) Spec() domain.QuizSpec { return s.spec }

// Submitted reports whether Submit has been called.
func (s *Session) Submitted() bool { return s.submitted }

// Selected returns the committed option for question i, or Unanswered.
func (s *Session) Selected(i int) int {
	if i < 0 || i >= len(s.selected) {
		return Unanswered
	}
	return s.selected[i]
}

// Outcome returns the revealed outcome for question i and whether it is answered.
func (s *Session) Outcome(i int) (Outcome, bool) {
	sel := s.Selected(i)
	if sel == Unanswered {
		return Outcome{Selected: Unanswered}, false
	}
	return outcomeFor(s.spec.Questions[i], sel), true
}

// Answered returns how many questions have a committed selection.
func (s *Session) Answered() int {
	n := 0
	for _, sel := range s.selected {
		if sel != Unanswered {
			n++
		}
	}
	return n
}

// Complete reports whether every question is answered.
func (s *Session) Complete() bool {
	return s.Answered() == len(s.selected)
}

// Answer commits option for question i.
func (s *Session) Answer(i, option int) (Outcome, error) {
	if i < 0 || i >= len(s.selected) {
		return Outcome{Selected: Unanswered}, fmt.Errorf("%w: index %d", domain.ErrUnknownQuestion, i)
	}
	if s.submitted || s.selected[i] != Unanswered {
		out, _ := s.Outcome(i)
		return out, domain.ErrAlreadyAnswered
	}
	q := s.spec.Questions[i]
	if !q.HasOption(option) {
		return Outcome{Selected: Unanswered}, domain.ErrOptionOutOfRange
	}
	s.selected[i] = option
	return outcomeFor(q, option), nil
}

// Result scores the session as it stands without submitting it.
func (s *Session) Result() Result {
	return Score(s.spec, s.selected)
}

// Submit freezes the session and returns its score. Calling it again returns
// the same result.
func (s *Session) Submit() Result {
	s.submitted = true
	return s.Result()
}

// Encode serialises the session state, e.g. "0|1,0,-1". The quiz itself is
// not included; DecodeSession needs the same spec back.
func (s *Session) Encode() string {
	parts := make([]string, len(s.selected))
	for i, sel := range s.selected {
		parts[i] = strconv.Itoa(sel)
	}
	flag := "0"
	if s.submitted {
		flag = "1"
	}
	return flag + "|" + strings.Join(parts, ",")
}

// DecodeSession restores a session produced by Encode. State that does not
// fit spec (stale or tampered) is rejected.
func DecodeSession(spec domain.QuizSpec, encoded string) (*Session, error) {
	s, err := NewSession(spec)
	if err != nil {
		return nil, err
	}
	flag, list, ok := strings.Cut(encoded, "|")
	if !ok || (flag != "0" && flag != "1") {
		return nil, fmt.Errorf("quiz: malformed session state %q", encoded)
	}
	s.submitted = flag == "1"
	if list == "" {
		if spec.Len() != 0 {
			return nil, fmt.Errorf("quiz: session has 0 answers, quiz has %d questions", spec.Len())
		}
		return s, nil
	}
	parts := strings.Split(list, ",")
	if len(parts) != spec.Len() {
		return nil, fmt.Errorf("quiz: session has %d answers, quiz has %d questions", len(parts), spec.Len())
	}
	for i, p := range parts {
		sel, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("quiz: answer %d: %w", i, err)
		}
		if sel != Unanswered && !spec.Questions[i].HasOption(sel) {
			return nil, fmt.Errorf("quiz: answer %d: %w", i, domain.ErrOptionOutOfRange)
		}
		s.selected[i] = sel
	}
	return s, nil
}

// RestoreCheck returns a check with selected already committed. Pass
// Unanswered for a fresh check.
func RestoreCheck(q domain.Question, selected int) (*Check, error) {
	c, err := NewCheck(q)
	if err != nil {
		return nil, err
	}
	if selected == Unanswered {
		return c, nil
	}
	if _, err := c.Select(selected); err != nil {
		return nil, err
	}
	return c, nil
}
