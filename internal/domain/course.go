package domain

import (
	"fmt"
	"strings"

	"github.com/nfrund/tradeskills/internal/seo"
)

// MinOptions is the smallest number of options a multiple-choice question may carry.
const MinOptions = 2

// Question is a single multiple-choice question used by both inline checks
// and end-of-section quizzes. It is immutable once loaded.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Validate checks that the question can be answered and scored.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewValidationError("question", "is required")
	}
	if len(q.Options) < MinOptions {
		return NewValidationError("options", "need at least %d options, got %d", MinOptions, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return NewValidationError(fmt.Sprintf("options[%d]", i), "is empty")
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return NewValidationError("correctIndex", "%d is outside [0, %d)", q.CorrectIndex, len(q.Options))
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return NewValidationError("explanation", "is required")
	}
	return nil
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}

// HasOption reports whether option is a valid index into Options.
func (q Question) HasOption(option int) bool {
	return option >= 0 && option < len(q.Options)
}

// QuizSpec is the titled, ordered question set placed at the end of a section.
type QuizSpec struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Validate checks every question and rejects duplicate IDs.
func (s QuizSpec) Validate() error {
	seen := make(map[string]bool, len(s.Questions))
	for i, q := range s.Questions {
		if err := q.Validate(); err != nil {
			return prefixField(fmt.Sprintf("questions[%d]", i), err)
		}
		if q.ID == "" {
			continue
		}
		if seen[q.ID] {
			return NewValidationError(fmt.Sprintf("questions[%d].id", i), "duplicate id %q", q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

// Len returns the number of questions.
func (s QuizSpec) Len() int { return len(s.Questions) }

// FAQ is a static question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SummaryBox is one of the short highlight cards shown under a section header.
type SummaryBox struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Block is a prose content block. A non-empty CheckID places the named inline
// check directly after the block.
type Block struct {
	Heading    string   `json:"heading,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Bullets    []string `json:"bullets,omitempty"`
	CheckID    string   `json:"checkId,omitempty"`
}

// NavLink points at a sibling section. Href is kept exactly as authored, so
// relative paths such as "../module-6-section-2" are passed to the browser as-is.
type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Section is one course page.
type Section struct {
	Slug     string       `json:"slug"`
	Course   string       `json:"course"`
	Module   string       `json:"module,omitempty"`
	Order    int          `json:"order"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	Summary  []SummaryBox `json:"summary,omitempty"`
	Outcomes []string     `json:"outcomes,omitempty"`
	Blocks   []Block      `json:"blocks,omitempty"`
	Checks   []Question   `json:"checks,omitempty"`
	Quiz     QuizSpec     `json:"quiz"`
	FAQs     []FAQ        `json:"faqs,omitempty"`
	Prev     *NavLink     `json:"prev,omitempty"`
	Next     *NavLink     `json:"next,omitempty"`
	Meta     seo.Config   `json:"meta"`
}

// Check returns the inline check with the given ID.
func (s *Section) Check(id string) (Question, bool) {
	for _, q := range s.Checks {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Validate checks the section's questions and cross references.
func (s *Section) Validate() error {
	if s.Slug == "" {
		return NewValidationError("slug", "is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return NewValidationError("title", "is required")
	}

	checkIDs := make(map[string]bool, len(s.Checks))
	for i, q := range s.Checks {
		field := fmt.Sprintf("checks[%d]", i)
		if q.ID == "" {
			return NewValidationError(field+".id", "is required")
		}
		if checkIDs[q.ID] {
			return NewValidationError(field+".id", "duplicate id %q", q.ID)
		}
		checkIDs[q.ID] = true
		if err := q.Validate(); err != nil {
			return prefixField(field, err)
		}
	}

	for i, b := range s.Blocks {
		if b.CheckID != "" && !checkIDs[b.CheckID] {
			return NewValidationError(fmt.Sprintf("blocks[%d].checkId", i), "references unknown check %q", b.CheckID)
		}
	}

	if err := s.Quiz.Validate(); err != nil {
		return prefixField("quiz", err)
	}

	for i, f := range s.FAQs {
		if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
			return NewValidationError(fmt.Sprintf("faqs[%d]", i), "question and answer are required")
		}
	}
	return nil
}
