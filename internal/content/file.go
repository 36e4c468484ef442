package content

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nfrund/tradeskills/internal/domain"
	"github.com/nfrund/tradeskills/internal/seo"
)

// validatorInstance is shared so struct metadata is cached once.
var validatorInstance = validator.New()

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func init() {
	_ = validatorInstance.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

// sectionFile is the on-disk YAML shape of a section.
type sectionFile struct {
	Slug     string         `yaml:"slug" validate:"omitempty,slug"`
	Course   string         `yaml:"course"`
	Module   string         `yaml:"module"`
	Order    int            `yaml:"order" validate:"gte=0"`
	Title    string         `yaml:"title" validate:"required"`
	Subtitle string         `yaml:"subtitle"`
	Summary  []summaryFile  `yaml:"summary" validate:"dive"`
	Outcomes []string       `yaml:"outcomes" validate:"dive,required"`
	Blocks   []blockFile    `yaml:"blocks" validate:"dive"`
	Checks   []questionFile `yaml:"checks" validate:"dive"`
	Quiz     quizFile       `yaml:"quiz"`
	FAQs     []faqFile      `yaml:"faqs" validate:"dive"`
	Prev     *navFile       `yaml:"prev"`
	Next     *navFile       `yaml:"next"`
	Meta     metaFile       `yaml:"meta"`
}

type summaryFile struct {
	Title string `yaml:"title" validate:"required"`
	Body  string `yaml:"body" validate:"required"`
}

type blockFile struct {
	Heading    string   `yaml:"heading"`
	Paragraphs []string `yaml:"paragraphs"`
	Bullets    []string `yaml:"bullets"`
	Check      string   `yaml:"check"`
}

// questionFile accepts both historical spellings of the correct index:
// correctIndex (inline checks) and correctAnswer (quizzes).
type questionFile struct {
	ID            string   `yaml:"id"`
	Question      string   `yaml:"question" validate:"required"`
	Options       []string `yaml:"options" validate:"min=2,dive,required"`
	CorrectIndex  *int     `yaml:"correctIndex"`
	CorrectAnswer *int     `yaml:"correctAnswer"`
	Explanation   string   `yaml:"explanation" validate:"required"`
}

type quizFile struct {
	Title     string         `yaml:"title"`
	Questions []questionFile `yaml:"questions" validate:"dive"`
}

type faqFile struct {
	Question string `yaml:"question" validate:"required"`
	Answer   string `yaml:"answer" validate:"required"`
}

type navFile struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href" validate:"required"`
}

// metaFile accepts the object form {title, description, canonical, schema}
// or the positional form [title, description].
type metaFile struct {
	cfg seo.Config
	set bool
}

func (m *metaFile) UnmarshalYAML(node *yaml.Node) error {
	var args []any
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []string
		if err := node.Decode(&pair); err != nil {
			return err
		}
		for _, s := range pair {
			args = append(args, s)
		}
	case yaml.MappingNode:
		var raw struct {
			Title       string         `yaml:"title"`
			Description string         `yaml:"description"`
			Canonical   string         `yaml:"canonical"`
			Schema      map[string]any `yaml:"schema"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		cfg := seo.Config{Title: raw.Title, Description: raw.Description, Canonical: raw.Canonical}
		if raw.Schema != nil {
			schema, err := json.Marshal(raw.Schema)
			if err != nil {
				return fmt.Errorf("meta.schema: %w", err)
			}
			cfg.Schema = schema
		}
		args = append(args, cfg)
	default:
		return fmt.Errorf("line %d: meta must be a mapping or a [title, description] pair", node.Line)
	}

	cfg, err := seo.Resolve(args...)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	m.cfg, m.set = cfg, true
	return nil
}

func (q questionFile) toDomain(field string) (domain.Question, error) {
	var idx int
	switch {
	case q.CorrectIndex != nil && q.CorrectAnswer != nil && *q.CorrectIndex != *q.CorrectAnswer:
		return domain.Question{}, domain.NewValidationError(field, "correctIndex %d and correctAnswer %d disagree", *q.CorrectIndex, *q.CorrectAnswer)
	case q.CorrectIndex != nil:
		idx = *q.CorrectIndex
	case q.CorrectAnswer != nil:
		idx = *q.CorrectAnswer
	default:
		return domain.Question{}, domain.NewValidationError(field+".correctIndex", "is required")
	}
	return domain.Question{
		ID:           q.ID,
		Prompt:       q.Question,
		Options:      append([]string(nil), q.Options...),
		CorrectIndex: idx,
		Explanation:  q.Explanation,
	}, nil
}

func (f *sectionFile) toDomain() (*domain.Section, error) {
	s := &domain.Section{
		Slug:     f.Slug,
		Course:   f.Course,
		Module:   f.Module,
		Order:    f.Order,
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Outcomes: f.Outcomes,
		Quiz:     domain.QuizSpec{Title: f.Quiz.Title},
		Meta:     f.Meta.cfg,
	}
	for _, sb := range f.Summary {
		s.Summary = append(s.Summary, domain.SummaryBox{Title: sb.Title, Body: sb.Body})
	}
	for _, b := range f.Blocks {
		s.Blocks = append(s.Blocks, domain.Block{Heading: b.Heading, Paragraphs: b.Paragraphs, Bullets: b.Bullets, CheckID: b.Check})
	}
	for i, qf := range f.Checks {
		q, err := qf.toDomain(fmt.Sprintf("checks[%d]", i))
		if err != nil {
			return nil, err
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("check-%d", i+1)
		}
		s.Checks = append(s.Checks, q)
	}
	for i, qf := range f.Quiz.Questions {
		q, err := qf.toDomain(fmt.Sprintf("quiz.questions[%d]", i))
		if err != nil {
			return nil, err
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", i+1)
		}
		s.Quiz.Questions = append(s.Quiz.Questions, q)
	}
	for _, fq := range f.FAQs {
		s.FAQs = append(s.FAQs, domain.FAQ{Question: fq.Question, Answer: fq.Answer})
	}
	if f.Prev != nil {
		s.Prev = &domain.NavLink{Label: f.Prev.Label, Href: f.Prev.Href}
	}
	if f.Next != nil {
		s.Next = &domain.NavLink{Label: f.Next.Label, Href: f.Next.Href}
	}

	if s.Quiz.Title == "" {
		s.Quiz.Title = s.Title + " quiz"
	}
	if s.Meta.Title == "" {
		s.Meta.Title = s.Title
	}
	if s.Meta.Description == "" {
		s.Meta.Description = s.Subtitle
	}
	return s, nil
}
