package course

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/tradeskills/internal/handlers"
	"github.com/nfrund/tradeskills/internal/modules/course/templates/components"
	"github.com/nfrund/tradeskills/internal/progress"
	"github.com/nfrund/tradeskills/internal/quiz"
)

// CourseSummary is the API view of a section.
type CourseSummary struct {
	Slug      string `json:"slug"`
	Course    string `json:"course"`
	Module    string `json:"module,omitempty"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Checks    int    `json:"checks"`
	Questions int    `json:"questions"`
}

// ScoreRequest carries one selection per quiz question, -1 for unanswered.
type ScoreRequest struct {
	Answers []int `json:"answers" validate:"required,max=200"`
}

// StatsResponse wraps the per-section statistics.
type StatsResponse struct {
	Sections []progress.SectionStats `json:"sections"`
}

// APICourses lists every section.
func (h *Handler) APICourses(c echo.Context) error {
	sections := h.catalog.List()
	out := make([]CourseSummary, 0, len(sections))
	for _, s := range sections {
		out = append(out, CourseSummary{
			Slug:      s.Slug,
			Course:    s.Course,
			Module:    s.Module,
			Title:     s.Title,
			URL:       components.SectionURL(s.Slug),
			Checks:    len(s.Checks),
			Questions: s.Quiz.Len(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// APIScore grades a full set of answers without touching any session.
func (h *Handler) APIScore(c echo.Context) error {
	s, err := h.section(c)
	if err != nil {
		return err
	}
	if s.Quiz.Len() == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "This section has no quiz.")
	}

	var req ScoreRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		return err
	}
	if len(req.Answers) > s.Quiz.Len() {
		return c.JSON(http.StatusUnprocessableEntity, handlers.NewErrorResponse(http.StatusUnprocessableEntity,
			fmt.Sprintf("Got %d answers for %d questions.", len(req.Answers), s.Quiz.Len())))
	}
	for i, a := range req.Answers {
		if a != quiz.Unanswered && !s.Quiz.Questions[i].HasOption(a) {
			return c.JSON(http.StatusUnprocessableEntity, handlers.NewErrorResponse(http.StatusUnprocessableEntity,
				fmt.Sprintf("Answer %d is not one of the options for question %d.", a, i+1)))
		}
	}
	return c.JSON(http.StatusOK, quiz.Score(s.Quiz, req.Answers))
}

// APIStats reports what learners have done since the process started.
func (h *Handler) APIStats(c echo.Context) error {
	return c.JSON(http.StatusOK, StatsResponse{Sections: h.tracker.Snapshot()})
}
