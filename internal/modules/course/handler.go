package course

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"

	"github.com/nfrund/tradeskills/internal/content"
	"github.com/nfrund/tradeskills/internal/domain"
	"github.com/nfrund/tradeskills/internal/handlers"
	"github.com/nfrund/tradeskills/internal/middleware"
	"github.com/nfrund/tradeskills/internal/modules/course/templates/components"
	"github.com/nfrund/tradeskills/internal/progress"
	"github.com/nfrund/tradeskills/internal/pubsub"
	"github.com/nfrund/tradeskills/internal/quiz"
	"github.com/nfrund/tradeskills/internal/rendering"
	"github.com/nfrund/tradeskills/internal/seo"
	"github.com/nfrund/tradeskills/internal/view"
	"github.com/nfrund/tradeskills/web/src/templates/layouts"
)

const (
	msgBadOption   = "That option is not one of the choices. Pick one of the listed answers."
	msgBadQuestion = "That question is not part of this quiz."
)

// Handler serves course pages and their interactions.
type Handler struct {
	catalog   *content.Catalog
	tracker   *progress.Tracker
	publisher pubsub.Publisher
	renderer  rendering.Renderer
	siteName  string
	now       func() time.Time
}

// NewHandler creates a Handler.
func NewHandler(catalog *content.Catalog, tracker *progress.Tracker, publisher pubsub.Publisher, renderer rendering.Renderer, siteName string) *Handler {
	return &Handler{
		catalog:   catalog,
		tracker:   tracker,
		publisher: publisher,
		renderer:  renderer,
		siteName:  siteName,
		now:       time.Now,
	}
}

// Routes registers the pages and the API on g. limiter guards the endpoints
// that record answers.
func (h *Handler) Routes(g *echo.Group, limiter echo.MiddlewareFunc) {
	g.GET("/", h.Index)
	g.GET("/courses/:slug", h.SectionGet)
	g.POST("/courses/:slug/checks/:check", h.CheckPost, limiter)
	g.POST("/courses/:slug/quiz/answer", h.QuizAnswerPost, limiter)
	g.POST("/courses/:slug/quiz/submit", h.QuizSubmitPost, limiter)
	g.POST("/courses/:slug/quiz/reset", h.QuizResetPost, limiter)

	api := g.Group("/api")
	api.GET("/courses", h.APICourses)
	api.POST("/courses/:slug/quiz/score", h.APIScore, limiter)
	api.GET("/stats", h.APIStats)
}

type checkRequest struct {
	Option string `form:"option" validate:"required,numeric"`
}

type answerRequest struct {
	Answer string `form:"answer" validate:"required"`
}

type submitRequest struct {
	Answers []string `form:"answer" validate:"dive,required"`
}

func (h *Handler) page(c echo.Context, status int, meta seo.Config, body g.Node) error {
	return h.renderer.RenderPage(c, status, layouts.Base(layouts.Page{
		Meta:     meta,
		SiteName: h.siteName,
		Flash:    view.GetFlashData(c),
	}, body))
}

func (h *Handler) fragment(c echo.Context, status int, nodes ...g.Node) error {
	return h.renderer.RenderPage(c, status, g.Group(nodes))
}

func (h *Handler) section(c echo.Context) (*domain.Section, error) {
	s, err := h.catalog.Get(c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "We could not find that section.").SetInternal(err)
	}
	return s, err
}

// Index lists every course and its sections.
func (h *Handler) Index(c echo.Context) error {
	meta := seo.New(h.siteName, "Short trade safety courses with knowledge checks and end-of-section quizzes.")
	return h.page(c, http.StatusOK, meta, components.CourseIndex(h.siteName, h.catalog.Courses()))
}

// SectionGet renders a section. A plain visit starts the section over;
// ?resume=1 keeps the visitor's answers, which is where form posts land.
func (h *Handler) SectionGet(c echo.Context) error {
	s, err := h.section(c)
	if err != nil {
		return err
	}

	var st *sectionState
	if c.QueryParam("resume") != "" {
		st, err = loadState(c, s)
	} else {
		st, err = freshState(s)
		if err == nil {
			err = st.save(c, s.Slug)
		}
	}
	if err != nil {
		return fmt.Errorf("preparing section %s: %w", s.Slug, err)
	}

	return h.page(c, http.StatusOK, s.Meta, components.SectionPage(components.SectionView{
		Section: s,
		Checks:  st.checks,
		Quiz:    st.quiz,
	}))
}

// CheckPost commits an inline check answer.
func (h *Handler) CheckPost(c echo.Context) error {
	s, err := h.section(c)
	if err != nil {
		return err
	}
	checkID := c.Param("check")
	if _, ok := s.Check(checkID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "We could not find that check.")
	}
	st, err := loadState(c, s)
	if err != nil {
		return err
	}
	check := st.checks[checkID]
	anchor := components.CheckElementID(checkID)

	var req checkRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		return h.rejectCheck(c, s.Slug, check, anchor)
	}
	option, err := strconv.Atoi(req.Option)
	if err != nil {
		return h.rejectCheck(c, s.Slug, check, anchor)
	}

	out, err := check.Select(option)
	switch {
	case errors.Is(err, domain.ErrOptionOutOfRange):
		return h.rejectCheck(c, s.Slug, check, anchor)
	case errors.Is(err, domain.ErrAlreadyAnswered):
		// The first answer stands.
	case err != nil:
		return err
	default:
		if err := st.save(c, s.Slug); err != nil {
			return err
		}
		h.publish(c.Request().Context(), func(ctx context.Context) error {
			return pubsub.Publish(ctx, h.publisher, progress.TopicCheckAnswered, progress.CheckAnswered{
				AttemptID: st.attemptID,
				Section:   s.Slug,
				CheckID:   checkID,
				Correct:   out.Correct,
			})
		})
	}

	if handlers.IsHTMX(c) {
		return h.fragment(c, http.StatusOK, components.InlineCheck(s.Slug, check, ""))
	}
	return c.Redirect(http.StatusSeeOther, components.ResumeURL(s.Slug, anchor))
}

func (h *Handler) rejectCheck(c echo.Context, slug string, check *quiz.Check, anchor string) error {
	if handlers.IsHTMX(c) {
		return h.fragment(c, http.StatusUnprocessableEntity, components.InlineCheck(slug, check, msgBadOption))
	}
	view.SetFlashError(c, msgBadOption)
	return c.Redirect(http.StatusSeeOther, components.ResumeURL(slug, anchor))
}

// QuizAnswerPost commits one quiz answer. When that completes the quiz it is
// scored straight away.
func (h *Handler) QuizAnswerPost(c echo.Context) error {
	s, st, err := h.quizState(c)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		return h.rejectQuiz(c, s.Slug, st, msgBadOption)
	}
	i, option, err := parseAnswer(req.Answer)
	if err != nil {
		return h.rejectQuiz(c, s.Slug, st, msgBadOption)
	}

	_, err = st.quiz.Answer(i, option)
	switch {
	case errors.Is(err, domain.ErrUnknownQuestion):
		return h.rejectQuiz(c, s.Slug, st, msgBadQuestion)
	case errors.Is(err, domain.ErrOptionOutOfRange):
		return h.rejectQuiz(c, s.Slug, st, msgBadOption)
	case errors.Is(err, domain.ErrAlreadyAnswered):
	case err != nil:
		return err
	default:
		if st.quiz.Complete() {
			h.submit(c, s, st)
		}
		if err := st.save(c, s.Slug); err != nil {
			return err
		}
	}

	if handlers.IsHTMX(c) {
		return h.fragment(c, http.StatusOK,
			components.QuizQuestion(s.Slug, st.quiz, i, ""),
			components.ScorePanel(s.Slug, st.quiz, true),
		)
	}
	return c.Redirect(http.StatusSeeOther, components.ResumeURL(s.Slug, components.QuestionElementID(i)))
}

// QuizSubmitPost scores the quiz. The form may carry answers not yet
// committed; those are applied first. Unanswered questions count as incorrect.
func (h *Handler) QuizSubmitPost(c echo.Context) error {
	s, st, err := h.quizState(c)
	if err != nil {
		return err
	}

	var req submitRequest
	if err := handlers.BindAndValidate(c, &req); err != nil {
		return h.rejectQuiz(c, s.Slug, st, msgBadOption)
	}
	for _, a := range req.Answers {
		i, option, err := parseAnswer(a)
		if err != nil {
			return h.rejectQuiz(c, s.Slug, st, msgBadOption)
		}
		if _, err := st.quiz.Answer(i, option); err != nil && !errors.Is(err, domain.ErrAlreadyAnswered) {
			return h.rejectQuiz(c, s.Slug, st, msgBadOption)
		}
	}

	res := h.submit(c, s, st)
	if err := st.save(c, s.Slug); err != nil {
		return err
	}

	if handlers.IsHTMX(c) {
		return h.fragment(c, http.StatusOK, components.QuizPanel(s.Slug, st.quiz, ""))
	}
	view.SetFlashSuccess(c, "Quiz submitted: "+res.String()+".")
	return c.Redirect(http.StatusSeeOther, components.ResumeURL(s.Slug, components.QuizID))
}

// QuizResetPost discards the quiz answers and starts a new attempt. Inline
// checks are left alone.
func (h *Handler) QuizResetPost(c echo.Context) error {
	s, st, err := h.quizState(c)
	if err != nil {
		return err
	}
	fresh, err := freshState(s)
	if err != nil {
		return err
	}
	st.quiz = fresh.quiz
	st.attemptID = fresh.attemptID
	if err := st.save(c, s.Slug); err != nil {
		return err
	}

	if handlers.IsHTMX(c) {
		return h.fragment(c, http.StatusOK, components.QuizPanel(s.Slug, st.quiz, ""))
	}
	return c.Redirect(http.StatusSeeOther, components.ResumeURL(s.Slug, components.QuizID))
}

func (h *Handler) quizState(c echo.Context) (*domain.Section, *sectionState, error) {
	s, err := h.section(c)
	if err != nil {
		return nil, nil, err
	}
	if s.Quiz.Len() == 0 {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, "This section has no quiz.")
	}
	st, err := loadState(c, s)
	if err != nil {
		return nil, nil, err
	}
	return s, st, nil
}

// submit scores the quiz. The event is published only on the first submit.
func (h *Handler) submit(c echo.Context, s *domain.Section, st *sectionState) quiz.Result {
	if st.quiz.Submitted() {
		return st.quiz.Result()
	}
	res := st.quiz.Submit()
	middleware.FromContext(c.Request().Context()).Info("Quiz submitted",
		"section", s.Slug, "attempt_id", st.attemptID, "score", res.Score, "total", res.Total)
	h.publish(c.Request().Context(), func(ctx context.Context) error {
		return pubsub.Publish(ctx, h.publisher, progress.TopicQuizSubmitted, progress.QuizSubmitted{
			AttemptID:   st.attemptID,
			Section:     s.Slug,
			Score:       res.Score,
			Total:       res.Total,
			SubmittedAt: h.now().UTC(),
		})
	})
	return res
}

func (h *Handler) rejectQuiz(c echo.Context, slug string, st *sectionState, msg string) error {
	if handlers.IsHTMX(c) {
		c.Response().Header().Set("HX-Retarget", "#"+components.QuizID)
		c.Response().Header().Set("HX-Reswap", "outerHTML")
		return h.fragment(c, http.StatusUnprocessableEntity, components.QuizPanel(slug, st.quiz, msg))
	}
	view.SetFlashError(c, msg)
	return c.Redirect(http.StatusSeeOther, components.ResumeURL(slug, components.QuizID))
}

// publish sends an event. Statistics are best effort, so failures are
// logged and the learner's request carries on.
func (h *Handler) publish(ctx context.Context, send func(ctx context.Context) error) {
	if h.publisher == nil {
		return
	}
	if err := send(ctx); err != nil {
		middleware.FromContext(ctx).Error("Failed to publish course event", "error", err)
	}
}

// parseAnswer splits an "index:option" form value.
func parseAnswer(v string) (int, int, error) {
	qi, opt, ok := strings.Cut(v, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed answer %q", v)
	}
	i, err := strconv.Atoi(qi)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed answer %q: %w", v, err)
	}
	option, err := strconv.Atoi(opt)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed answer %q: %w", v, err)
	}
	return i, option, nil
}
