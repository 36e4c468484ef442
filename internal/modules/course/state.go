package course

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/tradeskills/internal/domain"
	"github.com/nfrund/tradeskills/internal/middleware"
	"github.com/nfrund/tradeskills/internal/quiz"
)

const stateSessionName = "course-state"

// Session keys. Only the mounted section's state is kept, so the cookie stays
// the size of one section however many sections a visitor reads.
const (
	keySection = "section"
	keyAttempt = "attempt"
	keyQuiz    = "quiz"
	keyChecks  = "checks"
)

// sectionState is one visitor's interaction with one section. It lives in
// the cookie session between requests.
type sectionState struct {
	attemptID string
	checks    map[string]*quiz.Check
	quiz      *quiz.Session
}

func freshState(s *domain.Section) (*sectionState, error) {
	st := &sectionState{
		attemptID: uuid.NewString(),
		checks:    make(map[string]*quiz.Check, len(s.Checks)),
	}
	for _, q := range s.Checks {
		c, err := quiz.NewCheck(q)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", q.ID, err)
		}
		st.checks[q.ID] = c
	}
	qs, err := quiz.NewSession(s.Quiz)
	if err != nil {
		return nil, fmt.Errorf("quiz: %w", err)
	}
	st.quiz = qs
	return st, nil
}

// loadState restores the visitor's state for s. Missing state, state saved
// for another section, or state that no longer fits the section after a
// content reload, starts fresh.
func loadState(c echo.Context, s *domain.Section) (*sectionState, error) {
	st, err := freshState(s)
	if err != nil {
		return nil, err
	}
	sess, err := session.Get(stateSessionName, c)
	if err != nil {
		return st, nil
	}
	if slug, _ := sess.Values[keySection].(string); slug != s.Slug {
		return st, nil
	}

	if id, ok := sess.Values[keyAttempt].(string); ok && id != "" {
		st.attemptID = id
	}
	logger := middleware.FromContext(c.Request().Context())

	if encoded, ok := sess.Values[keyQuiz].(string); ok {
		qs, err := quiz.DecodeSession(s.Quiz, encoded)
		if err != nil {
			logger.Warn("Discarding stale quiz state", "section", s.Slug, "error", err)
		} else {
			st.quiz = qs
		}
	}

	if encoded, ok := sess.Values[keyChecks].(string); ok {
		checks, err := decodeChecks(s, encoded)
		if err != nil {
			logger.Warn("Discarding stale check state", "section", s.Slug, "error", err)
		} else {
			for id, c := range checks {
				st.checks[id] = c
			}
		}
	}
	return st, nil
}

// save writes the state back to the cookie session, replacing whatever
// section was mounted before.
func (st *sectionState) save(c echo.Context, slug string) error {
	sess, err := session.Get(stateSessionName, c)
	if err != nil {
		return fmt.Errorf("getting session: %w", err)
	}
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Values[keySection] = slug
	sess.Values[keyAttempt] = st.attemptID
	sess.Values[keyQuiz] = st.quiz.Encode()
	sess.Values[keyChecks] = encodeChecks(st.checks)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// encodeChecks stores only answered checks, e.g. "order=0&tester=1".
func encodeChecks(checks map[string]*quiz.Check) string {
	v := url.Values{}
	for id, c := range checks {
		if out, ok := c.Outcome(); ok {
			v.Set(id, strconv.Itoa(out.Selected))
		}
	}
	return v.Encode()
}

func decodeChecks(s *domain.Section, encoded string) (map[string]*quiz.Check, error) {
	v, err := url.ParseQuery(encoded)
	if err != nil {
		return nil, err
	}
	checks := make(map[string]*quiz.Check, len(v))
	for id := range v {
		q, ok := s.Check(id)
		if !ok {
			return nil, fmt.Errorf("unknown check %q", id)
		}
		sel, err := strconv.Atoi(v.Get(id))
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", id, err)
		}
		c, err := quiz.RestoreCheck(q, sel)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", id, err)
		}
		checks[id] = c
	}
	return checks, nil
}
