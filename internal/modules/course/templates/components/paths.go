package components

import (
	"fmt"
	"net/url"
)

// Element IDs shared by full pages and htmx fragments.
const (
	QuizID  = "quiz"
	ScoreID = "quiz-score"
)

// SyncQueue makes htmx send a section page's answer requests one at a time.
// Every response rewrites the same state cookie, so overlapping requests
// would lose answers.
const SyncQueue = "closest article.section:queue all"

// CheckElementID is the DOM id of an inline check.
func CheckElementID(checkID string) string { return "check-" + checkID }

// QuestionElementID is the DOM id of quiz question i.
func QuestionElementID(i int) string { return fmt.Sprintf("quiz-q-%d", i) }

// SectionURL is where a section page lives.
func SectionURL(slug string) string { return "/courses/" + url.PathEscape(slug) }

// ResumeURL returns to a section page without resetting its state, scrolled
// to anchor.
func ResumeURL(slug, anchor string) string {
	u := SectionURL(slug) + "?resume=1"
	if anchor != "" {
		u += "#" + anchor
	}
	return u
}

func checkURL(slug, checkID string) string {
	return SectionURL(slug) + "/checks/" + url.PathEscape(checkID)
}

func quizURL(slug, action string) string {
	return SectionURL(slug) + "/quiz/" + action
}
