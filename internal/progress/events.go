package progress

import (
	"time"

	"github.com/nfrund/tradeskills/internal/pubsub"
)

// CheckAnswered is published when a learner commits an inline check answer.
type CheckAnswered struct {
	AttemptID string `json:"attempt_id"`
	Section   string `json:"section"`
	CheckID   string `json:"check_id"`
	Correct   bool   `json:"correct"`
}

// QuizSubmitted is published when a learner submits an end-of-section quiz.
type QuizSubmitted struct {
	AttemptID   string    `json:"attempt_id"`
	Section     string    `json:"section"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}

var (
	TopicCheckAnswered = pubsub.NewEvent[CheckAnswered]("course.check.answered", "An inline knowledge check was answered")
	TopicQuizSubmitted = pubsub.NewEvent[QuizSubmitted]("course.quiz.submitted", "A section quiz was submitted and scored")
)
