// Package progress aggregates anonymous learning statistics from course
// events. Nothing is persisted; counts reset when the process restarts.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nfrund/tradeskills/internal/pubsub"
)

// SectionStats summarises activity on one section.
type SectionStats struct {
	Section         string    `json:"section"`
	ChecksAnswered  int       `json:"checks_answered"`
	ChecksCorrect   int       `json:"checks_correct"`
	QuizAttempts    int       `json:"quiz_attempts"`
	BestScore       int       `json:"best_score"`
	LastScore       int       `json:"last_score"`
	QuizTotal       int       `json:"quiz_total"`
	MeanPercent     float64   `json:"mean_percent"`
	LastSubmittedAt time.Time `json:"last_submitted_at,omitempty"`
}

// Tracker keeps per-section statistics. It is safe for concurrent use.
type Tracker struct {
	mu         sync.RWMutex
	stats      map[string]*SectionStats
	percentSum map[string]float64

	runMu    sync.Mutex
	stopped  bool
	inflight sync.WaitGroup
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		stats:      make(map[string]*SectionStats),
		percentSum: make(map[string]float64),
	}
}

// Start subscribes the tracker to course events until ctx is cancelled.
func (t *Tracker) Start(ctx context.Context, sub pubsub.Subscriber) error {
	err := pubsub.Subscribe(ctx, sub, TopicCheckAnswered, func(ctx context.Context, e CheckAnswered) error {
		return t.handle(func() error {
			t.RecordCheck(e)
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", TopicCheckAnswered.Name(), err)
	}
	err = pubsub.Subscribe(ctx, sub, TopicQuizSubmitted, func(ctx context.Context, e QuizSubmitted) error {
		return t.handle(func() error {
			if e.Total <= 0 || e.Score < 0 || e.Score > e.Total {
				return fmt.Errorf("implausible score %d/%d for %s", e.Score, e.Total, e.Section)
			}
			t.RecordQuiz(e)
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", TopicQuizSubmitted.Name(), err)
	}
	slog.Debug("Progress tracker subscribed")
	return nil
}

// handle runs fn for one delivered event unless the tracker is stopped.
func (t *Tracker) handle(fn func() error) error {
	t.runMu.Lock()
	if t.stopped {
		t.runMu.Unlock()
		return nil
	}
	t.inflight.Add(1)
	t.runMu.Unlock()

	defer t.inflight.Done()
	return fn()
}

// Stop ignores further events and waits for events being recorded to
// finish, or for ctx to end.
func (t *Tracker) Stop(ctx context.Context) error {
	t.runMu.Lock()
	t.stopped = true
	t.runMu.Unlock()

	done := make(chan struct{})
	go func() {
		t.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for progress tracker: %w", ctx.Err())
	}
}

func (t *Tracker) entry(section string) *SectionStats {
	s, ok := t.stats[section]
	if !ok {
		s = &SectionStats{Section: section}
		t.stats[section] = s
	}
	return s
}

// RecordCheck counts one inline check answer.
func (t *Tracker) RecordCheck(e CheckAnswered) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.entry(e.Section)
	s.ChecksAnswered++
	if e.Correct {
		s.ChecksCorrect++
	}
}

// RecordQuiz counts one quiz submission.
func (t *Tracker) RecordQuiz(e QuizSubmitted) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.entry(e.Section)
	s.QuizAttempts++
	s.LastScore = e.Score
	s.QuizTotal = e.Total
	if e.Score > s.BestScore {
		s.BestScore = e.Score
	}
	if e.SubmittedAt.After(s.LastSubmittedAt) {
		s.LastSubmittedAt = e.SubmittedAt
	}
	if e.Total > 0 {
		t.percentSum[e.Section] += float64(e.Score) * 100 / float64(e.Total)
	}
	s.MeanPercent = t.percentSum[e.Section] / float64(s.QuizAttempts)
}

// Section returns the statistics for one section.
func (t *Tracker) Section(slug string) (SectionStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.stats[slug]
	if !ok {
		return SectionStats{Section: slug}, false
	}
	return *s, true
}

// Snapshot returns a copy of all statistics ordered by section slug.
func (t *Tracker) Snapshot() []SectionStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]SectionStats, 0, len(t.stats))
	for _, s := range t.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out
}
