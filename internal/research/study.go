// Package research runs interview studies: batches of autonomous
// persona interviews about one product, scored and summarized.
package research

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/zero360/researchlab/internal/analytics"
	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

// Status describes the lifecycle of a study or a single interview.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Interview is one persona interview within a study.
type Interview struct {
	ID         string               `json:"id"`
	Persona    persona.Persona      `json:"persona"`
	Transcript interview.Transcript `json:"transcript"`
	Metrics    analytics.Metrics    `json:"metrics"`
	StartedAt  time.Time            `json:"started_at"`
	Status     Status               `json:"status"`
}

// Distribution buckets interviews by sentiment: positive above 0.6,
// negative below 0.4, neutral in between (inclusive bounds).
type Distribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Summary aggregates metrics across the completed interviews of a study.
type Summary struct {
	AvgSentiment  float64      `json:"avg_sentiment"`
	AvgConviction float64      `json:"avg_conviction"`
	Distribution  Distribution `json:"sentiment_distribution"`
}

// Study is a batch research run over one product. The manager mutates
// it under its lock; callers receive snapshots.
type Study struct {
	ID         string          `json:"id"`
	Product    product.Product `json:"product"`
	Segment    string          `json:"segment,omitempty"`
	Interviews []Interview     `json:"interviews"`
	Status     Status          `json:"status"`
	Error      string          `json:"error,omitempty"`
	Summary    Summary         `json:"summary"`
	CreatedAt  time.Time       `json:"created_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// NewStudyID returns a ULID. IDs sort by creation time.
func NewStudyID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return id.String(), nil
}

// CompletedInterviews returns the interviews that finished scoring.
func (s *Study) CompletedInterviews() []Interview {
	var out []Interview
	for _, iv := range s.Interviews {
		if iv.Status == StatusCompleted {
			out = append(out, iv)
		}
	}
	return out
}

// Summarize computes summary metrics over the given interview records.
// An empty input yields a zero summary.
func Summarize(interviews []Interview) Summary {
	var sum Summary
	if len(interviews) == 0 {
		return sum
	}
	for _, iv := range interviews {
		sum.AvgSentiment += iv.Metrics.SentimentScore
		sum.AvgConviction += iv.Metrics.ConvictionLevel
		switch {
		case iv.Metrics.SentimentScore > 0.6:
			sum.Distribution.Positive++
		case iv.Metrics.SentimentScore < 0.4:
			sum.Distribution.Negative++
		default:
			sum.Distribution.Neutral++
		}
	}
	sum.AvgSentiment /= float64(len(interviews))
	sum.AvgConviction /= float64(len(interviews))
	return sum
}

// Summarize recomputes Summary from the completed interviews.
func (s *Study) Summarize() {
	s.Summary = Summarize(s.CompletedInterviews())
}

// snapshot returns a copy safe to hand out while the run goroutine
// keeps appending. Transcript backing arrays are copied; metrics are
// never mutated after scoring.
func (s *Study) snapshot() Study {
	out := *s
	out.Interviews = make([]Interview, len(s.Interviews))
	copy(out.Interviews, s.Interviews)
	for i := range out.Interviews {
		t := out.Interviews[i].Transcript
		out.Interviews[i].Transcript = append(interview.Transcript(nil), t...)
	}
	return out
}
