// Package export renders finished research into the formats the team
// shares: a JSON bundle, CSV tables, and a markdown report. The bundle
// is the canonical shape; CSV and report are views over it.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/zero360/researchlab/internal/analytics"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/research"
)

// Message is one conversation turn in the bundle.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// InterviewRecord is one interview in the bundle.
type InterviewRecord struct {
	ID           string            `json:"id"`
	Persona      persona.Persona   `json:"persona"`
	Metrics      analytics.Metrics `json:"metrics"`
	Conversation []Message         `json:"conversation"`
}

// SessionInfo describes the research run the bundle was exported from.
type SessionInfo struct {
	Timestamp       string          `json:"timestamp"`
	Product         product.Product `json:"product"`
	TotalInterviews int             `json:"total_interviews"`
}

// Bundle is the complete export document.
type Bundle struct {
	ResearchSession SessionInfo       `json:"research_session"`
	SummaryMetrics  research.Summary  `json:"summary_metrics"`
	Interviews      []InterviewRecord `json:"interviews"`
}

// New builds a bundle over the given interview records. The timestamp
// records when the export was generated, not when the research ran.
func New(prod product.Product, interviews []research.Interview, at time.Time) Bundle {
	records := make([]InterviewRecord, 0, len(interviews))
	for _, iv := range interviews {
		rec := InterviewRecord{
			ID:      iv.ID,
			Persona: iv.Persona,
			Metrics: iv.Metrics,
		}
		for _, turn := range iv.Transcript {
			rec.Conversation = append(rec.Conversation, Message{
				Role:      string(turn.Role),
				Content:   turn.Content,
				Timestamp: turn.Timestamp.Format(time.RFC3339),
			})
		}
		records = append(records, rec)
	}

	return Bundle{
		ResearchSession: SessionInfo{
			Timestamp:       at.Format(time.RFC3339),
			Product:         prod,
			TotalInterviews: len(interviews),
		},
		SummaryMetrics: research.Summarize(interviews),
		Interviews:     records,
	}
}

// FromStudy bundles the completed interviews of a study.
func FromStudy(st research.Study) Bundle {
	return New(st.Product, st.CompletedInterviews(), time.Now())
}

// WriteJSON writes the bundle as 2-space-indented JSON. HTML escaping
// is off so transcript text stays readable.
func WriteJSON(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode export bundle: %w", err)
	}
	return nil
}
