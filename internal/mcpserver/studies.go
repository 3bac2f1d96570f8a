package mcpserver

import (
	"time"

	"github.com/zero360/researchlab/internal/research"
)

// studySummary renders the lightweight study fields shared by get_study
// and list_studies. Optional fields are set only when they carry a
// value, so pending studies stay small.
func studySummary(st research.Study) map[string]any {
	completed := st.CompletedInterviews()

	result := map[string]any{
		"study_id":             st.ID,
		"product":              st.Product.Name,
		"status":               st.Status,
		"interviews_total":     len(st.Interviews),
		"interviews_completed": len(completed),
		"created_at":           st.CreatedAt.Format(time.RFC3339),
	}
	if st.Segment != "" {
		result["segment"] = st.Segment
	}
	if st.Error != "" {
		result["error"] = st.Error
	}
	if !st.FinishedAt.IsZero() {
		result["finished_at"] = st.FinishedAt.Format(time.RFC3339)
	}
	if len(completed) > 0 {
		result["avg_sentiment"] = st.Summary.AvgSentiment
		result["avg_conviction"] = st.Summary.AvgConviction
		result["sentiment_distribution"] = st.Summary.Distribution
	}
	return result
}

// studyResult renders a full study snapshot for get_study. Transcripts
// multiply the payload size, so they are included only on request.
func studyResult(st research.Study, includeTranscripts bool) map[string]any {
	result := studySummary(st)

	interviews := make([]map[string]any, 0, len(st.Interviews))
	for _, iv := range st.Interviews {
		entry := map[string]any{
			"id":      iv.ID,
			"persona": iv.Persona,
			"status":  iv.Status,
		}
		if !iv.StartedAt.IsZero() {
			entry["started_at"] = iv.StartedAt.Format(time.RFC3339)
		}
		// Metrics on an unscored interview are the neutral defaults;
		// only completed ones say anything about the product.
		if iv.Status == research.StatusCompleted {
			entry["metrics"] = iv.Metrics
		}
		if includeTranscripts {
			entry["transcript"] = iv.Transcript
		}
		interviews = append(interviews, entry)
	}
	result["interviews"] = interviews

	return result
}
