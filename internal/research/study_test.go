package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero360/researchlab/internal/analytics"
	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
)

func completedInterview(id string, sentiment, conviction float64) Interview {
	return Interview{
		ID:     id,
		Status: StatusCompleted,
		Metrics: analytics.Metrics{
			SentimentScore:  sentiment,
			ConvictionLevel: conviction,
		},
	}
}

func TestNewStudyIDIsUnique(t *testing.T) {
	a, err := NewStudyID()
	require.NoError(t, err)
	b, err := NewStudyID()
	require.NoError(t, err)

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestSummarizeBucketsSentiment(t *testing.T) {
	st := &Study{Interviews: []Interview{
		completedInterview("interview_1", 0.9, 1.0),
		completedInterview("interview_2", 0.61, 0.8),
		completedInterview("interview_3", 0.6, 0.5), // boundary counts as neutral
		completedInterview("interview_4", 0.4, 0.2), // boundary counts as neutral
		completedInterview("interview_5", 0.1, 0.0),
		{ID: "interview_6", Status: StatusRunning, Metrics: analytics.Metrics{SentimentScore: 1.0}},
	}}

	st.Summarize()

	assert.Equal(t, 2, st.Summary.Distribution.Positive)
	assert.Equal(t, 2, st.Summary.Distribution.Neutral)
	assert.Equal(t, 1, st.Summary.Distribution.Negative)
	assert.InDelta(t, (0.9+0.61+0.6+0.4+0.1)/5, st.Summary.AvgSentiment, 1e-9)
	assert.InDelta(t, (1.0+0.8+0.5+0.2+0.0)/5, st.Summary.AvgConviction, 1e-9)
}

func TestSummarizeWithoutCompletedInterviews(t *testing.T) {
	st := &Study{Interviews: []Interview{
		{ID: "interview_1", Status: StatusRunning},
	}}

	st.Summarize()

	assert.Zero(t, st.Summary)
}

func TestCompletedInterviews(t *testing.T) {
	st := &Study{Interviews: []Interview{
		{ID: "interview_1", Status: StatusCompleted},
		{ID: "interview_2", Status: StatusRunning},
		{ID: "interview_3", Status: StatusCompleted},
	}}

	done := st.CompletedInterviews()

	require.Len(t, done, 2)
	assert.Equal(t, "interview_1", done[0].ID)
	assert.Equal(t, "interview_3", done[1].ID)
}

func TestSnapshotIsIndependent(t *testing.T) {
	var tr interview.Transcript
	tr.Add(interview.RoleInterviewer, "Was ist Ihr erster Eindruck?")
	tr.Add(interview.RolePersona, "Sehr gut.")

	st := &Study{
		Status: StatusRunning,
		Interviews: []Interview{{
			ID:         "interview_1",
			Persona:    persona.Persona{Name: "Julia Schneider"},
			Transcript: tr,
			Status:     StatusCompleted,
		}},
	}

	snap := st.snapshot()

	st.Interviews[0].Transcript[0].Content = "geändert"
	st.Interviews[0].Transcript.Add(interview.RolePersona, "Nachtrag.")
	st.Interviews[0].Status = StatusCanceled
	st.Interviews = append(st.Interviews, Interview{ID: "interview_2"})

	require.Len(t, snap.Interviews, 1)
	require.Len(t, snap.Interviews[0].Transcript, 2)
	assert.Equal(t, "Was ist Ihr erster Eindruck?", snap.Interviews[0].Transcript[0].Content)
	assert.Equal(t, StatusCompleted, snap.Interviews[0].Status)
}
