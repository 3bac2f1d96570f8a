package progress

import "time"

// Stage identifies which phase of a research run is active.
type Stage string

const (
	StagePersonas  Stage = "personas"
	StageQuestions Stage = "questions"
	StageInterview Stage = "interview"
	StageAnalytics Stage = "analytics"
	StageComplete  Stage = "complete"
)

// Event carries progress information from a research run to the renderer.
type Event struct {
	Stage          Stage
	Message        string
	Percent        float64 // 0.0–1.0
	InterviewNum   int
	InterviewTotal int
	Elapsed        time.Duration
	Error          error
	// StudyID is set on StageComplete.
	StudyID string
	// Interviews is the number of completed interviews, set on StageComplete.
	Interviews int
	// AvgSentiment is the study-wide average sentiment, set on StageComplete.
	AvgSentiment float64
	// LogFile is the log file path, set on StageComplete.
	LogFile string
}

// Callback is the function signature for progress event handlers.
type Callback func(Event)

// NopCallback is a no-op progress callback for tests and silent mode.
func NopCallback(Event) {}

// NewEvent creates an Event with common fields populated.
func NewEvent(stage Stage, msg string, pct float64, start time.Time) Event {
	return Event{
		Stage:   stage,
		Message: msg,
		Percent: pct,
		Elapsed: time.Since(start),
	}
}
