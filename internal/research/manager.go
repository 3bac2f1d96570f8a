package research

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero360/researchlab/internal/analytics"
	"github.com/zero360/researchlab/internal/dialogue"
	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/observability"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/progress"
	"github.com/zero360/researchlab/internal/questions"
)

var tracer = otel.Tracer("zero360-research")

const (
	defaultInterviews = 5
	defaultQuestions  = 8
	progressInterval  = 2 * time.Second
)

// Request holds parameters for a study run.
type Request struct {
	Product               product.Product
	NumInterviews         int
	QuestionsPerInterview int
	// Questions, when set, is asked verbatim in every interview and
	// question generation is skipped.
	Questions []string
	// Personas, when set, is used in order and cycled when shorter than
	// NumInterviews. Otherwise personas come from Segment, or are
	// generated fresh per interview.
	Personas []persona.Persona
	Segment  string
	Provider string // dialogue provider: claude, gemini, nova, demo
	Model    string
	// OnProgress receives throttled progress events (max one per 2s,
	// stage transitions always delivered).
	OnProgress progress.Callback
}

// Manager runs studies one at a time and keeps them in memory for the
// process lifetime.
type Manager struct {
	log     *slog.Logger
	baseCtx context.Context // cancelled on shutdown

	// newEngine is swapped in tests.
	newEngine func(providerName, model string) (dialogue.Engine, error)

	mu         sync.Mutex
	studies    map[string]*Study
	order      []string // creation order, oldest first
	cancels    map[string]context.CancelFunc
	maxStudies int
	running    int
}

// NewManager creates a study manager. baseCtx should be cancelled on
// shutdown so study goroutines stop. maxStudies <= 0 means one study
// at a time.
func NewManager(maxStudies int, logger *slog.Logger, baseCtx context.Context) *Manager {
	if maxStudies <= 0 {
		maxStudies = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Manager{
		log:        logger,
		baseCtx:    baseCtx,
		newEngine:  dialogue.NewEngine,
		studies:    make(map[string]*Study),
		cancels:    make(map[string]context.CancelFunc),
		maxStudies: maxStudies,
	}
}

// StartStudy registers a study and starts the interview loop in a
// goroutine. Returns the study ID immediately.
func (m *Manager) StartStudy(ctx context.Context, req Request) (string, error) {
	if err := req.Product.Validate(); err != nil {
		return "", err
	}
	if req.NumInterviews <= 0 {
		req.NumInterviews = defaultInterviews
	}
	if req.QuestionsPerInterview <= 0 {
		req.QuestionsPerInterview = defaultQuestions
	}
	if req.Provider == "" {
		req.Provider = "claude"
	}

	id, err := NewStudyID()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	if m.running >= m.maxStudies {
		m.mu.Unlock()
		return "", fmt.Errorf("max concurrent studies reached (%d)", m.maxStudies)
	}
	m.running++

	// Derive the goroutine context from baseCtx (cancelled on shutdown)
	// rather than the request context (cancelled when the response is
	// sent). Carry the trace span for observability linking.
	studyCtx := observability.DetachTraceContextFrom(ctx, m.baseCtx)
	studyCtx, cancel := context.WithCancel(studyCtx)
	m.cancels[id] = cancel

	m.studies[id] = &Study{
		ID:        id,
		Product:   req.Product,
		Segment:   req.Segment,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	m.order = append(m.order, id)
	m.mu.Unlock()

	go m.runStudy(studyCtx, id, req)

	return id, nil
}

// CancelStudy stops a running study. Safe to call with unknown IDs.
func (m *Manager) CancelStudy(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cancel, ok := m.cancels[id]; ok {
		cancel()
	}
}

// GetStudy returns a snapshot of one study.
func (m *Manager) GetStudy(id string) (Study, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.studies[id]
	if !ok {
		return Study{}, false
	}
	return st.snapshot(), true
}

// ListStudies returns snapshots of all studies, newest first.
func (m *Manager) ListStudies() []Study {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Study, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.studies[m.order[i]].snapshot())
	}
	return out
}

// mutate applies fn to a study under the lock.
func (m *Manager) mutate(id string, fn func(*Study)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.studies[id]; ok {
		fn(st)
	}
}

func (m *Manager) runStudy(ctx context.Context, id string, req Request) {
	ctx, span := tracer.Start(ctx, "study.run",
		trace.WithAttributes(
			attribute.String("study_id", id),
			attribute.String("product", req.Product.Name),
			attribute.Int("interviews", req.NumInterviews),
		),
	)
	defer span.End()

	defer func() {
		m.mu.Lock()
		delete(m.cancels, id)
		m.running--
		m.mu.Unlock()
	}()

	log := m.log.With("study_id", id)
	start := time.Now()

	// Throttle progress delivery: max one event per 2 seconds except on
	// stage transitions.
	var lastEmit time.Time
	var lastStage progress.Stage
	emit := func(evt progress.Event) {
		now := time.Now()
		stageChanged := evt.Stage != lastStage
		if now.Sub(lastEmit) < progressInterval && !stageChanged {
			return
		}
		if stageChanged {
			span.AddEvent("stage_transition",
				trace.WithAttributes(
					attribute.String("stage", string(evt.Stage)),
					attribute.Float64("percent", evt.Percent),
				),
			)
		}
		if req.OnProgress != nil {
			evt.Elapsed = time.Since(start)
			req.OnProgress(evt)
		}
		lastEmit = now
		lastStage = evt.Stage
	}

	fail := func(msg string, err error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		log.ErrorContext(ctx, "Study failed", "error", err)
		m.mutate(id, func(st *Study) {
			st.Status = StatusFailed
			st.Error = err.Error()
			st.FinishedAt = time.Now()
		})
		emit(progress.Event{Stage: progress.StageComplete, Message: "Study failed", Percent: 1, Error: err})
	}

	canceled := func() {
		span.SetStatus(codes.Error, "canceled")
		log.InfoContext(ctx, "Study canceled")
		m.mutate(id, func(st *Study) {
			st.Status = StatusCanceled
			st.FinishedAt = time.Now()
			st.Summarize()
		})
		emit(progress.Event{Stage: progress.StageComplete, Message: "Study canceled", Percent: 1})
	}

	m.mutate(id, func(st *Study) { st.Status = StatusRunning })

	engine, err := m.newEngine(req.Provider, req.Model)
	if err != nil {
		fail("create dialogue engine", fmt.Errorf("create dialogue engine: %w", err))
		return
	}
	defer engine.Close()

	// Demo mode has no text generation; a nil generator makes the
	// persona and question generators serve their built-in pools
	// without a model round-trip.
	var personaLLM persona.TextGenerator
	var questionLLM questions.TextGenerator
	if req.Provider != "demo" {
		personaLLM = engine
		questionLLM = engine
	}
	personaGen := persona.NewGenerator(personaLLM, m.log)
	questionGen := questions.NewGenerator(questionLLM, m.log)

	emit(progress.NewEvent(progress.StagePersonas, "Generating personas...", 0.02, start))

	pool := req.Personas
	if len(pool) == 0 && req.Segment != "" {
		seg, ok := persona.SegmentByName(req.Segment)
		if !ok {
			fail("resolve segment", fmt.Errorf("unknown segment %q", req.Segment))
			return
		}
		pool = personaGen.GenerateForSegment(ctx, seg)
	}

	n := req.NumInterviews
	log.InfoContext(ctx, "Study starting",
		"product", req.Product.Name, "provider", req.Provider,
		"interviews", n, "segment", req.Segment, "pool", len(pool))

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			canceled()
			return
		}

		var p persona.Persona
		if len(pool) > 0 {
			p = pool[i%len(pool)]
		} else {
			p = personaGen.GenerateDiverse(ctx)
		}
		p = p.Resolved()

		qs := req.Questions
		if len(qs) == 0 {
			emit(progress.Event{
				Stage:          progress.StageQuestions,
				Message:        fmt.Sprintf("Generating questions for %s", p.Name),
				Percent:        progressAt(i, 0, n),
				InterviewNum:   i + 1,
				InterviewTotal: n,
			})
			qs = questionGen.Generate(ctx, p, req.Product, req.QuestionsPerInterview)
		}

		m.mutate(id, func(st *Study) {
			st.Interviews = append(st.Interviews, Interview{
				ID:        fmt.Sprintf("interview_%d", i+1),
				Persona:   p,
				StartedAt: time.Now(),
				Status:    StatusRunning,
			})
		})

		emit(progress.Event{
			Stage:          progress.StageInterview,
			Message:        fmt.Sprintf("Interviewing %s", p.Name),
			Percent:        progressAt(i, 0, n),
			InterviewNum:   i + 1,
			InterviewTotal: n,
		})

		orch := interview.NewOrchestrator(engine, func(done, total int) {
			emit(progress.Event{
				Stage:          progress.StageInterview,
				Message:        fmt.Sprintf("Interviewing %s (question %d/%d)", p.Name, done, total),
				Percent:        progressAt(i, float64(done)/float64(total), n),
				InterviewNum:   i + 1,
				InterviewTotal: n,
			})
		}, m.log)

		transcript, err := orch.Run(ctx, p, req.Product, qs)
		if err != nil {
			// Run only fails on context cancellation; keep the partial
			// transcript in the record.
			m.mutate(id, func(st *Study) {
				last := len(st.Interviews) - 1
				st.Interviews[last].Transcript = transcript
				st.Interviews[last].Status = StatusCanceled
			})
			canceled()
			return
		}

		emit(progress.Event{
			Stage:          progress.StageAnalytics,
			Message:        fmt.Sprintf("Scoring interview with %s", p.Name),
			Percent:        progressAt(i, 1, n),
			InterviewNum:   i + 1,
			InterviewTotal: n,
		})
		metrics := analytics.Score(transcript.PersonaContents())

		m.mutate(id, func(st *Study) {
			last := len(st.Interviews) - 1
			st.Interviews[last].Transcript = transcript
			st.Interviews[last].Metrics = metrics
			st.Interviews[last].Status = StatusCompleted
			st.Summarize()
		})

		log.InfoContext(ctx, "Interview complete",
			"persona", p.Name,
			"sentiment", metrics.SentimentScore,
			"conviction", metrics.ConvictionLevel,
			"concerns", len(metrics.MainConcerns))
	}

	m.mutate(id, func(st *Study) {
		st.Status = StatusCompleted
		st.FinishedAt = time.Now()
		st.Summarize()
	})

	final, _ := m.GetStudy(id)
	span.SetAttributes(
		attribute.Float64("avg_sentiment", final.Summary.AvgSentiment),
		attribute.Float64("avg_conviction", final.Summary.AvgConviction),
	)
	span.SetStatus(codes.Ok, "complete")
	log.InfoContext(ctx, "Study complete",
		"interviews", len(final.Interviews),
		"avg_sentiment", final.Summary.AvgSentiment,
		"elapsed", time.Since(start).Round(time.Second).String())

	emit(progress.Event{
		Stage:        progress.StageComplete,
		Message:      fmt.Sprintf("Study complete: %d interviews", len(final.Interviews)),
		Percent:      1,
		StudyID:      id,
		Interviews:   len(final.Interviews),
		AvgSentiment: final.Summary.AvgSentiment,
	})
}

// progressAt maps an interview index plus a within-interview fraction
// to the overall completion fraction.
func progressAt(i int, frac float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return (float64(i) + frac) / float64(n)
}
