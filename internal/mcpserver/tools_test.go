package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero360/researchlab/internal/questions"
	"github.com/zero360/researchlab/internal/research"
)

func newTestHandlers(t *testing.T, maxStudies int) *Handlers {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandlers(research.NewManager(maxStudies, log, ctx), log)
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.False(t, res.IsError, "tool returned error: %s", resultText(t, res))
	out := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out
}

// startDemoStudy starts a study on the offline demo provider and
// returns its ID.
func startDemoStudy(t *testing.T, h *Handlers, args map[string]any) string {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	if _, ok := args["product_name"]; !ok {
		args["product_name"] = "zero360 FlexSpace System"
	}
	args["provider"] = "demo"

	res, err := h.HandleStartResearch(context.Background(), toolRequest("start_research", args))
	require.NoError(t, err)
	out := decodeResult(t, res)

	id, _ := out["study_id"].(string)
	require.Len(t, id, 26)
	assert.Equal(t, "pending", out["status"])
	return id
}

func waitForStatus(t *testing.T, h *Handlers, id, want string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		res, err := h.HandleGetStudy(context.Background(), toolRequest("get_study", map[string]any{"study_id": id}))
		require.NoError(t, err)
		st := decodeResult(t, res)
		if st["status"] == want {
			return st
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("study %s never reached status %q", id, want)
	return nil
}

func TestToolDefs(t *testing.T) {
	tools := ToolDefs()
	require.Len(t, tools, 3)

	assert.Equal(t, "start_research", tools[0].Name)
	assert.Equal(t, "get_study", tools[1].Name)
	assert.Equal(t, "list_studies", tools[2].Name)

	assert.Equal(t, []string{"product_name"}, tools[0].InputSchema.Required)
	assert.Equal(t, []string{"study_id"}, tools[1].InputSchema.Required)
	assert.Empty(t, tools[2].InputSchema.Required)
}

func TestStartResearchValidation(t *testing.T) {
	h := newTestHandlers(t, 1)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing product", map[string]any{}, "product_name is required"},
		{"too many interviews", map[string]any{"product_name": "X", "num_interviews": 99}, "between 1 and 10"},
		{"too few questions", map[string]any{"product_name": "X", "questions_per_interview": 2}, "between 5 and 15"},
		{"unknown provider", map[string]any{"product_name": "X", "provider": "hal9000"}, "choose claude, gemini, nova, or demo"},
		{"unknown segment", map[string]any{"product_name": "X", "provider": "demo", "segment": "Astronauts"}, "Premium Homeowners"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.HandleStartResearch(context.Background(), toolRequest("start_research", tt.args))
			require.NoError(t, err)
			require.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestStartResearchCompletesStudy(t *testing.T) {
	h := newTestHandlers(t, 1)
	id := startDemoStudy(t, h, map[string]any{"num_interviews": 1})

	st := waitForStatus(t, h, id, "completed")
	assert.Equal(t, "zero360 FlexSpace System", st["product"])
	assert.EqualValues(t, 1, st["interviews_total"])
	assert.EqualValues(t, 1, st["interviews_completed"])
	assert.Contains(t, st, "finished_at")

	sentiment, ok := st["avg_sentiment"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, sentiment, 0.0)
	assert.LessOrEqual(t, sentiment, 1.0)

	interviews, ok := st["interviews"].([]any)
	require.True(t, ok)
	require.Len(t, interviews, 1)

	iv := interviews[0].(map[string]any)
	assert.Equal(t, "interview_1", iv["id"])
	assert.Equal(t, "completed", iv["status"])
	assert.Contains(t, iv, "metrics")
	assert.NotContains(t, iv, "transcript")

	p, ok := iv["persona"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, p["name"])
}

func TestGetStudyTranscripts(t *testing.T) {
	h := newTestHandlers(t, 1)
	id := startDemoStudy(t, h, map[string]any{"num_interviews": 1})
	waitForStatus(t, h, id, "completed")

	res, err := h.HandleGetStudy(context.Background(), toolRequest("get_study", map[string]any{
		"study_id":            id,
		"include_transcripts": true,
	}))
	require.NoError(t, err)
	st := decodeResult(t, res)

	iv := st["interviews"].([]any)[0].(map[string]any)
	transcript, ok := iv["transcript"].([]any)
	require.True(t, ok)

	// Demo mode has no question model, so the interview walks the full
	// fallback script: one interviewer and one persona turn per question.
	assert.Len(t, transcript, 2*len(questions.Fallback("zero360 FlexSpace System")))

	turn := transcript[0].(map[string]any)
	assert.Equal(t, "interviewer", turn["role"])
	assert.NotEmpty(t, turn["content"])
}

func TestStartResearchWithSegment(t *testing.T) {
	h := newTestHandlers(t, 1)
	id := startDemoStudy(t, h, map[string]any{"num_interviews": 1, "segment": "Premium Homeowners"})

	st := waitForStatus(t, h, id, "completed")
	assert.Equal(t, "Premium Homeowners", st["segment"])
}

func TestStartResearchCustomProduct(t *testing.T) {
	h := newTestHandlers(t, 1)
	id := startDemoStudy(t, h, map[string]any{
		"product_name": "Prototyp Duschpaneel",
		"description":  "Ein modulares Duschpaneel fuer Hotels",
	})

	res, err := h.HandleGetStudy(context.Background(), toolRequest("get_study", map[string]any{"study_id": id}))
	require.NoError(t, err)
	st := decodeResult(t, res)
	assert.Equal(t, "Prototyp Duschpaneel", st["product"])
}

func TestGetStudyErrors(t *testing.T) {
	h := newTestHandlers(t, 1)

	res, err := h.HandleGetStudy(context.Background(), toolRequest("get_study", nil))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "study_id is required")

	res, err = h.HandleGetStudy(context.Background(), toolRequest("get_study", map[string]any{"study_id": "01UNKNOWN"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "not found")
}

func TestListStudies(t *testing.T) {
	h := newTestHandlers(t, 2)
	first := startDemoStudy(t, h, map[string]any{"num_interviews": 1})
	second := startDemoStudy(t, h, map[string]any{"num_interviews": 1})

	res, err := h.HandleListStudies(context.Background(), toolRequest("list_studies", nil))
	require.NoError(t, err)
	out := decodeResult(t, res)
	assert.EqualValues(t, 2, out["count"])

	studies, ok := out["studies"].([]any)
	require.True(t, ok)
	require.Len(t, studies, 2)
	assert.Equal(t, second, studies[0].(map[string]any)["study_id"])
	assert.Equal(t, first, studies[1].(map[string]any)["study_id"])

	// Summaries never carry the per-interview records.
	assert.NotContains(t, studies[0].(map[string]any), "interviews")

	res, err = h.HandleListStudies(context.Background(), toolRequest("list_studies", map[string]any{"limit": 1}))
	require.NoError(t, err)
	out = decodeResult(t, res)
	assert.EqualValues(t, 1, out["count"])
	assert.Equal(t, second, out["studies"].([]any)[0].(map[string]any)["study_id"])
}

func TestParseParams(t *testing.T) {
	req := toolRequest("start_research", map[string]any{
		"num_interviews": float64(3), // JSON numbers arrive as float64
		"exact":          7,
		"flag":           true,
	})

	assert.Equal(t, 3, parseIntParam(req, "num_interviews", 5))
	assert.Equal(t, 7, parseIntParam(req, "exact", 5))
	assert.Equal(t, 5, parseIntParam(req, "missing", 5))
	assert.Equal(t, 5, parseIntParam(req, "flag", 5))
	assert.True(t, parseBoolParam(req, "flag", false))
	assert.False(t, parseBoolParam(req, "missing", false))
	assert.False(t, parseBoolParam(req, "exact", false))

	empty := toolRequest("start_research", nil)
	assert.Equal(t, 5, parseIntParam(empty, "num_interviews", 5))
	assert.False(t, parseBoolParam(empty, "flag", false))
}
