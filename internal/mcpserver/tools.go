package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/research"
)

var tracer = otel.Tracer("researchlab-mcp")

// ToolDefs returns the MCP tool definitions.
func ToolDefs() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "start_research",
			Description: "Run an autonomous user research study: simulated customer personas are interviewed about a product and their answers are scored for sentiment and purchase conviction. Starts an async study and returns a study ID. Use get_study to check progress.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"product_name": map[string]any{
						"type":        "string",
						"description": "Product to research. Catalog names (e.g. \"zero360 FlexSpace System\") pull in the full concept; any other name starts a custom product.",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "What the product is and does",
					},
					"value_prop": map[string]any{
						"type":        "string",
						"description": "Core value proposition to probe in the interviews",
					},
					"target_market": map[string]any{
						"type":        "string",
						"description": "Intended customer group",
					},
					"num_interviews": map[string]any{
						"type":        "integer",
						"description": "Number of persona interviews to run (1-10)",
						"default":     5,
					},
					"questions_per_interview": map[string]any{
						"type":        "integer",
						"description": "Questions asked in each interview (5-15)",
						"default":     8,
					},
					"segment": map[string]any{
						"type":        "string",
						"description": "Customer segment to draw personas from (e.g. \"Premium Homeowners\"). Omit to interview a diverse mix.",
					},
					"provider": map[string]any{
						"type":        "string",
						"description": "Dialogue provider: claude, gemini, nova, demo",
						"default":     "claude",
					},
					"model": map[string]any{
						"type":        "string",
						"description": "Model alias override: haiku, sonnet, gemini-flash, gemini-lite, gemini-pro, nova-lite",
					},
				},
				Required: []string{"product_name"},
			},
		},
		{
			Name:        "get_study",
			Description: "Get the status and results of a research study by ID. Use this to check on a running study or retrieve a finished study's metrics and summary.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"study_id": map[string]any{
						"type":        "string",
						"description": "The study ID returned from start_research",
					},
					"include_transcripts": map[string]any{
						"type":        "boolean",
						"description": "Include the full interview transcripts in the response",
						"default":     false,
					},
				},
				Required: []string{"study_id"},
			},
		},
		{
			Name:        "list_studies",
			Description: "List research studies, newest first. Returns study IDs, products, status, and summary metrics.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results (default 20)",
						"default":     20,
					},
				},
			},
		},
	}
}

// Handlers contains tool handler implementations.
type Handlers struct {
	studies *research.Manager
	log     *slog.Logger
}

// NewHandlers creates tool handlers.
func NewHandlers(studies *research.Manager, logger *slog.Logger) *Handlers {
	return &Handlers{studies: studies, log: logger}
}

// HandleStartResearch starts a research study.
func (h *Handlers) HandleStartResearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.start_research")
	defer span.End()

	name := mcp.ParseString(req, "product_name", "")
	if name == "" {
		span.SetStatus(codes.Error, "missing product_name")
		return mcp.NewToolResultError("product_name is required"), nil
	}

	prod, ok := product.Find(name)
	if !ok {
		prod = product.Product{Name: name}
	}
	if v := mcp.ParseString(req, "description", ""); v != "" {
		prod.Description = v
	}
	if v := mcp.ParseString(req, "value_prop", ""); v != "" {
		prod.ValueProp = v
	}
	if v := mcp.ParseString(req, "target_market", ""); v != "" {
		prod.TargetMarket = v
	}

	numInterviews := parseIntParam(req, "num_interviews", 5)
	questionsPer := parseIntParam(req, "questions_per_interview", 8)
	segment := mcp.ParseString(req, "segment", "")
	provider := mcp.ParseString(req, "provider", "claude")
	model := mcp.ParseString(req, "model", "")

	span.SetAttributes(
		attribute.String("product", prod.Name),
		attribute.Int("num_interviews", numInterviews),
		attribute.Int("questions_per_interview", questionsPer),
		attribute.String("segment", segment),
		attribute.String("provider", provider),
	)

	if numInterviews < 1 || numInterviews > 10 {
		span.SetStatus(codes.Error, "invalid num_interviews")
		return mcp.NewToolResultError(fmt.Sprintf("invalid num_interviews %d: must be between 1 and 10", numInterviews)), nil
	}
	if questionsPer < 5 || questionsPer > 15 {
		span.SetStatus(codes.Error, "invalid questions_per_interview")
		return mcp.NewToolResultError(fmt.Sprintf("invalid questions_per_interview %d: must be between 5 and 15", questionsPer)), nil
	}
	switch provider {
	case "claude", "gemini", "nova", "demo":
	default:
		span.SetStatus(codes.Error, "unknown provider")
		return mcp.NewToolResultError(fmt.Sprintf("unknown provider %q: choose claude, gemini, nova, or demo", provider)), nil
	}
	if segment != "" {
		if _, ok := persona.SegmentByName(segment); !ok {
			span.SetStatus(codes.Error, "unknown segment")
			return mcp.NewToolResultError(fmt.Sprintf("unknown segment %q: available segments are %s", segment, strings.Join(segmentNames(), ", "))), nil
		}
	}

	id, err := h.studies.StartStudy(ctx, research.Request{
		Product:               prod,
		NumInterviews:         numInterviews,
		QuestionsPerInterview: questionsPer,
		Segment:               segment,
		Provider:              provider,
		Model:                 model,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "start study failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to start study: %v", err)), nil
	}

	span.SetAttributes(attribute.String("study_id", id))
	h.log.InfoContext(ctx, "Research study started",
		"study_id", id, "product", prod.Name, "provider", provider, "interviews", numInterviews)

	result := map[string]any{
		"study_id": id,
		"status":   research.StatusPending,
		"message":  "Research study started. Use get_study with this study_id to check progress.",
	}
	return jsonResult(result)
}

// HandleGetStudy returns study details.
func (h *Handlers) HandleGetStudy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, span := tracer.Start(ctx, "tool.get_study")
	defer span.End()

	id := mcp.ParseString(req, "study_id", "")
	if id == "" {
		span.SetStatus(codes.Error, "missing study_id")
		return mcp.NewToolResultError("study_id is required"), nil
	}
	includeTranscripts := parseBoolParam(req, "include_transcripts", false)

	span.SetAttributes(
		attribute.String("study_id", id),
		attribute.Bool("include_transcripts", includeTranscripts),
	)

	st, ok := h.studies.GetStudy(id)
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return mcp.NewToolResultError(fmt.Sprintf("study %s not found", id)), nil
	}

	return jsonResult(studyResult(st, includeTranscripts))
}

// HandleListStudies returns the known studies, newest first.
func (h *Handlers) HandleListStudies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, span := tracer.Start(ctx, "tool.list_studies")
	defer span.End()

	limit := parseIntParam(req, "limit", 20)
	span.SetAttributes(attribute.Int("limit", limit))

	all := h.studies.ListStudies()
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	span.SetAttributes(attribute.Int("result_count", len(all)))

	studies := make([]map[string]any, 0, len(all))
	for _, st := range all {
		studies = append(studies, studySummary(st))
	}

	result := map[string]any{
		"studies": studies,
		"count":   len(studies),
	}
	return jsonResult(result)
}

func segmentNames() []string {
	segs := persona.Segments()
	names := make([]string, len(segs))
	for i, s := range segs {
		names[i] = s.Name
	}
	return names
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func parseIntParam(req mcp.CallToolRequest, key string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	raw, ok := args[key]
	if !ok {
		return defaultVal
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return defaultVal
	}
}

func parseBoolParam(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}
