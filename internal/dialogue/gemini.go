package dialogue

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-lite":  "gemini-2.5-flash-lite",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiEngine answers through the Gemini API using the official genai
// SDK. The API key comes from GEMINI_API_KEY.
type GeminiEngine struct {
	apiKey string
	model  string
}

func NewGeminiEngine(model string) *GeminiEngine {
	return &GeminiEngine{
		apiKey: os.Getenv("GEMINI_API_KEY"),
		model:  model,
	}
}

func (e *GeminiEngine) Name() string { return "gemini" }

func (e *GeminiEngine) Close() error { return nil }

func (e *GeminiEngine) Respond(ctx context.Context, utterance string, p persona.Persona, prod product.Product) Reply {
	return respond(ctx, e, utterance, p, prod)
}

func (e *GeminiEngine) Generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return "", fmt.Errorf("create Gemini client: %w", err)
	}
	defer client.Close()

	modelID := geminiModels[e.model]
	if modelID == "" {
		modelID = geminiModels["gemini-flash"]
	}

	model := client.GenerativeModel(modelID)
	model.SetTemperature(float32(temperature))
	model.SetMaxOutputTokens(int32(maxTokens))
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		resp, err := model.GenerateContent(ctx, genai.Text(user))
		if err != nil {
			lastErr = fmt.Errorf("Gemini API error (attempt %d/%d): %w", attempt, maxRetries, err)
			if attempt < maxRetries {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= time.Duration(backoffMult)
			}
			continue
		}

		text := strings.TrimSpace(extractGeminiText(resp))
		if text == "" {
			lastErr = fmt.Errorf("empty response from Gemini (attempt %d/%d)", attempt, maxRetries)
			if attempt < maxRetries {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= time.Duration(backoffMult)
			}
			continue
		}

		return text, nil
	}

	return "", lastErr
}

func extractGeminiText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.Join(parts, "")
}
