package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

var claudeModels = map[string]string{
	"haiku":  "claude-haiku-4-5-20251001",
	"sonnet": "claude-sonnet-4-5-20250929",
}

// ClaudeEngine answers through the Anthropic Messages API. The API key
// is read from ANTHROPIC_API_KEY by the SDK.
type ClaudeEngine struct {
	model string
}

func NewClaudeEngine(model string) *ClaudeEngine {
	return &ClaudeEngine{model: model}
}

func (e *ClaudeEngine) Name() string { return "claude" }

func (e *ClaudeEngine) Close() error { return nil }

func (e *ClaudeEngine) Respond(ctx context.Context, utterance string, p persona.Persona, prod product.Product) Reply {
	return respond(ctx, e, utterance, p, prod)
}

func (e *ClaudeEngine) Generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	client := anthropic.NewClient()

	modelID := claudeModels[e.model]
	if modelID == "" {
		modelID = claudeModels["haiku"]
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(modelID),
			MaxTokens:   int64(maxTokens),
			Temperature: anthropic.Float(temperature),
			System: []anthropic.TextBlockParam{
				{Text: system},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
			},
		})
		if err != nil {
			lastErr = fmt.Errorf("Claude API error (attempt %d/%d): %w", attempt, maxRetries, err)
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

		text := strings.TrimSpace(extractClaudeText(message))
		if text == "" {
			lastErr = fmt.Errorf("empty response from Claude (attempt %d/%d)", attempt, maxRetries)
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

func extractClaudeText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
