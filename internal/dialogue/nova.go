package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/zero360/researchlab/internal/config"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

var novaModels = map[string]string{
	"nova-lite": "us.amazon.nova-2-lite-v1:0",
}

// NovaEngine answers through Amazon Bedrock's Converse API. Credentials
// resolve through the AWS default chain.
type NovaEngine struct {
	model  string
	client *bedrockruntime.Client
}

func NewNovaEngine(model string) (*NovaEngine, error) {
	cfg, err := config.LoadAWS(context.Background(), "")
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &NovaEngine{
		model:  model,
		client: bedrockruntime.NewFromConfig(cfg),
	}, nil
}

func (e *NovaEngine) Name() string { return "nova" }

func (e *NovaEngine) Close() error { return nil }

func (e *NovaEngine) Respond(ctx context.Context, utterance string, p persona.Persona, prod product.Product) Reply {
	return respond(ctx, e, utterance, p, prod)
}

func (e *NovaEngine) Generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	modelID := novaModels[e.model]
	if modelID == "" {
		modelID = novaModels["nova-lite"]
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		resp, err := e.client.Converse(ctx, &bedrockruntime.ConverseInput{
			ModelId: aws.String(modelID),
			System: []types.SystemContentBlock{
				&types.SystemContentBlockMemberText{Value: system},
			},
			Messages: []types.Message{
				{
					Role: types.ConversationRoleUser,
					Content: []types.ContentBlock{
						&types.ContentBlockMemberText{Value: user},
					},
				},
			},
			InferenceConfig: &types.InferenceConfiguration{
				MaxTokens:   aws.Int32(int32(maxTokens)),
				Temperature: aws.Float32(float32(temperature)),
			},
		})
		if err != nil {
			lastErr = fmt.Errorf("Bedrock Converse error (attempt %d/%d): %w", attempt, maxRetries, err)
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

		text := strings.TrimSpace(extractNovaText(resp))
		if text == "" {
			lastErr = fmt.Errorf("empty response from Bedrock (attempt %d/%d)", attempt, maxRetries)
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

func extractNovaText(resp *bedrockruntime.ConverseOutput) string {
	if resp.Output == nil {
		return ""
	}
	msg, ok := resp.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	for _, block := range msg.Value.Content {
		if tb, ok := block.(*types.ContentBlockMemberText); ok {
			return tb.Value
		}
	}
	return ""
}
