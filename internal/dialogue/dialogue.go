// Package dialogue turns interviewer utterances into in-character
// persona answers through one of several chat backends. Respond never
// returns an error to its caller: when a backend fails, the Reply
// carries an apologetic German text and the Failed flag, so interviews
// keep running and the transcript records what went wrong.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/prompt"
)

// Reply is one persona answer. When Failed is set, Text carries a
// German apology instead of an in-character answer and Err holds the
// underlying cause.
type Reply struct {
	Text   string
	Failed bool
	Err    error
}

// Responder produces persona answers to interviewer utterances.
type Responder interface {
	Respond(ctx context.Context, utterance string, p persona.Persona, prod product.Product) Reply
}

// Generator produces one free-form completion with explicit token and
// temperature settings. Unlike Respond, errors propagate so callers
// can run their own fallbacks.
type Generator interface {
	Generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Engine is a complete dialogue backend.
type Engine interface {
	Responder
	Generator
	Name() string
	Close() error
}

const (
	respondMaxTokens   = 400
	respondTemperature = 0.7

	maxRetries     = 3
	initialBackoff = 1 * time.Second
	backoffMult    = 2
)

// Fallback texts recorded as regular persona turns when a backend
// cannot answer.
const (
	apologyAPIError = "Entschuldigung, es gab einen Fehler bei der Verbindung zur API: %v"
	apologyNoConfig = "Entschuldigung, ich kann momentan nicht antworten. Bitte überprüfen Sie die API-Konfiguration."
)

// ErrNotConfigured reports a backend whose API key is missing from the
// environment.
var ErrNotConfigured = errors.New("dialogue provider not configured")

// respond wraps a Generate call in the interview contract: compose the
// persona system instruction, ask once, and fold any failure into an
// apologetic Reply instead of an error.
func respond(ctx context.Context, g Generator, utterance string, p persona.Persona, prod product.Product) Reply {
	system := prompt.Compose(p, prod)
	text, err := g.Generate(ctx, system, utterance, respondMaxTokens, respondTemperature)
	if err != nil {
		return Reply{Text: fmt.Sprintf(apologyAPIError, err), Failed: true, Err: err}
	}
	return Reply{Text: text}
}

// Configured reports whether the named provider can run with the
// current environment. Nova resolves credentials through the AWS
// default chain and demo needs none.
func Configured(name string) bool {
	switch name {
	case "claude":
		return os.Getenv("ANTHROPIC_API_KEY") != ""
	case "gemini":
		return os.Getenv("GEMINI_API_KEY") != ""
	case "nova", "demo":
		return true
	default:
		return false
	}
}

// NewEngine creates a dialogue backend by provider name. model selects
// a provider-specific alias and may be empty for the default. Providers
// missing their API key come back as an engine whose replies ask for
// the key instead of failing hard.
func NewEngine(name, model string) (Engine, error) {
	switch name {
	case "claude":
		if !Configured("claude") {
			return &unconfigured{provider: "claude"}, nil
		}
		return NewClaudeEngine(model), nil
	case "gemini":
		if !Configured("gemini") {
			return &unconfigured{provider: "gemini"}, nil
		}
		return NewGeminiEngine(model), nil
	case "nova":
		return NewNovaEngine(model)
	case "demo":
		return NewDemoEngine(0), nil
	default:
		return nil, fmt.Errorf("unknown dialogue provider %q: choose claude, gemini, nova, or demo", name)
	}
}

// unconfigured stands in for a backend without credentials. Every reply
// is the configuration apology.
type unconfigured struct {
	provider string
}

func (u *unconfigured) Name() string { return u.provider }

func (u *unconfigured) Close() error { return nil }

func (u *unconfigured) Respond(ctx context.Context, utterance string, p persona.Persona, prod product.Product) Reply {
	return Reply{Text: apologyNoConfig, Failed: true, Err: ErrNotConfigured}
}

func (u *unconfigured) Generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	return "", fmt.Errorf("%s: %w", u.provider, ErrNotConfigured)
}
