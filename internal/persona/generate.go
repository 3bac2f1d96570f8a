package persona

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/zero360/researchlab/internal/llmjson"
)

// TextGenerator is the slice of the dialogue engine that persona
// generation needs: one free-form completion with explicit token and
// temperature settings. Errors propagate so callers can fall back.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

const (
	generateMaxTokens = 800
	// High temperature for diversity when no segment constrains the
	// persona; slightly lower when staying inside a segment.
	diverseTemperature = 0.9
	segmentTemperature = 0.8
)

const diverseSystemPrompt = `You are a persona generator for user research. Create diverse, realistic personas for bathroom/sanitary product research.

Generate a JSON object with these exact fields:
- name: Full name (German)
- age: Age between 25-70
- job: Job title
- company: Company description
- experience: Background and experience with bathroom products/renovations
- pain_points: Current challenges and frustrations
- goals: What they want to achieve
- personality: Communication style and decision-making approach

Make each persona unique with different demographics, life situations, and perspectives. Focus on realistic German customers.`

// Generator produces personas through a language model, falling back
// to the hand-authored examples when the model is unavailable or its
// output cannot be parsed.
type Generator struct {
	llm TextGenerator
	log *slog.Logger
	rng *rand.Rand
}

// NewGenerator wires a Generator. llm may be nil, in which case every
// call serves from the example pool (demo mode).
func NewGenerator(llm TextGenerator, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		llm: llm,
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateDiverse asks the model for one unconstrained persona. It
// never fails: provider and parse errors degrade to a pseudo-randomly
// chosen example persona.
func (g *Generator) GenerateDiverse(ctx context.Context) Persona {
	if g.llm == nil {
		return g.randomExample()
	}

	raw, err := g.llm.Generate(ctx, diverseSystemPrompt,
		"Generate a unique persona for bathroom product research.",
		generateMaxTokens, diverseTemperature)
	if err != nil {
		g.log.Warn("persona generation failed, using example persona", "error", err)
		return g.randomExample()
	}

	p, err := Parse([]byte(llmjson.Clean(raw)))
	if err != nil {
		g.log.Warn("generated persona unparseable, using example persona",
			"error", err, "raw", llmjson.Truncate(raw, 200))
		return g.randomExample()
	}
	return p
}

// GenerateForSegment asks the model for one persona per requested
// count, conditioned on the segment's demographics. A persona whose
// JSON cannot be parsed is dropped with a warning, so the result may
// be shorter than requested. When the model fails before producing a
// single persona, the example pool truncated to the requested count is
// returned instead.
func (g *Generator) GenerateForSegment(ctx context.Context, seg Segment) []Persona {
	count := seg.PersonaCount
	if count <= 0 {
		count = DefaultPersonaCount
	}
	if g.llm == nil {
		return fallbackPool(count)
	}

	system := segmentSystemPrompt(seg)
	personas := make([]Persona, 0, count)

	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			break
		}

		user := fmt.Sprintf("Generate persona %d of %d for the %s demographic segment. Make it distinct from previous personas while staying within the demographic parameters.",
			i+1, count, seg.Name)

		raw, err := g.llm.Generate(ctx, system, user, generateMaxTokens, segmentTemperature)
		if err != nil {
			if len(personas) == 0 {
				g.log.Warn("segment persona generation failed, using example pool",
					"segment", seg.Name, "error", err)
				return fallbackPool(count)
			}
			g.log.Warn("segment persona call failed, continuing with fewer",
				"segment", seg.Name, "index", i+1, "error", err)
			continue
		}

		p, err := Parse([]byte(llmjson.Clean(raw)))
		if err != nil {
			g.log.Warn("dropping unparseable segment persona",
				"segment", seg.Name, "index", i+1, "error", err)
			continue
		}
		personas = append(personas, p)
	}
	return personas
}

func (g *Generator) randomExample() Persona {
	pool := Examples()
	return pool[g.rng.Intn(len(pool))]
}

func fallbackPool(count int) []Persona {
	pool := Examples()
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}

func segmentSystemPrompt(seg Segment) string {
	return fmt.Sprintf(`You are a persona generator for user research. Create realistic, diverse personas that represent the target demographic segment.

TARGET DEMOGRAPHIC SEGMENT: %s
- Age Range: %s
- Income Level: %s
- Location: %s
- Lifestyle: %s
- Tech Comfort: %s
- Renovation Experience: %s
- Key Motivations: %s
- Segment Description: %s

Generate a JSON object with these exact fields (all values must be STRINGS):
- name: Full German name appropriate for the demographic (STRING)
- age: Specific age within the range (NUMBER as INTEGER)
- job: Job title that fits the income/lifestyle profile (STRING)
- company: Company description that matches the profile (STRING)
- experience: Background with bathroom products/renovations fitting their experience level (STRING - paragraph format)
- pain_points: Current challenges and frustrations relevant to this demographic (STRING - paragraph format, not a list)
- goals: What they want to achieve, aligned with key motivations (STRING - paragraph format)
- personality: Communication style and decision-making approach fitting the segment (STRING - paragraph format)

IMPORTANT: All fields except 'age' must be strings. Do not use arrays/lists for any field. Write pain_points, goals, etc. as coherent paragraphs.

Make each persona unique while staying within the demographic parameters. Focus on realistic German customers that truly represent this segment.`,
		seg.Name,
		orNotSpecified(seg.AgeRange),
		orNotSpecified(seg.IncomeLevel),
		orNotSpecified(seg.Location),
		orNotSpecified(seg.Lifestyle),
		orNotSpecified(seg.TechComfort),
		orNotSpecified(seg.RenovationExperience),
		orNotSpecified(strings.Join(seg.KeyMotivations, ", ")),
		orNotSpecified(seg.Description))
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}
