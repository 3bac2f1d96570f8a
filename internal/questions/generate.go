package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/zero360/researchlab/internal/llmjson"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

// TextGenerator is the slice of the dialogue engine question
// generation needs: one free-form completion. Errors stay internal;
// Generate degrades to the fallback script instead of surfacing them.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// DefaultQuestionCount is the interview length requested when the
// caller does not pick one.
const DefaultQuestionCount = 8

const (
	generateMaxTokens   = 600
	generateTemperature = 0.8
)

const generateSystemPrompt = `You are a user research expert. Generate %d diverse, open-ended interview questions in German.

Persona: %s - %s
Product: %s

Questions should:
1. Explore different aspects (needs, concerns, usage, decision-making)
2. Be open-ended and conversational
3. Uncover deep insights about the persona's perspective
4. Be appropriate for this specific persona's background
5. Be in German

Return ONLY a JSON array of question strings, no other text.`

// Fallback returns the fixed German interview script used when no
// language model is available.
func Fallback(productName string) []string {
	if productName == "" {
		productName = "Produkt"
	}
	return []string{
		fmt.Sprintf("Was ist Ihr erster Eindruck vom %s?", productName),
		"Welche Bedenken hätten Sie bei der Anschaffung?",
		"Wie würde das Ihren Alltag verändern?",
		"Was ist Ihnen bei Badezimmerprodukten am wichtigsten?",
		"Haben Sie schon mal ähnliche Produkte verwendet?",
		"Welche Probleme soll das Produkt für Sie lösen?",
		"Würden Sie das weiterempfehlen?",
		"Was fehlt Ihnen noch für eine Kaufentscheidung?",
	}
}

// Generator produces interview question lists through a language
// model.
type Generator struct {
	llm TextGenerator
	log *slog.Logger
}

// NewGenerator wires a Generator. llm may be nil, in which case every
// call serves the fallback script.
func NewGenerator(llm TextGenerator, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{llm: llm, log: log}
}

// Generate produces n interview questions for the persona and product.
// It never returns an error: without a model or when the call fails it
// serves the full fallback script, and when the model's answer cannot
// be parsed it serves the first three fallback questions.
func (g *Generator) Generate(ctx context.Context, p persona.Persona, prod product.Product, n int) []string {
	if n <= 0 {
		n = DefaultQuestionCount
	}
	fallback := Fallback(prod.Name)

	if g.llm == nil {
		return fallback
	}

	personaName := p.Name
	if personaName == "" {
		personaName = "Person"
	}
	job := p.Job
	if job == "" {
		job = "Professional"
	}
	productName := prod.Name
	if productName == "" {
		productName = "Product"
	}

	system := fmt.Sprintf(generateSystemPrompt, n, personaName, job, productName)
	user := fmt.Sprintf("Generate %d interview questions for this persona and product combination.", n)

	raw, err := g.llm.Generate(ctx, system, user, generateMaxTokens, generateTemperature)
	if err != nil {
		g.log.Warn("question generation failed, serving fallback script",
			"persona", personaName, "error", err)
		return fallback
	}

	var questions []string
	if err := json.Unmarshal([]byte(llmjson.Clean(raw)), &questions); err != nil {
		g.log.Warn("generated questions are not a JSON array, serving short fallback",
			"persona", personaName, "error", err)
		return fallback[:3]
	}
	if len(questions) == 0 {
		g.log.Warn("generated question list is empty, serving short fallback",
			"persona", personaName)
		return fallback[:3]
	}

	return questions
}
