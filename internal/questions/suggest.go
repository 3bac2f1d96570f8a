// Package questions proposes interview questions: a deterministic
// three-question suggestion engine driven by the conversation so far,
// and an AI question-list generator with a fixed German fallback
// script.
package questions

import (
	"fmt"
	"strings"

	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

// suggestCount is the number of questions Suggest always returns.
const suggestCount = 3

// topicScanWindow bounds the context scan to the most recent exchanges.
const topicScanWindow = 6

// Conversation topics with their German trigger keywords, in scan
// order.
var topicTable = []struct {
	name     string
	keywords []string
}{
	{"price", []string{"preis", "kosten", "budget", "geld", "teuer", "günstig", "investition"}},
	{"installation", []string{"installation", "montage", "einbau", "handwerker", "selbst"}},
	{"technology", []string{"technologie", "digital", "smart", "app", "bedienung"}},
	{"design", []string{"design", "aussehen", "optik", "stil", "farbe"}},
	{"sustainability", []string{"nachhaltigkeit", "umwelt", "energie", "wasser", "sparen"}},
	{"family", []string{"familie", "kinder", "alltag", "morgen", "stress"}},
	{"quality", []string{"qualität", "robust", "langlebig", "haltbar", "zuverlässig"}},
	{"comparison", []string{"vergleich", "konkurrenz", "alternative", "unterschied"}},
	{"concerns", []string{"bedenken", "problem", "schwierig", "sorge", "risiko"}},
	{"benefits", []string{"vorteil", "nutzen", "hilft", "besser", "verbessert"}},
}

// Suggest returns exactly three interview questions fitting the
// persona, the product, and the conversation so far. The first
// exchange gets a persona-keyed opening triplet; afterwards the recent
// persona replies are scanned for topics and the questions follow up
// on them. Deterministic: same inputs, same output.
func Suggest(p persona.Persona, prod product.Product, t interview.Transcript) []string {
	p = p.Resolved()
	productName := prod.Name
	if productName == "" {
		productName = "Produkt"
	}

	if len(t) <= 2 {
		return initialQuestions(p.Archetype, productName)
	}

	topics := conversationTopics(t)

	questions := topicQuestions(p.Archetype, productName, topics)
	questions = append(questions, personaFollowups(p.Archetype, productName, topics)...)
	for _, q := range generalFollowups(productName) {
		if len(questions) >= suggestCount {
			break
		}
		questions = append(questions, q)
	}

	return questions[:suggestCount]
}

// conversationTopics scans the persona replies within the most recent
// turns and reports which topics came up.
func conversationTopics(t interview.Transcript) map[string]bool {
	start := len(t) - topicScanWindow
	if start < 0 {
		start = 0
	}
	var replies []string
	for _, turn := range t[start:] {
		if turn.Role == interview.RolePersona {
			replies = append(replies, strings.ToLower(turn.Content))
		}
	}

	found := make(map[string]bool)
	for _, topic := range topicTable {
		for _, reply := range replies {
			if containsAny(reply, topic.keywords) {
				found[topic.name] = true
				break
			}
		}
	}
	return found
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// initialQuestions returns the opening triplet for the first exchange.
func initialQuestions(arch persona.Archetype, productName string) []string {
	switch arch {
	case persona.ArchetypeLuxusBauherr:
		return []string{
			fmt.Sprintf("Entspricht das %s Ihren Premium-Ansprüchen für die Villa?", productName),
			"Wie wichtig ist Ihnen die Exklusivität gegenüber Standardlösungen?",
			"Welche Rolle spielt die Zukunftssicherheit der Technologie für Sie?",
		}
	case persona.ArchetypeArchitektin:
		return []string{
			fmt.Sprintf("Wie würden Sie das %s in Ihre Hotelprojekte integrieren?", productName),
			"Welche technischen Daten benötigen Sie für die Planungsarbeit?",
			"Wie bewerten Sie die Nachhaltigkeit für Ihre Zertifizierungen?",
		}
	case persona.ArchetypeInstallateur:
		return []string{
			fmt.Sprintf("Wie kompliziert ist die Installation vom %s?", productName),
			"Welche Marge können Sie als Fachbetrieb damit erzielen?",
			"Wie ist die Verfügbarkeit von Ersatzteilen und Service?",
		}
	case persona.ArchetypeModernisiererin:
		return []string{
			fmt.Sprintf("Passt das %s zu Ihren bestehenden Installationen?", productName),
			"Wie rechtfertigen Sie die Investition gegenüber günstigeren Alternativen?",
			"Welche Auswirkungen hat das auf Ihre laufende Hausrenovierung?",
		}
	case persona.ArchetypeRentner:
		return []string{
			fmt.Sprintf("Ist das %s auch für ältere Menschen einfach zu bedienen?", productName),
			"Wie sicher fühlen Sie sich mit dieser neuen Technologie?",
			"Rechtfertigt sich die Investition für die nächsten 20 Jahre?",
		}
	case persona.ArchetypeFamilienpaar:
		return []string{
			fmt.Sprintf("Wie würde das %s unseren Morgenstress mit drei Kindern reduzieren?", productName),
			"Ist das robust genug für den täglichen Familienalltag?",
			"Können wir uns das mit unserem Familienbudget leisten?",
		}
	case persona.ArchetypeBerufseinsteiger:
		return []string{
			fmt.Sprintf("Passt das %s in meine kleine Wohnung und mein Budget?", productName),
			"Kann ich das selbst installieren oder brauche ich einen Handwerker?",
			"Ist das auch für junge Leute wie mich relevant?",
		}
	default:
		return []string{
			fmt.Sprintf("Was ist Ihr erster Eindruck vom %s?", productName),
			"Welche Bedenken hätten Sie bei der Anschaffung?",
			"Wie würde das Ihren Alltag verändern?",
		}
	}
}

// topicQuestions builds follow-ups for the topics that came up, in
// fixed topic order. The price follow-up has persona-specific variants.
func topicQuestions(arch persona.Archetype, productName string, topics map[string]bool) []string {
	var qs []string
	if topics["price"] {
		switch arch {
		case persona.ArchetypeLuxusBauherr:
			qs = append(qs, fmt.Sprintf("Welche Zusatzleistungen würden den Preis für das %s rechtfertigen?", productName))
		case persona.ArchetypeBerufseinsteiger:
			qs = append(qs, fmt.Sprintf("Gibt es Finanzierungsmöglichkeiten für das %s?", productName))
		default:
			qs = append(qs, fmt.Sprintf("Was müsste das %s leisten, um den Preis zu rechtfertigen?", productName))
		}
	}
	if topics["installation"] {
		qs = append(qs, "Welche Art von Support erwarten Sie nach der Installation?")
	}
	if topics["technology"] {
		qs = append(qs, "Welche zusätzlichen smarten Funktionen wären für Sie interessant?")
	}
	if topics["concerns"] {
		qs = append(qs, fmt.Sprintf("Was könnte Ihre Bedenken bezüglich %s ausräumen?", productName))
	}
	if topics["benefits"] {
		qs = append(qs, fmt.Sprintf("Welcher Vorteil vom %s ist für Sie am wichtigsten?", productName))
	}
	return qs
}

// personaFollowups adds archetype-specific follow-ups gated on the
// topics that came up.
func personaFollowups(arch persona.Archetype, productName string, topics map[string]bool) []string {
	var qs []string
	switch arch {
	case persona.ArchetypeLuxusBauherr:
		if topics["quality"] {
			qs = append(qs, "Welche Premium-Features sind für Sie unverzichtbar?")
		}
		if topics["design"] {
			qs = append(qs, "Wie wichtig ist die Designsprache für Ihre Villa?")
		}
	case persona.ArchetypeArchitektin:
		if topics["sustainability"] {
			qs = append(qs, "Welche Zertifizierungen benötigen Sie für Ihre Projekte?")
		}
		if topics["technology"] {
			qs = append(qs, "Wie integrieren Sie smarte Lösungen in Ihre Planungen?")
		}
	case persona.ArchetypeInstallateur:
		if topics["installation"] {
			qs = append(qs, fmt.Sprintf("Welche Schulungen bräuchten Sie für das %s?", productName))
		}
		if topics["price"] {
			qs = append(qs, "Wie kalkulieren Sie solche Premium-Produkte?")
		}
	case persona.ArchetypeModernisiererin:
		if topics["comparison"] {
			qs = append(qs, fmt.Sprintf("Mit welchen Produkten vergleichen Sie das %s?", productName))
		}
		if topics["quality"] {
			qs = append(qs, "Wie wichtig ist die Langlebigkeit bei Ihrer Renovierung?")
		}
	case persona.ArchetypeRentner:
		if topics["technology"] {
			qs = append(qs, "Benötigen Sie Unterstützung bei der Bedienung?")
		}
		if topics["family"] {
			qs = append(qs, "Sollen Ihre Kinder das auch nutzen können?")
		}
	case persona.ArchetypeFamilienpaar:
		if topics["family"] {
			qs = append(qs, "Wie erklären Sie den Kindern die neue Technik?")
		}
		if topics["benefits"] {
			qs = append(qs, "Welcher Zeitgewinn wäre für euch am wertvollsten?")
		}
	case persona.ArchetypeBerufseinsteiger:
		if topics["price"] {
			qs = append(qs, "Würden Sie das auf Raten kaufen?")
		}
		if topics["technology"] {
			qs = append(qs, "Welche Apps oder Features nutzen Sie am meisten?")
		}
	}
	return qs
}

// generalFollowups pads the suggestion list when the conversation gave
// too few leads.
func generalFollowups(productName string) []string {
	return []string{
		fmt.Sprintf("Wie würden Sie das %s Ihren Freunden beschreiben?", productName),
		fmt.Sprintf("Was wäre Ihr nächster Schritt bezüglich %s?", productName),
		fmt.Sprintf("Welche Fragen haben Sie noch zum %s?", productName),
		"Wie wichtig ist Ihnen die Marke zero360 bei dieser Entscheidung?",
		fmt.Sprintf("Würden Sie das %s weiterempfehlen?", productName),
	}
}
