package dialogue

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

// Canned answers per persona archetype, used when no API key is
// available. The texts stay in character for the matching example
// persona.
var demoResponses = map[persona.Archetype][]string{
	persona.ArchetypeLuxusBauherr: {
		"Das klingt interessant, aber entspricht das wirklich dem Premium-Standard, den ich für meine Villa erwarte?",
		"Wie unterscheidet sich das von dem, was jeder haben kann? Ich suche nach wirklich exklusiven Lösungen.",
		"Die Technologie ist beeindruckend, aber wird sie auch in zehn Jahren noch zeitgemäß sein?",
		"Können Sie mir Referenzen von vergleichbaren Projekten zeigen? Ich kenne die meisten Premium-Anbieter.",
		"Das Design gefällt mir, aber wie sieht es mit der handwerklichen Perfektion aus? Ich dulde keine Kompromisse bei der Qualität.",
	},
	persona.ArchetypeArchitektin: {
		"Interessant! Haben Sie auch detaillierte CAD-Daten und BIM-Modelle für meine Planungsarbeit?",
		"Wie sind die Lieferzeiten? Meine Projekte haben straffe Zeitpläne und ich brauche Verlässlichkeit.",
		"Das Produkt sieht gut aus, aber wie integriert es sich in mein Gesamtkonzept? Funktionalität ist entscheidend.",
		"Gibt es technische Beratung für komplexe Installationen? Ich arbeite oft an anspruchsvollen Projekten.",
		"Welche Zertifizierungen hat das Produkt? Nachhaltigkeit wird bei meinen Kunden immer wichtiger.",
	},
	persona.ArchetypeInstallateur: {
		"Das sieht gut aus, aber wie kompliziert ist die Installation? Zeit ist Geld in meinem Geschäft.",
		"Wie sieht es mit der Verfügbarkeit von Ersatzteilen aus? Ich kann mir keine langen Wartezeiten bei Reparaturen leisten.",
		"Was ist die Marge für mich als Fachbetrieb? Ich muss auch von meiner Arbeit leben können.",
		"Gibt es Schulungen für meine Mitarbeiter? Neue Technik muss richtig installiert werden.",
		"Wie oft gibt es Reklamationen? Mein Ruf hängt davon ab, dass alles funktioniert.",
	},
	persona.ArchetypeModernisiererin: {
		"Das gefällt mir! Aber wie viel kostet das ungefähr? Unser Budget ist leider begrenzt.",
		"Passt das zu unseren bestehenden Installationen? Wir können nicht alles neu machen.",
		"Ist das wirklich pflegeleicht? Mit vier Personen im Haushalt muss alles praktisch sein.",
		"Wie lange hält das? Wir wollen nicht in fünf Jahren schon wieder renovieren müssen.",
		"Ist das wassersparend? Die Nebenkosten werden immer höher und wir wollen nachhaltig leben.",
	},
	persona.ArchetypeRentner: {
		"Das ist interessant, aber ist das auch einfach zu bedienen? Meine Frau hat Probleme mit komplizierten Armaturen.",
		"Wie sicher ist das? Wir werden nicht jünger und Stürze im Bad sind gefährlich.",
		"Sieht das aus wie ein Krankenhaus? Wir wollen keine Pflege-Atmosphäre in unserem Zuhause.",
		"Ist das eine gute Investition für die nächsten zwanzig Jahre? In unserem Alter überlegt man zweimal.",
		"Gibt es Zuschüsse von der Pflegekasse dafür? Die Bürokratie ist so kompliziert geworden.",
	},
	persona.ArchetypeFamilienpaar: {
		"Das könnte unseren Morgenstress wirklich reduzieren! Aber ist das auch robust genug für drei Kinder?",
		"Wie teuer wird das insgesamt? Mit drei Kindern müssen wir jeden Euro zweimal umdrehen.",
		"Ist das wassersparend? Die Kinder lassen gerne mal das Wasser laufen.",
		"Kann man das leicht sauber halten? Bei fünf Personen ist Hygiene ein Dauerthema.",
		"Wächst das mit den Kindern mit? Der Kleine ist erst vier und braucht noch Hilfe.",
	},
	persona.ArchetypeBerufseinsteiger: {
		"Cool! Aber ehrlich gesagt ist mein Budget ziemlich knapp. Gibt es das auch günstiger?",
		"Passt das in mein kleines Bad? Ich habe nur 55 Quadratmeter insgesamt.",
		"Kann ich das selbst installieren? YouTube-Tutorials schaue ich gerne.",
		"Ist das instagrammable? Meine erste eigene Wohnung soll schon was hermachen.",
		"Kann ich das mitnehmen, wenn ich umziehe? Ich weiß noch nicht, wie lange ich hier bleibe.",
	},
}

// Neutral answers for personas that match no archetype, for example
// AI-generated ones replayed in demo mode.
var demoFallback = []string{
	"Das klingt erst einmal interessant. Können Sie mir mehr Details dazu nennen?",
	"Ich bin noch unentschlossen. Was unterscheidet das Produkt von anderen Lösungen am Markt?",
	"Wie sieht es mit den Kosten aus? Das ist für mich ein wichtiger Punkt.",
	"Dafür müsste ich erst wissen, wie aufwendig die Installation in meinem Bad wäre.",
	"Interessant. Aber ich müsste das erst einmal in der Praxis erleben, bevor ich mich entscheide.",
}

// DemoEngine serves canned German answers without any network calls.
// Safe for concurrent use.
type DemoEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDemoEngine creates a demo backend. A non-zero seed makes the
// answer sequence reproducible.
func NewDemoEngine(seed int64) *DemoEngine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DemoEngine{rng: rand.New(rand.NewSource(seed))}
}

func (e *DemoEngine) Name() string { return "demo" }

func (e *DemoEngine) Close() error { return nil }

func (e *DemoEngine) Respond(ctx context.Context, utterance string, p persona.Persona, prod product.Product) Reply {
	pool := demoFallback
	if responses, ok := demoResponses[p.Resolved().Archetype]; ok {
		pool = responses
	}

	e.mu.Lock()
	text := pool[e.rng.Intn(len(pool))]
	e.mu.Unlock()

	return Reply{Text: text}
}

// Generate is unsupported in demo mode; callers fall back to their
// canned pools instead.
func (e *DemoEngine) Generate(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	return "", fmt.Errorf("demo mode has no text generation")
}
