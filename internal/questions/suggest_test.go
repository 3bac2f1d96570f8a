package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

func exchange(question, answer string) []interview.Turn {
	return []interview.Turn{
		{Role: interview.RoleInterviewer, Content: question},
		{Role: interview.RolePersona, Content: answer},
	}
}

func TestSuggestServesInitialTripletOnFirstExchange(t *testing.T) {
	prod := product.Product{Name: "zero360 FlexSpace System"}

	tests := []struct {
		name        string
		personaName string
		wantFirst   string
	}{
		{"luxury builder", "Dr. Thomas Richter", "Entspricht das zero360 FlexSpace System Ihren Premium-Ansprüchen für die Villa?"},
		{"architect", "Julia Schneider", "Wie würden Sie das zero360 FlexSpace System in Ihre Hotelprojekte integrieren?"},
		{"installer", "Michael Wagner", "Wie kompliziert ist die Installation vom zero360 FlexSpace System?"},
		{"modernizer", "Anna Bergmann", "Passt das zero360 FlexSpace System zu Ihren bestehenden Installationen?"},
		{"retiree", "Werner Hoffmann", "Ist das zero360 FlexSpace System auch für ältere Menschen einfach zu bedienen?"},
		{"family couple", "Sandra & Marco Keller", "Wie würde das zero360 FlexSpace System unseren Morgenstress mit drei Kindern reduzieren?"},
		{"young professional", "Lukas Bauer", "Passt das zero360 FlexSpace System in meine kleine Wohnung und mein Budget?"},
		{"unknown persona", "Katrin Weber", "Was ist Ihr erster Eindruck vom zero360 FlexSpace System?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(persona.Persona{Name: tt.personaName}, prod, nil)
			require.Len(t, got, 3)
			assert.Equal(t, tt.wantFirst, got[0])
		})
	}
}

func TestSuggestFirstPairStillServesInitialTriplet(t *testing.T) {
	tr := interview.Transcript(exchange("Guten Tag!", "Guten Tag, gerne."))

	got := Suggest(persona.Persona{Name: "Werner Hoffmann"}, product.Product{Name: "VitalShower System"}, tr)

	require.Len(t, got, 3)
	assert.Equal(t, "Ist das VitalShower System auch für ältere Menschen einfach zu bedienen?", got[0])
}

func TestSuggestPriceFollowupVariants(t *testing.T) {
	tr := interview.Transcript(append(
		exchange("Erster Eindruck?", "Ganz nett soweit."),
		exchange("Und sonst?", "Der Preis erscheint mir sehr hoch.")...))

	tests := []struct {
		name        string
		personaName string
		want        string
	}{
		{"luxury builder asks about extras", "Dr. Thomas Richter", "Welche Zusatzleistungen würden den Preis für das zero360 AIR rechtfertigen?"},
		{"young professional asks about financing", "Lukas Bauer", "Gibt es Finanzierungsmöglichkeiten für das zero360 AIR?"},
		{"generic persona asks about value", "Katrin Weber", "Was müsste das zero360 AIR leisten, um den Preis zu rechtfertigen?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(persona.Persona{Name: tt.personaName}, product.Product{Name: "zero360 AIR"}, tr)
			require.Len(t, got, 3)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestSuggestBuildsTopicQuestionsInTableOrder(t *testing.T) {
	tr := interview.Transcript(append(
		exchange("Wie wirkt das auf Sie?", "Interessant."),
		exchange("Was beschäftigt Sie?", "Die Kosten und die Montage machen mir Sorgen, auch die App-Bedienung.")...))

	got := Suggest(persona.Persona{Name: "Katrin Weber"}, product.Product{Name: "Connect Hub"}, tr)

	assert.Equal(t, []string{
		"Was müsste das Connect Hub leisten, um den Preis zu rechtfertigen?",
		"Welche Art von Support erwarten Sie nach der Installation?",
		"Welche zusätzlichen smarten Funktionen wären für Sie interessant?",
	}, got)
}

func TestSuggestWeavesInPersonaFollowups(t *testing.T) {
	tr := interview.Transcript(append(
		exchange("Wie klingt das für euch?", "Spannend."),
		exchange("Und im Detail?", "Das hilft unserer Familie im Alltag wirklich.")...))

	got := Suggest(persona.Persona{Name: "Sandra & Marco Keller"}, product.Product{Name: "FlexSpace"}, tr)

	want := []string{
		"Welcher Vorteil vom FlexSpace ist für Sie am wichtigsten?",
		"Wie erklären Sie den Kindern die neue Technik?",
		"Welcher Zeitgewinn wäre für euch am wertvollsten?",
	}
	assert.Equal(t, want, got)

	// Same inputs, same output.
	assert.Equal(t, want, Suggest(persona.Persona{Name: "Sandra & Marco Keller"}, product.Product{Name: "FlexSpace"}, tr))
}

func TestSuggestScansOnlyRecentTurns(t *testing.T) {
	var tr interview.Transcript
	tr = append(tr, exchange("Frage eins?", "Der Preis ist mir zu hoch.")...)
	tr = append(tr, exchange("Frage zwei?", "Ansonsten ganz ordentlich.")...)
	tr = append(tr, exchange("Frage drei?", "Ich mag die Optik.")...)
	tr = append(tr, exchange("Frage vier?", "Mehr fällt mir dazu nicht ein.")...)

	got := Suggest(persona.Persona{Name: "Katrin Weber"}, product.Product{Name: "Connect Hub"}, tr)

	// The price remark fell out of the scan window; only the design
	// topic remains, which has no generic follow-up, so the general
	// list fills all three slots.
	assert.Equal(t, []string{
		"Wie würden Sie das Connect Hub Ihren Freunden beschreiben?",
		"Was wäre Ihr nächster Schritt bezüglich Connect Hub?",
		"Welche Fragen haben Sie noch zum Connect Hub?",
	}, got)
}

func TestSuggestIgnoresInterviewerTurnsInScan(t *testing.T) {
	tr := interview.Transcript{
		{Role: interview.RoleInterviewer, Content: "Was halten Sie vom Preis?"},
		{Role: interview.RolePersona, Content: "Dazu sage ich noch nichts."},
		{Role: interview.RoleInterviewer, Content: "Wirklich gar nichts?"},
		{Role: interview.RolePersona, Content: "Ja, so ist es."},
	}

	got := Suggest(persona.Persona{Name: "Katrin Weber"}, product.Product{Name: "Connect Hub"}, tr)

	assert.NotContains(t, got, "Was müsste das Connect Hub leisten, um den Preis zu rechtfertigen?")
}

func TestSuggestDefaultsProductName(t *testing.T) {
	got := Suggest(persona.Persona{}, product.Product{}, nil)

	require.Len(t, got, 3)
	assert.Equal(t, "Was ist Ihr erster Eindruck vom Produkt?", got[0])
}
