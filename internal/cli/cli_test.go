package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero360/researchlab/internal/analytics"
	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/research"
)

func productFixture() product.Product {
	return product.Product{
		Name:        "zero360 Testprodukt",
		Description: "Ein Produkt für Funktionstests",
	}
}

// saveFlags restores the package-level flag variables after a test
// that mutates them.
func saveFlags(t *testing.T) {
	t.Helper()
	savedProduct := flagProduct
	savedBrief := flagProductBrief
	savedDescription := flagDescription
	savedValueProp := flagValueProp
	savedTargetMarket := flagTargetMarket
	savedSegment := flagSegment
	savedPersonas := flagPersonas
	savedProvider := flagProvider
	savedModel := flagModel
	savedTTS := flagTTS
	savedOutput := flagOutput
	savedAnthropic := flagAnthropicAPIKey
	savedGemini := flagGeminiAPIKey
	savedEleven := flagElevenLabsAPIKey
	t.Cleanup(func() {
		flagProduct = savedProduct
		flagProductBrief = savedBrief
		flagDescription = savedDescription
		flagValueProp = savedValueProp
		flagTargetMarket = savedTargetMarket
		flagSegment = savedSegment
		flagPersonas = savedPersonas
		flagProvider = savedProvider
		flagModel = savedModel
		flagTTS = savedTTS
		flagOutput = savedOutput
		flagAnthropicAPIKey = savedAnthropic
		flagGeminiAPIKey = savedGemini
		flagElevenLabsAPIKey = savedEleven
	})
}

// unsetenv clears an environment variable for the test and restores
// it afterwards (t.Setenv registers the restore).
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestResolveProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a name", func(t *testing.T) {
		saveFlags(t)
		flagProduct = ""

		_, err := resolveProduct(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--product")
	})

	t.Run("catalog name pulls the full entry", func(t *testing.T) {
		saveFlags(t)
		flagProduct = "zero360 Connect Hub"

		prod, err := resolveProduct(ctx)
		require.NoError(t, err)
		assert.Equal(t, "zero360 Connect Hub", prod.Name)
		assert.NotEmpty(t, prod.Description)
	})

	t.Run("unknown name becomes a custom product", func(t *testing.T) {
		saveFlags(t)
		flagProduct = "Prototyp X"
		flagDescription = "Ein Prototyp"

		prod, err := resolveProduct(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Prototyp X", prod.Name)
		assert.Equal(t, "Ein Prototyp", prod.Description)
		assert.Empty(t, prod.ValueProp)
	})

	t.Run("field flags override the catalog entry", func(t *testing.T) {
		saveFlags(t)
		flagProduct = "zero360 Connect Hub"
		flagTargetMarket = "Hotels"

		prod, err := resolveProduct(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Hotels", prod.TargetMarket)
		assert.NotEmpty(t, prod.Description)
	})

	t.Run("brief file defines the product", func(t *testing.T) {
		saveFlags(t)
		path := filepath.Join(t.TempDir(), "konzept.md")
		require.NoError(t, os.WriteFile(path, []byte("# Duschpaneel Konzept\n\nEin Paneel mit integrierter Wasseraufbereitung.\n"), 0o644))
		flagProduct = ""
		flagProductBrief = path

		prod, err := resolveProduct(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Duschpaneel Konzept", prod.Name)
		assert.Contains(t, prod.Description, "Wasseraufbereitung")
	})

	t.Run("product flag renames the brief", func(t *testing.T) {
		saveFlags(t)
		path := filepath.Join(t.TempDir(), "konzept.md")
		require.NoError(t, os.WriteFile(path, []byte("# Arbeitstitel\n\nBeschreibung folgt hier.\n"), 0o644))
		flagProduct = "Duschpaneel Pro"
		flagProductBrief = path

		prod, err := resolveProduct(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Duschpaneel Pro", prod.Name)
		assert.Contains(t, prod.Description, "Beschreibung folgt")
	})

	t.Run("unreadable brief fails", func(t *testing.T) {
		saveFlags(t)
		flagProductBrief = filepath.Join(t.TempDir(), "fehlt.md")

		_, err := resolveProduct(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load product brief")
	})
}

func TestResolvePersonas(t *testing.T) {
	t.Run("full and first names, case-insensitive", func(t *testing.T) {
		got, err := resolvePersonas("Julia Schneider, werner")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Julia Schneider", got[0].Name)
		assert.Equal(t, "Werner Hoffmann", got[1].Name)
	})

	t.Run("household couple by first name", func(t *testing.T) {
		got, err := resolvePersonas("sandra")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Sandra & Marco Keller", got[0].Name)
	})

	t.Run("unknown name lists the options", func(t *testing.T) {
		_, err := resolvePersonas("Hans")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown persona "Hans"`)
		assert.Contains(t, err.Error(), "Julia Schneider")
	})

	t.Run("only separators", func(t *testing.T) {
		_, err := resolvePersonas(" , ,")
		require.Error(t, err)
	})
}

func TestParseFormats(t *testing.T) {
	t.Run("default set", func(t *testing.T) {
		got, err := parseFormats("json,csv,report")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"json": true, "csv": true, "report": true}, got)
	})

	t.Run("single format with spaces", func(t *testing.T) {
		got, err := parseFormats(" csv ")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"csv": true}, got)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := parseFormats("json,xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid export format "xml"`)
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := parseFormats(",")
		require.Error(t, err)
	})
}

func TestCheckAPIKeys(t *testing.T) {
	t.Run("claude without key", func(t *testing.T) {
		saveFlags(t)
		unsetenv(t, "ANTHROPIC_API_KEY")

		err := checkAPIKeys("claude", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
		assert.Contains(t, err.Error(), "--provider demo")
	})

	t.Run("claude with env key", func(t *testing.T) {
		saveFlags(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-test")

		assert.NoError(t, checkAPIKeys("claude", ""))
	})

	t.Run("claude with flag key", func(t *testing.T) {
		saveFlags(t)
		unsetenv(t, "ANTHROPIC_API_KEY")
		flagAnthropicAPIKey = "sk-flag"

		assert.NoError(t, checkAPIKeys("claude", ""))
	})

	t.Run("demo needs nothing", func(t *testing.T) {
		saveFlags(t)
		unsetenv(t, "ANTHROPIC_API_KEY")
		unsetenv(t, "GEMINI_API_KEY")

		assert.NoError(t, checkAPIKeys("demo", ""))
	})

	t.Run("elevenlabs tts needs its key", func(t *testing.T) {
		saveFlags(t)
		unsetenv(t, "ELEVENLABS_API_KEY")

		err := checkAPIKeys("demo", "elevenlabs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ELEVENLABS_API_KEY")
	})

	t.Run("both keys missing are listed together", func(t *testing.T) {
		saveFlags(t)
		unsetenv(t, "GEMINI_API_KEY")
		unsetenv(t, "ELEVENLABS_API_KEY")

		err := checkAPIKeys("gemini", "elevenlabs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ELEVENLABS_API_KEY, GEMINI_API_KEY")
	})
}

func TestAudioExt(t *testing.T) {
	assert.Equal(t, ".mp3", audioExt("google"))
	assert.Equal(t, ".mp3", audioExt("polly"))
	assert.Equal(t, ".mp3", audioExt("elevenlabs"))
	assert.Equal(t, ".pcm", audioExt("gemini-vertex"))
}

func TestLoadTranscript(t *testing.T) {
	t.Run("plain turns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "transcript.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"role": "interviewer", "content": "Wie finden Sie das?"},
			{"role": "persona", "content": "Sehr gut!"}
		]`), 0o644))

		got, err := loadTranscript(path)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, interview.RoleInterviewer, got[0].Role)
		assert.Equal(t, "Sehr gut!", got[1].Content)
	})

	t.Run("exported conversation shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conversation.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"role": "Interviewer", "content": "Frage?", "timestamp": "2025-03-14T09:00:00Z"}
		]`), 0o644))

		got, err := loadTranscript(path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, interview.RoleInterviewer, got[0].Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"role": "moderator", "content": "?"}]`), 0o644))

		_, err := loadTranscript(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown role "moderator"`)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadTranscript(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}

func completedInterview(name string, sentiment float64, concerns ...string) research.Interview {
	return research.Interview{
		ID:      "interview_1",
		Persona: persona.Persona{Name: name, Age: 40, Job: "Testerin"},
		Metrics: analytics.Metrics{
			SentimentScore:  sentiment,
			ConvictionLevel: sentiment,
			MainConcerns:    concerns,
		},
		Status: research.StatusCompleted,
	}
}

func TestTopConcerns(t *testing.T) {
	interviews := []research.Interview{
		completedInterview("A", 0.5, "💰 Kosten", "⏱️ Zeit"),
		completedInterview("B", 0.5, "💰 Kosten", "🔒 Sicherheit"),
		completedInterview("C", 0.5, "💰 Kosten", "⏱️ Zeit", "🧩 Komplexität"),
	}

	got := topConcerns(interviews)

	require.Len(t, got, 3)
	assert.Equal(t, "💰 Kosten", got[0])
	assert.Equal(t, "⏱️ Zeit", got[1])
	// Single-mention concerns tie; first seen wins.
	assert.Equal(t, "🔒 Sicherheit", got[2])
}

func TestSentimentColorBuckets(t *testing.T) {
	assert.Same(t, positiveText, sentimentColor(0.61))
	assert.Same(t, neutralText, sentimentColor(0.6))
	assert.Same(t, neutralText, sentimentColor(0.4))
	assert.Same(t, negativeText, sentimentColor(0.39))
}

func TestRenderSummary(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	st := research.Study{
		Product: productFixture(),
		Interviews: []research.Interview{
			completedInterview("Julia Schneider", 0.8, "💰 Kosten"),
			completedInterview("Werner Hoffmann", 0.3),
		},
	}
	st.Summarize()

	var buf bytes.Buffer
	renderSummary(&buf, st)

	out := buf.String()
	assert.Contains(t, out, "Research summary: zero360 Testprodukt")
	assert.Contains(t, out, "Interviews:      2")
	assert.Contains(t, out, "Avg sentiment:   55.0%")
	assert.Contains(t, out, "1 positive")
	assert.Contains(t, out, "1 negative")
	assert.Contains(t, out, "💰 Kosten")
	assert.Contains(t, out, "Julia Schneider (40, Testerin): sentiment 80%, intent 80%")
}

func TestRenderSummarySkipsEmptyStudy(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, research.Study{})
	assert.Empty(t, buf.String())
}

func TestWriteExports(t *testing.T) {
	dir := t.TempDir()
	st := research.Study{
		Product:    productFixture(),
		Interviews: []research.Interview{completedInterview("Julia Schneider", 0.8)},
		CreatedAt:  time.Now(),
	}
	st.Summarize()

	t.Run("all formats", func(t *testing.T) {
		written, err := writeExports(st, dir, map[string]bool{"json": true, "csv": true, "report": true}, "20250314_093000")
		require.NoError(t, err)
		require.Len(t, written, 3)

		data, err := os.ReadFile(filepath.Join(dir, "autonomous_research_20250314_093000.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "\"research_session\"")

		csvData, err := os.ReadFile(filepath.Join(dir, "research_summary_20250314_093000.csv"))
		require.NoError(t, err)
		assert.Contains(t, string(csvData), "Interview_ID,")

		report, err := os.ReadFile(filepath.Join(dir, "research_report_20250314_093000.md"))
		require.NoError(t, err)
		assert.Contains(t, string(report), "# Autonomous User Research Report")
	})

	t.Run("subset", func(t *testing.T) {
		written, err := writeExports(st, t.TempDir(), map[string]bool{"csv": true}, "20250314_100000")
		require.NoError(t, err)
		require.Len(t, written, 1)
		assert.Contains(t, written[0], "research_summary_20250314_100000.csv")
	})
}

func TestNewRunLogger(t *testing.T) {
	t.Run("quiet mode logs to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "run.log")

		log, closeLog, err := newRunLogger(false, path)
		require.NoError(t, err)
		log.Info("test entry", "key", "value")
		closeLog()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "test entry")
	})

	t.Run("verbose mode needs no file", func(t *testing.T) {
		log, closeLog, err := newRunLogger(true, "")
		require.NoError(t, err)
		assert.NotNil(t, log)
		closeLog()
	})
}

func TestParseIntFallback(t *testing.T) {
	assert.Equal(t, 7, parseInt("7", 5))
	assert.Equal(t, 5, parseInt("", 5))
	assert.Equal(t, 5, parseInt("sieben", 5))
}

func TestModelOptionsFollowProvider(t *testing.T) {
	claude := modelOptions("claude")
	require.Len(t, claude, 2)
	assert.Equal(t, "haiku", claude[0].value)

	gemini := modelOptions("gemini")
	require.Len(t, gemini, 3)
	assert.Equal(t, "gemini-flash", gemini[0].value)

	demo := modelOptions("demo")
	require.Len(t, demo, 1)
	assert.Empty(t, demo[0].value)

	assert.Equal(t, "haiku", defaultModel("claude"))
	assert.Equal(t, "nova-lite", defaultModel("nova"))
	assert.Empty(t, defaultModel("demo"))
}

func keyMsg(key rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}}
}

func TestWizardProviderChangeSwapsModels(t *testing.T) {
	saveFlags(t)
	m := initialTUIModel()

	// Move to the provider row and open the picker.
	m.cursor = idxProvider
	next, _ := m.updateMenu(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(tuiModel)
	require.Equal(t, stateEditing, m.state)

	// Pick the last option (demo).
	m.items[idxProvider].cursor = len(m.items[idxProvider].options) - 1
	next, _ = m.updateEditing(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(tuiModel)

	assert.Equal(t, "demo", m.items[idxProvider].value)
	assert.Empty(t, m.items[idxModel].value)
	require.Len(t, m.items[idxModel].options, 1)
	assert.Equal(t, "Canned replies (no model)", m.items[idxModel].options[0].label)
}

func TestWizardPersonaPickerClearsSegment(t *testing.T) {
	saveFlags(t)
	m := initialTUIModel()
	m.items[idxSegment].value = "Growing Families"

	m.cursor = idxPersonas
	next, _ := m.updateMenu(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(tuiModel)
	require.Equal(t, statePersonaPicker, m.state)

	// Toggle the first persona and commit.
	next, _ = m.updatePersonaPicker(keyMsg('x'))
	m = next.(tuiModel)
	next, _ = m.updatePersonaPicker(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(tuiModel)

	assert.Equal(t, persona.Examples()[0].Name, m.items[idxPersonas].value)
	assert.Empty(t, m.items[idxSegment].value)
	assert.Equal(t, stateMenu, m.state)
}

func TestWizardQuitKeyCancels(t *testing.T) {
	saveFlags(t)
	m := initialTUIModel()

	next, _ := m.updateMenu(keyMsg('q'))
	m = next.(tuiModel)

	assert.True(t, m.cancelled)
}

func TestWizardStartValidatesProduct(t *testing.T) {
	saveFlags(t)
	m := initialTUIModel()
	m.items[idxProduct].value = ""
	m.cursor = m.startIdx()

	next, _ := m.updateMenu(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(tuiModel)

	assert.False(t, m.confirmed)
	require.Error(t, m.err)
}
