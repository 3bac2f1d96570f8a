package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zero360/researchlab/internal/config"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/tts"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "researchlab",
	Short: "Simulate user research interviews with AI personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		flagTUI = true
		return runResearch(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("researchlab %s\n", Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a batch of autonomous persona interviews for a product",
	RunE:  runResearch,
}

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "List the demographic segments personas can be drawn from",
	RunE:  runSegments,
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the built-in product catalog",
	RunE:  runProducts,
}

var listVoicesCmd = &cobra.Command{
	Use:   "list-voices",
	Short: "List available voices for all TTS providers",
	RunE:  runListVoices,
}

var (
	flagProduct          string
	flagProductBrief     string
	flagDescription      string
	flagValueProp        string
	flagTargetMarket     string
	flagInterviews       int
	flagQuestions        int
	flagSegment          string
	flagPersonas         string
	flagProvider         string
	flagModel            string
	flagOutput           string
	flagFormats          string
	flagVerbose          bool
	flagTUI              bool
	flagTTS              string
	flagVoiceInterviewer string
	flagVoicePersona     string
	flagAnthropicAPIKey  string
	flagGeminiAPIKey     string
	flagElevenLabsAPIKey string
)

// modelProviders maps every model alias to the provider that serves
// it, so --model and --provider can be cross-checked.
var modelProviders = map[string]string{
	"haiku":        "claude",
	"sonnet":       "claude",
	"gemini-flash": "gemini",
	"gemini-lite":  "gemini",
	"gemini-pro":   "gemini",
	"nova-lite":    "nova",
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(listVoicesCmd)
	runCmd.Flags().StringVarP(&flagProduct, "product", "p", "", "Product to research: a catalog name, or a custom name combined with --description")
	runCmd.Flags().StringVar(&flagProductBrief, "product-brief", "", "Load the product from a brief: a text/markdown file, a PDF one-pager, or a URL")
	runCmd.Flags().StringVar(&flagDescription, "description", "", "Product description (overrides the catalog entry)")
	runCmd.Flags().StringVar(&flagValueProp, "value-prop", "", "Product value proposition (overrides the catalog entry)")
	runCmd.Flags().StringVar(&flagTargetMarket, "target-market", "", "Product target market (overrides the catalog entry)")
	runCmd.Flags().IntVarP(&flagInterviews, "interviews", "n", 5, "Number of interviews to run (1-10)")
	runCmd.Flags().IntVarP(&flagQuestions, "questions", "q", 8, "Questions per interview (5-15)")
	runCmd.Flags().StringVarP(&flagSegment, "segment", "s", "", "Draw personas from a demographic segment (see `researchlab segments`)")
	runCmd.Flags().StringVarP(&flagPersonas, "personas", "P", "", "Interview specific example personas (comma-separated names)")
	runCmd.Flags().StringVar(&flagProvider, "provider", "claude", "Dialogue provider: claude, gemini, nova, or demo")
	runCmd.Flags().StringVarP(&flagModel, "model", "m", "", "Model alias: haiku, sonnet, gemini-flash, gemini-lite, gemini-pro, nova-lite (default per provider)")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "research-output", "Directory for exported results")
	runCmd.Flags().StringVarP(&flagFormats, "formats", "F", "json,csv,report", "Export formats (comma-separated): json, csv, report")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable detailed logging")
	runCmd.Flags().BoolVarP(&flagTUI, "tui", "t", false, "Interactive setup wizard for research options")
	runCmd.Flags().StringVarP(&flagTTS, "tts", "T", "", "Voice the interviews with a TTS provider: google, polly, elevenlabs, or gemini-vertex")
	runCmd.Flags().StringVar(&flagVoiceInterviewer, "voice-interviewer", "", "Voice ID for the interviewer (provider-specific)")
	runCmd.Flags().StringVar(&flagVoicePersona, "voice-persona", "", "Voice ID for the persona (provider-specific)")
	runCmd.Flags().StringVar(&flagAnthropicAPIKey, "anthropic-api-key", "", "Anthropic API key (overrides ANTHROPIC_API_KEY env var)")
	runCmd.Flags().StringVar(&flagGeminiAPIKey, "gemini-api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	runCmd.Flags().StringVar(&flagElevenLabsAPIKey, "elevenlabs-api-key", "", "ElevenLabs API key (overrides ELEVENLABS_API_KEY env var)")
}

func Execute() error {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// applyKeyFlags copies key flags into the environment so the dialogue
// and TTS clients, which read env vars, pick them up.
func applyKeyFlags() {
	if flagAnthropicAPIKey != "" {
		os.Setenv("ANTHROPIC_API_KEY", flagAnthropicAPIKey)
	}
	if flagGeminiAPIKey != "" {
		os.Setenv("GEMINI_API_KEY", flagGeminiAPIKey)
	}
	if flagElevenLabsAPIKey != "" {
		os.Setenv("ELEVENLABS_API_KEY", flagElevenLabsAPIKey)
	}
}

func checkAPIKeys(provider, ttsName string) error {
	needed := map[string]bool{}

	// Check if a key is available via flag or env var
	hasKey := func(envVar, flagVal string) bool {
		return flagVal != "" || os.Getenv(envVar) != ""
	}

	switch provider {
	case "claude":
		if !hasKey("ANTHROPIC_API_KEY", flagAnthropicAPIKey) {
			needed["ANTHROPIC_API_KEY"] = true
		}
	case "gemini":
		if !hasKey("GEMINI_API_KEY", flagGeminiAPIKey) {
			needed["GEMINI_API_KEY"] = true
		}
	case "nova", "demo":
		// Nova resolves credentials through the AWS default chain,
		// demo needs nothing.
	}

	if ttsName == "elevenlabs" && !hasKey("ELEVENLABS_API_KEY", flagElevenLabsAPIKey) {
		needed["ELEVENLABS_API_KEY"] = true
	}

	if len(needed) > 0 {
		missing := make([]string, 0, len(needed))
		for k := range needed {
			missing = append(missing, k)
		}
		sort.Strings(missing)
		return fmt.Errorf("missing required environment variable(s): %s\nYou can pass keys via --anthropic-api-key, --gemini-api-key, --elevenlabs-api-key, or try --provider demo for canned offline interviews", strings.Join(missing, ", "))
	}
	return nil
}

func runSegments(cmd *cobra.Command, args []string) error {
	fmt.Println("\nDemographic segments:")

	for _, seg := range persona.Segments() {
		fmt.Printf("\n  %s (%d personas)\n", seg.Name, seg.PersonaCount)
		fmt.Printf("  %s\n", strings.Repeat("─", 50))
		fmt.Printf("  %s\n", seg.Description)
		fmt.Printf("  Age %s | %s | %s\n", seg.AgeRange, seg.IncomeLevel, seg.Location)
		fmt.Printf("  Motivations: %s\n", strings.Join(seg.KeyMotivations, ", "))
	}
	fmt.Println()
	return nil
}

func runProducts(cmd *cobra.Command, args []string) error {
	fmt.Println("\nProduct catalog:")

	for _, p := range product.Catalog() {
		fmt.Printf("\n  %s (%s, %s)\n", p.Name, p.Category, p.PriceRange)
		fmt.Printf("  %s\n", strings.Repeat("─", 50))
		fmt.Printf("  %s\n", p.Description)
		fmt.Printf("  Target: %s\n", p.TargetMarket)
	}
	fmt.Println()
	return nil
}

func runListVoices(cmd *cobra.Command, args []string) error {
	providers := []struct {
		name  string
		label string
	}{
		{"google", "GOOGLE CLOUD TTS"},
		{"polly", "AMAZON POLLY"},
		{"elevenlabs", "ELEVENLABS"},
		{"gemini-vertex", "GEMINI (Vertex AI)"},
	}

	fmt.Println("\nAvailable voices:")

	for _, p := range providers {
		voices, err := tts.AvailableVoices(p.name)
		if err != nil {
			return err
		}

		fmt.Printf("\n  %s\n", p.label)
		fmt.Printf("  %s\n", strings.Repeat("─", 50))
		fmt.Printf("  %-28s %-12s %-8s %s\n", "ID", "NAME", "GENDER", "DESCRIPTION")
		for _, v := range voices {
			def := ""
			if v.DefaultFor != "" {
				def = fmt.Sprintf(" (default %s)", v.DefaultFor)
			}
			fmt.Printf("  %-28s %-12s %-8s %s%s\n", v.ID, v.Name, v.Gender, v.Description, def)
		}
	}
	fmt.Println()
	return nil
}
