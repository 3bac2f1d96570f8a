package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zero360/researchlab/internal/assembly"
	"github.com/zero360/researchlab/internal/brief"
	"github.com/zero360/researchlab/internal/export"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/progress"
	"github.com/zero360/researchlab/internal/research"
	"github.com/zero360/researchlab/internal/speech"
	"github.com/zero360/researchlab/internal/tts"
)

// pollInterval is how often the CLI checks a running study for a
// terminal status.
const pollInterval = 150 * time.Millisecond

func runResearch(cmd *cobra.Command, args []string) error {
	// Run interactive setup if requested
	if flagTUI {
		if err := runInteractiveSetup(); err != nil {
			return err
		}
	}

	applyKeyFlags()

	// Validate flags
	prod, err := resolveProduct(cmd.Context())
	if err != nil {
		return err
	}

	if flagInterviews < 1 || flagInterviews > 10 {
		return fmt.Errorf("invalid interview count %d: must be between 1 and 10", flagInterviews)
	}
	if flagQuestions < 5 || flagQuestions > 15 {
		return fmt.Errorf("invalid question count %d: must be between 5 and 15", flagQuestions)
	}

	// Validate dialogue provider
	validProviders := map[string]bool{"claude": true, "gemini": true, "nova": true, "demo": true}
	if !validProviders[flagProvider] {
		return fmt.Errorf("invalid provider %q: must be claude, gemini, nova, or demo", flagProvider)
	}

	// Validate model and make sure it matches the provider
	if flagModel != "" {
		owner, ok := modelProviders[flagModel]
		if !ok {
			return fmt.Errorf("invalid model %q: must be haiku, sonnet, gemini-flash, gemini-lite, gemini-pro, or nova-lite", flagModel)
		}
		if owner != flagProvider {
			return fmt.Errorf("model %q belongs to provider %q (got --provider %s)", flagModel, owner, flagProvider)
		}
	}

	// Validate persona sources
	if flagSegment != "" && flagPersonas != "" {
		return fmt.Errorf("--segment and --personas are mutually exclusive")
	}
	if flagSegment != "" {
		if _, ok := persona.SegmentByName(flagSegment); !ok {
			return fmt.Errorf("unknown segment %q: run `researchlab segments` to list them", flagSegment)
		}
	}
	var chosen []persona.Persona
	if flagPersonas != "" {
		chosen, err = resolvePersonas(flagPersonas)
		if err != nil {
			return err
		}
	}

	formats, err := parseFormats(flagFormats)
	if err != nil {
		return err
	}

	// Validate TTS provider name (empty means no audio)
	if flagTTS != "" {
		validTTS := map[string]bool{"google": true, "polly": true, "elevenlabs": true, "gemini-vertex": true}
		if !validTTS[flagTTS] {
			return fmt.Errorf("invalid TTS provider %q: must be google, polly, elevenlabs, or gemini-vertex", flagTTS)
		}
	}

	if err := checkAPIKeys(flagProvider, flagTTS); err != nil {
		return err
	}

	stamp := time.Now().Format("20060102_150405")

	logPath := ""
	if !flagVerbose {
		logPath = filepath.Join(flagOutput, "logs", fmt.Sprintf("research_%s.log", stamp))
	}
	log, closeLog, err := newRunLogger(flagVerbose, logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	req := research.Request{
		Product:               prod,
		NumInterviews:         flagInterviews,
		QuestionsPerInterview: flagQuestions,
		Personas:              chosen,
		Segment:               flagSegment,
		Provider:              flagProvider,
		Model:                 flagModel,
	}

	// Wire up progress bar when not in verbose mode
	if !flagVerbose {
		r := progress.NewBarRenderer(os.Stdout)
		defer r.Finish()
		req.OnProgress = func(e progress.Event) {
			e.LogFile = logPath
			r.Handle(e)
		}
	}

	m := research.NewManager(1, log, cmd.Context())
	id, err := m.StartStudy(cmd.Context(), req)
	if err != nil {
		return err
	}

	st := waitForStudy(cmd.Context(), m, id)

	switch st.Status {
	case research.StatusFailed:
		return fmt.Errorf("study failed: %s", st.Error)
	case research.StatusCanceled:
		fmt.Println("\nStudy canceled; keeping the interviews that finished.")
	}

	if len(st.CompletedInterviews()) == 0 {
		fmt.Println("No interviews completed, nothing to export.")
		return nil
	}

	written, err := writeExports(st, flagOutput, formats, stamp)
	if err != nil {
		return err
	}

	if flagTTS != "" && st.Status == research.StatusCompleted {
		audioDir, err := saveStudyAudio(cmd.Context(), st, flagOutput, log)
		if err != nil {
			log.Warn("Audio rendering failed", "error", err)
		} else {
			written = append(written, audioDir)
		}
	}

	renderSummary(os.Stdout, st)

	fmt.Println("Files written:")
	for _, path := range written {
		fmt.Printf("  %s\n", path)
	}
	return nil
}

// resolveProduct builds the product under test from the flags. A name
// matching the catalog pulls the full entry; anything else becomes a
// custom product. A brief replaces the catalog lookup entirely: it
// already defines the product. Field flags override either way.
func resolveProduct(ctx context.Context) (product.Product, error) {
	var prod product.Product
	switch {
	case flagProductBrief != "":
		b, err := brief.Load(ctx, flagProductBrief)
		if err != nil {
			return product.Product{}, fmt.Errorf("load product brief: %w", err)
		}
		prod = b.Product()
		if flagProduct != "" {
			prod.Name = flagProduct
		}
	case flagProduct == "":
		return product.Product{}, fmt.Errorf("--product (-p) is required: a catalog name (see `researchlab products`), a custom name with --description, or --product-brief")
	default:
		var ok bool
		prod, ok = product.Find(flagProduct)
		if !ok {
			prod = product.Product{Name: flagProduct}
		}
	}
	if flagDescription != "" {
		prod.Description = flagDescription
	}
	if flagValueProp != "" {
		prod.ValueProp = flagValueProp
	}
	if flagTargetMarket != "" {
		prod.TargetMarket = flagTargetMarket
	}

	if err := prod.Validate(); err != nil {
		return product.Product{}, err
	}
	return prod, nil
}

// resolvePersonas matches comma-separated names against the example
// personas. Full names and first names both work, case-insensitively.
func resolvePersonas(list string) ([]persona.Persona, error) {
	examples := persona.Examples()

	var out []persona.Persona
	for _, raw := range strings.Split(list, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		found := false
		for _, p := range examples {
			first, _, _ := strings.Cut(p.Name, " ")
			if strings.EqualFold(p.Name, name) || strings.EqualFold(first, name) {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			names := make([]string, len(examples))
			for i, p := range examples {
				names[i] = p.Name
			}
			return nil, fmt.Errorf("unknown persona %q: available personas are %s", name, strings.Join(names, ", "))
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("--personas given but no names could be parsed")
	}
	return out, nil
}

func parseFormats(list string) (map[string]bool, error) {
	valid := map[string]bool{"json": true, "csv": true, "report": true}

	out := map[string]bool{}
	for _, raw := range strings.Split(list, ",") {
		f := strings.TrimSpace(raw)
		if f == "" {
			continue
		}
		if !valid[f] {
			return nil, fmt.Errorf("invalid export format %q: must be json, csv, or report", f)
		}
		out[f] = true
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no export formats selected")
	}
	return out, nil
}

// newRunLogger routes logs away from the progress bar: verbose logs
// debug to stderr, otherwise logs go to a file under the output dir.
func newRunLogger(verbose bool, logPath string) (*slog.Logger, func(), error) {
	if verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		return slog.New(h), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.Create(logPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }, nil
}

// waitForStudy polls until the study reaches a terminal status. On
// Ctrl-C the study is canceled and polling continues so the partial
// results land in the returned snapshot.
func waitForStudy(ctx context.Context, m *research.Manager, id string) research.Study {
	canceled := false
	for {
		st, ok := m.GetStudy(id)
		if !ok {
			return research.Study{}
		}
		switch st.Status {
		case research.StatusCompleted, research.StatusFailed, research.StatusCanceled:
			return st
		}

		if ctx.Err() != nil && !canceled {
			m.CancelStudy(id)
			canceled = true
		}
		time.Sleep(pollInterval)
	}
}

// writeExports renders the study into the selected formats under dir.
func writeExports(st research.Study, dir string, formats map[string]bool, stamp string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	bundle := export.FromStudy(st)

	var written []string
	writeTo := func(name string, render func(f *os.File) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := render(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if formats["json"] {
		name := fmt.Sprintf("autonomous_research_%s.json", stamp)
		if err := writeTo(name, func(f *os.File) error { return export.WriteJSON(f, bundle) }); err != nil {
			return nil, err
		}
	}
	if formats["csv"] {
		name := fmt.Sprintf("research_summary_%s.csv", stamp)
		if err := writeTo(name, func(f *os.File) error { return export.WriteSummaryCSV(f, bundle) }); err != nil {
			return nil, err
		}
	}
	if formats["report"] {
		name := fmt.Sprintf("research_report_%s.md", stamp)
		if err := writeTo(name, func(f *os.File) error { return export.WriteReport(f, bundle) }); err != nil {
			return nil, err
		}
	}
	return written, nil
}

// saveStudyAudio voices every completed interview turn into audio
// files under <dir>/audio/<interview-id>/ and stitches each interview
// into a single interview.mp3 alongside them. Returns the audio dir.
func saveStudyAudio(ctx context.Context, st research.Study, dir string, log *slog.Logger) (string, error) {
	provider, err := tts.NewProvider(flagTTS, flagVoiceInterviewer, flagVoicePersona)
	if err != nil {
		return "", err
	}
	speaker := speech.NewSpeaker(provider, log)
	defer speaker.Close()

	ext := audioExt(flagTTS)
	audioRoot := filepath.Join(dir, "audio")

	workDir, err := os.MkdirTemp("", "researchlab-audio-*")
	if err != nil {
		return "", fmt.Errorf("create audio work dir: %w", err)
	}
	defer os.RemoveAll(workDir)
	stitcher := assembly.NewFFmpegStitcher()

	for _, iv := range st.CompletedInterviews() {
		ivDir := filepath.Join(audioRoot, iv.ID)
		if err := os.MkdirAll(ivDir, 0o755); err != nil {
			return "", fmt.Errorf("create audio dir: %w", err)
		}

		var turns []string
		for i, turn := range iv.Transcript {
			data := speaker.Say(ctx, turn.Role, turn.Content)
			if data == nil {
				continue
			}
			name := fmt.Sprintf("turn_%02d_%s%s", i+1, turn.Role, ext)
			path := filepath.Join(ivDir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return "", fmt.Errorf("write audio file: %w", err)
			}
			turns = append(turns, path)
		}
		if len(turns) == 0 {
			continue
		}

		// The per-turn files stay on disk either way; the stitched
		// recording is a convenience, not a requirement, and ffmpeg may
		// simply not be installed.
		out := filepath.Join(ivDir, "interview.mp3")
		if err := stitcher.Stitch(ctx, turns, workDir, out); err != nil {
			log.Warn("Stitching interview audio failed, keeping per-turn files", "interview", iv.ID, "error", err)
		}
	}
	return audioRoot, nil
}

// audioExt picks the file extension for a provider's synthesis output.
// Vertex returns raw PCM, every other provider returns MP3.
func audioExt(providerName string) string {
	if providerName == "gemini-vertex" {
		return ".pcm"
	}
	return ".mp3"
}
