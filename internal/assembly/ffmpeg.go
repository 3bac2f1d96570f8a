// Package assembly stitches per-turn interview audio into a single
// listenable recording with the ffmpeg CLI.
package assembly

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Output settings shared by every ffmpeg invocation.
const (
	audioBitrate    = "192k"
	audioSampleRate = "44100"
	audioChannels   = "2"
	audioCodec      = "libmp3lame"
	audioQuality    = "0" // LAME quality, 0 is best
	audioResampler  = "aresample=resampler=soxr"

	// turnGap is the pause in seconds inserted between interview turns.
	turnGap = "0.35"
)

// Stitcher merges a sequence of turn recordings into one audio file.
type Stitcher interface {
	Stitch(ctx context.Context, turns []string, workDir, output string) error
}

// FFmpegStitcher shells out to ffmpeg, which must be on PATH.
type FFmpegStitcher struct{}

func NewFFmpegStitcher() *FFmpegStitcher {
	return &FFmpegStitcher{}
}

// Stitch concatenates the turn files into output with a short pause
// between turns. Raw PCM turns (Vertex synthesis output) are converted
// to MP3 first. Scratch files go to workDir.
func (s *FFmpegStitcher) Stitch(ctx context.Context, turns []string, workDir, output string) error {
	if len(turns) == 0 {
		return fmt.Errorf("no audio turns to stitch")
	}

	prepared := make([]string, 0, len(turns))
	for i, turn := range turns {
		format := formatByExt(turn)
		if format == "mp3" {
			prepared = append(prepared, turn)
			continue
		}
		converted := filepath.Join(workDir, fmt.Sprintf("turn_%03d.mp3", i))
		if err := convertToMP3(ctx, turn, format, converted); err != nil {
			return fmt.Errorf("convert turn %s: %w", filepath.Base(turn), err)
		}
		prepared = append(prepared, converted)
	}

	gapPath := filepath.Join(workDir, "gap.mp3")
	if err := generateSilence(ctx, gapPath); err != nil {
		return fmt.Errorf("generate gap: %w", err)
	}

	listPath := filepath.Join(workDir, "concat.txt")
	if err := writeConcatList(prepared, gapPath, listPath); err != nil {
		return err
	}

	return runConcat(ctx, listPath, output)
}

// formatByExt maps a turn file's extension to its ffmpeg input format.
func formatByExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pcm":
		return "pcm"
	case ".wav":
		return "wav"
	default:
		return "mp3"
	}
}

func generateSilence(ctx context.Context, output string) error {
	return runFFmpeg(ctx,
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%s:cl=stereo", audioSampleRate),
		"-t", turnGap,
		"-c:a", audioCodec,
		"-b:a", audioBitrate,
		"-y",
		output,
	)
}

// writeConcatList writes the ffmpeg concat demuxer script: turns
// separated by the gap file, no gap after the last turn.
func writeConcatList(turns []string, gapPath, listPath string) error {
	var sb strings.Builder
	for i, turn := range turns {
		fmt.Fprintf(&sb, "file '%s'\n", turn)
		if i < len(turns)-1 {
			fmt.Fprintf(&sb, "file '%s'\n", gapPath)
		}
	}
	if err := os.WriteFile(listPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

func convertToMP3(ctx context.Context, input, format, output string) error {
	args, err := convertArgs(input, format, output)
	if err != nil {
		return err
	}
	return runFFmpeg(ctx, args...)
}

// convertArgs builds the ffmpeg arguments for one turn conversion.
// Raw PCM is what Vertex returns: 24kHz 16-bit signed little-endian
// mono, which ffmpeg cannot detect without being told.
func convertArgs(input, format, output string) ([]string, error) {
	switch format {
	case "pcm":
		return []string{
			"-f", "s16le",
			"-ar", "24000",
			"-ac", "1",
			"-i", input,
			"-af", audioResampler,
			"-c:a", audioCodec,
			"-b:a", audioBitrate,
			"-q:a", audioQuality,
			"-ar", audioSampleRate,
			"-ac", audioChannels,
			"-y",
			output,
		}, nil
	case "wav":
		return []string{
			"-i", input,
			"-af", audioResampler,
			"-c:a", audioCodec,
			"-b:a", audioBitrate,
			"-q:a", audioQuality,
			"-ar", audioSampleRate,
			"-ac", audioChannels,
			"-y",
			output,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported audio format %q", format)
	}
}

func runConcat(ctx context.Context, listPath, output string) error {
	err := runFFmpeg(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-af", audioResampler,
		"-c:a", audioCodec,
		"-b:a", audioBitrate,
		"-q:a", audioQuality,
		"-ar", audioSampleRate,
		"-ac", audioChannels,
		"-y",
		output,
	)
	if err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}

	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("stitched file not created: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("stitched file is empty")
	}
	return nil
}

func runFFmpeg(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w\n%s", err, stderr.String())
	}
	return nil
}
