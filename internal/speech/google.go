// Package speech handles the voice side of an interview: transcribing
// recorded questions and voicing replies. Both directions degrade to
// text-only operation when a cloud backend is unreachable, so an
// interview never aborts over audio.
package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

const (
	defaultSampleRateHertz = 16000
	defaultLanguageCode    = "de-DE"
)

// German notices returned in place of a transcript. They flow into the
// interview as regular text, so the researcher sees what went wrong.
const (
	transcriptUnavailable = "Audio-Transkription nicht verfügbar - Google Cloud Zugangsdaten fehlen."
	transcriptErrFormat   = "Transkriptionsfehler: %v"
)

// Transcriber converts recorded interviewer audio to German text using
// Google Cloud Speech-to-Text. A nil Transcriber is safe to call and
// reports the unavailable notice.
type Transcriber struct {
	client *speech.Client
	log    *slog.Logger
}

// NewTranscriber creates a Transcriber using Application Default
// Credentials. Callers may treat the error as non-fatal and continue
// with a nil Transcriber for text-only interviews.
func NewTranscriber(ctx context.Context, log *slog.Logger) (*Transcriber, error) {
	if log == nil {
		log = slog.Default()
	}
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create Google Speech client: %w", err)
	}
	return &Transcriber{client: client, log: log}, nil
}

// Transcribe converts LINEAR16 mono audio at 16 kHz to text. Failures
// are folded into the returned string instead of an error.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) string {
	if t == nil || t.client == nil {
		return transcriptUnavailable
	}

	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: defaultSampleRateHertz,
			LanguageCode:    defaultLanguageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		t.log.Warn("speech recognition failed", "error", err)
		return fmt.Sprintf(transcriptErrFormat, err)
	}

	return joinTranscripts(resp)
}

// joinTranscripts concatenates the top alternative of each result.
// Recognize splits long recordings into multiple results.
func joinTranscripts(resp *speechpb.RecognizeResponse) string {
	var parts []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		parts = append(parts, alts[0].GetTranscript())
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Close releases the underlying client.
func (t *Transcriber) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}
