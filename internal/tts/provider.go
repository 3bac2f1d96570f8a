// Package tts synthesizes speech for interview playback through
// interchangeable cloud providers. All providers emit German audio;
// which voice speaks is decided per interview role.
package tts

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// AudioFormat represents the audio encoding returned by a provider.
type AudioFormat string

const (
	FormatMP3 AudioFormat = "mp3"
	FormatPCM AudioFormat = "pcm" // raw PCM, needs a container before playback
	FormatWAV AudioFormat = "wav"
)

// MaxSynthesisChars caps the text length per synthesis call. Longer
// answers are cut before the provider request.
const MaxSynthesisChars = 4000

// CapText trims text to the synthesis limit without splitting a rune.
func CapText(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxSynthesisChars {
		return text
	}
	return string(runes[:MaxSynthesisChars])
}

// Voice holds a provider-specific voice identifier.
type Voice struct {
	ID   string // Provider-specific voice identifier
	Name string // Human-readable label
}

// VoiceMap maps interview roles to voices.
type VoiceMap struct {
	Interviewer Voice
	Persona     Voice
}

// AudioResult is the output of a synthesis call.
type AudioResult struct {
	Data   []byte
	Format AudioFormat
}

// Provider synthesizes speech from interview turns.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, text string, voice Voice) (AudioResult, error)
	// Voices returns the configured role-to-voice mapping, including any
	// overrides applied at construction.
	Voices() VoiceMap
	DefaultVoices() VoiceMap
	Close() error
}

// VoiceInfo describes an available voice for display in the catalog.
type VoiceInfo struct {
	ID          string
	Name        string
	Gender      string // "male" or "female"
	Description string
	DefaultFor  string // "Interviewer", "Persona", or ""
}

// AvailableVoices returns the voice catalog for the named provider.
func AvailableVoices(providerName string) ([]VoiceInfo, error) {
	switch providerName {
	case "google":
		return googleAvailableVoices(), nil
	case "polly":
		return pollyAvailableVoices(), nil
	case "elevenlabs":
		return elevenLabsAvailableVoices(), nil
	case "gemini-vertex":
		return vertexAvailableVoices(), nil
	default:
		return nil, fmt.Errorf("unknown TTS provider %q", providerName)
	}
}

// Retry constants shared by all providers.
const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 1 * time.Second
	defaultBackoffMulti   = 2
	defaultMaxBackoff     = 10 * time.Second
)

// RetryableError signals that the operation can be retried. RetryAfter
// is non-zero when the server said how long to wait.
type RetryableError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// retryAfterHint reads a Retry-After response header given in whole
// seconds. HTTP-date values are ignored.
func retryAfterHint(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// WithRetry executes fn with exponential backoff on RetryableError. A
// server-supplied Retry-After overrides the computed backoff for that
// attempt.
func WithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		retryable, ok := err.(*RetryableError)
		if !ok {
			return err
		}
		lastErr = err

		if attempt < defaultMaxAttempts {
			wait := backoff
			if retryable.RetryAfter > 0 {
				wait = retryable.RetryAfter
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			backoff *= time.Duration(defaultBackoffMulti)
			if backoff > defaultMaxBackoff {
				backoff = defaultMaxBackoff
			}
		}
	}

	return lastErr
}

// NewProvider creates a TTS provider by name. voiceInterviewer and
// voicePersona are optional provider-specific voice ID overrides.
func NewProvider(name string, voiceInterviewer, voicePersona string) (Provider, error) {
	switch name {
	case "google":
		return NewGoogleProvider(voiceInterviewer, voicePersona)
	case "polly":
		return NewPollyProvider(voiceInterviewer, voicePersona)
	case "elevenlabs":
		return NewElevenLabsProvider(voiceInterviewer, voicePersona), nil
	case "gemini-vertex":
		return NewVertexProvider(voiceInterviewer, voicePersona)
	default:
		return nil, fmt.Errorf("unknown TTS provider %q: choose google, polly, elevenlabs, or gemini-vertex", name)
	}
}
