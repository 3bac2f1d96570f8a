package speech

import (
	"context"
	"log/slog"

	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/tts"
)

// Speaker voices interview turns through a TTS provider, retrying
// transient provider errors. A nil Speaker is safe to call and
// produces no audio, which callers treat as "stay silent".
type Speaker struct {
	provider tts.Provider
	log      *slog.Logger
}

// NewSpeaker wraps a provider for interview playback. A nil provider
// yields a nil Speaker.
func NewSpeaker(provider tts.Provider, log *slog.Logger) *Speaker {
	if provider == nil {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}
	return &Speaker{provider: provider, log: log}
}

// Say synthesizes text with the voice assigned to the interview role.
// Text beyond the synthesis cap is cut. Failures are logged and return
// nil audio so playback never blocks an interview.
func (s *Speaker) Say(ctx context.Context, role interview.Role, text string) []byte {
	if s == nil || s.provider == nil {
		return nil
	}

	voice := s.provider.Voices().Persona
	if role == interview.RoleInterviewer {
		voice = s.provider.Voices().Interviewer
	}
	capped := tts.CapText(text)

	var result tts.AudioResult
	err := tts.WithRetry(ctx, func() error {
		var synthErr error
		result, synthErr = s.provider.Synthesize(ctx, capped, voice)
		return synthErr
	})
	if err != nil {
		s.log.Warn("speech synthesis failed",
			"provider", s.provider.Name(),
			"voice", voice.ID,
			"error", err)
		return nil
	}

	return result.Data
}

// Close releases the underlying provider.
func (s *Speaker) Close() error {
	if s == nil || s.provider == nil {
		return nil
	}
	return s.provider.Close()
}
