package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/tts"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubProvider struct {
	voices   tts.VoiceMap
	texts    []string
	voiceIDs []string
	replies  []error // error per call, nil means success
	data     []byte
	calls    int
	closed   bool
}

func (s *stubProvider) Name() string                { return "stub" }
func (s *stubProvider) Voices() tts.VoiceMap        { return s.voices }
func (s *stubProvider) DefaultVoices() tts.VoiceMap { return s.voices }
func (s *stubProvider) Close() error                { s.closed = true; return nil }

func (s *stubProvider) Synthesize(_ context.Context, text string, voice tts.Voice) (tts.AudioResult, error) {
	s.calls++
	s.texts = append(s.texts, text)
	s.voiceIDs = append(s.voiceIDs, voice.ID)
	if s.calls <= len(s.replies) && s.replies[s.calls-1] != nil {
		return tts.AudioResult{}, s.replies[s.calls-1]
	}
	return tts.AudioResult{Data: s.data, Format: tts.FormatMP3}, nil
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		voices: tts.VoiceMap{
			Interviewer: tts.Voice{ID: "voice-interviewer"},
			Persona:     tts.Voice{ID: "voice-persona"},
		},
		data: []byte("mp3-bytes"),
	}
}

func TestNilTranscriberReportsUnavailable(t *testing.T) {
	var tr *Transcriber

	got := tr.Transcribe(context.Background(), []byte("riff-data"))

	assert.Equal(t, "Audio-Transkription nicht verfügbar - Google Cloud Zugangsdaten fehlen.", got)
	assert.NoError(t, tr.Close())
}

func TestJoinTranscripts(t *testing.T) {
	tests := []struct {
		name string
		resp *speechpb.RecognizeResponse
		want string
	}{
		{
			name: "joins results in order",
			resp: &speechpb.RecognizeResponse{
				Results: []*speechpb.SpeechRecognitionResult{
					{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "Wie finden Sie"}}},
					{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "das neue Waschbecken?"}}},
				},
			},
			want: "Wie finden Sie das neue Waschbecken?",
		},
		{
			name: "skips results without alternatives",
			resp: &speechpb.RecognizeResponse{
				Results: []*speechpb.SpeechRecognitionResult{
					{},
					{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "Hallo"}}},
				},
			},
			want: "Hallo",
		},
		{
			name: "trims surrounding whitespace",
			resp: &speechpb.RecognizeResponse{
				Results: []*speechpb.SpeechRecognitionResult{
					{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: " Guten Tag "}}},
				},
			},
			want: "Guten Tag",
		},
		{
			name: "empty response",
			resp: &speechpb.RecognizeResponse{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinTranscripts(tt.resp))
		})
	}
}

func TestSpeakerPicksVoiceByRole(t *testing.T) {
	provider := newStubProvider()
	speaker := NewSpeaker(provider, quietLogger())

	audio := speaker.Say(context.Background(), interview.RoleInterviewer, "Wie gefällt Ihnen das?")
	require.Equal(t, []byte("mp3-bytes"), audio)

	audio = speaker.Say(context.Background(), interview.RolePersona, "Sehr gut, danke.")
	require.Equal(t, []byte("mp3-bytes"), audio)

	assert.Equal(t, []string{"voice-interviewer", "voice-persona"}, provider.voiceIDs)
	assert.Equal(t, []string{"Wie gefällt Ihnen das?", "Sehr gut, danke."}, provider.texts)
}

func TestSpeakerCapsLongText(t *testing.T) {
	provider := newStubProvider()
	speaker := NewSpeaker(provider, quietLogger())

	long := strings.Repeat("ä", tts.MaxSynthesisChars+100)
	speaker.Say(context.Background(), interview.RolePersona, long)

	require.Len(t, provider.texts, 1)
	assert.Len(t, []rune(provider.texts[0]), tts.MaxSynthesisChars)
}

func TestSpeakerRetriesTransientErrors(t *testing.T) {
	provider := newStubProvider()
	provider.replies = []error{
		&tts.RetryableError{StatusCode: 429, Body: "slow down", RetryAfter: time.Millisecond},
		nil,
	}
	speaker := NewSpeaker(provider, quietLogger())

	audio := speaker.Say(context.Background(), interview.RolePersona, "Moment bitte.")

	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, 2, provider.calls)
}

func TestSpeakerStaysSilentOnFailure(t *testing.T) {
	provider := newStubProvider()
	provider.replies = []error{errors.New("synthesis rejected")}
	speaker := NewSpeaker(provider, quietLogger())

	audio := speaker.Say(context.Background(), interview.RolePersona, "Hallo")

	assert.Nil(t, audio)
	assert.Equal(t, 1, provider.calls)
}

func TestNilSpeakerIsSilent(t *testing.T) {
	assert.Nil(t, NewSpeaker(nil, quietLogger()))

	var speaker *Speaker
	assert.Nil(t, speaker.Say(context.Background(), interview.RolePersona, "Hallo"))
	assert.NoError(t, speaker.Close())
}

func TestSpeakerCloseReleasesProvider(t *testing.T) {
	provider := newStubProvider()
	speaker := NewSpeaker(provider, quietLogger())

	require.NoError(t, speaker.Close())
	assert.True(t, provider.closed)
}
