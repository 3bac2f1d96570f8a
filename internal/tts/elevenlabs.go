package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	elevenLabsDefaultInterviewer = "JBFqnCBsd6RMkjVDRZzb" // George
	elevenLabsDefaultPersona     = "EXAVITQu4vr4xnSDxMaL" // Sarah

	elevenLabsBaseURL      = "https://api.elevenlabs.io/v1/text-to-speech"
	elevenLabsModelID      = "eleven_flash_v2_5"
	elevenLabsOutputFormat = "mp3_44100_128"
)

type elevenLabsRequest struct {
	Text          string                 `json:"text"`
	ModelID       string                 `json:"model_id"`
	VoiceSettings *elevenLabsVoiceParams `json:"voice_settings,omitempty"`
}

type elevenLabsVoiceParams struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
	Speed           float64 `json:"speed"`
}

// elevenLabsSpeechParams tunes delivery for a conversational interview
// register rather than narration.
var elevenLabsSpeechParams = elevenLabsVoiceParams{
	Stability:       0.5,
	SimilarityBoost: 0.75,
	UseSpeakerBoost: true,
	Speed:           1.0,
}

// ElevenLabsProvider implements Provider using the ElevenLabs TTS API.
// The flash v2.5 model is multilingual, so the stock voices speak the
// German interview text natively.
type ElevenLabsProvider struct {
	voices     VoiceMap
	apiKey     string
	httpClient *http.Client
}

func elevenLabsStockVoices() VoiceMap {
	return VoiceMap{
		Interviewer: Voice{ID: elevenLabsDefaultInterviewer, Name: "George"},
		Persona:     Voice{ID: elevenLabsDefaultPersona, Name: "Sarah"},
	}
}

func NewElevenLabsProvider(voiceInterviewer, voicePersona string) *ElevenLabsProvider {
	p := &ElevenLabsProvider{
		voices:     elevenLabsStockVoices(),
		apiKey:     os.Getenv("ELEVENLABS_API_KEY"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	if voiceInterviewer != "" {
		p.voices.Interviewer.ID = voiceInterviewer
	}
	if voicePersona != "" {
		p.voices.Persona.ID = voicePersona
	}
	return p
}

func (p *ElevenLabsProvider) Name() string { return "elevenlabs" }

func (p *ElevenLabsProvider) Voices() VoiceMap { return p.voices }

func (p *ElevenLabsProvider) DefaultVoices() VoiceMap { return elevenLabsStockVoices() }

func (p *ElevenLabsProvider) Synthesize(ctx context.Context, text string, voice Voice) (AudioResult, error) {
	payload, err := json.Marshal(elevenLabsRequest{
		Text:          text,
		ModelID:       elevenLabsModelID,
		VoiceSettings: &elevenLabsSpeechParams,
	})
	if err != nil {
		return AudioResult{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?output_format=%s", elevenLabsBaseURL, voice.ID, elevenLabsOutputFormat)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return AudioResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpClient.Do(req)
	if err != nil {
		return AudioResult{}, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	// The body is the MP3 on success and the error payload otherwise,
	// so read it once before branching on status.
	data, readErr := io.ReadAll(res.Body)
	switch {
	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError:
		return AudioResult{}, &RetryableError{
			StatusCode: res.StatusCode,
			Body:       string(data),
			RetryAfter: retryAfterHint(res.Header),
		}
	case res.StatusCode != http.StatusOK:
		return AudioResult{}, fmt.Errorf("ElevenLabs API error (status %d): %s", res.StatusCode, string(data))
	case readErr != nil:
		return AudioResult{}, fmt.Errorf("read response: %w", readErr)
	}

	return AudioResult{Data: data, Format: FormatMP3}, nil
}

func (p *ElevenLabsProvider) Close() error { return nil }

func elevenLabsAvailableVoices() []VoiceInfo {
	return []VoiceInfo{
		{ID: "JBFqnCBsd6RMkjVDRZzb", Name: "George", Gender: "male", Description: "Warm male, clear and authoritative", DefaultFor: "Interviewer"},
		{ID: "EXAVITQu4vr4xnSDxMaL", Name: "Sarah", Gender: "female", Description: "Soft female, friendly and engaging", DefaultFor: "Persona"},
		{ID: "pNInz6obpgDQGcFmaJgB", Name: "Adam", Gender: "male", Description: "Deep male, confident narrator"},
		{ID: "ErXwobaYiN019PkySvjV", Name: "Antoni", Gender: "male", Description: "Young male, conversational"},
		{ID: "MF3mGyEYCl7XYWbV9V6O", Name: "Elli", Gender: "female", Description: "Young female, bright and expressive"},
		{ID: "TxGEqnHWrfWFTfGW9XjX", Name: "Josh", Gender: "male", Description: "Young male, deep and smooth"},
		{ID: "onwK4e9ZLuTAKqWW03F9", Name: "Daniel", Gender: "male", Description: "Male, authoritative news-anchor tone"},
		{ID: "XB0fDUnXU5powFXDhCwa", Name: "Charlotte", Gender: "female", Description: "Female, warm and natural"},
		{ID: "pFZP5JQG7iQjIQuC4Bku", Name: "Lily", Gender: "female", Description: "Female, warm storyteller"},
	}
}
