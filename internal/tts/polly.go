package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"github.com/zero360/researchlab/internal/config"
)

const (
	pollyDefaultInterviewer = "Daniel"
	pollyDefaultPersona     = "Vicki"
)

// pollyVoiceLang maps voice IDs to their language codes.
var pollyVoiceLang = map[string]types.LanguageCode{
	"Daniel":  types.LanguageCodeDeDe,
	"Vicki":   types.LanguageCodeDeDe,
	"Marlene": types.LanguageCodeDeDe,
	"Hans":    types.LanguageCodeDeDe,
	"Hannah":  types.LanguageCodeDeAt,
}

// pollyVoiceEngine maps voice IDs to the newest engine each supports.
// Marlene and Hans never got a neural build; Hannah is neural-only.
var pollyVoiceEngine = map[string]types.Engine{
	"Daniel":  types.EngineGenerative,
	"Vicki":   types.EngineGenerative,
	"Hannah":  types.EngineNeural,
	"Marlene": types.EngineStandard,
	"Hans":    types.EngineStandard,
}

// PollyProvider implements Provider using AWS Polly with German voices.
type PollyProvider struct {
	voices VoiceMap
	client *polly.Client
}

func NewPollyProvider(voiceInterviewer, voicePersona string) (*PollyProvider, error) {
	interviewer := pollyDefaultInterviewer
	persona := pollyDefaultPersona
	if voiceInterviewer != "" {
		interviewer = voiceInterviewer
	}
	if voicePersona != "" {
		persona = voicePersona
	}

	awsCfg, err := config.LoadAWS(context.Background(), "")
	if err != nil {
		return nil, fmt.Errorf("load AWS config for Polly: %w", err)
	}

	return &PollyProvider{
		voices: VoiceMap{
			Interviewer: Voice{ID: interviewer, Name: interviewer},
			Persona:     Voice{ID: persona, Name: persona},
		},
		client: polly.NewFromConfig(awsCfg),
	}, nil
}

func (p *PollyProvider) Name() string { return "polly" }

func (p *PollyProvider) Voices() VoiceMap { return p.voices }

func (p *PollyProvider) DefaultVoices() VoiceMap {
	return VoiceMap{
		Interviewer: Voice{ID: pollyDefaultInterviewer, Name: pollyDefaultInterviewer},
		Persona:     Voice{ID: pollyDefaultPersona, Name: pollyDefaultPersona},
	}
}

func (p *PollyProvider) Synthesize(ctx context.Context, text string, voice Voice) (AudioResult, error) {
	lang, ok := pollyVoiceLang[voice.ID]
	if !ok {
		lang = types.LanguageCodeDeDe
	}
	engine, ok := pollyVoiceEngine[voice.ID]
	if !ok {
		engine = types.EngineGenerative
	}

	input := &polly.SynthesizeSpeechInput{
		Engine:       engine,
		OutputFormat: types.OutputFormatMp3,
		SampleRate:   strPtr("24000"),
		Text:         &text,
		TextType:     types.TextTypeText,
		VoiceId:      types.VoiceId(voice.ID),
		LanguageCode: lang,
	}

	resp, err := p.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return AudioResult{}, fmt.Errorf("Polly synthesize: %w", err)
	}
	defer resp.AudioStream.Close()

	data, err := io.ReadAll(resp.AudioStream)
	if err != nil {
		return AudioResult{}, fmt.Errorf("Polly read audio: %w", err)
	}

	return AudioResult{Data: data, Format: FormatMP3}, nil
}

func (p *PollyProvider) Close() error { return nil }

func strPtr(s string) *string { return &s }

func pollyAvailableVoices() []VoiceInfo {
	return []VoiceInfo{
		{ID: "Daniel", Name: "Daniel", Gender: "male", Description: "de-DE, Generative", DefaultFor: "Interviewer"},
		{ID: "Vicki", Name: "Vicki", Gender: "female", Description: "de-DE, Generative", DefaultFor: "Persona"},
		{ID: "Hannah", Name: "Hannah", Gender: "female", Description: "de-AT, Neural"},
		{ID: "Marlene", Name: "Marlene", Gender: "female", Description: "de-DE, Standard"},
		{ID: "Hans", Name: "Hans", Gender: "male", Description: "de-DE, Standard"},
	}
}
