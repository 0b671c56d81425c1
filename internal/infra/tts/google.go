// Package tts synthesizes speech for utterances without a recording.
package tts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

var (
	ErrDisabled   = errors.New("speech synthesis disabled")
	ErrEmptyAudio = errors.New("empty audio content")
)

// Config holds Google Cloud Text-to-Speech settings.
type Config struct {
	APIKey          string
	CredentialsFile string
	VoiceName       string
	Timeout         time.Duration
}

// GoogleClient calls the Google Cloud Text-to-Speech REST API.
type GoogleClient struct {
	svc       *texttospeech.Service
	voiceName string
	timeout   time.Duration
}

// NewGoogleClient creates a client. An API key takes precedence over a credentials file;
// with neither, application default credentials are used.
func NewGoogleClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*GoogleClient, error) {
	var clientOpts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := texttospeech.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("new texttospeech service: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GoogleClient{
		svc:       svc,
		voiceName: cfg.VoiceName,
		timeout:   timeout,
	}, nil
}

// Synthesize returns MP3 audio for text spoken in languageCode.
func (c *GoogleClient) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         c.voiceName,
			SsmlGender:   "FEMALE",
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: "MP3"},
	}

	resp, err := c.svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}

	return audio, nil
}

// Disabled is used when no speech backend is configured. Every call fails,
// which callers render as a muted indicator.
type Disabled struct{}

func (Disabled) Synthesize(context.Context, string, string) ([]byte, error) {
	return nil, ErrDisabled
}
