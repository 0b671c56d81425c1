package service

import (
	"context"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
)

// SpeechSynthesizer turns text into MP3 audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}

// AssetProber checks for pre-recorded audio files.
type AssetProber interface {
	AssetExists(path string) bool
}

// SessionStore keeps quiz state per session.
type SessionStore interface {
	Get(sessionID string) entities.QuizState
	Update(sessionID string, fn func(entities.QuizState) entities.QuizState) entities.QuizState
}
