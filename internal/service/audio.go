package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
)

var (
	ErrMissingAudioAsset = errors.New("missing audio asset")
	ErrSpeechSynthesis   = errors.New("speech synthesis failed")
	ErrInvalidAssetKey   = errors.New("invalid audio asset key")
)

// MissingAssetError reports an asset key with no recording in any supported format.
type MissingAssetError struct {
	Key  string // requested asset key
	Path string // preferred path that was probed first
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("missing audio asset %q (%s)", e.Key, e.Path)
}

func (e *MissingAssetError) Is(target error) bool {
	return target == ErrMissingAudioAsset
}

// assetFormats lists the recording containers in probe order.
var assetFormats = []entities.AudioFormat{entities.FormatM4A, entities.FormatMP3}

// AudioResolver picks a playable source for an utterance.
type AudioResolver struct {
	prober       AssetProber
	synthesizer  SpeechSynthesizer
	dir          string
	languageCode string
	logger       *zap.Logger
}

func NewAudioResolver(
	prober AssetProber,
	synthesizer SpeechSynthesizer,
	dir string,
	languageCode string,
	logger *zap.Logger,
) *AudioResolver {
	return &AudioResolver{
		prober:       prober,
		synthesizer:  synthesizer,
		dir:          dir,
		languageCode: languageCode,
		logger:       logger,
	}
}

// Resolve returns the recording for assetKey, or synthesized speech for text
// when no key is given. Both failure modes are non-fatal: a missing recording
// yields ErrMissingAudioAsset and a failed synthesis yields ErrSpeechSynthesis.
func (r *AudioResolver) Resolve(ctx context.Context, text, assetKey string) (*entities.AudioSource, error) {
	if assetKey != "" {
		return r.probe(assetKey)
	}
	return r.Synthesize(ctx, text)
}

// AssetPath returns the path of the recording for key in the given format.
func (r *AudioResolver) AssetPath(key string, format entities.AudioFormat) string {
	return filepath.Join(r.dir, key+"."+string(format))
}

func (r *AudioResolver) probe(key string) (*entities.AudioSource, error) {
	if !validAssetKey(key) {
		return nil, fmt.Errorf("%q: %w", key, ErrInvalidAssetKey)
	}

	for _, f := range assetFormats {
		path := r.AssetPath(key, f)
		if r.prober.AssetExists(path) {
			return &entities.AudioSource{
				Kind:   entities.SourceAsset,
				Format: f,
				Path:   path,
			}, nil
		}
	}

	r.logger.Warn("audio asset not found", zap.String("asset_key", key))

	return nil, &MissingAssetError{
		Key:  key,
		Path: r.AssetPath(key, assetFormats[0]),
	}
}

// Synthesize produces speech for text. No retries are made and nothing is cached.
func (r *AudioResolver) Synthesize(ctx context.Context, text string) (*entities.AudioSource, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text: %w", ErrSpeechSynthesis)
	}

	data, err := r.synthesizer.Synthesize(ctx, text, r.languageCode)
	if err != nil {
		r.logger.Warn("speech synthesis failed",
			zap.String("text", text),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrSpeechSynthesis, err)
	}

	return &entities.AudioSource{
		Kind:   entities.SourceSynthesized,
		Format: entities.FormatMP3,
		Data:   data,
	}, nil
}

func validAssetKey(key string) bool {
	if key == "" || strings.Contains(key, "..") {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}
