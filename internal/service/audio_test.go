package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
	"github.com/aliskhannn/amis-classroom-bot/internal/infra/assets"
)

type fakeSynthesizer struct {
	calls int
	lang  string
	data  []byte
	err   error
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, _ string, languageCode string) ([]byte, error) {
	f.calls++
	f.lang = languageCode
	return f.data, f.err
}

func newTestResolver(t *testing.T, files map[string]string, synth *fakeSynthesizer) *AudioResolver {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	return NewAudioResolver(assets.NewStore(fs), synth, "audio", "id-ID", zap.NewNop())
}

func TestResolvePrefersM4A(t *testing.T) {
	synth := &fakeSynthesizer{}
	r := newTestResolver(t, map[string]string{
		"audio/Takola.m4a": "m4a",
		"audio/Takola.mp3": "mp3",
	}, synth)

	src, err := r.Resolve(context.Background(), "Takola'", "Takola")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != entities.SourceAsset || src.Format != entities.FormatM4A || src.Path != "audio/Takola.m4a" {
		t.Fatalf("unexpected source: %+v", src)
	}
	if src.MIMEType() != "audio/mp4" {
		t.Fatalf("mime=%q", src.MIMEType())
	}
	if synth.calls != 0 {
		t.Fatalf("synthesizer called %d times", synth.calls)
	}
}

func TestResolveFallsBackToMP3(t *testing.T) {
	synth := &fakeSynthesizer{}
	r := newTestResolver(t, map[string]string{"audio/Mata.mp3": "mp3"}, synth)

	src, err := r.Resolve(context.Background(), "Mata", "Mata")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Format != entities.FormatMP3 || src.MIMEType() != "audio/mpeg" {
		t.Fatalf("unexpected source: %+v", src)
	}
	if synth.calls != 0 {
		t.Fatalf("synthesizer called %d times", synth.calls)
	}
}

func TestResolveMissingAsset(t *testing.T) {
	synth := &fakeSynthesizer{data: []byte("speech")}
	r := newTestResolver(t, nil, synth)

	src, err := r.Resolve(context.Background(), "Tata'ang", "Tataang")
	if src != nil {
		t.Fatalf("expected no source, got %+v", src)
	}
	if !errors.Is(err, ErrMissingAudioAsset) {
		t.Fatalf("err=%v want ErrMissingAudioAsset", err)
	}

	var missing *MissingAssetError
	if !errors.As(err, &missing) {
		t.Fatalf("err=%T want *MissingAssetError", err)
	}
	if missing.Key != "Tataang" || missing.Path != "audio/Tataang.m4a" {
		t.Fatalf("unexpected error fields: %+v", missing)
	}
	if synth.calls != 0 {
		t.Fatalf("synthesizer called %d times", synth.calls)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	r := newTestResolver(t, map[string]string{"secret.mp3": "x"}, &fakeSynthesizer{})

	for _, key := range []string{"../secret", "a/b", `a\b`, ".."} {
		if _, err := r.Resolve(context.Background(), "x", key); !errors.Is(err, ErrInvalidAssetKey) {
			t.Errorf("key %q: err=%v want ErrInvalidAssetKey", key, err)
		}
	}
}

func TestResolveSynthesizes(t *testing.T) {
	synth := &fakeSynthesizer{data: []byte("speech")}
	r := newTestResolver(t, nil, synth)

	src, err := r.Resolve(context.Background(), "Tata'ang ko mata no takola'.", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Kind != entities.SourceSynthesized || string(src.Data) != "speech" || src.Format != entities.FormatMP3 {
		t.Fatalf("unexpected source: %+v", src)
	}
	if synth.lang != "id-ID" {
		t.Fatalf("language=%q", synth.lang)
	}
}

func TestResolveSynthesisFailureDegrades(t *testing.T) {
	synth := &fakeSynthesizer{err: errors.New("quota exceeded")}
	r := newTestResolver(t, nil, synth)

	src, err := r.Resolve(context.Background(), "Mata", "")
	if src != nil {
		t.Fatalf("expected no source, got %+v", src)
	}
	if !errors.Is(err, ErrSpeechSynthesis) {
		t.Fatalf("err=%v want ErrSpeechSynthesis", err)
	}
	if synth.calls != 1 {
		t.Fatalf("synthesizer called %d times, want exactly one attempt", synth.calls)
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	synth := &fakeSynthesizer{}
	r := newTestResolver(t, nil, synth)

	if _, err := r.Synthesize(context.Background(), "  "); !errors.Is(err, ErrSpeechSynthesis) {
		t.Fatalf("err=%v", err)
	}
	if synth.calls != 0 {
		t.Fatalf("synthesizer called for empty text")
	}
}
