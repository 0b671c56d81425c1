package telegram

import (
	"testing"

	"github.com/aliskhannn/amis-classroom-bot/internal/service"
)

func TestAudioCallbackRoundTrip(t *testing.T) {
	refs := []service.AudioRef{
		{Kind: service.RefVocabulary, Index: 2},
		{Kind: service.RefSentence, Index: 0},
		{Kind: service.RefQuestion, Index: 1},
	}

	for _, ref := range refs {
		data := decodeCallback(buildAudioCallback(ref))
		if data.Action != actionAudio {
			t.Fatalf("action = %q", data.Action)
		}
		got, ok := parseAudioRef(data.Params)
		if !ok || got != ref {
			t.Errorf("parseAudioRef(%v) = %+v, %v", data.Params, got, ok)
		}
	}
}

func TestParseAudioRefRejects(t *testing.T) {
	bad := [][]string{
		nil,
		{"v"},
		{"x", "1"},
		{"v", "-1"},
		{"v", "one"},
	}
	for _, params := range bad {
		if _, ok := parseAudioRef(params); ok {
			t.Errorf("parseAudioRef(%v) accepted", params)
		}
	}
}

func TestQuizAnswerCallback(t *testing.T) {
	data := buildQuizAnswerCallback(2, 1)
	if data != "quiz:2:1" {
		t.Fatalf("data = %q", data)
	}

	step, opt, ok := parseQuizAnswer(decodeCallback(data).Params)
	if !ok || step != 2 || opt != 1 {
		t.Errorf("parsed %d %d %v", step, opt, ok)
	}

	if _, _, ok := parseQuizAnswer([]string{quizRestart}); ok {
		t.Errorf("restart must not parse as an answer")
	}
}

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0, "[░░░░]"},
		{0.5, "[██░░]"},
		{1, "[████]"},
		{2, "[████]"},
	}
	for _, tt := range tests {
		if got := buildProgressBar(tt.fraction, 4); got != tt.want {
			t.Errorf("buildProgressBar(%v) = %q, want %q", tt.fraction, got, tt.want)
		}
	}
}
