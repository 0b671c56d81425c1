package telegram

import (
	"context"
	"fmt"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
	"github.com/aliskhannn/amis-classroom-bot/internal/service"
)

// playAudio sends the utterance behind ref. A missing recording produces a
// warning, and a failed synthesis produces the muted marker; neither is an error.
func (h *Handler) playAudio(ctx context.Context, chatID int64, ref service.AudioRef) error {
	pb, err := h.lessonService.Playback(ctx, ref)
	if err != nil {
		return fmt.Errorf("playback %s/%d: %w", ref.Kind, ref.Index, err)
	}

	if pb.Missing != nil {
		h.logger.Warn("audio asset missing",
			zap.String("asset_key", pb.Missing.Key),
			zap.String("path", pb.Missing.Path),
		)
		if err := h.send(newPlainMessage(chatID, fmt.Sprintf(msgMissingAudioFmt, pb.Missing.Path))); err != nil {
			return err
		}
	}

	if pb.Muted {
		return h.send(newPlainMessage(chatID, msgMuted))
	}

	if pb.Source == nil {
		return nil
	}

	return h.sendAudio(chatID, pb.Source, h.caption(ctx, ref))
}

// sendAudio uploads a recording from the asset store or synthesized bytes.
func (h *Handler) sendAudio(chatID int64, src *entities.AudioSource, caption string) error {
	var file tgbotapi.RequestFileData

	switch src.Kind {
	case entities.SourceAsset:
		rc, _, err := h.assets.Open(src.Path)
		if err != nil {
			return fmt.Errorf("open audio asset %q: %w", src.Path, err)
		}
		defer rc.Close()

		file = tgbotapi.FileReader{Name: filepath.Base(src.Path), Reader: rc}

	case entities.SourceSynthesized:
		file = tgbotapi.FileBytes{Name: "speech." + string(src.Format), Bytes: src.Data}

	default:
		return fmt.Errorf("unsupported audio source kind %q", src.Kind)
	}

	audio := tgbotapi.NewAudio(chatID, file)
	audio.Caption = caption
	return h.send(audio)
}

// caption labels the audio with its text, except in the quiz where it would give the answer away.
func (h *Handler) caption(ctx context.Context, ref service.AudioRef) string {
	lesson := h.lessonService.Lesson(ctx)

	switch ref.Kind {
	case service.RefVocabulary:
		if ref.Index < len(lesson.Vocabulary) {
			v := lesson.Vocabulary[ref.Index]
			return v.Icon + " " + v.Headword
		}
	case service.RefSentence:
		if ref.Index < len(lesson.Sentences) {
			return lesson.Sentences[ref.Index].Phrase
		}
	}

	return msgListenPrompt
}
