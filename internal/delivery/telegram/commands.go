package telegram

import (
	"context"

	"github.com/aliskhannn/amis-classroom-bot/internal/service"
)

func (h *Handler) handleStart(ctx context.Context, chatID int64) error {
	msg := newMessage(chatID, formatWelcome(h.lessonService.Lesson(ctx)))
	msg.ReplyMarkup = buildMenuKeyboard()
	return h.send(msg)
}

func (h *Handler) handleHelp(_ context.Context, chatID int64) error {
	return h.send(newMessage(chatID, formatHelp()))
}

// handleLearn sends the lesson header, one card per word and the practice sentences.
func (h *Handler) handleLearn(ctx context.Context, chatID int64) error {
	lesson := h.lessonService.Lesson(ctx)

	if err := h.send(newMessage(chatID, formatLessonHeader(lesson))); err != nil {
		return err
	}

	for i, v := range lesson.Vocabulary {
		msg := newMessage(chatID, formatVocabularyCard(v))
		msg.ReplyMarkup = buildPlayKeyboard(service.AudioRef{Kind: service.RefVocabulary, Index: i})
		if err := h.send(msg); err != nil {
			return err
		}
	}

	for i, s := range lesson.Sentences {
		msg := newMessage(chatID, formatSentenceCard(s))
		if i == len(lesson.Sentences)-1 {
			// The last card also leads into the quiz.
			kb := buildPlayKeyboard(service.AudioRef{Kind: service.RefSentence, Index: i})
			kb.InlineKeyboard = append(kb.InlineKeyboard, buildLearnFooterKeyboard().InlineKeyboard...)
			msg.ReplyMarkup = kb
		} else {
			msg.ReplyMarkup = buildPlayKeyboard(service.AudioRef{Kind: service.RefSentence, Index: i})
		}
		if err := h.send(msg); err != nil {
			return err
		}
	}

	return nil
}

// handleQuiz shows the learner's current stage, or the result card when finished.
func (h *Handler) handleQuiz(ctx context.Context, chatID int64) error {
	state := h.quizService.State(ctx, sessionID(chatID))
	text, kb := h.renderQuiz(ctx, state)

	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb
	return h.send(msg)
}

func (h *Handler) handleRestart(ctx context.Context, chatID int64) error {
	h.quizService.Restart(ctx, sessionID(chatID))
	return h.handleQuiz(ctx, chatID)
}
