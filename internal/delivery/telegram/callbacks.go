package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
	"github.com/aliskhannn/amis-classroom-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "", false)
		return
	}

	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionMenu:
		h.handleMenuCallback(ctx, cb, data.Params)
	case actionAudio:
		h.handleAudioCallback(ctx, cb, data.Params)
	case actionQuiz:
		h.handleQuizCallback(ctx, cb, data.Params)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "", false)
	}
}

func (h *Handler) handleMenuCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, params []string) {
	h.answerCallback(cb, "", false)

	if len(params) != 1 {
		return
	}

	chatID := cb.Message.Chat.ID
	switch params[0] {
	case menuLearn:
		_ = h.withErrorHandling(h.handleLearn)(ctx, chatID)
	case menuQuiz:
		_ = h.withErrorHandling(h.handleQuiz)(ctx, chatID)
	}
}

func (h *Handler) handleAudioCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, params []string) {
	h.answerCallback(cb, "", false)

	ref, ok := parseAudioRef(params)
	if !ok {
		h.logger.Warn("invalid audio callback", zap.String("data", cb.Data))
		return
	}

	chatID := cb.Message.Chat.ID
	_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		return h.playAudio(ctx, chatID, ref)
	})(ctx, chatID)
}

func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, params []string) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	sid := sessionID(chatID)

	if len(params) == 1 && params[0] == quizRestart {
		state := h.quizService.Restart(ctx, sid)
		h.answerCallback(cb, "", false)
		h.editQuiz(ctx, chatID, msgID, state)
		return
	}

	step, optionIndex, ok := parseQuizAnswer(params)
	if !ok {
		h.logger.Warn("invalid quiz callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "", false)
		return
	}

	// An unknown option index becomes an empty choice, which never matches.
	var choice string
	q, found := h.quizService.Question(step)
	if found && optionIndex < len(q.Options) {
		choice = q.Options[optionIndex]
	}

	res := h.quizService.Answer(ctx, sid, step, choice)

	switch res.Outcome {
	case entities.OutcomeCorrect:
		h.answerCallback(cb, q.Celebration, false)
		if !h.celebrate {
			h.editQuiz(ctx, chatID, msgID, res.State)
			return
		}

		_ = h.send(newEdit(chatID, msgID, formatQuizSuccess(q, res.State)))
		h.later(ctx, q.Pause, func() {
			// Skip when the learner moved on during the celebration.
			if h.quizService.State(ctx, sid) != res.State {
				return
			}
			h.editQuiz(ctx, chatID, msgID, res.State)
		})

	case entities.OutcomeIncorrect:
		h.answerCallback(cb, "❌ "+res.Feedback, true)

	default:
		// The buttons belong to an earlier stage: show where the learner really is.
		h.answerCallback(cb, msgStaleQuestion, false)
		h.editQuiz(ctx, chatID, msgID, res.State)
	}
}

// editQuiz replaces a quiz message with the stage for state.
func (h *Handler) editQuiz(ctx context.Context, chatID int64, msgID int, state entities.QuizState) {
	text, kb := h.renderQuiz(ctx, state)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, kb)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	_ = h.send(edit)
}

// renderQuiz returns the text and keyboard for the learner's current stage.
func (h *Handler) renderQuiz(ctx context.Context, state entities.QuizState) (string, tgbotapi.InlineKeyboardMarkup) {
	if state.Completed() {
		return formatQuizResult(state, h.lessonService.Lesson(ctx)), buildQuizResultKeyboard()
	}

	q, ok := h.quizService.Question(state.Step)
	if !ok {
		h.logger.Error("no question for quiz step", zap.Int("step", state.Step))
		return md(msgInternalError), buildQuizResultKeyboard()
	}

	return formatQuizQuestion(q, state), buildQuizAnswerKeyboard(q)
}

// questionRef is the audio reference for a quiz step.
func questionRef(step int) service.AudioRef {
	return service.AudioRef{Kind: service.RefQuestion, Index: step}
}
