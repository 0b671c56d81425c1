package telegram

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
	"github.com/aliskhannn/amis-classroom-bot/internal/service"
)

// Bot is the subset of *tgbotapi.BotAPI the handler talks to.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type LessonService interface {
	Lesson(ctx context.Context) entities.Lesson
	Playback(ctx context.Context, ref service.AudioRef) (*service.Playback, error)
}

type QuizService interface {
	State(ctx context.Context, sessionID string) entities.QuizState
	Question(step int) (entities.Question, bool)
	Answer(ctx context.Context, sessionID string, step int, choice string) *service.AnswerResult
	Restart(ctx context.Context, sessionID string) entities.QuizState
}

// AssetOpener opens recorded audio files for upload.
type AssetOpener interface {
	Open(path string) (io.ReadCloser, int64, error)
}

type Handler struct {
	bot           Bot
	logger        *zap.Logger
	lessonService LessonService
	quizService   QuizService
	assets        AssetOpener
	celebrate     bool

	// pending tracks delayed quiz edits still waiting on their timer.
	pending sync.WaitGroup
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	lessonService LessonService,
	quizService QuizService,
	assets AssetOpener,
	celebrate bool,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		lessonService: lessonService,
		quizService:   quizService,
		assets:        assets,
		celebrate:     celebrate,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")
	defer h.pending.Wait()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart)(ctx, chatID)
	case "learn":
		_ = h.withErrorHandling(h.handleLearn)(ctx, chatID)
	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz)(ctx, chatID)
	case "restart":
		_ = h.withErrorHandling(h.handleRestart)(ctx, chatID)
	case "help":
		_ = h.withErrorHandling(h.handleHelp)(ctx, chatID)
	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// sessionID keys quiz state per chat.
func sessionID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// later runs fn after d without holding up the update loop.
// fn is dropped when ctx is done first.
func (h *Handler) later(ctx context.Context, d time.Duration, fn func()) {
	if d <= 0 {
		fn()
		return
	}

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()

		t := time.NewTimer(d)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		fn()
	}()
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the user's "clock", optionally with a toast or alert.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	answer := tgbotapi.NewCallback(cb.ID, text)
	if alert {
		answer = tgbotapi.NewCallbackWithAlert(cb.ID, text)
	}

	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error",
			zap.String("callback_id", cb.ID),
			zap.Error(err),
		)
	}
}
