package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
	"github.com/aliskhannn/amis-classroom-bot/internal/infra/assets"
	"github.com/aliskhannn/amis-classroom-bot/internal/infra/tts"
	"github.com/aliskhannn/amis-classroom-bot/internal/repository"
	"github.com/aliskhannn/amis-classroom-bot/internal/service"
	"github.com/aliskhannn/amis-classroom-bot/internal/storage"
)

const testChatID int64 = 42

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	answered []tgbotapi.CallbackConfig
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		b.answered = append(b.answered, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (b *fakeBot) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = nil
	b.answered = nil
}

func (b *fakeBot) last() tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sent) == 0 {
		return nil
	}
	return b.sent[len(b.sent)-1]
}

func (b *fakeBot) messages() []tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), b.sent...)
}

func newTestHandler(t *testing.T, files map[string]string) (*Handler, *fakeBot) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	store := assets.NewStore(fs)

	catalog, err := repository.NewCatalogRepository("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	logger := zap.NewNop()
	quiz, err := service.NewQuizService(storage.NewSessionStorage(), entities.DefaultQuestions(), logger)
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}

	resolver := service.NewAudioResolver(store, tts.Disabled{}, "audio", "id-ID", logger)
	lesson := service.NewLessonService(catalog, quiz, resolver, false, logger)

	bot := &fakeBot{}
	return NewHandler(bot, logger, lesson, quiz, store, false), bot
}

func commandUpdate(cmd string) tgbotapi.Update {
	return chatCommandUpdate(testChatID, cmd)
}

func chatCommandUpdate(chatID int64, cmd string) tgbotapi.Update {
	text := "/" + cmd
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{ID: chatID},
			Text: text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(text)},
			},
		},
	}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			From: &tgbotapi.User{ID: testChatID},
			Data: data,
			Message: &tgbotapi.Message{
				MessageID: 7,
				Chat:      &tgbotapi.Chat{ID: testChatID},
			},
		},
	}
}

func TestStartSendsWelcomeWithMenu(t *testing.T) {
	h, bot := newTestHandler(t, nil)

	h.handleUpdate(context.Background(), commandUpdate("start"))

	msg, ok := bot.last().(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected message, got %T", bot.last())
	}
	if !strings.Contains(msg.Text, "高春美") {
		t.Errorf("welcome should credit the instructor: %q", msg.Text)
	}
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok || len(kb.InlineKeyboard[0]) != 2 {
		t.Fatalf("expected two-button menu, got %#v", msg.ReplyMarkup)
	}
	if data := *kb.InlineKeyboard[0][0].CallbackData; data != "menu:learn" {
		t.Errorf("first menu button = %q", data)
	}
}

func TestLearnSendsCards(t *testing.T) {
	h, bot := newTestHandler(t, nil)

	h.handleUpdate(context.Background(), commandUpdate("learn"))

	// header + three words + one sentence
	if len(bot.sent) != 5 {
		t.Fatalf("sent %d messages, want 5", len(bot.sent))
	}
	card := bot.sent[3].(tgbotapi.MessageConfig)
	if !strings.Contains(card.Text, "Takola") || !strings.Contains(card.Text, "青蛙") {
		t.Errorf("unexpected third card: %q", card.Text)
	}
	kb := card.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if data := *kb.InlineKeyboard[0][0].CallbackData; data != "audio:v:2" {
		t.Errorf("play button = %q", data)
	}
}

func TestQuizFullRun(t *testing.T) {
	h, bot := newTestHandler(t, nil)
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate("quiz"))
	msg := bot.last().(tgbotapi.MessageConfig)
	if !strings.Contains(msg.Text, "0/3") {
		t.Fatalf("quiz should start at 0/3: %q", msg.Text)
	}

	// Q0: the frog is the second option.
	answers := []string{"quiz:0:1", "quiz:1:0", "quiz:2:1"}
	for i, data := range answers {
		bot.reset()
		h.handleUpdate(ctx, callbackUpdate(data))

		edit, ok := bot.last().(tgbotapi.EditMessageTextConfig)
		if !ok {
			t.Fatalf("answer %d: expected edit, got %T", i, bot.last())
		}
		if edit.MessageID != 7 || edit.ReplyMarkup == nil {
			t.Fatalf("answer %d: bad edit %+v", i, edit)
		}
	}

	edit := bot.last().(tgbotapi.EditMessageTextConfig)
	if !strings.Contains(edit.Text, "得分：300") {
		t.Errorf("result card should show 300 points: %q", edit.Text)
	}
	restart := *edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData
	if restart != "quiz:restart" {
		t.Errorf("restart button = %q", restart)
	}

	if st := h.quizService.State(ctx, sessionID(testChatID)); st.Step != entities.StepComplete || st.Score != 300 {
		t.Errorf("state = %+v", st)
	}
}

func TestQuizWrongAnswerAlerts(t *testing.T) {
	h, bot := newTestHandler(t, nil)
	ctx := context.Background()

	h.handleUpdate(ctx, callbackUpdate("quiz:0:0"))

	if len(bot.sent) != 0 {
		t.Fatalf("wrong answer must not edit the question, sent %d", len(bot.sent))
	}
	if len(bot.answered) != 1 || !bot.answered[0].ShowAlert {
		t.Fatalf("expected one alert, got %+v", bot.answered)
	}
	if !strings.Contains(bot.answered[0].Text, "Tata'ang") {
		t.Errorf("alert = %q", bot.answered[0].Text)
	}
	if st := h.quizService.State(ctx, sessionID(testChatID)); st.Step != 0 || st.Score != 0 {
		t.Errorf("state changed after wrong answer: %+v", st)
	}
}

func TestQuizStaleButtonShowsCurrentStage(t *testing.T) {
	h, bot := newTestHandler(t, nil)
	ctx := context.Background()

	h.handleUpdate(ctx, callbackUpdate("quiz:0:1"))
	bot.reset()

	h.handleUpdate(ctx, callbackUpdate("quiz:0:1"))

	if len(bot.answered) != 1 || bot.answered[0].Text != msgStaleQuestion {
		t.Fatalf("expected stale toast, got %+v", bot.answered)
	}
	edit := bot.last().(tgbotapi.EditMessageTextConfig)
	if !strings.Contains(edit.Text, "1/3") {
		t.Errorf("should re-render second stage: %q", edit.Text)
	}
	if st := h.quizService.State(ctx, sessionID(testChatID)); st.Score != 100 {
		t.Errorf("stale answer must not score: %+v", st)
	}
}

func TestRestartCommand(t *testing.T) {
	h, bot := newTestHandler(t, nil)
	ctx := context.Background()

	h.handleUpdate(ctx, callbackUpdate("quiz:0:1"))
	h.handleUpdate(ctx, commandUpdate("restart"))

	msg := bot.last().(tgbotapi.MessageConfig)
	if !strings.Contains(msg.Text, "0/3") {
		t.Errorf("restart should show first stage: %q", msg.Text)
	}
	if st := h.quizService.State(ctx, sessionID(testChatID)); st != entities.NewQuizState() {
		t.Errorf("state = %+v", st)
	}
}

func TestAudioMissingAssetWarns(t *testing.T) {
	h, bot := newTestHandler(t, nil)

	h.handleUpdate(context.Background(), callbackUpdate("audio:v:0"))

	msg, ok := bot.last().(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected warning message, got %T", bot.last())
	}
	if msg.Text != "⚠️ 找不到音檔：audio/Tataang.m4a" {
		t.Errorf("warning = %q", msg.Text)
	}
}

func TestAudioAssetUploaded(t *testing.T) {
	h, bot := newTestHandler(t, map[string]string{"audio/Takola.mp3": "mp3-bytes"})

	h.handleUpdate(context.Background(), callbackUpdate("audio:q:0"))

	audio, ok := bot.last().(tgbotapi.AudioConfig)
	if !ok {
		t.Fatalf("expected audio, got %T", bot.last())
	}
	file, ok := audio.File.(tgbotapi.FileReader)
	if !ok || file.Name != "Takola.mp3" {
		t.Errorf("file = %#v", audio.File)
	}
	if audio.Caption != msgListenPrompt {
		t.Errorf("quiz audio must not reveal the answer, caption %q", audio.Caption)
	}
}

func TestUnknownTextGetsHint(t *testing.T) {
	h, bot := newTestHandler(t, nil)

	h.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: testChatID}, Text: "hello"},
	})

	msg := bot.last().(tgbotapi.MessageConfig)
	if msg.Text != msgUnknownCommand {
		t.Errorf("text = %q", msg.Text)
	}
}

func TestCelebrationDoesNotBlockOtherChats(t *testing.T) {
	h, bot := newTestHandler(t, nil)
	h.celebrate = true
	ctx := context.Background()

	start := time.Now()
	h.handleUpdate(ctx, callbackUpdate("quiz:0:1"))
	h.handleUpdate(ctx, chatCommandUpdate(7, "quiz"))
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("updates took %v while a celebration was pending", elapsed)
	}

	sent := bot.messages()
	if len(sent) != 2 {
		t.Fatalf("expected celebration and second chat's quiz, got %d messages", len(sent))
	}
	if edit, ok := sent[0].(tgbotapi.EditMessageTextConfig); !ok || edit.ReplyMarkup != nil {
		t.Errorf("first message should be the celebration card, got %#v", sent[0])
	}
	if msg, ok := sent[1].(tgbotapi.MessageConfig); !ok || msg.ChatID != 7 || !strings.Contains(msg.Text, "0/3") {
		t.Errorf("second chat should get its quiz, got %#v", sent[1])
	}

	h.pending.Wait()

	edit, ok := bot.last().(tgbotapi.EditMessageTextConfig)
	if !ok || edit.ChatID != testChatID || edit.ReplyMarkup == nil {
		t.Fatalf("next question should follow the celebration, got %#v", bot.last())
	}
	if !strings.Contains(edit.Text, "1/3") {
		t.Errorf("next question should show progress 1/3: %q", edit.Text)
	}
}

func TestCelebrationFollowUpDroppedOnShutdown(t *testing.T) {
	h, bot := newTestHandler(t, nil)
	h.celebrate = true
	ctx, cancel := context.WithCancel(context.Background())

	h.handleUpdate(ctx, callbackUpdate("quiz:0:1"))
	cancel()
	h.pending.Wait()

	if n := len(bot.messages()); n != 1 {
		t.Errorf("only the celebration should be sent after shutdown, got %d messages", n)
	}
}
