// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
)

// Plain-text messages.
const (
	msgInternalError   = "哎呀，出了一點問題，請稍後再試。"
	msgUnknownCommand  = "不認識這個指令喔！\n\n/learn — 學習單詞\n/quiz — 練習挑戰\n/restart — 再玩一次\n/help — 說明"
	msgMuted           = "🔇"
	msgMissingAudioFmt = "⚠️ 找不到音檔：%s"
	msgStaleQuestion   = "這一關已經過了，請看最新的題目喔！"
	msgListenPrompt    = "🎧"
)

const (
	progressBarLength = 12
	learnHint         = "💡 點擊播放按鈕，跟著老師一起唸！"
	sentenceHeader    = "🗣️ 句型練習"
	quizHeader        = "🏆 小勇士挑戰"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// formatWelcome builds the /start greeting with the lesson credits.
func formatWelcome(l entities.Lesson) string {
	var sb strings.Builder

	sb.WriteString(bold(l.Title + " 🌞"))
	if l.Unit != "" {
		sb.WriteString(md(" · " + l.Unit))
	}
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("講師：%s  |  教材提供者：%s", l.Instructor, l.Materials)))
	sb.WriteString("\n\n")

	sb.WriteString(md("📖 學習單詞：看卡片、聽發音、跟著做動作。"))
	sb.WriteString("\n")
	sb.WriteString(md("🎮 練習挑戰：三個關卡，每答對一題得 100 分！"))

	return sb.String()
}

// formatLessonHeader builds the heading of the learning section.
func formatLessonHeader(l entities.Lesson) string {
	return fmt.Sprintf(
		"%s\n%s\n\n%s",
		bold(l.Heading),
		italic("— "+l.Subtitle+" —"),
		md(learnHint),
	)
}

// formatVocabularyCard renders one flashcard.
func formatVocabularyCard(v entities.VocabularyEntry) string {
	text := fmt.Sprintf(
		"%s  %s\n%s",
		md(v.Icon),
		bold(v.Headword),
		md(v.Translation),
	)
	if v.GestureHint != "" {
		text += "\n\n" + md("🙌 "+v.GestureHint)
	}
	return text
}

// formatSentenceCard renders one practice sentence.
func formatSentenceCard(s entities.SentenceEntry) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		md(sentenceHeader),
		bold(s.Phrase),
		md(s.Translation),
	)
}

// buildProgressBar creates a text progress bar for a fraction in [0, 1].
func buildProgressBar(fraction float64, length int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(fraction * float64(length))
	empty := length - filled
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", empty) + "]"
}

// formatQuizQuestion renders the current stage with progress and score.
func formatQuizQuestion(q entities.Question, state entities.QuizState) string {
	var sb strings.Builder

	sb.WriteString(bold(quizHeader))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("%s %d/%d", buildProgressBar(state.Progress(), progressBarLength), state.Step, entities.TotalSteps)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("⭐ 得分：%d", state.Score)))
	sb.WriteString("\n\n")

	sb.WriteString(bold(q.Title))
	if q.Prompt != "" {
		sb.WriteString("\n")
		sb.WriteString(md(q.Prompt))
	}
	if q.Hint != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(q.Hint))
	}
	if q.HasAudio() {
		sb.WriteString("\n\n")
		sb.WriteString(md("🔊 先聽聽看再作答！"))
	}

	return sb.String()
}

// formatQuizSuccess renders the short celebration shown after a correct answer.
func formatQuizSuccess(q entities.Question, state entities.QuizState) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		md(q.Celebration),
		bold("✅ "+q.Success),
		md(fmt.Sprintf("⭐ 得分：%d", state.Score)),
	)
}

// formatQuizResult renders the completion card.
func formatQuizResult(state entities.QuizState, l entities.Lesson) string {
	closing := "🐸"
	if len(l.Sentences) > 0 {
		closing = strings.TrimSuffix(l.Sentences[0].Phrase, ".") + "! 🐸"
	}

	return fmt.Sprintf(
		"%s\n%s\n\n%s\n\n%s",
		bold("🎉 挑戰完成！"),
		md(buildProgressBar(state.Progress(), progressBarLength)),
		bold(fmt.Sprintf("得分：%d", state.Score)),
		md(closing),
	)
}

// formatHelp lists the available commands.
func formatHelp() string {
	return strings.Join([]string{
		bold("📚 指令說明"),
		"",
		md("/start — 開始"),
		md("/learn — 學習單詞"),
		md("/quiz — 練習挑戰"),
		md("/restart — 再玩一次"),
		md("/help — 說明"),
	}, "\n")
}
