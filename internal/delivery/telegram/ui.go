package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
	"github.com/aliskhannn/amis-classroom-bot/internal/service"
)

// buildMenuKeyboard builds the two-tab main menu.
func buildMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 學習單詞", buildMenuCallback(menuLearn)),
			tgbotapi.NewInlineKeyboardButtonData("🎮 練習挑戰", buildMenuCallback(menuQuiz)),
		),
	)
}

// buildPlayKeyboard builds a single play button for a catalog utterance.
func buildPlayKeyboard(ref service.AudioRef) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔊 播放", buildAudioCallback(ref)),
		),
	)
}

// buildLearnFooterKeyboard leads from the cards to the quiz.
func buildLearnFooterKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 練習挑戰", buildMenuCallback(menuQuiz)),
		),
	)
}

// buildQuizAnswerKeyboard builds keyboard for quiz question.
// Identification options share one row like picture cards; the others get a row each.
func buildQuizAnswerKeyboard(q entities.Question) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if q.Kind == entities.KindIdentify {
		var row []tgbotapi.InlineKeyboardButton
		for i, option := range q.Options {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(option, buildQuizAnswerCallback(q.Step, i)))
		}
		rows = append(rows, row)
	} else {
		for i, option := range q.Options {
			button := tgbotapi.NewInlineKeyboardButtonData(option, buildQuizAnswerCallback(q.Step, i))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
		}
	}

	if q.HasAudio() {
		listen := tgbotapi.NewInlineKeyboardButtonData("🔊 聽題目", buildAudioCallback(questionRef(q.Step)))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(listen))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 再玩一次", buildQuizRestartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 學習單詞", buildMenuCallback(menuLearn)),
		),
	)
}
