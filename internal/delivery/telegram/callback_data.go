package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/amis-classroom-bot/internal/service"
)

// Callback action constants.
const (
	actionMenu  = "menu"
	actionAudio = "audio"
	actionQuiz  = "quiz"
)

// Menu sub-actions.
const (
	menuLearn = "learn"
	menuQuiz  = "quiz"
)

// Audio sub-actions, one per catalog section.
const (
	audioVocabulary = "v"
	audioSentence   = "s"
	audioQuestion   = "q"
)

// Quiz sub-actions.
const (
	quizRestart = "restart"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildMenuCallback(sub string) string {
	return callbackData{Action: actionMenu, Params: []string{sub}}.encode()
}

// buildAudioCallback builds callback data for playing a catalog utterance.
func buildAudioCallback(ref service.AudioRef) string {
	var section string
	switch ref.Kind {
	case service.RefVocabulary:
		section = audioVocabulary
	case service.RefSentence:
		section = audioSentence
	case service.RefQuestion:
		section = audioQuestion
	}

	return callbackData{
		Action: actionAudio,
		Params: []string{section, strconv.Itoa(ref.Index)},
	}.encode()
}

// parseAudioRef converts audio callback params back into a reference.
func parseAudioRef(params []string) (service.AudioRef, bool) {
	if len(params) != 2 {
		return service.AudioRef{}, false
	}

	idx, err := strconv.Atoi(params[1])
	if err != nil || idx < 0 {
		return service.AudioRef{}, false
	}

	var kind service.AudioRefKind
	switch params[0] {
	case audioVocabulary:
		kind = service.RefVocabulary
	case audioSentence:
		kind = service.RefSentence
	case audioQuestion:
		kind = service.RefQuestion
	default:
		return service.AudioRef{}, false
	}

	return service.AudioRef{Kind: kind, Index: idx}, true
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
// The option is sent by index to stay within Telegram's 64-byte limit.
func buildQuizAnswerCallback(step, optionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{strconv.Itoa(step), strconv.Itoa(optionIndex)},
	}.encode()
}

// parseQuizAnswer extracts step and option index from quiz callback params.
func parseQuizAnswer(params []string) (step, optionIndex int, ok bool) {
	if len(params) != 2 {
		return 0, 0, false
	}

	step, err1 := strconv.Atoi(params[0])
	optionIndex, err2 := strconv.Atoi(params[1])
	if err1 != nil || err2 != nil || step < 0 || optionIndex < 0 {
		return 0, 0, false
	}

	return step, optionIndex, true
}

// buildQuizRestartCallback builds callback data for the "play again" button.
func buildQuizRestartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizRestart}}.encode()
}
