package entities

import (
	"strings"
	"time"
)

// QuestionKind identifies the exercise format of a quiz question.
type QuestionKind string

const (
	KindIdentify  QuestionKind = "identify"   // listen and pick the animal
	KindFillBlank QuestionKind = "fill_blank" // complete the sentence
	KindTranslate QuestionKind = "translate"  // pick the Amis phrase for a situation
)

// MatchRule controls how a submitted choice is compared with the answer.
type MatchRule int

const (
	MatchExact    MatchRule = iota // choice must equal the answer
	MatchContains                  // choice must contain the answer headword
)

// Question is one step of the quiz. Options form a closed set; any option
// that is not the answer is a distractor.
type Question struct {
	Step        int               // position in the quiz, 0-based
	Kind        QuestionKind      // exercise format
	Title       string            // stage title shown above the prompt
	Prompt      string            // task text
	Hint        string            // translation hint shown under the prompt
	Options     []string          // choices in display order
	Answer      string            // correct option, or headword for MatchContains
	Match       MatchRule         // comparison rule for Answer
	Success     string            // feedback on a correct answer
	Retry       string            // feedback on a distractor without its own text
	Feedback    map[string]string // per-distractor feedback
	Celebration string            // effect shown with the success text
	Pause       time.Duration     // celebration pause before the next step is shown
	AudioText   string            // utterance for the listening prompt
	AudioKey    string            // pre-recorded asset for the listening prompt
}

// IsCorrect reports whether choice answers the question.
func (q Question) IsCorrect(choice string) bool {
	switch q.Match {
	case MatchContains:
		return strings.Contains(choice, q.Answer)
	default:
		return choice == q.Answer
	}
}

// HasOption reports whether choice is one of the offered options.
func (q Question) HasOption(choice string) bool {
	for _, o := range q.Options {
		if o == choice {
			return true
		}
	}
	return false
}

// FeedbackFor returns the rejection text for a distractor.
func (q Question) FeedbackFor(choice string) string {
	if fb, ok := q.Feedback[choice]; ok {
		return fb
	}
	return q.Retry
}

// HasAudio reports whether the question comes with a listening prompt.
func (q Question) HasAudio() bool {
	return q.AudioText != "" || q.AudioKey != ""
}

// DefaultQuestions returns the fixed three-stage quiz of Unit 2.
func DefaultQuestions() []Question {
	return []Question{
		{
			Step:    StepIdentify,
			Kind:    KindIdentify,
			Title:   "第 1 關：聽聽看，這是什麼動物？",
			Options: []string{"🐘 很大", "🐸 青蛙", "👀 眼睛"},
			Answer:  "🐸 青蛙",
			Match:   MatchExact,
			Success: "答對了！Takola' 就是青蛙！",
			Retry:   "再聽一次喔！",
			Feedback: map[string]string{
				"🐘 很大": "那是 Tata'ang 喔！",
				"👀 眼睛": "那是 Mata 喔！",
			},
			Celebration: "🎈🎈🎈",
			Pause:       time.Second,
			AudioText:   "Takola'",
			AudioKey:    "Takola",
		},
		{
			Step:        StepFillBlank,
			Kind:        KindFillBlank,
			Title:       "第 2 關：句子接龍",
			Prompt:      "請完成句子：Tata'ang ko _______ no takola'.",
			Hint:        "(青蛙的眼睛很大)",
			Options:     []string{"Mata (眼睛)", "Fodoy (衣服)", "Salongan (漂亮)"},
			Answer:      "Mata",
			Match:       MatchContains,
			Success:     "太棒了！青蛙的眼睛很大！",
			Retry:       "再試一次！提示：我們在說眼睛喔",
			Celebration: "✨",
			Pause:       1500 * time.Millisecond,
			AudioText:   "Tata'ang ko mata no takola'",
			AudioKey:    "sentence_tataang",
		},
		{
			Step:    StepTranslate,
			Kind:    KindTranslate,
			Title:   "第 3 關：我是翻譯官",
			Prompt:  "當你看到一個 超級大的西瓜 🍉\n你要說：",
			Options: []string{"Salongan! (漂亮)", "Tata'ang! (很大)", "Miso! (你的)"},
			Answer:  "Tata'ang! (很大)",
			Match:   MatchExact,
			Success: "沒錯！Tata'ang 就是很大！",
			Retry:   "不對喔！",
			Feedback: map[string]string{
				"Salongan! (漂亮)": "西瓜可能很漂亮，但我們想說它很大...",
			},
			Celebration: "❄️❄️❄️",
			Pause:       1500 * time.Millisecond,
		},
	}
}
