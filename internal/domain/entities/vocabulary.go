// Package entities contains domain entities used across the application.
package entities

// VocabularyEntry represents a single Amis headword taught in a lesson.
// It includes the translation, an icon for the flashcard, a gesture hint
// and an optional reference to a pre-recorded audio asset.
type VocabularyEntry struct {
	Headword    string `json:"headword"`            // Amis headword, unique within a lesson
	Translation string `json:"translation"`         // Mandarin translation
	Icon        string `json:"icon"`                // emoji shown on the card
	GestureHint string `json:"gesture_hint"`        // action the learner performs while repeating
	AudioKey    string `json:"audio_key,omitempty"` // base name of the recording under the audio dir
}

// SentenceEntry represents a practice sentence built from lesson vocabulary.
type SentenceEntry struct {
	Phrase      string `json:"phrase"`
	Translation string `json:"translation"`
	AudioKey    string `json:"audio_key,omitempty"`
}

// Lesson groups the static content of one classroom unit.
type Lesson struct {
	Title      string            `json:"title"`      // page title, e.g. "阿美語小教室"
	Unit       string            `json:"unit"`       // unit label, e.g. "Unit 2"
	Heading    string            `json:"heading"`    // learning section heading in Amis
	Subtitle   string            `json:"subtitle"`   // heading translation
	Instructor string            `json:"instructor"` // instructor credit
	Materials  string            `json:"materials"`  // materials provider credit
	Vocabulary []VocabularyEntry `json:"vocabulary"`
	Sentences  []SentenceEntry   `json:"sentences"`
}

// DefaultLesson returns the built-in Unit 2 lesson ("Tata'ang a Mata").
// Audio keys drop the apostrophe from the headword.
func DefaultLesson() Lesson {
	return Lesson{
		Title:      "阿美語小教室",
		Unit:       "Unit 2",
		Heading:    "Tata'ang a Mata",
		Subtitle:   "很大的眼睛",
		Instructor: "高春美",
		Materials:  "高春美",
		Vocabulary: []VocabularyEntry{
			{Headword: "Tata'ang", Translation: "很大", Icon: "🐘", GestureHint: "張開雙臂畫大圓", AudioKey: "Tataang"},
			{Headword: "Mata", Translation: "眼睛", Icon: "👀", GestureHint: "指指眼睛", AudioKey: "Mata"},
			{Headword: "Takola'", Translation: "青蛙", Icon: "🐸", GestureHint: "學青蛙跳", AudioKey: "Takola"},
		},
		Sentences: []SentenceEntry{
			{Phrase: "Tata'ang ko mata no takola'.", Translation: "青蛙的眼睛很大。", AudioKey: "sentence_tataang"},
		},
	}
}
