package entities

// Quiz steps. StepComplete is terminal and only a restart leaves it.
const (
	StepIdentify  = 0
	StepFillBlank = 1
	StepTranslate = 2
	StepComplete  = 3
)

const (
	TotalSteps      = StepComplete // number of questions in a quiz
	PointsPerAnswer = 100          // score awarded for each correct answer
)

// QuizState is the progress of one session through the quiz.
// Score always equals PointsPerAnswer * Step.
type QuizState struct {
	Step  int `json:"step"`  // current question, StepComplete when finished
	Score int `json:"score"` // cumulative score
}

// NewQuizState returns the initial state of a quiz.
func NewQuizState() QuizState {
	return QuizState{Step: StepIdentify, Score: 0}
}

// Completed reports whether all questions have been answered.
func (s QuizState) Completed() bool {
	return s.Step >= StepComplete
}

// Progress returns the share of answered questions in [0, 1].
func (s QuizState) Progress() float64 {
	if s.Step <= 0 {
		return 0
	}
	if s.Step >= TotalSteps {
		return 1
	}
	return float64(s.Step) / float64(TotalSteps)
}

// EventKind distinguishes quiz events.
type EventKind int

const (
	EventAnswer EventKind = iota
	EventRestart
)

// QuizEvent is a learner action applied to a QuizState.
type QuizEvent struct {
	Kind   EventKind
	Step   int    // question the answer was given for
	Choice string // selected option
}

// AnswerEvent builds an answer to the question at step.
func AnswerEvent(step int, choice string) QuizEvent {
	return QuizEvent{Kind: EventAnswer, Step: step, Choice: choice}
}

// RestartEvent builds a "play again" event.
func RestartEvent() QuizEvent {
	return QuizEvent{Kind: EventRestart}
}

// Outcome describes how an event was handled.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"   // answer accepted, step advanced
	OutcomeIncorrect Outcome = "incorrect" // distractor chosen, state unchanged
	OutcomeRestarted Outcome = "restarted" // state reset to the first question
	OutcomeStale     Outcome = "stale"     // answer for a question that is not current
	OutcomeFinished  Outcome = "finished"  // answer received after completion
)

// Transition applies e to s and returns the resulting state.
// An incorrect answer never changes the state, so retries are unlimited.
func Transition(s QuizState, e QuizEvent, questions []Question) (QuizState, Outcome) {
	if e.Kind == EventRestart {
		return NewQuizState(), OutcomeRestarted
	}

	// A corrupt state is treated as a fresh quiz, score included.
	if s.Step < 0 {
		s = NewQuizState()
	}

	if s.Completed() || s.Step >= len(questions) {
		return s, OutcomeFinished
	}

	if e.Step != s.Step {
		return s, OutcomeStale
	}

	q := questions[s.Step]
	if !q.HasOption(e.Choice) || !q.IsCorrect(e.Choice) {
		return s, OutcomeIncorrect
	}

	return QuizState{
		Step:  s.Step + 1,
		Score: s.Score + PointsPerAnswer,
	}, OutcomeCorrect
}
