package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
)

var ErrInvalidQuestionSet = errors.New("invalid question set")

// AnswerResult is the outcome of one answer event.
type AnswerResult struct {
	Outcome  entities.Outcome
	State    entities.QuizState // state after the event
	Question entities.Question  // question the answer was given for
	Feedback string             // success or rejection text
}

// Correct reports whether the answer advanced the quiz.
func (r *AnswerResult) Correct() bool {
	return r.Outcome == entities.OutcomeCorrect
}

// QuizService evaluates answers against the fixed question sequence.
type QuizService struct {
	store     SessionStore
	questions []entities.Question
	matcher   *OptionMatcher
	logger    *zap.Logger
}

func NewQuizService(store SessionStore, questions []entities.Question, logger *zap.Logger) (*QuizService, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	return &QuizService{
		store:     store,
		questions: questions,
		matcher:   NewOptionMatcher(),
		logger:    logger,
	}, nil
}

// State returns the current quiz state of a session.
func (s *QuizService) State(_ context.Context, sessionID string) entities.QuizState {
	return s.store.Get(sessionID)
}

// Question returns the question shown at step.
func (s *QuizService) Question(step int) (entities.Question, bool) {
	if step < 0 || step >= len(s.questions) {
		return entities.Question{}, false
	}
	return s.questions[step], true
}

// Answer applies the learner's choice for the question at step.
// Wrong answers leave the state untouched and carry the rejection feedback.
func (s *QuizService) Answer(_ context.Context, sessionID string, step int, choice string) *AnswerResult {
	if q, ok := s.Question(step); ok {
		choice = s.matcher.Canonical(choice, q.Options)
	}

	var outcome entities.Outcome
	state := s.store.Update(sessionID, func(st entities.QuizState) entities.QuizState {
		var next entities.QuizState
		next, outcome = entities.Transition(st, entities.AnswerEvent(step, choice), s.questions)
		return next
	})

	res := &AnswerResult{
		Outcome: outcome,
		State:   state,
	}

	if q, ok := s.Question(step); ok {
		res.Question = q
		switch outcome {
		case entities.OutcomeCorrect:
			res.Feedback = q.Success
		case entities.OutcomeIncorrect:
			res.Feedback = q.FeedbackFor(choice)
		}
	}

	s.logger.Debug("quiz answer",
		zap.String("session_id", sessionID),
		zap.Int("step", step),
		zap.String("choice", choice),
		zap.String("outcome", string(outcome)),
		zap.Int("score", state.Score),
	)

	return res
}

// Restart resets the session to the first question with a zero score.
func (s *QuizService) Restart(_ context.Context, sessionID string) entities.QuizState {
	state := s.store.Update(sessionID, func(st entities.QuizState) entities.QuizState {
		next, _ := entities.Transition(st, entities.RestartEvent(), s.questions)
		return next
	})

	s.logger.Debug("quiz restarted", zap.String("session_id", sessionID))

	return state
}

func validateQuestions(questions []entities.Question) error {
	if len(questions) != entities.TotalSteps {
		return fmt.Errorf("%w: expected %d questions, got %d", ErrInvalidQuestionSet, entities.TotalSteps, len(questions))
	}

	for i, q := range questions {
		if q.Step != i {
			return fmt.Errorf("%w: question %d has step %d", ErrInvalidQuestionSet, i, q.Step)
		}

		correct := 0
		for _, o := range q.Options {
			if q.IsCorrect(o) {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: question %d has %d correct options", ErrInvalidQuestionSet, i, correct)
		}
	}

	return nil
}
