package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
)

var ErrUnknownAudioRef = errors.New("unknown audio reference")

type CatalogRepository interface {
	Lesson() entities.Lesson
	VocabularyAt(i int) (entities.VocabularyEntry, error)
	SentenceAt(i int) (entities.SentenceEntry, error)
}

type QuestionSource interface {
	Question(step int) (entities.Question, bool)
}

// AudioRefKind names the catalog section an utterance comes from.
type AudioRefKind string

const (
	RefVocabulary AudioRefKind = "vocabulary"
	RefSentence   AudioRefKind = "sentence"
	RefQuestion   AudioRefKind = "quiz"
)

// AudioRef points at an utterance offered by the front-ends.
type AudioRef struct {
	Kind  AudioRefKind
	Index int
}

// Playback is what a front-end needs to render an audio control.
type Playback struct {
	Source  *entities.AudioSource // nil when nothing can be played
	Missing *MissingAssetError    // recording was expected but not found
	Muted   bool                  // speech synthesis failed
}

// LessonService serves lesson content and resolves its audio.
type LessonService struct {
	catalog          CatalogRepository
	questions        QuestionSource
	resolver         *AudioResolver
	fallbackToSpeech bool
	logger           *zap.Logger
}

func NewLessonService(
	catalog CatalogRepository,
	questions QuestionSource,
	resolver *AudioResolver,
	fallbackToSpeech bool,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		catalog:          catalog,
		questions:        questions,
		resolver:         resolver,
		fallbackToSpeech: fallbackToSpeech,
		logger:           logger,
	}
}

// Lesson returns the lesson content.
func (s *LessonService) Lesson(_ context.Context) entities.Lesson {
	return s.catalog.Lesson()
}

// Utterance returns the text and asset key behind ref.
func (s *LessonService) Utterance(ref AudioRef) (text, key string, err error) {
	switch ref.Kind {
	case RefVocabulary:
		e, err := s.catalog.VocabularyAt(ref.Index)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrUnknownAudioRef, err)
		}
		return e.Headword, e.AudioKey, nil

	case RefSentence:
		e, err := s.catalog.SentenceAt(ref.Index)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrUnknownAudioRef, err)
		}
		return e.Phrase, e.AudioKey, nil

	case RefQuestion:
		q, ok := s.questions.Question(ref.Index)
		if !ok || !q.HasAudio() {
			return "", "", fmt.Errorf("%w: quiz step %d", ErrUnknownAudioRef, ref.Index)
		}
		return q.AudioText, q.AudioKey, nil

	default:
		return "", "", fmt.Errorf("%w: kind %q", ErrUnknownAudioRef, ref.Kind)
	}
}

// Playback resolves the audio for ref. Audio failures never produce an error:
// they are reported through Missing and Muted. The error is only returned for
// references the catalog does not know.
func (s *LessonService) Playback(ctx context.Context, ref AudioRef) (*Playback, error) {
	text, key, err := s.Utterance(ref)
	if err != nil {
		return nil, err
	}

	src, err := s.resolver.Resolve(ctx, text, key)
	if err == nil {
		return &Playback{Source: src}, nil
	}

	pb := &Playback{}

	var missing *MissingAssetError
	switch {
	case errors.As(err, &missing):
		pb.Missing = missing
		if !s.fallbackToSpeech {
			return pb, nil
		}
		src, err = s.resolver.Synthesize(ctx, text)
		if err != nil {
			pb.Muted = true
			return pb, nil
		}
		pb.Source = src
		return pb, nil

	case errors.Is(err, ErrInvalidAssetKey):
		s.logger.Warn("invalid audio asset key", zap.String("asset_key", key))
		pb.Missing = &MissingAssetError{Key: key, Path: key}
		return pb, nil

	default:
		pb.Muted = true
		return pb, nil
	}
}
