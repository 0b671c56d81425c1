package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
)

var (
	ErrEntryNotFound   = errors.New("catalog entry not found")
	ErrDuplicateEntry  = errors.New("duplicate headword")
	ErrEmptyHeadword   = errors.New("empty headword")
	ErrEmptyVocabulary = errors.New("lesson has no vocabulary")
)

// CatalogRepository provides read-only access to the lesson vocabulary and sentences.
type CatalogRepository struct {
	lesson entities.Lesson
	index  map[string]int
}

// NewCatalogRepository loads the lesson from a JSON file.
// An empty path selects the built-in lesson.
func NewCatalogRepository(path string) (*CatalogRepository, error) {
	lesson := entities.DefaultLesson()
	if path != "" {
		var err error
		lesson, err = loadLesson(path)
		if err != nil {
			return nil, err
		}
	}

	return NewCatalogRepositoryFromLesson(lesson)
}

// NewCatalogRepositoryFromLesson validates lesson and wraps it in a repository.
func NewCatalogRepositoryFromLesson(lesson entities.Lesson) (*CatalogRepository, error) {
	if len(lesson.Vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}

	index := make(map[string]int, len(lesson.Vocabulary))
	for i, v := range lesson.Vocabulary {
		if v.Headword == "" {
			return nil, fmt.Errorf("vocabulary #%d: %w", i, ErrEmptyHeadword)
		}
		if _, ok := index[v.Headword]; ok {
			return nil, fmt.Errorf("%q: %w", v.Headword, ErrDuplicateEntry)
		}
		index[v.Headword] = i
	}

	return &CatalogRepository{
		lesson: lesson,
		index:  index,
	}, nil
}

// Lesson returns the lesson metadata together with its entries.
func (r *CatalogRepository) Lesson() entities.Lesson {
	return r.lesson
}

// Vocabulary returns all vocabulary entries in display order.
func (r *CatalogRepository) Vocabulary() []entities.VocabularyEntry {
	return r.lesson.Vocabulary
}

// Sentences returns all practice sentences in display order.
func (r *CatalogRepository) Sentences() []entities.SentenceEntry {
	return r.lesson.Sentences
}

// VocabularyAt returns the vocabulary entry at position i.
func (r *CatalogRepository) VocabularyAt(i int) (entities.VocabularyEntry, error) {
	if i < 0 || i >= len(r.lesson.Vocabulary) {
		return entities.VocabularyEntry{}, ErrEntryNotFound
	}
	return r.lesson.Vocabulary[i], nil
}

// SentenceAt returns the sentence at position i.
func (r *CatalogRepository) SentenceAt(i int) (entities.SentenceEntry, error) {
	if i < 0 || i >= len(r.lesson.Sentences) {
		return entities.SentenceEntry{}, ErrEntryNotFound
	}
	return r.lesson.Sentences[i], nil
}

// ByHeadword looks a vocabulary entry up by its headword.
func (r *CatalogRepository) ByHeadword(headword string) (entities.VocabularyEntry, error) {
	i, ok := r.index[headword]
	if !ok {
		return entities.VocabularyEntry{}, ErrEntryNotFound
	}
	return r.lesson.Vocabulary[i], nil
}

func loadLesson(path string) (entities.Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.Lesson{}, err
	}

	var lesson entities.Lesson
	if err = json.Unmarshal(data, &lesson); err != nil {
		return entities.Lesson{}, fmt.Errorf("failed to unmarshal lesson JSON: %w", err)
	}

	return lesson, nil
}
