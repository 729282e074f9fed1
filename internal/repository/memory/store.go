// Package memory provides an in-memory storage backend. A Store is
// constructed once at process start and passed to the services, so tests
// and the memory-backed server mode get isolated state instead of
// package-level globals.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/repository"
)

// Store keeps the whole catalog in memory behind a single mutex.
// It implements the same operations as the postgres repositories.
type Store struct {
	mu sync.RWMutex

	words      []entities.Word
	daily      map[string]entities.DailyWord // keyed by date in YYYY-MM-DD form
	stories    []entities.Story
	storyWords []entities.StoryWord

	nextWordID      int
	nextDailyID     int
	nextStoryID     int
	nextStoryWordID int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		daily:           make(map[string]entities.DailyWord),
		nextWordID:      1,
		nextDailyID:     1,
		nextStoryID:     1,
		nextStoryWordID: 1,
	}
}

func dateKey(date time.Time) string {
	return date.UTC().Format("2006-01-02")
}

// GetByID retrieves a word by id.
func (s *Store) GetByID(_ context.Context, id int) (*entities.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.words {
		if w.ID == id {
			word := w
			return &word, nil
		}
	}

	return nil, repository.ErrWordNotFound
}

// GetAll retrieves the full word catalog.
func (s *Store) GetAll(_ context.Context) ([]entities.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words := make([]entities.Word, len(s.words))
	copy(words, s.words)
	return words, nil
}

// Search finds words whose Turkish or English term contains the query,
// case-insensitively.
func (s *Store) Search(_ context.Context, query string) ([]entities.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)

	var matches []entities.Word
	for _, w := range s.words {
		if strings.Contains(strings.ToLower(w.Turkish), q) ||
			strings.Contains(strings.ToLower(w.English), q) {
			matches = append(matches, w)
		}
	}

	return matches, nil
}

// Create inserts a new word and returns it with its assigned id.
func (s *Store) Create(_ context.Context, word entities.Word) (*entities.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	word.ID = s.nextWordID
	s.nextWordID++
	s.words = append(s.words, word)

	return &word, nil
}

// GetByDate retrieves the assignment for a date with its resolved word.
func (s *Store) GetByDate(_ context.Context, date time.Time) (*entities.DailyWordWithWord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dw, ok := s.daily[dateKey(date)]
	if !ok {
		return nil, repository.ErrDailyWordNotFound
	}

	word, err := s.wordByIDLocked(dw.WordID)
	if err != nil {
		return nil, err
	}

	return &entities.DailyWordWithWord{DailyWord: dw, Word: *word}, nil
}

// Recent retrieves the limit most recent assignments, date descending.
// A missing word on an existing assignment indicates a corrupted store and
// is reported as an error rather than dropped.
func (s *Store) Recent(_ context.Context, limit int) ([]entities.DailyWordWithWord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignments := make([]entities.DailyWord, 0, len(s.daily))
	for _, dw := range s.daily {
		assignments = append(assignments, dw)
	}
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].Date.After(assignments[j].Date)
	})

	if limit < len(assignments) {
		assignments = assignments[:limit]
	}

	results := make([]entities.DailyWordWithWord, 0, len(assignments))
	for _, dw := range assignments {
		word, err := s.wordByIDLocked(dw.WordID)
		if err != nil {
			return nil, fmt.Errorf("daily word %d references missing word %d", dw.ID, dw.WordID)
		}
		results = append(results, entities.DailyWordWithWord{DailyWord: dw, Word: *word})
	}

	return results, nil
}

// CreateDaily inserts an assignment for the given date. The first writer
// wins; a second insert for the same date returns ErrDailyWordExists.
func (s *Store) CreateDaily(_ context.Context, wordID int, date time.Time) (*entities.DailyWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dateKey(date)
	if _, exists := s.daily[key]; exists {
		return nil, repository.ErrDailyWordExists
	}

	dw := entities.DailyWord{
		ID:        s.nextDailyID,
		WordID:    wordID,
		Date:      date.UTC().Truncate(24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	s.nextDailyID++
	s.daily[key] = dw

	return &dw, nil
}

// GetStoryByID retrieves a story by id.
func (s *Store) GetStoryByID(_ context.Context, id int) (*entities.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.stories {
		if st.ID == id {
			story := st
			return &story, nil
		}
	}

	return nil, repository.ErrStoryNotFound
}

// GetAllStories retrieves all stories.
func (s *Store) GetAllStories(_ context.Context) ([]entities.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stories := make([]entities.Story, len(s.stories))
	copy(stories, s.stories)
	return stories, nil
}

// GetStoriesByDifficulty retrieves stories of the given difficulty level.
func (s *Store) GetStoriesByDifficulty(_ context.Context, level string) ([]entities.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stories []entities.Story
	for _, st := range s.stories {
		if st.DifficultyLevel == level {
			stories = append(stories, st)
		}
	}

	return stories, nil
}

// CreateStory inserts a new story and returns it with its assigned id.
func (s *Store) CreateStory(_ context.Context, story entities.Story) (*entities.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story.ID = s.nextStoryID
	s.nextStoryID++
	s.stories = append(s.stories, story)

	return &story, nil
}

// StoryWords retrieves the word links for a story with resolved words.
func (s *Store) StoryWords(_ context.Context, storyID int) ([]entities.StoryWordWithWord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []entities.StoryWordWithWord
	for _, sw := range s.storyWords {
		if sw.StoryID != storyID {
			continue
		}
		word, err := s.wordByIDLocked(sw.WordID)
		if err != nil {
			return nil, fmt.Errorf("story word %d references missing word %d", sw.ID, sw.WordID)
		}
		results = append(results, entities.StoryWordWithWord{StoryWord: sw, Word: *word})
	}

	return results, nil
}

// AddWordToStory links a word to a story.
func (s *Store) AddWordToStory(_ context.Context, storyID, wordID int) (*entities.StoryWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw := entities.StoryWord{
		ID:      s.nextStoryWordID,
		StoryID: storyID,
		WordID:  wordID,
	}
	s.nextStoryWordID++
	s.storyWords = append(s.storyWords, sw)

	return &sw, nil
}

func (s *Store) wordByIDLocked(id int) (*entities.Word, error) {
	for _, w := range s.words {
		if w.ID == id {
			word := w
			return &word, nil
		}
	}
	return nil, repository.ErrWordNotFound
}
