// Package localstore persists client-side state as one JSON file per key
// under a data directory, mirroring the browser local-storage model: keys
// are independent, there is no transactional grouping across them, and a
// failed or corrupt read degrades to the zero value rather than an error.
// Concurrent processes writing the same key race last-write-wins; no
// cross-process locking exists.
package localstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/srs"
)

// Storage keys, one file each.
const (
	keyTodayWord     = "today_word.json"
	keyWordHistory   = "word_history.json"
	keySearchedWords = "searched_words.json"
	keyFlashcards    = "flashcards.json"
)

// Caps on the cache sizes.
const (
	maxSearchedWords = 50
	maxHistoryWords  = 20
)

// Store reads and writes the local practice state.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a Store rooted at dir on the given filesystem.
func New(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

func (s *Store) read(key string, v any) error {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, key))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, key), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// SaveTodayWord caches the current word of the day.
func (s *Store) SaveTodayWord(today entities.DailyWordWithWord) error {
	return s.write(keyTodayWord, today)
}

// TodayWord returns the cached word of the day, or nil if none is cached.
func (s *Store) TodayWord() *entities.DailyWordWithWord {
	var today entities.DailyWordWithWord
	if err := s.read(keyTodayWord, &today); err != nil {
		return nil
	}
	return &today
}

// SaveHistory caches the daily-word history, most recent first, capped.
func (s *Store) SaveHistory(history []entities.DailyWordWithWord) error {
	if len(history) > maxHistoryWords {
		history = history[:maxHistoryWords]
	}
	return s.write(keyWordHistory, history)
}

// History returns the cached daily-word history, or nil if none is cached.
func (s *Store) History() []entities.DailyWordWithWord {
	var history []entities.DailyWordWithWord
	if err := s.read(keyWordHistory, &history); err != nil {
		return nil
	}
	return history
}

// AddSearchedWord puts a word at the front of the searched-words cache.
// Words already present keep their position; the cache is capped at
// maxSearchedWords entries.
func (s *Store) AddSearchedWord(word entities.Word) error {
	words := s.SearchedWords()

	for _, w := range words {
		if w.ID == word.ID {
			return nil
		}
	}

	words = append([]entities.Word{word}, words...)
	if len(words) > maxSearchedWords {
		words = words[:maxSearchedWords]
	}

	return s.write(keySearchedWords, words)
}

// SearchedWords returns the searched-words cache, most recent first.
func (s *Store) SearchedWords() []entities.Word {
	var words []entities.Word
	if err := s.read(keySearchedWords, &words); err != nil {
		return nil
	}
	return words
}

// WordByID looks a word up across the local caches: today's word first,
// then the searched-words cache. Returns nil when the word is not cached.
func (s *Store) WordByID(id int) *entities.Word {
	if today := s.TodayWord(); today != nil && today.Word.ID == id {
		word := today.Word
		return &word
	}

	for _, w := range s.SearchedWords() {
		if w.ID == id {
			word := w
			return &word
		}
	}

	return nil
}

// Flashcards returns the flashcard collection face of the store, suitable
// for driving the spaced-repetition engine.
func (s *Store) Flashcards() srs.Store {
	return flashcardStore{s: s}
}

type flashcardStore struct {
	s *Store
}

func (f flashcardStore) Load() ([]srs.Card, error) {
	var cards []srs.Card
	if err := f.s.read(keyFlashcards, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (f flashcardStore) Save(cards []srs.Card) error {
	if cards == nil {
		cards = []srs.Card{}
	}
	return f.s.write(keyFlashcards, cards)
}
