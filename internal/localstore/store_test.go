package localstore

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/srs"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	s, err := New(fs, "data")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, fs
}

func word(id int) entities.Word {
	return entities.Word{
		ID:      id,
		Turkish: "kelime" + strconv.Itoa(id),
		English: "word" + strconv.Itoa(id),
	}
}

func TestTodayWordRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	if got := s.TodayWord(); got != nil {
		t.Fatalf("TodayWord on empty store = %+v, want nil", got)
	}

	today := entities.DailyWordWithWord{
		DailyWord: entities.DailyWord{
			ID:     1,
			WordID: 3,
			Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		Word: word(3),
	}
	if err := s.SaveTodayWord(today); err != nil {
		t.Fatalf("SaveTodayWord: %v", err)
	}

	got := s.TodayWord()
	if got == nil {
		t.Fatal("TodayWord returned nil after save")
	}
	if got.Word.ID != 3 {
		t.Errorf("cached word id = %d, want 3", got.Word.ID)
	}
	if !got.DailyWord.Date.Equal(today.DailyWord.Date) {
		t.Errorf("cached date = %v, want %v", got.DailyWord.Date, today.DailyWord.Date)
	}
}

func TestHistoryIsCapped(t *testing.T) {
	s, _ := newTestStore(t)

	history := make([]entities.DailyWordWithWord, 0, 30)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		history = append(history, entities.DailyWordWithWord{
			DailyWord: entities.DailyWord{ID: i + 1, WordID: i + 1, Date: base.AddDate(0, 0, -i)},
			Word:      word(i + 1),
		})
	}

	if err := s.SaveHistory(history); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}

	got := s.History()
	if len(got) != 20 {
		t.Fatalf("cached history has %d entries, want the cap of 20", len(got))
	}
	// The most recent entries survive the cap.
	if got[0].DailyWord.ID != 1 {
		t.Errorf("first cached entry id = %d, want 1", got[0].DailyWord.ID)
	}
}

func TestSearchedWordsDedupAndCap(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 1; i <= 60; i++ {
		if err := s.AddSearchedWord(word(i)); err != nil {
			t.Fatalf("AddSearchedWord(%d): %v", i, err)
		}
	}

	got := s.SearchedWords()
	if len(got) != 50 {
		t.Fatalf("cache has %d words, want the cap of 50", len(got))
	}
	// Most recent first; the oldest entries fell off.
	if got[0].ID != 60 {
		t.Errorf("newest cached word id = %d, want 60", got[0].ID)
	}
	if got[len(got)-1].ID != 11 {
		t.Errorf("oldest cached word id = %d, want 11", got[len(got)-1].ID)
	}

	// Re-adding a cached word does not duplicate it or grow the cache.
	if err := s.AddSearchedWord(word(30)); err != nil {
		t.Fatalf("AddSearchedWord again: %v", err)
	}
	got = s.SearchedWords()
	if len(got) != 50 {
		t.Fatalf("cache has %d words after re-add, want 50", len(got))
	}
	count := 0
	for _, w := range got {
		if w.ID == 30 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("word 30 appears %d times, want 1", count)
	}
}

func TestWordByIDChecksAllCaches(t *testing.T) {
	s, _ := newTestStore(t)

	if got := s.WordByID(1); got != nil {
		t.Fatalf("WordByID on empty store = %+v, want nil", got)
	}

	if err := s.SaveTodayWord(entities.DailyWordWithWord{
		DailyWord: entities.DailyWord{ID: 1, WordID: 1, Date: time.Now().UTC()},
		Word:      word(1),
	}); err != nil {
		t.Fatalf("SaveTodayWord: %v", err)
	}
	if err := s.AddSearchedWord(word(2)); err != nil {
		t.Fatalf("AddSearchedWord: %v", err)
	}

	if got := s.WordByID(1); got == nil || got.ID != 1 {
		t.Errorf("WordByID(1) = %+v, want today's word", got)
	}
	if got := s.WordByID(2); got == nil || got.ID != 2 {
		t.Errorf("WordByID(2) = %+v, want the searched word", got)
	}
	if got := s.WordByID(3); got != nil {
		t.Errorf("WordByID(3) = %+v, want nil", got)
	}
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	s, fs := newTestStore(t)

	if err := afero.WriteFile(fs, filepath.Join("data", "word_history.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := afero.WriteFile(fs, filepath.Join("data", "today_word.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := s.History(); got != nil {
		t.Errorf("History over corrupt file = %+v, want nil", got)
	}
	if got := s.TodayWord(); got != nil {
		t.Errorf("TodayWord over mistyped file = %+v, want nil", got)
	}
}

func TestFlashcardsRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	engine := srs.NewEngine(s.Flashcards())

	if err := engine.Add(word(1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := engine.Grade(word(1), true); err != nil {
		t.Fatalf("Grade: %v", err)
	}

	// A fresh engine over the same store sees the persisted deck.
	reloaded := srs.NewEngine(s.Flashcards())
	cards, err := reloaded.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("reloaded deck has %d cards, want 1", len(cards))
	}
	if cards[0].Level != srs.Level1 {
		t.Errorf("reloaded level = %d, want %d", cards[0].Level, srs.Level1)
	}
	if cards[0].LastReview == nil {
		t.Error("reloaded card lost its last review date")
	}

	// Removing the last card leaves an empty deck, not a missing file.
	if err := reloaded.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	cards, err = srs.NewEngine(s.Flashcards()).All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("deck after remove has %d cards, want 0", len(cards))
	}
}
