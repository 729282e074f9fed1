package srs

import (
	"time"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
)

// Store persists the flashcard collection. Every operation loads the whole
// collection, applies its change, and saves it back; the engine itself
// carries no state between calls.
type Store interface {
	Load() ([]Card, error)
	Save(cards []Card) error
}

// Engine applies grading operations to the flashcard collection.
type Engine struct {
	store Store
	now   func() time.Time
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
	}
}

// load reads the collection, treating a failed or corrupt read as empty.
// Losing the local cache is preferable to making every practice operation
// fail.
func (e *Engine) load() []Card {
	cards, err := e.store.Load()
	if err != nil {
		return nil
	}
	return cards
}

// Add puts a word under review at level new, due immediately. Adding a word
// that already has a card is a no-op.
func (e *Engine) Add(word entities.Word) error {
	cards := e.load()

	for _, c := range cards {
		if c.Word.ID == word.ID {
			return nil
		}
	}

	cards = append(cards, Card{
		Word:       word,
		Level:      LevelNew,
		NextReview: e.now().UTC(),
		LastReview: nil,
	})

	return e.store.Save(cards)
}

// Grade records a review outcome: the card moves up one level when correct
// and down one when not, clamped to the ladder, and its next review is
// scheduled from the new level's interval.
//
// Grading a word with no card adds one first and then applies the grade.
// Several call sites grade words they never explicitly added, so the
// tolerant behavior is the contract.
func (e *Engine) Grade(word entities.Word, wasCorrect bool) error {
	cards := e.load()

	idx := -1
	for i, c := range cards {
		if c.Word.ID == word.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		cards = append(cards, Card{
			Word:       word,
			Level:      LevelNew,
			NextReview: e.now().UTC(),
		})
		idx = len(cards) - 1
	}

	e.applyGrade(&cards[idx], wasCorrect)

	return e.store.Save(cards)
}

func (e *Engine) applyGrade(card *Card, wasCorrect bool) {
	if wasCorrect {
		card.Level = clampLevel(card.Level + 1)
	} else {
		card.Level = clampLevel(card.Level - 1)
	}

	now := e.now().UTC()
	card.LastReview = &now
	card.NextReview = now.AddDate(0, 0, reviewIntervalDays[card.Level])
}

// Remove deletes the card for a word. Removing an absent card is a no-op.
func (e *Engine) Remove(wordID int) error {
	cards := e.load()

	kept := cards[:0]
	for _, c := range cards {
		if c.Word.ID != wordID {
			kept = append(kept, c)
		}
	}

	return e.store.Save(kept)
}

// Reset forces a card back to level new, due immediately, as if it had
// just been added.
func (e *Engine) Reset(wordID int) error {
	cards := e.load()

	for i := range cards {
		if cards[i].Word.ID == wordID {
			cards[i].Level = LevelNew
			cards[i].NextReview = e.now().UTC()
			cards[i].LastReview = nil
			return e.store.Save(cards)
		}
	}

	return nil
}

// Due returns the cards whose next review is at or before asOf.
func (e *Engine) Due(asOf time.Time) ([]Card, error) {
	var due []Card
	for _, c := range e.load() {
		if !c.NextReview.After(asOf) {
			due = append(due, c)
		}
	}
	return due, nil
}

// DueNow returns the cards due at the current time.
func (e *Engine) DueNow() ([]Card, error) {
	return e.Due(e.now().UTC())
}

// All returns the whole collection in insertion order.
func (e *Engine) All() ([]Card, error) {
	return e.load(), nil
}

// Get returns the card for a word, or nil if the word is not under review.
func (e *Engine) Get(wordID int) (*Card, error) {
	for _, c := range e.load() {
		if c.Word.ID == wordID {
			card := c
			return &card, nil
		}
	}
	return nil, nil
}
