// Package srs implements the flashcard spaced-repetition engine. Each card
// climbs a fixed level ladder with fixed review intervals; grading moves a
// card one level at a time in either direction.
package srs

import (
	"time"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
)

// Level is a card's position on the mastery ladder.
type Level int

const (
	LevelNew Level = iota // just added, due immediately
	Level1                // review after 1 day
	Level2                // review after 3 days
	Level3                // review after 7 days
	Level4                // review after 14 days
	Level5                // review after 30 days
	LevelMastered         // mastered, review rarely
)

// reviewIntervalDays maps a level to the number of days until the next review.
var reviewIntervalDays = map[Level]int{
	LevelNew:      0,
	Level1:        1,
	Level2:        3,
	Level3:        7,
	Level4:        14,
	Level5:        30,
	LevelMastered: 60,
}

// Card is one word under active review. The word payload is a snapshot
// taken when the card was added: the collection must work offline, so later
// edits to the catalog are deliberately not reflected here.
type Card struct {
	Word       entities.Word `json:"word"`
	Level      Level         `json:"level"`
	NextReview time.Time     `json:"nextReviewDate"`
	LastReview *time.Time    `json:"lastReviewDate"`
}

func clampLevel(l Level) Level {
	if l < LevelNew {
		return LevelNew
	}
	if l > LevelMastered {
		return LevelMastered
	}
	return l
}
