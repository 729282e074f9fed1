package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/repository"
)

// ErrNoWords is returned when an assignment is requested but the catalog
// is empty.
var ErrNoWords = errors.New("no words available")

const defaultHistoryLimit = 10

// DailyWordRepository is the assignment access the daily word service needs.
type DailyWordRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*entities.DailyWordWithWord, error)
	Recent(ctx context.Context, limit int) ([]entities.DailyWordWithWord, error)
	Create(ctx context.Context, wordID int, date time.Time) (*entities.DailyWord, error)
}

// DailyWordService owns the word-of-the-day assignment protocol: exactly one
// word per calendar date, created lazily on first access.
type DailyWordService struct {
	dailyRepo DailyWordRepository
	wordRepo  WordRepository

	rng *rand.Rand // injected so selection is deterministic in tests
}

func NewDailyWordService(dailyRepo DailyWordRepository, wordRepo WordRepository, rng *rand.Rand) *DailyWordService {
	return &DailyWordService{
		dailyRepo: dailyRepo,
		wordRepo:  wordRepo,
		rng:       rng,
	}
}

// GetOrAssign returns the word assigned to the given date, assigning one by
// uniform random selection over the catalog if none exists yet. Time of day
// and zone are ignored; dates compare at day granularity in UTC.
//
// Two concurrent first requests for the same date may both reach the create
// path; the date-uniqueness constraint decides the winner and the loser
// re-fetches, so callers always observe a single assignment per date.
func (s *DailyWordService) GetOrAssign(ctx context.Context, date time.Time) (*entities.DailyWordWithWord, error) {
	date = date.UTC().Truncate(24 * time.Hour)

	existing, err := s.dailyRepo.GetByDate(ctx, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrDailyWordNotFound) {
		return nil, fmt.Errorf("get daily word: %w", err)
	}

	words, err := s.wordRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	picked := words[s.rng.Intn(len(words))]

	dw, err := s.dailyRepo.Create(ctx, picked.ID, date)
	if err != nil {
		// Another caller assigned this date first; return their assignment.
		if errors.Is(err, repository.ErrDailyWordExists) {
			return s.dailyRepo.GetByDate(ctx, date)
		}
		return nil, fmt.Errorf("create daily word: %w", err)
	}

	return &entities.DailyWordWithWord{DailyWord: *dw, Word: picked}, nil
}

// Recent returns the limit most-recently-dated assignments with their
// words, most recent first. A non-positive limit falls back to the default.
func (s *DailyWordService) Recent(ctx context.Context, limit int) ([]entities.DailyWordWithWord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.dailyRepo.Recent(ctx, limit)
}

// Create explicitly assigns a word to a date. The word must exist and the
// date must not be taken.
func (s *DailyWordService) Create(ctx context.Context, wordID int, date time.Time) (*entities.DailyWordWithWord, error) {
	word, err := s.wordRepo.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}

	dw, err := s.dailyRepo.Create(ctx, wordID, date)
	if err != nil {
		return nil, err
	}

	return &entities.DailyWordWithWord{DailyWord: *dw, Word: *word}, nil
}
