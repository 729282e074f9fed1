package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/infra/postgres"
)

// DailyWordRepository manages date-to-word assignments.
type DailyWordRepository struct {
	db postgres.DBTX
}

// NewDailyWordRepository creates a new DailyWordRepository.
func NewDailyWordRepository(db postgres.DBTX) *DailyWordRepository {
	return &DailyWordRepository{db: db}
}

// GetByDate retrieves the assignment for a specific date together with its
// resolved word. Returns ErrDailyWordNotFound if no assignment exists.
func (r *DailyWordRepository) GetByDate(ctx context.Context, date time.Time) (*entities.DailyWordWithWord, error) {
	date = date.UTC().Truncate(24 * time.Hour)

	query := `
		SELECT dw.id, dw.word_id, dw.date, dw.created_at, ` + prefixedWordColumns + `
		FROM daily_words dw
		JOIN words w ON w.id = dw.word_id
		WHERE dw.date = $1
	`

	result, err := scanDailyWordWithWord(r.db.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDailyWordNotFound
		}
		return nil, fmt.Errorf("get daily word by date: %w", err)
	}

	return result, nil
}

// Recent retrieves the limit most recent assignments paired with their
// words, ordered by date descending. Assignments whose word no longer
// resolves are dropped by the join rather than reported as an error.
func (r *DailyWordRepository) Recent(ctx context.Context, limit int) ([]entities.DailyWordWithWord, error) {
	query := `
		SELECT dw.id, dw.word_id, dw.date, dw.created_at, ` + prefixedWordColumns + `
		FROM daily_words dw
		JOIN words w ON w.id = dw.word_id
		ORDER BY dw.date DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent daily words: %w", err)
	}
	defer rows.Close()

	var results []entities.DailyWordWithWord
	for rows.Next() {
		result, err := scanDailyWordWithWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily word: %w", err)
		}
		results = append(results, *result)
	}

	return results, rows.Err()
}

// Create inserts an assignment for the given date. The date-uniqueness
// constraint is the backstop for concurrent first access: if another caller
// already assigned the date, Create returns ErrDailyWordExists and the
// caller is expected to re-fetch the winner.
func (r *DailyWordRepository) Create(ctx context.Context, wordID int, date time.Time) (*entities.DailyWord, error) {
	date = date.UTC().Truncate(24 * time.Hour)

	query := `
		INSERT INTO daily_words (word_id, date)
		VALUES ($1, $2)
		ON CONFLICT (date) DO NOTHING
		RETURNING id, word_id, date, created_at
	`

	var dw entities.DailyWord
	err := r.db.QueryRow(ctx, query, wordID, date).Scan(&dw.ID, &dw.WordID, &dw.Date, &dw.CreatedAt)
	if err != nil {
		// DO NOTHING swallows the conflicting insert, so no row comes back.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDailyWordExists
		}
		return nil, fmt.Errorf("create daily word: %w", err)
	}

	return &dw, nil
}

const prefixedWordColumns = `w.id, w.turkish, w.english, w.pronunciation, w.part_of_speech,
	w.example_turkish_1, w.example_english_1, w.example_turkish_2, w.example_english_2,
	w.notes, w.audio_url`

func scanDailyWordWithWord(row pgx.Row) (*entities.DailyWordWithWord, error) {
	var result entities.DailyWordWithWord
	dw := &result.DailyWord
	w := &result.Word

	err := row.Scan(
		&dw.ID, &dw.WordID, &dw.Date, &dw.CreatedAt,
		&w.ID,
		&w.Turkish,
		&w.English,
		&w.Pronunciation,
		&w.PartOfSpeech,
		&w.ExampleTurkish1,
		&w.ExampleEnglish1,
		&w.ExampleTurkish2,
		&w.ExampleEnglish2,
		&w.Notes,
		&w.AudioURL,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
