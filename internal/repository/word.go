package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/infra/postgres"
)

const wordColumns = `id, turkish, english, pronunciation, part_of_speech,
	example_turkish_1, example_english_1, example_turkish_2, example_english_2,
	notes, audio_url`

// WordRepository provides access to the word catalog.
type WordRepository struct {
	db postgres.DBTX
}

// NewWordRepository creates a new WordRepository.
func NewWordRepository(db postgres.DBTX) *WordRepository {
	return &WordRepository{db: db}
}

// GetByID retrieves a single word by its id.
// Returns ErrWordNotFound if the word doesn't exist.
func (r *WordRepository) GetByID(ctx context.Context, id int) (*entities.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1`

	word, err := scanWord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("get word by id: %w", err)
	}

	return word, nil
}

// GetAll retrieves the full word catalog.
func (r *WordRepository) GetAll(ctx context.Context) ([]entities.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all words: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// Search finds words whose Turkish or English term contains the query,
// case-insensitively.
func (r *WordRepository) Search(ctx context.Context, query string) ([]entities.Word, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	sql := `SELECT ` + wordColumns + `
		FROM words
		WHERE LOWER(turkish) LIKE $1 OR LOWER(english) LIKE $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, sql, pattern)
	if err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// Create inserts a new word and returns it with its assigned id.
func (r *WordRepository) Create(ctx context.Context, word entities.Word) (*entities.Word, error) {
	query := `
		INSERT INTO words (turkish, english, pronunciation, part_of_speech,
			example_turkish_1, example_english_1, example_turkish_2, example_english_2,
			notes, audio_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		word.Turkish,
		word.English,
		word.Pronunciation,
		word.PartOfSpeech,
		word.ExampleTurkish1,
		word.ExampleEnglish1,
		word.ExampleTurkish2,
		word.ExampleEnglish2,
		word.Notes,
		word.AudioURL,
	).Scan(&word.ID)
	if err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}

	return &word, nil
}

func scanWord(row pgx.Row) (*entities.Word, error) {
	var w entities.Word
	err := row.Scan(
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
	return &w, nil
}

func collectWords(rows pgx.Rows) ([]entities.Word, error) {
	var words []entities.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, *word)
	}

	return words, rows.Err()
}
