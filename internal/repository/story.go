package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/infra/postgres"
)

const storyColumns = `id, title, title_english, difficulty_level,
	content_turkish, content_english, vocabulary_words`

// StoryRepository provides access to reading stories and their word links.
type StoryRepository struct {
	db postgres.DBTX
}

// NewStoryRepository creates a new StoryRepository.
func NewStoryRepository(db postgres.DBTX) *StoryRepository {
	return &StoryRepository{db: db}
}

// GetByID retrieves a single story. Returns ErrStoryNotFound if absent.
func (r *StoryRepository) GetByID(ctx context.Context, id int) (*entities.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`

	story, err := scanStory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("get story by id: %w", err)
	}

	return story, nil
}

// GetAll retrieves all stories.
func (r *StoryRepository) GetAll(ctx context.Context) ([]entities.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all stories: %w", err)
	}
	defer rows.Close()

	return collectStories(rows)
}

// GetByDifficulty retrieves stories of the given difficulty level.
func (r *StoryRepository) GetByDifficulty(ctx context.Context, level string) ([]entities.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE difficulty_level = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, level)
	if err != nil {
		return nil, fmt.Errorf("get stories by difficulty: %w", err)
	}
	defer rows.Close()

	return collectStories(rows)
}

// Create inserts a new story and returns it with its assigned id.
func (r *StoryRepository) Create(ctx context.Context, story entities.Story) (*entities.Story, error) {
	query := `
		INSERT INTO stories (title, title_english, difficulty_level,
			content_turkish, content_english, vocabulary_words)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		story.Title,
		story.TitleEnglish,
		story.DifficultyLevel,
		story.ContentTurkish,
		story.ContentEnglish,
		story.VocabularyWords,
	).Scan(&story.ID)
	if err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}

	return &story, nil
}

// Words retrieves the word links for a story, each paired with its resolved
// word. Links whose word fails to resolve are dropped by the join.
func (r *StoryRepository) Words(ctx context.Context, storyID int) ([]entities.StoryWordWithWord, error) {
	query := `
		SELECT sw.id, sw.story_id, sw.word_id, ` + prefixedWordColumns + `
		FROM story_words sw
		JOIN words w ON w.id = sw.word_id
		WHERE sw.story_id = $1
		ORDER BY sw.id
	`

	rows, err := r.db.Query(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("get story words: %w", err)
	}
	defer rows.Close()

	var results []entities.StoryWordWithWord
	for rows.Next() {
		var result entities.StoryWordWithWord
		sw := &result.StoryWord
		w := &result.Word

		err := rows.Scan(
			&sw.ID, &sw.StoryID, &sw.WordID,
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
			return nil, fmt.Errorf("scan story word: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// AddWord links a word to a story.
func (r *StoryRepository) AddWord(ctx context.Context, storyID, wordID int) (*entities.StoryWord, error) {
	query := `
		INSERT INTO story_words (story_id, word_id)
		VALUES ($1, $2)
		RETURNING id
	`

	sw := entities.StoryWord{StoryID: storyID, WordID: wordID}
	if err := r.db.QueryRow(ctx, query, storyID, wordID).Scan(&sw.ID); err != nil {
		return nil, fmt.Errorf("add word to story: %w", err)
	}

	return &sw, nil
}

func scanStory(row pgx.Row) (*entities.Story, error) {
	var s entities.Story
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.TitleEnglish,
		&s.DifficultyLevel,
		&s.ContentTurkish,
		&s.ContentEnglish,
		&s.VocabularyWords,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectStories(rows pgx.Rows) ([]entities.Story, error) {
	var stories []entities.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, *story)
	}

	return stories, rows.Err()
}
