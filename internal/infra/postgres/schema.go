package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bootstrap creates the application tables if they do not exist yet.
// There is no migration framework; the schema is small and append-only.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id SERIAL PRIMARY KEY,
			turkish TEXT NOT NULL UNIQUE,
			english TEXT NOT NULL,
			pronunciation TEXT NOT NULL,
			part_of_speech TEXT NOT NULL,
			example_turkish_1 TEXT NOT NULL,
			example_english_1 TEXT NOT NULL,
			example_turkish_2 TEXT NOT NULL,
			example_english_2 TEXT NOT NULL,
			notes TEXT NOT NULL,
			audio_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS daily_words (
			id SERIAL PRIMARY KEY,
			word_id INTEGER NOT NULL REFERENCES words(id),
			date DATE NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS stories (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			title_english TEXT NOT NULL,
			difficulty_level TEXT NOT NULL,
			content_turkish TEXT NOT NULL,
			content_english TEXT NOT NULL,
			vocabulary_words TEXT[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS story_words (
			id SERIAL PRIMARY KEY,
			story_id INTEGER NOT NULL REFERENCES stories(id),
			word_id INTEGER NOT NULL REFERENCES words(id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	return nil
}
