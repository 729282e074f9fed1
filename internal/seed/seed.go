// Package seed loads the initial word catalog and stories from the assets
// JSON files into an empty store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
)

// WordRepository is the subset of word operations seeding needs.
type WordRepository interface {
	GetAll(ctx context.Context) ([]entities.Word, error)
	Search(ctx context.Context, query string) ([]entities.Word, error)
	Create(ctx context.Context, word entities.Word) (*entities.Word, error)
}

// DailyWordRepository is the subset of assignment operations seeding needs.
type DailyWordRepository interface {
	Create(ctx context.Context, wordID int, date time.Time) (*entities.DailyWord, error)
}

// StoryRepository is the subset of story operations seeding needs.
type StoryRepository interface {
	GetAll(ctx context.Context) ([]entities.Story, error)
	Create(ctx context.Context, story entities.Story) (*entities.Story, error)
	AddWord(ctx context.Context, storyID, wordID int) (*entities.StoryWord, error)
}

// Run seeds the store if the word catalog is empty: the initial words, a
// daily assignment for each of the last days (one word per day), and the
// initial stories. Running against an already-seeded store is a no-op.
func Run(
	ctx context.Context,
	log *zap.Logger,
	words WordRepository,
	daily DailyWordRepository,
	stories StoryRepository,
	wordsPath, storiesPath string,
) error {
	existing, err := words.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("check existing words: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Info("seeding initial words", zap.String("path", wordsPath))

	seedWords, err := loadWords(wordsPath)
	if err != nil {
		return err
	}

	created := make([]entities.Word, 0, len(seedWords))
	for _, w := range seedWords {
		word, err := words.Create(ctx, w)
		if err != nil {
			return fmt.Errorf("seed word %q: %w", w.Turkish, err)
		}
		created = append(created, *word)
	}

	// One assignment per day going back from today, one word each.
	log.Info("seeding daily words")
	today := time.Now().UTC().Truncate(24 * time.Hour)
	days := len(created)
	if days > 10 {
		days = 10
	}
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i)
		if _, err := daily.Create(ctx, created[i].ID, date); err != nil {
			return fmt.Errorf("seed daily word for %s: %w", date.Format("2006-01-02"), err)
		}
	}

	existingStories, err := stories.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("check existing stories: %w", err)
	}
	if len(existingStories) > 0 {
		return nil
	}

	log.Info("seeding initial stories", zap.String("path", storiesPath))

	seedStories, err := loadStories(storiesPath)
	if err != nil {
		return err
	}

	var firstStory *entities.Story
	for _, st := range seedStories {
		story, err := stories.Create(ctx, st)
		if err != nil {
			return fmt.Errorf("seed story %q: %w", st.Title, err)
		}
		if firstStory == nil {
			firstStory = story
		}
	}

	// Link a catalog word into the first story so the story-word join has
	// data from the start.
	if firstStory != nil {
		matches, err := words.Search(ctx, "kitap")
		if err != nil {
			return fmt.Errorf("link story vocabulary: %w", err)
		}
		if len(matches) > 0 {
			if _, err := stories.AddWord(ctx, firstStory.ID, matches[0].ID); err != nil {
				return fmt.Errorf("link story vocabulary: %w", err)
			}
		}
	}

	log.Info("seeding complete",
		zap.Int("words", len(created)),
		zap.Int("stories", len(seedStories)),
	)
	return nil
}

func loadWords(path string) ([]entities.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed words: %w", err)
	}

	var wrapper struct {
		Words []entities.Word `json:"words"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("unmarshal seed words: %w", err)
	}
	if len(wrapper.Words) == 0 {
		return nil, fmt.Errorf("seed file %s contains no words", path)
	}

	return wrapper.Words, nil
}

func loadStories(path string) ([]entities.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed stories: %w", err)
	}

	var wrapper struct {
		Stories []entities.Story `json:"stories"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("unmarshal seed stories: %w", err)
	}

	return wrapper.Stories, nil
}
