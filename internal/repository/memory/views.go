package memory

import (
	"context"
	"time"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
)

// The view types expose per-aggregate slices of the Store under the same
// method names as the postgres repositories, so either backend can be
// injected into the services.

// WordView is the word-catalog face of the Store.
type WordView struct{ s *Store }

// DailyWordView is the daily-assignment face of the Store.
type DailyWordView struct{ s *Store }

// StoryView is the story face of the Store.
type StoryView struct{ s *Store }

func (s *Store) Words() *WordView           { return &WordView{s: s} }
func (s *Store) DailyWords() *DailyWordView { return &DailyWordView{s: s} }
func (s *Store) Stories() *StoryView        { return &StoryView{s: s} }

func (v *WordView) GetByID(ctx context.Context, id int) (*entities.Word, error) {
	return v.s.GetByID(ctx, id)
}

func (v *WordView) GetAll(ctx context.Context) ([]entities.Word, error) {
	return v.s.GetAll(ctx)
}

func (v *WordView) Search(ctx context.Context, query string) ([]entities.Word, error) {
	return v.s.Search(ctx, query)
}

func (v *WordView) Create(ctx context.Context, word entities.Word) (*entities.Word, error) {
	return v.s.Create(ctx, word)
}

func (v *DailyWordView) GetByDate(ctx context.Context, date time.Time) (*entities.DailyWordWithWord, error) {
	return v.s.GetByDate(ctx, date)
}

func (v *DailyWordView) Recent(ctx context.Context, limit int) ([]entities.DailyWordWithWord, error) {
	return v.s.Recent(ctx, limit)
}

func (v *DailyWordView) Create(ctx context.Context, wordID int, date time.Time) (*entities.DailyWord, error) {
	return v.s.CreateDaily(ctx, wordID, date)
}

func (v *StoryView) GetByID(ctx context.Context, id int) (*entities.Story, error) {
	return v.s.GetStoryByID(ctx, id)
}

func (v *StoryView) GetAll(ctx context.Context) ([]entities.Story, error) {
	return v.s.GetAllStories(ctx)
}

func (v *StoryView) GetByDifficulty(ctx context.Context, level string) ([]entities.Story, error) {
	return v.s.GetStoriesByDifficulty(ctx, level)
}

func (v *StoryView) Create(ctx context.Context, story entities.Story) (*entities.Story, error) {
	return v.s.CreateStory(ctx, story)
}

func (v *StoryView) Words(ctx context.Context, storyID int) ([]entities.StoryWordWithWord, error) {
	return v.s.StoryWords(ctx, storyID)
}

func (v *StoryView) AddWord(ctx context.Context, storyID, wordID int) (*entities.StoryWord, error) {
	return v.s.AddWordToStory(ctx, storyID, wordID)
}
