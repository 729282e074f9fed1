package service

import (
	"context"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
)

// StoryRepository is the story access the story service needs.
type StoryRepository interface {
	GetByID(ctx context.Context, id int) (*entities.Story, error)
	GetAll(ctx context.Context) ([]entities.Story, error)
	GetByDifficulty(ctx context.Context, level string) ([]entities.Story, error)
	Create(ctx context.Context, story entities.Story) (*entities.Story, error)
	Words(ctx context.Context, storyID int) ([]entities.StoryWordWithWord, error)
	AddWord(ctx context.Context, storyID, wordID int) (*entities.StoryWord, error)
}

type StoryService struct {
	stories StoryRepository
	words   WordRepository
}

func NewStoryService(stories StoryRepository, words WordRepository) *StoryService {
	return &StoryService{stories: stories, words: words}
}

func (s *StoryService) GetByID(ctx context.Context, id int) (*entities.Story, error) {
	return s.stories.GetByID(ctx, id)
}

func (s *StoryService) GetAll(ctx context.Context) ([]entities.Story, error) {
	return s.stories.GetAll(ctx)
}

func (s *StoryService) GetByDifficulty(ctx context.Context, level string) ([]entities.Story, error) {
	return s.stories.GetByDifficulty(ctx, level)
}

func (s *StoryService) Create(ctx context.Context, story entities.Story) (*entities.Story, error) {
	return s.stories.Create(ctx, story)
}

func (s *StoryService) Words(ctx context.Context, storyID int) ([]entities.StoryWordWithWord, error) {
	return s.stories.Words(ctx, storyID)
}

// AddWord links an existing word to an existing story.
func (s *StoryService) AddWord(ctx context.Context, storyID, wordID int) (*entities.StoryWord, error) {
	if _, err := s.stories.GetByID(ctx, storyID); err != nil {
		return nil, err
	}
	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		return nil, err
	}

	return s.stories.AddWord(ctx, storyID, wordID)
}
