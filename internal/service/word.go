package service

import (
	"context"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
)

// WordRepository is the catalog access the word service needs.
type WordRepository interface {
	GetByID(ctx context.Context, id int) (*entities.Word, error)
	GetAll(ctx context.Context) ([]entities.Word, error)
	Search(ctx context.Context, query string) ([]entities.Word, error)
	Create(ctx context.Context, word entities.Word) (*entities.Word, error)
}

type WordService struct {
	repository WordRepository
}

func NewWordService(repository WordRepository) *WordService {
	return &WordService{repository: repository}
}

func (s *WordService) GetByID(ctx context.Context, id int) (*entities.Word, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *WordService) GetAll(ctx context.Context) ([]entities.Word, error) {
	return s.repository.GetAll(ctx)
}

func (s *WordService) Search(ctx context.Context, query string) ([]entities.Word, error) {
	return s.repository.Search(ctx, query)
}

func (s *WordService) Create(ctx context.Context, word entities.Word) (*entities.Word, error) {
	return s.repository.Create(ctx, word)
}
