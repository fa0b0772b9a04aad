package service

import (
	"context"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/models"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
)

type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	cats, err := s.categories.All(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	return cats, nil
}

func (s *CategoryService) Get(ctx context.Context, id int) (*models.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	if c == nil {
		return nil, apperr.NotFound("Category not found")
	}
	return c, nil
}

func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	n, err := s.categories.Count(ctx)
	if err != nil {
		return 0, apperr.Store("Internal server error", err)
	}
	return n, nil
}
