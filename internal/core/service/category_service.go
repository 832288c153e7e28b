package service

import (
	"context"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

type categoryService struct {
	categories ports.CategoryRepository
	ref        *Referential
}

func NewCategoryService(categories ports.CategoryRepository, ref *Referential) ports.CategoryService {
	return &categoryService{categories: categories, ref: ref}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) ListSubCategories(ctx context.Context, categoryID int64) ([]*domain.SubCategory, error) {
	if err := s.ref.CategoryExists(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.categories.ListSubCategories(ctx, categoryID)
}
