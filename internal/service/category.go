package service

import (
	"context"

	"github.com/neonpress/neonpress/internal/models"
)

// CategoryService exposes the public category listing.
type CategoryService struct {
	store CategoryStore
}

// CategoryStore is the data-access interface CategoryService depends on.
type CategoryStore interface {
	ListActiveCategories(ctx context.Context) ([]models.Category, error)
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// ListActive returns active categories in display order.
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	return s.store.ListActiveCategories(ctx)
}
