package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/neonpress/neonpress/internal/models"
)

// CategoryStore resolves category slugs. Categories are owned by the admin
// tooling; this store is strictly read-only.
type CategoryStore struct {
	Base
}

// NewCategoryStore creates a new CategoryStore.
func NewCategoryStore(base Base) *CategoryStore {
	return &CategoryStore{Base: base}
}

// GetCategoryBySlug returns the category with the given slug.
func (s *CategoryStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)

	c, err := scanCategory(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCategoryNotFound
		}

		return nil, fmt.Errorf("scanning category: %w", err)
	}

	return c, nil
}

// ListActiveCategories returns only active categories in display order.
// This backs the public category listing.
func (s *CategoryStore) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE is_active ORDER BY sort_order, created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying active categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

// ListCategories returns all categories, including inactive ones, in display
// order. Stats reporting includes inactive categories and zero counts.
func (s *CategoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY sort_order, created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}
