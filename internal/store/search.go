package store

import (
	"context"
	"fmt"

	"github.com/neonpress/neonpress/internal/models"
)

// SearchStore handles keyword-filtered and vector-ranked post listings.
type SearchStore struct {
	Base
}

// NewSearchStore creates a new SearchStore.
func NewSearchStore(base Base) *SearchStore {
	return &SearchStore{Base: base}
}

// sortColumns maps API sort fields to SQL columns. Callers normalize the
// sort field first; anything else falls back to creation time.
var sortColumns = map[string]string{
	models.SortCreatedAt: "p.created_at",
	models.SortDate:      "p.date",
	models.SortTitle:     "p.title",
}

// KeywordSearch lists posts with an optional case-insensitive substring
// filter across title, excerpt, content, and author, an optional category
// filter, explicit ordering, and offset pagination. The returned total counts
// every row matching the filters, not just the returned page.
func (s *SearchStore) KeywordSearch(
	ctx context.Context,
	keyword string,
	categoryID string,
	sort string,
	order string,
	limit int,
	offset int,
) ([]models.Post, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where := " WHERE TRUE"
	args := []any{}
	argIdx := 1

	if categoryID != "" {
		where += fmt.Sprintf(" AND p.category_id = $%d", argIdx)
		args = append(args, categoryID)
		argIdx++
	}

	if keyword != "" {
		where += fmt.Sprintf(
			` AND (p.title ILIKE $%[1]d OR p.excerpt ILIKE $%[1]d OR p.content ILIKE $%[1]d OR p.username ILIKE $%[1]d)`,
			argIdx,
		)
		args = append(args, "%"+keyword+"%")
		argIdx++
	}

	var total int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*)`+postFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting keyword search: %w", err)
	}

	sortCol, ok := sortColumns[sort]
	if !ok {
		sortCol = "p.created_at"
	}

	dir := "DESC"
	if order == "ASC" {
		dir = "ASC"
	}

	query := fmt.Sprintf(
		`SELECT %s%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		postColumns, postFrom, where, sortCol, dir, argIdx, argIdx+1,
	)
	args = append(args, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("executing keyword search: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// VectorSearch lists posts ranked by ascending L2 distance between the
// stored embedding and the query vector, restricted to embedded rows, with
// an optional category filter and offset pagination applied after ranking.
// The returned total counts only embedded rows matching the category filter,
// so it can differ from the keyword path's total for the same filters.
func (s *SearchStore) VectorSearch(
	ctx context.Context,
	embedding []float32,
	categoryID string,
	limit int,
	offset int,
) ([]models.Post, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where := " WHERE p.embedding IS NOT NULL"
	args := []any{formatEmbedding(embedding)}
	argIdx := 2

	// The count query has no $1 vector, so its filter placeholders are
	// numbered separately.
	countWhere := where
	countArgs := []any{}

	if categoryID != "" {
		where += fmt.Sprintf(" AND p.category_id = $%d", argIdx)
		args = append(args, categoryID)
		argIdx++

		countWhere += " AND p.category_id = $1"
		countArgs = append(countArgs, categoryID)
	}

	var total int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*)`+postFrom+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting vector search: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s%s%s ORDER BY p.embedding <-> $1::vector LIMIT $%d OFFSET $%d`,
		postColumns, postFrom, where, argIdx, argIdx+1,
	)
	args = append(args, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("executing vector search: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
