package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/neonpress/neonpress/internal/models"
)

// postColumns lists the columns selected for post queries (excluding the
// embedding vector, which is never returned to callers). All post queries
// join categories to resolve the slug.
const postColumns = `p.id, p.username, p.title, p.category_id, c.slug,
	p.date, p.excerpt, p.content, p.created_at, p.updated_at`

// postFrom is the shared FROM clause pairing each post with its category.
const postFrom = ` FROM posts p JOIN categories c ON c.id = p.category_id`

// categoryColumns lists the columns selected for category queries.
const categoryColumns = `id, slug, name, description, color, sort_order,
	is_active, is_system, created_at, updated_at`

// scanPost scans a single row into a models.Post.
func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	var p models.Post

	err := scan(
		&p.ID,
		&p.Username,
		&p.Title,
		&p.CategoryID,
		&p.Category,
		&p.Date,
		&p.Excerpt,
		&p.Content,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// scanCategory scans a single row into a models.Category.
func scanCategory(scan func(dest ...any) error) (*models.Category, error) {
	var c models.Category

	err := scan(
		&c.ID,
		&c.Slug,
		&c.Name,
		&c.Description,
		&c.Color,
		&c.SortOrder,
		&c.IsActive,
		&c.IsSystem,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// collectPosts scans all rows into a post slice.
func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	posts := make([]models.Post, 0, 16)

	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}

		posts = append(posts, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating post rows: %w", err)
	}

	return posts, nil
}

// collectCategories scans all rows into a category slice.
func collectCategories(rows pgx.Rows) ([]models.Category, error) {
	categories := make([]models.Category, 0, 8)

	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}

		categories = append(categories, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}
