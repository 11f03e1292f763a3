package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/neonpress/neonpress/internal/models"
)

// PostStore handles post CRUD operations.
type PostStore struct {
	Base
}

// NewPostStore creates a new PostStore.
func NewPostStore(base Base) *PostStore {
	return &PostStore{Base: base}
}

// GetPost returns a single post by ID with its category slug resolved.
func (s *PostStore) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+postColumns+postFrom+` WHERE p.id = $1`, postID)

	p, err := scanPost(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPostNotFound
		}

		return nil, fmt.Errorf("scanning post: %w", err)
	}

	return p, nil
}

// CreatePost inserts a new post and returns the created record. The embedding
// may be nil when the provider is unavailable; the row is persisted either way.
func (s *PostStore) CreatePost(
	ctx context.Context,
	username string,
	req models.CreatePostRequest,
	category *models.Category,
	embedding []float32,
) (*models.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var vec *string
	if embedding != nil {
		v := formatEmbedding(embedding)
		vec = &v
	}

	p := &models.Post{
		Username:   username,
		Title:      req.Title,
		CategoryID: category.ID,
		Category:   category.Slug,
		Date:       req.Date,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
	}

	err := s.Pool.QueryRow(ctx,
		`INSERT INTO posts (username, title, category_id, date, excerpt, content, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::vector)
		 RETURNING id, created_at, updated_at`,
		username, req.Title, category.ID, req.Date, req.Excerpt, req.Content, vec,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting post: %w", err)
	}

	s.notify("posts", "insert")

	return p, nil
}

// buildPostUpdateQuery constructs the SET clause and arguments for UpdatePost.
func buildPostUpdateQuery(
	req models.UpdatePostRequest,
	categoryID *string,
	embedding []float32,
	reEmbed bool,
) (setClauses []string, args []any) {
	setClauses = make([]string, 0, 6)
	args = make([]any, 0, 7)
	argIdx := 1

	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Title != nil {
		add("title", *req.Title)
	}

	if req.Date != nil {
		add("date", *req.Date)
	}

	if req.Excerpt != nil {
		add("excerpt", *req.Excerpt)
	}

	if req.Content != nil {
		add("content", *req.Content)
	}

	if categoryID != nil {
		add("category_id", *categoryID)
	}

	// A re-embed with a nil vector clears the stored embedding: the text
	// changed and the old vector no longer describes it.
	if reEmbed {
		var vec *string
		if embedding != nil {
			v := formatEmbedding(embedding)
			vec = &v
		}

		setClauses = append(setClauses, fmt.Sprintf("embedding = $%d::vector", argIdx))
		args = append(args, vec)
	}

	return setClauses, args
}

// UpdatePost applies a partial update and returns the updated record.
// The embedding is only touched when reEmbed is true.
func (s *PostStore) UpdatePost(
	ctx context.Context,
	postID string,
	req models.UpdatePostRequest,
	categoryID *string,
	embedding []float32,
	reEmbed bool,
) (*models.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	setClauses, args := buildPostUpdateQuery(req, categoryID, embedding, reEmbed)
	if len(setClauses) == 0 {
		return s.GetPost(ctx, postID)
	}

	query := fmt.Sprintf(
		"UPDATE posts SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "),
		len(args)+1,
	)
	args = append(args, postID)

	tag, err := s.Pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing post update: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, models.ErrPostNotFound
	}

	p, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.notify("posts", "update")

	return p, nil
}

// DeletePost removes a post by ID.
func (s *PostStore) DeletePost(ctx context.Context, postID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", postID)
	if err != nil {
		return fmt.Errorf("executing post delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrPostNotFound
	}

	s.notify("posts", "delete")

	return nil
}

// CountPosts returns the total number of posts.
func (s *PostStore) CountPosts(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var total int
	if err := s.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM posts").Scan(&total); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}

	return total, nil
}

// CountsByCategory returns post counts keyed by category ID. Categories
// without posts are absent from the map.
func (s *PostStore) CountsByCategory(ctx context.Context) (map[string]int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		"SELECT category_id, COUNT(*) FROM posts GROUP BY category_id")
	if err != nil {
		return nil, fmt.Errorf("counting posts by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var categoryID string
		var count int

		if err := rows.Scan(&categoryID, &count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}

		counts[categoryID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}

	return counts, nil
}
