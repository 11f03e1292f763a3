package store

import (
	"context"
	"fmt"

	"github.com/neonpress/neonpress/internal/models"
)

// EmbeddingStore handles vector embedding persistence.
type EmbeddingStore struct {
	Base
}

// NewEmbeddingStore creates a new EmbeddingStore.
func NewEmbeddingStore(base Base) *EmbeddingStore {
	return &EmbeddingStore{Base: base}
}

// UpdatePostEmbedding sets the embedding vector for a single post without
// touching any other column.
func (s *EmbeddingStore) UpdatePostEmbedding(ctx context.Context, postID string, embedding []float32) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx,
		`UPDATE posts SET embedding = $1::vector WHERE id = $2`,
		formatEmbedding(embedding), postID,
	)
	if err != nil {
		return fmt.Errorf("executing embedding update: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrPostNotFound
	}

	return nil
}

// ListPostsWithoutEmbeddings returns every post with a NULL embedding,
// oldest first. The ordering makes backfill progress deterministic and
// repeatable after a partial failure.
func (s *EmbeddingStore) ListPostsWithoutEmbeddings(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT `+postColumns+postFrom+`
		 WHERE p.embedding IS NULL
		 ORDER BY p.created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying posts without embeddings: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}
