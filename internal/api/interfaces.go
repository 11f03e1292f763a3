package api

import (
	"context"

	"github.com/neonpress/neonpress/internal/models"
)

// PostCatalog is the service interface behind the post endpoints.
type PostCatalog interface {
	List(ctx context.Context, q models.ListPostsQuery) (*models.PostPage, error)
	Get(ctx context.Context, postID string) (*models.Post, error)
	Create(ctx context.Context, user models.User, req models.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, user models.User, postID string, req models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, user models.User, postID string) error
	Total(ctx context.Context) (*models.PostsTotal, error)
	CategoriesStats(ctx context.Context) (*models.CategoriesStats, error)
}

// CategoryLister is the service interface behind the category endpoints.
type CategoryLister interface {
	ListActive(ctx context.Context) ([]models.Category, error)
}
