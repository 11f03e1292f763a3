package api_test

import (
	"context"

	"github.com/neonpress/neonpress/internal/models"
)

// mockCatalog implements api.PostCatalog with function fields.
type mockCatalog struct {
	listFn            func(ctx context.Context, q models.ListPostsQuery) (*models.PostPage, error)
	getFn             func(ctx context.Context, postID string) (*models.Post, error)
	createFn          func(ctx context.Context, user models.User, req models.CreatePostRequest) (*models.Post, error)
	updateFn          func(ctx context.Context, user models.User, postID string, req models.UpdatePostRequest) (*models.Post, error)
	deleteFn          func(ctx context.Context, user models.User, postID string) error
	totalFn           func(ctx context.Context) (*models.PostsTotal, error)
	categoriesStatsFn func(ctx context.Context) (*models.CategoriesStats, error)
}

func (m *mockCatalog) List(ctx context.Context, q models.ListPostsQuery) (*models.PostPage, error) {
	return m.listFn(ctx, q)
}

func (m *mockCatalog) Get(ctx context.Context, postID string) (*models.Post, error) {
	return m.getFn(ctx, postID)
}

func (m *mockCatalog) Create(ctx context.Context, user models.User, req models.CreatePostRequest) (*models.Post, error) {
	return m.createFn(ctx, user, req)
}

func (m *mockCatalog) Update(ctx context.Context, user models.User, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	return m.updateFn(ctx, user, postID, req)
}

func (m *mockCatalog) Delete(ctx context.Context, user models.User, postID string) error {
	return m.deleteFn(ctx, user, postID)
}

func (m *mockCatalog) Total(ctx context.Context) (*models.PostsTotal, error) {
	return m.totalFn(ctx)
}

func (m *mockCatalog) CategoriesStats(ctx context.Context) (*models.CategoriesStats, error) {
	return m.categoriesStatsFn(ctx)
}

// mockCategoryLister implements api.CategoryLister.
type mockCategoryLister struct {
	listActiveFn func(ctx context.Context) ([]models.Category, error)
}

func (m *mockCategoryLister) ListActive(ctx context.Context) ([]models.Category, error) {
	return m.listActiveFn(ctx)
}
