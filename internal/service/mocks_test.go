package service

import (
	"context"
	"sync"

	"github.com/neonpress/neonpress/internal/models"
)

// mockPostStore records calls and returns configured responses.
type mockPostStore struct {
	mu    sync.Mutex
	calls []string

	getPost          func(ctx context.Context, postID string) (*models.Post, error)
	createPost       func(ctx context.Context, username string, req models.CreatePostRequest, category *models.Category, embedding []float32) (*models.Post, error)
	updatePost       func(ctx context.Context, postID string, req models.UpdatePostRequest, categoryID *string, embedding []float32, reEmbed bool) (*models.Post, error)
	deletePost       func(ctx context.Context, postID string) error
	countPosts       func(ctx context.Context) (int, error)
	countsByCategory func(ctx context.Context) (map[string]int, error)
}

func (m *mockPostStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockPostStore) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	m.record("GetPost")
	return m.getPost(ctx, postID)
}

func (m *mockPostStore) CreatePost(ctx context.Context, username string, req models.CreatePostRequest, category *models.Category, embedding []float32) (*models.Post, error) {
	m.record("CreatePost")
	return m.createPost(ctx, username, req, category, embedding)
}

func (m *mockPostStore) UpdatePost(ctx context.Context, postID string, req models.UpdatePostRequest, categoryID *string, embedding []float32, reEmbed bool) (*models.Post, error) {
	m.record("UpdatePost")
	return m.updatePost(ctx, postID, req, categoryID, embedding, reEmbed)
}

func (m *mockPostStore) DeletePost(ctx context.Context, postID string) error {
	m.record("DeletePost")
	return m.deletePost(ctx, postID)
}

func (m *mockPostStore) CountPosts(ctx context.Context) (int, error) {
	m.record("CountPosts")
	return m.countPosts(ctx)
}

func (m *mockPostStore) CountsByCategory(ctx context.Context) (map[string]int, error) {
	m.record("CountsByCategory")
	return m.countsByCategory(ctx)
}

// mockSearchStore records calls and returns configured responses.
type mockSearchStore struct {
	mu    sync.Mutex
	calls []string

	keywordSearch func(ctx context.Context, keyword, categoryID, sort, order string, limit, offset int) ([]models.Post, int, error)
	vectorSearch  func(ctx context.Context, embedding []float32, categoryID string, limit, offset int) ([]models.Post, int, error)
}

func (m *mockSearchStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockSearchStore) KeywordSearch(ctx context.Context, keyword, categoryID, sort, order string, limit, offset int) ([]models.Post, int, error) {
	m.record("KeywordSearch")
	return m.keywordSearch(ctx, keyword, categoryID, sort, order, limit, offset)
}

func (m *mockSearchStore) VectorSearch(ctx context.Context, embedding []float32, categoryID string, limit, offset int) ([]models.Post, int, error) {
	m.record("VectorSearch")
	return m.vectorSearch(ctx, embedding, categoryID, limit, offset)
}

// mockCategoryLookup records calls and returns configured responses.
type mockCategoryLookup struct {
	mu    sync.Mutex
	calls []string

	getCategoryBySlug func(ctx context.Context, slug string) (*models.Category, error)
	listCategories    func(ctx context.Context) ([]models.Category, error)
}

func (m *mockCategoryLookup) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockCategoryLookup) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	m.record("GetCategoryBySlug")
	return m.getCategoryBySlug(ctx, slug)
}

func (m *mockCategoryLookup) ListCategories(ctx context.Context) ([]models.Category, error) {
	m.record("ListCategories")
	return m.listCategories(ctx)
}

// mockEmbedder records calls and returns configured responses.
type mockEmbedder struct {
	mu    sync.Mutex
	calls int

	configured bool
	generate   func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.generate(ctx, text)
}

func (m *mockEmbedder) Configured() bool {
	return m.configured
}

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockBackfillStore records calls and returns configured responses.
type mockBackfillStore struct {
	mu    sync.Mutex
	calls []string

	listPostsWithoutEmbeddings func(ctx context.Context) ([]models.Post, error)
	updatePostEmbedding        func(ctx context.Context, postID string, embedding []float32) error
}

func (m *mockBackfillStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockBackfillStore) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *mockBackfillStore) ListPostsWithoutEmbeddings(ctx context.Context) ([]models.Post, error) {
	m.record("ListPostsWithoutEmbeddings")
	return m.listPostsWithoutEmbeddings(ctx)
}

func (m *mockBackfillStore) UpdatePostEmbedding(ctx context.Context, postID string, embedding []float32) error {
	m.record("UpdatePostEmbedding")
	return m.updatePostEmbedding(ctx, postID, embedding)
}

// mockBackfill records triggers.
type mockBackfill struct {
	mu       sync.Mutex
	triggers int
}

func (m *mockBackfill) Trigger() {
	m.mu.Lock()
	m.triggers++
	m.mu.Unlock()
}

func (m *mockBackfill) triggerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.triggers
}
