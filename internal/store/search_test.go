package store_test

import (
	"context"
	"testing"

	"github.com/neonpress/neonpress/internal/models"
	"github.com/neonpress/neonpress/internal/store"
)

func TestKeywordSearch(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ss := store.NewSearchStore(base)
	ctx := context.Background()

	createTestPost(t, ps, username, cat, "Wavetable Oscillators Explained")
	createTestPost(t, ps, username, cat, "A Short History of Drum Machines")

	posts, total, err := ss.KeywordSearch(ctx, "wavetable", cat.ID, models.SortCreatedAt, "DESC", 10, 0)
	if err != nil {
		t.Fatalf("KeywordSearch: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	if len(posts) != 1 || posts[0].Title != "Wavetable Oscillators Explained" {
		t.Errorf("posts = %+v, want the wavetable post", posts)
	}
}

func TestKeywordSearchEmptyKeywordReturnsAll(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ss := store.NewSearchStore(base)
	ctx := context.Background()

	createTestPost(t, ps, username, cat, "First")
	createTestPost(t, ps, username, cat, "Second")

	_, total, err := ss.KeywordSearch(ctx, "", cat.ID, models.SortCreatedAt, "DESC", 10, 0)
	if err != nil {
		t.Fatalf("KeywordSearch: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
}

func TestKeywordSearchPagination(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ss := store.NewSearchStore(base)
	ctx := context.Background()

	for _, title := range []string{"Page A", "Page B", "Page C"} {
		createTestPost(t, ps, username, cat, title)
	}

	posts, total, err := ss.KeywordSearch(ctx, "", cat.ID, models.SortTitle, "ASC", 2, 2)
	if err != nil {
		t.Fatalf("KeywordSearch: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(posts) != 1 || posts[0].Title != "Page C" {
		t.Errorf("offset page = %+v, want only Page C", posts)
	}
}

func TestVectorSearchRanksByDistance(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ss := store.NewSearchStore(base)
	es := store.NewEmbeddingStore(base)
	ctx := context.Background()

	near := createTestPost(t, ps, username, cat, "Near Post")
	far := createTestPost(t, ps, username, cat, "Far Post")
	createTestPost(t, ps, username, cat, "Unembedded Post")

	if err := es.UpdatePostEmbedding(ctx, near.ID, testEmbedding(1)); err != nil {
		t.Fatalf("UpdatePostEmbedding: %v", err)
	}
	if err := es.UpdatePostEmbedding(ctx, far.ID, testEmbedding(10)); err != nil {
		t.Fatalf("UpdatePostEmbedding: %v", err)
	}

	posts, total, err := ss.VectorSearch(ctx, testEmbedding(0), cat.ID, 10, 0)
	if err != nil {
		t.Fatalf("VectorSearch: %v", err)
	}

	// The unembedded post is excluded from both the rows and the total.
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}
	if posts[0].ID != near.ID {
		t.Errorf("first result = %q, want nearest post %q", posts[0].Title, "Near Post")
	}
	if posts[1].ID != far.ID {
		t.Errorf("second result = %q, want %q", posts[1].Title, "Far Post")
	}
}

func TestVectorSearchCategoryFilter(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ss := store.NewSearchStore(base)
	es := store.NewEmbeddingStore(base)
	ctx := context.Background()

	p := createTestPost(t, ps, username, cat, "Filtered In")
	if err := es.UpdatePostEmbedding(ctx, p.ID, testEmbedding(1)); err != nil {
		t.Fatalf("UpdatePostEmbedding: %v", err)
	}

	// A filter on a different category excludes the post.
	posts, total, err := ss.VectorSearch(ctx, testEmbedding(0), "00000000-0000-0000-0000-000000000000", 10, 0)
	if err != nil {
		t.Fatalf("VectorSearch: %v", err)
	}
	if total != 0 || len(posts) != 0 {
		t.Errorf("got %d posts (total %d), want none", len(posts), total)
	}
}
