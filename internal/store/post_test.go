package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neonpress/neonpress/internal/models"
	"github.com/neonpress/neonpress/internal/store"
)

func TestCreatePost(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)

	p := createTestPost(t, ps, username, cat, "Store Create Test")

	if p.ID == "" {
		t.Error("ID is empty")
	}
	if p.Username != username {
		t.Errorf("Username = %q, want %q", p.Username, username)
	}
	if p.Category != cat.Slug {
		t.Errorf("Category = %q, want %q", p.Category, cat.Slug)
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestGetPost(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ctx := context.Background()

	created := createTestPost(t, ps, username, cat, "Store Roundtrip Test")

	got, err := ps.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "Store Roundtrip Test" {
		t.Errorf("Title = %q, want %q", got.Title, "Store Roundtrip Test")
	}
	if got.Category != cat.Slug {
		t.Errorf("Category = %q, want %q", got.Category, cat.Slug)
	}
}

func TestGetPostNotFound(t *testing.T) {
	base, _, _ := setupTestBase(t)
	ps := store.NewPostStore(base)

	_, err := ps.GetPost(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("got %v, want ErrPostNotFound", err)
	}
}

func TestUpdatePost(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ctx := context.Background()

	created := createTestPost(t, ps, username, cat, "Before Update")

	newTitle := "After Update"
	req := models.UpdatePostRequest{Title: &newTitle}

	updated, err := ps.UpdatePost(ctx, created.ID, req, nil, nil, false)
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.Title != "After Update" {
		t.Errorf("Title = %q, want %q", updated.Title, "After Update")
	}
	// Untouched fields survive.
	if updated.Excerpt != created.Excerpt {
		t.Errorf("Excerpt changed: %q -> %q", created.Excerpt, updated.Excerpt)
	}
}

func TestUpdatePostClearsEmbedding(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	es := store.NewEmbeddingStore(base)
	ctx := context.Background()

	created := createTestPost(t, ps, username, cat, "Embedded Then Cleared")
	if err := es.UpdatePostEmbedding(ctx, created.ID, testEmbedding(1)); err != nil {
		t.Fatalf("UpdatePostEmbedding: %v", err)
	}

	// reEmbed with a nil vector wipes the stored embedding.
	newContent := "rewritten body"
	req := models.UpdatePostRequest{Content: &newContent}
	if _, err := ps.UpdatePost(ctx, created.ID, req, nil, nil, true); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	pending, err := es.ListPostsWithoutEmbeddings(ctx)
	if err != nil {
		t.Fatalf("ListPostsWithoutEmbeddings: %v", err)
	}
	found := false
	for _, p := range pending {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("post should have a NULL embedding after clearing update")
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	base, _, _ := setupTestBase(t)
	ps := store.NewPostStore(base)

	title := "x"
	req := models.UpdatePostRequest{Title: &title}
	_, err := ps.UpdatePost(context.Background(), "00000000-0000-0000-0000-000000000000", req, nil, nil, false)
	if !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("got %v, want ErrPostNotFound", err)
	}
}

func TestDeletePost(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ctx := context.Background()

	created := createTestPost(t, ps, username, cat, "Doomed Post")

	if err := ps.DeletePost(ctx, created.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	_, err := ps.GetPost(ctx, created.ID)
	if !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("after delete: got %v, want ErrPostNotFound", err)
	}

	if err := ps.DeletePost(ctx, created.ID); !errors.Is(err, models.ErrPostNotFound) {
		t.Errorf("double delete: got %v, want ErrPostNotFound", err)
	}
}

func TestCountsByCategory(t *testing.T) {
	base, cat, username := setupTestBase(t)
	ps := store.NewPostStore(base)
	ctx := context.Background()

	createTestPost(t, ps, username, cat, "Count One")
	createTestPost(t, ps, username, cat, "Count Two")

	counts, err := ps.CountsByCategory(ctx)
	if err != nil {
		t.Fatalf("CountsByCategory: %v", err)
	}
	if counts[cat.ID] != 2 {
		t.Errorf("counts[%q] = %d, want 2", cat.ID, counts[cat.ID])
	}
}
