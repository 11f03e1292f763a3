package store_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/neonpress/neonpress/internal/dbpool"
	"github.com/neonpress/neonpress/internal/models"
	"github.com/neonpress/neonpress/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestBase creates a Base plus a fresh category and user for this test,
// all cleaned up afterwards. The category slug and username are derived from
// a random hex prefix so parallel packages never collide.
func setupTestBase(t *testing.T) (store.Base, *models.Category, string) {
	t.Helper()

	env := getTestEnv(t)
	ctx := context.Background()

	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	slug := "t" + hex[:8]
	username := "u" + hex[:8]

	var cat models.Category
	err := env.pool.QueryRow(ctx,
		`INSERT INTO categories (slug, name, color, sort_order, is_active)
		 VALUES ($1, $2, '#123456', 999, TRUE)
		 RETURNING id, slug, name, color, sort_order, is_active, is_system, created_at, updated_at`,
		slug, fmt.Sprintf("Test %s", slug),
	).Scan(&cat.ID, &cat.Slug, &cat.Name, &cat.Color, &cat.SortOrder,
		&cat.IsActive, &cat.IsSystem, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		t.Fatalf("creating test category: %v", err)
	}

	_, err = env.pool.Exec(ctx,
		"INSERT INTO users (username, role, api_key_hash) VALUES ($1, 'author', $2)",
		username, hex[:32]+hex[:32],
	)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	t.Cleanup(func() {
		cleanCtx := context.Background()
		env.pool.Exec(cleanCtx, "DELETE FROM posts WHERE category_id = $1", cat.ID) //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM categories WHERE id = $1", cat.ID)     //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM users WHERE username = $1", username)  //nolint:errcheck // best-effort cleanup
	})

	return store.Base{Pool: env.pool, Log: env.log}, &cat, username
}

// createTestPost inserts a post through the store and fails the test on error.
func createTestPost(t *testing.T, ps *store.PostStore, username string, cat *models.Category, title string) *models.Post {
	t.Helper()

	req := models.CreatePostRequest{
		Title:    title,
		Category: cat.Slug,
		Date:     "2024-03-01",
		Excerpt:  "excerpt for " + title,
		Content:  "content for " + title,
	}

	p, err := ps.CreatePost(context.Background(), username, req, cat, nil)
	if err != nil {
		t.Fatalf("CreatePost(%q): %v", title, err)
	}
	return p
}

// testEmbedding returns a full-width vector whose first component is seed,
// so distinct seeds produce distinct distances.
func testEmbedding(seed float32) []float32 {
	v := make([]float32, 1024)
	v[0] = seed
	return v
}

func TestGetUserByAPIKey(t *testing.T) {
	env := getTestEnv(t)
	base, _, _ := setupTestBase(t)
	ctx := context.Background()

	apiKey := "store-test-key-" + uuid.New().String()
	username := "u" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]

	// Hash the way the lookup does: sha256 hex of the raw key.
	sum := sha256.Sum256([]byte(apiKey))
	hashed := hex.EncodeToString(sum[:])
	if _, err := env.pool.Exec(ctx,
		"INSERT INTO users (username, role, api_key_hash) VALUES ($1, 'admin', $2)",
		username, hashed,
	); err != nil {
		t.Fatalf("inserting user: %v", err)
	}
	t.Cleanup(func() {
		env.pool.Exec(context.Background(), "DELETE FROM users WHERE username = $1", username) //nolint:errcheck // best-effort cleanup
	})

	u, err := base.GetUserByAPIKey(ctx, apiKey)
	if err != nil {
		t.Fatalf("GetUserByAPIKey: %v", err)
	}
	if u.Username != username {
		t.Errorf("Username = %q, want %q", u.Username, username)
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want %q", u.Role, models.RoleAdmin)
	}

	_, err = base.GetUserByAPIKey(ctx, "no-such-key")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("unknown key: got %v, want ErrUserNotFound", err)
	}
}
