// Package store provides focused, single-concern data access stores
// for the neonpress content catalog.
//
// Each store owns one domain (posts, categories, search, embeddings, users)
// and embeds shared helpers (Pool, logger) via the Base struct. Stores never
// import each other — shared logic lives in this file or in dedicated helper
// files (scan.go, helpers.go).
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/neonpress/neonpress/internal/dbpool"
	"github.com/neonpress/neonpress/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// notify sends a pg_notify on the catalog_changes channel (best-effort, post-commit).
func (b *Base) notify(table, op string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, _ := json.Marshal(map[string]any{ //nolint:errcheck // static keys, cannot fail.
		"table": table,
		"op":    op,
	})
	if _, err := b.Pool.Exec(ctx, "SELECT pg_notify('catalog_changes', $1)", string(payload)); err != nil {
		b.Log.WithError(err).Warn("failed to send " + op + " " + table + " notification")
	}
}

// GetUserByAPIKey looks up a user by API key hash.
func (b *Base) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	hash := sha256.Sum256([]byte(apiKey))
	apiKeyHash := hex.EncodeToString(hash[:])

	var u models.User

	err := b.Pool.QueryRow(ctx,
		"SELECT username, role FROM users WHERE api_key_hash = $1", apiKeyHash,
	).Scan(&u.Username, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}

		return nil, fmt.Errorf("looking up user by API key: %w", err)
	}

	return &u, nil
}
