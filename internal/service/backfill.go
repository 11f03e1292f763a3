package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/neonpress/neonpress/internal/metrics"
	"github.com/neonpress/neonpress/internal/models"
)

// BackfillStore is the data-access interface Backfiller depends on.
type BackfillStore interface {
	ListPostsWithoutEmbeddings(ctx context.Context) ([]models.Post, error)
	UpdatePostEmbedding(ctx context.Context, postID string, embedding []float32) error
}

// Backfiller computes embeddings for posts that predate the feature or were
// written while the provider was unhealthy. At most one pass runs at a time;
// concurrent triggers attach to the in-flight pass instead of starting
// another. A pass is sequential to bound load on the provider, and one embed
// failure ends the whole pass.
type Backfiller struct {
	store  BackfillStore
	embed  Embedder
	health *Health
	log    *logrus.Logger

	group singleflight.Group
}

// NewBackfiller creates a Backfiller.
func NewBackfiller(store BackfillStore, embed Embedder, health *Health, log *logrus.Logger) *Backfiller {
	return &Backfiller{store: store, embed: embed, health: health, log: log}
}

// Trigger starts a backfill pass if none is running. Fire-and-forget: it
// returns immediately and the pass is detached from the caller's request,
// so triggering can never slow down or fail the triggering read.
func (b *Backfiller) Trigger() {
	if b.health.BackfillDone() || !b.health.EmbeddingHealthy() || !b.embed.Configured() {
		return
	}

	go func() {
		// singleflight collapses concurrent triggers onto one running pass;
		// once the pass returns, the key is released and a later trigger
		// starts a fresh pass.
		b.group.Do("backfill", func() (any, error) { //nolint:errcheck // pass outcome is recorded in Health.
			b.run(context.Background())
			return nil, nil
		})
	}()
}

// run executes one backfill pass: oldest unembedded posts first, one
// provider call at a time. Already-embedded posts are excluded by the
// absent-embedding filter, so re-running after a partial failure only
// touches genuinely missing ones.
func (b *Backfiller) run(ctx context.Context) {
	// Re-check: a trigger that passed the gate but entered the group after
	// an earlier pass finished would otherwise start a redundant pass.
	if b.health.BackfillDone() || !b.health.EmbeddingHealthy() {
		return
	}

	metrics.BackfillRuns.Inc()

	posts, err := b.store.ListPostsWithoutEmbeddings(ctx)
	if err != nil {
		b.health.MarkEmbeddingUnhealthy()
		b.log.WithError(err).Warn("embedding backfill failed; disabled for this process")

		return
	}

	for i := range posts {
		embedding, err := b.embed.Generate(ctx, posts[i].EmbeddingText())
		if err != nil {
			b.health.MarkEmbeddingUnhealthy()
			b.log.WithError(err).WithField("post_id", posts[i].ID).
				Warn("embedding backfill failed; disabled for this process")

			return
		}

		if err := b.store.UpdatePostEmbedding(ctx, posts[i].ID, embedding); err != nil {
			b.health.MarkEmbeddingUnhealthy()
			b.log.WithError(err).WithField("post_id", posts[i].ID).
				Warn("embedding backfill failed; disabled for this process")

			return
		}
	}

	b.health.MarkBackfillDone()
	b.log.WithField("backfilled", len(posts)).Info("embedding backfill complete")
}
