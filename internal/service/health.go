package service

import "sync/atomic"

// Health tracks process-wide degradation state for the semantic search
// feature. All transitions are one-directional: a path that goes unhealthy
// stays unhealthy until the process restarts. A single failure (bad
// credentials, outage, missing pgvector index) disables the feature instead
// of re-attempting the external call on every request; the keyword path and
// plain CRUD keep working either way.
//
// The flags are monotonic booleans, so concurrent writers converge on the
// same final state without locking.
type Health struct {
	embeddingDown atomic.Bool
	vectorDown    atomic.Bool
	backfillDone  atomic.Bool
}

// NewHealth returns an all-healthy state with backfill not yet done.
func NewHealth() *Health {
	return &Health{}
}

// EmbeddingHealthy reports whether the embedding provider is still usable.
func (h *Health) EmbeddingHealthy() bool {
	return !h.embeddingDown.Load()
}

// MarkEmbeddingUnhealthy permanently disables the embedding provider for
// this process.
func (h *Health) MarkEmbeddingUnhealthy() {
	h.embeddingDown.Store(true)
}

// VectorHealthy reports whether vector-ranked queries are still usable.
func (h *Health) VectorHealthy() bool {
	return !h.vectorDown.Load()
}

// MarkVectorUnhealthy permanently disables vector-ranked queries for this
// process. Independent of the provider flag: a healthy provider with a
// missing index degrades only the query side.
func (h *Health) MarkVectorUnhealthy() {
	h.vectorDown.Store(true)
}

// BackfillDone reports whether a backfill pass has observed zero posts
// without embeddings.
func (h *Health) BackfillDone() bool {
	return h.backfillDone.Load()
}

// MarkBackfillDone records that every existing post holds an embedding.
// New unembedded posts (written while the provider was down) are picked up
// by write-path embedding, not by another backfill pass.
func (h *Health) MarkBackfillDone() {
	h.backfillDone.Store(true)
}
