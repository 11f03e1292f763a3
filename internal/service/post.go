package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/neonpress/neonpress/internal/models"
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	Configured() bool
}

// PostStore is the data-access interface PostService depends on for CRUD.
type PostStore interface {
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	CreatePost(ctx context.Context, username string, req models.CreatePostRequest, category *models.Category, embedding []float32) (*models.Post, error)
	UpdatePost(ctx context.Context, postID string, req models.UpdatePostRequest, categoryID *string, embedding []float32, reEmbed bool) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
	CountPosts(ctx context.Context) (int, error)
	CountsByCategory(ctx context.Context) (map[string]int, error)
}

// SearchStore is the data-access interface PostService depends on for listing.
type SearchStore interface {
	KeywordSearch(ctx context.Context, keyword, categoryID, sort, order string, limit, offset int) ([]models.Post, int, error)
	VectorSearch(ctx context.Context, embedding []float32, categoryID string, limit, offset int) ([]models.Post, int, error)
}

// CategoryLookup resolves category slugs.
type CategoryLookup interface {
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// BackfillTrigger starts an embedding backfill pass.
type BackfillTrigger interface {
	Trigger()
}

// PostService implements the catalog operations: CRUD with best-effort
// write-path embedding, and listing with a degradable semantic path.
type PostService struct {
	posts      PostStore
	search     SearchStore
	categories CategoryLookup
	embedder   Embedder
	backfill   BackfillTrigger
	health     *Health
	log        *logrus.Logger
}

// NewPostService creates a PostService.
func NewPostService(
	posts PostStore,
	search SearchStore,
	categories CategoryLookup,
	embedder Embedder,
	backfill BackfillTrigger,
	health *Health,
	log *logrus.Logger,
) *PostService {
	return &PostService{
		posts:      posts,
		search:     search,
		categories: categories,
		embedder:   embedder,
		backfill:   backfill,
		health:     health,
		log:        log,
	}
}

// semanticAvailable reports whether the semantic path may be attempted.
func (s *PostService) semanticAvailable() bool {
	return s.embedder.Configured() && s.health.EmbeddingHealthy() && s.health.VectorHealthy()
}

// List returns one page of posts. When semantic text is present and the
// semantic path is healthy, posts are ranked by vector distance; any failure
// along that path marks the matching degradation flag and falls back to the
// keyword path, reusing the semantic text as the keyword unless an explicit
// keyword was also supplied.
func (s *PostService) List(ctx context.Context, q models.ListPostsQuery) (*models.PostPage, error) {
	q.Normalize()

	// Opportunistic: reads are the natural moment to fill embedding gaps.
	if s.backfill != nil {
		s.backfill.Trigger()
	}

	categoryID := ""

	if q.Category != "" {
		category, err := s.categories.GetCategoryBySlug(ctx, q.Category)
		if err != nil {
			if errors.Is(err, models.ErrCategoryNotFound) {
				// Unknown slug is a defined empty result, not an error,
				// and short-circuits before any post query runs.
				return models.EmptyPostPage(q.Page, q.Limit), nil
			}

			return nil, err
		}

		categoryID = category.ID
	}

	offset := (q.Page - 1) * q.Limit
	keyword := q.Keyword

	if q.Semantic != "" {
		if !s.semanticAvailable() {
			keyword = fallbackKeyword(q)
		} else if page, ok := s.trySemantic(ctx, q, categoryID, offset); ok {
			return page, nil
		} else {
			keyword = fallbackKeyword(q)
		}
	}

	items, total, err := s.search.KeywordSearch(ctx, keyword, categoryID, q.Sort, q.Order, q.Limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.PostPage{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// fallbackKeyword merges the search texts for the degraded path: an explicit
// keyword wins, otherwise the semantic text is reused as a keyword.
func fallbackKeyword(q models.ListPostsQuery) string {
	if q.Keyword != "" {
		return q.Keyword
	}

	return q.Semantic
}

// trySemantic attempts the vector-ranked path. It returns ok=false after
// marking the failed path unhealthy, letting the caller fall back.
func (s *PostService) trySemantic(
	ctx context.Context, q models.ListPostsQuery, categoryID string, offset int,
) (*models.PostPage, bool) {
	embedding, err := s.embedder.Generate(ctx, q.Semantic)
	if err != nil {
		s.health.MarkEmbeddingUnhealthy()
		s.log.WithError(err).Warn("embedding provider failed; falling back to keyword search")

		return nil, false
	}

	items, total, err := s.search.VectorSearch(ctx, embedding, categoryID, q.Limit, offset)
	if err != nil {
		s.health.MarkVectorUnhealthy()
		s.log.WithError(err).Warn("vector search failed; falling back to keyword search")

		return nil, false
	}

	return &models.PostPage{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, true
}

// Get returns a single post by ID.
func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	return s.posts.GetPost(ctx, postID)
}

// Create persists a new post authored by the given user. The embedding is
// computed best-effort before the insert; a provider failure marks the
// embedding path unhealthy and the post is stored without a vector. The
// write itself never fails because of embedding trouble.
func (s *PostService) Create(ctx context.Context, user models.User, req models.CreatePostRequest) (*models.Post, error) {
	category, err := s.categories.GetCategoryBySlug(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	if !category.IsActive {
		return nil, models.ErrCategoryInactive
	}

	draft := models.Post{Title: req.Title, Excerpt: req.Excerpt, Content: req.Content}
	embedding := s.embedBestEffort(ctx, draft.EmbeddingText())

	post, err := s.posts.CreatePost(ctx, user.Username, req, category, embedding)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"action": "post.create", "post_id": post.ID, "username": user.Username}).Info("audit")

	return post, nil
}

// Update applies a partial update. Only the author or an admin may update a
// post. The post is re-embedded only when title, excerpt, or content change
// and the provider is still usable; if the attempt fails, the stale vector
// is cleared rather than left describing the old text.
func (s *PostService) Update(ctx context.Context, user models.User, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !user.CanEdit(post.Username) {
		return nil, models.ErrForbidden
	}

	var categoryID *string

	if req.Category != nil {
		category, err := s.categories.GetCategoryBySlug(ctx, *req.Category)
		if err != nil {
			return nil, err
		}

		// Keeping the current category is always allowed; moving into an
		// inactive one is not.
		if category.ID != post.CategoryID && !category.IsActive {
			return nil, models.ErrCategoryInactive
		}

		categoryID = &category.ID
	}

	var embedding []float32

	reEmbed := false
	if req.TouchesEmbeddedText() && s.embedder.Configured() && s.health.EmbeddingHealthy() {
		reEmbed = true
		embedding = s.embedBestEffort(ctx, mergedEmbeddingText(post, req))
	}

	updated, err := s.posts.UpdatePost(ctx, postID, req, categoryID, embedding, reEmbed)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"action": "post.update", "post_id": postID, "username": user.Username}).Info("audit")

	return updated, nil
}

// Delete removes a post. Only the author or an admin may delete it.
func (s *PostService) Delete(ctx context.Context, user models.User, postID string) error {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if !user.CanEdit(post.Username) {
		return models.ErrForbidden
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"action": "post.delete", "post_id": postID, "username": user.Username}).Info("audit")

	return nil
}

// Total returns the total post count.
func (s *PostService) Total(ctx context.Context) (*models.PostsTotal, error) {
	total, err := s.posts.CountPosts(ctx)
	if err != nil {
		return nil, err
	}

	return &models.PostsTotal{Total: total}, nil
}

// CategoriesStats returns per-category post counts, including inactive
// categories and zero counts.
func (s *PostService) CategoriesStats(ctx context.Context) (*models.CategoriesStats, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.posts.CountsByCategory(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]models.CategoryStat, 0, len(categories))
	for _, c := range categories {
		stats = append(stats, models.CategoryStat{Category: c, Count: counts[c.ID]})
	}

	return &models.CategoriesStats{Categories: stats}, nil
}

// embedBestEffort computes an embedding when the provider is usable,
// converting any failure into a degradation-flag mutation and a nil vector.
// It never returns an error: embedding must not block or fail a write.
func (s *PostService) embedBestEffort(ctx context.Context, text string) []float32 {
	if !s.embedder.Configured() || !s.health.EmbeddingHealthy() {
		return nil
	}

	embedding, err := s.embedder.Generate(ctx, text)
	if err != nil {
		s.health.MarkEmbeddingUnhealthy()
		s.log.WithError(err).Warn("embedding generation failed; continuing without it")

		return nil
	}

	return embedding
}

// mergedEmbeddingText builds the embedding text for an update by overlaying
// the changed fields on the stored post.
func mergedEmbeddingText(post *models.Post, req models.UpdatePostRequest) string {
	merged := *post

	if req.Title != nil {
		merged.Title = *req.Title
	}

	if req.Excerpt != nil {
		merged.Excerpt = *req.Excerpt
	}

	if req.Content != nil {
		merged.Content = *req.Content
	}

	return merged.EmbeddingText()
}
