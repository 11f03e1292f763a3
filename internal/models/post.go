// Package models defines data types for the content catalog.
package models

import (
	"regexp"
	"strings"
	"time"
)

// Post represents a catalog entry. The embedding vector is stored alongside
// the row but never serialized to API clients.
type Post struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Title      string    `json:"title"`
	CategoryID string    `json:"-"`
	Category   string    `json:"category"`
	Date       string    `json:"date"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmbeddingText returns the text embedded for this post:
// title, excerpt, and content joined by blank lines.
func (p *Post) EmbeddingText() string {
	return p.Title + "\n\n" + p.Excerpt + "\n\n" + p.Content
}

// PostPage is one page of a post listing.
type PostPage struct {
	Items []Post `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// EmptyPostPage returns a page with no items for the given page/limit.
func EmptyPostPage(page, limit int) *PostPage {
	return &PostPage{Items: []Post{}, Total: 0, Page: page, Limit: limit}
}

// Sort fields accepted by list queries.
const (
	SortCreatedAt = "createdAt"
	SortDate      = "date"
	SortTitle     = "title"
)

// Pagination bounds for list queries.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ListPostsQuery holds the parameters of a post list request.
// Keyword and semantic text are independent; when both are present and the
// semantic path degrades, Keyword takes precedence as the fallback.
type ListPostsQuery struct {
	Page     int
	Limit    int
	Sort     string
	Order    string
	Category string
	Keyword  string
	Semantic string
}

// Normalize fills defaults, clamps limits, and trims search text.
func (q *ListPostsQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}

	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}

	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}

	switch q.Sort {
	case SortCreatedAt, SortDate, SortTitle:
	default:
		q.Sort = SortCreatedAt
	}

	if strings.EqualFold(q.Order, "asc") {
		q.Order = "ASC"
	} else {
		q.Order = "DESC"
	}

	q.Keyword = strings.TrimSpace(q.Keyword)
	q.Semantic = strings.TrimSpace(q.Semantic)
}

// Field length limits for posts.
const (
	maxTitleLen = 255
	maxDateLen  = 32
)

var categorySlugPattern = regexp.MustCompile(`^[a-z0-9_]{1,12}$`)

// CreatePostRequest is the payload for creating a new post.
// The author username comes from the authenticated caller, not the payload.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
}

// Validate checks required fields and limits, normalizing the category slug.
func (r *CreatePostRequest) Validate() error {
	if r.Title == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > maxTitleLen {
		return ErrFieldTooLong("title", maxTitleLen)
	}

	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	if !categorySlugPattern.MatchString(r.Category) {
		return ErrInvalidCategorySlug
	}

	if r.Date == "" {
		return ErrMissingDate
	}

	if len(r.Date) > maxDateLen {
		return ErrFieldTooLong("date", maxDateLen)
	}

	if r.Excerpt == "" {
		return ErrMissingExcerpt
	}

	if r.Content == "" {
		return ErrMissingContent
	}

	return nil
}

// UpdatePostRequest is the payload for a partial post update.
// Nil fields are left unchanged.
type UpdatePostRequest struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	Date     *string `json:"date,omitempty"`
	Excerpt  *string `json:"excerpt,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// Validate checks provided fields against their limits.
func (r *UpdatePostRequest) Validate() error {
	if r.Title != nil {
		if *r.Title == "" {
			return ErrMissingTitle
		}

		if len(*r.Title) > maxTitleLen {
			return ErrFieldTooLong("title", maxTitleLen)
		}
	}

	if r.Category != nil {
		slug := strings.ToLower(strings.TrimSpace(*r.Category))
		if !categorySlugPattern.MatchString(slug) {
			return ErrInvalidCategorySlug
		}

		r.Category = &slug
	}

	if r.Date != nil {
		if *r.Date == "" {
			return ErrMissingDate
		}

		if len(*r.Date) > maxDateLen {
			return ErrFieldTooLong("date", maxDateLen)
		}
	}

	if r.Excerpt != nil && *r.Excerpt == "" {
		return ErrMissingExcerpt
	}

	if r.Content != nil && *r.Content == "" {
		return ErrMissingContent
	}

	return nil
}

// TouchesEmbeddedText reports whether the update changes any field that
// contributes to the embedding text. Category, date, and author changes
// never trigger re-embedding.
func (r *UpdatePostRequest) TouchesEmbeddedText() bool {
	return r.Title != nil || r.Excerpt != nil || r.Content != nil
}

// PostsTotal is the payload of the total-count stats endpoint.
type PostsTotal struct {
	Total int `json:"total"`
}

// CategoryStat pairs a category with its post count. Inactive categories
// and zero counts are included.
type CategoryStat struct {
	Category
	Count int `json:"count"`
}

// CategoriesStats is the payload of the per-category stats endpoint.
type CategoriesStats struct {
	Categories []CategoryStat `json:"categories"`
}
