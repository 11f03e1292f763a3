package client

import "time"

// Post is a catalog entry as returned by the API.
type Post struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostPage is one page of a post listing.
type PostPage struct {
	Items []Post `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// PostListOptions are the query parameters of the list endpoint.
type PostListOptions struct {
	Page     int
	Limit    int
	Sort     string
	Order    string
	Category string
	Keyword  string
	Semantic string
}

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
}

// UpdatePostRequest is the payload for a partial post update. Nil fields
// are left unchanged.
type UpdatePostRequest struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	Date     *string `json:"date,omitempty"`
	Excerpt  *string `json:"excerpt,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// Category is a content category.
type Category struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryStat pairs a category with its post count.
type CategoryStat struct {
	Category
	Count int `json:"count"`
}

// PostsTotal is the total-count stats payload.
type PostsTotal struct {
	Total int `json:"total"`
}

// CategoriesStats is the per-category stats payload.
type CategoriesStats struct {
	Categories []CategoryStat `json:"categories"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status              string  `json:"status"`
	Version             string  `json:"version"`
	Database            string  `json:"database"`
	Embeddings          string  `json:"embeddings"`
	EmbeddingModel      string  `json:"embedding_model,omitempty"`
	EmbeddingDimensions int     `json:"embedding_dimensions"`
	UptimeSeconds       float64 `json:"uptime_seconds"`
}
