package client

import (
	"context"
	"net/url"
	"strconv"
)

// PostService handles post CRUD and search operations.
type PostService struct {
	c *Client
}

// List returns one page of posts with optional filtering and search.
func (s *PostService) List(ctx context.Context, opts *PostListOptions) (*PostPage, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			params.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Sort != "" {
			params.Set("sort", opts.Sort)
		}
		if opts.Order != "" {
			params.Set("order", opts.Order)
		}
		if opts.Category != "" {
			params.Set("category", opts.Category)
		}
		if opts.Keyword != "" {
			params.Set("q", opts.Keyword)
		}
		if opts.Semantic != "" {
			params.Set("vector_q", opts.Semantic)
		}
	}
	var page PostPage
	if err := s.c.get(ctx, "/api/v1/posts", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single post by ID.
func (s *PostService) Get(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := s.c.get(ctx, "/api/v1/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create creates a new post.
func (s *PostService) Create(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	var post Post
	if err := s.c.post(ctx, "/api/v1/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update applies a partial update to a post.
func (s *PostService) Update(ctx context.Context, id string, req *UpdatePostRequest) (*Post, error) {
	var post Post
	if err := s.c.patch(ctx, "/api/v1/posts/"+url.PathEscape(id), req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/posts/"+url.PathEscape(id), nil)
}

// Total returns the total post count.
func (s *PostService) Total(ctx context.Context) (*PostsTotal, error) {
	var resp PostsTotal
	if err := s.c.get(ctx, "/api/v1/posts/stats/total", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CategoriesStats returns per-category post counts.
func (s *PostService) CategoriesStats(ctx context.Context) (*CategoriesStats, error) {
	var resp CategoriesStats
	if err := s.c.get(ctx, "/api/v1/posts/stats/categories", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
