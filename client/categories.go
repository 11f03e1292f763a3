package client

import "context"

// CategoryService handles the read-only category listing.
type CategoryService struct {
	c *Client
}

// categoryListResponse wraps the category list payload.
type categoryListResponse struct {
	Categories []Category `json:"categories"`
}

// List returns the active categories in display order.
func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	var resp categoryListResponse
	if err := s.c.get(ctx, "/api/v1/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
