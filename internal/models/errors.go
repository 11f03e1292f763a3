package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingTitle        = errors.New("title is required")
	ErrMissingDate         = errors.New("date is required")
	ErrMissingExcerpt      = errors.New("excerpt is required")
	ErrMissingContent      = errors.New("content is required")
	ErrInvalidCategorySlug = errors.New("category must match ^[a-z0-9_]{1,12}$")
	ErrCategoryInactive    = errors.New("category is inactive")
)

// Sentinel errors for entity lookups.
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
)

// ErrForbidden indicates the caller may not operate on the target post.
var ErrForbidden = errors.New("only the author or an admin can operate on this post")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
