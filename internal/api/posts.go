package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/neonpress/neonpress/internal/models"
)

// PostHandler serves post CRUD and search endpoints.
type PostHandler struct {
	catalog PostCatalog
	log     *logrus.Logger
}

// NewPostHandler creates a PostHandler with the given service and logger.
func NewPostHandler(catalog PostCatalog, log *logrus.Logger) *PostHandler {
	return &PostHandler{catalog: catalog, log: log}
}

// List handles GET /api/v1/posts.
func (h *PostHandler) List(c *gin.Context) {
	q := models.ListPostsQuery{
		Page:     parseInt(c.Query("page"), 1),
		Limit:    parseInt(c.Query("limit"), models.DefaultPageLimit),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
		Category: c.Query("category"),
		Keyword:  c.Query("q"),
		Semantic: c.Query("vector_q"),
	}

	page, err := h.catalog.List(c.Request.Context(), q)
	if err != nil {
		h.log.WithError(err).Error("listing posts")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/v1/posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	postID := c.Param("id")
	if err := validatePathID(postID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	post, err := h.catalog.Get(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "post not found")

			return
		}

		h.log.WithError(err).Error("getting post")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, post)
}

// Create handles POST /api/v1/posts.
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	post, err := h.catalog.Create(c.Request.Context(), user, req)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) || errors.Is(err, models.ErrCategoryInactive) {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}

		h.log.WithError(err).Error("creating post")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update handles PATCH /api/v1/posts/:id.
func (h *PostHandler) Update(c *gin.Context) {
	postID := c.Param("id")
	if err := validatePathID(postID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	post, err := h.catalog.Update(c.Request.Context(), user, postID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPostNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
		case errors.Is(err, models.ErrForbidden):
			respondError(c, http.StatusForbidden, ErrCodeForbidden, "not allowed to modify this post")
		case errors.Is(err, models.ErrCategoryNotFound), errors.Is(err, models.ErrCategoryInactive):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			h.log.WithError(err).Error("updating post")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/v1/posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	postID := c.Param("id")
	if err := validatePathID(postID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), user, postID); err != nil {
		switch {
		case errors.Is(err, models.ErrPostNotFound):
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
		case errors.Is(err, models.ErrForbidden):
			respondError(c, http.StatusForbidden, ErrCodeForbidden, "not allowed to modify this post")
		default:
			h.log.WithError(err).Error("deleting post")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	c.Status(http.StatusNoContent)
}
