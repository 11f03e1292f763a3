package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CategoryHandler serves the read-only category listing.
type CategoryHandler struct {
	categories CategoryLister
	log        *logrus.Logger
}

// NewCategoryHandler creates a CategoryHandler with the given service and logger.
func NewCategoryHandler(categories CategoryLister, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log}
}

// List handles GET /api/v1/categories — active categories in display order.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.ListActive(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("listing categories")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
