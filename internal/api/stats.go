package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/neonpress/neonpress/internal/metrics"
)

// StatsHandler serves catalog statistics endpoints.
type StatsHandler struct {
	catalog PostCatalog
	log     *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given service and logger.
func NewStatsHandler(catalog PostCatalog, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{catalog: catalog, log: log}
}

// Total handles GET /api/v1/posts/stats/total.
func (h *StatsHandler) Total(c *gin.Context) {
	total, err := h.catalog.Total(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("stats: total")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	metrics.PostCount.Set(float64(total.Total))

	c.JSON(http.StatusOK, total)
}

// Categories handles GET /api/v1/posts/stats/categories.
func (h *StatsHandler) Categories(c *gin.Context) {
	stats, err := h.catalog.CategoriesStats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("stats: categories")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, stats)
}
