// Package api provides HTTP handlers for the neonpress catalog.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/neonpress/neonpress/internal/dbpool"
	"github.com/neonpress/neonpress/internal/service"
	"github.com/neonpress/neonpress/internal/ws"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	pool                *dbpool.Pool
	hub                 *ws.Hub
	health              *service.Health
	log                 *logrus.Logger
	version             string
	startTime           time.Time
	semanticEnabled     bool
	embeddingModel      string
	embeddingDimensions int
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
func NewHealthHandler(pool *dbpool.Pool, hub *ws.Hub, health *service.Health, log *logrus.Logger, version string, semanticEnabled bool, embeddingModel string, embeddingDimensions int) *HealthHandler {
	return &HealthHandler{
		pool:                pool,
		hub:                 hub,
		health:              health,
		log:                 log,
		version:             version,
		startTime:           time.Now(),
		semanticEnabled:     semanticEnabled,
		embeddingModel:      embeddingModel,
		embeddingDimensions: embeddingDimensions,
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status              string  `json:"status"`
	Version             string  `json:"version"`
	Database            string  `json:"database"`
	Embeddings          string  `json:"embeddings"`
	EmbeddingModel      string  `json:"embedding_model,omitempty"`
	EmbeddingDimensions int     `json:"embedding_dimensions"`
	UptimeSeconds       float64 `json:"uptime_seconds"`
}

// semanticState summarizes the degradation flags for reporting. It never
// probes the provider, so a health check can't be the request that trips
// the unhealthy flag.
func (h *HealthHandler) semanticState() string {
	switch {
	case !h.semanticEnabled:
		return "disabled"
	case !h.health.EmbeddingHealthy():
		return "degraded_provider"
	case !h.health.VectorHealthy():
		return "degraded_index"
	default:
		return "ok"
	}
}

// Liveness handles GET /api/v1/health — status with db, embedding path, and uptime.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:              "ok",
		Version:             h.version,
		Database:            "connected",
		Embeddings:          h.semanticState(),
		EmbeddingDimensions: h.embeddingDimensions,
		UptimeSeconds:       time.Since(h.startTime).Seconds(),
	}

	if h.semanticEnabled {
		resp.EmbeddingModel = h.embeddingModel
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	} else {
		resp.Database = "not_configured"
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready — checks DB and schema; reports the
// semantic path state without failing readiness over it.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{
		"database":   "ok",
		"schema":     "ok",
		"embeddings": h.semanticState(),
	}
	status := "ready"
	statusCode := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	// Check database connectivity.
	if err := h.pool.HealthCheck(ctx); err != nil {
		h.log.WithError(err).Error("readiness: database health check failed")
		checks["database"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	// Check schema by querying the categories table.
	if checks["database"] == "ok" {
		if err := h.checkSchema(ctx); err != nil {
			h.log.WithError(err).Error("readiness: schema check failed")
			checks["schema"] = "error"
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	} else {
		checks["schema"] = "unknown"
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}

// checkSchema verifies the database schema by querying the categories table.
func (h *HealthHandler) checkSchema(ctx context.Context) error {
	var count int
	err := h.pool.QueryRow(ctx, "SELECT COUNT(*) FROM categories").Scan(&count)
	if err != nil {
		return fmt.Errorf("schema check: %w", err)
	}

	return nil
}
