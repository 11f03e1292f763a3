package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/neonpress/neonpress/internal/dbpool"
	"github.com/neonpress/neonpress/internal/middleware"
	"github.com/neonpress/neonpress/internal/service"
	"github.com/neonpress/neonpress/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log                 *logrus.Logger
	Pool                *dbpool.Pool
	Hub                 *ws.Hub
	Posts               PostCatalog
	Categories          CategoryLister
	Health              *service.Health
	UserLookup          middleware.UserLookup
	CORSOrigins         []string
	Version             string
	SemanticEnabled     bool
	EmbeddingModel      string
	EmbeddingDimensions int
}

// Router-level limits.
const (
	maxBodySize = 10 << 20 // 10 MB
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, deps.Health, log, deps.Version, deps.SemanticEnabled, deps.EmbeddingModel, deps.EmbeddingDimensions)
	posts := NewPostHandler(deps.Posts, log)
	categories := NewCategoryHandler(deps.Categories, log)
	stats := NewStatsHandler(deps.Posts, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Public read surface.
	api.GET("/posts", posts.List)
	api.GET("/posts/stats/total", stats.Total)
	api.GET("/posts/stats/categories", stats.Categories)
	api.GET("/posts/:id", posts.Get)
	api.GET("/categories", categories.List)

	// Writes and the event stream require authentication.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(middleware.NewCachedUserLookup(ctx, deps.UserLookup), log))

	authed.POST("/posts", posts.Create)
	authed.PATCH("/posts/:id", posts.Update)
	authed.DELETE("/posts/:id", posts.Delete)

	// WebSocket endpoint.
	authed.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
