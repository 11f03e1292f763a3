// Command neonpressd runs the neonpress content catalog server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/neonpress/neonpress/internal/api"
	"github.com/neonpress/neonpress/internal/config"
	"github.com/neonpress/neonpress/internal/db"
	"github.com/neonpress/neonpress/internal/db/migrations"
	"github.com/neonpress/neonpress/internal/dbpool"
	"github.com/neonpress/neonpress/internal/service"
	"github.com/neonpress/neonpress/internal/store"
	"github.com/neonpress/neonpress/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	if err := db.EnsureVectorDimensions(ctx, pool, log, cfg.EmbeddingDims); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	posts := store.NewPostStore(base)
	categories := store.NewCategoryStore(base)
	search := store.NewSearchStore(base)
	embeddings := store.NewEmbeddingStore(base)

	health := service.NewHealth()
	embedder := service.NewEmbeddingClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey.Value(), cfg.EmbeddingModel)
	backfiller := service.NewBackfiller(embeddings, embedder, health, log)
	postSvc := service.NewPostService(posts, search, categories, embedder, backfiller, health, log)
	categorySvc := service.NewCategoryService(categories)

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	bridge := db.NewNotifyBridge(log, pool, hub)
	if err := bridge.Start(ctx); err != nil {
		return err
	}

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:                 log,
		Pool:                pool,
		Hub:                 hub,
		Posts:               postSvc,
		Categories:          categorySvc,
		Health:              health,
		UserLookup:          &base,
		CORSOrigins:         cfg.CORSOrigins,
		Version:             config.Version,
		SemanticEnabled:     cfg.SemanticEnabled(),
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDims,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     cfg.Addr(),
			"version":  config.Version,
			"semantic": cfg.SemanticEnabled(),
		}).Info("neonpress listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Warm the embedding backfill on startup; reads trigger it too, but an
	// idle instance should converge without waiting for traffic.
	backfiller.Trigger()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	hub.Shutdown()

	return srv.Shutdown(shutdownCtx)
}
