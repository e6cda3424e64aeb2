package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/moviefav-backend/internal/api"
	"github.com/baharkarakas/moviefav-backend/internal/api/handlers"
	"github.com/baharkarakas/moviefav-backend/internal/auth"
	"github.com/baharkarakas/moviefav-backend/internal/catalog"
	"github.com/baharkarakas/moviefav-backend/internal/config"
	"github.com/baharkarakas/moviefav-backend/internal/logger"
	"github.com/baharkarakas/moviefav-backend/internal/metrics"
	"github.com/baharkarakas/moviefav-backend/internal/middleware"
	"github.com/baharkarakas/moviefav-backend/internal/repository/memory"
	"github.com/baharkarakas/moviefav-backend/internal/services"
	"github.com/baharkarakas/moviefav-backend/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	repos := memory.NewRepositories()
	wp := worker.NewPool(cfg.HashWorkers, cfg.HashWorkers*64, metrics.HashQueueDepth)
	defer wp.Stop()

	hasher, err := auth.NewHasher(cfg.BcryptCost, wp)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)

	authSvc := services.NewAuthService(repos.Users, hasher, tokens)
	favSvc := services.NewFavoriteService(repos.Favorites)

	if cfg.TMDBAPIKey == "" {
		log.Warn("TMDB_API_KEY not set, movie endpoints will return 503")
	}
	movies := catalog.New(cfg.TMDBBaseURL, cfg.TMDBAPIKey, cfg.TMDBTimeout)

	r := api.NewRouter(api.RouterDeps{
		Logger:         log,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:      cfg.StaticDir,
		Auth:           handlers.NewAuthHandler(authSvc),
		Favorites:      handlers.NewFavoriteHandler(favSvc),
		Movies:         handlers.NewMovieHandler(movies),
		Gate:           middleware.NewAuthMiddleware(authSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting",
			"port", cfg.HTTPPort,
			"env", cfg.Env,
			"jwt_expiry", cfg.JWTExpiry.String(),
			"static_dir", cfg.StaticDir,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
