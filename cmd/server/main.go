// Command server runs the recipe-sharing HTTP API.
//
// Startup order:
//  1. load .env (best effort) and the environment configuration
//  2. configure zerolog and OpenTelemetry tracing
//  3. open the SQLite database and run migrations
//  4. prepare the image upload store
//  5. start the expired-session sweeper
//  6. serve HTTP with graceful shutdown on SIGINT/SIGTERM
//
// @title        Wongnok Recipes API
// @version      1.0
// @description  Recipe sharing service: accounts, recipes, image uploads, and ratings.
// @BasePath     /api
//
// @securityDefinitions.apikey SessionCookie
// @in   header
// @name Cookie
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iksninja/503004-wongnok-recipes/internal/config"
	httpapi "github.com/iksninja/503004-wongnok-recipes/internal/http"
	"github.com/iksninja/503004-wongnok-recipes/internal/observability"
	"github.com/iksninja/503004-wongnok-recipes/internal/repo"
	"github.com/iksninja/503004-wongnok-recipes/internal/sysutil"
	"github.com/iksninja/503004-wongnok-recipes/internal/uploads"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// sessionSweepInterval is how often expired sessions are purged from the
// database. Expired tokens are already rejected at resolution time; the
// sweeper only keeps the table from growing without bound.
const sessionSweepInterval = time.Hour

func main() {
	// Best effort; the environment wins over .env values.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("could not open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("could not migrate database")
	}

	store, err := uploads.New(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("could not prepare upload directory")
	}

	// Periodic cleanup of expired sessions.
	go func() {
		t := time.NewTicker(sessionSweepInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				n, err := repo.DeleteExpiredSessions(ctx, db, time.Now().UTC())
				if err != nil {
					log.Warn().Err(err).Msg("session sweep failed")
					continue
				}
				if n > 0 {
					log.Debug().Int64("removed", n).Msg("session sweep")
				}
			}
		}
	}()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, store, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
