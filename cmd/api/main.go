package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/modelfolio/media-api/internal/config"
	"github.com/modelfolio/media-api/internal/domain/engagement"
	"github.com/modelfolio/media-api/internal/domain/photo"
	"github.com/modelfolio/media-api/internal/middleware"
	"github.com/modelfolio/media-api/internal/pkg/database"
	"github.com/modelfolio/media-api/internal/pkg/imaging"
	"github.com/modelfolio/media-api/internal/pkg/jwt"
	"github.com/modelfolio/media-api/internal/pkg/logger"
	pkgresponse "github.com/modelfolio/media-api/internal/pkg/response"
	"github.com/modelfolio/media-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Modelfolio media API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Object store ----------
	var store storage.Storage
	if cfg.UseLocalStorage() {
		log.Warn().Msg("R2 config incomplete, falling back to local storage")
		store, err = storage.NewLocalStorage(cfg.LocalStoragePath, cfg.LocalStorageURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
	} else {
		store, err = storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 storage")
		}
	}

	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Media library ----------
	photoRepo := photo.NewRepository(db)
	photoService := photo.NewService(photoRepo, store, processor, cfg.MaxUploadBytes)
	photoHandler := photo.NewHandler(photoService)

	// ---------- Engagement ----------
	engagementRepo := engagement.NewRepository(db)
	var sessions engagement.SessionStore
	if redisClient != nil {
		sessions = engagement.NewRedisSessionStore(redisClient, cfg.SessionViewTTL)
	} else {
		sessions = engagement.NewMemorySessionStore()
	}
	counter := engagement.NewCounter(engagementRepo, sessions)
	engagementHandler := engagement.NewHandler(counter)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.Session)
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/photos", photoHandler.Routes(authMiddleware))
		r.Mount("/profiles", photoHandler.PublicRoutes())
		r.Mount("/engagement", engagementHandler.Routes())
	})

	// Serve uploads directly when running on local storage
	if cfg.UseLocalStorage() {
		fileServer := http.FileServer(http.Dir(cfg.LocalStoragePath))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in background, wait for shutdown signal
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
