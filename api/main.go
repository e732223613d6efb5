package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"execview/api/config"
	"execview/api/handler"
	"execview/api/storage"
	"execview/api/store"
	"execview/internal/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Configure(cfg.LogLevel, os.Stderr)
	if err != nil {
		slog.Error("logging", "error", err)
		os.Exit(1)
	}

	db, err := store.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		logger.Error("migration", "error", err)
		os.Exit(1)
	}

	// A nil archive keeps the interface nil, not a typed nil.
	var logs handler.LogArchive
	if cfg.S3Endpoint != "" {
		s3Client, err := storage.NewClient(storage.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
			UseSSL:    cfg.S3UseSSL,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			logger.Warn("S3 log archive unavailable", "error", err)
		} else if err := s3Client.EnsureBucket(context.Background()); err != nil {
			logger.Warn("S3 log archive unavailable", "error", err)
		} else {
			logger.Info("S3 log archive connected", "endpoint", s3Client.Endpoint())
			logs = s3Client
		}
	}

	allowedOrigins := append([]string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins...)

	h := handler.New(db, logs, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/history", func(r chi.Router) {
		r.With(handler.ValidateExecutionID).Get("/execution_log/long/{id}", h.GetLongExecutionLog)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"version":"` + Version + `"}`))
		})
	})

	srv := &http.Server{
		Addr:    cfg.BindAddr + ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("execview history server listening", "version", Version, "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}
