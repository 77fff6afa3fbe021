// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/pistlar/internal/api"
	"github.com/starford/pistlar/internal/content"
	"github.com/starford/pistlar/internal/mcpserver"
	"github.com/starford/pistlar/internal/postservice"
	"github.com/starford/pistlar/internal/storage"
)

// Run starts the web application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, logger, err := bootstrap(opts, os.Stdout)
	if err != nil {
		return err
	}
	cfg := app.config

	svc, err := buildServices(cfg, logger)
	if err != nil {
		return err
	}

	pages := api.NewPageHandler(svc, api.Site{
		Title:           cfg.Content.SiteTitle,
		PageSize:        cfg.Content.PageSize,
		AssetsURLPrefix: cfg.Content.AssetsURLPrefix,
	})
	posts := api.NewPostHandler(svc)
	assets := api.NewAssetHandler(cfg.Content.AssetsDir, cfg.Content.AssetsURLPrefix)
	siteRouter := api.NewRouter(pages, posts, assets, cfg.Auth.AuthEnabled(), cfg.Auth.Token)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/", siteRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the post tools over MCP stdio transport. Stdout carries the
// JSON-RPC frames, so all logging goes to stderr.
func RunMCP(_ context.Context, opts ...Option) error {
	app, logger, err := bootstrap(opts, os.Stderr)
	if err != nil {
		return err
	}

	svc, err := buildServices(app.config, logger)
	if err != nil {
		return err
	}

	return mcpserver.New(svc).ServeStdio()
}

// bootstrap applies options, validates config presence, and installs the
// default JSON logger writing to logDst.
func bootstrap(opts []Option, logDst io.Writer) (*application, *slog.Logger, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(logDst, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("posts_dir", cfg.Content.PostsDir),
		slog.String("assets_dir", cfg.Content.AssetsDir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return app, logger, nil
}

// buildServices wires the content store, the file provider, and the post
// service, creating the content directories when absent.
func buildServices(cfg *Config, logger *slog.Logger) (*postservice.Service, error) {
	for _, dir := range []string{cfg.Content.PostsDir, cfg.Content.AssetsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create content dir: %w", err)
		}
	}

	files, err := storage.NewFS(cfg.Content.PostsDir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	store := content.NewStore(cfg.Content.PostsDir, cfg.Content.AssetsURLPrefix, logger)
	return postservice.New(files, store), nil
}
