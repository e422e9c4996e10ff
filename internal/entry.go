// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/voss/kohl/internal/apperr"
	"github.com/voss/kohl/internal/cache"
	"github.com/voss/kohl/internal/device"
	"github.com/voss/kohl/internal/importer"
	"github.com/voss/kohl/internal/models"
	"github.com/voss/kohl/internal/preview"
	"github.com/voss/kohl/internal/render"
	"github.com/voss/kohl/internal/stats"
	"github.com/voss/kohl/internal/template"
	"github.com/voss/kohl/internal/vault"
)

// Run starts the application in watch mode: a device watcher that
// re-imports on export changes plus the template preview server.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("mount_point", cfg.Device.MountPoint),
		slog.String("template_path", cfg.Template.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	im, pipelineCache, err := buildImporter(cfg, logger)
	if err != nil {
		return err
	}
	if im.Stats != nil {
		defer im.Stats.Close()
	}

	// Imports may be triggered by the watcher and the HTTP endpoint at
	// the same time; run them one at a time.
	var importMu sync.Mutex
	runImport := func(ctx context.Context) (int, error) {
		importMu.Lock()
		defer importMu.Unlock()
		if err := refreshRenderer(cfg, im, pipelineCache); err != nil {
			return 0, err
		}
		return im.Run(ctx, cfg.Device.MountPoint)
	}

	// Initial import. The device may not be mounted yet, so a failure
	// only logs.
	if n, err := runImport(ctx); err != nil {
		logger.Warn("initial import failed", slog.String("error", err.Error()))
	} else {
		logger.Info("initial import done", slog.Int("books", n))
	}

	// Preview handler for the configured template.
	ph := preview.NewHandler(cfg.Template.Path,
		models.CommentStyle(cfg.Template.CommentStyle),
		cfg.Template.MaxHighlightGap, pipelineCache, logger)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
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

	// Template preview routes.
	r.Mount("/api/template", preview.NewRouter(ph))

	// Manual import trigger.
	r.Post("/api/import", func(w http.ResponseWriter, req *http.Request) {
		n, err := runImport(req.Context())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, apperr.ErrNoBooks) {
				status = http.StatusNotFound
			}
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"error":%q}`, err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"written":%d}`, n)
	})

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the device mount for export changes.
	g.Go(func() error {
		return device.Watch(gCtx, cfg.Device.MountPoint, cfg.Device.Debounce(), logger, func() {
			if n, err := runImport(gCtx); err != nil {
				logger.Warn("import failed", slog.String("error", err.Error()))
			} else {
				logger.Info("import done", slog.Int("books", n))
			}
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
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

// ImportOnce performs a single import run and returns the number of
// books written.
func ImportOnce(ctx context.Context, cfg *Config, logger *slog.Logger) (int, error) {
	im, pipelineCache, err := buildImporter(cfg, logger)
	if err != nil {
		return 0, err
	}
	if im.Stats != nil {
		defer im.Stats.Close()
	}
	if err := refreshRenderer(cfg, im, pipelineCache); err != nil {
		return 0, err
	}
	return im.Run(ctx, cfg.Device.MountPoint)
}

// buildImporter wires the vault store, the optional statistics reader,
// and the shared pipeline cache into an importer.
func buildImporter(cfg *Config, logger *slog.Logger) (*importer.Importer, template.PipelineCache, error) {
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create vault dir: %w", err)
	}
	store, err := vault.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init vault: %w", err)
	}

	var statsProvider stats.Provider
	if cfg.Stats.Enabled() {
		db, err := stats.Open(cfg.Stats.Path)
		if err != nil {
			logger.Warn("statistics database unavailable",
				slog.String("path", cfg.Stats.Path),
				slog.String("error", err.Error()))
		} else {
			statsProvider = db
		}
	}

	pipelineCache := cache.NewLRU[template.Pipeline](cfg.Template.CacheSize)
	im := &importer.Importer{
		Store:  store,
		Stats:  statsProvider,
		Logger: logger,
		Folder: cfg.Vault.Folder,
	}
	return im, pipelineCache, nil
}

// refreshRenderer recompiles the template from disk so template edits
// take effect on the next import without a restart.
func refreshRenderer(cfg *Config, im *importer.Importer, pc template.PipelineCache) error {
	src, err := os.ReadFile(cfg.Template.Path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	tmpl := template.Compile(string(src), template.WithCache(pc))
	im.Renderer = render.NewRenderer(tmpl,
		models.CommentStyle(cfg.Template.CommentStyle), cfg.Template.MaxHighlightGap)
	return nil
}
