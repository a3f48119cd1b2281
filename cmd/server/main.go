package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/warikan/internal/catalog"
	"github.com/mmynk/warikan/internal/config"
	"github.com/mmynk/warikan/internal/metrics"
	"github.com/mmynk/warikan/internal/middleware"
	"github.com/mmynk/warikan/internal/service"
	"github.com/mmynk/warikan/internal/session"
	"github.com/mmynk/warikan/internal/storage/sqlite"
	"github.com/mmynk/warikan/pkg/api"
	"github.com/mmynk/warikan/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	menu, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	slog.Info("Catalog loaded", "entries", menu.Len(), "path", cfg.CatalogPath)

	// Initialize SQLite order archive
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	svc := service.NewSessionService(session.NewManager(), menu, store, m)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()

	// Register Connect services
	path, handler := api.NewSessionServiceHandler(svc, interceptors)
	mux.Handle(path, handler)
	mux.Handle("/metrics", m.Handler())

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", "http://localhost"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
