package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger    *slog.Logger
	port      string
	staticDir string
}

// New - creates the static file server; it carries no game logic.
func New(logger *slog.Logger, port, staticDir string) *Server {
	return &Server{
		logger:    logger.With("component", "rest"),
		port:      port,
		staticDir: staticDir,
	}
}

func (that *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(that.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Get("/ping", NewPingHandler().PingHandler)
	r.Get("/", indexHandler(that.staticDir))
	r.Handle("/*", http.FileServer(http.Dir(that.staticDir)))

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	srv := &http.Server{
		Addr:         ":" + that.port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		if closeErr := srv.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			return fmt.Errorf("failed to close server: %w", closeErr)
		}
	}

	log.Info("HTTP server stopped")

	return nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Debug("request served",
					"request_id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
