// Package server assembles the HTTP router, middleware chain and listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/handler"
	"github.com/kitbuilder587/searchportal/internal/metrics"
	"github.com/kitbuilder587/searchportal/internal/ratelimit"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Addr        string
	CORSOrigins []string
}

type Deps struct {
	Search *handler.SearchHandler
	// Library is nil when no record store is configured.
	Library *handler.LibraryHandler
	Limiter *ratelimit.Limiter
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

type Server struct {
	http   *http.Server
	logger *zap.Logger
}

func New(cfg Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewHandler(cfg, deps),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: deps.Logger,
	}
}

// NewHandler builds the routed handler wrapped as
// CORS → request id → recovery → observe → rate limit → routes.
func NewHandler(cfg Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var h http.Handler = routes(deps)
	if deps.Limiter != nil {
		h = handler.RateLimit(deps.Limiter, deps.Metrics)(h)
	}
	h = handler.Observe(logger, deps.Metrics)(h)
	h = handler.Recovery(logger)(h)
	h = handler.RequestID(h)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization", "X-Client-Info", "Apikey", "Content-Type",
			handler.UserIDHeader, handler.RequestIDHeader,
		},
		ExposedHeaders:       []string{handler.RequestIDHeader, "Retry-After"},
		OptionsSuccessStatus: http.StatusOK,
	})
	return c.Handler(h)
}

func routes(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	s := deps.Search
	mux.HandleFunc("POST /functions/v1/real-search", s.Web)
	mux.HandleFunc("POST /functions/v1/academic-search", s.Academic)
	mux.HandleFunc("POST /functions/v1/video-search", s.Video)
	mux.HandleFunc("POST /functions/v1/news-search", s.News)
	mux.HandleFunc("POST /functions/v1/image-search", s.Images)
	mux.HandleFunc("POST /functions/v1/shopping-search", s.Shopping)
	mux.HandleFunc("POST /functions/v1/autocomplete", s.Autocomplete)

	if l := deps.Library; l != nil {
		mux.HandleFunc("GET /api/history", l.ListHistory)
		mux.HandleFunc("POST /api/history", l.AddHistory)
		mux.HandleFunc("DELETE /api/history", l.ClearHistory)
		mux.HandleFunc("DELETE /api/history/{id}", l.DeleteHistory)

		mux.HandleFunc("GET /api/saved-searches", l.ListSaved)
		mux.HandleFunc("POST /api/saved-searches", l.SaveSearch)
		mux.HandleFunc("DELETE /api/saved-searches", l.ClearSaved)
		mux.HandleFunc("PATCH /api/saved-searches/{id}", l.RenameSaved)
		mux.HandleFunc("DELETE /api/saved-searches/{id}", l.DeleteSaved)

		mux.HandleFunc("GET /api/reading-list", l.ListReading)
		mux.HandleFunc("POST /api/reading-list", l.AddReading)
		mux.HandleFunc("PATCH /api/reading-list/{paperId}", l.UpdateReading)
		mux.HandleFunc("DELETE /api/reading-list/{paperId}", l.DeleteReading)
	}

	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return mux
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
