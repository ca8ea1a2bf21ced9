// Package server serves the alerts widget over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Zachdehooge/state-alerts/internal/config"
	"github.com/Zachdehooge/state-alerts/internal/controller"
	"github.com/Zachdehooge/state-alerts/internal/fetcher"
	"github.com/Zachdehooge/state-alerts/internal/generator"
	"github.com/Zachdehooge/state-alerts/internal/observability"
	"github.com/Zachdehooge/state-alerts/internal/region"
)

// Server is the widget HTTP server.
type Server struct {
	cfg     *config.Config
	fetcher controller.Fetcher
	metrics *observability.Metrics
	logger  logrus.FieldLogger
	router  chi.Router
}

// New builds the router. Every request runs its own controller against its
// own State, so concurrent requests never share display state.
func New(cfg *config.Config, f controller.Fetcher, metrics *observability.Metrics, logger logrus.FieldLogger) *Server {
	s := &Server{
		cfg:     cfg,
		fetcher: f,
		metrics: metrics,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(logger))

	r.Group(func(r chi.Router) {
		r.Use(Limit(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute, logger))
		r.Get("/", s.handlePage)
		r.Get("/api/alerts/{area}", s.handleAPI)
	})
	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is done, then shuts down
// within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.HTTPAddr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", srv.Addr).Info("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) submit(ctx context.Context, input string) (controller.Snapshot, error) {
	state := controller.NewState(input)
	log := s.logger.WithField("request_id", chimw.GetReqID(ctx))
	err := controller.New(s.fetcher, state, state, s.metrics, log).Submit(ctx)
	return state.Snapshot(), err
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := generator.Page{}
	if r.URL.Query().Has("area") {
		snap, _ := s.submit(r.Context(), r.URL.Query().Get("area"))
		page = snap.Page()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := generator.WritePage(w, page); err != nil {
		s.logger.WithField("error", err).Error("render page failed")
	}
}

type apiResponse struct {
	Summary   string   `json:"summary,omitempty"`
	Empty     bool     `json:"empty"`
	Headlines []string `json:"headlines"`
	Error     string   `json:"error,omitempty"`
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	snap, err := s.submit(r.Context(), chi.URLParam(r, "area"))

	resp := apiResponse{Headlines: []string{}, Error: snap.Error}
	if snap.View != nil {
		resp.Summary = snap.View.Summary
		resp.Empty = snap.View.Empty
		resp.Headlines = snap.View.Headlines()
	}

	writeJSON(w, statusFor(err), resp)
}

func statusFor(err error) int {
	var vErr *region.ValidationError
	var netErr *fetcher.NetworkError
	var parseErr *fetcher.ParseError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.As(err, &netErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func requestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.WithFields(logrus.Fields{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start),
			}).Info("request served")
		})
	}
}
