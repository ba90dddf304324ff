// Package server exposes the analyses as a read-only JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blackwell-systems/weatherfocus/internal/analyzer"
	"github.com/blackwell-systems/weatherfocus/internal/logging"
	"github.com/blackwell-systems/weatherfocus/internal/metrics"
	"github.com/blackwell-systems/weatherfocus/internal/store"
	"github.com/blackwell-systems/weatherfocus/internal/suggest"
)

// Service is the analysis surface served over HTTP. *engine.Engine
// implements it.
type Service interface {
	Insights(ctx context.Context) analyzer.InsightResult
	Correlations(ctx context.Context) analyzer.CorrelationResult
	Pomodoro(ctx context.Context) analyzer.PatternResult
	Suggestions(ctx context.Context) suggest.Result
	Feed(ctx context.Context) analyzer.FeedResult
}

// Counter reports stored record counts. *store.DB implements it.
type Counter interface {
	Counts(ctx context.Context) (store.Counts, error)
}

// Options configures a Server. Counter, Gatherer, Metrics, Logger, and
// AccessLog may be nil.
type Options struct {
	Service   Service
	Counter   Counter
	Gatherer  prometheus.Gatherer
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	AccessLog io.Writer
	Version   string
}

// Server serves the JSON API.
type Server struct {
	opts    Options
	logger  *slog.Logger
	handler http.Handler
}

// New builds the router and middleware chain.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{opts: opts, logger: logger}

	r := mux.NewRouter()
	r.Use(s.requestID, s.instrument)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/insights", s.insights).Methods(http.MethodGet)
	api.HandleFunc("/correlations", s.correlations).Methods(http.MethodGet)
	api.HandleFunc("/patterns", s.patterns).Methods(http.MethodGet)
	api.HandleFunc("/suggestions", s.suggestions).Methods(http.MethodGet)
	api.HandleFunc("/feed", s.feed).Methods(http.MethodGet)
	api.HandleFunc("/history", s.history).Methods(http.MethodGet)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{DisableCompression: true})).Methods(http.MethodGet)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = handlers.CORS(handlers.AllowedMethods([]string{http.MethodGet}))(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{logger}), handlers.PrintRecoveryStack(false))(h)
	if opts.AccessLog != nil {
		h = handlers.LoggingHandler(opts.AccessLog, h)
	}
	s.handler = h
	return s
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Suggestions may wait on a remote provider.
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
		ctx = logging.WithLogger(ctx, s.logger)
		w.Header().Set("X-Request-ID", logging.RequestIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cr := mux.CurrentRoute(r); cr != nil {
			if tmpl, err := cr.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.opts.Metrics.ObserveHTTP(route, r.Method, rec.status, time.Since(start))
		logging.FromContext(r.Context(), s.logger).Debug("request served",
			"method", r.Method, "route", route, "status", rec.status, "elapsed", time.Since(start))
	})
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.logger.Error("panic serving request", "panic", v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
