package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	apperrors "github.com/agbru/fetchview/internal/errors"
	"github.com/agbru/fetchview/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server exposes Metrics over HTTP on /metrics, plus a /healthz liveness endpoint.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
}

// NewServer creates a Server bound to addr once started.
func NewServer(addr string, metrics *Metrics, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Server{
		addr:     addr,
		metrics:  metrics,
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Handler returns the routing handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))
	return mux
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return apperrors.WrapError(err, "listening on %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("metrics server shutdown", err)
			return err
		}
		s.logger.Info("metrics server stopped")
		return nil
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks in-flight and total endpoint requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, rec.code)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}
