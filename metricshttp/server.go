package metricshttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/toolguard/health"
	"github.com/jonwraymond/toolguard/obslog"
)

// Server is the C6 metrics & health HTTP surface: GET /metrics and
// GET /health bound to loopback, behind per-IP admission control and a
// response size cap.
type Server struct {
	cfg        Config
	registry   *prometheus.Registry
	aggregator *health.Aggregator
	limiter    *ipLimiter
	startedAt  time.Time
	logger     obslog.Logger

	httpSrv *http.Server
}

// NewServer builds a Server. registry is gathered for both /metrics
// shapes; sources are registered with an internal health.Aggregator
// and checked on every GET /health.
func NewServer(cfg Config, registry *prometheus.Registry, sources ...Source) *Server {
	cfg = cfg.withDefaults()

	agg := health.NewAggregator()
	for _, src := range sources {
		agg.Register(src.Name(), src)
	}

	s := &Server{
		cfg:        cfg,
		registry:   registry,
		aggregator: agg,
		limiter:    newIPLimiter(cfg.RateLimit, rateLimitWindow),
		startedAt:  time.Now(),
		logger:     obslog.NopLogger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.withAdmission(s.handleMetrics))
	mux.HandleFunc("/health", s.withAdmission(s.handleHealth))

	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler: mux,
	}
	return s
}

// WithLogger attaches a logger for request-level diagnostics. Optional;
// defaults to a no-op logger.
func (s *Server) WithLogger(logger obslog.Logger) *Server {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// ListenAndServe blocks serving the metrics surface until ctx is
// cancelled, at which point it shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// withAdmission wraps handler with the disabled/rate-limit/size-cap
// checks every endpoint shares.
func (s *Server) withAdmission(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.cfg.Enabled {
			http.Error(w, "metrics surface disabled", http.StatusServiceUnavailable)
			return
		}

		ip := clientIP(r)
		if !s.limiter.allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rateLimitWindow.Seconds())))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		cw := &cappedWriter{ResponseWriter: w, limit: s.cfg.MaxResponseBytes}
		handler(cw, r)
		if cw.exceeded {
			s.logger.Warn(r.Context(), "metrics response exceeded size cap",
				obslog.Field{Key: "path", Value: r.URL.Path},
				obslog.Field{Key: "limit_bytes", Value: s.cfg.MaxResponseBytes},
			)
		}
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "json" {
		families, err := gatherJSON(s.registry)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(families)
		return
	}

	promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

type healthResponse struct {
	Status   string   `json:"status"`
	UptimeMs int64    `json:"uptimeMs"`
	Failing  []string `json:"failing,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	results := s.aggregator.CheckAll(ctx)
	status := s.aggregator.OverallStatus(results)

	resp := healthResponse{
		Status:   status.String(),
		UptimeMs: time.Since(s.startedAt).Milliseconds(),
		Failing:  health.FailingComponents(results),
	}

	w.Header().Set("Content-Type", "application/json")
	switch status {
	case health.StatusHealthy, health.StatusDegraded:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// cappedWriter enforces Config.MaxResponseBytes, cutting the body off
// (rather than buffering the whole response) once the limit is hit and
// reporting 413 if no bytes have been written yet.
type cappedWriter struct {
	http.ResponseWriter
	limit    int64
	written  int64
	exceeded bool
	status   int
}

func (c *cappedWriter) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *cappedWriter) Write(p []byte) (int, error) {
	if c.written == 0 && int64(len(p)) > c.limit {
		c.exceeded = true
		http.Error(c.ResponseWriter, "response too large", http.StatusRequestEntityTooLarge)
		return 0, fmt.Errorf("metricshttp: response exceeds %d byte cap", c.limit)
	}
	if c.written+int64(len(p)) > c.limit {
		p = p[:c.limit-c.written]
		c.exceeded = true
	}
	n, err := c.ResponseWriter.Write(p)
	c.written += int64(n)
	return n, err
}
