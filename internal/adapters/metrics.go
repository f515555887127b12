package adapters

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hrms-project/hrms-portal/internal/config"
)

// MetricsServer exposes portal metrics on a dedicated listener.
type MetricsServer struct {
	*http.Server

	loginAttempts    *prometheus.CounterVec
	cacheEvents      *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
}

// NewMetricsServer returns a new prometheus server
func NewMetricsServer(cfg *config.Config) *MetricsServer {
	reg := prometheus.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &MetricsServer{
		Server: &http.Server{
			Addr:    cfg.Statistics.ListeningAddress,
			Handler: mux,
		},

		loginAttempts: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrms_login_attempts_total",
				Help: "Login attempts against the identity provider.",
			}, []string{"outcome"},
		),
		cacheEvents: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrms_directory_cache_events_total",
				Help: "Directory cache hits, misses and invalidations.",
			}, []string{"event"},
		),
		providerRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrms_provider_requests_total",
				Help: "Requests issued to the identity provider.",
			}, []string{"operation"},
		),
	}
}

// Run starts the metrics server. The function blocks until the context is cancelled.
func (m *MetricsServer) Run(ctx context.Context) {
	// Run the metrics server in a goroutine and listen for context cancellation
	go func() {
		if err := m.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics service exited", "address", m.Addr, "error", err)
		}
	}()

	slog.Info("started metrics service", "address", m.Addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.Shutdown(shutdownCtx)
}

// CountLogin increments the login counter for the given outcome.
func (m *MetricsServer) CountLogin(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

// CountCacheEvent increments the directory cache counter for the given event.
func (m *MetricsServer) CountCacheEvent(event string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(event).Inc()
}

// CountProviderRequest increments the provider request counter for the given operation.
func (m *MetricsServer) CountProviderRequest(operation string) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(operation).Inc()
}
