// Package metrics exposes Prometheus collectors for the refresh engine.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes recorded on the refresh counter.
const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultDiscarded = "discarded"
)

// Metrics contains the engine collectors and the registry they live on.
type Metrics struct {
	registry *prometheus.Registry

	Refreshes       *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	Tags            prometheus.Gauge
	Categories      prometheus.Gauge
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tagview",
				Name:      "refresh_total",
				Help:      "Snapshot refreshes by result (ok, error, discarded)",
			},
			[]string{"result"},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "tagview",
				Name:      "refresh_duration_seconds",
				Help:      "Snapshot fetch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Tags: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tagview",
			Name:      "tags",
			Help:      "Number of tags in the current snapshot",
		}),
		Categories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tagview",
			Name:      "categories",
			Help:      "Number of distinct categories in the current snapshot",
		}),
	}
	m.registry.MustRegister(m.Refreshes, m.RefreshDuration, m.Tags, m.Categories)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRefresh records one refresh attempt. A nil receiver is a no-op.
func (m *Metrics) ObserveRefresh(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.Refreshes.WithLabelValues(result).Inc()
	if result != ResultDiscarded {
		m.RefreshDuration.Observe(took.Seconds())
	}
}

// SetSnapshotSize records the size of the installed snapshot.
func (m *Metrics) SetSnapshotSize(tagCount, categoryCount int) {
	if m == nil {
		return
	}
	m.Tags.Set(float64(tagCount))
	m.Categories.Set(float64(categoryCount))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
