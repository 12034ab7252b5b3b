// Package metrics exposes the acquisition cycle as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/efhk-flights/flightboard/internal/api"
	"github.com/efhk-flights/flightboard/internal/poller"
)

const namespace = "flightboard"

// Metrics represents the collection of all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	FetchesTotal    *prometheus.CounterVec
	FetchDuration   prometheus.Histogram
	StaleDiscarded  prometheus.Counter
	FlightsOnBoard  prometheus.Gauge
	LastSuccessTime prometheus.Gauge
}

// NewMetrics creates all metrics on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Total number of finished flight fetches by result",
		},
		[]string{"result"},
	)

	m.FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of flight fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	m.StaleDiscarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_discarded_total",
			Help:      "Fetch results dropped because a newer fetch was issued or the poller stopped",
		},
	)

	m.FlightsOnBoard = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "flights_on_board",
			Help:      "Number of flights in the last delivered list",
		},
	)

	m.LastSuccessTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful delivered fetch",
		},
	)

	m.registry.MustRegister(
		m.FetchesTotal,
		m.FetchDuration,
		m.StaleDiscarded,
		m.FlightsOnBoard,
		m.LastSuccessTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry the metrics live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records one finished fetch. It satisfies poller.Observer.
func (m *Metrics) ObserveFetch(r poller.Result, delivered bool) {
	m.FetchesTotal.WithLabelValues(api.Kind(r.Err)).Inc()
	m.FetchDuration.Observe(r.Duration.Seconds())

	if !delivered {
		m.StaleDiscarded.Inc()
		return
	}
	if r.Err == nil {
		m.FlightsOnBoard.Set(float64(len(r.Flights)))
		m.LastSuccessTime.Set(float64(r.StartedAt.Add(r.Duration).Unix()))
	}
}

// Handler returns the HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting metrics server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

var _ poller.Observer = (*Metrics)(nil)
