package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for one server.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	scansTotal     *prometheus.CounterVec
	scanDuration   prometheus.Histogram
	scanCandidates prometheus.Counter
	primesReturned prometheus.Counter
}

// NewMetrics creates a registry with Go runtime, process and service metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primesvc_http_requests_total",
			Help: "Total HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primesvc_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		scansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primesvc_scans_total",
			Help: "Range scans by outcome (ok, timeout, canceled).",
		}, []string{"outcome"}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "primesvc_scan_duration_seconds",
			Help:    "Wall time spent scanning a range.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		scanCandidates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primesvc_scan_candidates_total",
			Help: "Integers submitted to the primality test.",
		}),
		primesReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primesvc_primes_returned_total",
			Help: "Primes returned to clients.",
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.scansTotal,
		m.scanDuration,
		m.scanCandidates,
		m.primesReturned,
	)

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest records one served HTTP request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordScan records one range scan of span candidates.
func (m *Metrics) RecordScan(span uint64, found int, duration time.Duration, err error) {
	m.scansTotal.WithLabelValues(scanOutcome(err)).Inc()
	m.scanDuration.Observe(duration.Seconds())
	if err == nil {
		m.scanCandidates.Add(float64(span))
		m.primesReturned.Add(float64(found))
	}
}

func scanOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "canceled"
	}
}
