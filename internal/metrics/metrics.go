// Package metrics collects server-wide Prometheus metrics and renders them in the text
// exposition format. All the methods are safe to call on a nil *Metrics, which disables
// collection altogether.
package metrics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "petite"

type Metrics struct {
	registry    *prometheus.Registry
	connections prometheus.Counter
	active      prometheus.Gauge
	requests    *prometheus.CounterVec
	parseErrors prometheus.Counter
	duration    prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		connections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted connections",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of connections currently being served",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of served requests by method and status code",
		}, []string{"method", "code"}),
		parseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Total number of connections closed due to a malformed request",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent from parsing a request till the response is written",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(m.connections, m.active, m.requests, m.parseErrors, m.duration)

	return m
}

// ConnOpened must be paired with ConnClosed.
func (m *Metrics) ConnOpened() {
	if m == nil {
		return
	}

	m.connections.Inc()
	m.active.Inc()
}

func (m *Metrics) ConnClosed() {
	if m == nil {
		return
	}

	m.active.Dec()
}

func (m *Metrics) ParseError() {
	if m == nil {
		return
	}

	m.parseErrors.Inc()
}

// Request records a served request.
func (m *Metrics) Request(method string, code int, took time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.duration.Observe(took.Seconds())
}

// Render writes all the collected metrics in the Prometheus text format.
func (m *Metrics) Render(w io.Writer) error {
	if m == nil {
		return nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range families {
		if _, err = expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("render metrics: %w", err)
		}
	}

	return nil
}
