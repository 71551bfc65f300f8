package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector exported by the service
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBOpenConns      prometheus.Gauge
	DBInUseConns     prometheus.Gauge
	DBIdleConns      prometheus.Gauge
	DBWaitCountTotal prometheus.Gauge

	BookingsCreated *prometheus.CounterVec
	PaymentOutcomes *prometheus.CounterVec
}

// New registers collectors in the default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers collectors in reg (tests pass a fresh registry)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors.",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool.",
			ConstLabels: constLabels,
		}),
		DBInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: constLabels,
		}),
		DBIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool.",
			ConstLabels: constLabels,
		}),
		DBWaitCountTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}),
		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created by type.",
			ConstLabels: constLabels,
		}, []string{"type"}),
		PaymentOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_outcomes_total",
			Help:        "Payment initiation outcomes by status.",
			ConstLabels: constLabels,
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCountTotal,
		m.BookingsCreated,
		m.PaymentOutcomes,
	)

	return m
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveQuery records one database call
func (m *Metrics) ObserveQuery(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// IncBookingCreated counts a created booking
func (m *Metrics) IncBookingCreated(bookingType string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(bookingType).Inc()
}

// IncPaymentOutcome counts a payment initiation result
func (m *Metrics) IncPaymentOutcome(status string) {
	if m == nil {
		return
	}
	m.PaymentOutcomes.WithLabelValues(status).Inc()
}
