// Package metrics owns the Prometheus collectors of the engine. Collectors are
// registered on a private registry so that tests can build as many as they need.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/ports"
	"brokerage/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ResultOK labels a command that succeeded.
const ResultOK = "ok"

type Metrics struct {
	registry     *prometheus.Registry
	commands     *prometheus.CounterVec
	storeRetries prometheus.Counter
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	publishFails prometheus.Counter
	drifts       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry:     prometheus.NewRegistry(),
		commands:     NewCommandsTotal(),
		storeRetries: NewStoreRetriesTotal(),
		publishFails: NewPublishFailuresTotal(),
		drifts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "brokerage_history_drifts",
			Help: "Requests whose status history disagreed with the stored status at the last check",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
	m.registry.MustRegister(
		m.commands, m.storeRetries, m.publishFails, m.drifts, m.httpRequests, m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// NewCommandsTotal counts handled commands by name and outcome kind.
func NewCommandsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brokerage_commands_total",
		Help: "Total number of handled commands by outcome",
	}, []string{"command", "result"})
}

// NewStoreRetriesTotal counts read attempts repeated after a store outage.
func NewStoreRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brokerage_store_read_retries_total",
		Help: "Total number of store reads retried after the store was unavailable",
	})
}

// NewPublishFailuresTotal counts event batches the broker refused after commit.
func NewPublishFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brokerage_event_publish_failures_total",
		Help: "Total number of lifecycle event batches that could not be published",
	})
}

// ObserveCommand labels the outcome with the error kind, or ResultOK.
func (m *Metrics) ObserveCommand(command string, err error) {
	result := ResultOK
	if err != nil {
		result = errs.KindOf(err).String()
	}
	m.commands.WithLabelValues(command, result).Inc()
}

// StoreRetries is handed to the read retrier.
func (m *Metrics) StoreRetries() prometheus.Counter {
	return m.storeRetries
}

func (m *Metrics) PublishFailures() prometheus.Counter {
	return m.publishFails
}

func (m *Metrics) SetHistoryDrifts(n int) {
	m.drifts.Set(float64(n))
}

// CountFailures wraps next so that every refused batch is counted.
func (m *Metrics) CountFailures(next ports.EventPublisher) ports.EventPublisher {
	return countingPublisher{next: next, failures: m.publishFails}
}

type countingPublisher struct {
	next     ports.EventPublisher
	failures prometheus.Counter
}

func (p countingPublisher) Publish(ctx context.Context, events []request.Event) error {
	err := p.next.Publish(ctx, events)
	if err != nil {
		p.failures.Inc()
	}
	return err
}

func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
