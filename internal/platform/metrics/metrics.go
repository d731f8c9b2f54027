package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "org_banking"

// Reconciliation outcomes recorded per account.
const (
	OutcomeGenerated = "generated"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Recorder owns the engine's collectors and the registry they live in.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	initiated          *prometheus.CounterVec
	transitions        *prometheus.CounterVec
	executions         *prometheus.CounterVec
	reconciledAccounts *prometheus.CounterVec
	reconcileDuration  prometheus.Histogram
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewRecorder builds a Recorder on a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		initiated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "transactions",
				Name:      "initiated_total",
				Help:      "Transactions initiated, by type.",
			},
			[]string{"type"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "transactions",
				Name:      "transitions_total",
				Help:      "Lifecycle transitions, by resulting status.",
			},
			[]string{"status"},
		),
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "balance",
				Name:      "executions_total",
				Help:      "Balance executions, by transaction type.",
			},
			[]string{"type"},
		),
		reconciledAccounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconciliation",
				Name:      "accounts_total",
				Help:      "Accounts processed by reconciliation runs, by outcome.",
			},
			[]string{"outcome"},
		),
		reconcileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "reconciliation",
				Name:      "run_duration_seconds",
				Help:      "Duration of reconciliation runs.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "route"},
		),
	}

	r.registry.MustRegister(
		r.initiated,
		r.transitions,
		r.executions,
		r.reconciledAccounts,
		r.reconcileDuration,
		r.httpRequests,
		r.httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// TransactionInitiated counts a new transaction.
func (r *Recorder) TransactionInitiated(txType string) {
	if r == nil {
		return
	}
	r.initiated.WithLabelValues(txType).Inc()
}

// TransactionTransitioned counts a move into status.
func (r *Recorder) TransactionTransitioned(status string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(status).Inc()
}

// BalanceExecuted counts a committed balance mutation.
func (r *Recorder) BalanceExecuted(txType string) {
	if r == nil {
		return
	}
	r.executions.WithLabelValues(txType).Inc()
}

// ReconciliationAccount counts one account's outcome within a run.
func (r *Recorder) ReconciliationAccount(outcome string) {
	if r == nil {
		return
	}
	r.reconciledAccounts.WithLabelValues(outcome).Inc()
}

// ReconciliationRun records the duration of one run.
func (r *Recorder) ReconciliationRun(duration time.Duration) {
	if r == nil {
		return
	}
	if duration <= 0 {
		duration = time.Millisecond
	}
	r.reconcileDuration.Observe(duration.Seconds())
}

// HTTPRequest records one handled request. route is the matched route
// template, never the raw path.
func (r *Recorder) HTTPRequest(method string, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
