// Package metrics defines and registers all custom Prometheus metrics for the
// NannyTime API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nannytime"

// ── Shift lifecycle metrics ───────────────────────────────────────────────────

// ClockInsTotal counts successful clock-ins.
var ClockInsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_ins_total",
		Help:      "Total number of successful clock-ins.",
	},
)

// ClockOutsTotal counts successful clock-outs.
var ClockOutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_outs_total",
		Help:      "Total number of successful clock-outs.",
	},
)

// ShiftMutationsTotal counts manual shift edits by operation.
// Label:
//   - op: "manual_add", "edit", or "delete"
var ShiftMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shift_mutations_total",
		Help:      "Total number of manual shift mutations, by operation.",
	},
	[]string{"op"},
)

// ActiveShiftAnomaliesTotal counts lists found holding more than one open
// shift (a store consistency violation the lifecycle manager tolerates).
var ActiveShiftAnomaliesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "active_shift_anomalies_total",
		Help:      "Times a user's shift list contained more than one open shift.",
	},
)

// ── Payroll metrics ───────────────────────────────────────────────────────────

// PayStubRequestsTotal counts pay-stub computations.
// Label:
//   - period: "week" or "month"
var PayStubRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "paystub_requests_total",
		Help:      "Total number of pay stub requests, by period.",
	},
	[]string{"period"},
)

// SummaryFallbacksTotal counts summary generations that degraded to the
// static fallback text.
// Label:
//   - reason: "generation_failed" or "cache_failed"
var SummaryFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_fallbacks_total",
		Help:      "Total number of pay stub summaries served from the static fallback.",
	},
	[]string{"reason"},
)

// ── Prewarm pipeline metrics ──────────────────────────────────────────────────

// PrewarmQueueDepth tracks the current number of jobs waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PrewarmQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "prewarm_queue_depth",
		Help:      "Current number of jobs pending in each prewarm worker channel.",
	},
	[]string{"worker_id"},
)

// PrewarmDuration measures how long one summary prewarm takes end-to-end.
// Label:
//   - result: "ok" or "error"
var PrewarmDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prewarm_duration_seconds",
		Help:      "Duration of summary prewarm from dequeue to cache write.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)
