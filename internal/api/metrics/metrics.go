// Package metrics defines and registers all custom Prometheus metrics
// for the tracker API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts successfully created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// QuotaRejectionsTotal counts project creations rejected by the
// per-user quota.
var QuotaRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_rejections_total",
		Help:      "Total number of project creations rejected by the per-user quota.",
	},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCompletedTotal counts completions applied through the dedicated
// complete operation.
var TasksCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks marked completed via the complete operation.",
	},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityProcessedTotal counts audit events persisted successfully.
// Labels:
//   - entity: "project" or "task"
//   - action: "created", "updated", "deleted", or "completed"
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of activity events persisted to the audit log.",
	},
	[]string{"entity", "action"},
)

// ActivityErrorsTotal counts audit events that failed processing.
// Label:
//   - reason: "insert_failed" or "queue_full"
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed processing.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks the number of events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
