// Package observability defines the engine's Prometheus metrics.
// Metrics are package-level promauto collectors; the game layer increments
// them inline and the API server exposes them on /metrics when enabled.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Economy Metrics ────────────────────────────────────────────────────────

// EarningsSettled accumulates passive income materialized into balances.
var EarningsSettled = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "devbyte",
	Subsystem: "economy",
	Name:      "earnings_settled_total",
	Help:      "Total passive earnings credited by settlement.",
})

// ─── Build Metrics ──────────────────────────────────────────────────────────

// BuildsStarted counts builds that paid their cost and entered progress.
var BuildsStarted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "devbyte",
	Subsystem: "builds",
	Name:      "started_total",
	Help:      "Total builds started (apps, tools, security upgrades).",
})

// BuildsCompleted counts builds whose effect was granted.
var BuildsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "devbyte",
	Subsystem: "builds",
	Name:      "completed_total",
	Help:      "Total builds completed.",
})

// BuildsCancelled counts builds discarded before completion (cost forfeited).
var BuildsCancelled = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "devbyte",
	Subsystem: "builds",
	Name:      "cancelled_total",
	Help:      "Total builds cancelled before completion.",
})

// ─── Action Metrics ─────────────────────────────────────────────────────────

// HacksResolved counts hack attempts by result.
var HacksResolved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "devbyte",
	Subsystem: "actions",
	Name:      "hacks_total",
	Help:      "Total hack attempts resolved, by result.",
}, []string{"result"})

// CasesResolved counts court rulings by result.
var CasesResolved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "devbyte",
	Subsystem: "actions",
	Name:      "court_cases_total",
	Help:      "Total court cases resolved, by result.",
}, []string{"result"})

// ─── Task Metrics ───────────────────────────────────────────────────────────

// TasksCompleted counts granted task rewards by bucket.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "devbyte",
	Subsystem: "tasks",
	Name:      "completed_total",
	Help:      "Total task rewards granted, by bucket.",
}, []string{"bucket"})
