// Package metrics exposes scheduling and CPR counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassesScheduled counts class instances committed by schedule requests
	ClassesScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pwioi",
		Name:      "classes_scheduled_total",
		Help:      "Class instances created by schedule requests.",
	})

	// ScheduleConflicts counts rejected bookings by dimension (room, teacher)
	ScheduleConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pwioi",
		Name:      "schedule_conflicts_total",
		Help:      "Schedule requests rejected because of a double booking.",
	}, []string{"dimension"})

	// Recalculations counts planned date recalculations by outcome
	Recalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pwioi",
		Name:      "cpr_recalculations_total",
		Help:      "CPR planned date recalculations.",
	}, []string{"outcome"})

	// CalendarSync counts calendar calls by operation and outcome
	CalendarSync = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pwioi",
		Name:      "calendar_sync_total",
		Help:      "External calendar sync attempts.",
	}, []string{"operation", "outcome"})

	// ProgressCache counts progress report cache lookups by result (hit, miss, error)
	ProgressCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pwioi",
		Name:      "cpr_progress_cache_total",
		Help:      "CPR progress report cache lookups.",
	}, []string{"result"})
)
