// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gleam_solver"

var (
	// EntriesDispatched counts entries handed to a handler.
	EntriesDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_dispatched_total",
			Help:      "Total number of entries dispatched to a handler",
		},
		[]string{"kind", "tier"},
	)

	// EntriesSkipped counts entries the orchestrator did not dispatch.
	EntriesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_skipped_total",
			Help:      "Total number of entries skipped, by reason",
		},
		[]string{"reason"},
	)

	// HandlerFailures counts handler errors and recovered panics.
	HandlerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_failures_total",
			Help:      "Total number of failed handler invocations",
		},
		[]string{"kind"},
	)

	// GroupResponses counts responses received from the group responder.
	GroupResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "group_responses_total",
			Help:      "Total number of group protocol responses, by status",
		},
		[]string{"status"},
	)

	// PollTimeouts counts completion polls that hit their timeout.
	PollTimeouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_timeouts_total",
			Help:      "Total number of completion polls that timed out",
		},
	)

	// Runs counts orchestration passes by outcome.
	Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of orchestration passes, by outcome",
		},
		[]string{"outcome"},
	)

	// Progress is the processed/total ratio of the current pass.
	Progress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "progress_ratio",
			Help:      "Processed entries divided by scheduled entries in the current pass",
		},
	)
)

// Collectors returns every solver metric.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		EntriesDispatched,
		EntriesSkipped,
		HandlerFailures,
		GroupResponses,
		PollTimeouts,
		Runs,
		Progress,
	}
}

// Register adds every solver metric to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
