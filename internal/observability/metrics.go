package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the journal pipeline. Exposed on /metrics by the HTTP
// adapter.
var (
	RowsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "energolog_rows_appended_total",
		Help: "Rows successfully appended to the tabular backend.",
	})

	BatchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "energolog_batch_failures_total",
		Help: "Persistence batches that failed before completion.",
	})

	RemindersFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "energolog_reminders_fired_total",
		Help: "Daily reminder notifications dispatched.",
	})

	ClassifierCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energolog_classifier_calls_total",
		Help: "Classification calls by strategy and outcome.",
	}, []string{"strategy", "outcome"})
)
