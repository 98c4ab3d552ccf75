// Package metrics holds the Prometheus business counters for feedback.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FeedbackCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feedback_created_total",
		Help: "Feedback records persisted",
	})

	FeedbackDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_deleted_total",
		Help: "Delete requests by outcome (removed, missing)",
	}, []string{"outcome"})

	FeedbackRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_rejected_total",
		Help: "Create requests rejected by validation",
	}, []string{"reason"})

	StoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_store_errors_total",
		Help: "Store gateway failures by operation",
	}, []string{"operation"})
)

// MustRegister registers the counters.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		FeedbackCreated,
		FeedbackDeleted,
		FeedbackRejected,
		StoreErrors,
	)
}

// Handler exposes the default gatherer.
func Handler() http.Handler {
	return promhttp.Handler()
}
