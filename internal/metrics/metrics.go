// Package metrics exposes the Prometheus collectors of the intake service.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EmailAttempts counts every individual delivery attempt made to the mail transport
	EmailAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "intake",
		Name:      "email_attempts_total",
		Help:      "Confirmation email delivery attempts.",
	})

	// EmailDispatches counts bounded-retry dispatches by final outcome
	EmailDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intake",
		Name:      "email_dispatches_total",
		Help:      "Confirmation email dispatches by outcome.",
	}, []string{"outcome"})

	// Submissions counts submission outcomes
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intake",
		Name:      "submissions_total",
		Help:      "Application submissions by outcome.",
	}, []string{"outcome"})

	// StatusUpdates counts admin review updates by resulting status
	StatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intake",
		Name:      "status_updates_total",
		Help:      "Admin status updates by resulting status.",
	}, []string{"status"})
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Handler serves the default registry in the Prometheus text format
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
