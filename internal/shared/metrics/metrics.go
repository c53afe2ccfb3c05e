// Package metrics exposes Prometheus counters for the chatbot pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts orchestrator turns by detected intent.
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenant_assist",
		Name:      "chatbot_turns_total",
		Help:      "Number of chatbot turns processed, labelled by intent.",
	}, []string{"intent"})

	// HandlerHits counts which handler produced the response.
	HandlerHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenant_assist",
		Name:      "chatbot_handler_hits_total",
		Help:      "Number of responses produced, labelled by handler.",
	}, []string{"handler"})

	// EscalationsTotal counts conversations handed off to a human.
	EscalationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenant_assist",
		Name:      "chatbot_escalations_total",
		Help:      "Number of escalations, labelled by reason.",
	}, []string{"reason"})

	// ActionLogFailures counts best-effort audit writes that failed.
	ActionLogFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tenant_assist",
		Name:      "chatbot_action_log_failures_total",
		Help:      "Number of failed action log inserts.",
	})
)
