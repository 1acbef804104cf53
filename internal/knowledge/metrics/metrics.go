package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the knowledge workflow module.
type Metrics struct {
	Transitions   *prometheus.CounterVec
	QueueRequests *prometheus.CounterVec
}

// New creates a Metrics instance with all workflow metrics registered.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kgov_workflow_transitions_total",
			Help: "Workflow transitions by operation and outcome",
		}, []string{"operation", "outcome"}),
		QueueRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kgov_review_queue_requests_total",
			Help: "Review queue listings by queue",
		}, []string{"queue"}),
	}
}

// IncrementTransition records one workflow transition attempt.
func (m *Metrics) IncrementTransition(operation, outcome string) {
	m.Transitions.WithLabelValues(operation, outcome).Inc()
}

// IncrementQueueRequest records one queue listing.
func (m *Metrics) IncrementQueueRequest(queue string) {
	m.QueueRequests.WithLabelValues(queue).Inc()
}
