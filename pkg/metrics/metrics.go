package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	BookingsCreated      prometheus.Counter
	BookingsRescheduled  prometheus.Counter
	BookingsRejected     *prometheus.CounterVec
	AppointmentsArchived prometheus.Counter
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of appointments booked",
		}),
		BookingsRescheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rescheduled_total",
			Help:      "The total number of appointments rescheduled",
		}),
		BookingsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rejected_total",
			Help:      "The total number of booking attempts rejected by validation",
		}, []string{"reason"}),
		AppointmentsArchived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_archived_total",
			Help:      "The total number of appointments soft-deleted by the admin cascade",
		}),
	}
}
