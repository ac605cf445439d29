package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "propertyhub",
			Name:      "booking_submitted_total",
			Help:      "Count of booking requests accepted as pending.",
		},
	)

	bookingRejectedAtSubmit = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propertyhub",
			Name:      "booking_validation_failures_total",
			Help:      "Count of booking requests refused by validation, by reason.",
		},
		[]string{"reason"},
	)

	adminDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propertyhub",
			Name:      "booking_decision_total",
			Help:      "Count of admin status changes over bookings.",
		},
		[]string{"decision"},
	)

	propertyMutation = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propertyhub",
			Name:      "property_mutation_total",
			Help:      "Count of listing create/update/delete operations.",
		},
		[]string{"op"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingSubmitted, bookingRejectedAtSubmit, adminDecision, propertyMutation)
	})
}

func IncBookingSubmitted() {
	bookingSubmitted.Inc()
}

func IncValidationFailure(reason string) {
	bookingRejectedAtSubmit.WithLabelValues(reason).Inc()
}

func IncAdminDecision(decision string) {
	adminDecision.WithLabelValues(decision).Inc()
}

func IncPropertyMutation(op string) {
	propertyMutation.WithLabelValues(op).Inc()
}
