package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "booking_conflicts_total",
			Help:      "Count of booking attempts rejected for an occupied interval.",
		},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	ordersFinalized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "orders_finalized_total",
			Help:      "Count of orders finalized into a frozen breakdown.",
		},
	)

	promotionsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "promotions_applied_total",
			Help:      "Count of promotions applied to finalized orders, by type.",
		},
		[]string{"type"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated, bookingConflicts, bookingCancelled,
			ordersFinalized, promotionsApplied,
		)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingConflict() {
	bookingConflicts.Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncOrderFinalized() {
	ordersFinalized.Inc()
}

func IncPromotionApplied(promoType string) {
	promotionsApplied.WithLabelValues(promoType).Inc()
}
