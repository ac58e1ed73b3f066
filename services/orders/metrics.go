package orders

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted after successful product validation.",
	})
	ordersPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_paid_total",
		Help: "Payment confirmations applied to orders.",
	})
	busFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_bus_faults_total",
		Help: "Fault envelopes sent over the bus, by subject and status code.",
	}, []string{"subject", "code"})
	handleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "orders_handle_duration_seconds",
		Help: "Bus request handling duration, by subject.",
	}, []string{"subject"})
)
