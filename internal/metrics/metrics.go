package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewOrdersCreatedTotal returns a Prometheus counter for the number of placed orders
func NewOrdersCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of placed delivery orders",
	})
}

// NewAcceptConflictsTotal returns a Prometheus counter for lost accept races
func NewAcceptConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "accept_conflicts_total",
		Help: "Total number of accept attempts lost to another courier",
	})
}

// NewBroadcastFailedTotal returns a Prometheus counter for failed order broadcasts
func NewBroadcastFailedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "broadcast_failed_total",
		Help: "Total number of order events that failed to publish",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewNotifyRetriesTotal returns a Prometheus counter for the number of retry attempts performed by the notify gateway
func NewNotifyRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notify_retries_total",
		Help: "Total number of retry attempts performed by the notify gateway",
	})
}
