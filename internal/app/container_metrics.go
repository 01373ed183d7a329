package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"mogilev-express/internal/metrics"
)

type countersOut struct {
	dig.Out

	OrdersCreated     prometheus.Counter `name:"orders_created_total"`
	AcceptConflicts   prometheus.Counter `name:"accept_conflicts_total"`
	BroadcastFailed   prometheus.Counter `name:"broadcast_failed_total"`
	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
	NotifyRetries     prometheus.Counter `name:"notify_retries_total"`
}

func newCounters() countersOut {
	out := countersOut{
		OrdersCreated:     metrics.NewOrdersCreatedTotal(),
		AcceptConflicts:   metrics.NewAcceptConflictsTotal(),
		BroadcastFailed:   metrics.NewBroadcastFailedTotal(),
		RateLimitExceeded: metrics.NewRateLimitExceededTotal(),
		NotifyRetries:     metrics.NewNotifyRetriesTotal(),
	}
	registerCollectors(
		out.OrdersCreated,
		out.AcceptConflicts,
		out.BroadcastFailed,
		out.RateLimitExceeded,
		out.NotifyRetries,
	)
	return out
}

// registerCollectors tolerates repeated registration: tests build more
// than one container per process.
func registerCollectors(cs ...prometheus.Collector) {
	for _, c := range cs {
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(err)
		}
	}
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newCounters)
}
