package orders

import (
	"context"

	"mogilev-express/internal/domain"
)

// ordersRepository defines storage operations required by the business layer.
type ordersRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListPending(ctx context.Context) ([]domain.Order, error)
	Complete(ctx context.Context, id string) (bool, error)
}

// counter is the subset of prometheus.Counter the service needs.
type counter interface {
	Inc()
}

// Broadcaster fans a newly created order out to connected courier
// sessions. Delivery is best-effort: a failure must not undo the order.
type Broadcaster interface {
	OrderCreated(ctx context.Context, o domain.Order) error
}
