package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mogilev-express/internal/domain"
	"mogilev-express/internal/logx"
)

// counter is the subset of prometheus.Counter the publisher needs.
type counter interface {
	Inc()
}

// Publisher announces created orders on the Redis pub/sub channel.
// Delivery is best-effort: nothing is persisted for couriers who
// connect later, they pull the pending list on connect instead.
type Publisher struct {
	rdb    *redis.Client
	logger logx.Logger
	failed counter
}

// NewPublisher creates a new Publisher. failed may be nil.
func NewPublisher(rdb *redis.Client, logger logx.Logger, failed counter) *Publisher {
	return &Publisher{rdb: rdb, logger: logger, failed: failed}
}

// OrderCreated publishes the order payload to every subscribed session.
func (p *Publisher) OrderCreated(ctx context.Context, o domain.Order) error {
	payload, err := json.Marshal(NewOrderEvent(o))
	if err != nil {
		return fmt.Errorf("marshal order event %s: %w", o.ID, err)
	}

	receivers, err := p.rdb.Publish(ctx, Channel, payload).Result()
	if err != nil {
		if p.failed != nil {
			p.failed.Inc()
		}
		return fmt.Errorf("publish order event %s: %w", o.ID, err)
	}

	p.logger.Debug("order event published",
		logx.String("order_id", o.ID),
		logx.Int64("receivers", receivers),
	)
	return nil
}
