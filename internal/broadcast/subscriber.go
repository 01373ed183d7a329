package broadcast

import (
	"context"

	"github.com/redis/go-redis/v9"

	"mogilev-express/internal/logx"
)

const sessionBuffer = 16

// Subscriber attaches courier sessions to the order channel.
type Subscriber struct {
	rdb    *redis.Client
	logger logx.Logger
}

// NewSubscriber creates a new Subscriber.
func NewSubscriber(rdb *redis.Client, logger logx.Logger) *Subscriber {
	return &Subscriber{rdb: rdb, logger: logger}
}

// Subscribe opens one session subscription. The returned channel closes
// when the subscription ends; call stop to end it. A slow session drops
// messages rather than blocking the fan-out.
func (s *Subscriber) Subscribe(ctx context.Context) (<-chan []byte, func(), error) {
	ps := s.rdb.Subscribe(ctx, Channel)
	// дожидаемся подтверждения подписки, иначе можно потерять первое сообщение
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, err
	}

	out := make(chan []byte, sessionBuffer)
	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			select {
			case out <- []byte(msg.Payload):
			default:
				s.logger.Warn("session too slow, order event dropped",
					logx.String("channel", Channel),
				)
			}
		}
	}()

	stop := func() { _ = ps.Close() }
	return out, stop, nil
}
