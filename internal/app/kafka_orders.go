package app

import (
	"context"
	"errors"

	"mogilev-express/internal/apperr"
	"mogilev-express/internal/logx"
	"mogilev-express/internal/service/orders"
	"mogilev-express/internal/transport/kafka"
)

// makeOrderStatusHandler maps outer-platform status events onto the
// order lifecycle. Только "completed" меняет состояние заказа.
func makeOrderStatusHandler(svc *orders.Service, logger logx.Logger) kafka.HandleFunc {
	return func(ctx context.Context, event kafka.Event) error {
		switch event.Status {
		case "completed":
			err := svc.Complete(ctx, event.OrderID)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, apperr.ErrNotFound):
				// событие о заказе, которого у нас нет
				logger.Warn("status event for unknown order",
					logx.String("order_id", event.OrderID),
				)
				return nil
			case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrInvalid):
				logger.Warn("status event not applicable",
					logx.String("order_id", event.OrderID),
					logx.Any("err", err),
				)
				return nil
			default:
				return err
			}
		case "canceled", "deleted":
			logger.Info("order withdrawn upstream, keeping local state",
				logx.String("order_id", event.OrderID),
				logx.String("status", event.Status),
			)
			return nil
		default:
			logger.Debug("ignoring status event",
				logx.String("order_id", event.OrderID),
				logx.String("status", event.Status),
			)
			return nil
		}
	}
}
