package accept

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"mogilev-express/internal/apperr"
	"mogilev-express/internal/domain"
	"mogilev-express/internal/logx"
	"mogilev-express/internal/ports/accepttx"
)

// Service serializes the "take order" operation: however many couriers
// race for the same order, at most one leaves it out of the pending
// state, and exactly one commission is debited for it.
type Service struct {
	repo             txRunner
	operationTimeout time.Duration
	logger           logx.Logger
	conflicts        counter
}

// NewService creates a new accept Service. conflicts may be nil.
func NewService(r txRunner, timeout time.Duration, logger logx.Logger, conflicts counter) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		conflicts:        conflicts,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Accept lets a courier take a pending order, pre-paying the commission
// from the wallet balance.
//
// The whole check-and-write sequence runs in one transaction with the
// order row locked, so the naive read-then-write race cannot admit two
// winners. The status update itself is still conditional on
// status=pending as a second guard. Every failure path rolls the
// transaction back: no partial debit or transition ever persists.
func (s *Service) Accept(ctx context.Context, orderID, courierPhone string) (domain.AcceptResult, error) {
	orderID = strings.TrimSpace(orderID)
	if _, err := uuid.Parse(orderID); err != nil {
		return domain.AcceptResult{}, apperr.ErrInvalid
	}
	if !domain.ValidatePhone(courierPhone) {
		return domain.AcceptResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.AcceptResult

	err := s.repo.WithTx(ctx, func(tx accepttx.Repository) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.ErrNotFound
		}

		courier, err := tx.GetAccountForUpdate(ctx, courierPhone)
		if err != nil {
			return err
		}
		if courier == nil {
			return apperr.ErrNotFound
		}

		if courier.Balance.LessThan(order.Commission) {
			return apperr.ErrInsufficientFunds
		}
		if order.Status != domain.OrderPending {
			return apperr.ErrOrderTaken
		}

		ok, err := tx.MarkOrderActive(ctx, orderID, courierPhone)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrOrderTaken
		}

		ok, err = tx.DebitBalance(ctx, courierPhone, order.Commission)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInsufficientFunds
		}

		result = domain.AcceptResult{
			OrderID:      orderID,
			CourierPhone: courierPhone,
			Commission:   order.Commission,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrOrderTaken) && s.conflicts != nil {
			s.conflicts.Inc()
		}
		return domain.AcceptResult{}, err
	}

	s.logger.Info("order accepted",
		logx.String("event", "order_accepted"),
		logx.String("order_id", result.OrderID),
		logx.String("courier_phone", result.CourierPhone),
		logx.String("commission", result.Commission.String()),
	)

	return result, nil
}
