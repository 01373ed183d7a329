package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mogilev-express/internal/apperr"
	"mogilev-express/internal/domain"
	"mogilev-express/internal/logx"
	"mogilev-express/internal/pricing"
)

// Service coordinates the order lifecycle: creation with pricing,
// pending-list queries and the terminal completed transition.
type Service struct {
	repo             ordersRepository
	broadcaster      Broadcaster
	operationTimeout time.Duration
	logger           logx.Logger
	created          counter
	now              func() time.Time
	newID            func() string
}

// NewService creates and configures an orders Service.
func NewService(r ordersRepository, b Broadcaster, timeout time.Duration, logger logx.Logger, created counter) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		broadcaster:      b,
		operationTimeout: timeout,
		logger:           logger,
		created:          created,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreateRequest carries a client's delivery request.
type CreateRequest struct {
	ClientPhone    string
	From           domain.Coords
	To             domain.Coords
	DistanceMeters int64
}

func validateCreate(req CreateRequest) error {
	if !domain.ValidatePhone(req.ClientPhone) {
		return apperr.ErrInvalid
	}
	if !req.From.Valid() || !req.To.Valid() {
		return apperr.ErrInvalid
	}
	if req.DistanceMeters < 0 {
		return apperr.ErrInvalid
	}
	return nil
}

// Create prices a delivery request, persists it as a pending order and
// announces it to connected couriers. The broadcast fires only after
// the order is stored; a broadcast failure does not fail the create.
func (s *Service) Create(ctx context.Context, req CreateRequest) (domain.Order, error) {
	if err := validateCreate(req); err != nil {
		return domain.Order{}, err
	}

	quote, err := pricing.ForDistance(req.DistanceMeters)
	if err != nil {
		return domain.Order{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	order := domain.Order{
		ID:             s.newID(),
		ClientPhone:    req.ClientPhone,
		From:           req.From,
		To:             req.To,
		DistanceMeters: req.DistanceMeters,
		Price:          quote.Price,
		Commission:     quote.Commission,
		Status:         domain.OrderPending,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, &order); err != nil {
		return domain.Order{}, err
	}
	if s.created != nil {
		s.created.Inc()
	}

	if err := s.broadcaster.OrderCreated(ctx, order); err != nil {
		s.logger.Warn("order broadcast failed",
			logx.String("order_id", order.ID),
			logx.Any("err", err),
		)
	}

	s.logger.Info("order created",
		logx.String("event", "order_created"),
		logx.String("order_id", order.ID),
		logx.Int64("distance_m", order.DistanceMeters),
		logx.String("price", order.Price.String()),
		logx.String("commission", order.Commission.String()),
	)

	return order, nil
}

// Get retrieves an order by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// ListPending returns orders still waiting for a courier. Couriers call
// this on connect: the broadcast channel does not replay past orders.
func (s *Service) ListPending(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.ListPending(ctx)
}

// Complete applies the terminal active → completed transition. The
// trigger comes from the outer platform via the status-event worker.
func (s *Service) Complete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.Complete(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		s.logger.Info("order completed",
			logx.String("event", "order_completed"),
			logx.String("order_id", id),
		)
		return nil
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return apperr.ErrNotFound
	}
	return apperr.ErrConflict
}
