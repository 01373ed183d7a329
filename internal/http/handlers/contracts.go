package handlers

import (
	"context"

	"mogilev-express/internal/broadcast"
	"mogilev-express/internal/domain"
	"mogilev-express/internal/service/accept"
	"mogilev-express/internal/service/authcode"
	"mogilev-express/internal/service/orders"
)

type ordersUsecase interface {
	Create(ctx context.Context, req orders.CreateRequest) (domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListPending(ctx context.Context) ([]domain.Order, error)
}

// NewOrdersUsecase wires an orders Service into an ordersUsecase.
func NewOrdersUsecase(svc *orders.Service) ordersUsecase {
	return svc
}

type acceptUsecase interface {
	Accept(ctx context.Context, orderID, courierPhone string) (domain.AcceptResult, error)
}

// NewAcceptUsecase wires an accept Service into an acceptUsecase.
func NewAcceptUsecase(svc *accept.Service) acceptUsecase {
	return svc
}

type authUsecase interface {
	Issue(ctx context.Context, phone string, telegramID int64) error
	Login(ctx context.Context, phone, code string) (authcode.LoginResult, error)
}

// NewAuthUsecase wires an authcode Service into an authUsecase.
func NewAuthUsecase(svc *authcode.Service) authUsecase {
	return svc
}

type streamSource interface {
	Subscribe(ctx context.Context) (<-chan []byte, func(), error)
}

// NewStreamSource wires a broadcast Subscriber into a streamSource.
func NewStreamSource(sub *broadcast.Subscriber) streamSource {
	return sub
}
