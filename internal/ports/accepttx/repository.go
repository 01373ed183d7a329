package accepttx

import (
	"context"

	"github.com/shopspring/decimal"

	"mogilev-express/internal/domain"
)

// Repository is the set of storage operations available inside a single
// acceptance transaction. The pending → active transition and the
// commission debit commit or roll back together.
type Repository interface {
	GetOrderForUpdate(ctx context.Context, id string) (*domain.Order, error)
	GetAccountForUpdate(ctx context.Context, phone string) (*domain.Account, error)
	MarkOrderActive(ctx context.Context, id, courierPhone string) (bool, error)
	DebitBalance(ctx context.Context, phone string, amount decimal.Decimal) (bool, error)
}
