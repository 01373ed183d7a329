package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"mogilev-express/internal/domain"
)

// AccountRepo represents account repository.
type AccountRepo struct{ db *pgxpool.Pool }

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(db *pgxpool.Pool) *AccountRepo { return &AccountRepo{db: db} }

// Get - returns an account by phone.
func (r *AccountRepo) Get(ctx context.Context, phone string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRow(ctx, `
        SELECT phone, role, balance, steps, kcal, COALESCE(telegram_id, 0)
        FROM accounts WHERE phone=$1
    `, phone).Scan(&a.Phone, &a.Role, &a.Balance, &a.Fitness.Steps, &a.Fitness.Kcal, &a.TelegramID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account %s: %w", phone, err)
	}
	return &a, nil
}

// CreateIfAbsent inserts a new account unless one already exists for the
// phone. Reports whether a row was inserted.
func (r *AccountRepo) CreateIfAbsent(ctx context.Context, a *domain.Account) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        INSERT INTO accounts (phone, role, balance, telegram_id)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (phone) DO NOTHING
    `, a.Phone, string(a.Role), a.Balance, a.TelegramID)
	if err != nil {
		return false, fmt.Errorf("create account %s: %w", a.Phone, err)
	}
	return ct.RowsAffected() > 0, nil
}
