package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"mogilev-express/internal/domain"
	"mogilev-express/internal/ports/accepttx"
)

// AcceptRepo runs order-acceptance transactions.
type AcceptRepo struct {
	db *pgxpool.Pool
}

// NewAcceptRepo creates a new AcceptRepo.
func NewAcceptRepo(db *pgxpool.Pool) *AcceptRepo {
	return &AcceptRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *AcceptRepo) WithTx(ctx context.Context, fn func(tx accepttx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents acceptance transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetOrderForUpdate - fetch an order and lock its row for the
// duration of the transaction.
func (r *TxRepo) GetOrderForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+orderColumns+`
        FROM orders
        WHERE id = $1
        FOR UPDATE
    `, id)

	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update %s: %w", id, err)
	}
	return o, nil
}

// GetAccountForUpdate - fetch an account and lock its row for the
// duration of the transaction.
func (r *TxRepo) GetAccountForUpdate(ctx context.Context, phone string) (*domain.Account, error) {
	var a domain.Account
	err := r.tx.QueryRow(ctx, `
        SELECT phone, role, balance, steps, kcal, COALESCE(telegram_id, 0)
        FROM accounts
        WHERE phone = $1
        FOR UPDATE
    `, phone).Scan(&a.Phone, &a.Role, &a.Balance, &a.Fitness.Steps, &a.Fitness.Kcal, &a.TelegramID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account for update %s: %w", phone, err)
	}
	return &a, nil
}

// MarkOrderActive - conditional pending → active transition. Returns
// false when the order is no longer pending (lost race or bad state).
func (r *TxRepo) MarkOrderActive(ctx context.Context, id, courierPhone string) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $2, courier_phone = $3
        WHERE id = $1 AND status = $4
    `, id, string(domain.OrderActive), courierPhone, string(domain.OrderPending))
	if err != nil {
		return false, fmt.Errorf("mark order active %s: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// DebitBalance - conditional balance debit. Returns false when the
// balance does not cover the amount; the row is never driven negative.
func (r *TxRepo) DebitBalance(ctx context.Context, phone string, amount decimal.Decimal) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE accounts
        SET balance = balance - $2, updated_at = now()
        WHERE phone = $1 AND balance >= $2
    `, phone, amount)
	if err != nil {
		return false, fmt.Errorf("debit balance %s: %w", phone, err)
	}
	return ct.RowsAffected() > 0, nil
}
