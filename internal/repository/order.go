package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mogilev-express/internal/domain"
)

const orderColumns = `id, client_phone, courier_phone,
	from_lat, from_lng, to_lat, to_lng,
	distance_m, price, commission, status, created_at`

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// Create - persists a new order.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO orders (id, client_phone, courier_phone,
            from_lat, from_lng, to_lat, to_lng,
            distance_m, price, commission, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, o.ID, o.ClientPhone, o.CourierPhone,
		o.From.Lat, o.From.Lng, o.To.Lat, o.To.Lng,
		o.DistanceMeters, o.Price, o.Commission, string(o.Status), o.CreatedAt)
	if err != nil {
		return fmt.Errorf("create order %s: %w", o.ID, err)
	}
	return nil
}

// Get - returns an order by its ID.
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

// ListPending returns all orders still waiting for a courier, newest first.
func (r *OrderRepo) ListPending(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+orderColumns+`
        FROM orders
        WHERE status = $1
        ORDER BY created_at DESC
    `, string(domain.OrderPending))
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending order: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Complete transitions an order active → completed and reports whether
// the transition happened.
func (r *OrderRepo) Complete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET status = $2
        WHERE id = $1 AND status = $3
    `, id, string(domain.OrderCompleted), string(domain.OrderActive))
	if err != nil {
		return false, fmt.Errorf("complete order %s: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	err := row.Scan(&o.ID, &o.ClientPhone, &o.CourierPhone,
		&o.From.Lat, &o.From.Lng, &o.To.Lat, &o.To.Lng,
		&o.DistanceMeters, &o.Price, &o.Commission, &status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}
