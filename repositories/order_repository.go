package repositories

import (
	"context"
	"easy-shop/models"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const orderColumns = `id::text, customer_name, mobile, address, email, payment_method, lines, total_price::text, created_at`

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create writes the order in a single statement. An order whose id already
// exists is left untouched and ErrDuplicateOrder is returned.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("failed to marshal order lines: %w", err)
	}

	query := `
		INSERT INTO orders (id, customer_name, mobile, address, email, payment_method, lines, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	now := time.Now().UTC()

	tag, err := r.db.Exec(ctx, query,
		order.ID, order.CustomerName, order.Mobile, order.Address, order.Email,
		order.PaymentMethod, string(lines), order.TotalPrice.String(), now,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrDuplicateOrder
	}

	order.CreatedAt = now
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isMissing(err) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByEmail matches the stored email exactly.
func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE email = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, email)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if isMissing(err) {
			return models.ErrOrderNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		o     models.Order
		lines []byte
		total string
	)
	err := row.Scan(&o.ID, &o.CustomerName, &o.Mobile, &o.Address, &o.Email,
		&o.PaymentMethod, &lines, &total, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal order lines: %w", err)
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse total %q: %w", total, err)
	}
	o.TotalPrice = d
	return &o, nil
}
