package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"glacier_storefront/internal/model"
)

// OrderRepository defines operations for order data
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByUser(ctx context.Context, userID string) ([]model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
}

type orderRepository struct {
	db DB
}

// NewOrderRepository creates a new OrderRepository backed by Postgres
func NewOrderRepository(db DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order; line items are stored as a JSONB snapshot
func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	sql := `INSERT INTO orders (id, user_id, items, total, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.Exec(ctx, sql, o.ID, o.UserID, items, o.Total, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindByUser retrieves a user's orders, most recent first
func (r *orderRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	sql := `SELECT id, user_id, items, total, status, created_at
            FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by user: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// FindAll retrieves every order, most recent first. Admin use only.
func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	sql := `SELECT id, user_id, items, total, status, created_at
            FROM orders ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query all orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanOrders(rows rowScanner) ([]model.Order, error) {
	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var items []byte
		if err := rows.Scan(&o.ID, &o.UserID, &items, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, nil
}
