package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lMelkorl/b2bminiui/internal/database/postgres"
	"github.com/lMelkorl/b2bminiui/orders/models"
)

const orderColumns = `id, customer_name, customer_email, customer_phone, order_date, status, total_amount, items, shipping_address, notes`

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a repository over the orders table.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders ` + postgres.OrderListOrder
	if err := sqlx.SelectContext(ctx, r.client.DB(), &orders, query); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *postgresRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.client.DB(), &o, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (r *postgresRepository) Update(ctx context.Context, id string, fn func(*models.Order) error) (*models.Order, error) {
	tx, err := r.client.DB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var o models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &o, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock order: %w", err)
	}

	if err := fn(&o); err != nil {
		return nil, err
	}

	update := `
		UPDATE orders
		SET status = :status, total_amount = :total_amount, items = :items,
		    shipping_address = :shipping_address, notes = :notes
		WHERE id = :id
	`
	if _, err := tx.NamedExecContext(ctx, update, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &o, nil
}

// SeedPostgres inserts orders that are not stored yet.
func SeedPostgres(ctx context.Context, client *postgres.Client, orders []models.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES (:id, :customer_name, :customer_email, :customer_phone, :order_date, :status,
		        :total_amount, :items, :shipping_address, :notes)
		ON CONFLICT (id) DO NOTHING
	`
	for _, o := range orders {
		if _, err := sqlx.NamedExecContext(ctx, client.DB(), query, o); err != nil {
			return fmt.Errorf("seed order %s: %w", o.ID, err)
		}
	}
	return nil
}
