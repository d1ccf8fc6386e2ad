package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	platformconfig "github.com/lMelkorl/b2bminiui/internal/platform/config"
)

// Client wraps sqlx.DB with pool settings and health checks.
type Client struct {
	db *sqlx.DB
}

// NewClient connects and pings the database described by cfg.
func NewClient(ctx context.Context, cfg platformconfig.PostgreSQLConfig) (*Client, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Client{db: db}, nil
}

// NewFromDB wraps an existing handle.
func NewFromDB(db *sqlx.DB) *Client {
	return &Client{db: db}
}

// DB returns the underlying *sqlx.DB connection
func (c *Client) DB() *sqlx.DB {
	return c.db
}

func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Client) Close() error {
	return c.db.Close()
}

// HealthCheck performs a health check on the database connection
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx)
}

// Schema creates the catalog tables when missing.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	price       DOUBLE PRECISION NOT NULL DEFAULT 0,
	stock       INTEGER NOT NULL DEFAULT 0,
	material    TEXT NOT NULL DEFAULT '',
	weight      TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id               TEXT PRIMARY KEY,
	customer_name    TEXT NOT NULL,
	customer_email   TEXT NOT NULL DEFAULT '',
	customer_phone   TEXT NOT NULL DEFAULT '',
	order_date       TIMESTAMPTZ NOT NULL,
	status           TEXT NOT NULL,
	total_amount     DOUBLE PRECISION NOT NULL DEFAULT 0,
	items            JSONB NOT NULL DEFAULT '[]',
	shipping_address TEXT NOT NULL DEFAULT '',
	notes            TEXT NOT NULL DEFAULT ''
);

ALTER TABLE products ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
ALTER TABLE orders ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
`

// Lists return rows in insertion order, matching the in-memory store.
const (
	ProductListOrder = `ORDER BY seq`
	OrderListOrder   = `ORDER BY seq`
)

// Migrate applies Schema.
func (c *Client) Migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
