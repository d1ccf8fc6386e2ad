package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lMelkorl/b2bminiui/internal/database/postgres"
	"github.com/lMelkorl/b2bminiui/products/models"
)

const productColumns = `id, name, category, price, stock, material, weight, description, image, created_at`

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a repository over the products table.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT ` + productColumns + ` FROM products ` + postgres.ProductListOrder
	if err := sqlx.SelectContext(ctx, r.client.DB(), &products, query); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *postgresRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.client.DB(), &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, product models.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (:id, :name, :category, :price, :stock, :material, :weight, :description, :image, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, r.client.DB(), query, product); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, id string, fn func(*models.Product) error) (*models.Product, error) {
	tx, err := r.client.DB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var p models.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}

	if err := fn(&p); err != nil {
		return nil, err
	}

	update := `
		UPDATE products
		SET name = :name, category = :category, price = :price, stock = :stock,
		    material = :material, weight = :weight, description = :description, image = :image
		WHERE id = :id
	`
	if _, err := tx.NamedExecContext(ctx, update, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.client.DB().ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedPostgres inserts products that are not stored yet.
func SeedPostgres(ctx context.Context, client *postgres.Client, products []models.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (:id, :name, :category, :price, :stock, :material, :weight, :description, :image, :created_at)
		ON CONFLICT (id) DO NOTHING
	`
	for _, p := range products {
		if _, err := sqlx.NamedExecContext(ctx, client.DB(), query, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
