package repository

import (
	"context"
	"errors"

	"github.com/lMelkorl/b2bminiui/products/models"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrDuplicate = errors.New("product already exists")
)

// Repository defines data access for products. Filtering is not pushed down:
// List returns the whole collection and the query engine narrows it.
type Repository interface {
	// List returns every product in insertion order.
	List(ctx context.Context) ([]models.Product, error)

	Get(ctx context.Context, id string) (*models.Product, error)

	Create(ctx context.Context, product models.Product) error

	// Update applies fn to the stored product atomically and returns the result.
	Update(ctx context.Context, id string, fn func(*models.Product) error) (*models.Product, error)

	Delete(ctx context.Context, id string) error
}
