package repository

import (
	"context"
	"errors"

	"github.com/lMelkorl/b2bminiui/orders/models"
)

var ErrNotFound = errors.New("order not found")

// Repository defines data access for orders.
type Repository interface {
	// List returns every order in insertion order.
	List(ctx context.Context) ([]models.Order, error)

	Get(ctx context.Context, id string) (*models.Order, error)

	// Update applies fn to the stored order atomically and returns the result.
	Update(ctx context.Context, id string, fn func(*models.Order) error) (*models.Order, error)
}
