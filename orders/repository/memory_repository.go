package repository

import (
	"context"
	"errors"

	"github.com/lMelkorl/b2bminiui/internal/database/memstore"
	"github.com/lMelkorl/b2bminiui/orders/models"
)

type memoryRepository struct {
	store *memstore.Store[models.Order]
}

// NewMemoryRepository creates a repository seeded with orders. Items are deep
// copied on every read and write.
func NewMemoryRepository(seed []models.Order) Repository {
	return &memoryRepository{
		store: memstore.New(seed, func(o models.Order) string { return o.ID }, models.Order.Clone),
	}
}

func (r *memoryRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.store.List(), nil
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	o, err := r.store.Get(id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &o, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, fn func(*models.Order) error) (*models.Order, error) {
	o, err := r.store.Update(id, fn)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &o, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, memstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
