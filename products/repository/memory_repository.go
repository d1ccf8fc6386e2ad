package repository

import (
	"context"
	"errors"

	"github.com/lMelkorl/b2bminiui/internal/database/memstore"
	"github.com/lMelkorl/b2bminiui/products/models"
)

type memoryRepository struct {
	store *memstore.Store[models.Product]
}

// NewMemoryRepository creates a repository seeded with products.
func NewMemoryRepository(seed []models.Product) Repository {
	return &memoryRepository{
		store: memstore.New(seed, func(p models.Product) string { return p.ID }, nil),
	}
}

func (r *memoryRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.store.List(), nil
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := r.store.Get(id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &p, nil
}

func (r *memoryRepository) Create(ctx context.Context, product models.Product) error {
	return mapStoreError(r.store.Create(product))
}

func (r *memoryRepository) Update(ctx context.Context, id string, fn func(*models.Product) error) (*models.Product, error) {
	p, err := r.store.Update(id, fn)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &p, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	return mapStoreError(r.store.Delete(id))
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, memstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, memstore.ErrDuplicate):
		return ErrDuplicate
	default:
		return err
	}
}
