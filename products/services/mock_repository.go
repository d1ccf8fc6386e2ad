package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lMelkorl/b2bminiui/products/models"
	"github.com/lMelkorl/b2bminiui/products/repository"
)

// MockRepository is a test double for the product repository.
type MockRepository struct {
	mock.Mock
}

var _ repository.Repository = (*MockRepository)(nil)

func (m *MockRepository) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, product models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, id string, fn func(*models.Product) error) (*models.Product, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
