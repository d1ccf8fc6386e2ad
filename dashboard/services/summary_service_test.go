package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lMelkorl/b2bminiui/internal/fixtures"
	orderRepository "github.com/lMelkorl/b2bminiui/orders/repository"
	orderServices "github.com/lMelkorl/b2bminiui/orders/services"
	productRepository "github.com/lMelkorl/b2bminiui/products/repository"
)

func TestSummaryFromFixture(t *testing.T) {
	ds, err := fixtures.Default()
	require.NoError(t, err)

	svc := NewSummaryService(
		productRepository.NewMemoryRepository(ds.Products),
		orderRepository.NewMemoryRepository(ds.Orders),
		10,
	)

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Summary{
		TotalRevenue:     243250,
		TotalOrders:      8,
		TotalProducts:    10,
		LowStockProducts: 6,
	}, got)
}

func TestSummaryThreshold(t *testing.T) {
	ds, err := fixtures.Default()
	require.NoError(t, err)

	svc := NewSummaryService(
		productRepository.NewMemoryRepository(ds.Products),
		orderRepository.NewMemoryRepository(nil),
		0,
	)
	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.LowStockProducts)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.TotalRevenue)
}

func TestSummaryPropagatesErrors(t *testing.T) {
	orders := new(orderServices.MockRepository)
	orders.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewSummaryService(productRepository.NewMemoryRepository(nil), orders, 10)
	_, err := svc.Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list orders")
}
