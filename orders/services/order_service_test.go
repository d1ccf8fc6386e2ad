package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lMelkorl/b2bminiui/internal/cache"
	"github.com/lMelkorl/b2bminiui/internal/query"
	orderErrors "github.com/lMelkorl/b2bminiui/orders/errors"
	"github.com/lMelkorl/b2bminiui/orders/models"
	"github.com/lMelkorl/b2bminiui/orders/repository"
)

func book() []models.Order {
	ist := time.FixedZone("TRT", 3*60*60)
	return []models.Order{
		{ID: "O1", CustomerName: "Zeynep", Status: models.StatusPending, TotalAmount: 500, OrderDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "O2", CustomerName: "Ahmet", Status: models.StatusShipped, TotalAmount: 1500, OrderDate: time.Date(2024, 3, 4, 9, 0, 0, 0, ist)},
		{ID: "O3", CustomerName: "Elif", Status: models.StatusDelivered, TotalAmount: 1500, OrderDate: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "O4", CustomerName: "Murat", Status: models.StatusPending, TotalAmount: 250, OrderDate: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)},
		{ID: "O5", CustomerName: "Selin", Status: models.StatusCancelled, TotalAmount: 800, OrderDate: time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)},
	}
}

func orderIDs(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestListByStatus(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryRepository(book()[:3]), nil)

	got, err := svc.List(context.Background(), models.ListQueryParams{Status: "Kargoda"})
	require.NoError(t, err)
	assert.Equal(t, []string{"O2"}, orderIDs(got))
}

func TestListDefaultsToNewestFirst(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryRepository(book()), nil)

	got, err := svc.List(context.Background(), models.ListQueryParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"O4", "O2", "O5", "O3", "O1"}, orderIDs(got))
}

func TestListNewestThree(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryRepository(book()), nil)

	got, err := svc.List(context.Background(), models.ListQueryParams{Sort: "orderDate", Order: "desc", Limit: "3"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"O4", "O2", "O5"}, orderIDs(got))
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].OrderDate.After(got[i].OrderDate))
	}
}

func TestListByAmountIsStable(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryRepository(book()), nil)

	got, err := svc.List(context.Background(), models.ListQueryParams{Sort: "totalAmount", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"O2", "O3", "O5", "O1", "O4"}, orderIDs(got))

	got, err = svc.List(context.Background(), models.ListQueryParams{MinAmount: "600", MaxAmount: "x", Sort: "totalAmount", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"O5", "O2", "O3"}, orderIDs(got))
}

func TestListDateRange(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryRepository(book()), nil)

	got, err := svc.List(context.Background(), models.ListQueryParams{DateStart: "2024-03-02", DateEnd: "2024-03-04", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"O3", "O5", "O2"}, orderIDs(got))
}

func TestListRejectsBeforeLoading(t *testing.T) {
	repo := new(MockRepository)
	svc := NewOrderService(repo, nil)

	_, err := svc.List(context.Background(), models.ListQueryParams{Sort: "customerName"})
	require.ErrorIs(t, err, orderErrors.ErrValidationFailed)
	require.ErrorIs(t, err, query.ErrUnsupportedSortField)

	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestListRepositoryFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("timeout"))

	_, err := NewOrderService(repo, nil).List(context.Background(), models.ListQueryParams{})
	require.ErrorIs(t, err, orderErrors.ErrDatabaseOperation)
}

func TestUpdateStatusInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	cfg := cache.DefaultCacheConfig()
	cfg.CleanupInterval = time.Hour
	cacheService := cache.NewGenericCacheService(cache.NewMemoryCache(cfg), cfg)
	t.Cleanup(func() { _ = cacheService.Close() })

	svc := NewOrderService(repository.NewMemoryRepository(book()), cacheService)

	shipped, err := svc.List(ctx, models.ListQueryParams{Status: models.StatusShipped})
	require.NoError(t, err)
	require.Equal(t, []string{"O2"}, orderIDs(shipped))

	updated, err := svc.UpdateStatus(ctx, "O1", &models.UpdateStatusRequest{Status: models.StatusShipped})
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)

	shipped, err = svc.List(ctx, models.ListQueryParams{Status: models.StatusShipped})
	require.NoError(t, err)
	assert.Equal(t, []string{"O2", "O1"}, orderIDs(shipped))
}

func TestUpdateStatusErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(repository.NewMemoryRepository(book()), nil)

	_, err := svc.UpdateStatus(ctx, "O1", &models.UpdateStatusRequest{Status: "Kayıp"})
	assert.ErrorIs(t, err, orderErrors.ErrValidationFailed)

	_, err = svc.UpdateStatus(ctx, "missing", &models.UpdateStatusRequest{Status: models.StatusShipped})
	assert.ErrorIs(t, err, orderErrors.ErrOrderNotFound)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, orderErrors.ErrOrderNotFound)

	o, err := svc.Get(ctx, "O3")
	require.NoError(t, err)
	assert.Equal(t, "Elif", o.CustomerName)
}

type racingRepository struct {
	repository.Repository
	during func()
}

func (r *racingRepository) List(ctx context.Context) ([]models.Order, error) {
	orders, err := r.Repository.List(ctx)
	if r.during != nil {
		during := r.during
		r.during = nil
		during()
	}
	return orders, err
}

func TestListDoesNotCacheResultOverlappingStatusUpdate(t *testing.T) {
	ctx := context.Background()
	cfg := cache.DefaultCacheConfig()
	cfg.CleanupInterval = time.Hour
	cacheService := cache.NewGenericCacheService(cache.NewMemoryCache(cfg), cfg)
	t.Cleanup(func() { _ = cacheService.Close() })

	repo := &racingRepository{Repository: repository.NewMemoryRepository(book())}
	svc := NewOrderService(repo, cacheService)
	repo.during = func() {
		_, err := svc.UpdateStatus(ctx, "O1", &models.UpdateStatusRequest{Status: models.StatusShipped})
		require.NoError(t, err)
	}

	shipped, err := svc.List(ctx, models.ListQueryParams{Status: models.StatusShipped})
	require.NoError(t, err)
	assert.Equal(t, []string{"O2"}, orderIDs(shipped))

	shipped, err = svc.List(ctx, models.ListQueryParams{Status: models.StatusShipped})
	require.NoError(t, err)
	assert.Equal(t, []string{"O2", "O1"}, orderIDs(shipped))
}
