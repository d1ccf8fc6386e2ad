package services

import (
	"context"
	"errors"
	"time"

	"github.com/lMelkorl/b2bminiui/internal/cache"
	"github.com/lMelkorl/b2bminiui/internal/metrics"
	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	"github.com/lMelkorl/b2bminiui/internal/query"
	orderErrors "github.com/lMelkorl/b2bminiui/orders/errors"
	"github.com/lMelkorl/b2bminiui/orders/models"
	"github.com/lMelkorl/b2bminiui/orders/repository"
	"github.com/lMelkorl/b2bminiui/orders/validation"
)

const domain = "orders"

// Engine sorts orders by orderDate or totalAmount.
var Engine = query.NewEngine(map[string]query.Comparator[models.Order]{
	"orderDate":   query.ByTime(func(o models.Order) time.Time { return o.OrderDate }),
	"totalAmount": query.ByFloat(func(o models.Order) float64 { return o.TotalAmount }),
})

type orderService struct {
	repo  repository.Repository
	cache *cache.GenericCacheService
}

// NewOrderService creates the service. cacheService may be nil.
func NewOrderService(repo repository.Repository, cacheService *cache.GenericCacheService) OrderService {
	return &orderService{repo: repo, cache: cacheService}
}

func (s *orderService) List(ctx context.Context, params models.ListQueryParams) ([]models.Order, error) {
	q, err := validation.ParseListQuery(params)
	if err == nil {
		err = Engine.ValidateSort(&q.Sort)
	}
	if err != nil {
		metrics.Rejected(domain, rejectReason(err))
		return nil, orderErrors.Validation(err)
	}
	log.DebugStruct("[orders] normalized query", q)

	where, err := q.Predicate()
	if err != nil {
		return nil, orderErrors.Validation(err)
	}

	var key string
	var gen uint64
	if s.cache.IsEnabled() {
		gen = s.cache.Generation(domain)
		params := q.CacheParams()
		params["gen"] = gen
		key = s.cache.GenerateHashKey(domain, params)
		var cached []models.Order
		if err := s.cache.GetCached(ctx, key, &cached); err == nil {
			metrics.CacheHit(domain, true)
			return cached, nil
		}
		metrics.CacheHit(domain, false)
	}

	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, orderErrors.Database("list orders", err)
	}

	result, err := Engine.Run(orders, query.Request[models.Order]{Where: where, Sort: &q.Sort, Limit: q.Limit})
	if err != nil {
		return nil, orderErrors.Validation(err)
	}

	metrics.ObserveQuery(domain, len(result))
	log.Debug("[orders] query matched %d of %d", len(result), len(orders))

	// a write that committed after the load makes this result stale
	if key != "" && s.cache.Generation(domain) == gen {
		_ = s.cache.CacheData(ctx, key, result, 0)
	}
	return result, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError("get order", err)
	}
	return o, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.Order, error) {
	if err := validation.ValidateUpdateStatusRequest(req); err != nil {
		return nil, orderErrors.Validation(err)
	}

	var previous string
	o, err := s.repo.Update(ctx, id, func(o *models.Order) error {
		previous = o.Status
		o.Status = req.Status
		return nil
	})
	if err != nil {
		return nil, mapRepoError("update order", err)
	}

	if s.cache.IsEnabled() {
		s.cache.Advance(domain)
		if err := s.cache.InvalidatePattern(ctx, domain+":*"); err != nil {
			log.WarnWithContext(ctx, "[orders] cache invalidation failed: %v", err)
		}
	}
	log.InfoWithContext(ctx, "[orders] %s status %s -> %s", id, previous, o.Status)
	return o, nil
}

func mapRepoError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return orderErrors.ErrOrderNotFound
	}
	return orderErrors.Database(op, err)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, query.ErrUnsupportedSortField):
		return "sort_field"
	case errors.Is(err, query.ErrUnsupportedDirection):
		return "sort_direction"
	case errors.Is(err, query.ErrInvalidLimit):
		return "limit"
	default:
		return "other"
	}
}
