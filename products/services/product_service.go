package services

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid"

	"github.com/lMelkorl/b2bminiui/internal/cache"
	"github.com/lMelkorl/b2bminiui/internal/metrics"
	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	"github.com/lMelkorl/b2bminiui/internal/query"
	productErrors "github.com/lMelkorl/b2bminiui/products/errors"
	"github.com/lMelkorl/b2bminiui/products/models"
	"github.com/lMelkorl/b2bminiui/products/repository"
	"github.com/lMelkorl/b2bminiui/products/validation"
)

const domain = "products"

// Engine sorts products by price, stock or createdAt.
var Engine = query.NewEngine(map[string]query.Comparator[models.Product]{
	"price":     query.ByFloat(func(p models.Product) float64 { return p.Price }),
	"stock":     query.ByFloat(func(p models.Product) float64 { return float64(p.Stock) }),
	"createdAt": query.ByTime(func(p models.Product) time.Time { return p.CreatedAt }),
})

type productService struct {
	repo  repository.Repository
	cache *cache.GenericCacheService
	now   func() time.Time
}

// NewProductService creates the service. cacheService may be nil.
func NewProductService(repo repository.Repository, cacheService *cache.GenericCacheService) ProductService {
	return &productService{repo: repo, cache: cacheService, now: time.Now}
}

func (s *productService) List(ctx context.Context, params models.ListQueryParams) ([]models.Product, error) {
	q, err := validation.ParseListQuery(params)
	if err == nil {
		err = Engine.ValidateSort(q.Sort)
	}
	if err != nil {
		metrics.Rejected(domain, rejectReason(err))
		return nil, productErrors.Validation(err)
	}
	log.DebugStruct("[products] normalized query", q)

	var key string
	var gen uint64
	if s.cache.IsEnabled() {
		gen = s.cache.Generation(domain)
		params := q.CacheParams()
		params["gen"] = gen
		key = s.cache.GenerateHashKey(domain, params)
		var cached []models.Product
		if err := s.cache.GetCached(ctx, key, &cached); err == nil {
			metrics.CacheHit(domain, true)
			return cached, nil
		}
		metrics.CacheHit(domain, false)
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, productErrors.Database("list products", err)
	}

	where, err := q.Predicate(validation.KnownCategories(products))
	if err != nil {
		return nil, productErrors.Validation(err)
	}

	result, err := Engine.Run(products, query.Request[models.Product]{Where: where, Sort: q.Sort, Limit: q.Limit})
	if err != nil {
		return nil, productErrors.Validation(err)
	}

	metrics.ObserveQuery(domain, len(result))
	log.Debug("[products] query matched %d of %d", len(result), len(products))

	// a write that committed after the load makes this result stale
	if key != "" && s.cache.Generation(domain) == gen {
		_ = s.cache.CacheData(ctx, key, result, 0)
	}
	return result, nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, productErrors.Database("list products", err)
	}

	out := []string{models.AllCategories}
	seen := map[string]bool{}
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (s *productService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError("get product", err)
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := validation.ValidateCreateProductRequest(req); err != nil {
		return nil, productErrors.Validation(err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	p := models.Product{
		ID:          id.String(),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Material:    req.Material,
		Weight:      req.Weight,
		Description: req.Description,
		Image:       req.Image,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, mapRepoError("create product", err)
	}

	s.invalidate(ctx)
	log.InfoWithContext(ctx, "[products] created %s (%s)", p.ID, p.Name)
	return &p, nil
}

func (s *productService) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := validation.ValidateUpdateProductRequest(req); err != nil {
		return nil, productErrors.Validation(err)
	}

	p, err := s.repo.Update(ctx, id, func(p *models.Product) error {
		req.Apply(p)
		return nil
	})
	if err != nil {
		return nil, mapRepoError("update product", err)
	}

	s.invalidate(ctx)
	log.InfoWithContext(ctx, "[products] updated %s", id)
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError("delete product", err)
	}

	s.invalidate(ctx)
	log.InfoWithContext(ctx, "[products] deleted %s", id)
	return nil
}

func (s *productService) invalidate(ctx context.Context) {
	if !s.cache.IsEnabled() {
		return
	}
	s.cache.Advance(domain)
	if err := s.cache.InvalidatePattern(ctx, domain+":*"); err != nil {
		log.WarnWithContext(ctx, "[products] cache invalidation failed: %v", err)
	}
}

func mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return productErrors.ErrProductNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return productErrors.ErrProductExists
	default:
		return productErrors.Database(op, err)
	}
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
