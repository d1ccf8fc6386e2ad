// Package server assembles the catalog API from configuration: storage,
// cache, services, middleware and routes.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"golang.org/x/sync/errgroup"

	"github.com/lMelkorl/b2bminiui/auth"
	"github.com/lMelkorl/b2bminiui/auth/login"
	"github.com/lMelkorl/b2bminiui/dashboard"
	dashboardHandlers "github.com/lMelkorl/b2bminiui/dashboard/handlers"
	dashboardServices "github.com/lMelkorl/b2bminiui/dashboard/services"
	"github.com/lMelkorl/b2bminiui/internal/cache"
	"github.com/lMelkorl/b2bminiui/internal/database/postgres"
	"github.com/lMelkorl/b2bminiui/internal/fixtures"
	"github.com/lMelkorl/b2bminiui/internal/metrics"
	"github.com/lMelkorl/b2bminiui/internal/middleware/authjwt"
	metricsmw "github.com/lMelkorl/b2bminiui/internal/middleware/metrics"
	"github.com/lMelkorl/b2bminiui/internal/middleware/ratelimit"
	"github.com/lMelkorl/b2bminiui/internal/middleware/requestid"
	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	platformconfig "github.com/lMelkorl/b2bminiui/internal/platform/config"
	"github.com/lMelkorl/b2bminiui/internal/types"
	"github.com/lMelkorl/b2bminiui/internal/utils"
	"github.com/lMelkorl/b2bminiui/orders"
	orderHandlers "github.com/lMelkorl/b2bminiui/orders/handlers"
	orderRepository "github.com/lMelkorl/b2bminiui/orders/repository"
	orderServices "github.com/lMelkorl/b2bminiui/orders/services"
	"github.com/lMelkorl/b2bminiui/products"
	productHandlers "github.com/lMelkorl/b2bminiui/products/handlers"
	productRepository "github.com/lMelkorl/b2bminiui/products/repository"
	productServices "github.com/lMelkorl/b2bminiui/products/services"
)

// Server owns the fiber app and the resources it must release.
type Server struct {
	App *fiber.App

	cfg   *platformconfig.Config
	cache *cache.GenericCacheService
	pg    *postgres.Client
}

// Options tweaks construction; the zero value is production behavior.
type Options struct {
	// BcryptCost overrides the password hashing cost.
	BcryptCost int
}

// New builds a server. ds seeds the memory store, or an empty postgres schema.
func New(ctx context.Context, cfg *platformconfig.Config, ds *fixtures.Dataset, opts Options) (*Server, error) {
	log.SetLevel(log.ParseLevel(cfg.Server.LogLevel))

	s := &Server{cfg: cfg}
	s.cache = newCacheService(ctx, cfg.Cache)

	productRepo, orderRepo, err := s.repositories(ctx, ds)
	if err != nil {
		s.Close()
		return nil, err
	}

	privateKey := []byte(cfg.JWT.PrivateKey)
	publicKey := cfg.JWT.PublicKey
	if len(privateKey) == 0 {
		priv, pub, err := utils.GenerateKeyPairPEM()
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		log.Warn("JWT_PRIVATE_KEY is not set; using an ephemeral key, tokens will not survive a restart")
		privateKey, publicKey = priv, string(pub)
	}

	loginService, err := login.NewService(ds.Users, login.ServiceConfig{
		PrivateKey: privateKey,
		Issuer:     cfg.JWT.Issuer,
		TokenTTL:   cfg.JWT.TokenTTL,
		BcryptCost: opts.BcryptCost,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("create login service: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "b2bminiui",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Security.Origin,
		AllowCredentials: cfg.Security.Origin != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(metricsmw.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if s.pg != nil {
			if err := s.pg.HealthCheck(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(types.Fail("UNHEALTHY", "database unreachable", err.Error()))
			}
		}
		return c.JSON(types.OK(fiber.Map{"status": "ok", "cache": s.cache.GetStats()}))
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group(cfg.Server.BaseRoute)

	// login is registered before the guarded group so it stays public
	auth.RegisterRoutes(api, &auth.Handlers{LoginHandler: login.NewHandler(loginService)}, limiter(cfg.RateLimits.Login, ratelimit.EndpointLogin))

	guards := []fiber.Handler{authjwt.New(authjwt.Config{PublicKey: publicKey, Disabled: cfg.Auth.Disabled})}
	if l := limiter(cfg.RateLimits.API, ratelimit.EndpointAPI); l != nil {
		guards = append(guards, l)
	}
	protected := api.Group("", guards...)

	productService := productServices.NewProductService(productRepo, s.cache)
	orderService := orderServices.NewOrderService(orderRepo, s.cache)
	summaryService := dashboardServices.NewSummaryService(productRepo, orderRepo, cfg.Catalog.LowStockThreshold)

	dashboard.RegisterRoutes(protected, &dashboard.Handlers{SummaryHandler: dashboardHandlers.NewSummaryHandler(summaryService)})
	products.RegisterRoutes(protected, &products.Handlers{ProductHandler: productHandlers.NewProductHandler(productService)})
	orders.RegisterRoutes(protected, &orders.Handlers{OrderHandler: orderHandlers.NewOrderHandler(orderService)})

	s.App = app
	return s, nil
}

func (s *Server) repositories(ctx context.Context, ds *fixtures.Dataset) (productRepository.Repository, orderRepository.Repository, error) {
	switch s.cfg.Database.Type {
	case platformconfig.DBTypePostgres:
		client, err := postgres.NewClient(ctx, s.cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		s.pg = client
		if err := client.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		if err := productRepository.SeedPostgres(ctx, client, ds.Products); err != nil {
			return nil, nil, err
		}
		if err := orderRepository.SeedPostgres(ctx, client, ds.Orders); err != nil {
			return nil, nil, err
		}
		log.Info("Using PostgreSQL storage")
		return productRepository.NewPostgresRepository(client), orderRepository.NewPostgresRepository(client), nil
	default:
		log.Info("Using in-memory storage (%d products, %d orders)", len(ds.Products), len(ds.Orders))
		return productRepository.NewMemoryRepository(ds.Products), orderRepository.NewMemoryRepository(ds.Orders), nil
	}
}

// newCacheService returns nil when caching is off or the backend is
// unreachable; services treat a nil cache as disabled.
func newCacheService(ctx context.Context, c platformconfig.CacheConfig) *cache.GenericCacheService {
	if !c.Enabled {
		return nil
	}
	cacheConfig := &cache.CacheConfig{
		Enabled:         true,
		TTL:             c.TTL,
		Prefix:          c.Prefix,
		Backend:         cache.CacheType(c.Backend),
		MaxKeys:         c.MaxKeys,
		CleanupInterval: c.CleanupInterval,
		Redis: cache.RedisConfig{
			Address:      c.Redis.Address,
			Password:     c.Redis.Password,
			Database:     c.Redis.DB,
			PoolSize:     c.Redis.PoolSize,
			MinIdleConns: c.Redis.MinIdleConns,
			ClusterAddrs: c.Redis.ClusterAddrs,
		},
	}
	backend, err := cache.NewCache(ctx, cacheConfig)
	if err != nil {
		log.Warn("Query cache disabled: %v", err)
		return nil
	}
	log.Info("Query cache enabled (%s, ttl %s)", cacheConfig.Backend, cacheConfig.TTL)
	return cache.NewGenericCacheService(backend, cacheConfig)
}

func limiter(c platformconfig.RateLimitConfig, endpoint ratelimit.EndpointType) fiber.Handler {
	if !c.Enabled {
		return nil
	}
	return ratelimit.New(ratelimit.Config{
		EndpointType: endpoint,
		Max:          c.Max,
		Window:       c.Duration,
		OnLimit: func(name string) {
			metrics.RateLimited.WithLabelValues(name).Inc()
		},
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	log.ErrorWithContext(c.UserContext(), "[ErrorHandler] Path: %s, Error: %v, Code: %d", c.Path(), err, code)

	// keep a response a handler already wrote
	if len(c.Response().Body()) > 0 {
		return nil
	}
	return c.Status(code).JSON(types.Fail("HTTP_ERROR", err.Error(), nil))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Listening on %s", s.cfg.Server.Addr())
		return s.App.Listen(s.cfg.Server.Addr())
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		return s.App.ShutdownWithTimeout(s.cfg.Server.ShutdownTimeout)
	})

	err := g.Wait()
	s.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases the cache and database.
func (s *Server) Close() {
	if err := s.cache.Close(); err != nil {
		log.Warn("close cache: %v", err)
	}
	s.cache = nil
	if s.pg != nil {
		if err := s.pg.Close(); err != nil {
			log.Warn("close postgres: %v", err)
		}
		s.pg = nil
	}
}
