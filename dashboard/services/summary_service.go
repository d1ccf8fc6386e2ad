package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	orderModels "github.com/lMelkorl/b2bminiui/orders/models"
	orderRepository "github.com/lMelkorl/b2bminiui/orders/repository"
	productRepository "github.com/lMelkorl/b2bminiui/products/repository"
)

// Summary is the dashboard headline figures.
type Summary struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalOrders      int     `json:"totalOrders"`
	TotalProducts    int     `json:"totalProducts"`
	LowStockProducts int     `json:"lowStockProducts"`
}

// SummaryService computes Summary from the live collections.
type SummaryService struct {
	products          productRepository.Repository
	orders            orderRepository.Repository
	lowStockThreshold int
}

// NewSummaryService creates the service. Products with stock below
// lowStockThreshold count as low stock.
func NewSummaryService(products productRepository.Repository, orders orderRepository.Repository, lowStockThreshold int) *SummaryService {
	return &SummaryService{products: products, orders: orders, lowStockThreshold: lowStockThreshold}
}

// Summary loads both collections concurrently. Revenue excludes cancelled orders.
func (s *SummaryService) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := s.products.List(gctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		out.TotalProducts = len(products)
		for _, p := range products {
			if p.Stock < s.lowStockThreshold {
				out.LowStockProducts++
			}
		}
		return nil
	})

	g.Go(func() error {
		orders, err := s.orders.List(gctx)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		out.TotalOrders = len(orders)
		for _, o := range orders {
			if o.Status != orderModels.StatusCancelled {
				out.TotalRevenue += o.TotalAmount
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
