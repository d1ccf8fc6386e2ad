package services

import (
	"context"

	"github.com/lMelkorl/b2bminiui/products/models"
)

// ProductService defines the catalog operations exposed over HTTP.
type ProductService interface {
	// List filters, sorts and limits the catalog.
	List(ctx context.Context, params models.ListQueryParams) ([]models.Product, error)

	// Categories returns "Tümü" followed by the distinct categories in catalog order.
	Categories(ctx context.Context) ([]string, error)

	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
