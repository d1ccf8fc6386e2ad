package services

import (
	"context"

	"github.com/lMelkorl/b2bminiui/orders/models"
)

// OrderService defines the order operations exposed over HTTP.
type OrderService interface {
	// List filters, sorts (orderDate desc by default) and limits orders.
	List(ctx context.Context, params models.ListQueryParams) ([]models.Order, error)

	Get(ctx context.Context, id string) (*models.Order, error)

	// UpdateStatus moves an order to one of models.Statuses.
	UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.Order, error)
}
