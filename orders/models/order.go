package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Order statuses in fulfilment order.
const (
	StatusPending   = "Beklemede"
	StatusPreparing = "Hazırlanıyor"
	StatusShipped   = "Kargoda"
	StatusDelivered = "Teslim Edildi"
	StatusCancelled = "İptal Edildi"

	AllStatuses = "Tümü"
)

// Statuses is the status enumeration.
var Statuses = []string{StatusPending, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled}

// IsValidStatus reports whether s is one of Statuses.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID              string     `json:"id" yaml:"id" db:"id"`
	CustomerName    string     `json:"customerName" yaml:"customerName" db:"customer_name"`
	CustomerEmail   string     `json:"customerEmail" yaml:"customerEmail" db:"customer_email"`
	CustomerPhone   string     `json:"customerPhone" yaml:"customerPhone" db:"customer_phone"`
	OrderDate       time.Time  `json:"orderDate" yaml:"orderDate" db:"order_date"`
	Status          string     `json:"status" yaml:"status" db:"status"`
	TotalAmount     float64    `json:"totalAmount" yaml:"totalAmount" db:"total_amount"`
	Items           OrderItems `json:"items" yaml:"items" db:"items"`
	ShippingAddress string     `json:"shippingAddress" yaml:"shippingAddress" db:"shipping_address"`
	Notes           string     `json:"notes" yaml:"notes" db:"notes"`
}

type OrderItem struct {
	ProductID   string  `json:"productId" yaml:"productId"`
	ProductName string  `json:"productName" yaml:"productName"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Price       float64 `json:"price" yaml:"price"`
}

// OrderItems is stored as a JSONB column.
type OrderItems []OrderItem

// Value implements driver.Valuer interface
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner interface
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = OrderItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(data, items)
}

// Clone returns a deep copy so callers cannot alias stored items.
func (o Order) Clone() Order {
	if o.Items != nil {
		items := make(OrderItems, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}

// UpdateStatusRequest is the PUT /orders/:id/status body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListQueryParams is the raw GET /orders query string.
type ListQueryParams struct {
	Search    string `schema:"search"`
	Status    string `schema:"status"`
	DateStart string `schema:"dateStart"`
	DateEnd   string `schema:"dateEnd"`
	MinAmount string `schema:"minAmount"`
	MaxAmount string `schema:"maxAmount"`
	Sort      string `schema:"sort"`
	Order     string `schema:"order"`
	Limit     string `schema:"limit"`
}
