package models

import "time"

// Product is a catalog item. Weight is free text such as "5.2g".
type Product struct {
	ID          string    `json:"id" yaml:"id" db:"id"`
	Name        string    `json:"name" yaml:"name" db:"name"`
	Category    string    `json:"category" yaml:"category" db:"category"`
	Price       float64   `json:"price" yaml:"price" db:"price"`
	Stock       int       `json:"stock" yaml:"stock" db:"stock"`
	Material    string    `json:"material" yaml:"material" db:"material"`
	Weight      string    `json:"weight" yaml:"weight" db:"weight"`
	Description string    `json:"description" yaml:"description" db:"description"`
	Image       string    `json:"image" yaml:"image" db:"image"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt" db:"created_at"`
}

// Canonical categories shown in the console. "Tümü" is the no-filter choice.
var Categories = []string{"Kolye", "Yüzük", "Küpe", "Bileklik", "Set"}

const AllCategories = "Tümü"

// CreateProductRequest is the POST /products body.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Material    string  `json:"material"`
	Weight      string  `json:"weight"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// UpdateProductRequest is the PUT /products/:id body. Nil fields keep their value.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Material    *string  `json:"material,omitempty"`
	Weight      *string  `json:"weight,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// Apply merges the set fields into p.
func (r UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.Material != nil {
		p.Material = *r.Material
	}
	if r.Weight != nil {
		p.Weight = *r.Weight
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
}

// ListQueryParams is the raw GET /products query string. Every field stays a
// string so blank, sentinel and malformed values reach validation untouched.
type ListQueryParams struct {
	Search    string `schema:"search"`
	Category  string `schema:"category"`
	MinPrice  string `schema:"minPrice"`
	MaxPrice  string `schema:"maxPrice"`
	MinWeight string `schema:"minWeight"`
	MaxWeight string `schema:"maxWeight"`
	Sort      string `schema:"sort"`
	Order     string `schema:"order"`
	Limit     string `schema:"limit"`
}
