package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/admin/products.
type CreateProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Type        string          `json:"type,omitempty"` // Material | Tool
	ImageURL    string          `json:"image_url,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/admin/products/:id.
type UpdateProductRequest struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Type        string           `json:"type,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Type        string          `json:"type"`
	ImageURL    string          `json:"image_url,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	IsActive    bool            `json:"is_active"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
