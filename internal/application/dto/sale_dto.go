package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID   string            `json:"customer_id"`
	Details      []SaleItemRequest `json:"details"`
	Observations string            `json:"observations,omitempty"`
}

// SaleItemRequest línea del carrito (producto y cantidad).
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SaleResponse venta con detalle.
type SaleResponse struct {
	ID           string               `json:"id"`
	SaleNumber   string               `json:"sale_number"`
	SaleDate     string               `json:"sale_date"`
	CustomerID   string               `json:"customer_id"`
	CustomerName string               `json:"customer_name,omitempty"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	Tax          decimal.Decimal      `json:"tax"`
	Total        decimal.Decimal      `json:"total"`
	Status       string               `json:"status"`
	PDFPath      string               `json:"pdf_path,omitempty"`
	Observations string               `json:"observations,omitempty"`
	Details      []SaleDetailResponse `json:"details"`
}

// SaleDetailResponse línea de detalle en la respuesta.
type SaleDetailResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
