package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto del catálogo.
const (
	ProductTypeMaterial = "Material" // cemento, ladrillo, arena...
	ProductTypeTool     = "Tool"     // herramientas manuales y eléctricas
)

// Product representa un producto de construcción disponible para la venta.
// Stock solo lo mutan la creación de ventas (descuento) y el importador (alta/ajuste).
type Product struct {
	ID          string
	Code        string // SKU único (ej. MAT-001)
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	Stock       int
	Type        string // Material | Tool
	ImageURL    string
	CategoryID  *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
