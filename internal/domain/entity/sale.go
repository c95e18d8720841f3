package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending   = "Pending"
	SaleStatusCompleted = "Completed"
	SaleStatusCancelled = "Cancelled"
)

// Sale es la cabecera de una venta. El agregado Sale + SaleDetail se crea de forma
// atómica y es inmutable después de persistido, salvo PDFPath (recibo diferido).
type Sale struct {
	ID           string
	SaleNumber   string // único, ej. V-20260901-A3F1 (checkout) o IMP-...-n (importación)
	SaleDate     time.Time
	CustomerID   string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal // IVA sobre el subtotal
	Total        decimal.Decimal // Subtotal + Tax
	Status       string
	PDFPath      string // ruta pública del recibo, se actualiza tras generar el PDF
	Observations string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
