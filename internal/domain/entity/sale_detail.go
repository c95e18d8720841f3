package entity

import "github.com/shopspring/decimal"

// SaleDetail es una línea de venta. UnitPrice es una copia del precio del producto
// en el momento de la venta; Subtotal = Quantity * UnitPrice.
type SaleDetail struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
