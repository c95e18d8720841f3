// Package sales contiene los cálculos puros de totales de venta.
package sales

import "github.com/shopspring/decimal"

// TaxRate tasa de IVA aplicada al subtotal de cada venta (Colombia: 19%).
var TaxRate = decimal.New(19, -2)

// LineSubtotal subtotal de una línea: precio unitario por cantidad.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ComputeTax IVA sobre el subtotal, redondeado a 2 decimales.
func ComputeTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

// ComputeTotal total a pagar: subtotal más impuesto.
func ComputeTotal(subtotal, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax)
}
