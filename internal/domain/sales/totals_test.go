package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/firmeza/firmeza-api/internal/domain/sales"
)

// Carrito de referencia: 2 unidades a $28.500 → 57.000 / 10.830 / 67.830.
func TestTotales_CarritoDeReferencia(t *testing.T) {
	unitPrice := decimal.NewFromInt(28500)

	subtotal := sales.LineSubtotal(unitPrice, 2)
	tax := sales.ComputeTax(subtotal)
	total := sales.ComputeTotal(subtotal, tax)

	assert.True(t, decimal.NewFromInt(57000).Equal(subtotal), "subtotal: %s", subtotal)
	assert.True(t, decimal.NewFromInt(10830).Equal(tax), "IVA: %s", tax)
	assert.True(t, decimal.NewFromInt(67830).Equal(total), "total: %s", total)
}

func TestComputeTax_RedondeaADosDecimales(t *testing.T) {
	// 333 * 0.19 = 63.27 exacto; 333.33 * 0.19 = 63.3327 → 63.33
	tax := sales.ComputeTax(decimal.NewFromFloat(333.33))
	assert.True(t, decimal.NewFromFloat(63.33).Equal(tax), "IVA: %s", tax)
}

func TestLineSubtotal_MultiplicaPrecioPorCantidad(t *testing.T) {
	subtotal := sales.LineSubtotal(decimal.NewFromFloat(1199.99), 3)
	assert.True(t, decimal.NewFromFloat(3599.97).Equal(subtotal), "subtotal: %s", subtotal)
}

func TestComputeTotal_SumaSubtotalEImpuesto(t *testing.T) {
	total := sales.ComputeTotal(decimal.NewFromInt(100), decimal.NewFromInt(19))
	assert.True(t, decimal.NewFromInt(119).Equal(total))
}
