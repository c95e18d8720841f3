package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/application/sales"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func seedCustomer(s *memStore, active bool) *entity.Customer {
	c := &entity.Customer{
		ID:             uuid.New().String(),
		FirstName:      "Laura",
		LastName:       "Gómez",
		DocumentType:   "CC",
		DocumentNumber: "1020304050",
		Email:          "laura@example.com",
		IsActive:       active,
	}
	s.customers[c.ID] = c
	return c
}

func seedProduct(s *memStore, name string, price int64, stock int) *entity.Product {
	p := &entity.Product{
		ID:       uuid.New().String(),
		Code:     uuid.New().String()[:8],
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		Type:     entity.ProductTypeMaterial,
		IsActive: true,
	}
	s.products[p.ID] = p
	return p
}

func newUseCase(s *memStore, store *fakeReceiptStore) *sales.CreateSaleUseCase {
	return sales.NewCreateSaleUseCase(
		&fakeTxRunner{s},
		&fakeCustomerRepo{s},
		&fakeSaleRepo{s},
		fakeReceiptGenerator{},
		store,
		nil,
		testLogger(),
	)
}

func TestCreateSale_DescuentaStockYCalculaTotales(t *testing.T) {
	s := newMemStore()
	customer := seedCustomer(s, true)
	cemento := seedProduct(s, "Cemento Portland Tipo 1", 28500, 500)

	receiptStore := newFakeReceiptStore()
	uc := newUseCase(s, receiptStore)

	resp, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Details:    []dto.SaleItemRequest{{ProductID: cemento.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(57000).Equal(resp.Subtotal), "subtotal: %s", resp.Subtotal)
	assert.True(t, decimal.NewFromInt(10830).Equal(resp.Tax), "IVA: %s", resp.Tax)
	assert.True(t, decimal.NewFromInt(67830).Equal(resp.Total), "total: %s", resp.Total)
	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)
	assert.Regexp(t, `^V-\d{8}-[0-9A-F]{4}$`, resp.SaleNumber)

	require.Len(t, resp.Details, 1)
	assert.Equal(t, "Cemento Portland Tipo 1", resp.Details[0].ProductName)
	assert.True(t, decimal.NewFromInt(28500).Equal(resp.Details[0].UnitPrice))

	got, err := (&fakeProductRepo{s}).GetByID(cemento.ID)
	require.NoError(t, err)
	assert.Equal(t, 498, got.Stock)

	// El recibo se genera en una goroutine después del commit.
	select {
	case fileName := <-receiptStore.saved:
		assert.Equal(t, "Recibo_"+resp.SaleNumber+".pdf", fileName)
	case <-time.After(2 * time.Second):
		t.Fatal("el recibo no se generó")
	}

	assert.Eventually(t, func() bool {
		sale, err := (&fakeSaleRepo{s}).GetByID(resp.ID)
		return err == nil && sale.PDFPath == "/recibos/Recibo_"+resp.SaleNumber+".pdf"
	}, 2*time.Second, 10*time.Millisecond, "la ruta del PDF no quedó registrada")
}

func TestCreateSale_StockInsuficienteRevierteTodo(t *testing.T) {
	s := newMemStore()
	customer := seedCustomer(s, true)
	cemento := seedProduct(s, "Cemento Portland Tipo 1", 28500, 500)
	taladro := seedProduct(s, "Taladro Percutor", 250000, 1)

	uc := newUseCase(s, newFakeReceiptStore())

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Details: []dto.SaleItemRequest{
			{ProductID: cemento.ID, Quantity: 10},
			{ProductID: taladro.ID, Quantity: 3},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La primera línea ya había descontado stock; el rollback lo restaura.
	got, _ := (&fakeProductRepo{s}).GetByID(cemento.ID)
	assert.Equal(t, 500, got.Stock)
	got, _ = (&fakeProductRepo{s}).GetByID(taladro.ID)
	assert.Equal(t, 1, got.Stock)

	lista, _ := (&fakeSaleRepo{s}).List(0, 0)
	assert.Empty(t, lista)
}

func TestCreateSale_ReintentaAnteNumeroDuplicado(t *testing.T) {
	s := newMemStore()
	customer := seedCustomer(s, true)
	ladrillo := seedProduct(s, "Ladrillo Tolete", 1200, 100)
	s.failSaleCreates = 2 // dos colisiones, el tercer intento debe pasar

	uc := newUseCase(s, newFakeReceiptStore())

	resp, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Details:    []dto.SaleItemRequest{{ProductID: ladrillo.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	lista, _ := (&fakeSaleRepo{s}).List(0, 0)
	require.Len(t, lista, 1)
	assert.Equal(t, resp.SaleNumber, lista[0].SaleNumber)

	got, _ := (&fakeProductRepo{s}).GetByID(ladrillo.ID)
	assert.Equal(t, 95, got.Stock)
}

func TestCreateSale_AgotaReintentos(t *testing.T) {
	s := newMemStore()
	customer := seedCustomer(s, true)
	ladrillo := seedProduct(s, "Ladrillo Tolete", 1200, 100)
	s.failSaleCreates = 3

	uc := newUseCase(s, newFakeReceiptStore())

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Details:    []dto.SaleItemRequest{{ProductID: ladrillo.ID, Quantity: 5}},
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	got, _ := (&fakeProductRepo{s}).GetByID(ladrillo.ID)
	assert.Equal(t, 100, got.Stock)
}

func TestCreateSale_ClienteInactivo(t *testing.T) {
	s := newMemStore()
	customer := seedCustomer(s, false)
	cemento := seedProduct(s, "Cemento", 28500, 10)

	uc := newUseCase(s, newFakeReceiptStore())

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Details:    []dto.SaleItemRequest{{ProductID: cemento.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestCreateSale_ProductoInactivoNoSeVende(t *testing.T) {
	s := newMemStore()
	customer := seedCustomer(s, true)
	descontinuado := seedProduct(s, "Pintura Descontinuada", 35000, 10)
	s.products[descontinuado.ID].IsActive = false

	uc := newUseCase(s, newFakeReceiptStore())

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Details:    []dto.SaleItemRequest{{ProductID: descontinuado.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_ValidaEntrada(t *testing.T) {
	s := newMemStore()
	customer := seedCustomer(s, true)
	cemento := seedProduct(s, "Cemento", 28500, 10)

	uc := newUseCase(s, newFakeReceiptStore())
	ctx := context.Background()

	casos := []dto.CreateSaleRequest{
		{CustomerID: customer.ID},
		{Details: []dto.SaleItemRequest{{ProductID: cemento.ID, Quantity: 1}}},
		{CustomerID: customer.ID, Details: []dto.SaleItemRequest{{ProductID: cemento.ID, Quantity: 0}}},
		{CustomerID: customer.ID, Details: []dto.SaleItemRequest{{ProductID: "", Quantity: 1}}},
	}
	for i, in := range casos {
		_, err := uc.CreateSale(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}
