// Package sales implementa el flujo de checkout: creación atómica de ventas,
// numeración, consultas y generación diferida del recibo.
package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
	domsales "github.com/firmeza/firmeza-api/internal/domain/sales"
	"github.com/firmeza/firmeza-api/pkg/logger"
)

// maxNumberRetries reintentos ante colisión del número de venta.
const maxNumberRetries = 3

// CreateSaleUseCase crea una venta y descuenta el stock en una sola transacción.
// El recibo PDF y el correo de confirmación se generan después del commit y
// nunca afectan el resultado de la venta.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	receipts     ReceiptGenerator
	store        ReceiptStore
	mailer       Mailer
	log          *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso. mailer puede ser nil si no hay SMTP.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	receipts ReceiptGenerator,
	store ReceiptStore,
	mailer Mailer,
	log *logger.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		receipts:     receipts,
		store:        store,
		mailer:       mailer,
		log:          log,
	}
}

// CreateSale valida el carrito, bloquea cada producto, descuenta stock y
// persiste cabecera y detalles de forma atómica. Cualquier línea sin stock
// suficiente revierte la venta completa.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || len(in.Details) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Details {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	var (
		sale         *entity.Sale
		details      []*entity.SaleDetail
		productNames map[string]string
	)

	// El sufijo del número es aleatorio; ante el duplicado (único en BD) se
	// regenera el número y se reintenta la transacción completa.
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		now := time.Now()
		saleNumber := NewSaleNumber(now)

		sale, details, productNames, err = uc.createInTx(ctx, saleNumber, now, customer.ID, in)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	// Recibo y correo fuera de la transacción: la venta ya está confirmada.
	go uc.finalize(sale, details, customer, productNames)

	return toSaleResponse(sale, details, customer.FullName(), productNames), nil
}

// createInTx ejecuta una tentativa completa de venta dentro de una transacción.
func (uc *CreateSaleUseCase) createInTx(ctx context.Context, saleNumber string, now time.Time, customerID string, in dto.CreateSaleRequest) (*entity.Sale, []*entity.SaleDetail, map[string]string, error) {
	saleID := uuid.New().String()
	var (
		sale         *entity.Sale
		details      []*entity.SaleDetail
		productNames = make(map[string]string, len(in.Details))
	)

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.CustomerRepository,
	) error {
		details = details[:0]
		subtotal := decimal.Zero

		for _, item := range in.Details {
			// Bloquea la fila del producto para serializar descuentos concurrentes.
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive {
				return domain.ErrNotFound
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: %s (disponible %d, solicitado %d)",
					domain.ErrInsufficientStock, product.Name, product.Stock, item.Quantity)
			}
			if err := productRepo.UpdateStock(product.ID, product.Stock-item.Quantity); err != nil {
				return err
			}

			// El precio unitario se copia del producto en este instante.
			lineSubtotal := domsales.LineSubtotal(product.Price, item.Quantity)
			details = append(details, &entity.SaleDetail{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Subtotal:  lineSubtotal,
			})
			productNames[product.ID] = product.Name
			subtotal = subtotal.Add(lineSubtotal)
		}

		tax := domsales.ComputeTax(subtotal)
		sale = &entity.Sale{
			ID:           saleID,
			SaleNumber:   saleNumber,
			SaleDate:     now,
			CustomerID:   customerID,
			Subtotal:     subtotal,
			Tax:          tax,
			Total:        domsales.ComputeTotal(subtotal, tax),
			Status:       entity.SaleStatusCompleted,
			Observations: in.Observations,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, d := range details {
			if err := saleRepo.CreateDetail(d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return sale, details, productNames, nil
}

// finalize genera el PDF, lo guarda, registra la ruta y envía el correo de
// confirmación. Los fallos solo se registran en el log: la venta ya es firme.
func (uc *CreateSaleUseCase) finalize(sale *entity.Sale, details []*entity.SaleDetail, customer *entity.Customer, productNames map[string]string) {
	pdfBytes, err := uc.receipts.GenerateReceipt(sale, details, customer, productNames)
	if err != nil {
		uc.log.Error().Err(err).Str("sale_number", sale.SaleNumber).Msg("no se pudo generar el recibo PDF")
		return
	}

	fileName := fmt.Sprintf("Recibo_%s.pdf", sale.SaleNumber)
	publicPath, err := uc.store.Save(fileName, pdfBytes)
	if err != nil {
		uc.log.Error().Err(err).Str("sale_number", sale.SaleNumber).Msg("no se pudo guardar el recibo PDF")
		return
	}
	if err := uc.saleRepo.UpdatePDFPath(sale.ID, publicPath); err != nil {
		uc.log.Error().Err(err).Str("sale_number", sale.SaleNumber).Msg("no se pudo registrar la ruta del recibo")
	}

	if uc.mailer == nil {
		return
	}
	if err := uc.mailer.SendPurchaseConfirmation(customer.Email, customer.FullName(), sale, pdfBytes, fileName); err != nil {
		uc.log.Warn().Err(err).Str("sale_number", sale.SaleNumber).Msg("no se pudo enviar la confirmación de compra")
	}
}

// toSaleResponse arma la respuesta a partir del agregado persistido.
func toSaleResponse(sale *entity.Sale, details []*entity.SaleDetail, customerName string, productNames map[string]string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:           sale.ID,
		SaleNumber:   sale.SaleNumber,
		SaleDate:     sale.SaleDate.Format(time.RFC3339),
		CustomerID:   sale.CustomerID,
		CustomerName: customerName,
		Subtotal:     sale.Subtotal,
		Tax:          sale.Tax,
		Total:        sale.Total,
		Status:       sale.Status,
		PDFPath:      sale.PDFPath,
		Observations: sale.Observations,
		Details:      make([]dto.SaleDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.SaleDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: productNames[d.ProductID],
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
		})
	}
	return resp
}
