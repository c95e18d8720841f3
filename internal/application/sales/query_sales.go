package sales

import (
	"context"
	"fmt"
	"path"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// SaleQueryUseCase consultas del libro de ventas y descarga de recibos.
type SaleQueryUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	store        ReceiptStore
}

// NewSaleQueryUseCase construye el caso de uso de consultas.
func NewSaleQueryUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	store ReceiptStore,
) *SaleQueryUseCase {
	return &SaleQueryUseCase{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		store:        store,
	}
}

// GetSale devuelve una venta con su detalle. Un cliente solo puede ver sus
// propias ventas; un admin puede ver cualquiera.
func (uc *SaleQueryUseCase) GetSale(ctx context.Context, saleID, requesterCustomerID string, isAdmin bool) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && sale.CustomerID != requesterCustomerID {
		return nil, domain.ErrForbidden
	}

	details, err := uc.saleRepo.GetDetailsBySaleID(sale.ID)
	if err != nil {
		return nil, err
	}

	customerName := ""
	if customer, err := uc.customerRepo.GetByID(sale.CustomerID); err == nil {
		customerName = customer.FullName()
	}

	productNames := make(map[string]string, len(details))
	for _, d := range details {
		if product, err := uc.productRepo.GetByID(d.ProductID); err == nil {
			productNames[d.ProductID] = product.Name
		}
	}

	return toSaleResponse(sale, details, customerName, productNames), nil
}

// ListMySales historial de compras del cliente autenticado, más recientes primero.
func (uc *SaleQueryUseCase) ListMySales(ctx context.Context, customerID string, limit, offset int) ([]*dto.SaleResponse, error) {
	if customerID == "" {
		return nil, domain.ErrForbidden
	}
	salesList, err := uc.saleRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toHeaders(salesList), nil
}

// ListAll todas las ventas (solo back-office).
func (uc *SaleQueryUseCase) ListAll(ctx context.Context, limit, offset int) ([]*dto.SaleResponse, error) {
	salesList, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toHeaders(salesList), nil
}

// ReceiptFile devuelve el nombre y el contenido del recibo PDF de una venta,
// con el mismo control de acceso que GetSale.
func (uc *SaleQueryUseCase) ReceiptFile(ctx context.Context, saleID, requesterCustomerID string, isAdmin bool) (string, []byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return "", nil, err
	}
	if !isAdmin && sale.CustomerID != requesterCustomerID {
		return "", nil, domain.ErrForbidden
	}
	if sale.PDFPath == "" {
		// El PDF se genera de forma diferida; puede no existir todavía.
		return "", nil, domain.ErrNotFound
	}

	fileName := path.Base(sale.PDFPath)
	data, err := uc.store.Open(fileName)
	if err != nil {
		return "", nil, fmt.Errorf("recibo %s: %w", fileName, domain.ErrNotFound)
	}
	return fileName, data, nil
}

// toHeaders mapea cabeceras de venta sin detalle (los listados no lo incluyen).
func (uc *SaleQueryUseCase) toHeaders(salesList []*entity.Sale) []*dto.SaleResponse {
	out := make([]*dto.SaleResponse, 0, len(salesList))
	names := make(map[string]string)
	for _, s := range salesList {
		name, ok := names[s.CustomerID]
		if !ok {
			if customer, err := uc.customerRepo.GetByID(s.CustomerID); err == nil {
				name = customer.FullName()
			}
			names[s.CustomerID] = name
		}
		resp := toSaleResponse(s, nil, name, nil)
		out = append(out, resp)
	}
	return out
}
