package repository

import "github.com/firmeza/firmeza-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para el libro de ventas
// (Sale + SaleDetail). Las ventas son inmutables después de creadas salvo
// la ruta del recibo PDF, que se adjunta de forma diferida.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateDetail(detail *entity.SaleDetail) error
	GetByID(id string) (*entity.Sale, error)
	GetDetailsBySaleID(saleID string) ([]*entity.SaleDetail, error)
	// ListByCustomer ventas del cliente, más recientes primero.
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	CountByCustomer(customerID string) (int, error)
	UpdatePDFPath(saleID, pdfPath string) error
}
