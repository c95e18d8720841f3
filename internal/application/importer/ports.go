package importer

import (
	"context"

	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// ImportTxRunner ejecuta una función dentro de una transacción por fila.
// Cada fila del archivo se confirma de forma independiente: un error en una
// fila no revierte las anteriores.
type ImportTxRunner interface {
	RunImportRow(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
