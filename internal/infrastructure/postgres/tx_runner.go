package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firmeza/firmeza-api/internal/application/auth"
	"github.com/firmeza/firmeza-api/internal/application/importer"
	"github.com/firmeza/firmeza-api/internal/application/rentals"
	"github.com/firmeza/firmeza-api/internal/application/sales"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

var _ sales.SaleTxRunner = (*TxRunner)(nil)
var _ importer.ImportTxRunner = (*TxRunner)(nil)
var _ auth.RegistrationTxRunner = (*TxRunner)(nil)
var _ rentals.RentalTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los repos
// que recibe el callback están atados a la transacción: o todo o nada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale transacción de checkout: bloqueo de productos, descuento de stock y
// alta de venta con detalle.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewSaleRepository(tx), NewCustomerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunImportRow transacción de una fila de importación: producto, cliente y
// venta histórica de esa fila se confirman juntos.
func (r *TxRunner) RunImportRow(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewCustomerRepository(tx), NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRental transacción de flota: bloqueo del vehículo, alta o devolución del
// alquiler y cambio de estado del vehículo en un solo commit.
func (r *TxRunner) RunRental(ctx context.Context, fn func(
	vehicleRepo repository.VehicleRepository,
	rentalRepo repository.RentalRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewVehicleRepository(tx), NewRentalRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegistration transacción de registro: usuario y cliente nacen juntos.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewCustomerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
