package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)
var _ repository.RentalRepository = (*RentalRepo)(nil)

const vehicleColumns = `id, brand, model, plate_number, year, price_per_day, status, image_url, is_active, created_at, updated_at`

// VehicleRepo implementación del puerto VehicleRepository sobre PostgreSQL.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador de persistencia para vehículos.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un nuevo vehículo.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, brand, model, plate_number, year, price_per_day, status, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.Brand, vehicle.Model, vehicle.PlateNumber, vehicle.Year,
		vehicle.PricePerDay, vehicle.Status, vehicle.ImageURL, vehicle.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	return r.getOne(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
}

// GetByPlate obtiene un vehículo por placa.
func (r *VehicleRepo) GetByPlate(plateNumber string) (*entity.Vehicle, error) {
	return r.getOne(`SELECT `+vehicleColumns+` FROM vehicles WHERE plate_number = $1`, plateNumber)
}

// GetForUpdate obtiene el vehículo bloqueando su fila. Serializa alquileres y
// devoluciones concurrentes sobre el mismo vehículo.
func (r *VehicleRepo) GetForUpdate(id string) (*entity.Vehicle, error) {
	return r.getOne(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 FOR UPDATE`, id)
}

func (r *VehicleRepo) getOne(query string, arg any) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.Brand, &v.Model, &v.PlateNumber, &v.Year, &v.PricePerDay,
		&v.Status, &v.ImageURL, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// Update actualiza un vehículo existente.
func (r *VehicleRepo) Update(vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET brand = $2, model = $3, year = $4, price_per_day = $5, status = $6,
		    image_url = $7, is_active = $8, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.Brand, vehicle.Model, vehicle.Year, vehicle.PricePerDay,
		vehicle.Status, vehicle.ImageURL, vehicle.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado del vehículo (Available, Rented, Maintenance).
func (r *VehicleRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE vehicles SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update vehicle status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List vehículos paginados.
func (r *VehicleRepo) List(limit, offset int) ([]*entity.Vehicle, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY brand, model LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.Brand, &v.Model, &v.PlateNumber, &v.Year, &v.PricePerDay,
			&v.Status, &v.ImageURL, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Delete elimina un vehículo por ID. Falla con conflicto si tiene alquileres.
func (r *VehicleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}

const rentalColumns = `id, rental_number, vehicle_id, customer_id, start_date, end_date, days, total_amount, is_returned, return_date, created_at, updated_at`

// RentalRepo implementación del puerto RentalRepository sobre PostgreSQL.
type RentalRepo struct {
	q Querier
}

// NewRentalRepository construye el adaptador de persistencia para alquileres.
func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

// Create persiste un nuevo alquiler.
func (r *RentalRepo) Create(rental *entity.VehicleRental) error {
	query := `
		INSERT INTO vehicle_rentals (id, rental_number, vehicle_id, customer_id, start_date, end_date, days, total_amount, is_returned, return_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		rental.ID, rental.RentalNumber, rental.VehicleID, rental.CustomerID,
		rental.StartDate, rental.EndDate, rental.Days, rental.TotalAmount,
		rental.IsReturned, rental.ReturnDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

// GetByID obtiene un alquiler por ID.
func (r *RentalRepo) GetByID(id string) (*entity.VehicleRental, error) {
	var rental entity.VehicleRental
	err := r.q.QueryRow(context.Background(),
		`SELECT `+rentalColumns+` FROM vehicle_rentals WHERE id = $1`, id).Scan(
		&rental.ID, &rental.RentalNumber, &rental.VehicleID, &rental.CustomerID,
		&rental.StartDate, &rental.EndDate, &rental.Days, &rental.TotalAmount,
		&rental.IsReturned, &rental.ReturnDate, &rental.CreatedAt, &rental.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rental: %w", err)
	}
	return &rental, nil
}

// ListByVehicle alquileres de un vehículo, más recientes primero.
func (r *RentalRepo) ListByVehicle(vehicleID string, limit, offset int) ([]*entity.VehicleRental, error) {
	query := `
		SELECT ` + rentalColumns + `
		FROM vehicle_rentals WHERE vehicle_id = $1
		ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, vehicleID, limit, offset)
}

// ListByCustomer alquileres de un cliente, más recientes primero.
func (r *RentalRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.VehicleRental, error) {
	query := `
		SELECT ` + rentalColumns + `
		FROM vehicle_rentals WHERE customer_id = $1
		ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, customerID, limit, offset)
}

func (r *RentalRepo) list(query string, args ...any) ([]*entity.VehicleRental, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()
	var list []*entity.VehicleRental
	for rows.Next() {
		var rental entity.VehicleRental
		if err := rows.Scan(&rental.ID, &rental.RentalNumber, &rental.VehicleID, &rental.CustomerID,
			&rental.StartDate, &rental.EndDate, &rental.Days, &rental.TotalAmount,
			&rental.IsReturned, &rental.ReturnDate, &rental.CreatedAt, &rental.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		list = append(list, &rental)
	}
	return list, rows.Err()
}

// Update actualiza un alquiler (devolución).
func (r *RentalRepo) Update(rental *entity.VehicleRental) error {
	query := `
		UPDATE vehicle_rentals
		SET end_date = $2, days = $3, total_amount = $4, is_returned = $5, return_date = $6, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		rental.ID, rental.EndDate, rental.Days, rental.TotalAmount,
		rental.IsReturned, rental.ReturnDate,
	)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
