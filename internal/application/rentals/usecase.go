// Package rentals implementa la flota de vehículos industriales y sus alquileres.
package rentals

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase CRUD de vehículos y ciclo de vida de alquileres.
type UseCase struct {
	txRunner     RentalTxRunner
	vehicleRepo  repository.VehicleRepository
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
}

// NewUseCase construye el caso de uso de alquileres.
func NewUseCase(txRunner RentalTxRunner, vehicleRepo repository.VehicleRepository, rentalRepo repository.RentalRepository, customerRepo repository.CustomerRepository) *UseCase {
	return &UseCase{txRunner: txRunner, vehicleRepo: vehicleRepo, rentalRepo: rentalRepo, customerRepo: customerRepo}
}

// ListVehicles vehículos paginados.
func (uc *UseCase) ListVehicles(ctx context.Context, limit, offset int) ([]*dto.VehicleResponse, error) {
	vehicles, err := uc.vehicleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}

// GetVehicle vehículo por id.
func (uc *UseCase) GetVehicle(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	vehicle, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// CreateVehicle da de alta un vehículo. La placa debe ser única.
func (uc *UseCase) CreateVehicle(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if in.Brand == "" || in.Model == "" || in.PlateNumber == "" || !in.PricePerDay.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.vehicleRepo.GetByPlate(in.PlateNumber); err == nil {
		return nil, domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	vehicle := &entity.Vehicle{
		ID:          uuid.New().String(),
		Brand:       in.Brand,
		Model:       in.Model,
		PlateNumber: in.PlateNumber,
		Year:        in.Year,
		PricePerDay: in.PricePerDay,
		Status:      entity.VehicleStatusAvailable,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if err := uc.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// UpdateVehicle modifica los campos presentes en la petición.
func (uc *UseCase) UpdateVehicle(ctx context.Context, id string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Brand != "" {
		vehicle.Brand = in.Brand
	}
	if in.Model != "" {
		vehicle.Model = in.Model
	}
	if in.Year != nil {
		vehicle.Year = *in.Year
	}
	if in.PricePerDay != nil {
		if !in.PricePerDay.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		vehicle.PricePerDay = *in.PricePerDay
	}
	if in.Status != "" {
		switch in.Status {
		case entity.VehicleStatusAvailable, entity.VehicleStatusRented, entity.VehicleStatusMaintenance:
			vehicle.Status = in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.ImageURL != "" {
		vehicle.ImageURL = in.ImageURL
	}
	if in.IsActive != nil {
		vehicle.IsActive = *in.IsActive
	}

	if err := uc.vehicleRepo.Update(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// DeleteVehicle elimina un vehículo sin alquileres asociados.
func (uc *UseCase) DeleteVehicle(ctx context.Context, id string) error {
	if _, err := uc.vehicleRepo.GetByID(id); err != nil {
		return err
	}
	return uc.vehicleRepo.Delete(id)
}

// Rent alquila un vehículo disponible. Los días se cuentan por calendario con
// mínimo 1; el total es días por precio diario. El alta del alquiler y el paso
// del vehículo a Rented ocurren en una sola transacción con la fila del
// vehículo bloqueada, igual que el descuento de stock en el checkout.
func (uc *UseCase) Rent(ctx context.Context, in dto.CreateRentalRequest) (*dto.RentalResponse, error) {
	if in.VehicleID == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	startDate, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	endDate, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if endDate.Before(startDate) {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	days := int(endDate.Sub(startDate).Hours() / 24)
	if days < 1 {
		days = 1
	}

	var rental *entity.VehicleRental
	err = uc.txRunner.RunRental(ctx, func(
		vehicleRepo repository.VehicleRepository,
		rentalRepo repository.RentalRepository,
	) error {
		// Bloquea la fila del vehículo: dos alquileres concurrentes del mismo
		// vehículo se serializan y el segundo lo encuentra Rented.
		vehicle, err := vehicleRepo.GetForUpdate(in.VehicleID)
		if err != nil {
			return err
		}
		if !vehicle.IsActive || vehicle.Status != entity.VehicleStatusAvailable {
			return domain.ErrVehicleUnavailable
		}

		rental = &entity.VehicleRental{
			ID:           uuid.New().String(),
			RentalNumber: newRentalNumber(time.Now()),
			VehicleID:    vehicle.ID,
			CustomerID:   customer.ID,
			StartDate:    startDate,
			EndDate:      endDate,
			Days:         days,
			TotalAmount:  vehicle.PricePerDay.Mul(decimal.NewFromInt(int64(days))),
			IsReturned:   false,
		}
		if err := rentalRepo.Create(rental); err != nil {
			return err
		}
		return vehicleRepo.UpdateStatus(vehicle.ID, entity.VehicleStatusRented)
	})
	if err != nil {
		return nil, err
	}
	return toRentalResponse(rental), nil
}

// Return marca el alquiler como devuelto y libera el vehículo, en una sola
// transacción con la fila del vehículo bloqueada.
func (uc *UseCase) Return(ctx context.Context, rentalID string) (*dto.RentalResponse, error) {
	var rental *entity.VehicleRental
	err := uc.txRunner.RunRental(ctx, func(
		vehicleRepo repository.VehicleRepository,
		rentalRepo repository.RentalRepository,
	) error {
		var err error
		rental, err = rentalRepo.GetByID(rentalID)
		if err != nil {
			return err
		}
		if rental.IsReturned {
			return domain.ErrConflict
		}
		if _, err := vehicleRepo.GetForUpdate(rental.VehicleID); err != nil {
			return err
		}

		now := time.Now()
		rental.IsReturned = true
		rental.ReturnDate = &now
		if err := rentalRepo.Update(rental); err != nil {
			return err
		}
		return vehicleRepo.UpdateStatus(rental.VehicleID, entity.VehicleStatusAvailable)
	})
	if err != nil {
		return nil, err
	}
	return toRentalResponse(rental), nil
}

// ListRentalsByCustomer alquileres de un cliente.
func (uc *UseCase) ListRentalsByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*dto.RentalResponse, error) {
	rentalsList, err := uc.rentalRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RentalResponse, 0, len(rentalsList))
	for _, r := range rentalsList {
		out = append(out, toRentalResponse(r))
	}
	return out, nil
}

// newRentalNumber número de alquiler con formato RV-YYYYMMDD-XXXX.
func newRentalNumber(now time.Time) string {
	var b [2]byte
	suffix := ""
	if _, err := rand.Read(b[:]); err == nil {
		suffix = strings.ToUpper(hex.EncodeToString(b[:]))
	} else {
		suffix = fmt.Sprintf("%04X", now.UnixNano()&0xFFFF)
	}
	return fmt.Sprintf("RV-%s-%s", now.Format("20060102"), suffix)
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:          v.ID,
		Brand:       v.Brand,
		Model:       v.Model,
		PlateNumber: v.PlateNumber,
		Year:        v.Year,
		PricePerDay: v.PricePerDay,
		Status:      v.Status,
		ImageURL:    v.ImageURL,
		IsActive:    v.IsActive,
	}
}

func toRentalResponse(r *entity.VehicleRental) *dto.RentalResponse {
	resp := &dto.RentalResponse{
		ID:           r.ID,
		RentalNumber: r.RentalNumber,
		VehicleID:    r.VehicleID,
		CustomerID:   r.CustomerID,
		StartDate:    r.StartDate.Format(dateLayout),
		EndDate:      r.EndDate.Format(dateLayout),
		Days:         r.Days,
		TotalAmount:  r.TotalAmount,
		IsReturned:   r.IsReturned,
	}
	if r.ReturnDate != nil {
		resp.ReturnDate = r.ReturnDate.Format(dateLayout)
	}
	return resp
}
