package repository

import "github.com/firmeza/firmeza-api/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	GetByPlate(plateNumber string) (*entity.Vehicle, error)
	// GetForUpdate bloquea la fila del vehículo dentro de la transacción en curso.
	GetForUpdate(id string) (*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Vehicle, error)
	Delete(id string) error
}

// RentalRepository define el puerto de persistencia para VehicleRental.
type RentalRepository interface {
	Create(rental *entity.VehicleRental) error
	GetByID(id string) (*entity.VehicleRental, error)
	ListByVehicle(vehicleID string, limit, offset int) ([]*entity.VehicleRental, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.VehicleRental, error)
	Update(rental *entity.VehicleRental) error
}
