package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un vehículo industrial.
const (
	VehicleStatusAvailable   = "Available"
	VehicleStatusRented      = "Rented"
	VehicleStatusMaintenance = "Maintenance"
)

// Vehicle representa un vehículo industrial disponible para alquiler.
type Vehicle struct {
	ID          string
	Brand       string
	Model       string
	PlateNumber string // placa única
	Year        int
	PricePerDay decimal.Decimal
	Status      string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
