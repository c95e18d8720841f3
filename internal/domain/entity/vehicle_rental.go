package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleRental representa un alquiler de vehículo.
// Days se calcula por días calendario (mínimo 1); TotalAmount = Days * PricePerDay.
type VehicleRental struct {
	ID           string
	RentalNumber string // único, ej. RV-20260901-B2C4
	VehicleID    string
	CustomerID   string
	StartDate    time.Time
	EndDate      time.Time
	Days         int
	TotalAmount  decimal.Decimal
	IsReturned   bool
	ReturnDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
