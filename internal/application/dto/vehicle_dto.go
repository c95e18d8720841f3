package dto

import "github.com/shopspring/decimal"

// CreateVehicleRequest body para POST /api/admin/vehicles.
type CreateVehicleRequest struct {
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	PlateNumber string          `json:"plate_number"`
	Year        int             `json:"year"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// UpdateVehicleRequest body para PUT /api/admin/vehicles/:id.
type UpdateVehicleRequest struct {
	Brand       string           `json:"brand,omitempty"`
	Model       string           `json:"model,omitempty"`
	Year        *int             `json:"year,omitempty"`
	PricePerDay *decimal.Decimal `json:"price_per_day,omitempty"`
	Status      string           `json:"status,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// VehicleResponse vehículo en respuestas.
type VehicleResponse struct {
	ID          string          `json:"id"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	PlateNumber string          `json:"plate_number"`
	Year        int             `json:"year"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Status      string          `json:"status"`
	ImageURL    string          `json:"image_url,omitempty"`
	IsActive    bool            `json:"is_active"`
}

// CreateRentalRequest body para POST /api/admin/rentals.
type CreateRentalRequest struct {
	VehicleID  string `json:"vehicle_id"`
	CustomerID string `json:"customer_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

// RentalResponse alquiler en respuestas.
type RentalResponse struct {
	ID           string          `json:"id"`
	RentalNumber string          `json:"rental_number"`
	VehicleID    string          `json:"vehicle_id"`
	CustomerID   string          `json:"customer_id"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Days         int             `json:"days"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	IsReturned   bool            `json:"is_returned"`
	ReturnDate   string          `json:"return_date,omitempty"`
}
