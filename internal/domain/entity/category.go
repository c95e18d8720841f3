package entity

import "time"

// Category agrupa productos del catálogo (Materiales, Herramientas, Acabados...).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
