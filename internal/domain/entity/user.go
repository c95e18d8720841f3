package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User representa una cuenta de acceso al sistema. Los clientes de la tienda tienen
// un Customer asociado vía CustomerID; los administradores no.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	FirstName    string
	LastName     string
	Role         string // admin | customer
	CustomerID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
