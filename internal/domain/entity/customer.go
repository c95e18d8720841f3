package entity

import (
	"strings"
	"time"
)

// Customer representa un cliente de la ferretería.
// DocumentNumber y Email son únicos; IsActive en false equivale a borrado lógico.
type Customer struct {
	ID             string
	FirstName      string
	LastName       string
	DocumentType   string // CC, NIT, CE...
	DocumentNumber string
	Email          string
	Phone          string
	Address        string
	City           string
	UserID         *string // usuario de login asociado, si existe
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName nombre completo para recibos y correos.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
