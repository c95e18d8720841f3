package repository

import "github.com/firmeza/firmeza-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByDocument(documentNumber string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	// SetActive activa/desactiva la cuenta (borrado lógico).
	SetActive(id string, active bool) error
	List(limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
}
