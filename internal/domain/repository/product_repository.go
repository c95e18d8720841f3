package repository

import "github.com/firmeza/firmeza-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate debe usarse dentro de una transacción: bloquea la fila
// (SELECT FOR UPDATE) para serializar descuentos de stock concurrentes.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int) error
	ListActive(limit, offset int) ([]*entity.Product, error)
	ListActiveByCategory(categoryID string, limit, offset int) ([]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
