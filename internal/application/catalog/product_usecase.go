// Package catalog implementa la gestión del catálogo de productos y categorías.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// ProductUseCase operaciones de catálogo: vitrina pública y CRUD de back-office.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListPublic productos visibles en la tienda: activos y con stock disponible.
func (uc *ProductUseCase) ListPublic(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.ListActive(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListPublicByCategory productos visibles de una categoría.
func (uc *ProductUseCase) ListPublicByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*dto.ProductResponse, error) {
	if categoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.productRepo.ListActiveByCategory(categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// GetPublic detalle de un producto para la tienda. Los inactivos no se exponen.
func (uc *ProductUseCase) GetPublic(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListAll todos los productos, incluidos inactivos (back-office).
func (uc *ProductUseCase) ListAll(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Create da de alta un producto. El código debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	productType := in.Type
	if productType == "" {
		productType = entity.ProductTypeMaterial
	}
	if productType != entity.ProductTypeMaterial && productType != entity.ProductTypeTool {
		return nil, domain.ErrInvalidInput
	}
	var categoryID *string
	if in.CategoryID != "" {
		if _, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil {
			return nil, err
		}
		categoryID = &in.CategoryID
	}

	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Type:        productType,
		ImageURL:    in.ImageURL,
		CategoryID:  categoryID,
		IsActive:    true,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update modifica los campos presentes en la petición.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.Type != "" {
		if in.Type != entity.ProductTypeMaterial && in.Type != entity.ProductTypeTool {
			return nil, domain.ErrInvalidInput
		}
		product.Type = in.Type
	}
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}
	if in.CategoryID != "" {
		if _, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil {
			return nil, err
		}
		categoryID := in.CategoryID
		product.CategoryID = &categoryID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Si tiene ventas asociadas el borrado físico
// falla por integridad referencial y se reporta como conflicto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.productRepo.GetByID(id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	categoryID := ""
	if p.CategoryID != nil {
		categoryID = *p.CategoryID
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Type:        p.Type,
		ImageURL:    p.ImageURL,
		CategoryID:  categoryID,
		IsActive:    p.IsActive,
	}
}

func toProductResponses(products []*entity.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
