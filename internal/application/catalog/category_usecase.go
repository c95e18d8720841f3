package catalog

import (
	"context"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// CategoryUseCase listado de categorías del catálogo.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso de categorías.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// List todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]*dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
