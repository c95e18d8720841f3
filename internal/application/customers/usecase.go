// Package customers implementa la gestión de clientes del back-office.
package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/firmeza/firmeza-api/internal/application/dto"
	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/domain/repository"
)

// Resultados del borrado protegido.
const (
	DeleteResultDeleted     = "deleted"
	DeleteResultDeactivated = "deactivated"
)

// UseCase CRUD de clientes con borrado protegido: un cliente con ventas nunca
// se elimina físicamente, solo se desactiva.
type UseCase struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewUseCase construye el caso de uso de clientes.
func NewUseCase(customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{customerRepo: customerRepo, saleRepo: saleRepo}
}

// List clientes paginados.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.CustomerResponse, error) {
	customers, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Get cliente por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Create da de alta un cliente. Documento y email deben ser únicos.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.FirstName == "" || in.DocumentNumber == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	documentType := in.DocumentType
	if documentType == "" {
		documentType = "CC"
	}

	if _, err := uc.customerRepo.GetByDocument(in.DocumentNumber); err == nil {
		return nil, domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := uc.customerRepo.GetByEmail(in.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	customer := &entity.Customer{
		ID:             uuid.New().String(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DocumentType:   documentType,
		DocumentNumber: in.DocumentNumber,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		City:           in.City,
		IsActive:       true,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update modifica los campos presentes en la petición. El documento y el email
// no se cambian por esta vía.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		customer.FirstName = in.FirstName
	}
	if in.LastName != "" {
		customer.LastName = in.LastName
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	if in.Address != "" {
		customer.Address = in.Address
	}
	if in.City != "" {
		customer.City = in.City
	}
	if in.IsActive != nil {
		customer.IsActive = *in.IsActive
	}

	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete borrado protegido: si el cliente tiene ventas se desactiva (el
// historial de ventas referencia al cliente); si no tiene, se elimina.
func (uc *UseCase) Delete(ctx context.Context, id string) (*dto.DeleteCustomerResponse, error) {
	if _, err := uc.customerRepo.GetByID(id); err != nil {
		return nil, err
	}

	count, err := uc.saleRepo.CountByCustomer(id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if err := uc.customerRepo.SetActive(id, false); err != nil {
			return nil, err
		}
		return &dto.DeleteCustomerResponse{ID: id, Result: DeleteResultDeactivated}, nil
	}

	if err := uc.customerRepo.Delete(id); err != nil {
		return nil, err
	}
	return &dto.DeleteCustomerResponse{ID: id, Result: DeleteResultDeleted}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		IsActive:       c.IsActive,
	}
}
