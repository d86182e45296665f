package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/pagination"
	"github.com/mbayedev/partstore-api/pkg/utils"
)

// SupplierService handles supplier operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	phoneRegion  string
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository, phoneRegion string) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		phoneRegion:  phoneRegion,
	}
}

// SupplierInput represents the create/update supplier input
type SupplierInput struct {
	Name          string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	TaxNumber     *string
	Notes         *string
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         s.normalizePhone(input.Phone),
		Email:         input.Email,
		Address:       input.Address,
		TaxNumber:     input.TaxNumber,
		Notes:         input.Notes,
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// UpdateSupplier updates a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.Name != "" {
		supplier.Name = input.Name
	}
	if input.ContactPerson != nil {
		supplier.ContactPerson = input.ContactPerson
	}
	if input.Phone != nil {
		supplier.Phone = s.normalizePhone(input.Phone)
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.TaxNumber != nil {
		supplier.TaxNumber = input.TaxNumber
	}
	if input.Notes != nil {
		supplier.Notes = input.Notes
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier soft deletes a supplier
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}
	return s.supplierRepo.Delete(ctx, id)
}

// ListSuppliers lists suppliers with search
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

func (s *SupplierService) normalizePhone(phone *string) *string {
	if phone == nil || *phone == "" {
		return nil
	}
	normalized := utils.NormalizePhone(*phone, s.phoneRegion)
	return &normalized
}
