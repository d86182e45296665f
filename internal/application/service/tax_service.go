package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// TaxService handles tax configuration operations
type TaxService struct {
	taxRepo repository.TaxRepository
}

// NewTaxService creates a new tax service
func NewTaxService(taxRepo repository.TaxRepository) *TaxService {
	return &TaxService{taxRepo: taxRepo}
}

// TaxInput represents the create/update tax input
type TaxInput struct {
	Name     string
	Type     enum.TaxType
	Rate     decimal.Decimal
	IsActive *bool
}

// CreateTax creates a new tax
func (s *TaxService) CreateTax(ctx context.Context, input *TaxInput) (*entity.Tax, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewUnprocessableError("Tax type must be percentage or fixed")
	}
	if input.Rate.IsNegative() {
		return nil, apperror.NewUnprocessableError("Tax rate cannot be negative")
	}

	tax := &entity.Tax{
		Name:     input.Name,
		Type:     input.Type,
		Rate:     input.Rate,
		IsActive: true,
	}
	if input.IsActive != nil {
		tax.IsActive = *input.IsActive
	}

	if err := s.taxRepo.Create(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// GetTax retrieves a tax by ID
func (s *TaxService) GetTax(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}
	return tax, nil
}

// UpdateTax updates a tax. Documents priced earlier keep their snapshots.
func (s *TaxService) UpdateTax(ctx context.Context, id uuid.UUID, input *TaxInput) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}

	if input.Name != "" {
		tax.Name = input.Name
	}
	if input.Type != "" {
		if !input.Type.IsValid() {
			return nil, apperror.NewUnprocessableError("Tax type must be percentage or fixed")
		}
		tax.Type = input.Type
	}
	if !input.Rate.IsZero() || input.Rate.IsNegative() {
		if input.Rate.IsNegative() {
			return nil, apperror.NewUnprocessableError("Tax rate cannot be negative")
		}
		tax.Rate = input.Rate
	}
	if input.IsActive != nil {
		tax.IsActive = *input.IsActive
	}

	if err := s.taxRepo.Update(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// DeleteTax soft deletes a tax
func (s *TaxService) DeleteTax(ctx context.Context, id uuid.UUID) error {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tax == nil {
		return apperror.NewNotFoundError("Tax")
	}
	return s.taxRepo.Delete(ctx, id)
}

// ListTaxes lists configured taxes
func (s *TaxService) ListTaxes(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Tax], error) {
	taxes, total, err := s.taxRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(taxes, pag), nil
}

// GetActiveTaxes returns taxes currently applied to new documents
func (s *TaxService) GetActiveTaxes(ctx context.Context) ([]entity.Tax, error) {
	return s.taxRepo.GetActive(ctx)
}
