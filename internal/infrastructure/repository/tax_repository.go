package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

type taxRepository struct {
	db *gorm.DB
}

// NewTaxRepository creates a new tax repository
func NewTaxRepository(db *gorm.DB) domainRepo.TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(ctx context.Context, tax *entity.Tax) error {
	return r.db.WithContext(ctx).Create(tax).Error
}

func (r *taxRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	var tax entity.Tax
	err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tax, err
}

func (r *taxRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tax, error) {
	if len(ids) == 0 {
		return []entity.Tax{}, nil
	}
	var taxes []entity.Tax
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&taxes).Error
	return taxes, err
}

func (r *taxRepository) GetActive(ctx context.Context) ([]entity.Tax, error) {
	var taxes []entity.Tax
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&taxes).Error
	return taxes, err
}

func (r *taxRepository) Update(ctx context.Context, tax *entity.Tax) error {
	return r.db.WithContext(ctx).Save(tax).Error
}

func (r *taxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Tax{}, "id = ?", id).Error
}

func (r *taxRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tax, int64, error) {
	var taxes []entity.Tax
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Tax{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&taxes).Error

	return taxes, total, err
}

// ListDocumentTaxes returns the tax snapshots stored for a document.
func (r *taxRepository) ListDocumentTaxes(ctx context.Context, kind enum.DocumentKind, documentID uuid.UUID) ([]entity.DocumentTax, error) {
	var taxes []entity.DocumentTax
	err := r.db.WithContext(ctx).
		Where("document_kind = ? AND document_id = ?", kind, documentID).
		Find(&taxes).Error
	return taxes, err
}
