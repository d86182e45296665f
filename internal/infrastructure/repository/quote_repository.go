package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

// Create persists the quote header, items and tax snapshots in one transaction.
func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote, taxes []entity.DocumentTax) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quote).Error; err != nil {
			return err
		}
		for i := range taxes {
			taxes[i].DocumentID = quote.ID
			if err := tx.Create(&taxes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Items").Preload("Items.Article").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetByReference(ctx context.Context, reference string) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Items").
		First(&quote, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// ReplaceItems swaps a quote's lines and tax snapshots while updating the
// header totals, all in one transaction.
func (r *quoteRepository) ReplaceItems(ctx context.Context, quote *entity.Quote, taxes []entity.DocumentTax) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("quote_id = ?", quote.ID).
			Delete(&entity.QuoteItem{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("document_kind = ? AND document_id = ?", enum.DocumentKindQuote, quote.ID).
			Delete(&entity.DocumentTax{}).Error; err != nil {
			return err
		}
		if err := tx.Save(quote).Error; err != nil {
			return err
		}
		for i := range taxes {
			taxes[i].DocumentID = quote.ID
			if err := tx.Create(&taxes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Quote{}, "id = ?", id).Error
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quote{})

	if params.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.Invoiced != nil {
		if *params.Invoiced {
			query = query.Where("invoice_id IS NOT NULL OR ticket_id IS NOT NULL")
		} else {
			query = query.Where("invoice_id IS NULL AND ticket_id IS NULL")
		}
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&quotes).Error

	return quotes, total, err
}
