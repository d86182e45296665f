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

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

// Create persists the order header, items and tax snapshots in one transaction.
func (r *purchaseOrderRepository) Create(ctx context.Context, order *entity.PurchaseOrder, taxes []entity.DocumentTax) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range taxes {
			taxes[i].DocumentID = order.ID
			if err := tx.Create(&taxes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("Items").Preload("Items.Article").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) GetByReference(ctx context.Context, reference string) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("Items").
		First(&order, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// ReplaceItems swaps a draft order's lines and tax snapshots while updating
// the header totals, all in one transaction.
func (r *purchaseOrderRepository) ReplaceItems(ctx context.Context, order *entity.PurchaseOrder, taxes []entity.DocumentTax) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("purchase_order_id = ?", order.ID).
			Delete(&entity.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("document_kind = ? AND document_id = ?", enum.DocumentKindPurchaseOrder, order.ID).
			Delete(&entity.DocumentTax{}).Error; err != nil {
			return err
		}
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		for i := range taxes {
			taxes[i].DocumentID = order.ID
			if err := tx.Create(&taxes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PurchaseOrder{}, "id = ?", id).Error
}

func (r *purchaseOrderRepository) List(ctx context.Context, params *domainRepo.PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var orders []entity.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})

	if params.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
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
		Preload("Supplier").Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}
