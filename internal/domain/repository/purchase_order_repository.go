package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// PurchaseOrderRepository defines the interface for purchase order data operations
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder, taxes []entity.DocumentTax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetByReference(ctx context.Context, reference string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	// ReplaceItems swaps a draft order's lines and tax snapshots in one
	// transaction.
	ReplaceItems(ctx context.Context, order *entity.PurchaseOrder, taxes []entity.DocumentTax) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error)
}

// PurchaseOrderFilterParams contains filtering parameters for purchase order queries
type PurchaseOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PurchaseOrderStatus
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
