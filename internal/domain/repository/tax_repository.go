package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// TaxRepository defines the interface for tax configuration operations
type TaxRepository interface {
	Create(ctx context.Context, tax *entity.Tax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tax, error)
	GetActive(ctx context.Context) ([]entity.Tax, error)
	Update(ctx context.Context, tax *entity.Tax) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tax, int64, error)
	// ListDocumentTaxes returns the tax snapshots stored for a document.
	ListDocumentTaxes(ctx context.Context, kind enum.DocumentKind, documentID uuid.UUID) ([]entity.DocumentTax, error)
}
