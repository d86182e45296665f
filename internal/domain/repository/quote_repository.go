package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote, taxes []entity.DocumentTax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByReference(ctx context.Context, reference string) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	// ReplaceItems swaps a draft quote's lines and tax snapshots in one
	// transaction.
	ReplaceItems(ctx context.Context, quote *entity.Quote, taxes []entity.DocumentTax) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	ClientID   *uuid.UUID
	Invoiced   *bool
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
