package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	// GetByIDs retrieves multiple articles by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Article, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ArticleFilterParams) ([]entity.Article, int64, error)
	ListWithCursor(ctx context.Context, params *ArticleCursorFilterParams) ([]entity.Article, error)
	GetLowStock(ctx context.Context) ([]entity.Article, error)
	// AtomicDecrementBatch atomically decrements stock for multiple articles.
	// Returns the IDs that failed on insufficient stock; if any fails the
	// whole transaction is rolled back.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int64) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock for multiple articles
	// (cancellations, receptions).
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int64) error
	// UpdateBuyingPriceBatch refreshes buying prices after a purchase order
	// is received.
	UpdateBuyingPriceBatch(ctx context.Context, prices map[uuid.UUID]decimal.Decimal) error
}

// ArticleFilterParams contains filtering parameters for article queries
type ArticleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// ArticleCursorFilterParams contains cursor-based filtering parameters for article queries
type ArticleCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	CategoryID *uuid.UUID
	LowStock   bool
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error)
}
