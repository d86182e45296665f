package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	// Create persists the ticket header, its items and tax snapshots in one
	// transaction.
	Create(ctx context.Context, ticket *entity.Ticket, taxes []entity.DocumentTax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	GetByReference(ctx context.Context, reference string) (*entity.Ticket, error)
	Update(ctx context.Context, ticket *entity.Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TicketFilterParams) ([]entity.Ticket, int64, error)
	ListWithCursor(ctx context.Context, params *TicketCursorFilterParams) ([]entity.Ticket, error)
}

// TicketFilterParams contains filtering parameters for ticket queries
type TicketFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TicketStatus
	ClientID   *uuid.UUID
	UserID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// TicketCursorFilterParams contains cursor-based filtering parameters for ticket queries
type TicketCursorFilterParams struct {
	Cursor   *pagination.CursorParams
	Search   string
	Status   *enum.TicketStatus
	ClientID *uuid.UUID
}
