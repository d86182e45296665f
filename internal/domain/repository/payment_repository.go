package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment ledger operations
type PaymentRepository interface {
	// Create records the payment and its cash or bank side entry in one
	// transaction. A cash payment writes a CashEntry; check and transfer
	// payments write a BankTransaction and move the bank balance.
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListByDocument(ctx context.Context, kind enum.DocumentKind, documentID uuid.UUID) ([]entity.Payment, error)
	// SumByDocument returns the total already paid against a document.
	SumByDocument(ctx context.Context, kind enum.DocumentKind, documentID uuid.UUID) (decimal.Decimal, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination   *pagination.PaginationParams
	DocumentKind *enum.DocumentKind
	Method       *enum.PaymentMethod
	BankID       *uuid.UUID
	UserID       *uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
	SortBy       string
	SortOrder    string
}
