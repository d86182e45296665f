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

// BankRepository defines the interface for bank account operations
type BankRepository interface {
	Create(ctx context.Context, bank *entity.Bank) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bank, error)
	Update(ctx context.Context, bank *entity.Bank) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Bank, int64, error)
	// CreateTransaction records a manual deposit or withdrawal and adjusts
	// the bank balance in the same transaction.
	CreateTransaction(ctx context.Context, txn *entity.BankTransaction) error
	ListTransactions(ctx context.Context, bankID uuid.UUID, params *BankTransactionFilterParams) ([]entity.BankTransaction, int64, error)
}

// BankTransactionFilterParams contains filtering parameters for bank transaction queries
type BankTransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.BankTransactionType
	StartDate  *time.Time
	EndDate    *time.Time
}

// CashRegisterRepository defines the interface for cash register operations
type CashRegisterRepository interface {
	Create(ctx context.Context, entry *entity.CashEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CashEntryFilterParams) ([]entity.CashEntry, int64, error)
	// BalanceAt returns income minus expenses up to and including the given
	// date.
	BalanceAt(ctx context.Context, date time.Time) (decimal.Decimal, error)
	// DailyTotals returns income and expense sums for one day.
	DailyTotals(ctx context.Context, date time.Time) (income, expense decimal.Decimal, err error)
}

// CashEntryFilterParams contains filtering parameters for cash entry queries
type CashEntryFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.CashEntryType
	StartDate  *time.Time
	EndDate    *time.Time
}
