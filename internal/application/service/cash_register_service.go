package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// CashRegisterService handles manual cash entries and the register's
// balance views. Entries produced by cash payments come from the payment
// ledger and are never written here.
type CashRegisterService struct {
	cashRepo repository.CashRegisterRepository
}

// NewCashRegisterService creates a new cash register service
func NewCashRegisterService(cashRepo repository.CashRegisterRepository) *CashRegisterService {
	return &CashRegisterService{cashRepo: cashRepo}
}

// CashEntryInput represents a manual cash entry
type CashEntryInput struct {
	UserID    uuid.UUID
	Type      enum.CashEntryType
	Amount    decimal.Decimal
	Label     string
	EntryDate *time.Time
}

// RecordEntry records a manual income or expense in the register
func (s *CashRegisterService) RecordEntry(ctx context.Context, input *CashEntryInput) (*entity.CashEntry, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Entry type must be income or expense")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewUnprocessableError("Amount must be positive")
	}
	if input.Label == "" {
		return nil, apperror.NewUnprocessableError("A label is required")
	}

	entryDate := time.Now()
	if input.EntryDate != nil {
		entryDate = *input.EntryDate
	}

	entry := &entity.CashEntry{
		UserID:    input.UserID,
		Type:      input.Type,
		Amount:    input.Amount,
		Label:     input.Label,
		EntryDate: entryDate,
	}

	if err := s.cashRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes a manual entry. Payment-linked entries are part of
// the ledger and cannot be deleted.
func (s *CashRegisterService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.cashRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NewNotFoundError("Cash entry")
	}
	if entry.PaymentID != nil {
		return apperror.NewConflictError("Entries generated by payments cannot be deleted")
	}
	return s.cashRepo.Delete(ctx, id)
}

// ListEntries lists cash entries with filtering
func (s *CashRegisterService) ListEntries(ctx context.Context, params *repository.CashEntryFilterParams) (*pagination.PaginatedResult[entity.CashEntry], error) {
	entries, total, err := s.cashRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// DailySummary is the register's state for one day
type DailySummary struct {
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Balance decimal.Decimal `json:"balance"`
}

// GetDailySummary returns the register's totals and running balance for
// one day.
func (s *CashRegisterService) GetDailySummary(ctx context.Context, date time.Time) (*DailySummary, error) {
	income, expense, err := s.cashRepo.DailyTotals(ctx, date)
	if err != nil {
		return nil, err
	}

	balance, err := s.cashRepo.BalanceAt(ctx, date)
	if err != nil {
		return nil, err
	}

	return &DailySummary{
		Date:    date,
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
		Balance: balance,
	}, nil
}
