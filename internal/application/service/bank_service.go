package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// BankService handles bank accounts and manual deposits and withdrawals.
// Payment-linked transactions are written by the payment ledger itself.
type BankService struct {
	bankRepo repository.BankRepository
}

// NewBankService creates a new bank service
func NewBankService(bankRepo repository.BankRepository) *BankService {
	return &BankService{bankRepo: bankRepo}
}

// BankInput represents the create/update bank input
type BankInput struct {
	Name           string
	AccountHolder  *string
	AccountNumber  *string
	InitialBalance *decimal.Decimal
	IsActive       *bool
}

// CreateBank creates a new bank account
func (s *BankService) CreateBank(ctx context.Context, input *BankInput) (*entity.Bank, error) {
	bank := &entity.Bank{
		Name:          input.Name,
		AccountHolder: input.AccountHolder,
		AccountNumber: input.AccountNumber,
		Balance:       decimal.Zero,
		IsActive:      true,
	}
	if input.InitialBalance != nil {
		if input.InitialBalance.IsNegative() {
			return nil, apperror.NewUnprocessableError("Initial balance cannot be negative")
		}
		bank.Balance = *input.InitialBalance
	}
	if input.IsActive != nil {
		bank.IsActive = *input.IsActive
	}

	if err := s.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// GetBank retrieves a bank by ID
func (s *BankService) GetBank(ctx context.Context, id uuid.UUID) (*entity.Bank, error) {
	bank, err := s.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, apperror.NewNotFoundError("Bank")
	}
	return bank, nil
}

// UpdateBank updates a bank's descriptive fields. The balance only moves
// through transactions.
func (s *BankService) UpdateBank(ctx context.Context, id uuid.UUID, input *BankInput) (*entity.Bank, error) {
	bank, err := s.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, apperror.NewNotFoundError("Bank")
	}

	if input.Name != "" {
		bank.Name = input.Name
	}
	if input.AccountHolder != nil {
		bank.AccountHolder = input.AccountHolder
	}
	if input.AccountNumber != nil {
		bank.AccountNumber = input.AccountNumber
	}
	if input.IsActive != nil {
		bank.IsActive = *input.IsActive
	}

	if err := s.bankRepo.Update(ctx, bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// DeleteBank soft deletes a bank account
func (s *BankService) DeleteBank(ctx context.Context, id uuid.UUID) error {
	bank, err := s.bankRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bank == nil {
		return apperror.NewNotFoundError("Bank")
	}
	return s.bankRepo.Delete(ctx, id)
}

// ListBanks lists bank accounts with search
func (s *BankService) ListBanks(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Bank], error) {
	banks, total, err := s.bankRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(banks, pag), nil
}

// BankTransactionInput represents a manual deposit or withdrawal
type BankTransactionInput struct {
	BankID uuid.UUID
	UserID uuid.UUID
	Type   enum.BankTransactionType
	Amount decimal.Decimal
	Label  string
}

// RecordTransaction records a manual deposit or withdrawal and moves the
// bank balance. A withdrawal may not exceed the current balance.
func (s *BankService) RecordTransaction(ctx context.Context, input *BankTransactionInput) (*entity.BankTransaction, error) {
	if input.Type != enum.BankTransactionDeposit && input.Type != enum.BankTransactionWithdrawal {
		return nil, apperror.NewBadRequestError("Transaction type must be deposit or withdrawal")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewUnprocessableError("Amount must be positive")
	}

	bank, err := s.bankRepo.GetByID(ctx, input.BankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, apperror.NewNotFoundError("Bank")
	}

	if input.Type == enum.BankTransactionWithdrawal && input.Amount.GreaterThan(bank.Balance) {
		return nil, apperror.NewUnprocessableError("Withdrawal exceeds the bank balance")
	}

	txn := &entity.BankTransaction{
		BankID: input.BankID,
		UserID: input.UserID,
		Type:   input.Type,
		Amount: input.Amount,
		Label:  input.Label,
	}

	if err := s.bankRepo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions lists the movements of one bank account
func (s *BankService) ListTransactions(ctx context.Context, bankID uuid.UUID, params *repository.BankTransactionFilterParams) (*pagination.PaginatedResult[entity.BankTransaction], error) {
	bank, err := s.bankRepo.GetByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, apperror.NewNotFoundError("Bank")
	}

	txns, total, err := s.bankRepo.ListTransactions(ctx, bankID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}
