package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

type bankRepository struct {
	db *gorm.DB
}

// NewBankRepository creates a new bank repository
func NewBankRepository(db *gorm.DB) domainRepo.BankRepository {
	return &bankRepository{db: db}
}

func (r *bankRepository) Create(ctx context.Context, bank *entity.Bank) error {
	return r.db.WithContext(ctx).Create(bank).Error
}

func (r *bankRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bank, error) {
	var bank entity.Bank
	err := r.db.WithContext(ctx).First(&bank, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bank, err
}

func (r *bankRepository) Update(ctx context.Context, bank *entity.Bank) error {
	return r.db.WithContext(ctx).Save(bank).Error
}

func (r *bankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Bank{}, "id = ?", id).Error
}

func (r *bankRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Bank, int64, error) {
	var banks []entity.Bank
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bank{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&banks).Error

	return banks, total, err
}

// CreateTransaction records a manual deposit or withdrawal and adjusts the
// bank balance in the same transaction.
func (r *bankRepository) CreateTransaction(ctx context.Context, txn *entity.BankTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		balanceExpr := gorm.Expr("balance + ?", txn.Amount)
		if txn.Type == enum.BankTransactionWithdrawal {
			balanceExpr = gorm.Expr("balance - ?", txn.Amount)
		}

		return tx.Model(&entity.Bank{}).
			Where("id = ?", txn.BankID).
			Update("balance", balanceExpr).Error
	})
}

func (r *bankRepository) ListTransactions(ctx context.Context, bankID uuid.UUID, params *domainRepo.BankTransactionFilterParams) ([]entity.BankTransaction, int64, error) {
	var txns []entity.BankTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BankTransaction{}).
		Where("bank_id = ?", bankID)

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

type cashRegisterRepository struct {
	db *gorm.DB
}

// NewCashRegisterRepository creates a new cash register repository
func NewCashRegisterRepository(db *gorm.DB) domainRepo.CashRegisterRepository {
	return &cashRegisterRepository{db: db}
}

func (r *cashRegisterRepository) Create(ctx context.Context, entry *entity.CashEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *cashRegisterRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashEntry, error) {
	var entry entity.CashEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *cashRegisterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CashEntry{}, "id = ?", id).Error
}

func (r *cashRegisterRepository) List(ctx context.Context, params *domainRepo.CashEntryFilterParams) ([]entity.CashEntry, int64, error) {
	var entries []entity.CashEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CashEntry{})

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.StartDate != nil {
		query = query.Where("entry_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("entry_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("entry_date DESC, created_at DESC").
		Find(&entries).Error

	return entries, total, err
}

// BalanceAt returns income minus expenses up to and including the given date.
func (r *cashRegisterRepository) BalanceAt(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	var income, expense decimal.NullDecimal

	err := r.db.WithContext(ctx).Model(&entity.CashEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND entry_date <= ?", enum.CashEntryIncome, date).
		Scan(&income).Error
	if err != nil {
		return decimal.Zero, err
	}

	err = r.db.WithContext(ctx).Model(&entity.CashEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND entry_date <= ?", enum.CashEntryExpense, date).
		Scan(&expense).Error
	if err != nil {
		return decimal.Zero, err
	}

	return nullDecimal(income).Sub(nullDecimal(expense)), nil
}

// DailyTotals returns income and expense sums for one day.
func (r *cashRegisterRepository) DailyTotals(ctx context.Context, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var income, expense decimal.NullDecimal

	err := r.db.WithContext(ctx).Model(&entity.CashEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND entry_date >= ? AND entry_date < ?", enum.CashEntryIncome, dayStart, dayEnd).
		Scan(&income).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	err = r.db.WithContext(ctx).Model(&entity.CashEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND entry_date >= ? AND entry_date < ?", enum.CashEntryExpense, dayStart, dayEnd).
		Scan(&expense).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return nullDecimal(income), nullDecimal(expense), nil
}

func nullDecimal(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
