package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create records the payment together with its cash or bank side entry.
// A cash payment writes a cash register income entry; check and transfer
// payments require a bank and write a bank transaction plus the balance
// move. Everything happens in one transaction.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		label := fmt.Sprintf("Payment %s %s", payment.DocumentKind, payment.DocumentID)

		// Supplier payments flow out, sales payments flow in.
		outgoing := payment.DocumentKind == enum.DocumentKindPurchaseOrder

		switch payment.Method {
		case enum.PaymentMethodCash:
			entryType := enum.CashEntryIncome
			if outgoing {
				entryType = enum.CashEntryExpense
			}
			entry := &entity.CashEntry{
				PaymentID: &payment.ID,
				UserID:    payment.UserID,
				Type:      entryType,
				Amount:    payment.Amount,
				Label:     label,
				EntryDate: payment.PaidAt,
			}
			if err := tx.Create(entry).Error; err != nil {
				return err
			}

		case enum.PaymentMethodCheck, enum.PaymentMethodBankTransfer:
			if payment.BankID == nil {
				return errors.New("bank is required for check and transfer payments")
			}
			// Payment-linked bank entries always carry type payment; the
			// PaymentID tells the direction apart. Deposit and withdrawal
			// are reserved for manual bank entries.
			balanceExpr := gorm.Expr("balance + ?", payment.Amount)
			if outgoing {
				balanceExpr = gorm.Expr("balance - ?", payment.Amount)
			}
			txn := &entity.BankTransaction{
				BankID:    *payment.BankID,
				PaymentID: &payment.ID,
				UserID:    payment.UserID,
				Type:      enum.BankTransactionPayment,
				Amount:    payment.Amount,
				Label:     label,
			}
			if err := tx.Create(txn).Error; err != nil {
				return err
			}
			if err := tx.Model(&entity.Bank{}).
				Where("id = ?", *payment.BankID).
				Update("balance", balanceExpr).Error; err != nil {
				return err
			}

		default:
			return fmt.Errorf("unknown payment method %q", payment.Method)
		}

		return nil
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Preload("Bank").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByDocument(ctx context.Context, kind enum.DocumentKind, documentID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("document_kind = ? AND document_id = ?", kind, documentID).
		Preload("Bank").
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}

// SumByDocument returns the total already paid against a document.
func (r *paymentRepository) SumByDocument(ctx context.Context, kind enum.DocumentKind, documentID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("document_kind = ? AND document_id = ?", kind, documentID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payment{})

	if params.DocumentKind != nil {
		query = query.Where("document_kind = ?", *params.DocumentKind)
	}

	if params.Method != nil {
		query = query.Where("method = ?", *params.Method)
	}

	if params.BankID != nil {
		query = query.Where("bank_id = ?", *params.BankID)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.StartDate != nil {
		query = query.Where("paid_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("paid_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "paid_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Bank").
		Order(sortBy + " " + sortOrder).
		Find(&payments).Error

	return payments, total, err
}
