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

// PaymentService records settlements against tickets, invoices and
// purchase orders. The ledger is append-only; recording a payment also
// moves the cash register or a bank balance and advances the document's
// payment state.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	ticketRepo  repository.TicketRepository
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.PurchaseOrderRepository
	bankRepo    repository.BankRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	ticketRepo repository.TicketRepository,
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.PurchaseOrderRepository,
	bankRepo repository.BankRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		ticketRepo:  ticketRepo,
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		bankRepo:    bankRepo,
	}
}

// RecordPaymentInput represents the record payment input
type RecordPaymentInput struct {
	DocumentKind enum.DocumentKind
	DocumentID   uuid.UUID
	UserID       uuid.UUID
	Method       enum.PaymentMethod
	Amount       decimal.Decimal
	BankID       *uuid.UUID
	CheckNumber  *string
	PaidAt       *time.Time
	Notes        *string
}

// RecordPayment validates and stores one payment. The amount may never
// exceed the document's remaining balance; overpayment is rejected, not
// truncated.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if !input.DocumentKind.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown document kind")
	}
	if !input.DocumentKind.AcceptsPayments() {
		return nil, apperror.NewUnprocessableError("Quotes cannot receive payments")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewUnprocessableError("Payment amount must be positive")
	}

	if input.Method == enum.PaymentMethodCheck || input.Method == enum.PaymentMethodBankTransfer {
		if input.BankID == nil {
			return nil, apperror.NewUnprocessableError("A bank account is required for check and transfer payments")
		}
		bank, err := s.bankRepo.GetByID(ctx, *input.BankID)
		if err != nil {
			return nil, err
		}
		if bank == nil {
			return nil, apperror.NewNotFoundError("Bank")
		}
	}

	settle, err := s.loadDocument(ctx, input.DocumentKind, input.DocumentID)
	if err != nil {
		return nil, err
	}

	if !settle.due.IsPositive() {
		return nil, apperror.ErrDocumentSettled
	}
	if input.Amount.GreaterThan(settle.due) {
		return nil, apperror.ErrPaymentExceedsDue
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	payment := &entity.Payment{
		DocumentKind: input.DocumentKind,
		DocumentID:   input.DocumentID,
		UserID:       input.UserID,
		Method:       input.Method,
		Amount:       input.Amount,
		BankID:       input.BankID,
		CheckNumber:  input.CheckNumber,
		PaidAt:       paidAt,
		Notes:        input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := settle.apply(ctx, input.Amount); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListDocumentPayments returns the payment history of one document
func (s *PaymentService) ListDocumentPayments(ctx context.Context, kind enum.DocumentKind, documentID uuid.UUID) ([]entity.Payment, error) {
	if !kind.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown document kind")
	}
	return s.paymentRepo.ListByDocument(ctx, kind, documentID)
}

// ListPayments lists payments with filtering
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// settleable captures the payment state of a loaded document and knows
// how to advance it after a payment lands.
type settleable struct {
	due   decimal.Decimal
	apply func(ctx context.Context, amount decimal.Decimal) error
}

func (s *PaymentService) loadDocument(ctx context.Context, kind enum.DocumentKind, id uuid.UUID) (*settleable, error) {
	switch kind {
	case enum.DocumentKindTicket:
		ticket, err := s.ticketRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if ticket == nil {
			return nil, apperror.NewNotFoundError("Ticket")
		}
		if ticket.Status == enum.TicketStatusCancelled {
			return nil, apperror.ErrInvalidTransition
		}
		return &settleable{
			due: ticket.Due,
			apply: func(ctx context.Context, amount decimal.Decimal) error {
				ticket.Paid = ticket.Paid.Add(amount)
				ticket.Due = ticket.Due.Sub(amount)
				if ticket.Due.IsPositive() {
					ticket.Status = enum.TicketStatusPartial
				} else {
					ticket.Status = enum.TicketStatusPaid
				}
				return s.ticketRepo.Update(ctx, ticket)
			},
		}, nil

	case enum.DocumentKindInvoice:
		invoice, err := s.invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if invoice == nil {
			return nil, apperror.NewNotFoundError("Invoice")
		}
		return &settleable{
			due: invoice.Due,
			apply: func(ctx context.Context, amount decimal.Decimal) error {
				invoice.Paid = invoice.Paid.Add(amount)
				invoice.Due = invoice.Due.Sub(amount)
				if invoice.Due.IsPositive() {
					invoice.Status = enum.InvoiceStatusPartial
				} else {
					invoice.Status = enum.InvoiceStatusPaid
				}
				return s.invoiceRepo.Update(ctx, invoice)
			},
		}, nil

	case enum.DocumentKindPurchaseOrder:
		order, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Purchase order")
		}
		if order.Status == enum.PurchaseOrderStatusCancelled {
			return nil, apperror.ErrInvalidTransition
		}
		return &settleable{
			due: order.Due,
			apply: func(ctx context.Context, amount decimal.Decimal) error {
				order.Paid = order.Paid.Add(amount)
				order.Due = order.Due.Sub(amount)
				if order.Due.IsPositive() {
					order.PaymentProgress = enum.PaymentProgressPartial
				} else {
					order.PaymentProgress = enum.PaymentProgressPaid
				}
				return s.orderRepo.Update(ctx, order)
			},
		}, nil
	}

	return nil, apperror.NewBadRequestError("Unknown document kind")
}
