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
	"github.com/mbayedev/partstore-api/pkg/utils"
)

// InvoiceService handles invoices created directly. Invoices produced by
// transferring a ticket or quote are built by those services.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	articleRepo  repository.ArticleRepository
	taxRepo      repository.TaxRepository
	clientRepo   repository.ClientRepository
	sequenceRepo repository.SequenceRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	articleRepo repository.ArticleRepository,
	taxRepo repository.TaxRepository,
	clientRepo repository.ClientRepository,
	sequenceRepo repository.SequenceRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		articleRepo:  articleRepo,
		taxRepo:      taxRepo,
		clientRepo:   clientRepo,
		sequenceRepo: sequenceRepo,
	}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	UserID   uuid.UUID
	ClientID uuid.UUID
	Items    []LineItemInput
	TaxIDs   []uuid.UUID
	DueDate  *time.Time
	Notes    *string
}

// CreateInvoice prices the lines, decrements stock atomically and stores
// the invoice as unpaid.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	doc, err := priceDocument(ctx, s.articleRepo, s.taxRepo, input.Items, input.TaxIDs)
	if err != nil {
		return nil, err
	}

	decrements := doc.stockDecrements()
	failedIDs, err := s.articleRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return nil, insufficientStockError(failedIDs, doc.ArticleMap)
	}

	seq, err := s.sequenceRepo.Next(ctx, entity.SequenceInvoice)
	if err != nil {
		_ = s.articleRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	items := make([]entity.InvoiceItem, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		items = append(items, entity.InvoiceItem{
			ArticleID:     line.Article.ID,
			ArticleName:   line.Article.Name,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			DiscountType:  line.DiscountType,
			DiscountValue: line.DiscountValue,
			Total:         line.Total,
		})
	}

	invoice := &entity.Invoice{
		Reference:     utils.FormatSequence("INV", seq),
		ClientID:      input.ClientID,
		UserID:        input.UserID,
		Status:        enum.InvoiceStatusUnpaid,
		SubTotal:      doc.SubTotal,
		DiscountTotal: doc.DiscountTotal,
		TaxTotal:      doc.TaxTotal,
		Total:         doc.Total,
		Paid:          decimal.Zero,
		Due:           doc.Total,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
		Items:         items,
	}

	if err := s.invoiceRepo.Create(ctx, invoice, doc.documentTaxSnapshots(enum.DocumentKindInvoice)); err != nil {
		_ = s.articleRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	return s.GetInvoice(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its lines and tax snapshots
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	taxes, err := s.taxRepo.ListDocumentTaxes(ctx, enum.DocumentKindInvoice, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.Taxes = taxes

	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput represents the mutable invoice fields. Amounts and
// lines are frozen once the invoice exists.
type UpdateInvoiceInput struct {
	DueDate *time.Time
	Notes   *string
}

// UpdateInvoice updates the due date or notes of an invoice
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = input.Notes
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}
