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

// TicketService handles point-of-sale tickets
type TicketService struct {
	ticketRepo   repository.TicketRepository
	invoiceRepo  repository.InvoiceRepository
	articleRepo  repository.ArticleRepository
	taxRepo      repository.TaxRepository
	clientRepo   repository.ClientRepository
	sequenceRepo repository.SequenceRepository
}

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo repository.TicketRepository,
	invoiceRepo repository.InvoiceRepository,
	articleRepo repository.ArticleRepository,
	taxRepo repository.TaxRepository,
	clientRepo repository.ClientRepository,
	sequenceRepo repository.SequenceRepository,
) *TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		invoiceRepo:  invoiceRepo,
		articleRepo:  articleRepo,
		taxRepo:      taxRepo,
		clientRepo:   clientRepo,
		sequenceRepo: sequenceRepo,
	}
}

// CreateTicketInput represents the create ticket input
type CreateTicketInput struct {
	UserID   uuid.UUID
	ClientID *uuid.UUID
	Items    []LineItemInput
	TaxIDs   []uuid.UUID
	Notes    *string
}

// CreateTicket prices the cart, decrements stock atomically and persists
// the ticket. Stock moves at creation time; a later cancellation puts it
// back.
func (s *TicketService) CreateTicket(ctx context.Context, input *CreateTicketInput) (*entity.Ticket, error) {
	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
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

	items := make([]entity.TicketItem, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		items = append(items, entity.TicketItem{
			ArticleID:     line.Article.ID,
			ArticleName:   line.Article.Name,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			DiscountType:  line.DiscountType,
			DiscountValue: line.DiscountValue,
			Total:         line.Total,
		})
	}

	ticket := &entity.Ticket{
		Reference:     utils.GenerateTicketNo(),
		ClientID:      input.ClientID,
		UserID:        input.UserID,
		Status:        enum.TicketStatusPending,
		SubTotal:      doc.SubTotal,
		DiscountTotal: doc.DiscountTotal,
		TaxTotal:      doc.TaxTotal,
		Total:         doc.Total,
		Paid:          decimal.Zero,
		Due:           doc.Total,
		Notes:         input.Notes,
		Items:         items,
	}

	if err := s.ticketRepo.Create(ctx, ticket, doc.documentTaxSnapshots(enum.DocumentKindTicket)); err != nil {
		// Stock was already decremented, put it back
		_ = s.articleRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	return s.GetTicket(ctx, ticket.ID)
}

// GetTicket retrieves a ticket with its lines and tax snapshots
func (s *TicketService) GetTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}

	taxes, err := s.taxRepo.ListDocumentTaxes(ctx, enum.DocumentKindTicket, ticket.ID)
	if err != nil {
		return nil, err
	}
	ticket.Taxes = taxes

	return ticket, nil
}

// ListTickets lists tickets with filtering
func (s *TicketService) ListTickets(ctx context.Context, params *repository.TicketFilterParams) (*pagination.PaginatedResult[entity.Ticket], error) {
	tickets, total, err := s.ticketRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(tickets, pag), nil
}

// ListTicketsWithCursor lists tickets with cursor-based pagination
func (s *TicketService) ListTicketsWithCursor(ctx context.Context, params *repository.TicketCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Ticket], error) {
	tickets, err := s.ticketRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(tickets, params.Cursor.Limit,
		func(t entity.Ticket) string { return t.ID.String() },
		func(t entity.Ticket) time.Time { return t.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// CancelTicket cancels an unpaid ticket and restores its stock
func (s *TicketService) CancelTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}

	if ticket.IsTransferred() {
		return nil, apperror.ErrAlreadyTransferred
	}
	if !ticket.Status.CanTransitionTo(enum.TicketStatusCancelled) {
		return nil, apperror.ErrInvalidTransition
	}

	increments := make(map[uuid.UUID]int64, len(ticket.Items))
	for _, item := range ticket.Items {
		increments[item.ArticleID] += item.Quantity
	}
	if err := s.articleRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	ticket.Status = enum.TicketStatusCancelled
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

// TransferToInvoice turns a ticket into a formal invoice. The ticket's
// lines, tax snapshots and payment state are copied; stock does not move
// again. A ticket transfers at most once.
func (s *TicketService) TransferToInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}

	if ticket.IsTransferred() {
		return nil, apperror.ErrAlreadyTransferred
	}
	if ticket.Status == enum.TicketStatusCancelled {
		return nil, apperror.ErrInvalidTransition
	}
	if ticket.ClientID == nil {
		return nil, apperror.NewUnprocessableError("A client is required to invoice a ticket")
	}

	seq, err := s.sequenceRepo.Next(ctx, entity.SequenceInvoice)
	if err != nil {
		return nil, err
	}

	items := make([]entity.InvoiceItem, 0, len(ticket.Items))
	for _, item := range ticket.Items {
		items = append(items, entity.InvoiceItem{
			ArticleID:     item.ArticleID,
			ArticleName:   item.ArticleName,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			DiscountType:  item.DiscountType,
			DiscountValue: item.DiscountValue,
			Total:         item.Total,
		})
	}

	status := enum.InvoiceStatusUnpaid
	if ticket.Due.IsZero() {
		status = enum.InvoiceStatusPaid
	} else if ticket.Paid.IsPositive() {
		status = enum.InvoiceStatusPartial
	}

	invoice := &entity.Invoice{
		Reference:     utils.FormatSequence("INV", seq),
		ClientID:      *ticket.ClientID,
		UserID:        ticket.UserID,
		Status:        status,
		SubTotal:      ticket.SubTotal,
		DiscountTotal: ticket.DiscountTotal,
		TaxTotal:      ticket.TaxTotal,
		Total:         ticket.Total,
		Paid:          ticket.Paid,
		Due:           ticket.Due,
		TicketID:      &ticket.ID,
		Notes:         ticket.Notes,
		Items:         items,
	}

	ticketTaxes, err := s.taxRepo.ListDocumentTaxes(ctx, enum.DocumentKindTicket, ticket.ID)
	if err != nil {
		return nil, err
	}
	invoiceTaxes := make([]entity.DocumentTax, 0, len(ticketTaxes))
	for _, t := range ticketTaxes {
		invoiceTaxes = append(invoiceTaxes, entity.DocumentTax{
			DocumentKind: enum.DocumentKindInvoice,
			TaxID:        t.TaxID,
			Name:         t.Name,
			Type:         t.Type,
			Rate:         t.Rate,
			Amount:       t.Amount,
		})
	}

	if err := s.invoiceRepo.Create(ctx, invoice, invoiceTaxes); err != nil {
		return nil, err
	}

	ticket.InvoiceID = &invoice.ID
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	return invoice, nil
}
