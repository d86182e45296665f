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

// QuoteService handles quotes and their transfers. Quotes never move
// stock; only a transfer to ticket or invoice does.
type QuoteService struct {
	quoteRepo    repository.QuoteRepository
	ticketRepo   repository.TicketRepository
	invoiceRepo  repository.InvoiceRepository
	articleRepo  repository.ArticleRepository
	taxRepo      repository.TaxRepository
	clientRepo   repository.ClientRepository
	sequenceRepo repository.SequenceRepository
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	ticketRepo repository.TicketRepository,
	invoiceRepo repository.InvoiceRepository,
	articleRepo repository.ArticleRepository,
	taxRepo repository.TaxRepository,
	clientRepo repository.ClientRepository,
	sequenceRepo repository.SequenceRepository,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		ticketRepo:   ticketRepo,
		invoiceRepo:  invoiceRepo,
		articleRepo:  articleRepo,
		taxRepo:      taxRepo,
		clientRepo:   clientRepo,
		sequenceRepo: sequenceRepo,
	}
}

// QuoteInput represents the create/update quote input
type QuoteInput struct {
	UserID     uuid.UUID
	ClientID   uuid.UUID
	Items      []LineItemInput
	TaxIDs     []uuid.UUID
	ValidUntil *time.Time
	Notes      *string
}

// CreateQuote prices and stores a draft quote
func (s *QuoteService) CreateQuote(ctx context.Context, input *QuoteInput) (*entity.Quote, error) {
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

	seq, err := s.sequenceRepo.Next(ctx, entity.SequenceQuote)
	if err != nil {
		return nil, err
	}

	quote := &entity.Quote{
		Reference:     utils.FormatSequence("QT", seq),
		ClientID:      input.ClientID,
		UserID:        input.UserID,
		Status:        enum.QuoteStatusDraft,
		SubTotal:      doc.SubTotal,
		DiscountTotal: doc.DiscountTotal,
		TaxTotal:      doc.TaxTotal,
		Total:         doc.Total,
		ValidUntil:    input.ValidUntil,
		Notes:         input.Notes,
		Items:         quoteItems(doc),
	}

	if err := s.quoteRepo.Create(ctx, quote, doc.documentTaxSnapshots(enum.DocumentKindQuote)); err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, quote.ID)
}

// GetQuote retrieves a quote with its lines and tax snapshots
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	taxes, err := s.taxRepo.ListDocumentTaxes(ctx, enum.DocumentKindQuote, quote.ID)
	if err != nil {
		return nil, err
	}
	quote.Taxes = taxes

	return quote, nil
}

// ListQuotes lists quotes with filtering
func (s *QuoteService) ListQuotes(ctx context.Context, params *repository.QuoteFilterParams) (*pagination.PaginatedResult[entity.Quote], error) {
	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// UpdateQuote reprices an editable quote with new lines. Confirmed,
// rejected and transferred quotes are frozen.
func (s *QuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, input *QuoteInput) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	if quote.IsTransferred() {
		return nil, apperror.ErrAlreadyTransferred
	}
	if !quote.Status.IsEditable() {
		return nil, apperror.ErrInvalidTransition
	}

	doc, err := priceDocument(ctx, s.articleRepo, s.taxRepo, input.Items, input.TaxIDs)
	if err != nil {
		return nil, err
	}

	quote.SubTotal = doc.SubTotal
	quote.DiscountTotal = doc.DiscountTotal
	quote.TaxTotal = doc.TaxTotal
	quote.Total = doc.Total
	quote.Items = quoteItems(doc)
	for i := range quote.Items {
		quote.Items[i].QuoteID = quote.ID
	}
	if input.ValidUntil != nil {
		quote.ValidUntil = input.ValidUntil
	}
	if input.Notes != nil {
		quote.Notes = input.Notes
	}

	if err := s.quoteRepo.ReplaceItems(ctx, quote, doc.documentTaxSnapshots(enum.DocumentKindQuote)); err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, quote.ID)
}

// UpdateQuoteStatus moves a quote along its lifecycle
func (s *QuoteService) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	if !quote.Status.CanTransitionTo(status) {
		return nil, apperror.ErrInvalidTransition
	}

	quote.Status = status
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

// DeleteQuote soft deletes a quote that was never transferred
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}
	if quote.IsTransferred() {
		return apperror.ErrAlreadyTransferred
	}
	return s.quoteRepo.Delete(ctx, id)
}

// TransferToTicket converts a quote into a ticket, moving stock and
// confirming the quote
func (s *QuoteService) TransferToTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	quote, err := s.transferableQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	decrements, articleMap, err := s.quoteStock(ctx, quote)
	if err != nil {
		return nil, err
	}

	failedIDs, err := s.articleRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return nil, insufficientStockError(failedIDs, articleMap)
	}

	items := make([]entity.TicketItem, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, entity.TicketItem{
			ArticleID:     item.ArticleID,
			ArticleName:   item.ArticleName,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			DiscountType:  item.DiscountType,
			DiscountValue: item.DiscountValue,
			Total:         item.Total,
		})
	}

	ticket := &entity.Ticket{
		Reference:     utils.GenerateTicketNo(),
		ClientID:      &quote.ClientID,
		UserID:        quote.UserID,
		Status:        enum.TicketStatusPending,
		SubTotal:      quote.SubTotal,
		DiscountTotal: quote.DiscountTotal,
		TaxTotal:      quote.TaxTotal,
		Total:         quote.Total,
		Paid:          decimal.Zero,
		Due:           quote.Total,
		Notes:         quote.Notes,
		Items:         items,
	}

	taxes, err := s.copyQuoteTaxes(ctx, quote, enum.DocumentKindTicket)
	if err != nil {
		_ = s.articleRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	if err := s.ticketRepo.Create(ctx, ticket, taxes); err != nil {
		_ = s.articleRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	quote.Status = enum.QuoteStatusConfirmed
	quote.TicketID = &ticket.ID
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	return ticket, nil
}

// TransferToInvoice converts a quote into an invoice, moving stock and
// confirming the quote
func (s *QuoteService) TransferToInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	quote, err := s.transferableQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	decrements, articleMap, err := s.quoteStock(ctx, quote)
	if err != nil {
		return nil, err
	}

	failedIDs, err := s.articleRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return nil, insufficientStockError(failedIDs, articleMap)
	}

	seq, err := s.sequenceRepo.Next(ctx, entity.SequenceInvoice)
	if err != nil {
		_ = s.articleRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	items := make([]entity.InvoiceItem, 0, len(quote.Items))
	for _, item := range quote.Items {
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

	invoice := &entity.Invoice{
		Reference:     utils.FormatSequence("INV", seq),
		ClientID:      quote.ClientID,
		UserID:        quote.UserID,
		Status:        enum.InvoiceStatusUnpaid,
		SubTotal:      quote.SubTotal,
		DiscountTotal: quote.DiscountTotal,
		TaxTotal:      quote.TaxTotal,
		Total:         quote.Total,
		Paid:          decimal.Zero,
		Due:           quote.Total,
		QuoteID:       &quote.ID,
		Notes:         quote.Notes,
		Items:         items,
	}

	taxes, err := s.copyQuoteTaxes(ctx, quote, enum.DocumentKindInvoice)
	if err != nil {
		_ = s.articleRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice, taxes); err != nil {
		_ = s.articleRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	quote.Status = enum.QuoteStatusConfirmed
	quote.InvoiceID = &invoice.ID
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	return invoice, nil
}

// transferableQuote loads a quote and checks it can be transferred:
// rejected, already transferred and expired quotes cannot move. Draft
// and sent quotes transfer directly; the transfer itself confirms them.
func (s *QuoteService) transferableQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	if quote.IsTransferred() {
		return nil, apperror.ErrAlreadyTransferred
	}
	if quote.Status == enum.QuoteStatusRejected {
		return nil, apperror.ErrInvalidTransition
	}
	if quote.ValidUntil != nil && quote.ValidUntil.Before(time.Now().Truncate(24*time.Hour)) {
		return nil, apperror.NewUnprocessableError("Quote has expired")
	}

	return quote, nil
}

// quoteStock builds the stock decrement map and an article lookup for
// error messages.
func (s *QuoteService) quoteStock(ctx context.Context, quote *entity.Quote) (map[uuid.UUID]int64, map[uuid.UUID]*entity.Article, error) {
	decrements := make(map[uuid.UUID]int64, len(quote.Items))
	articleIDs := make([]uuid.UUID, 0, len(quote.Items))
	for _, item := range quote.Items {
		decrements[item.ArticleID] += item.Quantity
		articleIDs = append(articleIDs, item.ArticleID)
	}

	articles, err := s.articleRepo.GetByIDs(ctx, articleIDs)
	if err != nil {
		return nil, nil, err
	}
	articleMap := make(map[uuid.UUID]*entity.Article, len(articles))
	for i := range articles {
		articleMap[articles[i].ID] = &articles[i]
	}

	return decrements, articleMap, nil
}

// copyQuoteTaxes duplicates the quote's tax snapshots for the target document
func (s *QuoteService) copyQuoteTaxes(ctx context.Context, quote *entity.Quote, kind enum.DocumentKind) ([]entity.DocumentTax, error) {
	quoteTaxes, err := s.taxRepo.ListDocumentTaxes(ctx, enum.DocumentKindQuote, quote.ID)
	if err != nil {
		return nil, err
	}

	taxes := make([]entity.DocumentTax, 0, len(quoteTaxes))
	for _, t := range quoteTaxes {
		taxes = append(taxes, entity.DocumentTax{
			DocumentKind: kind,
			TaxID:        t.TaxID,
			Name:         t.Name,
			Type:         t.Type,
			Rate:         t.Rate,
			Amount:       t.Amount,
		})
	}
	return taxes, nil
}

func quoteItems(doc *pricedDocument) []entity.QuoteItem {
	items := make([]entity.QuoteItem, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		items = append(items, entity.QuoteItem{
			ArticleID:     line.Article.ID,
			ArticleName:   line.Article.Name,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			DiscountType:  line.DiscountType,
			DiscountValue: line.DiscountValue,
			Total:         line.Total,
		})
	}
	return items
}
