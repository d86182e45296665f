package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/printer"
)

// PrinterService renders and prints POS receipts
type PrinterService struct {
	ticketRepo   repository.TicketRepository
	taxRepo      repository.TaxRepository
	settingsRepo repository.SettingsRepository
	device       printer.Printer
	charWidth    int
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	ticketRepo repository.TicketRepository,
	taxRepo repository.TaxRepository,
	settingsRepo repository.SettingsRepository,
	device printer.Printer,
	charWidth int,
) *PrinterService {
	return &PrinterService{
		ticketRepo:   ticketRepo,
		taxRepo:      taxRepo,
		settingsRepo: settingsRepo,
		device:       device,
		charWidth:    charWidth,
	}
}

// IsPrinterConnected reports whether the configured printer is reachable
func (s *PrinterService) IsPrinterConnected() bool {
	return s.device.IsConnected()
}

// PrintTicket renders the ticket as an ESC/POS receipt and sends it to
// the printer.
func (s *PrinterService) PrintTicket(ctx context.Context, ticketID uuid.UUID) error {
	data, err := s.RenderTicket(ctx, ticketID)
	if err != nil {
		return err
	}

	if err := s.device.Print(data); err != nil {
		return apperror.NewAppError(503, fmt.Sprintf("Printer unavailable: %v", err))
	}
	return nil
}

// RenderTicket builds the ESC/POS byte stream for a ticket without
// sending it anywhere, for preview and for clients that drive their own
// printer.
func (s *PrinterService) RenderTicket(ctx context.Context, ticketID uuid.UUID) ([]byte, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
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

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	return s.render(ticket, taxes, settings), nil
}

func (s *PrinterService) render(ticket *entity.Ticket, taxes []entity.DocumentTax, settings *entity.CompanySettings) []byte {
	r := printer.NewReceipt(s.charWidth)

	r.Align(printer.AlignCenter).
		Size(printer.FontDouble).
		Line(settings.Name).
		Size(printer.FontNormal)
	if settings.Address != nil {
		r.Line(*settings.Address)
	}
	if settings.Phone != nil {
		r.Line(*settings.Phone)
	}

	r.Align(printer.AlignLeft).
		Rule().
		Linef("Ticket: %s", ticket.Reference).
		Linef("Date:   %s", ticket.CreatedAt.Format("02/01/2006 15:04"))
	if ticket.Client != nil {
		r.Linef("Client: %s", ticket.Client.Name)
	}
	r.Rule()

	for _, item := range ticket.Items {
		r.Item(int(item.Quantity), item.ArticleName, s.money(item.Total, settings.Currency))
	}

	r.Rule().
		KeyValue("Subtotal", s.money(ticket.SubTotal, settings.Currency))
	if ticket.DiscountTotal.IsPositive() {
		r.KeyValue("Discount", "-"+s.money(ticket.DiscountTotal, settings.Currency))
	}
	for _, tax := range taxes {
		r.KeyValue(tax.Name, s.money(tax.Amount, settings.Currency))
	}

	r.Bold(true).
		KeyValue("TOTAL", s.money(ticket.Total, settings.Currency)).
		Bold(false)

	if ticket.Paid.IsPositive() {
		r.KeyValue("Paid", s.money(ticket.Paid, settings.Currency)).
			KeyValue("Due", s.money(ticket.Due, settings.Currency))
	}

	if settings.ReceiptFooter != nil {
		r.Rule().
			Align(printer.AlignCenter).
			Line(*settings.ReceiptFooter)
	}

	r.Feed(3).Cut()
	return r.Bytes()
}

func (s *PrinterService) money(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(0), currency)
}
