package service

import (
	"context"
	"time"

	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/export"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// ReportService produces spreadsheet downloads for the back office
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	articleRepo   repository.ArticleRepository
	paymentRepo   repository.PaymentRepository
}

// NewReportService creates a new report service
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	articleRepo repository.ArticleRepository,
	paymentRepo repository.PaymentRepository,
) *ReportService {
	return &ReportService{
		analyticsRepo: analyticsRepo,
		articleRepo:   articleRepo,
		paymentRepo:   paymentRepo,
	}
}

// ExportInventory builds an .xlsx snapshot of the article catalog
func (s *ReportService) ExportInventory(ctx context.Context) ([]byte, error) {
	builder, err := export.NewSheetBuilder("Inventory", []string{
		"Name", "Barcode", "Reference", "Buying price", "Selling price", "Quantity", "Alert quantity",
	})
	if err != nil {
		return nil, err
	}
	defer builder.Close()

	params := &repository.ArticleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
	}
	for {
		articles, total, err := s.articleRepo.List(ctx, params)
		if err != nil {
			return nil, err
		}

		for _, a := range articles {
			reference := ""
			if a.Reference != nil {
				reference = *a.Reference
			}
			if err := builder.AddRow([]interface{}{
				a.Name, a.Barcode, reference,
				a.BuyingPrice.InexactFloat64(), a.SellingPrice.InexactFloat64(),
				a.Quantity, a.AlertQuantity,
			}); err != nil {
				return nil, err
			}
		}

		if int64(params.Pagination.Page*params.Pagination.PerPage) >= total {
			break
		}
		params.Pagination.Page++
	}

	return builder.Bytes()
}

// ExportDailySales builds an .xlsx of per-day revenue and collections
func (s *ReportService) ExportDailySales(ctx context.Context, start, end time.Time) ([]byte, error) {
	rows, err := s.analyticsRepo.GetDailySales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	builder, err := export.NewSheetBuilder("Daily sales", []string{"Date", "Revenue", "Collected"})
	if err != nil {
		return nil, err
	}
	defer builder.Close()

	for _, r := range rows {
		if err := builder.AddRow([]interface{}{
			r.Date.Format("2006-01-02"),
			r.Revenue.InexactFloat64(),
			r.Payments.InexactFloat64(),
		}); err != nil {
			return nil, err
		}
	}

	return builder.Bytes()
}

// ExportReceivables builds an .xlsx of clients with outstanding balances
func (s *ReportService) ExportReceivables(ctx context.Context) ([]byte, error) {
	rows, err := s.analyticsRepo.GetReceivables(ctx)
	if err != nil {
		return nil, err
	}

	builder, err := export.NewSheetBuilder("Receivables", []string{"Client", "Amount due"})
	if err != nil {
		return nil, err
	}
	defer builder.Close()

	for _, r := range rows {
		if err := builder.AddRow([]interface{}{r.ClientName, r.TotalDue.InexactFloat64()}); err != nil {
			return nil, err
		}
	}

	return builder.Bytes()
}

// ExportPayments builds an .xlsx of the payment ledger for a period
func (s *ReportService) ExportPayments(ctx context.Context, start, end time.Time) ([]byte, error) {
	builder, err := export.NewSheetBuilder("Payments", []string{
		"Paid at", "Document", "Method", "Amount", "Check number",
	})
	if err != nil {
		return nil, err
	}
	defer builder.Close()

	params := &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
		StartDate:  &start,
		EndDate:    &end,
	}
	for {
		payments, total, err := s.paymentRepo.List(ctx, params)
		if err != nil {
			return nil, err
		}

		for _, p := range payments {
			checkNumber := ""
			if p.CheckNumber != nil {
				checkNumber = *p.CheckNumber
			}
			if err := builder.AddRow([]interface{}{
				p.PaidAt.Format("2006-01-02 15:04"),
				p.DocumentKind.String(),
				p.Method.String(),
				p.Amount.InexactFloat64(),
				checkNumber,
			}); err != nil {
				return nil, err
			}
		}

		if int64(params.Pagination.Page*params.Pagination.PerPage) >= total {
			break
		}
		params.Pagination.Page++
	}

	return builder.Bytes()
}
