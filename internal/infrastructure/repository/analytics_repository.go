package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// GetSummary returns the dashboard headline numbers for a period.
func (r *analyticsRepository) GetSummary(ctx context.Context, start, end time.Time) (*domainRepo.SalesSummary, error) {
	summary := &domainRepo.SalesSummary{
		Revenue:     decimal.Zero,
		Collected:   decimal.Zero,
		Outstanding: decimal.Zero,
		CashBalance: decimal.Zero,
	}

	db := r.db.WithContext(ctx)

	err := db.Model(&entity.Ticket{}).
		Where("status <> ? AND created_at >= ? AND created_at <= ?", enum.TicketStatusCancelled, start, end).
		Count(&summary.TicketCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.Invoice{}).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Count(&summary.InvoiceCount).Error
	if err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	err = db.Raw(`
		SELECT COALESCE(SUM(total), 0) FROM (
			SELECT total FROM tickets
			WHERE status <> ? AND created_at >= ? AND created_at <= ? AND deleted_at IS NULL
			UNION ALL
			SELECT total FROM invoices
			WHERE created_at >= ? AND created_at <= ? AND deleted_at IS NULL
		) sales`,
		enum.TicketStatusCancelled, start, end, start, end).Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	summary.Revenue = nullDecimal(revenue)

	var collected decimal.NullDecimal
	err = db.Model(&entity.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("document_kind IN ? AND paid_at >= ? AND paid_at <= ?",
			[]enum.DocumentKind{enum.DocumentKindTicket, enum.DocumentKindInvoice}, start, end).
		Scan(&collected).Error
	if err != nil {
		return nil, err
	}
	summary.Collected = nullDecimal(collected)

	var outstanding decimal.NullDecimal
	err = db.Raw(`
		SELECT COALESCE(SUM(due), 0) FROM (
			SELECT due FROM tickets WHERE status <> ? AND deleted_at IS NULL
			UNION ALL
			SELECT due FROM invoices WHERE deleted_at IS NULL
		) open_docs`,
		enum.TicketStatusCancelled).Scan(&outstanding).Error
	if err != nil {
		return nil, err
	}
	summary.Outstanding = nullDecimal(outstanding)

	var income, expense decimal.NullDecimal
	err = db.Model(&entity.CashEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", enum.CashEntryIncome).
		Scan(&income).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&entity.CashEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", enum.CashEntryExpense).
		Scan(&expense).Error
	if err != nil {
		return nil, err
	}
	summary.CashBalance = nullDecimal(income).Sub(nullDecimal(expense))

	err = db.Model(&entity.Article{}).
		Where("alert_quantity > 0 AND quantity <= alert_quantity").
		Count(&summary.LowStockCount).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// GetTopArticles returns top selling articles by revenue across tickets
// and invoices.
func (r *analyticsRepository) GetTopArticles(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopArticleResult, error) {
	var results []domainRepo.TopArticleResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id AS article_id, a.name AS article_name, a.barcode,
		       SUM(s.quantity) AS quantity_sold, SUM(s.total) AS revenue
		FROM (
			SELECT ti.article_id, ti.quantity, ti.total
			FROM ticket_items ti
			JOIN tickets t ON t.id = ti.ticket_id
			WHERE t.status <> ? AND t.created_at >= ? AND t.created_at <= ?
			  AND ti.deleted_at IS NULL AND t.deleted_at IS NULL
			UNION ALL
			SELECT ii.article_id, ii.quantity, ii.total
			FROM invoice_items ii
			JOIN invoices i ON i.id = ii.invoice_id
			WHERE i.created_at >= ? AND i.created_at <= ?
			  AND ii.deleted_at IS NULL AND i.deleted_at IS NULL
		) s
		JOIN articles a ON a.id = s.article_id
		GROUP BY a.id, a.name, a.barcode
		ORDER BY revenue DESC
		LIMIT ?`,
		enum.TicketStatusCancelled, start, end, start, end, limit).
		Scan(&results).Error
	return results, err
}

// GetTopClients returns top clients by amount spent.
func (r *analyticsRepository) GetTopClients(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopClientResult, error) {
	var results []domainRepo.TopClientResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id AS client_id, c.name AS client_name,
		       SUM(s.total) AS total_spent, COUNT(*) AS document_count
		FROM (
			SELECT client_id, total FROM tickets
			WHERE status <> ? AND client_id IS NOT NULL
			  AND created_at >= ? AND created_at <= ? AND deleted_at IS NULL
			UNION ALL
			SELECT client_id, total FROM invoices
			WHERE created_at >= ? AND created_at <= ? AND deleted_at IS NULL
		) s
		JOIN clients c ON c.id = s.client_id
		GROUP BY c.id, c.name
		ORDER BY total_spent DESC
		LIMIT ?`,
		enum.TicketStatusCancelled, start, end, start, end, limit).
		Scan(&results).Error
	return results, err
}

// GetDailySales returns per-day revenue and collected payments.
func (r *analyticsRepository) GetDailySales(ctx context.Context, start, end time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.day AS date,
		       COALESCE(SUM(s.revenue), 0) AS revenue,
		       COALESCE(SUM(s.payments), 0) AS payments
		FROM (
			SELECT DATE(created_at) AS day, total AS revenue, 0 AS payments
			FROM tickets
			WHERE status <> ? AND created_at >= ? AND created_at <= ? AND deleted_at IS NULL
			UNION ALL
			SELECT DATE(created_at) AS day, total AS revenue, 0 AS payments
			FROM invoices
			WHERE created_at >= ? AND created_at <= ? AND deleted_at IS NULL
			UNION ALL
			SELECT DATE(paid_at) AS day, 0 AS revenue, amount AS payments
			FROM payments
			WHERE document_kind IN (?, ?) AND paid_at >= ? AND paid_at <= ? AND deleted_at IS NULL
		) s
		GROUP BY s.day
		ORDER BY s.day ASC`,
		enum.TicketStatusCancelled, start, end, start, end,
		enum.DocumentKindTicket, enum.DocumentKindInvoice, start, end).
		Scan(&results).Error
	return results, err
}

// GetReceivables returns clients with outstanding balances.
func (r *analyticsRepository) GetReceivables(ctx context.Context) ([]domainRepo.ReceivablesResult, error) {
	var results []domainRepo.ReceivablesResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id AS client_id, c.name AS client_name, SUM(s.due) AS total_due
		FROM (
			SELECT client_id, due FROM tickets
			WHERE status <> ? AND client_id IS NOT NULL AND deleted_at IS NULL
			UNION ALL
			SELECT client_id, due FROM invoices WHERE deleted_at IS NULL
		) s
		JOIN clients c ON c.id = s.client_id
		GROUP BY c.id, c.name
		HAVING SUM(s.due) > 0
		ORDER BY total_due DESC`,
		enum.TicketStatusCancelled).
		Scan(&results).Error
	return results, err
}
