package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopArticleResult represents an article's sales performance
type TopArticleResult struct {
	ArticleID    uuid.UUID
	ArticleName  string
	Barcode      string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// TopClientResult represents a client's spending data
type TopClientResult struct {
	ClientID      uuid.UUID
	ClientName    string
	TotalSpent    decimal.Decimal
	DocumentCount int64
}

// DailySalesResult represents sales totals for a single day
type DailySalesResult struct {
	Date     time.Time
	Revenue  decimal.Decimal
	Payments decimal.Decimal
}

// ReceivablesResult summarizes outstanding client balances
type ReceivablesResult struct {
	ClientID   uuid.UUID
	ClientName string
	TotalDue   decimal.Decimal
}

// SalesSummary aggregates a period of sales activity
type SalesSummary struct {
	TicketCount   int64
	InvoiceCount  int64
	Revenue       decimal.Decimal
	Collected     decimal.Decimal
	Outstanding   decimal.Decimal
	CashBalance   decimal.Decimal
	LowStockCount int64
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetSummary returns the dashboard headline numbers for a period
	GetSummary(ctx context.Context, start, end time.Time) (*SalesSummary, error)

	// GetTopArticles returns top selling articles by revenue
	GetTopArticles(ctx context.Context, start, end time.Time, limit int) ([]TopArticleResult, error)

	// GetTopClients returns top clients by amount spent
	GetTopClients(ctx context.Context, start, end time.Time, limit int) ([]TopClientResult, error)

	// GetDailySales returns per-day revenue and collected payments
	GetDailySales(ctx context.Context, start, end time.Time) ([]DailySalesResult, error)

	// GetReceivables returns clients with outstanding balances
	GetReceivables(ctx context.Context) ([]ReceivablesResult, error)
}
