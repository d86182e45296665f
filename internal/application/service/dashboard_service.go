package service

import (
	"context"
	"time"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
)

// DashboardService aggregates the back-office dashboard views
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	articleRepo   repository.ArticleRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, articleRepo repository.ArticleRepository) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		articleRepo:   articleRepo,
	}
}

// DashboardPeriod bounds a dashboard query. A zero Start defaults to the
// beginning of the current month, a zero End to now.
type DashboardPeriod struct {
	Start time.Time
	End   time.Time
}

func (p *DashboardPeriod) normalize() {
	now := time.Now()
	if p.End.IsZero() {
		p.End = now
	}
	if p.Start.IsZero() {
		p.Start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// GetSummary returns the dashboard headline numbers
func (s *DashboardService) GetSummary(ctx context.Context, period DashboardPeriod) (*repository.SalesSummary, error) {
	period.normalize()
	return s.analyticsRepo.GetSummary(ctx, period.Start, period.End)
}

// GetTopArticles returns the best selling articles for the period
func (s *DashboardService) GetTopArticles(ctx context.Context, period DashboardPeriod, limit int) ([]repository.TopArticleResult, error) {
	period.normalize()
	if limit <= 0 {
		limit = 10
	}
	return s.analyticsRepo.GetTopArticles(ctx, period.Start, period.End, limit)
}

// GetTopClients returns the biggest spenders for the period
func (s *DashboardService) GetTopClients(ctx context.Context, period DashboardPeriod, limit int) ([]repository.TopClientResult, error) {
	period.normalize()
	if limit <= 0 {
		limit = 10
	}
	return s.analyticsRepo.GetTopClients(ctx, period.Start, period.End, limit)
}

// GetDailySales returns per-day revenue and collections for the period
func (s *DashboardService) GetDailySales(ctx context.Context, period DashboardPeriod) ([]repository.DailySalesResult, error) {
	period.normalize()
	return s.analyticsRepo.GetDailySales(ctx, period.Start, period.End)
}

// GetReceivables returns clients with outstanding balances
func (s *DashboardService) GetReceivables(ctx context.Context) ([]repository.ReceivablesResult, error) {
	return s.analyticsRepo.GetReceivables(ctx)
}

// GetLowStock returns articles at or below their alert level
func (s *DashboardService) GetLowStock(ctx context.Context) ([]entity.Article, error) {
	return s.articleRepo.GetLowStock(ctx)
}
