package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and analytics HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func parsePeriod(c *gin.Context) service.DashboardPeriod {
	var period service.DashboardPeriod
	if start := parseDate(c, "start_date"); start != nil {
		period.Start = *start
	}
	if end := parseDate(c, "end_date"); end != nil {
		period.End = *end
	}
	return period
}

// Summary handles the sales summary widget
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context(), parsePeriod(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// TopArticles handles the best sellers widget
func (h *DashboardHandler) TopArticles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.dashboardService.GetTopArticles(c.Request.Context(), parsePeriod(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top articles retrieved successfully", results)
}

// TopClients handles the top clients widget
func (h *DashboardHandler) TopClients(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.dashboardService.GetTopClients(c.Request.Context(), parsePeriod(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top clients retrieved successfully", results)
}

// DailySales handles the sales-per-day chart
func (h *DashboardHandler) DailySales(c *gin.Context) {
	results, err := h.dashboardService.GetDailySales(c.Request.Context(), parsePeriod(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved successfully", results)
}

// Receivables handles the outstanding client balances widget
func (h *DashboardHandler) Receivables(c *gin.Context) {
	results, err := h.dashboardService.GetReceivables(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receivables retrieved successfully", results)
}

// LowStock handles the restock alert widget
func (h *DashboardHandler) LowStock(c *gin.Context) {
	articles, err := h.dashboardService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock articles retrieved successfully", articles)
}
