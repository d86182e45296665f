package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles Excel export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) sendWorkbook(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// reportPeriod defaults to the current month when no range is given
func reportPeriod(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now

	if parsed := parseDate(c, "start_date"); parsed != nil {
		start = *parsed
	}
	if parsed := parseDate(c, "end_date"); parsed != nil {
		end = *parsed
	}
	return start, end
}

// Inventory handles the stock valuation export
func (h *ReportHandler) Inventory(c *gin.Context) {
	data, err := h.reportService.ExportInventory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendWorkbook(c, "inventory", data)
}

// DailySales handles the sales-per-day export
func (h *ReportHandler) DailySales(c *gin.Context) {
	start, end := reportPeriod(c)

	data, err := h.reportService.ExportDailySales(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendWorkbook(c, "daily-sales", data)
}

// Receivables handles the outstanding balances export
func (h *ReportHandler) Receivables(c *gin.Context) {
	data, err := h.reportService.ExportReceivables(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendWorkbook(c, "receivables", data)
}

// Payments handles the payment journal export
func (h *ReportHandler) Payments(c *gin.Context) {
	start, end := reportPeriod(c)

	data, err := h.reportService.ExportPayments(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendWorkbook(c, "payments", data)
}
