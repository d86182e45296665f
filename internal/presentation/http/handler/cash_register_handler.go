package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// CashRegisterHandler handles cash register HTTP requests
type CashRegisterHandler struct {
	cashRegisterService *service.CashRegisterService
}

// NewCashRegisterHandler creates a new cash register handler
func NewCashRegisterHandler(cashRegisterService *service.CashRegisterService) *CashRegisterHandler {
	return &CashRegisterHandler{cashRegisterService: cashRegisterService}
}

// RecordEntry handles recording a manual income or expense
func (h *CashRegisterHandler) RecordEntry(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Type      string          `json:"type" binding:"required"`
		Amount    decimal.Decimal `json:"amount" binding:"required"`
		Label     string          `json:"label" binding:"required"`
		EntryDate *time.Time      `json:"entry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.cashRegisterService.RecordEntry(c.Request.Context(), &service.CashEntryInput{
		UserID:    *userID,
		Type:      enum.CashEntryType(req.Type),
		Amount:    req.Amount,
		Label:     req.Label,
		EntryDate: req.EntryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Entry recorded successfully", entry)
}

// DeleteEntry handles deleting a manual entry
func (h *CashRegisterHandler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.cashRegisterService.DeleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Entry deleted successfully", nil)
}

// ListEntries handles listing register entries
func (h *CashRegisterHandler) ListEntries(c *gin.Context) {
	params := &repository.CashEntryFilterParams{
		Pagination: parsePagination(c),
		StartDate:  parseDate(c, "start_date"),
		EndDate:    parseDate(c, "end_date"),
	}
	if entryType := c.Query("type"); entryType != "" {
		t := enum.CashEntryType(entryType)
		params.Type = &t
	}

	result, err := h.cashRegisterService.ListEntries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Entries retrieved successfully", result)
}

// DailySummary handles the end-of-day register summary
func (h *CashRegisterHandler) DailySummary(c *gin.Context) {
	date := time.Now()
	if parsed := parseDate(c, "date"); parsed != nil {
		date = *parsed
	}

	summary, err := h.cashRegisterService.GetDailySummary(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily summary retrieved successfully", summary)
}
