package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// BankHandler handles bank account HTTP requests
type BankHandler struct {
	bankService *service.BankService
}

// NewBankHandler creates a new bank handler
func NewBankHandler(bankService *service.BankService) *BankHandler {
	return &BankHandler{bankService: bankService}
}

type bankRequest struct {
	Name           string           `json:"name" binding:"required"`
	AccountHolder  *string          `json:"account_holder"`
	AccountNumber  *string          `json:"account_number"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
	IsActive       *bool            `json:"is_active"`
}

// Create handles creating a bank account
func (h *BankHandler) Create(c *gin.Context) {
	var req bankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), &service.BankInput{
		Name:           req.Name,
		AccountHolder:  req.AccountHolder,
		AccountNumber:  req.AccountNumber,
		InitialBalance: req.InitialBalance,
		IsActive:       req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bank created successfully", bank)
}

// Get handles getting a single bank
func (h *BankHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bank ID")
		return
	}

	bank, err := h.bankService.GetBank(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bank retrieved successfully", bank)
}

// List handles listing banks
func (h *BankHandler) List(c *gin.Context) {
	result, err := h.bankService.ListBanks(c.Request.Context(), parsePagination(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Banks retrieved successfully", result)
}

// Update handles updating a bank's descriptive fields
func (h *BankHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bank ID")
		return
	}

	var req bankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bank, err := h.bankService.UpdateBank(c.Request.Context(), id, &service.BankInput{
		Name:          req.Name,
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		IsActive:      req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bank updated successfully", bank)
}

// Delete handles deleting a bank
func (h *BankHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bank ID")
		return
	}

	if err := h.bankService.DeleteBank(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bank deleted successfully", nil)
}

// RecordTransaction handles recording a manual deposit or withdrawal
func (h *BankHandler) RecordTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bank ID")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Type   string          `json:"type" binding:"required"`
		Amount decimal.Decimal `json:"amount" binding:"required"`
		Label  string          `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	transaction, err := h.bankService.RecordTransaction(c.Request.Context(), &service.BankTransactionInput{
		BankID: id,
		UserID: *userID,
		Type:   enum.BankTransactionType(req.Type),
		Amount: req.Amount,
		Label:  req.Label,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction recorded successfully", transaction)
}

// ListTransactions handles listing a bank's transaction history
func (h *BankHandler) ListTransactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bank ID")
		return
	}

	params := &repository.BankTransactionFilterParams{
		Pagination: parsePagination(c),
		StartDate:  parseDate(c, "start_date"),
		EndDate:    parseDate(c, "end_date"),
	}
	if txType := c.Query("type"); txType != "" {
		t := enum.BankTransactionType(txType)
		params.Type = &t
	}

	result, err := h.bankService.ListTransactions(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}
