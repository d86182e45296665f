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

// PaymentHandler handles payment ledger HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record handles recording a payment against a document
func (h *PaymentHandler) Record(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		DocumentKind string          `json:"document_kind" binding:"required"`
		DocumentID   uuid.UUID       `json:"document_id" binding:"required"`
		Method       string          `json:"method" binding:"required"`
		Amount       decimal.Decimal `json:"amount" binding:"required"`
		BankID       *uuid.UUID      `json:"bank_id"`
		CheckNumber  *string         `json:"check_number"`
		PaidAt       *time.Time      `json:"paid_at"`
		Notes        *string         `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		DocumentKind: enum.DocumentKind(req.DocumentKind),
		DocumentID:   req.DocumentID,
		UserID:       *userID,
		Method:       enum.PaymentMethod(req.Method),
		Amount:       req.Amount,
		BankID:       req.BankID,
		CheckNumber:  req.CheckNumber,
		PaidAt:       req.PaidAt,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	params := &repository.PaymentFilterParams{
		Pagination: parsePagination(c),
		BankID:     parseUUIDQuery(c, "bank_id"),
		UserID:     parseUUIDQuery(c, "user_id"),
		StartDate:  parseDate(c, "start_date"),
		EndDate:    parseDate(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if kind := c.Query("document_kind"); kind != "" {
		k := enum.DocumentKind(kind)
		params.DocumentKind = &k
	}
	if method := c.Query("method"); method != "" {
		m := enum.PaymentMethod(method)
		params.Method = &m
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// ListForDocument handles listing the payments of one document
func (h *PaymentHandler) ListForDocument(c *gin.Context) {
	kind := enum.DocumentKind(c.Param("kind"))
	if !kind.IsValid() {
		response.BadRequest(c, "Unknown document kind")
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	payments, err := h.paymentService.ListDocumentPayments(c.Request.Context(), kind, documentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}
