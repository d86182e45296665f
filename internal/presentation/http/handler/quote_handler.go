package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// QuoteHandler handles quote HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

type quoteRequest struct {
	ClientID   uuid.UUID         `json:"client_id" binding:"required"`
	Items      []lineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxIDs     []uuid.UUID       `json:"tax_ids"`
	ValidUntil *time.Time        `json:"valid_until"`
	Notes      *string           `json:"notes"`
}

// Create handles creating a quote
func (h *QuoteHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.QuoteInput{
		UserID:     *userID,
		ClientID:   req.ClientID,
		Items:      lineItemInputs(req.Items),
		TaxIDs:     req.TaxIDs,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Get handles getting a single quote
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// List handles listing quotes
func (h *QuoteHandler) List(c *gin.Context) {
	params := &repository.QuoteFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		ClientID:   parseUUIDQuery(c, "client_id"),
		StartDate:  parseDate(c, "start_date"),
		EndDate:    parseDate(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if status := c.Query("status"); status != "" {
		if v, err := strconv.Atoi(status); err == nil {
			s := enum.QuoteStatus(v)
			params.Status = &s
		}
	}
	if invoiced := c.Query("invoiced"); invoiced != "" {
		v := invoiced == "true"
		params.Invoiced = &v
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Update handles replacing the lines of an editable quote
func (h *QuoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), id, &service.QuoteInput{
		UserID:     *userID,
		ClientID:   req.ClientID,
		Items:      lineItemInputs(req.Items),
		TaxIDs:     req.TaxIDs,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", quote)
}

// UpdateStatus handles moving a quote through its workflow
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req struct {
		Status enum.QuoteStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// Delete handles deleting a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote deleted successfully", nil)
}

// TransferToTicket handles converting a confirmed quote into a ticket
func (h *QuoteHandler) TransferToTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	ticket, err := h.quoteService.TransferToTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote transferred to ticket successfully", ticket)
}

// TransferToInvoice handles converting a confirmed quote into an invoice
func (h *QuoteHandler) TransferToInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	invoice, err := h.quoteService.TransferToInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote transferred to invoice successfully", invoice)
}
