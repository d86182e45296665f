package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// lineItemRequest is the JSON shape of a document line shared by tickets,
// quotes and invoices.
type lineItemRequest struct {
	ArticleID     uuid.UUID        `json:"article_id" binding:"required"`
	Quantity      int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	DiscountType  string           `json:"discount_type"`
	DiscountValue decimal.Decimal  `json:"discount_value"`
}

func lineItemInputs(items []lineItemRequest) []service.LineItemInput {
	inputs := make([]service.LineItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.LineItemInput{
			ArticleID:     item.ArticleID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			DiscountType:  enum.DiscountType(item.DiscountType),
			DiscountValue: item.DiscountValue,
		})
	}
	return inputs
}

// TicketHandler handles sales ticket HTTP requests
type TicketHandler struct {
	ticketService  *service.TicketService
	printerService *service.PrinterService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService, printerService *service.PrinterService) *TicketHandler {
	return &TicketHandler{
		ticketService:  ticketService,
		printerService: printerService,
	}
}

// Create handles a counter sale
func (h *TicketHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ClientID *uuid.UUID        `json:"client_id"`
		Items    []lineItemRequest `json:"items" binding:"required,min=1,dive"`
		TaxIDs   []uuid.UUID       `json:"tax_ids"`
		Notes    *string           `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), &service.CreateTicketInput{
		UserID:   *userID,
		ClientID: req.ClientID,
		Items:    lineItemInputs(req.Items),
		TaxIDs:   req.TaxIDs,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ticket created successfully", ticket)
}

// Get handles getting a single ticket
func (h *TicketHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket retrieved successfully", ticket)
}

// List handles listing tickets (page-based or cursor-based)
func (h *TicketHandler) List(c *gin.Context) {
	if c.Query("cursor") != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	params := &repository.TicketFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		ClientID:   parseUUIDQuery(c, "client_id"),
		UserID:     parseUUIDQuery(c, "user_id"),
		StartDate:  parseDate(c, "start_date"),
		EndDate:    parseDate(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if status := c.Query("status"); status != "" {
		if v, err := strconv.Atoi(status); err == nil {
			s := enum.TicketStatus(v)
			params.Status = &s
		}
	}

	result, err := h.ticketService.ListTickets(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Tickets retrieved successfully", result)
}

func (h *TicketHandler) listWithCursor(c *gin.Context) {
	params := &repository.TicketCursorFilterParams{
		Cursor:   parseCursor(c),
		Search:   c.Query("search"),
		ClientID: parseUUIDQuery(c, "client_id"),
	}
	if status := c.Query("status"); status != "" {
		if v, err := strconv.Atoi(status); err == nil {
			s := enum.TicketStatus(v)
			params.Status = &s
		}
	}

	result, err := h.ticketService.ListTicketsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tickets retrieved successfully", result)
}

// Cancel handles cancelling a ticket and restoring its stock
func (h *TicketHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.CancelTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket cancelled successfully", ticket)
}

// TransferToInvoice handles converting a ticket into an invoice
func (h *TicketHandler) TransferToInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	invoice, err := h.ticketService.TransferToInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ticket transferred to invoice successfully", invoice)
}

// Print handles printing the ticket receipt
func (h *TicketHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	if err := h.printerService.PrintTicket(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket sent to printer", nil)
}
