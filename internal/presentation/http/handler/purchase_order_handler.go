package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// PurchaseOrderHandler handles supplier order HTTP requests
type PurchaseOrderHandler struct {
	purchaseOrderService *service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(purchaseOrderService *service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseOrderService: purchaseOrderService}
}

type purchaseOrderRequest struct {
	SupplierID uuid.UUID `json:"supplier_id" binding:"required"`
	Items      []struct {
		ArticleID uuid.UUID        `json:"article_id" binding:"required"`
		Quantity  int64            `json:"quantity" binding:"required,min=1"`
		UnitCost  *decimal.Decimal `json:"unit_cost"`
	} `json:"items" binding:"required,min=1,dive"`
	TaxIDs    []uuid.UUID `json:"tax_ids"`
	OrderDate *time.Time  `json:"order_date"`
	Notes     *string     `json:"notes"`
}

func (r *purchaseOrderRequest) toInput(userID uuid.UUID) *service.PurchaseOrderInput {
	items := make([]service.PurchaseOrderLineInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.PurchaseOrderLineInput{
			ArticleID: item.ArticleID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}
	return &service.PurchaseOrderInput{
		UserID:     userID,
		SupplierID: r.SupplierID,
		Items:      items,
		TaxIDs:     r.TaxIDs,
		OrderDate:  r.OrderDate,
		Notes:      r.Notes,
	}
}

// Create handles creating a draft purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req purchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.purchaseOrderService.CreatePurchaseOrder(c.Request.Context(), req.toInput(*userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", order)
}

// Get handles getting a single purchase order
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.purchaseOrderService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", order)
}

// List handles listing purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	params := &repository.PurchaseOrderFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SupplierID: parseUUIDQuery(c, "supplier_id"),
		StartDate:  parseDate(c, "start_date"),
		EndDate:    parseDate(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if status := c.Query("status"); status != "" {
		if v, err := strconv.Atoi(status); err == nil {
			s := enum.PurchaseOrderStatus(v)
			params.Status = &s
		}
	}

	result, err := h.purchaseOrderService.ListPurchaseOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// Update handles replacing the lines of a draft purchase order
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req purchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.purchaseOrderService.UpdatePurchaseOrder(c.Request.Context(), id, req.toInput(*userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order updated successfully", order)
}

// Validate handles confirming a draft order with the supplier
func (h *PurchaseOrderHandler) Validate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.purchaseOrderService.ValidatePurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order validated successfully", order)
}

// Receive handles marking goods as received and restocking
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.purchaseOrderService.ReceivePurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order received successfully", order)
}

// Cancel handles cancelling a purchase order
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.purchaseOrderService.CancelPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order cancelled successfully", order)
}
