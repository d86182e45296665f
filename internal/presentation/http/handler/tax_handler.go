package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// TaxHandler handles tax HTTP requests
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

type taxRequest struct {
	Name     string          `json:"name" binding:"required"`
	Type     string          `json:"type" binding:"required"`
	Rate     decimal.Decimal `json:"rate"`
	IsActive *bool           `json:"is_active"`
}

// Create handles creating a tax
func (h *TaxHandler) Create(c *gin.Context) {
	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tax, err := h.taxService.CreateTax(c.Request.Context(), &service.TaxInput{
		Name:     req.Name,
		Type:     enum.TaxType(req.Type),
		Rate:     req.Rate,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax created successfully", tax)
}

// Get handles getting a single tax
func (h *TaxHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.taxService.GetTax(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax retrieved successfully", tax)
}

// List handles listing taxes
func (h *TaxHandler) List(c *gin.Context) {
	if c.Query("active") == "true" {
		taxes, err := h.taxService.GetActiveTaxes(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Taxes retrieved successfully", taxes)
		return
	}

	result, err := h.taxService.ListTaxes(c.Request.Context(), parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Taxes retrieved successfully", result)
}

// Update handles updating a tax
func (h *TaxHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tax, err := h.taxService.UpdateTax(c.Request.Context(), id, &service.TaxInput{
		Name:     req.Name,
		Type:     enum.TaxType(req.Type),
		Rate:     req.Rate,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax updated successfully", tax)
}

// Delete handles deactivating a tax
func (h *TaxHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	if err := h.taxService.DeleteTax(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax deleted successfully", nil)
}
