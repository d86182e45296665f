package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles company settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles getting the company settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles updating the company settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		Name          *string `json:"name"`
		Address       *string `json:"address"`
		Phone         *string `json:"phone"`
		Email         *string `json:"email"`
		TaxNumber     *string `json:"tax_number"`
		Currency      *string `json:"currency"`
		Logo          *string `json:"logo"`
		ReceiptFooter *string `json:"receipt_footer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.SettingsInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		TaxNumber:     req.TaxNumber,
		Currency:      req.Currency,
		Logo:          req.Logo,
		ReceiptFooter: req.ReceiptFooter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
