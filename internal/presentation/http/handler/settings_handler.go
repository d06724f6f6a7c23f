package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cekapguard/agency-api/internal/application/service"
	"github.com/cekapguard/agency-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles agency configuration HTTP requests
type SettingsHandler struct {
	configService *service.ConfigService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(configService *service.ConfigService) *SettingsHandler {
	return &SettingsHandler{configService: configService}
}

// Get returns the agency configuration, seeding the default on first
// load
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.configService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", cfg)
}

// Update replaces the agency configuration. Owner only.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		CompanyName   string `json:"company_name" binding:"required"`
		Address       string `json:"address"`
		Contact       string `json:"contact"`
		Logo          string `json:"logo"`
		FooterNotes   string `json:"footer_notes"`
		InvoicePrefix string `json:"invoice_prefix" binding:"required"`
		ReceiptPrefix string `json:"receipt_prefix" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.configService.Update(c.Request.Context(), &service.UpdateConfigInput{
		CompanyName:   req.CompanyName,
		Address:       req.Address,
		Contact:       req.Contact,
		Logo:          req.Logo,
		FooterNotes:   req.FooterNotes,
		InvoicePrefix: req.InvoicePrefix,
		ReceiptPrefix: req.ReceiptPrefix,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", cfg)
}
