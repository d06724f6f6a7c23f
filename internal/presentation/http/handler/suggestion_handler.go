package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cekapguard/agency-api/internal/application/service"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/internal/presentation/http/dto/response"
)

// SuggestionHandler handles policy note suggestion HTTP requests
type SuggestionHandler struct {
	suggestionService *service.SuggestionService
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(suggestionService *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// SuggestNotes returns a suggested insurance-details note. The
// suggestion is best-effort and always succeeds with at least the
// fallback text.
func (h *SuggestionHandler) SuggestNotes(c *gin.Context) {
	var req struct {
		AssetType  enum.AssetType  `json:"asset_type" binding:"required"`
		PolicyType enum.PolicyType `json:"policy_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	note := h.suggestionService.PolicyNotes(c.Request.Context(), req.AssetType, req.PolicyType)

	response.OK(c, "Suggestion generated", gin.H{"note": note})
}
