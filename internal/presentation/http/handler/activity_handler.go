package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cekapguard/agency-api/internal/application/service"
	"github.com/cekapguard/agency-api/internal/presentation/http/dto/response"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// ActivityHandler handles audit log HTTP requests
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// List handles listing audit entries, newest first
func (h *ActivityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.activityService.ListLogs(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Activity logs retrieved successfully", result)
}
