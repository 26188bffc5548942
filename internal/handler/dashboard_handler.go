package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/wildlife-bi-go/internal/models"
	"github.com/jengzang/wildlife-bi-go/internal/service"
	"github.com/jengzang/wildlife-bi-go/pkg/response"
)

// DashboardHandler handles HTTP requests for the dashboard figure
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var filter models.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.service.Render(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to render dashboard", err)
		return
	}

	response.Success(c, result)
}
