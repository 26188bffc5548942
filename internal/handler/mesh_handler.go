package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/wildlife-bi-go/internal/models"
	"github.com/jengzang/wildlife-bi-go/internal/service"
	"github.com/jengzang/wildlife-bi-go/pkg/response"
)

// MeshHandler handles HTTP requests for grid meshes and heatmaps over them
type MeshHandler struct {
	meshes  *service.MeshService
	heatmap *service.HeatmapService
}

// NewMeshHandler creates a new mesh handler
func NewMeshHandler(meshes *service.MeshService, heatmap *service.HeatmapService) *MeshHandler {
	return &MeshHandler{meshes: meshes, heatmap: heatmap}
}

// GetMesh handles GET /api/v1/mesh
func (h *MeshHandler) GetMesh(c *gin.Context) {
	var filter models.MeshFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.meshes.Build(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to build mesh", err)
		return
	}

	response.Success(c, result)
}

// RenderHeatmap handles POST /api/v1/heatmap
func (h *MeshHandler) RenderHeatmap(c *gin.Context) {
	var req models.HeatmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	fig, err := h.heatmap.RenderExternal(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to render heatmap", err)
		return
	}

	response.Success(c, fig)
}

// GetCacheStats handles GET /api/v1/mesh/cache
func (h *MeshHandler) GetCacheStats(c *gin.Context) {
	response.Success(c, h.meshes.CacheStats())
}
