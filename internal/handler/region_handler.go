package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/wildlife-bi-go/internal/filters"
	"github.com/jengzang/wildlife-bi-go/internal/models"
	"github.com/jengzang/wildlife-bi-go/internal/region"
	"github.com/jengzang/wildlife-bi-go/pkg/response"
)

// RegionHandler handles HTTP requests for selectable options and region centers
type RegionHandler struct {
	lookup region.Lookup
	now    func() time.Time
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(lookup region.Lookup) *RegionHandler {
	return &RegionHandler{lookup: lookup, now: time.Now}
}

// GetOptions handles GET /api/v1/options
func (h *RegionHandler) GetOptions(c *gin.Context) {
	response.Success(c, models.OptionsResponse{
		Prefectures:       region.Prefectures,
		DefaultPrefecture: region.DefaultPrefecture,
		HokkaidoParts:     region.HokkaidoParts,
		DefaultPart:       region.DefaultHokkaidoPart,
		Species:           region.Species,
		DefaultSpecies:    region.DefaultSpecies,
		BaseDates:         filters.ListBaseDates(h.now(), filters.MaxBaseDates),
		TimesOfDay:        filters.TimesOfDay,
		HorizonRange:      [2]int{filters.MinHorizon, filters.MaxHorizon},
		DefaultHorizon:    filters.DefaultHorizon,
		OpacityRange:      [2]float64{filters.MinOpacity, filters.MaxOpacity},
		MinProbStep:       filters.MinProbStep,
	})
}

// GetCenter handles GET /api/v1/regions/center
func (h *RegionHandler) GetCenter(c *gin.Context) {
	var filter models.RegionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	part := filter.HokkaidoPart
	if filter.Prefecture != region.Hokkaido {
		part = ""
	}

	center, err := region.Center(filter.Prefecture, part)
	if err != nil {
		respondError(c, "Failed to resolve region", err)
		return
	}
	bbox, err := h.lookup.BBox(c.Request.Context(), filter.Prefecture, part)
	if err != nil {
		respondError(c, "Failed to resolve region bbox", err)
		return
	}

	response.Success(c, models.RegionCenterResponse{
		Label: region.Label(filter.Prefecture, part),
		Lat:   center.Lat,
		Lon:   center.Lon,
		BBox:  bbox.Array(),
	})
}
