package service

import (
	"context"

	"github.com/jengzang/wildlife-bi-go/internal/filters"
	"github.com/jengzang/wildlife-bi-go/internal/heatmap"
	"github.com/jengzang/wildlife-bi-go/internal/models"
	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

// HeatmapService renders caller-supplied probability tables
type HeatmapService struct {
	meshes *MeshService
}

// NewHeatmapService creates a new heatmap service
func NewHeatmapService(meshes *MeshService) *HeatmapService {
	return &HeatmapService{meshes: meshes}
}

// RenderExternal builds (or reuses) the requested mesh and binds req.Probs to
// it. Unset styling falls back to the dashboard's look; a table without
// usable columns yields the basemap.
func (s *HeatmapService) RenderExternal(ctx context.Context, req models.HeatmapRequest) (*heatmap.Figure, error) {
	bbox := spatial.NewBoundingBox(req.Mesh.MinLon, req.Mesh.MinLat, req.Mesh.MaxLon, req.Mesh.MaxLat)
	m, _, err := s.meshes.Get(ctx, s.meshes.Params(bbox, req.Mesh.CellSizeKm, req.Mesh.PaddingKm))
	if err != nil {
		return nil, err
	}

	opts := heatmap.Options{
		Colorscale:   req.Colorscale,
		Opacity:      filters.DefaultOpacity,
		OutlineWidth: heatmap.DefaultOutlineWidth,
		MinProb:      req.MinProb,
		Label:        req.Label,
	}
	if req.Center != nil {
		opts.Center = *req.Center
	} else {
		lat, lon := bbox.Center()
		opts.Center = heatmap.LatLon{Lat: lat, Lon: lon}
	}
	if len(opts.Colorscale) == 0 {
		opts.Colorscale = heatmap.BluePurple()
	}
	if req.Opacity != nil {
		opts.Opacity = filters.ClampOpacity(*req.Opacity)
	}
	if req.OutlineWidth != nil {
		opts.OutlineWidth = *req.OutlineWidth
	}

	return heatmap.Render(m, req.Probs, opts), nil
}
