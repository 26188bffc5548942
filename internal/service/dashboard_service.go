package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jengzang/wildlife-bi-go/internal/cache"
	"github.com/jengzang/wildlife-bi-go/internal/filters"
	"github.com/jengzang/wildlife-bi-go/internal/heatmap"
	"github.com/jengzang/wildlife-bi-go/internal/mockdata"
	"github.com/jengzang/wildlife-bi-go/internal/models"
	"github.com/jengzang/wildlife-bi-go/internal/region"
)

const basemapKey = "basemap"

// DashboardService renders the dashboard figure for a filter selection
type DashboardService struct {
	lookup  region.Lookup
	meshes  *MeshService
	basemap *cache.Memo[*heatmap.Figure]
	now     func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(lookup region.Lookup, meshes *MeshService, basemap *cache.Memo[*heatmap.Figure]) *DashboardService {
	return &DashboardService{
		lookup:  lookup,
		meshes:  meshes,
		basemap: basemap,
		now:     time.Now,
	}
}

// AbsentWarning is shown when the selected species has no habitat record
func AbsentWarning(species string) string {
	return fmt.Sprintf("この地域では '%s' の生息情報がありません。別の組み合わせをお試しください。", species)
}

// Render normalizes the filter, resolves the region, and draws synthetic
// probabilities over a mesh of the region's bounding box. A species with no
// habitat record yields the basemap and a warning instead of an error.
func (s *DashboardService) Render(ctx context.Context, filter models.DashboardFilter) (*models.DashboardResponse, error) {
	f := filters.Normalize(filter, s.now())
	label := region.Label(f.Prefecture, f.HokkaidoPart)

	center, err := region.Center(f.Prefecture, f.HokkaidoPart)
	if err != nil {
		return nil, err
	}

	present, err := s.lookup.IsSpeciesPresent(ctx, f.Prefecture, f.HokkaidoPart, f.Species)
	if err != nil {
		return nil, fmt.Errorf("failed to check species presence: %w", err)
	}
	if !present {
		log.Printf("[DashboardService] %s absent in %s, serving basemap", f.Species, label)
		fig, err := s.Basemap()
		if err != nil {
			return nil, err
		}
		return &models.DashboardResponse{
			Filter:  f,
			Label:   label,
			Warning: AbsentWarning(f.Species),
			Figure:  fig,
		}, nil
	}

	bbox, err := s.lookup.BBox(ctx, f.Prefecture, f.HokkaidoPart)
	if err != nil {
		return nil, fmt.Errorf("failed to get region bbox: %w", err)
	}

	m, hit, err := s.meshes.Get(ctx, s.meshes.Params(bbox, f.CellSizeKm, f.PaddingKm))
	if err != nil {
		return nil, err
	}

	probs := mockdata.Synthesize(m.Centroids(), f.Species, f.BaseDate, f.TimeOfDay, f.HorizonDays)
	fig := heatmap.Render(m, probs, heatmap.Options{
		Center:       heatmap.LatLon{Lat: center.Lat, Lon: center.Lon},
		Colorscale:   heatmap.BluePurple(),
		Opacity:      *f.Opacity,
		OutlineWidth: heatmap.DefaultOutlineWidth,
		MinProb:      f.MinProb,
		Label:        label,
	})

	summary := m.Summary()
	return &models.DashboardResponse{
		Filter: f,
		Label:  label,
		Figure: fig,
		Mesh:   &summary,
		Cached: hit,
	}, nil
}

// Basemap returns the shared whole-Japan figure
func (s *DashboardService) Basemap() (*heatmap.Figure, error) {
	fig, _, err := s.basemap.Get(basemapKey, func() (*heatmap.Figure, error) {
		return heatmap.Basemap(), nil
	})
	return fig, err
}
