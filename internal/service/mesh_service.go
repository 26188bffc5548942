package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jengzang/wildlife-bi-go/internal/cache"
	"github.com/jengzang/wildlife-bi-go/internal/mesh"
	"github.com/jengzang/wildlife-bi-go/internal/models"
	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

// MeshDefaults are applied when a request leaves the sizes unset
type MeshDefaults struct {
	CellSizeKm float64
	PaddingKm  float64
}

// MeshService builds grid meshes through a shared memo table
type MeshService struct {
	cache    *cache.Memo[*mesh.GridMesh]
	defaults MeshDefaults
}

// NewMeshService creates a new mesh service
func NewMeshService(c *cache.Memo[*mesh.GridMesh], defaults MeshDefaults) *MeshService {
	if defaults.CellSizeKm <= 0 {
		defaults.CellSizeKm = mesh.DefaultCellSizeKm
	}
	return &MeshService{cache: c, defaults: defaults}
}

// Params resolves request sizes against the defaults
func (s *MeshService) Params(bbox spatial.BoundingBox, cellSizeKm float64, paddingKm *float64) mesh.Params {
	if cellSizeKm == 0 {
		cellSizeKm = s.defaults.CellSizeKm
	}
	padding := s.defaults.PaddingKm
	if paddingKm != nil {
		padding = *paddingKm
	}
	return mesh.NewParams(bbox, cellSizeKm, padding)
}

// Get returns the mesh for p, building it on a miss. The returned mesh is
// shared and must not be modified.
func (s *MeshService) Get(ctx context.Context, p mesh.Params) (*mesh.GridMesh, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m, hit, err := s.cache.Get(cache.Key(p.Key()), func() (*mesh.GridMesh, error) {
		start := time.Now()
		m, err := p.Build()
		if err != nil {
			return nil, err
		}
		log.Printf("[MeshService] Built %dx%d mesh in zone %d (%d cells, %v)",
			m.Rows, m.Cols, m.CRS.Zone, m.Len(), time.Since(start))
		return m, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to build mesh: %w", err)
	}
	return m, hit, nil
}

// Build serves GET /api/v1/mesh
func (s *MeshService) Build(ctx context.Context, f models.MeshFilter) (*models.MeshResponse, error) {
	bbox := spatial.NewBoundingBox(f.MinLon, f.MinLat, f.MaxLon, f.MaxLat)
	m, hit, err := s.Get(ctx, s.Params(bbox, f.CellSizeKm, f.PaddingKm))
	if err != nil {
		return nil, err
	}

	resp := &models.MeshResponse{
		Summary: m.Summary(),
		GeoJSON: m.FeatureCollection(),
		Cached:  hit,
	}
	if f.Centroids {
		resp.Centroids = m.Centroids()
	}
	if f.Points {
		resp.Points = m.CentroidFeatures()
	}
	return resp, nil
}

// CacheStats reports mesh cache usage
func (s *MeshService) CacheStats() cache.Stats {
	return s.cache.Stats()
}
