// Package mesh tiles a geographic bounding box into a uniform ground-distance
// grid. Tiling happens in the box's UTM plane; polygons and centroids are
// projected back to WGS84 for rendering.
package mesh

import (
	"github.com/jengzang/wildlife-bi-go/internal/spatial"
	"github.com/paulmach/orb"
)

const (
	// MinCellSizeKm is the floor applied to requested cell sizes
	MinCellSizeKm = 0.1
	// DefaultCellSizeKm gives true 1 km squares
	DefaultCellSizeKm = 1.0
)

// GridCell is one square tile. Polygon is a closed ring of 5 lon/lat points
// (BL, BR, TR, TL, BL in the planar frame).
type GridCell struct {
	ID       int           `json:"id"`
	Row      int           `json:"row"`
	Col      int           `json:"col"`
	Polygon  [5]orb.Point  `json:"polygon"`
	Centroid spatial.Point `json:"centroid"`
}

// Ring returns the polygon as an orb.Ring
func (c GridCell) Ring() orb.Ring {
	ring := make(orb.Ring, len(c.Polygon))
	copy(ring, c.Polygon[:])
	return ring
}

// GridMesh is every cell for one (bbox, cell size, padding) combination.
// Cells[i].ID == i. A mesh is never modified after BuildMesh returns it.
type GridMesh struct {
	BBox         spatial.BoundingBox  `json:"bbox"`
	CellSizeM    float64              `json:"cell_size_m"`
	PaddingM     float64              `json:"padding_m"`
	CRS          spatial.PlanarCRS    `json:"crs"`
	PlanarBounds spatial.PlanarBounds `json:"planar_bounds"`
	Rows         int                  `json:"rows"`
	Cols         int                  `json:"cols"`
	Cells        []GridCell           `json:"cells"`
}

// Len returns the number of cells
func (m *GridMesh) Len() int {
	return len(m.Cells)
}

// CellsPerWeight is how many cells make one unit of cache weight. ccache
// prunes at least as many items as the budget overshoot, so fine-grained
// weights would empty the cache on every eviction.
const CellsPerWeight = 1000

// WeightForCells converts a cell count into cache weight, rounding up
func WeightForCells(cells int64) int64 {
	if cells <= 0 {
		return 1
	}
	return (cells + CellsPerWeight - 1) / CellsPerWeight
}

// Size implements ccache.Sized so that the mesh memo is bounded by cells
// held rather than by entry count.
func (m *GridMesh) Size() int64 {
	return WeightForCells(int64(len(m.Cells)))
}

// Cell looks up a cell by id
func (m *GridMesh) Cell(id int) (GridCell, bool) {
	if id < 0 || id >= len(m.Cells) {
		return GridCell{}, false
	}
	return m.Cells[id], true
}

// Centroid is one row of the centroid table. CellID mirrors ID so that
// probability sources keyed by either column can join on it.
type Centroid struct {
	ID     int     `json:"id"`
	CellID int     `json:"cell_id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Centroids returns the id -> centroid table in id order
func (m *GridMesh) Centroids() []Centroid {
	out := make([]Centroid, len(m.Cells))
	for i, c := range m.Cells {
		out[i] = Centroid{ID: c.ID, CellID: c.ID, Lat: c.Centroid.Lat, Lon: c.Centroid.Lon}
	}
	return out
}

// Summary describes a mesh without its geometry
type Summary struct {
	Cells         int        `json:"cells"`
	Rows          int        `json:"rows"`
	Cols          int        `json:"cols"`
	CellSizeM     float64    `json:"cell_size_m"`
	Zone          int        `json:"zone"`
	EPSG          int        `json:"epsg"`
	MeanEdgeM     float64    `json:"mean_edge_m"`
	PlanarWidthM  float64    `json:"planar_width_m"`
	PlanarHeightM float64    `json:"planar_height_m"`
	GeoBounds     [4]float64 `json:"geo_bounds"`
}

// Summary computes cell counts and the mean great-circle edge length. The
// edge length lands close to CellSizeM because UTM scale error is small near
// the central meridian.
func (m *GridMesh) Summary() Summary {
	s := Summary{
		Cells:         len(m.Cells),
		Rows:          m.Rows,
		Cols:          m.Cols,
		CellSizeM:     m.CellSizeM,
		Zone:          m.CRS.Zone,
		EPSG:          m.CRS.EPSG,
		PlanarWidthM:  m.PlanarBounds.Width(),
		PlanarHeightM: m.PlanarBounds.Height(),
	}
	if len(m.Cells) == 0 {
		return s
	}

	var sum float64
	var n int
	bound := orb.Bound{Min: m.Cells[0].Polygon[0], Max: m.Cells[0].Polygon[0]}
	for _, c := range m.Cells {
		for _, e := range spatial.RingEdgeLengths(c.Polygon[:]) {
			sum += e
			n++
		}
		bound = bound.Union(c.Ring().Bound())
	}
	s.MeanEdgeM = sum / float64(n)
	s.GeoBounds = [4]float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()}
	return s
}
