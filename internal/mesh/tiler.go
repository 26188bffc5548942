package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/jengzang/wildlife-bi-go/internal/spatial"
	"github.com/paulmach/orb"
)

// MaxCells caps a single tiling so that an oversized request fails instead
// of exhausting memory.
var MaxCells = 1_000_000

// ErrTooManyCells is returned when a tiling would exceed MaxCells
var ErrTooManyCells = errors.New("mesh exceeds cell limit")

// ErrInvalidSize is returned for an infinite cell size or padding
var ErrInvalidSize = errors.New("cell size and padding must be finite")

// ClampCellSizeKm raises sizes below MinCellSizeKm to the floor
func ClampCellSizeKm(km float64) float64 {
	if math.IsNaN(km) || km < MinCellSizeKm {
		return MinCellSizeKm
	}
	return km
}

// ClampPaddingKm treats negative padding as zero
func ClampPaddingKm(km float64) float64 {
	if math.IsNaN(km) || km < 0 {
		return 0
	}
	return km
}

// BuildMesh tiles bbox into square cells of cellSizeKm, after growing the
// projected box by paddingKm on every side.
//
// Tiling is half-open: a tile is emitted for every start coordinate strictly
// below the padded maximum, and the last row/column is not clipped even when
// it reaches past the maximum. Ids follow row-major scan order from the
// minimum corner (rows over y outside, columns over x inside).
func BuildMesh(bbox spatial.BoundingBox, cellSizeKm, paddingKm float64) (*GridMesh, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	bbox = bbox.Normalize()

	pair, err := spatial.TransformPairForBBox(bbox)
	if err != nil {
		return nil, err
	}

	x0, y0, err := pair.Forward(bbox.MinLon, bbox.MinLat)
	if err != nil {
		return nil, fmt.Errorf("failed to project min corner: %w", err)
	}
	x1, y1, err := pair.Forward(bbox.MaxLon, bbox.MaxLat)
	if err != nil {
		return nil, fmt.Errorf("failed to project max corner: %w", err)
	}

	if math.IsInf(cellSizeKm, 0) || math.IsInf(paddingKm, 0) {
		return nil, fmt.Errorf("%w: cell size %v km, padding %v km", ErrInvalidSize, cellSizeKm, paddingKm)
	}

	step := ClampCellSizeKm(cellSizeKm) * 1000.0
	pad := ClampPaddingKm(paddingKm) * 1000.0
	bounds := spatial.PlanarBounds{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}.Normalize().Expand(pad)

	// Counts stay in float64 until they are known to fit the limit.
	fcols := tileCount(bounds.MinX, bounds.MaxX, step)
	frows := tileCount(bounds.MinY, bounds.MaxY, step)
	if n := frows * fcols; math.IsNaN(n) || n > float64(MaxCells) {
		return nil, fmt.Errorf("%w: %g x %g cells (limit %d)", ErrTooManyCells, frows, fcols, MaxCells)
	}
	rows, cols := int(frows), int(fcols)

	m := &GridMesh{
		BBox:         bbox,
		CellSizeM:    step,
		PaddingM:     pad,
		CRS:          pair.CRS,
		PlanarBounds: bounds,
		Rows:         rows,
		Cols:         cols,
		Cells:        make([]GridCell, 0, rows*cols),
	}

	for r := 0; r < rows; r++ {
		y := bounds.MinY + float64(r)*step
		for c := 0; c < cols; c++ {
			x := bounds.MinX + float64(c)*step
			cell, err := buildCell(pair, len(m.Cells), r, c, x, y, step)
			if err != nil {
				return nil, err
			}
			m.Cells = append(m.Cells, cell)
		}
	}

	return m, nil
}

// tileCount is the number of starts min + i*step that are < max.
func tileCount(min, max, step float64) float64 {
	if !(max > min) {
		return 0
	}
	return math.Ceil((max - min) / step)
}

func buildCell(pair *spatial.TransformPair, id, row, col int, x, y, step float64) (GridCell, error) {
	planar := [5][2]float64{
		{x, y},
		{x + step, y},
		{x + step, y + step},
		{x, y + step},
		{x, y},
	}

	cell := GridCell{ID: id, Row: row, Col: col}
	for i, p := range planar {
		lon, lat, err := pair.Inverse(p[0], p[1])
		if err != nil {
			return GridCell{}, fmt.Errorf("failed to unproject cell %d: %w", id, err)
		}
		cell.Polygon[i] = orb.Point{lon, lat}
	}

	cx := (planar[0][0] + planar[2][0]) / 2.0
	cy := (planar[0][1] + planar[2][1]) / 2.0
	lon, lat, err := pair.Inverse(cx, cy)
	if err != nil {
		return GridCell{}, fmt.Errorf("failed to unproject centroid of cell %d: %w", id, err)
	}
	cell.Centroid = spatial.Point{Lat: lat, Lon: lon}

	return cell, nil
}
