package mesh

import (
	"fmt"

	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

// Params is the exact input tuple of BuildMesh after normalization and
// clamping. Two Params with equal Key values build identical meshes.
type Params struct {
	BBox       spatial.BoundingBox
	CellSizeKm float64
	PaddingKm  float64
}

// NewParams normalizes the box and clamps the sizes
func NewParams(bbox spatial.BoundingBox, cellSizeKm, paddingKm float64) Params {
	return Params{
		BBox:       bbox.Normalize(),
		CellSizeKm: ClampCellSizeKm(cellSizeKm),
		PaddingKm:  ClampPaddingKm(paddingKm),
	}
}

// Key renders the tuple with full float precision
func (p Params) Key() string {
	return fmt.Sprintf("mesh|%v|%v|%v|%v|%v|%v",
		p.BBox.MinLon, p.BBox.MinLat, p.BBox.MaxLon, p.BBox.MaxLat, p.CellSizeKm, p.PaddingKm)
}

// Build runs BuildMesh on the tuple
func (p Params) Build() (*GridMesh, error) {
	return BuildMesh(p.BBox, p.CellSizeKm, p.PaddingKm)
}
