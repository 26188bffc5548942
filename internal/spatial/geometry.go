package spatial

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is a WGS84 box in degrees
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// NewBoundingBox builds a normalized box from two arbitrary corners
func NewBoundingBox(minLon, minLat, maxLon, maxLat float64) BoundingBox {
	return BoundingBox{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat}.Normalize()
}

// Around returns the box center ± halfDeg on both axes
func Around(center Point, halfDeg float64) BoundingBox {
	return NewBoundingBox(center.Lon-halfDeg, center.Lat-halfDeg, center.Lon+halfDeg, center.Lat+halfDeg)
}

// Normalize swaps reversed corners so that Min <= Max on both axes
func (b BoundingBox) Normalize() BoundingBox {
	if b.MaxLon < b.MinLon {
		b.MinLon, b.MaxLon = b.MaxLon, b.MinLon
	}
	if b.MaxLat < b.MinLat {
		b.MinLat, b.MaxLat = b.MaxLat, b.MinLat
	}
	return b
}

// Validate reports non-finite coordinates as a ProjectionError
func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat} {
		if !finite(v) {
			return &ProjectionError{Op: "input", X: b.MinLon, Y: b.MinLat, Err: fmt.Errorf("bounding box %v is not finite", b)}
		}
	}
	return nil
}

// Center returns the box midpoint as (lat, lon)
func (b BoundingBox) Center() (float64, float64) {
	return (b.MinLat + b.MaxLat) / 2.0, (b.MinLon + b.MaxLon) / 2.0
}

// Bound converts the box to an orb.Bound
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// Array returns [min_lon, min_lat, max_lon, max_lat]
func (b BoundingBox) Array() [4]float64 {
	return [4]float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}

// PlanarBounds is an axis-aligned box in projected meters
type PlanarBounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Normalize swaps reversed edges per axis
func (p PlanarBounds) Normalize() PlanarBounds {
	if p.MaxX < p.MinX {
		p.MinX, p.MaxX = p.MaxX, p.MinX
	}
	if p.MaxY < p.MinY {
		p.MinY, p.MaxY = p.MaxY, p.MinY
	}
	return p
}

// Expand grows the box outward by d meters on all four sides
func (p PlanarBounds) Expand(d float64) PlanarBounds {
	return PlanarBounds{MinX: p.MinX - d, MinY: p.MinY - d, MaxX: p.MaxX + d, MaxY: p.MaxY + d}
}

// Width in meters
func (p PlanarBounds) Width() float64 { return p.MaxX - p.MinX }

// Height in meters
func (p PlanarBounds) Height() float64 { return p.MaxY - p.MinY }
