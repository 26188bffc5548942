package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
)

const (
	// ZoneWidthDeg is the longitudinal width of one UTM zone
	ZoneWidthDeg = 6.0
	// MinZone and MaxZone bound the UTM zone registry (EPSG 32601..32660)
	MinZone = 1
	MaxZone = 60

	utmNorthEPSGBase = 32600
	geographicDef    = "+proj=longlat +datum=WGS84 +no_defs"
)

// PlanarCRS is a northern-hemisphere UTM coordinate system on WGS84.
//
// Only northern zones are ever selected. Boxes south of the equator get
// false northings that are negative; they are not supported.
type PlanarCRS struct {
	Zone int    `json:"zone"`
	EPSG int    `json:"epsg"`
	Proj string `json:"proj"`
}

// ZoneForLongitude returns floor((lon + 180) / 6) + 1 without range checks.
func ZoneForLongitude(lon float64) int {
	return int(math.Floor((lon+180)/ZoneWidthDeg)) + 1
}

// SelectPlanarCRS picks the UTM zone whose band contains centerLon.
// Longitudes should be clamped to [-180, 180) beforehand; 180 itself
// falls into zone 61 and is rejected.
func SelectPlanarCRS(centerLon float64) (PlanarCRS, error) {
	if math.IsNaN(centerLon) || math.IsInf(centerLon, 0) {
		return PlanarCRS{}, &ConfigurationError{Longitude: centerLon, Reason: "longitude is not finite"}
	}

	zone := ZoneForLongitude(centerLon)
	if zone < MinZone || zone > MaxZone {
		return PlanarCRS{}, &ConfigurationError{
			Longitude: centerLon,
			Zone:      zone,
			Reason:    fmt.Sprintf("zone outside %d..%d", MinZone, MaxZone),
		}
	}

	return PlanarCRS{
		Zone: zone,
		EPSG: utmNorthEPSGBase + zone,
		Proj: fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", zone),
	}, nil
}

// CentralMeridian returns the central meridian of the zone in degrees.
func (c PlanarCRS) CentralMeridian() float64 {
	return float64(c.Zone)*ZoneWidthDeg - 183
}

// TransformPair converts between geographic degrees and planar meters of a
// single PlanarCRS. It holds no mutable state.
type TransformPair struct {
	CRS     PlanarCRS
	forward proj.Transformer
	inverse proj.Transformer
}

// NewTransformPair builds the WGS84 <-> UTM transforms for crs.
func NewTransformPair(crs PlanarCRS) (*TransformPair, error) {
	if crs.Zone < MinZone || crs.Zone > MaxZone {
		return nil, &ConfigurationError{Longitude: crs.CentralMeridian(), Zone: crs.Zone, Reason: "zone outside registry"}
	}

	geo, err := proj.Parse(geographicDef)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geographic definition: %w", err)
	}
	utm, err := proj.Parse(crs.Proj)
	if err != nil {
		return nil, &ConfigurationError{Longitude: crs.CentralMeridian(), Zone: crs.Zone, Reason: err.Error()}
	}

	forward, err := geo.NewTransform(utm)
	if err != nil {
		return nil, fmt.Errorf("failed to create forward transform for EPSG:%d: %w", crs.EPSG, err)
	}
	inverse, err := utm.NewTransform(geo)
	if err != nil {
		return nil, fmt.Errorf("failed to create inverse transform for EPSG:%d: %w", crs.EPSG, err)
	}

	return &TransformPair{CRS: crs, forward: forward, inverse: inverse}, nil
}

// TransformPairForBBox selects the CRS from the box center longitude and
// builds its transforms.
func TransformPairForBBox(b BoundingBox) (*TransformPair, error) {
	_, lon := b.Center()
	crs, err := SelectPlanarCRS(lon)
	if err != nil {
		return nil, err
	}
	return NewTransformPair(crs)
}

// Forward converts lon/lat degrees to planar x/y meters.
func (t *TransformPair) Forward(lon, lat float64) (float64, float64, error) {
	return apply("forward", t.forward, lon, lat)
}

// Inverse converts planar x/y meters to lon/lat degrees.
func (t *TransformPair) Inverse(x, y float64) (float64, float64, error) {
	return apply("inverse", t.inverse, x, y)
}

func apply(op string, fn proj.Transformer, a, b float64) (float64, float64, error) {
	if !finite(a) || !finite(b) {
		return 0, 0, &ProjectionError{Op: op, X: a, Y: b, Err: errors.New("non-finite input")}
	}
	x, y, err := fn(a, b)
	if err != nil {
		return 0, 0, &ProjectionError{Op: op, X: a, Y: b, Err: err}
	}
	if !finite(x) || !finite(y) {
		return 0, 0, &ProjectionError{Op: op, X: a, Y: b, Err: errors.New("non-finite output")}
	}
	return x, y, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
