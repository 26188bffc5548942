package spatial

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// RingEdgeLengths returns the ground length of every edge of a closed
// lon/lat ring, in meters
func RingEdgeLengths(ring []orb.Point) []float64 {
	if len(ring) < 2 {
		return nil
	}
	out := make([]float64, 0, len(ring)-1)
	for i := 1; i < len(ring); i++ {
		a, b := ring[i-1], ring[i]
		out = append(out, HaversineDistance(a.Lat(), a.Lon(), b.Lat(), b.Lon()))
	}
	return out
}

// EarthRadiusMeters is Earth's mean radius
const EarthRadiusMeters = 6371000.0
