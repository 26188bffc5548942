package spatial

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestBoundingBoxNormalize(t *testing.T) {
	b := NewBoundingBox(139.70, 35.70, 139.60, 35.60)
	want := BoundingBox{MinLon: 139.60, MinLat: 35.60, MaxLon: 139.70, MaxLat: 35.70}
	if b != want {
		t.Fatalf("expected %v, got %v", want, b)
	}

	lat, lon := b.Center()
	if math.Abs(lat-35.65) > 1e-12 || math.Abs(lon-139.65) > 1e-12 {
		t.Fatalf("unexpected center (%v, %v)", lat, lon)
	}
}

func TestAround(t *testing.T) {
	b := Around(Point{Lat: 35.6895, Lon: 139.6917}, 0.8)
	if math.Abs((b.MaxLon-b.MinLon)-1.6) > 1e-9 {
		t.Fatalf("expected width 1.6, got %v", b.MaxLon-b.MinLon)
	}
	if !b.Bound().Contains(orb.Point{139.6917, 35.6895}) {
		t.Fatalf("box %v does not contain its center", b)
	}
}

func TestValidateRejectsNaN(t *testing.T) {
	b := BoundingBox{MinLon: math.NaN(), MinLat: 35, MaxLon: 140, MaxLat: 36}
	if err := b.Validate(); !errors.Is(err, ErrProjection) {
		t.Fatalf("expected ErrProjection, got %v", err)
	}
}

func TestPlanarBoundsExpand(t *testing.T) {
	p := PlanarBounds{MinX: 10, MinY: 40, MaxX: 0, MaxY: 20}.Normalize().Expand(1000)
	if p.Width() != 2010 || p.Height() != 2020 {
		t.Fatalf("unexpected size %vx%v", p.Width(), p.Height())
	}
}

func TestHaversineDistance(t *testing.T) {
	// One degree of latitude is roughly 111.2 km on the mean sphere.
	d := HaversineDistance(35, 139, 36, 139)
	if math.Abs(d-111195) > 50 {
		t.Fatalf("unexpected distance %v", d)
	}

	edges := RingEdgeLengths([]orb.Point{{139, 35}, {139, 36}, {139, 35}})
	if len(edges) != 2 || math.Abs(edges[0]-edges[1]) > 1e-6 {
		t.Fatalf("unexpected edges %v", edges)
	}
}
