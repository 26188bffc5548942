package mesh

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

var tokyoBox = spatial.BoundingBox{MinLon: 139.60, MinLat: 35.60, MaxLon: 139.70, MaxLat: 35.70}

func mustBuild(t *testing.T, bbox spatial.BoundingBox, cellKm, padKm float64) *GridMesh {
	t.Helper()
	m, err := BuildMesh(bbox, cellKm, padKm)
	if err != nil {
		t.Fatalf("BuildMesh(%v, %v, %v) failed: %v", bbox, cellKm, padKm, err)
	}
	return m
}

func TestTileCountIsHalfOpen(t *testing.T) {
	cases := []struct {
		min, max, step float64
		want           float64
	}{
		{0, 2000, 1000, 2},
		{0, 2000.5, 1000, 3},
		{0, 999.9, 1000, 1},
		{0, 0, 1000, 0},
		{5, 1, 1000, 0},
	}
	for _, tc := range cases {
		if got := tileCount(tc.min, tc.max, tc.step); got != tc.want {
			t.Fatalf("tileCount(%v, %v, %v) = %v, want %v", tc.min, tc.max, tc.step, got, tc.want)
		}
	}
}

func TestIDsAreDenseRowMajor(t *testing.T) {
	m := mustBuild(t, tokyoBox, 1, 0)

	if m.Len() == 0 {
		t.Fatal("expected a non-empty mesh")
	}
	if m.Len() != m.Rows*m.Cols {
		t.Fatalf("expected %d cells, got %d", m.Rows*m.Cols, m.Len())
	}
	wantCols := int(math.Ceil(m.PlanarBounds.Width() / 1000))
	wantRows := int(math.Ceil(m.PlanarBounds.Height() / 1000))
	if m.Cols != wantCols || m.Rows != wantRows {
		t.Fatalf("expected %dx%d grid, got %dx%d", wantRows, wantCols, m.Rows, m.Cols)
	}

	for i, c := range m.Cells {
		if c.ID != i {
			t.Fatalf("cell %d has id %d", i, c.ID)
		}
		if c.Row*m.Cols+c.Col != c.ID {
			t.Fatalf("cell %d at row %d col %d breaks scan order", c.ID, c.Row, c.Col)
		}
		if c.Polygon[0] != c.Polygon[4] {
			t.Fatalf("cell %d ring is not closed", c.ID)
		}
	}
}

func TestCellsAreTrueSquares(t *testing.T) {
	for _, km := range []float64{1, 0.5, 2.5} {
		m := mustBuild(t, tokyoBox, km, 0.3)
		pair, err := spatial.NewTransformPair(m.CRS)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		step := km * 1000
		const tol = 0.05 // meters
		for _, c := range m.Cells {
			var planar [5][2]float64
			for i, p := range c.Polygon {
				x, y, err := pair.Forward(p.Lon(), p.Lat())
				if err != nil {
					t.Fatalf("forward failed: %v", err)
				}
				planar[i] = [2]float64{x, y}
			}

			wantX := m.PlanarBounds.MinX + float64(c.Col)*step
			wantY := m.PlanarBounds.MinY + float64(c.Row)*step
			if math.Abs(planar[0][0]-wantX) > tol || math.Abs(planar[0][1]-wantY) > tol {
				t.Fatalf("cell %d origin (%v, %v), want (%v, %v)", c.ID, planar[0][0], planar[0][1], wantX, wantY)
			}
			for i := 1; i < 5; i++ {
				side := math.Hypot(planar[i][0]-planar[i-1][0], planar[i][1]-planar[i-1][1])
				if math.Abs(side-step) > tol {
					t.Fatalf("cell %d edge %d is %v m, want %v", c.ID, i, side, step)
				}
			}
		}
	}
}

func TestCentroidIsDiagonalMidpoint(t *testing.T) {
	m := mustBuild(t, tokyoBox, 1, 0)
	pair, err := spatial.NewTransformPair(m.CRS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := m.Cells[len(m.Cells)/2]
	x, y, err := pair.Forward(c.Centroid.Lon, c.Centroid.Lat)
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}
	wantX := m.PlanarBounds.MinX + (float64(c.Col)+0.5)*1000
	wantY := m.PlanarBounds.MinY + (float64(c.Row)+0.5)*1000
	if math.Abs(x-wantX) > 0.05 || math.Abs(y-wantY) > 0.05 {
		t.Fatalf("centroid at (%v, %v), want (%v, %v)", x, y, wantX, wantY)
	}
}

func TestPaddingGrowsPlanarBox(t *testing.T) {
	plain := mustBuild(t, tokyoBox, 1, 0)
	padded := mustBuild(t, tokyoBox, 1, 1)

	if padded.Len() <= plain.Len() {
		t.Fatalf("expected padded mesh to have more cells: %d vs %d", padded.Len(), plain.Len())
	}
	dw := padded.PlanarBounds.Width() - plain.PlanarBounds.Width()
	dh := padded.PlanarBounds.Height() - plain.PlanarBounds.Height()
	if math.Abs(dw-2000) > 1e-6 || math.Abs(dh-2000) > 1e-6 {
		t.Fatalf("expected planar box to grow by 2000 m, got %v x %v", dw, dh)
	}
}

func TestClampedInputs(t *testing.T) {
	m := mustBuild(t, tokyoBox, 0.01, -5)
	if m.CellSizeM != 100 {
		t.Fatalf("expected cell size floor of 100 m, got %v", m.CellSizeM)
	}
	if m.PaddingM != 0 {
		t.Fatalf("expected negative padding to clamp to 0, got %v", m.PaddingM)
	}

	plain := mustBuild(t, tokyoBox, 0.1, 0)
	if m.PlanarBounds != plain.PlanarBounds {
		t.Fatalf("negative padding changed the box: %v vs %v", m.PlanarBounds, plain.PlanarBounds)
	}
}

func TestReversedCornersAndDeterminism(t *testing.T) {
	a := mustBuild(t, tokyoBox, 1, 0.5)
	b := mustBuild(t, tokyoBox, 1, 0.5)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different meshes")
	}

	reversed := spatial.BoundingBox{MinLon: 139.70, MinLat: 35.70, MaxLon: 139.60, MaxLat: 35.60}
	c := mustBuild(t, reversed, 1, 0.5)
	if !reflect.DeepEqual(a, c) {
		t.Fatal("reversed corners produced a different mesh")
	}
}

func TestBuildMeshErrors(t *testing.T) {
	_, err := BuildMesh(spatial.BoundingBox{MinLon: math.NaN(), MinLat: 35, MaxLon: 140, MaxLat: 36}, 1, 0)
	if !errors.Is(err, spatial.ErrProjection) {
		t.Fatalf("expected ErrProjection, got %v", err)
	}

	_, err = BuildMesh(spatial.BoundingBox{MinLon: 179.5, MinLat: 10, MaxLon: 180.5, MaxLat: 11}, 1, 0)
	if !errors.Is(err, spatial.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}

	saved := MaxCells
	MaxCells = 10
	defer func() { MaxCells = saved }()
	_, err = BuildMesh(tokyoBox, 1, 0)
	if !errors.Is(err, ErrTooManyCells) {
		t.Fatalf("expected ErrTooManyCells, got %v", err)
	}
}

func TestHugeSizesHitTheCellLimit(t *testing.T) {
	// These overflow int when the counts are multiplied as ints.
	for _, tc := range []struct{ cellKm, padKm float64 }{
		{0.1, 2e8},
		{1, 1e300},
		{1, math.MaxFloat64},
	} {
		m, err := BuildMesh(tokyoBox, tc.cellKm, tc.padKm)
		if !errors.Is(err, ErrTooManyCells) {
			t.Fatalf("BuildMesh(%v, %v): expected ErrTooManyCells, got %v (mesh %v)", tc.cellKm, tc.padKm, err, m != nil)
		}
	}

	for _, tc := range []struct{ cellKm, padKm float64 }{
		{1, math.Inf(1)},
		{1, math.Inf(-1)},
		{math.Inf(1), 0},
	} {
		if _, err := BuildMesh(tokyoBox, tc.cellKm, tc.padKm); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("BuildMesh(%v, %v): expected ErrInvalidSize, got %v", tc.cellKm, tc.padKm, err)
		}
	}
}

func TestDegenerateBoxIsEmpty(t *testing.T) {
	point := spatial.BoundingBox{MinLon: 139.65, MinLat: 35.65, MaxLon: 139.65, MaxLat: 35.65}
	m := mustBuild(t, point, 1, 0)
	if m.Len() != 0 {
		t.Fatalf("expected empty mesh, got %d cells", m.Len())
	}

	m = mustBuild(t, point, 1, 1)
	if m.Rows < 2 || m.Cols < 2 {
		t.Fatalf("expected padding to open up a grid around a point, got %dx%d", m.Rows, m.Cols)
	}
}

func TestFeatureCollection(t *testing.T) {
	m := mustBuild(t, tokyoBox, 2, 0)
	fc := m.FeatureCollection()
	if len(fc.Features) != m.Len() {
		t.Fatalf("expected %d features, got %d", m.Len(), len(fc.Features))
	}
	for i, f := range fc.Features {
		if f.ID != i || f.Properties["id"] != i {
			t.Fatalf("feature %d has id %v / %v", i, f.ID, f.Properties["id"])
		}
	}

	raw, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(raw), `"type":"Polygon"`) {
		t.Fatalf("expected polygon geometries in %s", raw[:80])
	}

	centroids := m.Centroids()
	if len(centroids) != m.Len() || centroids[3].CellID != 3 || centroids[3].ID != 3 {
		t.Fatalf("unexpected centroid table %v", centroids[:4])
	}
}

func TestSummaryEdgeLength(t *testing.T) {
	m := mustBuild(t, tokyoBox, 1, 0)
	s := m.Summary()
	if s.Cells != m.Len() || s.Zone != 54 {
		t.Fatalf("unexpected summary %+v", s)
	}
	// Tokyo is ~1.3 degrees from the zone 54 central meridian, so UTM scale is
	// within a fraction of a percent of true ground distance.
	if math.Abs(s.MeanEdgeM-1000) > 5 {
		t.Fatalf("expected ~1000 m ground edges, got %v", s.MeanEdgeM)
	}
}

func TestParamsKey(t *testing.T) {
	a := NewParams(tokyoBox, 0.01, -1)
	b := NewParams(spatial.BoundingBox{MinLon: 139.70, MinLat: 35.70, MaxLon: 139.60, MaxLat: 35.60}, 0.1, 0)
	if a.Key() != b.Key() {
		t.Fatalf("equivalent params produced different keys: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == NewParams(tokyoBox, 1, 0).Key() {
		t.Fatal("different cell sizes share a key")
	}
}

func TestMeshWeight(t *testing.T) {
	cases := map[int64]int64{0: 1, 1: 1, 1000: 1, 1001: 2, int64(MaxCells): 1000}
	for cells, want := range cases {
		if got := WeightForCells(cells); got != want {
			t.Fatalf("WeightForCells(%d) = %d, want %d", cells, got, want)
		}
	}

	m := mustBuild(t, tokyoBox, 0.1, 0)
	if m.Size() != WeightForCells(int64(m.Len())) || m.Size() < 2 {
		t.Fatalf("expected a %d-cell mesh to weigh more than one unit, got %d", m.Len(), m.Size())
	}
}
