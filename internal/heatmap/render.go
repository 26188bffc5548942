package heatmap

import (
	"github.com/jengzang/wildlife-bi-go/internal/mesh"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultOutlineWidth is the cell outline stroke used by the dashboard
const DefaultOutlineWidth = 0.10

// Options carries caller-supplied styling. Values are applied verbatim.
type Options struct {
	Center       LatLon
	Colorscale   Colorscale
	Opacity      float64
	OutlineWidth float64
	MinProb      float64
	Label        string
}

// Basemap is the whole-Japan map with no heatmap layer
func Basemap() *Figure {
	return &Figure{
		Data: []Trace{{
			Type: TraceScatter,
			Lat:  []float64{JapanCenter.Lat},
			Lon:  []float64{JapanCenter.Lon},
		}},
		Layout: Layout{
			Mapbox: Mapbox{Style: MapStyle, Zoom: BasemapZoom, Center: JapanCenter},
			Height: BasemapHeight,
		},
	}
}

// Render draws probs over m as a choropleth.
//
// When probs lacks a usable id or prob column the basemap is returned
// instead. Rows below opts.MinProb are dropped, as are rows whose id is not a
// cell of m. The color domain is fixed to [0,1]; values outside it are passed
// through and saturate. Neither m nor probs is modified.
func Render(m *mesh.GridMesh, probs Table, opts Options) *Figure {
	rows, ok := AdaptProbabilities(probs)
	if !ok || m == nil {
		return Basemap()
	}

	kept := rows.Filter(opts.MinProb)
	locations := make([]int, 0, len(kept))
	z := make([]float64, 0, len(kept))
	fc := geojson.NewFeatureCollection()
	seen := make(map[int]bool, len(kept))
	for _, row := range kept {
		cell, ok := m.Cell(row.CellID)
		if !ok {
			continue
		}
		locations = append(locations, row.CellID)
		z = append(z, row.Prob)
		if !seen[cell.ID] {
			seen[cell.ID] = true
			fc.Append(cell.Feature())
		}
	}

	trace := Trace{
		Type:         TraceChoropleth,
		Name:         TraceName,
		GeoJSON:      fc,
		FeatureIDKey: mesh.FeatureIDKey,
		Locations:    locations,
		Z:            z,
		ZMin:         ptr(0.0),
		ZMax:         ptr(1.0),
		Colorscale:   opts.Colorscale,
		ShowScale:    ptr(true),
		Marker: &Marker{
			Line:    &Line{Width: opts.OutlineWidth},
			Opacity: ptr(opts.Opacity),
		},
	}

	return &Figure{
		Data: []Trace{trace},
		Layout: Layout{
			Mapbox:     Mapbox{Style: MapStyle, Zoom: HeatmapZoom, Center: opts.Center},
			UIRevision: UIRevision,
			Meta:       opts.Label,
		},
		Stats: summarize(z, len(rows)-len(z)),
	}
}

func summarize(z []float64, dropped int) *Stats {
	s := &Stats{Rendered: len(z), Dropped: dropped}
	if len(z) == 0 {
		return s
	}
	s.Mean = stat.Mean(z, nil)
	s.Max = floats.Max(z)
	s.Min = floats.Min(z)
	return s
}
