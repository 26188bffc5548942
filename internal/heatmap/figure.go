// Package heatmap binds per-cell probabilities to mesh polygons and builds
// Plotly-compatible figure documents (choroplethmapbox over carto-positron).
package heatmap

import (
	"github.com/paulmach/orb/geojson"
)

// Trace types
const (
	TraceChoropleth = "choroplethmapbox"
	TraceScatter    = "scattermapbox"
)

// Fixed map styling
const (
	MapStyle      = "carto-positron"
	HeatmapZoom   = 6.5
	BasemapZoom   = 4
	BasemapHeight = 540
	UIRevision    = "base"
	TraceName     = "Probability"
)

// Japan basemap center
var JapanCenter = LatLon{Lat: 36.2048, Lon: 138.2529}

// LatLon is a map center
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ColorStop is one [position, color] pair of a color ramp
type ColorStop struct {
	Pos   float64
	Color string
}

// MarshalJSON encodes the stop as Plotly's [pos, color] pair
func (s ColorStop) MarshalJSON() ([]byte, error) {
	return marshalPair(s.Pos, s.Color)
}

// Colorscale is an ordered color ramp over [0,1]
type Colorscale []ColorStop

// Line styles polygon outlines
type Line struct {
	Width float64 `json:"width"`
}

// Marker styles trace marks
type Marker struct {
	Line    *Line    `json:"line,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Size    float64  `json:"size,omitempty"`
}

// Trace is a single Plotly data trace. Only the fields of its Type are set.
type Trace struct {
	Type         string                     `json:"type"`
	Name         string                     `json:"name,omitempty"`
	GeoJSON      *geojson.FeatureCollection `json:"geojson,omitempty"`
	FeatureIDKey string                     `json:"featureidkey,omitempty"`
	Locations    []int                      `json:"locations,omitempty"`
	Z            []float64                  `json:"z,omitempty"`
	ZMin         *float64                   `json:"zmin,omitempty"`
	ZMax         *float64                   `json:"zmax,omitempty"`
	Colorscale   Colorscale                 `json:"colorscale,omitempty"`
	ShowScale    *bool                      `json:"showscale,omitempty"`
	Marker       *Marker                    `json:"marker,omitempty"`
	Lat          []float64                  `json:"lat,omitempty"`
	Lon          []float64                  `json:"lon,omitempty"`
}

// Mapbox is the layout.mapbox block
type Mapbox struct {
	Style  string  `json:"style"`
	Zoom   float64 `json:"zoom"`
	Center LatLon  `json:"center"`
}

// Margin is the layout.margin block
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Layout is the figure layout
type Layout struct {
	Mapbox     Mapbox `json:"mapbox"`
	Margin     Margin `json:"margin"`
	Height     int    `json:"height,omitempty"`
	UIRevision string `json:"uirevision,omitempty"`
	Meta       string `json:"meta,omitempty"`
}

// Stats summarizes the rendered values
type Stats struct {
	Rendered int     `json:"rendered"`
	Dropped  int     `json:"dropped"`
	Mean     float64 `json:"mean"`
	Max      float64 `json:"max"`
	Min      float64 `json:"min"`
}

// Figure is the renderable document returned to clients
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Stats  *Stats  `json:"stats,omitempty"`
}

// HasHeatmap reports whether the figure carries a choropleth trace
func (f *Figure) HasHeatmap() bool {
	for _, t := range f.Data {
		if t.Type == TraceChoropleth {
			return true
		}
	}
	return false
}

// Heatmap returns the choropleth trace, if any
func (f *Figure) Heatmap() (Trace, bool) {
	for _, t := range f.Data {
		if t.Type == TraceChoropleth {
			return t, true
		}
	}
	return Trace{}, false
}

func ptr[T any](v T) *T { return &v }
