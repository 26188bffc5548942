package models

import (
	"github.com/jengzang/wildlife-bi-go/internal/heatmap"
	"github.com/jengzang/wildlife-bi-go/internal/mesh"
	"github.com/paulmach/orb/geojson"
)

// HeatmapRequest renders a caller-supplied probability table over a mesh
type HeatmapRequest struct {
	Mesh         MeshFilter         `json:"mesh"`
	Probs        heatmap.Table      `json:"probs"`
	Center       *heatmap.LatLon    `json:"center"`
	Colorscale   heatmap.Colorscale `json:"colorscale"`
	Opacity      *float64           `json:"opacity"`
	OutlineWidth *float64           `json:"outline_width"`
	MinProb      float64            `json:"min_prob"`
	Label        string             `json:"label"`
}

// DashboardResponse is the dashboard render result
type DashboardResponse struct {
	Filter  DashboardFilter `json:"filter"`
	Label   string          `json:"label"`
	Warning string          `json:"warning,omitempty"`
	Figure  *heatmap.Figure `json:"figure"`
	Mesh    *mesh.Summary   `json:"mesh,omitempty"`
	Cached  bool            `json:"cached"`
}

// MeshResponse is a mesh as GeoJSON plus its summary
type MeshResponse struct {
	Summary   mesh.Summary               `json:"summary"`
	GeoJSON   *geojson.FeatureCollection `json:"geojson"`
	Centroids []mesh.Centroid            `json:"centroids,omitempty"`
	Points    *geojson.FeatureCollection `json:"centroid_points,omitempty"`
	Cached    bool                       `json:"cached"`
}

// OptionsResponse lists the values the dashboard controls accept
type OptionsResponse struct {
	Prefectures       []string   `json:"prefectures"`
	DefaultPrefecture string     `json:"default_prefecture"`
	HokkaidoParts     []string   `json:"hokkaido_parts"`
	DefaultPart       string     `json:"default_part"`
	Species           []string   `json:"species"`
	DefaultSpecies    string     `json:"default_species"`
	BaseDates         []string   `json:"base_dates"`
	TimesOfDay        []string   `json:"times_of_day"`
	HorizonRange      [2]int     `json:"horizon_range"`
	DefaultHorizon    int        `json:"default_horizon"`
	OpacityRange      [2]float64 `json:"opacity_range"`
	MinProbStep       float64    `json:"min_prob_step"`
}

// RegionCenterResponse is a region's map center and fallback box
type RegionCenterResponse struct {
	Label string     `json:"label"`
	Lat   float64    `json:"lat"`
	Lon   float64    `json:"lon"`
	BBox  [4]float64 `json:"bbox"`
}
