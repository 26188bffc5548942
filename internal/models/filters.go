package models

// DashboardFilter represents the dashboard controls
type DashboardFilter struct {
	Prefecture   string   `form:"prefecture" json:"prefecture" binding:"omitempty,prefecture"`
	HokkaidoPart string   `form:"part" json:"part" binding:"omitempty,hokkaidopart"`
	Species      string   `form:"species" json:"species" binding:"omitempty,species"`
	BaseDate     string   `form:"baseDate" json:"base_date" binding:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD
	HorizonDays  int      `form:"horizon" json:"horizon_days"`                                       // clamped to 1-30
	TimeOfDay    string   `form:"timeOfDay" json:"time_of_day"`                                      // 午前 or 午後, synonyms accepted
	Opacity      *float64 `form:"opacity" json:"opacity"`                                            // 0.10-1.00
	MinProb      float64  `form:"minProb" json:"min_prob"`                                           // 0-1, step 0.1
	CellSizeKm   float64  `form:"cellKm" json:"cell_km"`
	PaddingKm    *float64 `form:"paddingKm" json:"padding_km"`
}

// MeshFilter represents an arbitrary bbox mesh request
type MeshFilter struct {
	MinLon     float64  `form:"minLon" json:"min_lon"`
	MinLat     float64  `form:"minLat" json:"min_lat"`
	MaxLon     float64  `form:"maxLon" json:"max_lon"`
	MaxLat     float64  `form:"maxLat" json:"max_lat"`
	CellSizeKm float64  `form:"cellKm" json:"cell_km"`
	PaddingKm  *float64 `form:"paddingKm" json:"padding_km"`
	Centroids  bool     `form:"centroids" json:"centroids"`            // add the centroid table
	Points     bool     `form:"centroidPoints" json:"centroid_points"` // add centroids as GeoJSON points
}

// RegionFilter selects one region
type RegionFilter struct {
	Prefecture   string `form:"prefecture" binding:"required,prefecture"`
	HokkaidoPart string `form:"part" binding:"omitempty,hokkaidopart"`
}
