package mesh

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureIDKey is the property path that links a polygon to its
// probability row.
const FeatureIDKey = "properties.id"

// FeatureCollection converts the mesh into GeoJSON. Each feature carries the
// cell id both as the feature id and as properties.id, plus its row and col.
func (m *GridMesh) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Features = make([]*geojson.Feature, 0, len(m.Cells))
	for _, c := range m.Cells {
		fc.Append(c.Feature())
	}
	return fc
}

// Feature converts one cell into a GeoJSON polygon feature
func (c GridCell) Feature() *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{c.Ring()})
	f.ID = c.ID
	f.Properties["id"] = c.ID
	f.Properties["row"] = c.Row
	f.Properties["col"] = c.Col
	return f
}

// CentroidFeatures returns the centroid table as GeoJSON points
func (m *GridMesh) CentroidFeatures() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range m.Cells {
		f := geojson.NewFeature(orb.Point{c.Centroid.Lon, c.Centroid.Lat})
		f.ID = c.ID
		f.Properties["id"] = c.ID
		f.Properties["cell_id"] = c.ID
		fc.Append(f)
	}
	return fc
}
