package maprender

import (
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/petakode/petakode/internal/geospatial"
)

// ToFeatureCollection converts aggregated groups to a GeoJSON feature
// collection. Polygon groups render as filled shapes; marker groups carry a
// "marker" property so the client draws a circle marker instead.
func ToFeatureCollection(groups []geospatial.Group) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(groups))}
	for _, g := range groups {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       g.Prefix,
			Geometry: g.Boundary,
			Properties: map[string]interface{}{
				"prefix":   g.Prefix,
				"villages": g.VillageCount,
				"color":    g.Color,
				"marker":   g.IsMarker(),
			},
		})
	}
	return fc
}
