// Package geospatial groups postal code records by code prefix and derives
// a display boundary, village total, and stable color for each group.
package geospatial

import "github.com/twpayne/go-geom"

// Group is the aggregation of all records sharing a postal code prefix.
// Boundary is a polygonal shape when one can be derived and a single point
// otherwise. Groups are request-scoped and never cached.
type Group struct {
	Prefix       string  `json:"prefix"`
	VillageCount int     `json:"village_count"`
	CenterLat    float64 `json:"center_lat"`
	CenterLng    float64 `json:"center_lng"`
	Color        string  `json:"color"`
	Boundary     geom.T  `json:"-"`
}

// IsMarker reports whether the group degrades to a point marker because no
// polygon boundary could be derived.
func (g Group) IsMarker() bool {
	_, ok := g.Boundary.(*geom.Point)
	return ok
}
