// Package dataset loads the postal code reference data from CSV or
// shapefile sources. Records are immutable once loaded.
package dataset

import "github.com/twpayne/go-geom"

// PostalCodeLen is the full length of an Indonesian postal code.
const PostalCodeLen = 5

// Record is one postal code entry. CSV sources yield one record per village
// point with VillageCount 1 and no Boundary; shapefile sources yield one
// record per postal code with a precomputed polygon boundary and an
// aggregate village count.
type Record struct {
	PostalCode   string
	Village      string
	Lat          float64
	Lng          float64
	VillageCount int
	Boundary     geom.T
}
