package geospatial

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/petakode/petakode/internal/dataset"
)

// Zoom level bounds: the prefix length used for grouping.
const (
	MinZoomLevel = 1
	MaxZoomLevel = 5
)

// DefaultOutlierMultiplier is the IQR multiplier applied before hull
// construction when the caller passes 0.
const DefaultOutlierMultiplier = 1.5

// ErrInvalidZoomLevel is returned when the requested zoom level is outside
// [MinZoomLevel, MaxZoomLevel].
var ErrInvalidZoomLevel = eris.New("geospatial: zoom level must be between 1 and 5")

// minHullPoints is the smallest point set a polygon can be built from.
const minHullPoints = 3

// Aggregate groups records by the first zoomLevel digits of their postal
// code and derives one Group per prefix. Records whose code is shorter than
// zoomLevel are skipped and counted in a single warning log. The result is
// sorted by prefix; identical inputs always produce identical output.
//
// outlierMultiplier scales the IQR window used to drop stray points before
// hull construction; 0 selects DefaultOutlierMultiplier.
func Aggregate(records []dataset.Record, zoomLevel int, outlierMultiplier float64) ([]Group, error) {
	if zoomLevel < MinZoomLevel || zoomLevel > MaxZoomLevel {
		return nil, eris.Wrapf(ErrInvalidZoomLevel, "got %d", zoomLevel)
	}
	if outlierMultiplier == 0 {
		outlierMultiplier = DefaultOutlierMultiplier
	}

	byPrefix := make(map[string][]dataset.Record)
	var short int
	for _, rec := range records {
		if len(rec.PostalCode) < zoomLevel {
			short++
			continue
		}
		prefix := rec.PostalCode[:zoomLevel]
		byPrefix[prefix] = append(byPrefix[prefix], rec)
	}
	if short > 0 {
		zap.L().Warn("skipped records with postal codes shorter than zoom level",
			zap.Int("skipped", short),
			zap.Int("zoom_level", zoomLevel),
		)
	}

	groups := make([]Group, 0, len(byPrefix))
	for prefix, members := range byPrefix {
		groups = append(groups, buildGroup(prefix, members, outlierMultiplier))
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Prefix < groups[j].Prefix })
	return groups, nil
}

// buildGroup derives the boundary, village total, center, and color for one
// prefix group.
func buildGroup(prefix string, members []dataset.Record, outlierMultiplier float64) Group {
	g := Group{
		Prefix: prefix,
		Color:  ColorFor(prefix),
	}

	var sumLat, sumLng float64
	points := make([][2]float64, 0, len(members))
	var polygons []*geom.Polygon

	for _, rec := range members {
		g.VillageCount += rec.VillageCount
		sumLat += rec.Lat
		sumLng += rec.Lng

		if mp, ok := rec.Boundary.(*geom.MultiPolygon); ok {
			for i := 0; i < mp.NumPolygons(); i++ {
				polygons = append(polygons, mp.Polygon(i))
			}
			continue
		}
		points = append(points, [2]float64{rec.Lat, rec.Lng})
	}

	g.CenterLat = sumLat / float64(len(members))
	g.CenterLng = sumLng / float64(len(members))

	g.Boundary = mergeBoundary(points, polygons, g.CenterLat, g.CenterLng, outlierMultiplier)
	return g
}

// mergeBoundary combines member geometries into one display shape.
// Precomputed polygons are merged into a MultiPolygon; bare points go
// through outlier filtering and convex hull construction. When neither
// yields a polygon the group degrades to a point at its center.
func mergeBoundary(points [][2]float64, polygons []*geom.Polygon, centerLat, centerLng, outlierMultiplier float64) geom.T {
	if len(polygons) > 0 {
		merged := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
		for _, poly := range polygons {
			if err := merged.Push(poly); err != nil {
				zap.L().Debug("geospatial: skipping unmergeable polygon", zap.Error(err))
			}
		}
		if merged.NumPolygons() > 0 {
			return merged
		}
	}

	if len(points) >= minHullPoints {
		filtered := filterOutliers(points, outlierMultiplier)
		if len(filtered) >= minHullPoints {
			if hull := convexHull(filtered); hull != nil {
				return hull
			}
		}
	}

	return geom.NewPointFlat(geom.XY, []float64{centerLng, centerLat}).SetSRID(4326)
}
