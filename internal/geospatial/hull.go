package geospatial

import (
	"sort"

	"github.com/twpayne/go-geom"
)

// convexHull computes the convex hull of lat/lng points via the monotone
// chain algorithm and returns it as a closed polygon in lng/lat (XY) order.
// Returns nil when fewer than three distinct, non-collinear points exist.
func convexHull(points [][2]float64) *geom.Polygon {
	pts := dedupe(points)
	if len(pts) < 3 {
		return nil
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i][1] != pts[j][1] {
			return pts[i][1] < pts[j][1]
		}
		return pts[i][0] < pts[j][0]
	})

	var lower, upper [][2]float64
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Drop the last point of each chain (it repeats the other chain's start).
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		// All points collinear.
		return nil
	}

	// Closed ring, lng/lat order for GeoJSON.
	flat := make([]float64, 0, (len(hull)+1)*2)
	for _, p := range hull {
		flat = append(flat, p[1], p[0])
	}
	flat = append(flat, hull[0][1], hull[0][0])

	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}).SetSRID(4326)
}

// cross returns the z-component of (b-a) x (c-a) in lng/lat space.
func cross(a, b, c [2]float64) float64 {
	return (b[1]-a[1])*(c[0]-a[0]) - (b[0]-a[0])*(c[1]-a[1])
}

// dedupe removes duplicate points, preserving first occurrence order.
func dedupe(points [][2]float64) [][2]float64 {
	seen := make(map[[2]float64]bool, len(points))
	out := make([][2]float64, 0, len(points))
	for _, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
