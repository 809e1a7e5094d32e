package geospatial

import (
	"testing"
)

func TestConvexHull_Square(t *testing.T) {
	points := [][2]float64{
		{5.0, 95.0},
		{5.0, 96.0},
		{6.0, 96.0},
		{6.0, 95.0},
		{5.5, 95.5}, // interior point, must be excluded
	}

	hull := convexHull(points)
	if hull == nil {
		t.Fatal("expected a hull polygon")
	}

	coords := hull.Coords()
	if len(coords) != 1 {
		t.Fatalf("expected single ring, got %d", len(coords))
	}
	ring := coords[0]
	// Four corners plus closing point.
	if len(ring) != 5 {
		t.Fatalf("expected 5 ring coords, got %d", len(ring))
	}
	if ring[0][0] != ring[len(ring)-1][0] || ring[0][1] != ring[len(ring)-1][1] {
		t.Error("ring is not closed")
	}

	// Interior point must not appear on the hull.
	for _, c := range ring {
		if c[0] == 95.5 && c[1] == 5.5 {
			t.Error("interior point appears on hull")
		}
	}
}

func TestConvexHull_Triangle(t *testing.T) {
	points := [][2]float64{
		{5.0, 95.0},
		{6.0, 96.0},
		{5.0, 97.0},
	}

	hull := convexHull(points)
	if hull == nil {
		t.Fatal("expected a hull polygon")
	}
	if len(hull.Coords()[0]) != 4 {
		t.Errorf("expected 4 ring coords, got %d", len(hull.Coords()[0]))
	}
}

func TestConvexHull_TooFewPoints(t *testing.T) {
	if convexHull(nil) != nil {
		t.Error("expected nil hull for no points")
	}
	if convexHull([][2]float64{{5, 95}, {6, 96}}) != nil {
		t.Error("expected nil hull for two points")
	}
}

func TestConvexHull_DuplicatesCollapse(t *testing.T) {
	points := [][2]float64{
		{5.0, 95.0},
		{5.0, 95.0},
		{6.0, 96.0},
		{6.0, 96.0},
	}
	if convexHull(points) != nil {
		t.Error("expected nil hull when only two distinct points exist")
	}
}

func TestConvexHull_Collinear(t *testing.T) {
	points := [][2]float64{
		{5.0, 95.0},
		{5.5, 95.5},
		{6.0, 96.0},
		{6.5, 96.5},
	}
	if convexHull(points) != nil {
		t.Error("expected nil hull for collinear points")
	}
}

func TestConvexHull_CoordinateOrder(t *testing.T) {
	// Input is lat/lng; output ring must be lng/lat.
	points := [][2]float64{
		{-2.0, 118.0},
		{-2.0, 119.0},
		{-1.0, 119.0},
		{-1.0, 118.0},
	}

	hull := convexHull(points)
	if hull == nil {
		t.Fatal("expected a hull polygon")
	}
	for _, c := range hull.Coords()[0] {
		if c[0] < 100 {
			t.Fatalf("expected X to be longitude (>100), got %f", c[0])
		}
		if c[1] > 0 {
			t.Fatalf("expected Y to be latitude (<0), got %f", c[1])
		}
	}
}
