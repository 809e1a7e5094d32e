package geospatial

import (
	"math"
	"testing"
)

func TestFilterOutliers_SmallSetUnchanged(t *testing.T) {
	points := [][2]float64{{5, 95}, {6, 96}, {5.5, 95.5}}
	filtered := filterOutliers(points, 1.5)
	if len(filtered) != 3 {
		t.Errorf("expected 3 points, got %d", len(filtered))
	}
}

func TestFilterOutliers_DropsFarPoint(t *testing.T) {
	points := [][2]float64{
		{5.50, 95.30},
		{5.51, 95.31},
		{5.52, 95.32},
		{5.53, 95.33},
		{5.54, 95.34},
		{-8.00, 130.00}, // a village on the wrong island
	}

	filtered := filterOutliers(points, 1.5)
	if len(filtered) != 5 {
		t.Fatalf("expected 5 points after filtering, got %d", len(filtered))
	}
	for _, p := range filtered {
		if p[0] < 5 {
			t.Errorf("outlier survived filtering: %v", p)
		}
	}
}

func TestFilterOutliers_UniformClusterKept(t *testing.T) {
	points := [][2]float64{
		{5.50, 95.30},
		{5.51, 95.31},
		{5.52, 95.32},
		{5.53, 95.33},
	}
	filtered := filterOutliers(points, 1.5)
	if len(filtered) != 4 {
		t.Errorf("expected all 4 points kept, got %d", len(filtered))
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	if got := percentile(sorted, 0.25); math.Abs(got-1.75) > 1e-9 {
		t.Errorf("expected 1.75, got %f", got)
	}
	if got := percentile(sorted, 0.75); math.Abs(got-3.25) > 1e-9 {
		t.Errorf("expected 3.25, got %f", got)
	}
	if got := percentile(sorted, 0); got != 1 {
		t.Errorf("expected 1, got %f", got)
	}
	if got := percentile(sorted, 1); got != 4 {
		t.Errorf("expected 4, got %f", got)
	}
	if got := percentile([]float64{7}, 0.5); got != 7 {
		t.Errorf("expected 7, got %f", got)
	}
	if !math.IsNaN(percentile(nil, 0.5)) {
		t.Error("expected NaN for empty input")
	}
}
