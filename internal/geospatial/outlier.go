package geospatial

import (
	"math"
	"sort"
)

// minOutlierSample is the smallest point set the IQR filter operates on;
// quartiles are meaningless below it.
const minOutlierSample = 4

// filterOutliers drops points whose latitude or longitude falls outside the
// interquartile range scaled by multiplier. Point sets smaller than
// minOutlierSample are returned unchanged.
func filterOutliers(points [][2]float64, multiplier float64) [][2]float64 {
	if len(points) < minOutlierSample {
		return points
	}

	lats := make([]float64, len(points))
	lngs := make([]float64, len(points))
	for i, p := range points {
		lats[i] = p[0]
		lngs[i] = p[1]
	}

	q1Lat, q3Lat := quartiles(lats)
	q1Lng, q3Lng := quartiles(lngs)
	iqrLat := q3Lat - q1Lat
	iqrLng := q3Lng - q1Lng

	latLo := q1Lat - multiplier*iqrLat
	latHi := q3Lat + multiplier*iqrLat
	lngLo := q1Lng - multiplier*iqrLng
	lngHi := q3Lng + multiplier*iqrLng

	filtered := make([][2]float64, 0, len(points))
	for _, p := range points {
		if p[0] >= latLo && p[0] <= latHi && p[1] >= lngLo && p[1] <= lngHi {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// quartiles returns the 25th and 75th percentiles of values using linear
// interpolation between closest ranks.
func quartiles(values []float64) (q1, q3 float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentile(sorted, 0.25), percentile(sorted, 0.75)
}

// percentile computes the p-th percentile (0..1) of sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
