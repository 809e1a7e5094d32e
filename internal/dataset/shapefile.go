package dataset

import (
	"context"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// LoadShapefile reads postal code records from an ESRI shapefile where each
// shape is a postal code area polygon. Required attribute fields: code and
// villages. Shapes that are missing, non-polygonal, or carry no code are
// skipped.
func LoadShapefile(ctx context.Context, path string) ([]Record, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	log := zap.L().With(zap.String("component", "dataset.shapefile"))

	codeIdx := fieldIndex(reader, "code")
	villagesIdx := fieldIndex(reader, "villages")
	if codeIdx < 0 || villagesIdx < 0 {
		return nil, eris.Errorf("dataset: shapefile %s missing required fields (code, villages)", path)
	}

	var records []Record
	var skipped int

	for reader.Next() {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "dataset: load cancelled")
		}

		_, shape := reader.Shape()
		if shape == nil {
			skipped++
			continue
		}

		code := zeroPad(strings.TrimSpace(reader.Attribute(codeIdx)))
		if code == "" {
			skipped++
			continue
		}

		villages, err := strconv.Atoi(strings.TrimSpace(reader.Attribute(villagesIdx)))
		if err != nil || villages < 0 {
			skipped++
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		boundary := PolygonToGeom(poly)
		if boundary == nil {
			skipped++
			continue
		}

		bbox := shape.BBox()
		records = append(records, Record{
			PostalCode:   code,
			Lat:          (bbox.MinY + bbox.MaxY) / 2,
			Lng:          (bbox.MinX + bbox.MaxX) / 2,
			VillageCount: villages,
			Boundary:     boundary,
		})
	}

	if skipped > 0 {
		log.Warn("skipped malformed shapes", zap.Int("skipped", skipped))
	}
	log.Info("loaded postal code areas",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)

	return records, nil
}

// PolygonToGeom converts a shapefile Polygon to a geom.MultiPolygon in
// lng/lat (XY) order. Returns nil when no valid ring survives conversion.
func PolygonToGeom(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("dataset: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}

		if err := mp.Push(poly); err != nil {
			zap.L().Debug("dataset: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// fieldIndex returns the index of a DBF field by case-insensitive name, or -1.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		fieldName := strings.TrimRight(f.String(), "\x00")
		if strings.EqualFold(strings.TrimSpace(fieldName), name) {
			return i
		}
	}
	return -1
}
