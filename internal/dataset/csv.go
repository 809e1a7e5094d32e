package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/petakode/petakode/internal/config"
)

// LoadCSV reads postal code records from a CSV file with columns
// code, village, latitude and longitude (any order, extra columns ignored).
// Codes are zero-padded to PostalCodeLen to preserve leading zeros lost by
// numeric export. Rows that fail to parse or fall outside bounds are skipped.
func LoadCSV(ctx context.Context, path string, bounds config.BoundsConfig) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open CSV %s", path)
	}
	defer func() { _ = f.Close() }()

	log := zap.L().With(zap.String("component", "dataset.csv"))

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read CSV header")
	}

	// Build column name → index map.
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	codeIdx, ok1 := colIdx["code"]
	villageIdx, ok2 := colIdx["village"]
	latIdx, ok3 := colIdx["latitude"]
	lngIdx, ok4 := colIdx["longitude"]
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, eris.Errorf("dataset: CSV %s missing required columns (code, village, latitude, longitude)", path)
	}

	var records []Record
	var skipped, outOfBounds int

	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "dataset: load cancelled")
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "dataset: read CSV row")
		}

		maxIdx := codeIdx
		for _, idx := range []int{villageIdx, latIdx, lngIdx} {
			if idx > maxIdx {
				maxIdx = idx
			}
		}
		if len(row) <= maxIdx {
			skipped++
			continue
		}

		code := zeroPad(strings.TrimSpace(row[codeIdx]))
		if code == "" {
			skipped++
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[latIdx]), 64)
		lng, lngErr := strconv.ParseFloat(strings.TrimSpace(row[lngIdx]), 64)
		if latErr != nil || lngErr != nil {
			skipped++
			continue
		}

		if !bounds.Contains(lat, lng) {
			outOfBounds++
			continue
		}

		records = append(records, Record{
			PostalCode:   code,
			Village:      strings.TrimSpace(row[villageIdx]),
			Lat:          lat,
			Lng:          lng,
			VillageCount: 1,
		})
	}

	if skipped > 0 || outOfBounds > 0 {
		log.Warn("dropped rows while loading CSV",
			zap.Int("malformed", skipped),
			zap.Int("out_of_bounds", outOfBounds),
		)
	}
	log.Info("loaded postal code records",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)

	return records, nil
}

// zeroPad left-pads a postal code with zeros to PostalCodeLen. Codes longer
// than PostalCodeLen are returned unchanged.
func zeroPad(code string) string {
	if code == "" || len(code) >= PostalCodeLen {
		return code
	}
	return strings.Repeat("0", PostalCodeLen-len(code)) + code
}
