package dataset

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/petakode/petakode/internal/config"
)

// Load reads the dataset described by cfg. A load failure is fatal to the
// caller; there is no partial or retried load.
func Load(ctx context.Context, cfg config.DatasetConfig) ([]Record, error) {
	switch cfg.Format {
	case "csv", "":
		return LoadCSV(ctx, cfg.Path, cfg.Bounds)
	case "shapefile":
		return LoadShapefile(ctx, cfg.Path)
	default:
		return nil, eris.Errorf("dataset: unsupported format %q", cfg.Format)
	}
}
