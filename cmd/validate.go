package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petakode/petakode/internal/dataset"
	"github.com/petakode/petakode/internal/geospatial"
)

var validateZoomLevel int

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the dataset and report aggregation stats",
	Long:  "Loads the configured dataset, runs the aggregator at one zoom level, and logs group counts and village totals. Smoke check for dataset quality.",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := dataset.Load(cmd.Context(), cfg.Dataset)
		if err != nil {
			return eris.Wrap(err, "validate: load dataset")
		}

		groups, err := geospatial.Aggregate(records, validateZoomLevel, cfg.Aggregate.OutlierMultiplier)
		if err != nil {
			return eris.Wrap(err, "validate: aggregate")
		}

		var villages, markers int
		for _, g := range groups {
			villages += g.VillageCount
			if g.IsMarker() {
				markers++
			}
		}

		zap.L().Info("dataset validated",
			zap.String("path", cfg.Dataset.Path),
			zap.Int("records", len(records)),
			zap.Int("zoom_level", validateZoomLevel),
			zap.Int("groups", len(groups)),
			zap.Int("villages", villages),
			zap.Int("marker_groups", markers),
		)

		return nil
	},
}

func init() {
	validateCmd.Flags().IntVar(&validateZoomLevel, "zoom-level", 1, "prefix length to aggregate at (1-5)")
	rootCmd.AddCommand(validateCmd)
}
