package cmd

import (
	"github.com/spf13/cobra"
	"github.com/veerlabs/veer/core"
	"github.com/veerlabs/veer/internal/contract"
)

// extractCmd pulls IMU readings out of a video and writes the data tables.
var extractCmd = &cobra.Command{
	Use:   "extract <video-path>",
	Short: "Extract IMU readings and a heading track from a video file.",
	Long: `Pull the embedded accelerometer and gyroscope stream out of a video file
and write two tables: the raw IMU readings and the derived heading track.

When the input is a standard .mp4 and a raw .insv sibling with the same base
name sits next to it, the sibling is used instead because the vendor raw
container carries the full sensor stream.

The gyroscope Z axis is integrated over time into a compass-style heading,
normalized to [0, 360) degrees and starting at 0.

Examples:
  # Extract to imu_data.csv and heading_data.csv in the current directory
  veer extract footage.mp4

  # Write tables somewhere else with higher precision
  veer extract footage.insv --output-dir ./out --precision 9

  # Convert accelerometer values to gravity-compensated m/s²
  veer extract footage.mp4 --gravity-comp

  # Produce Parquet tables instead of CSV
  veer extract footage.mp4 --output parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExtract(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run extraction", err)
		}
	},
}
