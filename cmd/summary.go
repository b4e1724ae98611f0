package cmd

import (
	"github.com/spf13/cobra"
	"github.com/veerlabs/veer/core"
	"github.com/veerlabs/veer/internal/contract"
)

// summaryCmd summarizes direction changes over a video's heading track.
var summaryCmd = &cobra.Command{
	Use:   "summary <video-path>",
	Short: "Summarize rotation behavior derived from a video's IMU stream.",
	Long: `Derive the heading track for a video and report how much the camera turned.

The summary includes:
- Total rotation in degrees (sum of absolute heading deltas)
- Number of direction changes (heading deltas above 10 degrees)
- Average rotation rate in degrees per second
- Initial and final headings

Examples:
  # Print the summary as a table
  veer summary footage.mp4

  # Machine-readable output
  veer summary footage.mp4 --output json

  # Append to a CSV log
  veer summary footage.mp4 --output csv --output-file turns.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run summary", err)
		}
	},
}
