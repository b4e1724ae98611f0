package outwriter

import (
	"os"

	"golang.org/x/term"
)

// getMaxTableVideoWidth calculates the maximum width for video paths in
// the run-log table based on terminal width. widthOverride > 0 skips
// auto-detection.
func getMaxTableVideoWidth(widthOverride int) int {
	termWidth := widthOverride
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (run ID, strategy, readings,
	// coverage, duration) plus borders and padding.
	available := termWidth - 50
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
