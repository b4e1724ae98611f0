package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Rotation intensity label constants.
const (
	SpinningValue = "Spinning" // Sustained rotation, likely panning shot
	TurningValue  = "Turning"  // Regular direction changes
	DriftingValue = "Drifting" // Slow heading wander
	SteadyValue   = "Steady"   // Near-constant heading
)

// Color variables for console output.
var (
	SpinningColor = color.New(color.FgRed, color.Bold)
	TurningColor  = color.New(color.FgMagenta, color.Bold)
	DriftingColor = color.New(color.FgYellow)
	SteadyColor   = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain text label classifying the average
// rotation rate in degrees per second. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(avgRate float64) string {
	switch {
	case avgRate >= 45:
		return SpinningValue
	case avgRate >= 15:
		return TurningValue
	case avgRate >= 3:
		return DriftingValue
	default:
		return SteadyValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(avgRate float64) string {
	text := GetPlainLabel(avgRate)

	switch text {
	case SpinningValue:
		return SpinningColor.Sprint(text)
	case TurningValue:
		return TurningColor.Sprint(text)
	case DriftingValue:
		return DriftingColor.Sprint(text)
	default: // "Steady"
		return SteadyColor.Sprint(text)
	}
}

// TruncatePath shortens a path for table display, keeping the tail since
// the file name is the informative part.
func TruncatePath(path string, maxWidth int) string {
	if maxWidth <= 3 || len(path) <= maxWidth {
		return path
	}
	return "..." + path[len(path)-maxWidth+3:]
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s\n", msg)
	}
}

// LogNotice logs an informational message to stderr so stdout stays
// reserved for data output.
func LogNotice(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "%s\n", msg)
}

// SelectOutputFile returns a writable file for the given path, or stdout
// when the path is empty.
func SelectOutputFile(outputFile string) (*os.File, error) {
	if outputFile == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", outputFile, err)
	}
	return file, nil
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the
// readings cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".veer_cache.db"
	}
	return filepath.Join(homeDir, ".veer_cache.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for the
// extraction-run log.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".veer_runs.db"
	}
	return filepath.Join(homeDir, ".veer_runs.db")
}
