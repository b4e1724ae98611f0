// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReadings persists the readings table using the configured format.
func (ow *OutWriter) WriteReadings(readings []schema.SensorReading, cfg *contract.Config) error {
	return WriteReadings(readings, cfg)
}

// WriteHeadings persists the headings table using the configured format.
func (ow *OutWriter) WriteHeadings(headings []schema.HeadingSample, cfg *contract.Config) error {
	return WriteHeadings(headings, cfg)
}

// WriteSummary prints the direction summary using the configured format.
func (ow *OutWriter) WriteSummary(summary schema.DirectionSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteSummary(summary, cfg, duration)
}
