package core

import (
	"context"
	"fmt"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"
)

// Extractor pulls IMU readings out of one video file. It owns the
// resulting reading slice for the lifetime of the extraction; the slice
// is never shared across extractions or goroutines.
type Extractor struct {
	client     contract.MetadataClient
	sensorPath string

	readings []schema.SensorReading
	strategy schema.ExtractionStrategy
}

// NewExtractor creates an extractor for the given sensor source file.
func NewExtractor(client contract.MetadataClient, sensorPath string) *Extractor {
	return &Extractor{client: client, sensorPath: sensorPath}
}

// Extract attempts the extraction strategies in priority order and
// reports whether any produced readings. Every failure path is converted
// to a logged warning; the caller decides whether to proceed without IMU
// data. Proprietary raw containers get the comprehensive plain-text parse
// first, with grouped JSON as a fallback; other containers go straight to
// grouped JSON.
func (e *Extractor) Extract(ctx context.Context) bool {
	if contract.IsRawContainer(e.sensorPath) {
		if e.extractComprehensive(ctx) {
			return true
		}
		contract.LogNotice("Raw parsing produced no readings, falling back to grouped JSON extraction")
	}
	return e.extractStandard(ctx)
}

// extractComprehensive runs the plain-text strategy for raw containers.
func (e *Extractor) extractComprehensive(ctx context.Context) bool {
	out, err := e.client.ExtractRaw(ctx, e.sensorPath)
	if err != nil {
		contract.LogWarn("Comprehensive metadata extraction failed", err)
		return false
	}

	readings := ParseRawSensorStream(out)
	if len(readings) == 0 {
		return false
	}
	e.readings = readings
	e.strategy = schema.RawStrategy
	return true
}

// extractStandard runs the grouped JSON strategy.
func (e *Extractor) extractStandard(ctx context.Context) bool {
	out, err := e.client.ExtractJSON(ctx, e.sensorPath)
	if err != nil {
		contract.LogWarn("Metadata extraction failed", err)
		return false
	}

	readings, err := ParseMetadataDocument(out)
	if err != nil {
		contract.LogWarn("Metadata parsing failed", err)
		return false
	}
	if len(readings) == 0 {
		contract.LogWarn(fmt.Sprintf("No IMU metadata found in %s", e.sensorPath), nil)
		return false
	}
	e.readings = readings
	e.strategy = schema.GroupedStrategy
	return true
}

// Readings returns the extracted reading sequence.
func (e *Extractor) Readings() []schema.SensorReading {
	return e.readings
}

// Strategy returns which strategy produced the readings.
func (e *Extractor) Strategy() schema.ExtractionStrategy {
	return e.strategy
}
