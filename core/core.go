// Package core has the extraction, integration and summary logic.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/internal/outwriter"
	"github.com/veerlabs/veer/schema"
)

// ExecutorFunc defines the function signature for executing different CLI modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteExtract runs the full extraction pipeline for one video: resolve
// readings (cache-aware), optionally gravity-compensate, check coverage,
// and write the readings and headings tables. It serves as the main entry
// point for the 'extract' mode.
func ExecuteExtract(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	client := contract.NewLocalExifClient()
	prober := contract.NewLocalFFProbeClient()

	runID := beginRunTracking(cfg, mgr, start)

	output, err := extractWithCache(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}

	if cfg.GravityComp {
		ApplyGravityCompensation(output.Readings)
	}

	coveragePct := 0.0
	report, err := CheckCoverage(ctx, prober, cfg.SensorPath, output.Readings)
	if err != nil {
		contract.LogWarn("Could not determine video duration for completeness check", err)
	} else {
		WarnOnLowCoverage(report)
		coveragePct = report.Percent
	}

	headings := HeadingTrack(output.Readings)

	if err := outwriter.WriteReadings(output.Readings, cfg); err != nil {
		return fmt.Errorf("failed to write readings table: %w", err)
	}
	if err := outwriter.WriteHeadings(headings, cfg); err != nil {
		return fmt.Errorf("failed to write headings table: %w", err)
	}

	endRunTracking(mgr, runID, output, coveragePct)

	contract.LogNotice(fmt.Sprintf("Extracted %d IMU readings (%s strategy) in %s",
		len(output.Readings), output.Strategy, time.Since(start).Round(time.Millisecond)))
	return nil
}

// ExecuteSummary derives the direction summary for one video and prints
// it in the configured output format. It serves as the main entry point
// for the 'summary' mode.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	client := contract.NewLocalExifClient()

	output, err := extractWithCache(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}

	headings := HeadingTrack(output.Readings)
	summary := SummarizeDirection(headings)
	duration := time.Since(start)
	return outwriter.WriteSummary(summary, cfg, duration)
}

// extractWithCache returns readings for the configured sensor source,
// reusing a cached extraction when the file identity matches.
func extractWithCache(ctx context.Context, cfg *contract.Config, client contract.MetadataClient, mgr contract.CacheManager) (schema.ExtractionOutput, error) {
	if output, ok := loadCachedReadings(mgr, cfg.SensorPath); ok {
		contract.LogNotice(fmt.Sprintf("Using %d cached readings for %s", len(output.Readings), cfg.SensorPath))
		return output, nil
	}

	extractor := NewExtractor(client, cfg.SensorPath)
	if !extractor.Extract(ctx) {
		return schema.ExtractionOutput{}, fmt.Errorf("no IMU data could be extracted from %q", cfg.SensorPath)
	}

	output := schema.ExtractionOutput{
		Readings: extractor.Readings(),
		Strategy: extractor.Strategy(),
	}
	storeCachedReadings(mgr, cfg.SensorPath, output)
	return output, nil
}

// beginRunTracking records the start of an extraction run. Tracking
// trouble degrades to a warning; it never blocks the extraction.
func beginRunTracking(cfg *contract.Config, mgr contract.CacheManager, start time.Time) int64 {
	if mgr == nil {
		return 0
	}
	runStore := mgr.GetRunStore()
	if runStore == nil {
		return 0
	}

	configParams := map[string]any{
		"video_path":   cfg.VideoPath,
		"sensor_path":  cfg.SensorPath,
		"gravity_comp": cfg.GravityComp,
		"output":       string(cfg.Output),
	}
	runID, err := runStore.BeginRun(cfg.SensorPath, start, configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return 0
	}
	return runID
}

// endRunTracking finalizes a tracked extraction run.
func endRunTracking(mgr contract.CacheManager, runID int64, output schema.ExtractionOutput, coveragePct float64) {
	if mgr == nil || runID == 0 {
		return
	}
	runStore := mgr.GetRunStore()
	if runStore == nil {
		return
	}
	if err := runStore.EndRun(runID, time.Now(), output.Strategy, len(output.Readings), coveragePct); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
