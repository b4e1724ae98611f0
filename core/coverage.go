package core

import (
	"context"
	"fmt"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"
)

// CheckCoverage compares the span of extracted readings against the
// probed container duration. The result is observational only and never
// alters the readings.
func CheckCoverage(ctx context.Context, prober contract.MediaProber, videoPath string, readings []schema.SensorReading) (schema.CoverageReport, error) {
	if len(readings) == 0 {
		return schema.CoverageReport{}, fmt.Errorf("no readings to check coverage for")
	}

	duration, err := prober.Duration(ctx, videoPath)
	if err != nil {
		return schema.CoverageReport{}, fmt.Errorf("could not determine video duration: %w", err)
	}
	if duration <= 0 {
		return schema.CoverageReport{}, fmt.Errorf("probed duration %.3f is not positive", duration)
	}

	start, end := readings[0].Timestamp, readings[0].Timestamp
	for _, r := range readings[1:] {
		if r.Timestamp < start {
			start = r.Timestamp
		}
		if r.Timestamp > end {
			end = r.Timestamp
		}
	}

	return schema.CoverageReport{
		SpanStart:     start,
		SpanEnd:       end,
		VideoDuration: duration,
		Percent:       (end - start) / duration * 100.0,
	}, nil
}

// WarnOnLowCoverage logs the coverage diagnostic. Low coverage is almost
// always the metadata tool's 20,000 embedded-record limit kicking in on
// long recordings, not data loss in the container.
func WarnOnLowCoverage(report schema.CoverageReport) {
	if report.Complete() {
		contract.LogNotice(fmt.Sprintf(
			"IMU data covers %.1f%% of the video (%.1fs to %.1fs of %.1fs)",
			report.Percent, report.SpanStart, report.SpanEnd, report.VideoDuration))
		return
	}
	contract.LogWarn(fmt.Sprintf(
		"IMU data only covers %.1f%% of the video (%.1fs to %.1fs of %.1fs). "+
			"This is likely the metadata tool's embedded record limit; consider vendor tooling for complete extraction",
		report.Percent, report.SpanStart, report.SpanEnd, report.VideoDuration), nil)
}
