// Package schema has configs, models and shared types for all parts of veer.
package schema

import "time"

// SensorReading represents a single IMU sample reconstructed from video
// metadata. Accelerometer values are raw g-force as emitted by the camera;
// the optional gravity-compensation pass rewrites them to m/s². Gyroscope
// values are rotation rates in rad/s about each axis.
type SensorReading struct {
	Timestamp float64 `json:"timestamp"` // Seconds from stream start
	AccelX    float64 `json:"accel_x"`
	AccelY    float64 `json:"accel_y"`
	AccelZ    float64 `json:"accel_z"`
	GyroX     float64 `json:"gyro_x"`
	GyroY     float64 `json:"gyro_y"`
	GyroZ     float64 `json:"gyro_z"` // Yaw rate, integrated into heading
}

// HeadingSample is one point of the derived heading track. Heading is
// normalized to [0, 360) degrees, compass-style.
type HeadingSample struct {
	Timestamp float64 `json:"timestamp"`
	Heading   float64 `json:"heading_degrees"`
}

// DirectionSummary aggregates rotation behavior over a full heading track.
type DirectionSummary struct {
	TotalRotation    float64 `json:"total_rotation_degrees"`          // Sum of unsigned shortest angular deltas
	DirectionChanges int     `json:"direction_changes_count"`         // Deltas whose magnitude exceeds 10°
	AverageRate      float64 `json:"average_rotation_rate_deg_per_s"` // Total rotation over elapsed time
	InitialHeading   float64 `json:"initial_heading_degrees"`
	FinalHeading     float64 `json:"final_heading_degrees"`
	Samples          int     `json:"heading_samples"`
}

// CoverageReport compares the span of extracted IMU samples against the
// probed container duration. Observational only; it never alters readings.
type CoverageReport struct {
	SpanStart     float64 `json:"span_start"`
	SpanEnd       float64 `json:"span_end"`
	VideoDuration float64 `json:"video_duration"`
	Percent       float64 `json:"coverage_percent"`
}

// Complete reports whether the IMU span clears the coverage threshold.
func (r CoverageReport) Complete() bool {
	return r.Percent >= CoverageThresholdPercent
}

// CoverageThresholdPercent is the minimum IMU coverage before the
// extractor warns about the metadata tool's record-count truncation.
const CoverageThresholdPercent = 90.0

// ExtractionRun captures one recorded extraction for run tracking.
type ExtractionRun struct {
	RunID         int64      `json:"run_id"`
	VideoPath     string     `json:"video_path"`
	Strategy      string     `json:"strategy"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	ReadingCount  int        `json:"reading_count"`
	CoveragePct   float64    `json:"coverage_pct"`
	ConfigParams  string     `json:"config_params,omitempty"`
	DurationMilli int64      `json:"duration_ms"`
}

// CacheStatus holds status information about the readings cache.
type CacheStatus struct {
	Backend      DatabaseBackend
	Location     string
	TotalEntries int
	OldestEntry  time.Time
	NewestEntry  time.Time
}

// RunsStatus holds status information about the extraction-run log.
type RunsStatus struct {
	Backend   DatabaseBackend
	Location  string
	TotalRuns int
	LastRun   time.Time
}

// ExtractionOutput bundles what an extraction attempt produced.
type ExtractionOutput struct {
	Readings []SensorReading
	Strategy ExtractionStrategy
}
