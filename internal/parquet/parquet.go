// Package parquet provides data structures and functions for exporting
// veer sensor data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/veerlabs/veer/schema"
)

// ReadingRecord represents a single IMU reading in the readings export.
type ReadingRecord struct {
	// Timestamp is seconds from stream start
	Timestamp float64 `parquet:"timestamp,snappy"`

	// Accelerometer axes, g-force or m/s² depending on compensation
	AccelX float64 `parquet:"accel_x,snappy"`
	AccelY float64 `parquet:"accel_y,snappy"`
	AccelZ float64 `parquet:"accel_z,snappy"`

	// Gyroscope axes, rad/s
	GyroX float64 `parquet:"gyro_x,snappy"`
	GyroY float64 `parquet:"gyro_y,snappy"`
	GyroZ float64 `parquet:"gyro_z,snappy"`
}

// HeadingRecord represents a single derived heading sample.
type HeadingRecord struct {
	Timestamp float64 `parquet:"timestamp,snappy"`
	Heading   float64 `parquet:"heading_degrees,snappy"`
}

// ExtractionRunRecord represents one tracked extraction run.
// This struct maps to the veer_extraction_runs database table.
type ExtractionRunRecord struct {
	// RunID is the unique identifier for this extraction run
	RunID int64 `parquet:"run_id,snappy"`

	// VideoPath is the sensor source the run extracted from
	VideoPath string `parquet:"video_path,snappy"`

	// Strategy is the parser strategy that produced the readings
	Strategy string `parquet:"strategy,snappy"`

	// StartTime is when the extraction began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the extraction completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds
	RunDurationMs int64 `parquet:"run_duration_ms,snappy"`

	// ReadingCount is the number of readings the run produced
	ReadingCount int32 `parquet:"reading_count,snappy"`

	// CoveragePct is the IMU span over the video duration, in percent
	CoveragePct float64 `parquet:"coverage_pct,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ConvertReadings maps schema readings to their export representation.
func ConvertReadings(readings []schema.SensorReading) []ReadingRecord {
	records := make([]ReadingRecord, len(readings))
	for i, r := range readings {
		records[i] = ReadingRecord{
			Timestamp: r.Timestamp,
			AccelX:    r.AccelX,
			AccelY:    r.AccelY,
			AccelZ:    r.AccelZ,
			GyroX:     r.GyroX,
			GyroY:     r.GyroY,
			GyroZ:     r.GyroZ,
		}
	}
	return records
}

// ConvertHeadings maps heading samples to their export representation.
func ConvertHeadings(headings []schema.HeadingSample) []HeadingRecord {
	records := make([]HeadingRecord, len(headings))
	for i, h := range headings {
		records[i] = HeadingRecord{Timestamp: h.Timestamp, Heading: h.Heading}
	}
	return records
}

// ConvertRuns maps extraction runs to their export representation.
func ConvertRuns(runs []schema.ExtractionRun) []ExtractionRunRecord {
	records := make([]ExtractionRunRecord, len(runs))
	for i, run := range runs {
		record := ExtractionRunRecord{
			RunID:         run.RunID,
			VideoPath:     run.VideoPath,
			Strategy:      run.Strategy,
			StartTime:     run.StartTime,
			EndTime:       run.EndTime,
			RunDurationMs: run.DurationMilli,
			ReadingCount:  int32(run.ReadingCount),
			CoveragePct:   run.CoveragePct,
		}
		if run.ConfigParams != "" {
			params := run.ConfigParams
			record.ConfigParams = &params
		}
		records[i] = record
	}
	return records
}

// WriteReadingsParquet writes a slice of ReadingRecord structs to a Parquet file.
func WriteReadingsParquet(data []ReadingRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteHeadingsParquet writes a slice of HeadingRecord structs to a Parquet file.
func WriteHeadingsParquet(data []HeadingRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunsParquet writes a slice of ExtractionRunRecord structs to a Parquet file.
func WriteRunsParquet(data []ExtractionRunRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records of any schema-inferable type to a file.
// The Parquet schema is derived from the struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
