// Package contract provides interfaces and shared utilities for the veer CLI's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/veerlabs/veer/schema"
)

// MetadataClient defines the operations needed to pull embedded metadata
// out of a video container. This allows the core extraction logic to be
// tested without needing a real exiftool executable.
type MetadataClient interface {
	// Run executes the metadata tool with arbitrary arguments.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, args ...string) ([]byte, error)

	// ExtractRaw returns the ungrouped, duplicate-tolerant plain-text
	// metadata stream used for proprietary raw containers.
	ExtractRaw(ctx context.Context, videoPath string) ([]byte, error)

	// ExtractJSON returns the grouped JSON metadata document with deep
	// embedded-data extraction enabled.
	ExtractJSON(ctx context.Context, videoPath string) ([]byte, error)
}

// MediaProber defines the operations needed to inspect container-level
// properties of a video file.
type MediaProber interface {
	// Duration returns the container duration in seconds.
	Duration(ctx context.Context, videoPath string) (float64, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetReadingsStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cached reading-set storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking extraction runs.
type RunStore interface {
	// BeginRun creates a new extraction run and returns its unique ID.
	BeginRun(videoPath string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the extraction run with completion data.
	EndRun(runID int64, endTime time.Time, strategy schema.ExtractionStrategy, readingCount int, coveragePct float64) error

	// GetAllRuns returns every recorded extraction run.
	GetAllRuns() ([]schema.ExtractionRun, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunsStatus, error)

	// Close closes the underlying connection.
	Close() error
}
