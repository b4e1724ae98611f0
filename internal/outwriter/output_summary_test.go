package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"
)

func TestWriteSummaryJSON(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "summary.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: outFile,
		Precision:  2,
	}

	summary := schema.DirectionSummary{
		TotalRotation:    123.45,
		DirectionChanges: 4,
		AverageRate:      20.5,
		InitialHeading:   0,
		FinalHeading:     90,
		Samples:          100,
	}

	assert.NoError(t, WriteSummary(summary, cfg, time.Second))

	data, err := os.ReadFile(outFile)
	assert.NoError(t, err)

	var decoded schema.DirectionSummary
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, summary, decoded)
}

func TestWriteSummaryCSV(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "summary.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: outFile,
		Precision:  1,
	}

	summary := schema.DirectionSummary{
		TotalRotation:    360.0,
		DirectionChanges: 2,
		AverageRate:      30.0,
		Samples:          50,
	}

	assert.NoError(t, WriteSummary(summary, cfg, time.Second))

	f, err := os.Open(outFile)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "total_rotation_degrees", records[0][0])
	assert.Equal(t, "360.0", records[1][0])
	assert.Equal(t, "2", records[1][1])
	assert.Equal(t, contract.TurningValue, records[1][3])
}

func TestWriteSummaryTable(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "summary.txt")
	cfg := &contract.Config{
		Output:     schema.TextOut,
		OutputFile: outFile,
		Precision:  1,
		UseColors:  false,
	}

	summary := schema.DirectionSummary{
		TotalRotation: 10.0,
		AverageRate:   1.0,
		Samples:       7,
	}

	assert.NoError(t, WriteSummary(summary, cfg, 1500*time.Millisecond))

	data, err := os.ReadFile(outFile)
	assert.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Total rotation")
	assert.Contains(t, text, contract.SteadyValue)
	assert.Contains(t, text, "Analyzed 7 heading samples")
}

func TestWriteRunsTable(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "runs.txt")
	cfg := &contract.Config{
		OutputFile: outFile,
		Width:      120,
	}

	endTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	runs := []schema.ExtractionRun{
		{RunID: 1, VideoPath: "/v/clip1.insv", Strategy: "raw", ReadingCount: 5000, CoveragePct: 97.5, EndTime: &endTime, DurationMilli: 1200},
		{RunID: 2, VideoPath: "/v/clip2.mp4", Strategy: "grouped", ReadingCount: 10},
	}

	assert.NoError(t, WriteRuns(runs, cfg))

	data, err := os.ReadFile(outFile)
	assert.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "clip1.insv")
	assert.Contains(t, text, "97.5%")
	assert.Contains(t, text, "1.2s")
	// Unfinished run shows a placeholder duration
	assert.Contains(t, text, "-")
	assert.Contains(t, text, "Showing 2 extraction runs")
}
