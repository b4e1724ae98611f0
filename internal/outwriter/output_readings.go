package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/internal/parquet"
	"github.com/veerlabs/veer/schema"
)

// Column orders are a compatibility contract with downstream consumers
// of the tables; do not reorder.
var (
	readingsHeader = []string{"timestamp", "accel_x", "accel_y", "accel_z", "gyro_x", "gyro_y", "gyro_z"}
	headingsHeader = []string{"timestamp", "heading_degrees"}
)

// WriteReadings persists the raw reading sequence, dispatching on the
// configured output format. Empty sequences are a logged no-op; write
// failures propagate to the caller.
func WriteReadings(readings []schema.SensorReading, cfg *contract.Config) error {
	if len(readings) == 0 {
		contract.LogNotice("No IMU data to save")
		return nil
	}

	if cfg.Output == schema.ParquetOut {
		path := swapExt(cfg.ReadingsPath(), ".parquet")
		if err := parquet.WriteReadingsParquet(parquet.ConvertReadings(readings), path); err != nil {
			return err
		}
		contract.LogNotice(fmt.Sprintf("Wrote %d readings to %s", len(readings), path))
		return nil
	}

	path := cfg.ReadingsPath()
	if err := writeWithFile(path, func(w io.Writer) error {
		return writeReadingsCSV(w, readings)
	}, "Wrote readings"); err != nil {
		return err
	}
	return nil
}

// WriteHeadings persists the derived heading sequence, dispatching on the
// configured output format.
func WriteHeadings(headings []schema.HeadingSample, cfg *contract.Config) error {
	if len(headings) == 0 {
		contract.LogNotice("No heading data to save")
		return nil
	}

	if cfg.Output == schema.ParquetOut {
		path := swapExt(cfg.HeadingsPath(), ".parquet")
		if err := parquet.WriteHeadingsParquet(parquet.ConvertHeadings(headings), path); err != nil {
			return err
		}
		contract.LogNotice(fmt.Sprintf("Wrote %d headings to %s", len(headings), path))
		return nil
	}

	path := cfg.HeadingsPath()
	if err := writeWithFile(path, func(w io.Writer) error {
		return writeHeadingsCSV(w, headings)
	}, "Wrote headings"); err != nil {
		return err
	}
	return nil
}

// writeReadingsCSV writes the seven-column readings table. Values use the
// shortest representation that round-trips exactly, so re-reading the
// table reproduces the original floats.
func writeReadingsCSV(w io.Writer, readings []schema.SensorReading) error {
	return writeCSVWithHeader(w, readingsHeader, func(cw *csv.Writer) error {
		for _, r := range readings {
			rec := []string{
				formatFloat(r.Timestamp),
				formatFloat(r.AccelX),
				formatFloat(r.AccelY),
				formatFloat(r.AccelZ),
				formatFloat(r.GyroX),
				formatFloat(r.GyroY),
				formatFloat(r.GyroZ),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeHeadingsCSV writes the two-column headings table.
func writeHeadingsCSV(w io.Writer, headings []schema.HeadingSample) error {
	return writeCSVWithHeader(w, headingsHeader, func(cw *csv.Writer) error {
		for _, h := range headings {
			rec := []string{
				formatFloat(h.Timestamp),
				formatFloat(h.Heading),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatFloat renders a float with exact round-trip precision.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// swapExt replaces a path's extension.
func swapExt(path, newExt string) string {
	if idx := strings.LastIndex(path, "."); idx > strings.LastIndex(path, "/") {
		return path[:idx] + newExt
	}
	return path + newExt
}
