package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummary outputs the direction analysis, dispatching based on the
// output format configured.
func WriteSummary(summary schema.DirectionSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summary, fmtFloat)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, summary, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(w io.Writer, summary schema.DirectionSummary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	label := contract.GetPlainLabel(summary.AverageRate)
	if cfg.UseColors {
		label = contract.GetColorLabel(summary.AverageRate)
	}

	data := [][]string{
		{"Total rotation (°)", fmtFloat(summary.TotalRotation)},
		{"Direction changes", strconv.Itoa(summary.DirectionChanges)},
		{"Average rate (°/s)", fmtFloat(summary.AverageRate)},
		{"Motion label", label},
		{"Initial heading (°)", fmtFloat(summary.InitialHeading)},
		{"Final heading (°)", fmtFloat(summary.FinalHeading)},
		{"Heading samples", strconv.Itoa(summary.Samples)},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Analyzed %d heading samples in %v\n", summary.Samples, duration.Round(time.Millisecond)); err != nil {
		return err
	}
	return nil
}

// writeSummaryCSV writes the direction analysis in CSV format.
func writeSummaryCSV(w io.Writer, summary schema.DirectionSummary, fmtFloat func(float64) string) error {
	header := []string{
		"total_rotation_degrees",
		"direction_changes",
		"average_rate_deg_per_s",
		"label",
		"initial_heading_degrees",
		"final_heading_degrees",
		"heading_samples",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rec := []string{
			fmtFloat(summary.TotalRotation),
			strconv.Itoa(summary.DirectionChanges),
			fmtFloat(summary.AverageRate),
			contract.GetPlainLabel(summary.AverageRate),
			fmtFloat(summary.InitialHeading),
			fmtFloat(summary.FinalHeading),
			strconv.Itoa(summary.Samples),
		}
		return cw.Write(rec)
	})
}
