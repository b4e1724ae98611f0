package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRuns prints the extraction-run log as a human-readable table.
func WriteRuns(runs []schema.ExtractionRun, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeRunsTable(w, runs, cfg)
	}, "Wrote table")
}

// writeRunsTable renders one row per recorded extraction run.
func writeRunsTable(w io.Writer, runs []schema.ExtractionRun, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Video", "Strategy", "Readings", "Coverage", "Duration"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxVideoWidth := getMaxTableVideoWidth(cfg.Width)

	var data [][]string
	for _, run := range runs {
		duration := "-"
		if run.EndTime != nil {
			duration = (time.Duration(run.DurationMilli) * time.Millisecond).String()
		}
		row := []string{
			strconv.FormatInt(run.RunID, 10),
			contract.TruncatePath(run.VideoPath, maxVideoWidth),
			run.Strategy,
			strconv.Itoa(run.ReadingCount),
			fmt.Sprintf("%.1f%%", run.CoveragePct),
			duration,
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d extraction runs\n", len(runs)); err != nil {
		return err
	}
	return nil
}
