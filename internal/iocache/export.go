package iocache

import (
	"errors"
	"fmt"

	"github.com/veerlabs/veer/internal/parquet"
)

// ExecuteRunsExport performs the actual export of run history to a Parquet file.
func ExecuteRunsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run tracking is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get runs status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total extraction runs: %d\n", status.TotalRuns)

	// Retrieve all extraction runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve extraction runs: %w", err)
	}

	// Convert to Parquet format and write
	records := parquet.ConvertRuns(runs)
	if err := parquet.WriteRunsParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write extraction runs: %w", err)
	}
	fmt.Printf("Exported %d extraction runs to: %s\n", len(records), outputFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
