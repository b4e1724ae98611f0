package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/veerlabs/veer/internal/contract"
	"github.com/veerlabs/veer/schema"
)

// extractionRunsTable is the name of the table for extraction run tracking.
const extractionRunsTable = "veer_extraction_runs"

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	db, location, err := openBackend(backend, connStr, GetRunsDBFilePath)
	if err != nil {
		return nil, err
	}

	if db != nil {
		if err := createRunTables(db, backend); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create run tables: %w", err)
		}
	}

	return &RunStoreImpl{
		db:       db,
		backend:  backend,
		location: location,
	}, nil
}

// createRunTables creates the extraction run tracking table.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	query := getCreateRunsQuery(backend)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", extractionRunsTable, err)
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for veer_extraction_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(extractionRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				video_path VARCHAR(512) NOT NULL,
				strategy VARCHAR(50),
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				reading_count INT,
				coverage_pct DOUBLE,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				video_path TEXT NOT NULL,
				strategy TEXT,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				reading_count INT,
				coverage_pct DOUBLE PRECISION,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				video_path TEXT NOT NULL,
				strategy TEXT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				reading_count INTEGER,
				coverage_pct REAL,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new extraction run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(videoPath string, startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(extractionRunsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (video_path, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, videoPath, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (video_path, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, videoPath, formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert extraction run: %w", err)
	}

	return runID, nil
}

// EndRun updates the extraction run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, strategy schema.ExtractionStrategy, readingCount int, coveragePct float64) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(extractionRunsTable, rs.backend)
	startTime, err := rs.getRunStartTime(quotedTableName, runID)
	if err != nil {
		return err
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	var args []any

	switch rs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, strategy = $3, reading_count = $4, coverage_pct = $5 WHERE run_id = $6`, quotedTableName)
		args = []any{endTime, durationMs, string(strategy), readingCount, coveragePct, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, strategy = ?, reading_count = ?, coverage_pct = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, rs.backend), durationMs, string(strategy), readingCount, coveragePct, runID}
	}

	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update extraction run: %w", err)
	}

	return nil
}

// getRunStartTime reads back the recorded start time for a run, handling the
// per-backend time storage format.
func (rs *RunStoreImpl) getRunStartTime(quotedTableName string, runID int64) (time.Time, error) {
	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	row := rs.db.QueryRow(query, runID)

	if rs.backend == schema.SQLiteBackend {
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse start_time: %w", err)
		}
		return startTime, nil
	}

	// MySQL and PostgreSQL store as native datetime
	var startTime time.Time
	if err := row.Scan(&startTime); err != nil {
		return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	return startTime, nil
}

// GetAllRuns retrieves all extraction runs from the store.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.ExtractionRun, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(extractionRunsTable, rs.backend)
	query := fmt.Sprintf("SELECT run_id, video_path, strategy, start_time, end_time, run_duration_ms, reading_count, coverage_pct, config_params FROM %s ORDER BY run_id", quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query extraction runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ExtractionRun

	for rows.Next() {
		var record schema.ExtractionRun

		// Columns filled in by EndRun are NULL for unfinished runs
		var strategy sql.NullString
		var durationMs, readingCount sql.NullInt64
		var coveragePct sql.NullFloat64

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &record.VideoPath, &strategy, &startTimeStr, &endTimeStr, &durationMs, &readingCount, &coveragePct, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan extraction run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.VideoPath, &strategy, &record.StartTime, &record.EndTime, &durationMs, &readingCount, &coveragePct, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan extraction run: %w", err)
			}
		}

		record.Strategy = strategy.String
		record.DurationMilli = durationMs.Int64
		record.ReadingCount = int(readingCount.Int64)
		record.CoveragePct = coveragePct.Float64
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating extraction runs: %w", err)
	}

	return results, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunsStatus, error) {
	status := schema.RunsStatus{
		Backend:  rs.backend,
		Location: rs.location,
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(extractionRunsTable, rs.backend)

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	row := rs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns == 0 {
		return status, nil
	}

	// Get last run info
	lastRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedTableName)
	row = rs.db.QueryRow(lastRunQuery)

	if rs.backend == schema.SQLiteBackend {
		var lastRunStr string
		if err := row.Scan(&lastRunStr); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		lastRun, err := time.Parse(time.RFC3339Nano, lastRunStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRun = lastRun
	} else {
		if err := row.Scan(&status.LastRun); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
	}

	return status, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
