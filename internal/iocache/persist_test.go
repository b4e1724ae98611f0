package iocache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/veerlabs/veer/schema"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		tableName string
		wantErr   bool
	}{
		{"veer_readings_cache", false},
		{"veer_extraction_runs", false},
		{"_private", false},
		{"Table123", false},
		{"", true},
		{"1starts_with_digit", true},
		{"has-dash", true},
		{"has space", true},
		{"drop;table", true},
		{`quoted"name`, true},
	}

	for _, tt := range tests {
		t.Run(tt.tableName, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
			} else {
				assert.NoError(t, err, "validateTableName should accept %q", tt.tableName)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"veer_readings_cache"`, quoteTableName("veer_readings_cache", schema.SQLiteBackend))
	assert.Equal(t, "`veer_readings_cache`", quoteTableName("veer_readings_cache", schema.MySQLBackend))
	assert.Equal(t, `"veer_readings_cache"`, quoteTableName("veer_readings_cache", schema.PostgreSQLBackend))
}

func TestGetPlaceholder(t *testing.T) {
	assert.Equal(t, "$1", getPlaceholder(schema.PostgreSQLBackend, 1))
	assert.Equal(t, "$4", getPlaceholder(schema.PostgreSQLBackend, 4))
	assert.Equal(t, "?", getPlaceholder(schema.SQLiteBackend, 1))
	assert.Equal(t, "?", getPlaceholder(schema.MySQLBackend, 2))
}

func TestGetUpsertQueryPerBackend(t *testing.T) {
	mysqlStore := &CacheStoreImpl{tableName: readingsTable, backend: schema.MySQLBackend}
	assert.Contains(t, mysqlStore.getUpsertQuery(), "ON DUPLICATE KEY UPDATE")

	pgStore := &CacheStoreImpl{tableName: readingsTable, backend: schema.PostgreSQLBackend}
	assert.Contains(t, pgStore.getUpsertQuery(), "ON CONFLICT (cache_key) DO UPDATE")

	sqliteStore := &CacheStoreImpl{tableName: readingsTable, backend: schema.SQLiteBackend}
	assert.Contains(t, sqliteStore.getUpsertQuery(), "INSERT OR REPLACE")
}

func TestGetCreateTableQueryPerBackend(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(readingsTable, schema.MySQLBackend), "MEDIUMBLOB")
	assert.Contains(t, getCreateTableQuery(readingsTable, schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery(readingsTable, schema.SQLiteBackend), "BLOB")
}

func TestGetCreateRunsQueryPerBackend(t *testing.T) {
	assert.Contains(t, getCreateRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, getCreateRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateRunsQuery(schema.SQLiteBackend), "AUTOINCREMENT")
}

func TestNoneBackendStoreIsNoOp(t *testing.T) {
	store, err := NewCacheStore(readingsTable, schema.NoneBackend, "")
	assert.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.NoError(t, store.Set("key", []byte("value"), 1, 42))

	_, _, _, err = store.Get("key")
	assert.Error(t, err)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.Zero(t, status.TotalEntries)
}

func TestNoneBackendRunStoreIsNoOp(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	assert.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun("clip.insv", time.Now(), nil)
	assert.NoError(t, err)
	assert.Zero(t, runID)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)
}
