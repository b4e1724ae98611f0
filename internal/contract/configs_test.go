package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veerlabs/veer/schema"
)

func touch(t *testing.T, path string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestResolveSensorSourcePrefersRawSibling(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	sibling := filepath.Join(dir, "clip.insv")
	touch(t, video)
	touch(t, sibling)

	assert.Equal(t, sibling, ResolveSensorSource(video))
}

func TestResolveSensorSourceUppercaseSibling(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	sibling := filepath.Join(dir, "clip.INSV")
	touch(t, video)
	touch(t, sibling)

	assert.Equal(t, sibling, ResolveSensorSource(video))
}

func TestResolveSensorSourceNoSibling(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	touch(t, video)

	assert.Equal(t, video, ResolveSensorSource(video))
}

func TestResolveSensorSourceRawInputUnchanged(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.insv")
	touch(t, video)

	assert.Equal(t, video, ResolveSensorSource(video))
}

func TestIsRawContainer(t *testing.T) {
	assert.True(t, IsRawContainer("a/b/clip.insv"))
	assert.True(t, IsRawContainer("CLIP.INSV"))
	assert.False(t, IsRawContainer("clip.mp4"))
	assert.False(t, IsRawContainer("clip"))
}

func TestProcessAndValidate(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	touch(t, video)

	cfg := &Config{}
	input := &ConfigRawInput{
		VideoPathStr: video,
		Output:       "csv",
		Precision:    3,
		CacheBackend: "sqlite",
		Color:        "no",
	}

	assert.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, video, cfg.VideoPath)
	assert.Equal(t, video, cfg.SensorPath)
	assert.Equal(t, schema.CSVOut, cfg.Output)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, DefaultReadingsFile, cfg.ReadingsFile)
	assert.Equal(t, DefaultHeadingsFile, cfg.HeadingsFile)
	assert.False(t, cfg.UseColors)
	assert.Equal(t, filepath.Join(".", DefaultReadingsFile), cfg.ReadingsPath())
}

func TestProcessAndValidateErrors(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	touch(t, video)

	tests := []struct {
		name  string
		input ConfigRawInput
	}{
		{"missing video", ConfigRawInput{Output: "text", CacheBackend: "sqlite"}},
		{"video is a directory", ConfigRawInput{VideoPathStr: dir, Output: "text", CacheBackend: "sqlite"}},
		{"bad precision", ConfigRawInput{VideoPathStr: video, Output: "text", Precision: 99, CacheBackend: "sqlite"}},
		{"bad output mode", ConfigRawInput{VideoPathStr: video, Output: "yaml", CacheBackend: "sqlite"}},
		{"bad backend", ConfigRawInput{VideoPathStr: video, Output: "text", CacheBackend: "oracle"}},
		{"mysql without conn", ConfigRawInput{VideoPathStr: video, Output: "text", CacheBackend: "mysql"}},
		{
			"same conn for cache and runs",
			ConfigRawInput{
				VideoPathStr: video, Output: "text",
				CacheBackend: "mysql", CacheDBConnect: "u:p@tcp(h:3306)/db",
				RunsBackend: "mysql", RunsDBConnect: "u:p@tcp(h:3306)/db",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			assert.Error(t, ProcessAndValidate(&Config{}, &input))
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString("", ""))

	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/veer"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "localhost:3306"))

	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=veer"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "postgres://user@localhost/veer"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "localhost"))

	assert.Error(t, ValidateDatabaseConnectionString("oracle", "whatever"))
}

func TestParseBoolish(t *testing.T) {
	assert.True(t, parseBoolish("yes", false))
	assert.True(t, parseBoolish("TRUE", false))
	assert.True(t, parseBoolish("1", false))
	assert.False(t, parseBoolish("no", true))
	assert.False(t, parseBoolish("off", true))
	assert.True(t, parseBoolish("gibberish", true))
	assert.False(t, parseBoolish("", false))
}
