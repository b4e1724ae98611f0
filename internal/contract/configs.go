package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veerlabs/veer/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 6
	DefaultReadingsFile = "imu_data.csv"
	DefaultHeadingsFile = "heading_data.csv"
)

// Config holds the runtime configuration for an extraction.
// This struct remains the "final, validated" config.
type Config struct {
	VideoPath  string // Container given on the command line
	SensorPath string // Preferred source for IMU extraction (raw sibling when present)

	OutputDir    string
	ReadingsFile string
	HeadingsFile string

	Output     schema.OutputMode
	OutputFile string
	Precision  int

	GravityComp bool
	Width       int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	VideoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputDir      string `mapstructure:"output-dir"`
	ReadingsFile   string `mapstructure:"readings-file"`
	HeadingsFile   string `mapstructure:"headings-file"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	GravityComp    bool   `mapstructure:"gravity-comp"`
	Width          int    `mapstructure:"width"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`
	Color          string `mapstructure:"color"`
}

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ReadingsPath returns the full path of the readings table.
func (c *Config) ReadingsPath() string {
	return filepath.Join(c.OutputDir, c.ReadingsFile)
}

// HeadingsPath returns the full path of the headings table.
func (c *Config) HeadingsPath() string {
	return filepath.Join(c.OutputDir, c.HeadingsFile)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processBackends(cfg, input); err != nil {
		return err
	}
	return resolveVideoPaths(cfg, input)
}

// validateSimpleInputs handles scalar fields that need only range checks.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Precision < 0 || input.Precision > 12 {
		return fmt.Errorf("precision must be between 0 and 12, got %d", input.Precision)
	}
	cfg.Precision = input.Precision

	switch out := schema.OutputMode(input.Output); out {
	case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut:
		cfg.Output = out
	default:
		return fmt.Errorf("invalid output mode %q. Must be text, csv, json or parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	cfg.ReadingsFile = input.ReadingsFile
	if cfg.ReadingsFile == "" {
		cfg.ReadingsFile = DefaultReadingsFile
	}
	cfg.HeadingsFile = input.HeadingsFile
	if cfg.HeadingsFile == "" {
		cfg.HeadingsFile = DefaultHeadingsFile
	}

	cfg.GravityComp = input.GravityComp
	cfg.Width = input.Width
	cfg.UseColors = parseBoolish(input.Color, true)
	return nil
}

// processBackends validates persistence settings for the readings cache
// and the run log.
func processBackends(cfg *Config, input *ConfigRawInput) error {
	cacheBackend := schema.DatabaseBackend(input.CacheBackend)
	if err := ValidateDatabaseConnectionString(cacheBackend, input.CacheDBConnect); err != nil {
		return err
	}
	cfg.CacheBackend = cacheBackend
	cfg.CacheDBConnect = input.CacheDBConnect

	runsBackend := schema.DatabaseBackend(input.RunsBackend)
	if input.RunsBackend != "" {
		if err := ValidateDatabaseConnectionString(runsBackend, input.RunsDBConnect); err != nil {
			return err
		}
		if input.RunsDBConnect != "" && input.RunsDBConnect == input.CacheDBConnect {
			return fmt.Errorf("runs-db-connect must differ from cache-db-connect")
		}
	}
	cfg.RunsBackend = runsBackend
	cfg.RunsDBConnect = input.RunsDBConnect
	return nil
}

// resolveVideoPaths checks the input container exists and applies the
// raw-sibling preference for IMU extraction.
func resolveVideoPaths(cfg *Config, input *ConfigRawInput) error {
	if input.VideoPathStr == "" {
		return fmt.Errorf("a video file path is required")
	}
	info, err := os.Stat(input.VideoPathStr)
	if err != nil {
		return fmt.Errorf("video file not found: %q", input.VideoPathStr)
	}
	if info.IsDir() {
		return fmt.Errorf("%q is a directory, expected a video file", input.VideoPathStr)
	}
	cfg.VideoPath = input.VideoPathStr
	cfg.SensorPath = ResolveSensorSource(input.VideoPathStr)
	return nil
}

// ResolveSensorSource returns the best file to extract IMU data from.
// When the input has the standard container extension and a sibling with
// the vendor raw extension exists next to it (case-insensitive, same base
// name), the sibling is preferred because the raw container carries the
// full sensor stream. Otherwise the input itself is returned.
func ResolveSensorSource(videoPath string) string {
	ext := filepath.Ext(videoPath)
	if !strings.EqualFold(ext, schema.StandardExt) {
		return videoPath
	}
	base := strings.TrimSuffix(videoPath, ext)
	for _, candidate := range []string{base + schema.RawExt, base + strings.ToUpper(schema.RawExt)} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return videoPath
}

// IsRawContainer reports whether the path has the vendor raw extension.
func IsRawContainer(path string) bool {
	return strings.EqualFold(filepath.Ext(path), schema.RawExt)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend, "":
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a db-connect string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must use format: user:password@tcp(host:port)/dbname")
		}
		return nil
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a db-connect string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must use key=value pairs or a postgres:// URL")
		}
		return nil
	default:
		return fmt.Errorf("unsupported backend %q. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// parseBoolish interprets yes/no style flag values.
func parseBoolish(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
