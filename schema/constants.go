package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ExtractionStrategy represents the parser strategy that produced a reading set.
	ExtractionStrategy string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv" // default for extract tables
	TextOut    OutputMode = "text"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All extraction strategies, in the order they are attempted.
const (
	RawStrategy     ExtractionStrategy = "raw"     // plain-text exiftool stream, proprietary containers
	GroupedStrategy ExtractionStrategy = "grouped" // grouped JSON exiftool output
	NoStrategy      ExtractionStrategy = ""        // extraction produced nothing
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Vendor container extensions. The raw sibling is preferred for IMU
// extraction when it sits next to the standard container.
const (
	StandardExt = ".mp4"
	RawExt      = ".insv"
)
