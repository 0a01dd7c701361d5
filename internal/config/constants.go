package config

// Application constants
const (
	// Application Info
	AppName    = "assembly-stats-db"
	AppVersion = "0.1.0"

	// EnvPrefix namespaces every environment variable, e.g.
	// ASMSTATS_LOGGING_LEVEL or ASMSTATS_OUTPUT_FORMATS.
	EnvPrefix = "ASMSTATS"

	// Report formats
	FormatTSV    = "tsv"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"

	// Report naming: <prefix>_<YYYYMMDD>.<ext>
	DefaultReportPrefix = "NCBI_Assembly_Stats"
	ReportDateLayout    = "20060102"

	// Outlier filter defaults
	DefaultIQRMultiplier = 1.5
	DefaultMinSampleSize = 4

	// DefaultMaxLineBytes is far above any real assembly_summary row.
	DefaultMaxLineBytes = 4 * 1024 * 1024

	DefaultS3Region = "us-east-1"
	DefaultLogFile  = "logs/assemblystats.log"
)

// VersionString is what -V prints.
func VersionString() string {
	return AppName + " v" + AppVersion
}
