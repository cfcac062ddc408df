package config

// Application constants
const (
	AppName = "gamryparse"

	// EnvPrefix namespaces every environment variable, e.g. GAMRY_LOGGING_LEVEL.
	EnvPrefix = "GAMRY"

	// Config file names searched when no explicit path is given
	DefaultConfigFile = "gamryparse.yaml"

	DefaultLogFile     = "logs/gamryparse.log"
	DefaultOutputDir   = "out"
	DefaultFilePattern = "*.DTA"
	DefaultWorkers     = 4
	MaxWorkers         = 64

	// Export formats
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	// Trace exporters
	TracingNone   = "none"
	TracingStdout = "stdout"
)
