// Package constants provides shared constants for the property-calculators application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ToleranceForComparison is the tolerance for relational input checks (1 dollar)
	ToleranceForComparison = 1.0

	// MaxProjectionPeriods caps every multi-year projection
	MaxProjectionPeriods = 30
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format (projection rows)
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable output format
	OutputFormatJSON = "json"

	// OutputFormatMarkdown renders the analysis report
	OutputFormatMarkdown = "markdown"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is loaded into the environment before configuration is read
	DefaultEnvFile = ".env"

	// EnvPrefix is the prefix for environment overrides (CALC_CACHE_ADDRESS, ...)
	EnvPrefix = "CALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRequestTimeout bounds a single API request
	DefaultRequestTimeout = 30 * time.Second

	// RequestIDHeader carries the per-request identifier
	RequestIDHeader = "X-Request-ID"
)

// Infrastructure defaults
const (
	// DefaultCacheTTL is how long a calculation result stays cached
	DefaultCacheTTL = 15 * time.Minute

	// DefaultCacheDialTimeout bounds the initial Redis ping
	DefaultCacheDialTimeout = 5 * time.Second

	// DefaultBatchConcurrency is the number of calculations run at once by the batch runner
	DefaultBatchConcurrency = 4
)
