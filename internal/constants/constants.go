package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination defaults.
const (
	// DefaultPerPage is the page size requested when the caller does not set one.
	DefaultPerPage = 10

	// MaxPerPage is the largest page size Canvas honors.
	MaxPerPage = 100
)

// Cache defaults.
const (
	// DefaultCacheSize is the default maximum number of cached responses.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default lifetime of a cached GET response.
	DefaultCacheTTL = 5 * time.Minute
)

// Output formats supported by the CLI.
const (
	// FormatJSON renders command output as JSON.
	FormatJSON = "json"

	// FormatYAML renders command output as YAML.
	FormatYAML = "yaml"

	// FormatTable renders command output as a table.
	FormatTable = "table"
)
