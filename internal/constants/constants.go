package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Configuration locations.
const (
	// ConfigDirName is the directory under the user's home holding config.yml.
	ConfigDirName = ".informdirect"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yml"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "INFORM_DIRECT"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// HTTP and network settings.
const (
	// ShortHTTPTimeout bounds best-effort calls such as logout.
	ShortHTTPTimeout = 10 * time.Second

	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 10 * time.Second

	// MaxResponseBodySize caps how much of a response body is read.
	MaxResponseBodySize = 10 << 20

	// DefaultUserAgent is sent when the caller does not set one.
	DefaultUserAgent = "informdirect-go"

	// ContentTypeJSON is the media type of every request and response body.
	ContentTypeJSON = "application/json"
)

// API paths.
const (
	PathAuthenticate    = "/authenticate"
	PathRefresh         = "/refresh"
	PathLogout          = "/logout"
	PathCompanies       = "/companies"
	PathCompaniesAdd    = "/companies/add"
	PathCompaniesDelete = "/companies/delete"
)

// UI and display constants.
const (
	// MaskedTokenSuffixLength is how many trailing characters of a token are shown.
	MaskedTokenSuffixLength = 10

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatTable for tabular output.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)
