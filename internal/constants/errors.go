package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKey          = errors.New("no API key configured, set INFORM_DIRECT_API_KEY or run 'informdirect config set api_key <key>'")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidOutput     = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidRateLimit  = errors.New("invalid rate limit, expected a non-negative number")
	ErrInvalidJWTFormat  = errors.New("invalid JWT format")
	ErrNoExpirationClaim = errors.New("no expiration claim found")
)

// Required flag errors.
var (
	ErrCompanyRequired = errors.New("--company (-c) is required")
)
