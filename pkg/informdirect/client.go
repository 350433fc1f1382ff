package informdirect

import (
	"context"
	"net/http"
	"time"
)

// Client is the main interface for the Inform Direct API.
//
// A Client holds one token pair and assumes one call in flight at a time.
// Callers sharing a Client across goroutines must serialize calls.
type Client interface {
	// Authenticate exchanges the API key for a new token pair and stores it.
	Authenticate(ctx context.Context) (*TokenPair, error)
	// Logout revokes the refresh token on a best effort basis and always
	// clears the stored pair.
	Logout(ctx context.Context)
	// IsAuthenticated reports whether a token pair is held.
	IsAuthenticated() bool
	// Tokens returns a copy of the held token pair, or nil.
	Tokens() *TokenPair

	Companies() CompaniesClient
}

// CompaniesClient manages the companies in the account's portfolio.
type CompaniesClient interface {
	List(ctx context.Context) ([]CompanySummary, error)
	// Get returns nil without error when the company is not in the portfolio.
	Get(ctx context.Context, companyNumber string) (*CompanySummary, error)
	Add(ctx context.Context, companyNumber string, opts *AddCompanyOptions) (*MessageResponse, error)
	Remove(ctx context.Context, companyNumber string, opts *RemoveCompanyOptions) (*MessageResponse, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds configuration for creating a client.
type Config struct {
	// APIKey is the integration API key exchanged for tokens. Required.
	APIKey string `validate:"required"`

	// BaseURL overrides the environment's URL. It must use https; trailing
	// slashes are trimmed by idclient.New.
	BaseURL string `validate:"required,url"`
	// Environment selects the hosted deployment when BaseURL is empty.
	// Defaults to the sandbox.
	Environment Environment

	// HTTPClient replaces the underlying http.Client. Its Transport is wrapped
	// for metrics; the value passed in is not modified.
	HTTPClient *http.Client
	// HTTPTimeout sets a per-request timeout. Zero leaves the HTTPClient's own.
	HTTPTimeout time.Duration `validate:"gte=0"`

	// RetryMax enables transport level retries of connection errors and 5xx
	// responses. Zero disables them; 401 recovery is independent of this.
	RetryMax     int           `validate:"gte=0"`
	RetryWaitMin time.Duration `validate:"gte=0"`
	RetryWaitMax time.Duration `validate:"gte=0"`

	// RequestsPerSecond limits outgoing requests when positive.
	RequestsPerSecond float64 `validate:"gte=0"`

	UserAgent string

	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP and auth layers.
	Logger Logger

	// RequestInterceptors run before every attempt, in order.
	RequestInterceptors []RequestInterceptor
	// ResponseInterceptors run after every attempt, in order.
	ResponseInterceptors []ResponseInterceptor
}
