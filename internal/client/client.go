package client

import (
	"context"
	"errors"

	"github.com/fivetwenty-io/informdirect/internal/auth"
	"github.com/fivetwenty-io/informdirect/internal/constants"
	"github.com/fivetwenty-io/informdirect/internal/http"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrAPIKeyRequired  = errors.New("API key is required")
)

// Client implements the informdirect.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager *auth.Manager
	baseURL      string

	companies informdirect.CompaniesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *informdirect.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	httpOpts = append(httpOpts, http.WithInterceptors(createInterceptorChain(config)))

	return httpOpts
}

// createInterceptorChain tags every attempt with a request id, applies the
// rate limit and then the caller's interceptors.
func createInterceptorChain(config *informdirect.Config) *informdirect.InterceptorChain {
	chain := informdirect.NewInterceptorChain()
	chain.AddRequestInterceptor(informdirect.RequestIDInterceptor())

	if config.RequestsPerSecond > 0 {
		chain.AddRequestInterceptor(informdirect.RateLimitInterceptor(config.RequestsPerSecond))
	}

	for _, interceptor := range config.RequestInterceptors {
		chain.AddRequestInterceptor(interceptor)
	}

	for _, interceptor := range config.ResponseInterceptors {
		chain.AddResponseInterceptor(interceptor)
	}

	return chain
}

// New creates a client from a normalized config. Use idclient.New for
// defaulting and validation.
func New(config *informdirect.Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	if config.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	// Auth endpoints share the transport but never carry a bearer token.
	baseClient := http.NewClient(config.BaseURL, nil, createHTTPClientOptions(config)...)
	tokenManager := auth.NewManager(config.APIKey, baseClient, config.Logger)
	httpClient := baseClient.WithTokenManager(tokenManager)

	return &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      httpClient.BaseURL(),
		companies:    NewCompaniesClient(httpClient),
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticate implements informdirect.Client.Authenticate.
func (c *Client) Authenticate(ctx context.Context) (*informdirect.TokenPair, error) {
	return c.tokenManager.Authenticate(ctx)
}

// Logout implements informdirect.Client.Logout.
func (c *Client) Logout(ctx context.Context) {
	c.tokenManager.Logout(ctx)
}

// IsAuthenticated implements informdirect.Client.IsAuthenticated.
func (c *Client) IsAuthenticated() bool {
	return c.tokenManager.IsAuthenticated()
}

// Tokens implements informdirect.Client.Tokens.
func (c *Client) Tokens() *informdirect.TokenPair {
	return c.tokenManager.Tokens()
}

// Companies implements informdirect.Client.Companies.
func (c *Client) Companies() informdirect.CompaniesClient {
	return c.companies
}
