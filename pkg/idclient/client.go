// Package idclient provides the main entry point for creating Inform Direct API clients
package idclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/informdirect/internal/client"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// New creates a new Inform Direct API client. The config is copied; the
// caller's value is not modified. No request is made until the first call.
func New(ctx context.Context, config *informdirect.Config) (informdirect.Client, error) {
	normalized, err := NormalizeConfig(config)
	if err != nil {
		return nil, err
	}

	c, err := client.New(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeConfig applies defaults to a copy of config and validates it.
// An empty BaseURL resolves from Environment, which defaults to the sandbox.
// Trailing slashes are trimmed and the URL must use https.
func NormalizeConfig(config *informdirect.Config) (*informdirect.Config, error) {
	if config == nil {
		return nil, informdirect.ErrConfigRequired
	}

	normalized := *config

	if normalized.APIKey == "" {
		return nil, informdirect.ErrAPIKeyRequired
	}

	env := normalized.Environment
	if env == "" {
		env = informdirect.EnvironmentSandbox
	}

	envURL, err := env.BaseURL()
	if err != nil {
		return nil, err
	}

	normalized.Environment = env

	if normalized.BaseURL == "" {
		normalized.BaseURL = envURL
	}

	if !strings.HasPrefix(normalized.BaseURL, "https://") {
		return nil, fmt.Errorf("%w: %q", informdirect.ErrInsecureBaseURL, normalized.BaseURL)
	}

	normalized.BaseURL = strings.TrimRight(normalized.BaseURL, "/")

	err = validate.Struct(&normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", informdirect.ErrInvalidConfig, err)
	}

	return &normalized, nil
}

// NewWithAPIKey creates a sandbox client.
func NewWithAPIKey(ctx context.Context, apiKey string) (informdirect.Client, error) {
	return New(ctx, &informdirect.Config{
		APIKey: apiKey,
	})
}

// NewWithEnvironment creates a client for one of the hosted environments.
func NewWithEnvironment(ctx context.Context, apiKey string, env informdirect.Environment) (informdirect.Client, error) {
	return New(ctx, &informdirect.Config{
		APIKey:      apiKey,
		Environment: env,
	})
}

// NewWithBaseURL creates a client for an explicit base URL.
func NewWithBaseURL(ctx context.Context, apiKey, baseURL string) (informdirect.Client, error) {
	return New(ctx, &informdirect.Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
	})
}
