// Package auth owns the API key and the token pair and implements the
// authenticate, refresh and logout lifecycle.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/informdirect/internal/constants"
	idhttp "github.com/fivetwenty-io/informdirect/internal/http"
	"github.com/fivetwenty-io/informdirect/internal/metrics"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
)

// Manager exchanges the API key for token pairs and recovers from rejected
// access tokens. It implements idhttp.TokenManager.
//
// Any failed authenticate or refresh clears the held pair, so a request never
// carries a pair that recovery has given up on.
type Manager struct {
	apiKey string
	client *idhttp.Client
	store  *TokenStore
	logger informdirect.Logger
}

// NewManager creates a token manager. client must not carry a token manager
// of its own; auth endpoints are called unauthenticated.
func NewManager(apiKey string, client *idhttp.Client, logger informdirect.Logger) *Manager {
	if logger == nil {
		logger = noopLogger{}
	}

	return &Manager{
		apiKey: apiKey,
		client: client,
		store:  NewTokenStore(),
		logger: logger,
	}
}

// Authenticate exchanges the API key for a new token pair.
func (m *Manager) Authenticate(ctx context.Context) (*informdirect.TokenPair, error) {
	pair, err := m.authenticate(ctx)
	metrics.RecordAuthEvent(metrics.AuthEventAuthenticate, err)

	if err != nil {
		m.store.Clear()

		return nil, err
	}

	m.store.Set(pair)
	m.logger.Debug("Authenticated", nil)

	return pair, nil
}

func (m *Manager) authenticate(ctx context.Context) (*informdirect.TokenPair, error) {
	resp, err := m.client.Send(ctx, &idhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathAuthenticate,
		Body:   authenticateRequest{APIKey: m.apiKey},
	})
	if err != nil {
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return nil, informdirect.NewAuthenticationError(
			resp.StatusCode,
			fmt.Sprintf("Authentication failed: %d", resp.StatusCode),
			string(resp.Body),
			nil,
		)
	}

	return decodeTokens(resp, "Authentication")
}

// Refresh exchanges the held refresh token for a new pair.
func (m *Manager) Refresh(ctx context.Context) (*informdirect.TokenPair, error) {
	current := m.store.Get()
	if current == nil || current.RefreshToken == "" {
		err := informdirect.NewAuthenticationError(0, "No refresh token available", nil, informdirect.ErrNoRefreshToken)
		metrics.RecordAuthEvent(metrics.AuthEventRefresh, err)

		return nil, err
	}

	pair, err := m.refresh(ctx, current.RefreshToken)
	metrics.RecordAuthEvent(metrics.AuthEventRefresh, err)

	if err != nil {
		m.store.Clear()

		return nil, err
	}

	m.store.Set(pair)
	m.logger.Debug("Refreshed access token", nil)

	return pair, nil
}

func (m *Manager) refresh(ctx context.Context, refreshToken string) (*informdirect.TokenPair, error) {
	resp, err := m.client.Send(ctx, &idhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathRefresh,
		Body:   refreshTokenRequest{RefreshToken: refreshToken},
	})
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return nil, informdirect.NewAuthenticationError(
			resp.StatusCode,
			fmt.Sprintf("Token refresh failed: %d", resp.StatusCode),
			string(resp.Body),
			nil,
		)
	}

	return decodeTokens(resp, "Token refresh")
}

// Logout revokes the refresh token and clears the pair. Without a refresh
// token it does nothing. Failures are logged, never returned.
func (m *Manager) Logout(ctx context.Context) {
	current := m.store.Get()
	if current == nil || current.RefreshToken == "" {
		metrics.AuthEvents.WithLabelValues(metrics.AuthEventLogout, metrics.OutcomeSkipped).Inc()

		return
	}

	resp, err := m.client.Send(ctx, &idhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathLogout,
		Body:   refreshTokenRequest{RefreshToken: current.RefreshToken},
	})

	m.store.Clear()

	if err == nil && !isSuccess(resp.StatusCode) {
		err = informdirect.NewAuthenticationError(resp.StatusCode,
			fmt.Sprintf("Logout failed: %d", resp.StatusCode), string(resp.Body), nil)
	}

	metrics.RecordAuthEvent(metrics.AuthEventLogout, err)

	if err != nil {
		m.logger.Warn("Logout failed, tokens cleared locally", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// GetToken returns the access token, authenticating first when no pair is held.
func (m *Manager) GetToken(ctx context.Context) (string, error) {
	if pair := m.store.Get(); pair != nil {
		return pair.AccessToken, nil
	}

	pair, err := m.Authenticate(ctx)
	if err != nil {
		return "", err
	}

	return pair.AccessToken, nil
}

// RefreshToken recovers from a rejected access token: refresh, and on failure
// a full re-authentication. When both fail the result is an authentication
// error with status 401 wrapping the re-authentication failure.
func (m *Manager) RefreshToken(ctx context.Context) error {
	_, err := m.Refresh(ctx)
	if err == nil {
		return nil
	}

	m.logger.Debug("Token refresh failed, re-authenticating", map[string]interface{}{
		"error": err.Error(),
	})

	_, authErr := m.Authenticate(ctx)
	metrics.RecordAuthEvent(metrics.AuthEventReauthenticate, authErr)

	if authErr != nil {
		return informdirect.NewAuthenticationError(
			http.StatusUnauthorized,
			"Token refresh and re-authentication both failed",
			nil,
			authErr,
		)
	}

	return nil
}

// Tokens returns a copy of the held pair, or nil.
func (m *Manager) Tokens() *informdirect.TokenPair {
	return m.store.Get()
}

// IsAuthenticated reports whether a pair is held.
func (m *Manager) IsAuthenticated() bool {
	return m.store.Has()
}

func decodeTokens(resp *idhttp.Response, operation string) (*informdirect.TokenPair, error) {
	var tokens tokenResponse

	err := idhttp.DecodeJSON(resp, &tokens)
	if err != nil {
		return nil, informdirect.NewAuthenticationError(
			resp.StatusCode,
			operation+" response could not be decoded",
			string(resp.Body),
			err,
		)
	}

	if tokens.AccessToken == "" {
		return nil, informdirect.NewAuthenticationError(
			resp.StatusCode,
			operation+" response did not include an access token",
			string(resp.Body),
			nil,
		)
	}

	return tokens.toTokenPair(), nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
