// Package http implements the authenticated request gateway used by every
// Inform Direct endpoint call.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/informdirect/internal/constants"
	"github.com/fivetwenty-io/informdirect/internal/metrics"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
	"github.com/hashicorp/go-retryablehttp"
)

// TokenManager supplies bearer tokens and recovers from a rejected token.
type TokenManager interface {
	// GetToken returns the current access token, authenticating first when
	// none is held.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken replaces the held token after a 401.
	RefreshToken(ctx context.Context) error
}

// Request is an API request relative to the client's base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is marshalled to JSON unless it is already a []byte.
	Body any
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests to the Inform Direct API.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager TokenManager
	logger       informdirect.Logger
	debug        bool
	userAgent    string
	interceptors *informdirect.InterceptorChain
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient   *http.Client
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	logger       informdirect.Logger
	debug        bool
	userAgent    string
	interceptors *informdirect.InterceptorChain
}

// WithLogger sets the logger for the HTTP client and its transport.
func WithLogger(logger informdirect.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithRetryConfig enables transport retries of connection errors and 5xx
// responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(o *options) {
		o.retryMax = retryMax
		o.retryWaitMin = waitMin
		o.retryWaitMax = waitMax
	}
}

// WithHTTPClient replaces the underlying http.Client. The client is copied
// before its transport is wrapped.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithTimeout sets a per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithInterceptors runs chain around every attempt.
func WithInterceptors(chain *informdirect.InterceptorChain) Option {
	return func(o *options) {
		o.interceptors = chain
	}
}

// NewClient creates a new HTTP client. tokenManager may be nil for
// unauthenticated use.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	cfg := &options{
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.retryMax
	retryClient.RetryWaitMin = cfg.retryWaitMin
	retryClient.RetryWaitMax = cfg.retryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if cfg.logger != nil {
		retryClient.Logger = &leveledLogger{logger: cfg.logger}
	}

	if cfg.httpClient != nil {
		httpClient := *cfg.httpClient
		retryClient.HTTPClient = &httpClient
	}

	retryClient.HTTPClient.Transport = metrics.NewTransport(retryClient.HTTPClient.Transport)

	if cfg.timeout > 0 {
		retryClient.HTTPClient.Timeout = cfg.timeout
	}

	interceptors := cfg.interceptors
	if interceptors == nil {
		interceptors = informdirect.NewInterceptorChain()
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		logger:       cfg.logger,
		debug:        cfg.debug,
		userAgent:    cfg.userAgent,
		interceptors: interceptors,
	}
}

// WithTokenManager returns a copy of the client that authenticates with
// tokenManager. The copy shares the transport.
func (c *Client) WithTokenManager(tokenManager TokenManager) *Client {
	clone := *c
	clone.tokenManager = tokenManager

	return &clone
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send performs a single unauthenticated round trip and returns the response
// whatever its status.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	return c.attempt(ctx, req, "")
}

// Do performs an authenticated request. A 401 triggers one token recovery and
// one retry. Non-2xx responses are returned together with an
// *informdirect.Error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.attempt(ctx, req, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.tokenManager != nil {
		c.logDebug("Access token rejected, recovering", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		err = c.tokenManager.RefreshToken(ctx)
		if err != nil {
			return nil, err
		}

		token, err = c.token(ctx)
		if err != nil {
			return nil, err
		}

		resp, err = c.attempt(ctx, req, token)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, NewResponseError(req.Path, resp)
	}

	return resp, nil
}

// DoJSON performs Do and decodes the response body into out. An empty body
// leaves out untouched.
func (c *Client) DoJSON(ctx context.Context, req *Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	return DecodeJSON(resp, out)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

// DecodeJSON decodes resp.Body into out unless the body is empty.
func DecodeJSON(resp *Response, out any) error {
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	err := json.Unmarshal(resp.Body, out)
	if err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// NewResponseError maps a non-2xx response to an API error. When the body is
// JSON with a string Message field the message is "<Message> (<status> <path>)".
func NewResponseError(path string, resp *Response) *informdirect.Error {
	text := string(resp.Body)
	message := fmt.Sprintf("API error %d: %s", resp.StatusCode, path)

	var body any = text

	var parsed any

	err := json.Unmarshal(resp.Body, &parsed)
	if err == nil {
		body = parsed

		if fields, ok := parsed.(map[string]any); ok {
			if msg, ok := fields["Message"].(string); ok {
				message = fmt.Sprintf("%s (%d %s)", msg, resp.StatusCode, path)
			}
		}
	}

	return informdirect.NewAPIError(resp.StatusCode, message, body)
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", nil
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	return token, nil
}

// attempt sends req once with the given bearer token.
func (c *Client) attempt(ctx context.Context, req *Request, token string) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	intercepted := &informdirect.Request{
		Method:   req.Method,
		Path:     req.Path,
		Headers:  make(http.Header),
		Body:     body,
		Metadata: make(map[string]interface{}),
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.buildURL(req), rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method":     req.Method,
		"path":       req.Path,
		"request_id": intercepted.Headers.Get(informdirect.RequestIDHeader),
	})

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		sendErr := fmt.Errorf("sending %s %s: %w", req.Method, req.Path, err)
		_ = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &informdirect.Response{Error: sendErr})

		return nil, sendErr
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, constants.MaxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"path":        req.Path,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &informdirect.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) buildURL(req *Request) string {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	return fullURL
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

var errUnsupportedBody = errors.New("unsupported request body")

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case io.Reader:
		return nil, fmt.Errorf("%w: %T", errUnsupportedBody, body)
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return data, nil
	}
}
