package metrics

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// companiesPrefix is the collection every portfolio route lives under.
const companiesPrefix = "/companies/"

// transport wraps an http.RoundTripper to collect metrics on API calls.
type transport struct {
	base http.RoundTripper
}

// NewTransport wraps base with request, latency and error metrics. A nil base
// uses http.DefaultTransport.
func NewTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	return &transport{base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	route := NormalizeRoute(req.URL.Path)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	APICalls.WithLabelValues(req.Method, route, strconv.Itoa(statusCode)).Inc()
	APIDuration.WithLabelValues(req.Method, route).Observe(duration.Seconds())

	if err != nil || statusCode >= 400 {
		APIErrors.WithLabelValues(route, ClassifyError(statusCode, err)).Inc()
	}

	return resp, err
}

// NormalizeRoute replaces the company number in /companies/{number} with a
// placeholder so the route label keeps a fixed cardinality. The add and
// delete actions are kept as is.
func NormalizeRoute(path string) string {
	idx := strings.Index(path, companiesPrefix)
	if idx < 0 {
		return path
	}

	rest := path[idx+len(companiesPrefix):]
	switch rest {
	case "add", "delete", "":
		return path
	}

	return path[:idx] + companiesPrefix + ":number"
}

// ClassifyError categorizes failed round trips for metrics.
func ClassifyError(statusCode int, err error) string {
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "timeout"
		}

		errStr := err.Error()

		switch {
		case strings.Contains(errStr, "timeout"):
			return "timeout"
		case strings.Contains(errStr, "connection"):
			return "connection"
		case strings.Contains(errStr, "tls"), strings.Contains(errStr, "TLS"), strings.Contains(errStr, "x509"):
			return "tls"
		default:
			return "network"
		}
	}

	switch {
	case statusCode == http.StatusBadRequest:
		return "bad_request"
	case statusCode == http.StatusUnauthorized:
		return "unauthorized"
	case statusCode == http.StatusForbidden:
		return "forbidden"
	case statusCode == http.StatusNotFound:
		return "not_found"
	case statusCode == http.StatusUnprocessableEntity:
		return "unprocessable"
	case statusCode == http.StatusTooManyRequests:
		return "rate_limited"
	case statusCode >= http.StatusInternalServerError:
		return "server_error"
	case statusCode >= http.StatusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}
