package informdirect

import (
	"fmt"
	"strings"
)

// Environment selects one of the hosted Inform Direct API deployments.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// Base URLs of the hosted deployments.
const (
	SandboxBaseURL    = "https://sandbox-api.informdirect.co.uk"
	ProductionBaseURL = "https://api.informdirect.co.uk"
)

// BaseURL returns the base URL for the environment.
func (e Environment) BaseURL() (string, error) {
	switch e {
	case EnvironmentSandbox:
		return SandboxBaseURL, nil
	case EnvironmentProduction:
		return ProductionBaseURL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, string(e))
	}
}

// ParseEnvironment converts a user supplied name into an Environment.
// An empty name selects the sandbox.
func ParseEnvironment(name string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sandbox":
		return EnvironmentSandbox, nil
	case "production", "prod", "live":
		return EnvironmentProduction, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
	}
}
