package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/informdirect/internal/constants"
	"github.com/fivetwenty-io/informdirect/pkg/idclient"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// NewClient builds the API client used by every command. Tests replace it.
var NewClient = idclient.New

// session is the per-command state shared by the company commands.
type session struct {
	client informdirect.Client
	logger *zap.Logger
	output string
}

func newSession(cmd *cobra.Command) (*session, error) {
	config := LoadConfig()

	if !validOutput(config.Output) {
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidOutput, config.Output)
	}

	apiKey, err := resolveAPIKey(cmd, config.APIKey)
	if err != nil {
		return nil, err
	}

	env, err := informdirect.ParseEnvironment(config.Environment)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(config.Verbose || config.Debug)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(cmd.Context(), &informdirect.Config{
		APIKey:            apiKey,
		BaseURL:           config.BaseURL,
		Environment:       env,
		RequestsPerSecond: config.RateLimit,
		Debug:             config.Debug,
		Logger:            informdirect.NewZapLogger(logger),
	})
	if err != nil {
		_ = logger.Sync()

		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &session{client: client, logger: logger, output: config.Output}, nil
}

// close revokes the session's tokens and flushes the logger.
func (s *session) close() {
	if s.client.IsAuthenticated() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
		s.client.Logout(ctx)
		cancel()
	}

	_ = s.logger.Sync()
}

// resolveAPIKey prompts on an interactive terminal when no key is configured.
func resolveAPIKey(cmd *cobra.Command, apiKey string) (string, error) {
	if apiKey != "" {
		return apiKey, nil
	}

	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return "", constants.ErrNoAPIKey
	}

	fd := int(stdin.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", constants.ErrNoAPIKey
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API key: ")

	keyBytes, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	apiKey = strings.TrimSpace(string(keyBytes))
	if apiKey == "" {
		return "", constants.ErrNoAPIKey
	}

	return apiKey, nil
}

// newLogger returns a debug development logger when verbose, otherwise a
// production logger that only reports warnings and errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}

		return logger, nil
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
