package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fivetwenty-io/informdirect/cmd/informdirect/commands"
	"github.com/fivetwenty-io/informdirect/pkg/idclient"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// portfolioServer is a TLS stand-in for the Inform Direct API.
type portfolioServer struct {
	*httptest.Server

	mu        sync.Mutex
	companies []map[string]string
	bodies    map[string]map[string]any
	message   string
	logouts   int
}

func newPortfolioServer(t *testing.T, companies ...map[string]string) *portfolioServer {
	t.Helper()

	s := &portfolioServer{companies: companies, bodies: map[string]map[string]any{}}
	s.Server = httptest.NewTLSServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	return s
}

func (s *portfolioServer) handle(writer http.ResponseWriter, request *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body map[string]any
	if request.Body != nil {
		_ = json.NewDecoder(request.Body).Decode(&body)
	}

	s.bodies[request.URL.Path] = body

	writer.Header().Set("Content-Type", "application/json")

	switch request.URL.Path {
	case "/authenticate":
		_ = json.NewEncoder(writer).Encode(map[string]string{
			"AccessToken":  "access-token-0123456789",
			"RefreshToken": "refresh-token-9876543210",
		})
	case "/logout":
		s.logouts++
		writer.WriteHeader(http.StatusOK)
	case "/companies":
		_ = json.NewEncoder(writer).Encode(map[string]any{"Companies": s.companies})
	case "/companies/add", "/companies/delete":
		if s.message == "" {
			_, _ = writer.Write([]byte("{}"))

			return
		}

		_ = json.NewEncoder(writer).Encode(map[string]string{"Message": s.message})
	default:
		for _, company := range s.companies {
			if request.URL.Path == "/companies/"+company["CompanyNumber"] {
				_ = json.NewEncoder(writer).Encode(map[string]any{"Companies": []map[string]string{company}})

				return
			}
		}

		_ = json.NewEncoder(writer).Encode(map[string]any{"Companies": []map[string]string{}})
	}
}

func (s *portfolioServer) body(path string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.bodies[path]
}

func (s *portfolioServer) setMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
}

func (s *portfolioServer) logoutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logouts
}

// useServer points the commands at server through viper and the client factory.
func useServer(t *testing.T, server *portfolioServer, output string) {
	t.Helper()

	viper.Reset()
	viper.Set(commands.KeyAPIKey, "test-api-key")
	viper.Set(commands.KeyBaseURL, server.URL)
	viper.Set(commands.KeyOutput, output)

	original := commands.NewClient
	commands.NewClient = func(ctx context.Context, config *informdirect.Config) (informdirect.Client, error) {
		config.HTTPClient = server.Client()

		return idclient.New(ctx, config)
	}

	t.Cleanup(func() {
		commands.NewClient = original

		viper.Reset()
	})
}

// run executes cmd with args and returns what it printed.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}
