package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/informdirect/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Viper keys shared by the flags, the environment and the config file.
const (
	KeyAPIKey      = "api_key"
	KeyBaseURL     = "base_url"
	KeyEnvironment = "environment"
	KeyOutput      = "output"
	KeyVerbose     = "verbose"
	KeyDebug       = "debug"
	KeyRateLimit   = "rate_limit"
)

// settableKeys are the keys accepted by "config set".
var settableKeys = map[string]bool{
	KeyAPIKey:      true,
	KeyBaseURL:     true,
	KeyEnvironment: true,
	KeyOutput:      true,
	KeyVerbose:     true,
	KeyDebug:       true,
	KeyRateLimit:   true,
}

// Config is the resolved CLI configuration.
type Config struct {
	APIKey      string  `json:"api_key,omitempty"     yaml:"api_key,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"    yaml:"base_url,omitempty"`
	Environment string  `json:"environment,omitempty" yaml:"environment,omitempty"`
	Output      string  `json:"output"                yaml:"output"`
	Verbose     bool    `json:"verbose"               yaml:"verbose"`
	Debug       bool    `json:"debug"                 yaml:"debug"`
	RateLimit   float64 `json:"rate_limit"            yaml:"rate_limit"`
}

// LoadConfig reads the effective configuration from viper.
func LoadConfig() *Config {
	return &Config{
		APIKey:      viper.GetString(KeyAPIKey),
		BaseURL:     viper.GetString(KeyBaseURL),
		Environment: viper.GetString(KeyEnvironment),
		Output:      viper.GetString(KeyOutput),
		Verbose:     viper.GetBool(KeyVerbose),
		Debug:       viper.GetBool(KeyDebug),
		RateLimit:   viper.GetFloat64(KeyRateLimit),
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	redacted := *c
	if redacted.APIKey != "" {
		redacted.APIKey = MaskToken(redacted.APIKey)
	}

	return &redacted
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and edit the Inform Direct CLI configuration stored in ~/.informdirect/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags, environment and config file are merged",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := LoadConfig().Redacted()

			return renderConfig(cmd.OutOrStdout(), config, viper.GetString(KeyOutput))
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Persist a configuration value to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			err = setConfigValue(configFile, key, value)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, configFile)

			return nil
		},
	}
}

func renderConfig(w io.Writer, config *Config, output string) error {
	switch output {
	case constants.FormatJSON:
		return writeJSON(w, config)
	case constants.FormatYAML:
		return writeYAML(w, config)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = constants.NotAvailable
	}

	_ = table.Append("API Key", apiKey)
	_ = table.Append("Base URL", valueOrNA(config.BaseURL))
	_ = table.Append("Environment", valueOrNA(config.Environment))
	_ = table.Append("Output", config.Output)
	_ = table.Append("Verbose", strconv.FormatBool(config.Verbose))
	_ = table.Append("Debug", strconv.FormatBool(config.Debug))
	_ = table.Append("Rate Limit", strconv.FormatFloat(config.RateLimit, 'f', -1, 64))

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// configFilePath returns the config file in use, or the default location.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

// setConfigValue updates one key in a YAML config file, creating it when missing.
func setConfigValue(configFile, key, value string) error {
	if !settableKeys[key] {
		return fmt.Errorf("%w: %s (valid keys: %s)", constants.ErrUnknownConfigKey, key, validKeys())
	}

	if key == KeyOutput && !validOutput(value) {
		return constants.ErrInvalidOutput
	}

	values := map[string]interface{}{}

	// #nosec G304 -- path comes from --config or the user's home directory
	data, err := os.ReadFile(configFile)

	switch {
	case err == nil:
		err = yaml.Unmarshal(data, &values)
		if err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}

		if values == nil {
			values = map[string]interface{}{}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("failed to read config file: %w", err)
	}

	typed, err := typedValue(key, value)
	if err != nil {
		return err
	}

	values[key] = typed

	out, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	err = os.WriteFile(configFile, out, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.Set(key, typed)

	return nil
}

func typedValue(key, value string) (interface{}, error) {
	switch key {
	case KeyVerbose, KeyDebug:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}

		return b, nil
	case KeyRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidRateLimit, value)
		}

		return f, nil
	default:
		return value, nil
	}
}

func validKeys() string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return strings.Join(keys, ", ")
}

func validOutput(output string) bool {
	switch output {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return true
	default:
		return false
	}
}

func valueOrNA(v string) string {
	if v == "" {
		return constants.NotAvailable
	}

	return v
}
