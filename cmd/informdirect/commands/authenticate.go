package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fivetwenty-io/informdirect/internal/constants"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
	"github.com/golang-jwt/jwt/v5"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// TokenInfo is the printable form of a token pair.
type TokenInfo struct {
	AccessToken  string     `json:"access_token"         yaml:"access_token"`
	RefreshToken string     `json:"refresh_token"        yaml:"refresh_token"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// NewTokenInfo masks pair and decodes the access token expiry when it is a JWT.
func NewTokenInfo(pair *informdirect.TokenPair) TokenInfo {
	info := TokenInfo{
		AccessToken:  MaskToken(pair.AccessToken),
		RefreshToken: MaskToken(pair.RefreshToken),
	}

	expiresAt, err := decodeJWTExpiration(pair.AccessToken)
	if err == nil {
		info.ExpiresAt = expiresAt
	}

	return info
}

// NewAuthenticateCommand creates the authenticate command.
func NewAuthenticateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "authenticate",
		Short: "Test authentication",
		Long:  "Exchange the configured API key for a token pair and show the masked tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if s.output == constants.FormatTable {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Authenticating...")
			}

			pair, err := s.client.Authenticate(cmd.Context())
			if err != nil {
				return err
			}

			return renderTokenInfo(cmd.OutOrStdout(), NewTokenInfo(pair), s.output)
		},
	}
}

func renderTokenInfo(w io.Writer, info TokenInfo, output string) error {
	switch output {
	case constants.FormatJSON:
		return writeJSON(w, info)
	case constants.FormatYAML:
		return writeYAML(w, info)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	_ = table.Append("Access token", info.AccessToken)
	_ = table.Append("Refresh token", info.RefreshToken)

	if info.ExpiresAt != nil {
		_ = table.Append("Expires at", info.ExpiresAt.Format(time.RFC3339))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, _ = fmt.Fprintln(w, "Authentication successful.")

	return nil
}

// decodeJWTExpiration reads the exp claim without verifying the signature.
func decodeJWTExpiration(token string) (*time.Time, error) {
	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("failed to read expiration claim: %w", err)
	}

	if exp == nil {
		return nil, constants.ErrNoExpirationClaim
	}

	expiresAt := exp.UTC()

	return &expiresAt, nil
}
