package auth

import "github.com/fivetwenty-io/informdirect/pkg/informdirect"

type authenticateRequest struct {
	APIKey string `json:"ApiKey"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"RefreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"AccessToken"`
	RefreshToken string `json:"RefreshToken"`
}

func (r *tokenResponse) toTokenPair() *informdirect.TokenPair {
	return &informdirect.TokenPair{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
}
