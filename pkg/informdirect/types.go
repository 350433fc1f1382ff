package informdirect

// CompanySummary is a company held in the account's portfolio.
type CompanySummary struct {
	CompanyNumber string `json:"company_number" yaml:"company_number"`
	Name          string `json:"name"           yaml:"name"`
	PublicURL     string `json:"public_url"     yaml:"public_url"`
}

// TokenPair is the access/refresh token pair issued by the authentication endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"  yaml:"access_token"`
	RefreshToken string `json:"refresh_token" yaml:"refresh_token"`
}

// MessageResponse is returned by portfolio mutations.
type MessageResponse struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// AddCompanyOptions are optional parameters for adding a company.
type AddCompanyOptions struct {
	// AuthenticationCode is the Companies House authentication code. Left off
	// the request when empty.
	AuthenticationCode string
}

// RemoveCompanyOptions are optional parameters for removing a company.
// Nil flags are left off the request so the server default applies.
type RemoveCompanyOptions struct {
	SaveRegisters *bool
	SaveDocuments *bool
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
