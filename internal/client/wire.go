package client

import "github.com/fivetwenty-io/informdirect/pkg/informdirect"

// Wire shapes of the portfolio endpoints. Field names follow the API's
// PascalCase contract.

type companiesResponse struct {
	Companies []companyResponse `json:"Companies"`
}

type companyResponse struct {
	CompanyNumber string `json:"CompanyNumber"`
	Name          string `json:"Name"`
	PublicURL     string `json:"PublicUrl"`
}

type messageResponse struct {
	Message string `json:"Message"`
}

type addCompanyRequest struct {
	CompanyNumber      string `json:"CompanyNumber"`
	AuthenticationCode string `json:"AuthenticationCode,omitempty"`
}

type removeCompanyRequest struct {
	CompanyNumber string `json:"CompanyNumber"`
	SaveRegisters *bool  `json:"SaveRegisters,omitempty"`
	SaveDocuments *bool  `json:"SaveDocuments,omitempty"`
}

func (r *companyResponse) toCompanySummary() informdirect.CompanySummary {
	return informdirect.CompanySummary{
		CompanyNumber: r.CompanyNumber,
		Name:          r.Name,
		PublicURL:     r.PublicURL,
	}
}

func (r *companiesResponse) toCompanySummaries() []informdirect.CompanySummary {
	companies := make([]informdirect.CompanySummary, 0, len(r.Companies))
	for i := range r.Companies {
		companies = append(companies, r.Companies[i].toCompanySummary())
	}

	return companies
}

func (r *messageResponse) toMessageResponse() *informdirect.MessageResponse {
	return &informdirect.MessageResponse{Message: r.Message}
}

func newAddCompanyRequest(companyNumber string, opts *informdirect.AddCompanyOptions) addCompanyRequest {
	req := addCompanyRequest{CompanyNumber: companyNumber}
	if opts != nil {
		req.AuthenticationCode = opts.AuthenticationCode
	}

	return req
}

func newRemoveCompanyRequest(companyNumber string, opts *informdirect.RemoveCompanyOptions) removeCompanyRequest {
	req := removeCompanyRequest{CompanyNumber: companyNumber}
	if opts != nil {
		req.SaveRegisters = opts.SaveRegisters
		req.SaveDocuments = opts.SaveDocuments
	}

	return req
}
