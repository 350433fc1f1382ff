package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/informdirect/internal/constants"
	idhttp "github.com/fivetwenty-io/informdirect/internal/http"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
)

// CompaniesClient implements informdirect.CompaniesClient.
type CompaniesClient struct {
	httpClient *idhttp.Client
}

// NewCompaniesClient creates a new companies client.
func NewCompaniesClient(httpClient *idhttp.Client) *CompaniesClient {
	return &CompaniesClient{
		httpClient: httpClient,
	}
}

// List implements informdirect.CompaniesClient.List.
func (c *CompaniesClient) List(ctx context.Context) ([]informdirect.CompanySummary, error) {
	var resp companiesResponse

	err := c.httpClient.DoJSON(ctx, &idhttp.Request{
		Method: http.MethodGet,
		Path:   constants.PathCompanies,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}

	return resp.toCompanySummaries(), nil
}

// Get implements informdirect.CompaniesClient.Get.
func (c *CompaniesClient) Get(ctx context.Context, companyNumber string) (*informdirect.CompanySummary, error) {
	err := informdirect.ValidateCompanyNumber(companyNumber)
	if err != nil {
		return nil, err
	}

	var resp companiesResponse

	err = c.httpClient.DoJSON(ctx, &idhttp.Request{
		Method: http.MethodGet,
		Path:   constants.PathCompanies + "/" + url.PathEscape(companyNumber),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("getting company %s: %w", companyNumber, err)
	}

	if len(resp.Companies) == 0 {
		return nil, nil
	}

	company := resp.Companies[0].toCompanySummary()

	return &company, nil
}

// Add implements informdirect.CompaniesClient.Add.
func (c *CompaniesClient) Add(ctx context.Context, companyNumber string, opts *informdirect.AddCompanyOptions) (*informdirect.MessageResponse, error) {
	err := informdirect.ValidateCompanyNumber(companyNumber)
	if err != nil {
		return nil, err
	}

	var resp messageResponse

	err = c.httpClient.DoJSON(ctx, &idhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathCompaniesAdd,
		Body:   newAddCompanyRequest(companyNumber, opts),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("adding company %s: %w", companyNumber, err)
	}

	return resp.toMessageResponse(), nil
}

// Remove implements informdirect.CompaniesClient.Remove.
func (c *CompaniesClient) Remove(ctx context.Context, companyNumber string, opts *informdirect.RemoveCompanyOptions) (*informdirect.MessageResponse, error) {
	err := informdirect.ValidateCompanyNumber(companyNumber)
	if err != nil {
		return nil, err
	}

	var resp messageResponse

	err = c.httpClient.DoJSON(ctx, &idhttp.Request{
		Method: http.MethodPut,
		Path:   constants.PathCompaniesDelete,
		Body:   newRemoveCompanyRequest(companyNumber, opts),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("removing company %s: %w", companyNumber, err)
	}

	return resp.toMessageResponse(), nil
}
