package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fivetwenty-io/informdirect/internal/constants"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// MaskToken keeps only the trailing characters of a secret.
func MaskToken(token string) string {
	if token == "" {
		return constants.NotAvailable
	}

	if len(token) <= constants.MaskedTokenSuffixLength {
		return constants.MaskedSecret
	}

	return "..." + token[len(token)-constants.MaskedTokenSuffixLength:]
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

func renderCompanies(w io.Writer, companies []informdirect.CompanySummary, output string) error {
	switch output {
	case constants.FormatJSON:
		return writeJSON(w, companies)
	case constants.FormatYAML:
		return writeYAML(w, companies)
	}

	if len(companies) == 0 {
		_, _ = fmt.Fprintln(w, "No companies in portfolio.")

		return nil
	}

	_, _ = fmt.Fprintf(w, "%d company(ies):\n\n", len(companies))

	table := tablewriter.NewWriter(w)
	table.Header("Number", "Name", "URL")

	for _, company := range companies {
		_ = table.Append(company.CompanyNumber, company.Name, company.PublicURL)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderCompany(w io.Writer, company *informdirect.CompanySummary, output string) error {
	switch output {
	case constants.FormatJSON:
		return writeJSON(w, company)
	case constants.FormatYAML:
		return writeYAML(w, company)
	}

	_, _ = fmt.Fprintf(w, "Company: %s\n", company.Name)
	_, _ = fmt.Fprintf(w, "Number:  %s\n", company.CompanyNumber)
	_, _ = fmt.Fprintf(w, "URL:     %s\n", company.PublicURL)

	return nil
}

func renderMessage(w io.Writer, result *informdirect.MessageResponse, fallback, output string) error {
	message := fallback
	if result != nil && result.Message != "" {
		message = result.Message
	}

	switch output {
	case constants.FormatJSON:
		return writeJSON(w, informdirect.MessageResponse{Message: message})
	case constants.FormatYAML:
		return writeYAML(w, informdirect.MessageResponse{Message: message})
	}

	_, _ = fmt.Fprintln(w, message)

	return nil
}
