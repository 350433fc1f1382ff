package commands

import (
	"fmt"

	"github.com/fivetwenty-io/informdirect/internal/constants"
	"github.com/fivetwenty-io/informdirect/pkg/informdirect"
	"github.com/spf13/cobra"
)

const (
	companyFlag       = "company"
	authCodeFlag      = "auth-code"
	saveRegistersFlag = "save-registers"
	saveDocumentsFlag = "save-documents"
)

// NewListCompaniesCommand creates the list-companies command.
func NewListCompaniesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list-companies",
		Aliases: []string{"companies", "ls"},
		Short:   "List all companies in the portfolio",
		Long:    "List every company held in the account's Inform Direct portfolio",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			companies, err := s.client.Companies().List(cmd.Context())
			if err != nil {
				return err
			}

			return renderCompanies(cmd.OutOrStdout(), companies, s.output)
		},
	}
}

// NewGetCompanyCommand creates the get-company command.
func NewGetCompanyCommand() *cobra.Command {
	var companyNumber string

	cmd := &cobra.Command{
		Use:   "get-company",
		Short: "Get a single company",
		Long:  "Look up a company in the portfolio by its Companies House number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if companyNumber == "" {
				return constants.ErrCompanyRequired
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			company, err := s.client.Companies().Get(cmd.Context(), companyNumber)
			if err != nil {
				return err
			}

			if company == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Company %s not found in portfolio.\n", companyNumber)

				return nil
			}

			return renderCompany(cmd.OutOrStdout(), company, s.output)
		},
	}

	cmd.Flags().StringVarP(&companyNumber, companyFlag, "c", "", "company number (e.g. 00014259, SC123456)")

	return cmd
}

// NewAddCompanyCommand creates the add-company command.
func NewAddCompanyCommand() *cobra.Command {
	var companyNumber, authCode string

	cmd := &cobra.Command{
		Use:   "add-company",
		Short: "Add a company to the portfolio",
		Long:  "Add a company to the portfolio, optionally with its Companies House authentication code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if companyNumber == "" {
				return constants.ErrCompanyRequired
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			result, err := s.client.Companies().Add(cmd.Context(), companyNumber,
				&informdirect.AddCompanyOptions{AuthenticationCode: authCode})
			if err != nil {
				return err
			}

			return renderMessage(cmd.OutOrStdout(), result, "Company added successfully.", s.output)
		},
	}

	cmd.Flags().StringVarP(&companyNumber, companyFlag, "c", "", "company number (e.g. 00014259, SC123456)")
	cmd.Flags().StringVarP(&authCode, authCodeFlag, "a", "", "Companies House authentication code")

	return cmd
}

// NewRemoveCompanyCommand creates the remove-company command.
func NewRemoveCompanyCommand() *cobra.Command {
	var (
		companyNumber string
		saveRegisters bool
		saveDocuments bool
	)

	cmd := &cobra.Command{
		Use:   "remove-company",
		Short: "Remove a company from the portfolio",
		Long: `Remove a company from the portfolio.

--save-registers and --save-documents are only sent when given, so the
server default applies otherwise. Use --save-registers=false to send an
explicit false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if companyNumber == "" {
				return constants.ErrCompanyRequired
			}

			opts := &informdirect.RemoveCompanyOptions{}
			if cmd.Flags().Changed(saveRegistersFlag) {
				opts.SaveRegisters = informdirect.Bool(saveRegisters)
			}

			if cmd.Flags().Changed(saveDocumentsFlag) {
				opts.SaveDocuments = informdirect.Bool(saveDocuments)
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			result, err := s.client.Companies().Remove(cmd.Context(), companyNumber, opts)
			if err != nil {
				return err
			}

			return renderMessage(cmd.OutOrStdout(), result, "Company removed successfully.", s.output)
		},
	}

	cmd.Flags().StringVarP(&companyNumber, companyFlag, "c", "", "company number (e.g. 00014259, SC123456)")
	cmd.Flags().BoolVar(&saveRegisters, saveRegistersFlag, false, "keep the company's statutory registers")
	cmd.Flags().BoolVar(&saveDocuments, saveDocumentsFlag, false, "keep the company's documents")

	return cmd
}
