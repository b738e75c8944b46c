package main

import (
	"fmt"

	"github.com/rpgo/loan-amortizer/internal/config"
	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/rpgo/loan-amortizer/internal/output"
	money "github.com/rpgo/loan-amortizer/pkg/decimal"
	"github.com/spf13/cobra"
)

// loanFlags describes a single loan on the command line.
type loanFlags struct {
	name        string
	principal   string
	term        int
	periodicity string
	rate        string
	tax         string
}

func (f *loanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "loan-1", "loan name")
	cmd.Flags().StringVar(&f.principal, "principal", "", "principal amount (e.g. 10000 or $10,000)")
	cmd.Flags().IntVar(&f.term, "term", 0, "number of periods")
	cmd.Flags().StringVar(&f.periodicity, "periodicity", "biweekly", "weekly|biweekly|monthly (or semanal|quincenal|mensual)")
	cmd.Flags().StringVar(&f.rate, "rate", "0", "annual nominal rate as a fraction (0.8 = 80%)")
	cmd.Flags().StringVar(&f.tax, "tax", "0", "tax rate applied to interest as a fraction (0.16 = 16%)")
}

func (f *loanFlags) terms() (domain.LoanTerms, error) {
	principal, err := money.ParseAmount(f.principal)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("%w: principal: %v", domain.ErrInvalidAmount, err)
	}
	rate, err := money.ParseAmount(f.rate)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("%w: rate: %v", domain.ErrInvalidRate, err)
	}
	tax, err := money.ParseAmount(f.tax)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("%w: tax: %v", domain.ErrInvalidRate, err)
	}
	p, err := domain.ParsePeriodicity(f.periodicity)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	terms := domain.LoanTerms{
		Name:        f.name,
		Principal:   principal,
		Term:        f.term,
		Periodicity: p,
		AnnualRate:  rate,
		TaxRate:     tax,
	}
	if err := config.ValidateTerms(&terms); err != nil {
		return domain.LoanTerms{}, err
	}
	return terms, nil
}

func newScheduleCmd(root *rootOptions) *cobra.Command {
	var (
		loan       loanFlags
		planFile   string
		activation string
		locale     string
		format     string
		outputDir  string
		savePlan   string
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate amortization schedules",
		Example: `  amortizer schedule --config plan.yaml --format html --output-dir reports
  amortizer schedule --principal 10000 --term 72 --periodicity quincenal --rate 0.8 --tax 0.16 --activation 2025-01-06`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan(cmd, planFile, &loan)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("activation") {
				if plan.ActivationDate, err = domain.ParseDate(activation); err != nil {
					return fmt.Errorf("invalid activation date: %w", err)
				}
			}
			if cmd.Flags().Changed("locale") || plan.Locale == "" {
				plan.Locale = locale
			}

			if savePlan != "" {
				if err := config.SavePlan(plan, savePlan); err != nil {
					return fmt.Errorf("failed to save plan: %w", err)
				}
				printf(cmd, "Plan saved to %s\n", savePlan)
			}

			report, err := root.generator().GenerateAll(plan)
			if err != nil {
				return err
			}
			if outputDir != "" {
				path, err := output.GenerateReport(report, format, outputDir)
				if err != nil {
					return err
				}
				printf(cmd, "Report written to %s\n", path)
				return nil
			}
			return output.Render(cmd.OutOrStdout(), report, format)
		},
	}
	loan.register(cmd)
	cmd.Flags().StringVarP(&planFile, "config", "c", "", "YAML plan file with one or more loans")
	cmd.Flags().StringVar(&activation, "activation", "", "activation date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&locale, "locale", config.DefaultLocale, "date and label language (es, en)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (see 'amortizer formats')")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file to this directory instead of stdout")
	cmd.Flags().StringVar(&savePlan, "save-plan", "", "also write the resolved plan to this YAML file for later --config runs")
	return cmd
}

// loadPlan reads the plan file when given, otherwise builds a one-loan plan from flags.
func loadPlan(cmd *cobra.Command, planFile string, loan *loanFlags) (*domain.Plan, error) {
	if planFile != "" {
		return config.NewInputParser().LoadFromFile(planFile)
	}
	if !cmd.Flags().Changed("principal") || !cmd.Flags().Changed("term") {
		return nil, fmt.Errorf("either --config or both --principal and --term are required")
	}
	terms, err := loan.terms()
	if err != nil {
		return nil, err
	}
	return &domain.Plan{Loans: []domain.LoanTerms{terms}}, nil
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and aliases",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range output.AvailableFormatterNames() {
				printf(cmd, "%s\n", name)
			}
			for _, alias := range output.AvailableFormatAliases() {
				printf(cmd, "%s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}
