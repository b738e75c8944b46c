package main

import (
	"fmt"

	"github.com/rpgo/loan-amortizer/internal/calculation"
	"github.com/rpgo/loan-amortizer/internal/config"
	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/rpgo/loan-amortizer/internal/output"
	money "github.com/rpgo/loan-amortizer/pkg/decimal"
	"github.com/spf13/cobra"
)

type stateFlags struct {
	due    string
	credit string
	amount string
}

func (f *stateFlags) register(cmd *cobra.Command, amountHelp string) {
	cmd.Flags().StringVar(&f.due, "due", "0", "outstanding due balance")
	cmd.Flags().StringVar(&f.credit, "credit", "0", "credit balance held for the loan")
	cmd.Flags().StringVar(&f.amount, "amount", "", amountHelp)
	_ = cmd.MarkFlagRequired("amount")
}

func (f *stateFlags) parse() (domain.LoanBalanceState, money.Money, error) {
	due, err := money.ParseAmount(f.due)
	if err != nil {
		return domain.LoanBalanceState{}, money.Money{}, fmt.Errorf("%w: due: %v", domain.ErrInvalidAmount, err)
	}
	credit, err := money.ParseAmount(f.credit)
	if err != nil {
		return domain.LoanBalanceState{}, money.Money{}, fmt.Errorf("%w: credit: %v", domain.ErrInvalidAmount, err)
	}
	amount, err := money.NewMoneyFromString(f.amount)
	if err != nil {
		return domain.LoanBalanceState{}, money.Money{}, fmt.Errorf("%w: amount: %v", domain.ErrInvalidAmount, err)
	}
	return domain.LoanBalanceState{OutstandingDue: due, CreditBalance: credit}, amount, nil
}

func printState(cmd *cobra.Command, s domain.LoanBalanceState) {
	printf(cmd, "Outstanding due: %s\n", output.FormatCurrency(s.OutstandingDue))
	printf(cmd, "Credit balance:  %s\n", output.FormatCurrency(s.CreditBalance))
}

func newPayCmd(root *rootOptions) *cobra.Command {
	var state stateFlags
	cmd := &cobra.Command{
		Use:     "pay",
		Short:   "Apply a payment to a due balance",
		Example: "  amortizer pay --due 500 --credit 100 --amount 600",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, amount, err := state.parse()
			if err != nil {
				return err
			}
			next, err := calculation.ApplyPayment(s, amount.Decimal)
			if err != nil {
				return err
			}
			root.logger.Info("payment applied", "amount", amount.String())
			printState(cmd, next)
			return nil
		},
	}
	state.register(cmd, "payment amount")
	return cmd
}

func newCreditCmd(root *rootOptions) *cobra.Command {
	var (
		loan   loanFlags
		state  stateFlags
		asOf   string
		locale string
		format string
	)
	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Reduce principal with a credit and recompute the remaining schedule",
		Long: `credit spends the credit balance plus --amount on principal. --principal and
--term describe the unpaid remainder of the loan as of --as-of. The command
fails while --due is positive.`,
		Example: "  amortizer credit --principal 8000 --term 62 --periodicity quincenal --rate 0.8 --tax 0.16 --as-of 2025-06-01 --amount 1000",
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := loan.terms()
			if err != nil {
				return err
			}
			s, amount, err := state.parse()
			if err != nil {
				return err
			}
			date := calculation.Today()
			if asOf != "" {
				if date, err = domain.ParseDate(asOf); err != nil {
					return fmt.Errorf("invalid as-of date: %w", err)
				}
			}

			account, err := calculation.NewAccountFromState(root.generator(), terms, date, s)
			if err != nil {
				return err
			}
			schedule, err := account.ApplyCredit(amount.Decimal)
			if err != nil {
				return err
			}
			if schedule == nil {
				printf(cmd, "Loan retired.\n")
				printState(cmd, account.State())
				return nil
			}
			printState(cmd, account.State())
			printf(cmd, "\n")
			return output.Render(cmd.OutOrStdout(), &domain.ScheduleReport{Locale: locale, Schedules: []*domain.Schedule{schedule}}, format)
		},
	}
	loan.register(cmd)
	state.register(cmd, "credit amount applied to principal")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("term")
	cmd.Flags().StringVar(&asOf, "as-of", "", "date of the current period (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&locale, "locale", config.DefaultLocale, "date and label language (es, en)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format for the recomputed schedule")
	return cmd
}
