package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/loan-amortizer/internal/domain"
	money "github.com/rpgo/loan-amortizer/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Account tracks the balance state of a single loan between scheduled periods
// and recomputes the remaining schedule when principal is reduced.
// An Account is owned by one caller and is not safe for concurrent use.
type Account struct {
	gen       *Generator
	schedule  *domain.Schedule
	cursor    int
	principal decimal.Decimal
	state     domain.LoanBalanceState
	retired   bool
}

// NewAccount disburses a loan: it generates the initial schedule and starts
// with no dues and no credit.
func NewAccount(gen *Generator, terms domain.LoanTerms, activation time.Time) (*Account, error) {
	return NewAccountFromState(gen, terms, activation, domain.LoanBalanceState{
		OutstandingDue: decimal.Zero,
		CreditBalance:  decimal.Zero,
	})
}

// NewAccountFromState resumes an account whose unpaid remainder is described
// by terms (current principal and remaining term) as of the given date.
func NewAccountFromState(gen *Generator, terms domain.LoanTerms, asOf time.Time, state domain.LoanBalanceState) (*Account, error) {
	if gen == nil {
		gen = NewGenerator()
	}
	if state.OutstandingDue.IsNegative() || state.CreditBalance.IsNegative() {
		return nil, fmt.Errorf("%w: balances cannot be negative", domain.ErrInvalidAmount)
	}
	schedule, err := gen.Generate(terms, asOf)
	if err != nil {
		return nil, err
	}
	return &Account{
		gen:       gen,
		schedule:  schedule,
		principal: terms.Principal,
		state:     state,
	}, nil
}

// State returns a copy of the current balance state.
func (a *Account) State() domain.LoanBalanceState { return a.state }

// Principal returns the principal still to be amortized.
func (a *Account) Principal() decimal.Decimal { return a.principal }

// Schedule returns the active schedule; nil once credits retired the loan.
func (a *Account) Schedule() *domain.Schedule { return a.schedule }

// RemainingTerm returns the number of periods left on the active schedule.
func (a *Account) RemainingTerm() int {
	if a.retired || a.schedule == nil {
		return 0
	}
	return a.schedule.Terms.Term - a.cursor
}

// Retired reports whether the principal has been fully repaid.
func (a *Account) Retired() bool { return a.retired }

// Advance moves to the next scheduled period: the installment becomes due and
// the tracked principal follows the schedule.
func (a *Account) Advance() error {
	if a.RemainingTerm() == 0 {
		return domain.ErrLoanRetired
	}
	a.cursor++
	entry := a.schedule.Entries[a.cursor]
	a.state.OutstandingDue = a.state.OutstandingDue.Add(entry.Payment)
	a.state.PeriodsElapsed++
	a.principal = entry.RemainingBalance
	a.gen.Logger.Debugf("period %d billed: due=%s principal=%s",
		a.state.PeriodsElapsed, a.state.OutstandingDue.StringFixed(2), a.principal.StringFixed(2))
	if a.RemainingTerm() == 0 && a.principal.IsZero() {
		a.retired = true
	}
	return nil
}

// ApplyPayment is the stateless form of Account.Pay used by callers that keep
// the balance state themselves.
func ApplyPayment(state domain.LoanBalanceState, amount decimal.Decimal) (domain.LoanBalanceState, error) {
	if amount.IsNegative() {
		return state, fmt.Errorf("%w: payment %s is negative", domain.ErrInvalidAmount, amount.String())
	}
	if state.OutstandingDue.IsNegative() || state.CreditBalance.IsNegative() {
		return state, fmt.Errorf("%w: balances cannot be negative", domain.ErrInvalidAmount)
	}
	available := amount.Add(state.CreditBalance)
	if available.GreaterThanOrEqual(state.OutstandingDue) {
		state.CreditBalance = available.Sub(state.OutstandingDue)
		state.OutstandingDue = decimal.Zero
	} else {
		state.CreditBalance = available
	}
	return state, nil
}

// Pay applies amount together with the existing credit against the due
// balance. When it covers the due amount the surplus becomes the new credit;
// otherwise the whole payment is held as credit and the due is unchanged.
func (a *Account) Pay(amount decimal.Decimal) (domain.LoanBalanceState, error) {
	state, err := ApplyPayment(a.state, amount)
	if err != nil {
		return a.state, err
	}
	a.state = state
	a.gen.Logger.Infof("payment %s applied: due=%s credit=%s",
		amount.StringFixed(2), a.state.OutstandingDue.StringFixed(2), a.state.CreditBalance.StringFixed(2))
	return a.state, nil
}

// ApplyCredit adds amount to the credit balance and spends the whole credit on
// principal, then regenerates the schedule for the remaining term starting at
// the current period's date. It fails with ErrOutstandingDue, leaving the
// state untouched, while any due balance remains. A nil schedule with a nil
// error means the credit retired the loan; any excess stays as credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) (*domain.Schedule, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: credit %s is negative", domain.ErrInvalidAmount, amount.String())
	}
	if a.state.OutstandingDue.IsPositive() {
		return nil, fmt.Errorf("%w: %s outstanding", domain.ErrOutstandingDue, a.state.OutstandingDue.StringFixed(2))
	}
	remaining := a.RemainingTerm()
	if remaining == 0 {
		return nil, domain.ErrLoanRetired
	}

	credit := a.state.CreditBalance.Add(amount)
	spent := money.Min(credit, a.principal)
	if spent.Equal(a.principal) {
		a.state.CreditBalance = credit.Sub(spent)
		a.principal = decimal.Zero
		a.schedule = nil
		a.cursor = 0
		a.retired = true
		a.gen.Logger.Infof("credit %s retired the loan, surplus credit=%s", credit.StringFixed(2), a.state.CreditBalance.StringFixed(2))
		return nil, nil
	}

	terms := a.schedule.Terms.WithRemainder(a.principal.Sub(spent), remaining)
	asOf := a.schedule.Entries[a.cursor].PaymentDate
	schedule, err := a.gen.Generate(terms, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute schedule: %w", err)
	}

	a.state.CreditBalance = decimal.Zero
	a.principal = terms.Principal
	a.schedule = schedule
	a.cursor = 0
	a.gen.Logger.Infof("credit %s applied: principal=%s remaining term=%d new payment=%s",
		credit.StringFixed(2), a.principal.StringFixed(2), remaining, schedule.PeriodicPayment.StringFixed(2))
	return schedule, nil
}
