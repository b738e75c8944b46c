package calculation

import (
	"testing"

	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func accountWithState(t *testing.T, due, credit string) *Account {
	t.Helper()
	acct, err := NewAccountFromState(NewGenerator(), referenceTerms(), day(2025, 1, 6), domain.LoanBalanceState{
		OutstandingDue: amount(due),
		CreditBalance:  amount(credit),
	})
	require.NoError(t, err)
	return acct
}

func TestPay_CoversDue(t *testing.T) {
	acct := accountWithState(t, "500", "100")

	state, err := acct.Pay(amount("600"))
	require.NoError(t, err)
	assert.True(t, state.OutstandingDue.IsZero())
	assert.Equal(t, "200.00", state.CreditBalance.StringFixed(2))
	assert.Equal(t, state, acct.State())
}

func TestPay_ExactlyCoversDue(t *testing.T) {
	acct := accountWithState(t, "500", "100")

	state, err := acct.Pay(amount("400"))
	require.NoError(t, err)
	assert.True(t, state.OutstandingDue.IsZero())
	assert.True(t, state.CreditBalance.IsZero())
}

func TestPay_ShortfallIsHeldAsCredit(t *testing.T) {
	acct := accountWithState(t, "500", "100")

	state, err := acct.Pay(amount("300"))
	require.NoError(t, err)
	assert.Equal(t, "500.00", state.OutstandingDue.StringFixed(2))
	assert.Equal(t, "400.00", state.CreditBalance.StringFixed(2))
}

func TestPay_NegativeAmount(t *testing.T) {
	acct := accountWithState(t, "500", "100")

	_, err := acct.Pay(amount("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, "500.00", acct.State().OutstandingDue.StringFixed(2))
}

func TestApplyCredit_RejectedWhileDue(t *testing.T) {
	acct := accountWithState(t, "500", "100")
	before := acct.State()
	schedule := acct.Schedule()

	_, err := acct.ApplyCredit(amount("1000"))
	assert.ErrorIs(t, err, domain.ErrOutstandingDue)
	assert.Equal(t, before, acct.State())
	assert.Same(t, schedule, acct.Schedule())
	assert.True(t, acct.Principal().Equal(decimal.NewFromInt(10000)))
}

func TestApplyCredit_RecomputesRemainingTerm(t *testing.T) {
	acct, err := NewAccount(NewGenerator(), referenceTerms(), day(2025, 1, 6))
	require.NoError(t, err)
	original := acct.Schedule()

	for i := 0; i < 10; i++ {
		require.NoError(t, acct.Advance())
	}
	assert.Equal(t, 10, acct.State().PeriodsElapsed)
	assert.Equal(t, 62, acct.RemainingTerm())
	assert.Equal(t, "4136.00", acct.State().OutstandingDue.StringFixed(2))
	assert.True(t, acct.Principal().Equal(original.Entries[10].RemainingBalance))

	_, err = acct.Pay(amount("4136"))
	require.NoError(t, err)

	principalBefore := acct.Principal()
	schedule, err := acct.ApplyCredit(amount("2000"))
	require.NoError(t, err)
	require.NotNil(t, schedule)

	assert.Equal(t, 62, schedule.Terms.Term)
	assert.Len(t, schedule.Entries, 63)
	assert.True(t, schedule.Terms.Principal.Equal(principalBefore.Sub(amount("2000"))))
	assert.True(t, schedule.Entries[0].RemainingBalance.Equal(schedule.Terms.Principal))
	assert.Equal(t, original.Entries[10].PaymentDate, schedule.Entries[0].PaymentDate)
	assert.Equal(t, original.Entries[11].PaymentDate, schedule.Entries[1].PaymentDate)
	assert.True(t, schedule.PeriodicPayment.LessThan(original.PeriodicPayment))
	assert.True(t, schedule.FinalBalance().IsZero())

	assert.True(t, acct.State().CreditBalance.IsZero())
	assert.Equal(t, 10, acct.State().PeriodsElapsed)
	assert.Equal(t, 62, acct.RemainingTerm())
	assert.Same(t, schedule, acct.Schedule())
}

func TestApplyCredit_UsesExistingCredit(t *testing.T) {
	acct := accountWithState(t, "0", "150")

	schedule, err := acct.ApplyCredit(amount("50"))
	require.NoError(t, err)
	assert.Equal(t, "9800.00", schedule.Terms.Principal.StringFixed(2))
	assert.Equal(t, 72, schedule.Terms.Term)
	assert.True(t, acct.State().CreditBalance.IsZero())
}

func TestApplyCredit_RetiresLoan(t *testing.T) {
	acct := accountWithState(t, "0", "0")

	schedule, err := acct.ApplyCredit(amount("10250"))
	require.NoError(t, err)
	assert.Nil(t, schedule)
	assert.True(t, acct.Retired())
	assert.True(t, acct.Principal().IsZero())
	assert.Equal(t, "250.00", acct.State().CreditBalance.StringFixed(2))
	assert.Equal(t, 0, acct.RemainingTerm())

	_, err = acct.ApplyCredit(amount("1"))
	assert.ErrorIs(t, err, domain.ErrLoanRetired)
	assert.ErrorIs(t, acct.Advance(), domain.ErrLoanRetired)
}

func TestAdvance_ThroughWholeSchedule(t *testing.T) {
	terms := domain.LoanTerms{
		Name:        "short",
		Principal:   decimal.NewFromInt(1000),
		Term:        3,
		Periodicity: domain.Monthly,
		AnnualRate:  decimal.Zero,
		TaxRate:     decimal.Zero,
	}
	acct, err := NewAccount(NewGenerator(), terms, day(2025, 1, 6))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, acct.Advance())
		_, err := acct.Pay(acct.State().OutstandingDue)
		require.NoError(t, err)
	}
	assert.True(t, acct.Retired())
	assert.True(t, acct.Principal().IsZero())
	assert.ErrorIs(t, acct.Advance(), domain.ErrLoanRetired)
}

func TestNewAccountFromState_RejectsNegativeBalances(t *testing.T) {
	_, err := NewAccountFromState(nil, referenceTerms(), day(2025, 1, 6), domain.LoanBalanceState{
		OutstandingDue: amount("-5"),
		CreditBalance:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestApplyPayment_Stateless(t *testing.T) {
	in := domain.LoanBalanceState{OutstandingDue: amount("413.60"), CreditBalance: amount("10"), PeriodsElapsed: 3}

	out, err := ApplyPayment(in, amount("300"))
	require.NoError(t, err)
	assert.Equal(t, "413.60", out.OutstandingDue.StringFixed(2))
	assert.Equal(t, "310.00", out.CreditBalance.StringFixed(2))
	assert.Equal(t, 3, out.PeriodsElapsed)
	assert.Equal(t, "10.00", in.CreditBalance.StringFixed(2), "input state must not change")

	_, err = ApplyPayment(domain.LoanBalanceState{OutstandingDue: amount("-1"), CreditBalance: decimal.Zero}, amount("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
