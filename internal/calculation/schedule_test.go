package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceTerms() domain.LoanTerms {
	return domain.LoanTerms{
		Name:        "reference",
		Principal:   decimal.NewFromInt(10000),
		Term:        72,
		Periodicity: domain.Biweekly,
		AnnualRate:  decimal.RequireFromString("0.8"),
		TaxRate:     decimal.RequireFromString("0.16"),
	}
}

// recordingLogger captures formatted messages for assertions
type recordingLogger struct {
	NopLogger
	infos []string
	warns []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func TestGenerate_ReferenceLoan(t *testing.T) {
	activation := day(2025, 1, 6)
	schedule, err := NewGenerator().Generate(referenceTerms(), activation)
	require.NoError(t, err)

	require.Len(t, schedule.Entries, 73)
	assert.Equal(t, "413.60", schedule.PeriodicPayment.StringFixed(2))

	first := schedule.Entries[0]
	assert.Equal(t, 0, first.Period)
	assert.Equal(t, activation, first.PaymentDate)
	assert.True(t, first.RemainingBalance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, first.Interest.IsZero())
	assert.True(t, first.Amortization.IsZero())
	assert.True(t, first.Payment.IsZero())

	one := schedule.Entries[1]
	assert.Equal(t, day(2025, 1, 15), one.PaymentDate)
	assert.Equal(t, "333.33", one.Interest.StringFixed(2))
	assert.Equal(t, "53.33", one.Tax.StringFixed(2))
	assert.Equal(t, "26.93", one.Amortization.StringFixed(2))
	assert.Equal(t, "9973.07", one.RemainingBalance.StringFixed(2))

	assert.Equal(t, day(2025, 2, 1), schedule.Entries[2].PaymentDate)
	assert.Equal(t, day(2025, 2, 15), schedule.Entries[3].PaymentDate)
	// 72 semi-monthly periods after the Jan 15 start cover three years
	assert.Equal(t, day(2028, 1, 1), schedule.Summary.ExpirationDate)
	assert.Equal(t, day(2025, 1, 15), schedule.Summary.FirstPaymentDate)
	assert.Equal(t, activation, schedule.Summary.ActivationDate)
}

func TestGenerate_Invariants(t *testing.T) {
	cases := []domain.LoanTerms{
		referenceTerms(),
		{Name: "weekly", Principal: decimal.NewFromInt(5000), Term: 10, Periodicity: domain.Weekly, AnnualRate: decimal.RequireFromString("0.52"), TaxRate: decimal.RequireFromString("0.16")},
		{Name: "monthly", Principal: decimal.NewFromInt(10000), Term: 12, Periodicity: domain.Monthly, AnnualRate: decimal.RequireFromString("0.12"), TaxRate: decimal.Zero},
		{Name: "zero-rate", Principal: decimal.NewFromInt(1000), Term: 3, Periodicity: domain.Monthly, AnnualRate: decimal.Zero, TaxRate: decimal.RequireFromString("0.16")},
		{Name: "single", Principal: decimal.RequireFromString("250.55"), Term: 1, Periodicity: domain.Weekly, AnnualRate: decimal.RequireFromString("0.3"), TaxRate: decimal.RequireFromString("0.16")},
	}

	for _, terms := range cases {
		t.Run(terms.Name, func(t *testing.T) {
			schedule, err := NewGenerator().Generate(terms, day(2025, 5, 20))
			require.NoError(t, err)
			require.Len(t, schedule.Entries, terms.Term+1)

			sum := decimal.Zero
			for n := 1; n <= terms.Term; n++ {
				e := schedule.Entries[n]
				prev := schedule.Entries[n-1]
				assert.Equal(t, n, e.Period)
				assert.True(t, e.Amortization.Equal(e.Payment.Sub(e.Interest).Sub(e.Tax)), "period %d amortization", n)
				assert.True(t, e.RemainingBalance.Equal(prev.RemainingBalance.Sub(e.Amortization)), "period %d balance", n)
				assert.True(t, e.PaymentDate.After(prev.PaymentDate), "period %d date", n)
				if n < terms.Term {
					assert.True(t, e.Payment.Equal(schedule.PeriodicPayment), "period %d pays the fixed installment", n)
				}
				sum = sum.Add(e.Amortization)
			}

			final := schedule.FinalBalance()
			assert.True(t, sum.Equal(terms.Principal.Sub(final)))
			assert.True(t, final.Abs().LessThanOrEqual(decimal.RequireFromString("0.01")), "final balance %s", final)
			assert.True(t, schedule.Summary.TotalAmortization.Equal(sum))
		})
	}
}

func TestGenerate_FinalInstallmentSettlesDrift(t *testing.T) {
	schedule, err := NewGenerator().Generate(referenceTerms(), day(2025, 1, 6))
	require.NoError(t, err)

	last := schedule.Entries[72]
	assert.True(t, last.RemainingBalance.IsZero())
	diff := last.Payment.Sub(schedule.PeriodicPayment).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromInt(1)), "settlement %s should stay below one unit", diff)
}

func TestGenerate_EntriesKeepSubCentPrecision(t *testing.T) {
	schedule, err := NewGenerator().Generate(referenceTerms(), day(2025, 1, 6))
	require.NoError(t, err)

	one := schedule.Entries[1]
	assert.True(t, one.Interest.GreaterThan(decimal.RequireFromString("333.333")), "interest %s", one.Interest)
	assert.True(t, one.Interest.LessThan(decimal.RequireFromString("333.334")), "interest %s", one.Interest)
	assert.False(t, one.Tax.Equal(one.Tax.Round(2)), "tax %s is not cut to cents", one.Tax)
	for _, e := range schedule.Entries {
		assert.LessOrEqual(t, -e.Interest.Exponent(), entryPrecision)
		assert.LessOrEqual(t, -e.RemainingBalance.Exponent(), entryPrecision)
	}
}

// assertNonNegativeSchedule checks that rounding the installment never drives
// a balance or an installment below zero and that the principal is repaid.
func assertNonNegativeSchedule(t *testing.T, terms domain.LoanTerms, schedule *domain.Schedule) {
	t.Helper()
	sum := decimal.Zero
	for _, e := range schedule.Entries[1:] {
		assert.False(t, e.RemainingBalance.IsNegative(), "period %d balance %s", e.Period, e.RemainingBalance)
		assert.False(t, e.Payment.IsNegative(), "period %d payment %s", e.Period, e.Payment)
		assert.True(t, e.Amortization.Equal(e.Payment.Sub(e.Interest).Sub(e.Tax)), "period %d amortization", e.Period)
		sum = sum.Add(e.Amortization)
	}
	assert.True(t, schedule.FinalBalance().IsZero(), "final balance %s", schedule.FinalBalance())
	assert.True(t, sum.Equal(terms.Principal), "amortized %s of %s", sum, terms.Principal)
}

func TestGenerate_TinyPrincipalPaysOffEarly(t *testing.T) {
	terms := domain.LoanTerms{
		Name:        "tiny",
		Principal:   decimal.RequireFromString("0.05"),
		Term:        12,
		Periodicity: domain.Monthly,
		AnnualRate:  decimal.RequireFromString("0.8"),
		TaxRate:     decimal.RequireFromString("0.16"),
	}
	rec := &recordingLogger{}
	gen := NewGenerator()
	gen.SetLogger(rec)

	schedule, err := gen.Generate(terms, day(2025, 1, 6))
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 13)
	assert.Equal(t, "0.01", schedule.PeriodicPayment.StringFixed(2))
	assertNonNegativeSchedule(t, terms, schedule)

	last := schedule.Entries[12]
	assert.True(t, last.Payment.IsZero(), "nothing left to pay in the last period")
	require.NotEmpty(t, rec.warns)
	assert.Contains(t, rec.warns[0], "paid off at period")
}

func TestGenerate_LongWeeklyOverpaymentStopsAtZero(t *testing.T) {
	terms := domain.LoanTerms{
		Name:        "weekly-520",
		Principal:   decimal.NewFromInt(1000),
		Term:        520,
		Periodicity: domain.Weekly,
		AnnualRate:  decimal.RequireFromString("0.8"),
		TaxRate:     decimal.RequireFromString("0.16"),
	}
	rec := &recordingLogger{}
	gen := NewGenerator()
	gen.SetLogger(rec)

	schedule, err := gen.Generate(terms, day(2025, 1, 6))
	require.NoError(t, err)
	assert.Equal(t, "17.85", schedule.PeriodicPayment.StringFixed(2))
	assertNonNegativeSchedule(t, terms, schedule)

	payoff := payoffPeriod(schedule.Entries)
	assert.Less(t, payoff, terms.Term)
	for _, e := range schedule.Entries[payoff+1:] {
		assert.True(t, e.Payment.IsZero(), "period %d after payoff", e.Period)
	}
	assert.True(t, schedule.Summary.TotalAmortization.Equal(terms.Principal))
	require.NotEmpty(t, rec.warns)
	assert.Contains(t, rec.warns[len(rec.warns)-1], "paid off at period")
}

func TestGenerate_LongWeeklyUnderpaymentWarns(t *testing.T) {
	terms := domain.LoanTerms{
		Name:        "weekly-1040",
		Principal:   decimal.NewFromInt(10000),
		Term:        1040,
		Periodicity: domain.Weekly,
		AnnualRate:  decimal.RequireFromString("0.8"),
		TaxRate:     decimal.RequireFromString("0.16"),
	}
	rec := &recordingLogger{}
	gen := NewGenerator()
	gen.SetLogger(rec)

	schedule, err := gen.Generate(terms, day(2025, 1, 6))
	require.NoError(t, err)
	assertNonNegativeSchedule(t, terms, schedule)

	last := schedule.Entries[terms.Term]
	assert.True(t, last.Payment.GreaterThan(schedule.PeriodicPayment.Mul(decimal.NewFromInt(2))),
		"final installment %s", last.Payment)
	require.NotEmpty(t, rec.warns)
	assert.Contains(t, rec.warns[0], "by more than one installment")
}

func TestGenerate_InvalidTerms(t *testing.T) {
	terms := referenceTerms()
	terms.Term = 0
	_, err := NewGenerator().Generate(terms, day(2025, 1, 6))
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	terms = referenceTerms()
	terms.Periodicity = "fortnightly"
	_, err = NewGenerator().Generate(terms, day(2025, 1, 6))
	assert.ErrorIs(t, err, domain.ErrInvalidPeriodicity)
}

func TestIterator_LazyAndRestartable(t *testing.T) {
	it, err := NewGenerator().Iterate(referenceTerms(), day(2025, 1, 6))
	require.NoError(t, err)

	var firstPass []domain.ScheduleEntry
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		firstPass = append(firstPass, e)
	}
	require.Len(t, firstPass, 73)

	_, ok := it.Next()
	assert.False(t, ok, "exhausted iterator stays exhausted")

	it.Reset()
	e, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, firstPass[0], e)
	e, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, firstPass[1], e)
}

func TestGenerate_LogsThroughLogger(t *testing.T) {
	rec := &recordingLogger{}
	gen := NewGenerator()
	gen.SetLogger(rec)

	_, err := gen.Generate(referenceTerms(), day(2025, 1, 6))
	require.NoError(t, err)
	require.NotEmpty(t, rec.infos)
	assert.Contains(t, rec.infos[len(rec.infos)-1], "expires 2028-01-01")
	assert.Contains(t, rec.infos[len(rec.infos)-1], "(1090 days)")

	assert.Empty(t, rec.warns)

	gen.SetLogger(nil)
	assert.IsType(t, NopLogger{}, gen.Logger)
}

func TestGenerateAll_IndependentRuns(t *testing.T) {
	second := referenceTerms()
	second.Name = "monthly"
	second.Periodicity = domain.Monthly
	second.Term = 24

	plan := &domain.Plan{
		ActivationDate: day(2025, 1, 6),
		Locale:         "es",
		Loans:          []domain.LoanTerms{referenceTerms(), second},
	}
	report, err := NewGenerator().GenerateAll(plan)
	require.NoError(t, err)
	require.Len(t, report.Schedules, 2)
	assert.Equal(t, "es", report.Locale)
	assert.Len(t, report.Schedules[0].Entries, 73)
	assert.Len(t, report.Schedules[1].Entries, 25)
	assert.Equal(t, day(2025, 2, 1), report.Schedules[1].Entries[1].PaymentDate)
}

func TestGenerateAll_DefaultsActivationToClock(t *testing.T) {
	SetNowFunc(func() time.Time { return time.Date(2025, 7, 9, 18, 30, 0, 0, time.UTC) })
	defer SetNowFunc(time.Now)

	report, err := NewGenerator().GenerateAll(&domain.Plan{Loans: []domain.LoanTerms{referenceTerms()}})
	require.NoError(t, err)
	assert.Equal(t, day(2025, 7, 9), report.Schedules[0].Summary.ActivationDate)
}
