package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/rpgo/loan-amortizer/pkg/dateutil"
	money "github.com/rpgo/loan-amortizer/pkg/decimal"
	"github.com/shopspring/decimal"
)

// entryPrecision bounds the decimal places carried by interest and tax between
// periods. Amounts are rounded to cents only when rendered.
const entryPrecision int32 = 10

// Generator builds amortization schedules from LoanTerms
type Generator struct {
	Logger Logger
}

// NewGenerator creates a schedule generator with a no-op logger
func NewGenerator() *Generator {
	return &Generator{Logger: NopLogger{}}
}

// SetLogger sets the logger for the generator. If nil is provided, a no-op logger is used.
func (g *Generator) SetLogger(l Logger) {
	if l == nil {
		g.Logger = NopLogger{}
		return
	}
	g.Logger = l
}

// ScheduleIterator lazily walks the periods of one schedule. The activation
// date is captured when the iterator is created; Reset restarts from period 0.
type ScheduleIterator struct {
	terms      domain.LoanTerms
	activation time.Time
	rate       decimal.Decimal
	payment    decimal.Decimal

	current domain.ScheduleEntry
	started bool
}

// Iterate validates the terms and returns an iterator positioned before period 0.
func (g *Generator) Iterate(terms domain.LoanTerms, activation time.Time) (*ScheduleIterator, error) {
	rate, err := PeriodicRate(terms.AnnualRate, terms.Periodicity)
	if err != nil {
		return nil, err
	}
	payment, err := PeriodicPayment(terms.Principal, terms.Term, rate, terms.TaxRate)
	if err != nil {
		return nil, err
	}
	g.Logger.Debugf("schedule %q: periodicity=%s rate=%s payment=%s term=%d",
		terms.Name, terms.Periodicity, rate.StringFixed(6), payment.StringFixed(2), terms.Term)

	return &ScheduleIterator{
		terms:      terms,
		activation: activation,
		rate:       rate,
		payment:    payment,
	}, nil
}

// PeriodicRate returns the rate used for every period of this schedule.
func (it *ScheduleIterator) PeriodicRate() decimal.Decimal { return it.rate }

// PeriodicPayment returns the fixed installment of this schedule.
func (it *ScheduleIterator) PeriodicPayment() decimal.Decimal { return it.payment }

// Reset rewinds the iterator to the disbursement entry.
func (it *ScheduleIterator) Reset() {
	it.started = false
	it.current = domain.ScheduleEntry{}
}

// Next returns the next entry, or false once period == term has been produced.
func (it *ScheduleIterator) Next() (domain.ScheduleEntry, bool) {
	if !it.started {
		it.started = true
		it.current = domain.ScheduleEntry{
			Period:           0,
			PaymentDate:      it.activation,
			Interest:         decimal.Zero,
			Tax:              decimal.Zero,
			Amortization:     decimal.Zero,
			Payment:          decimal.Zero,
			RemainingBalance: it.terms.Principal,
		}
		return it.current, true
	}
	if it.current.Period >= it.terms.Term {
		return domain.ScheduleEntry{}, false
	}

	prev := it.current
	interest := it.rate.Mul(prev.RemainingBalance).Round(entryPrecision)
	tax := it.terms.TaxRate.Mul(interest).Round(entryPrecision)
	payment := it.payment
	amortization := payment.Sub(interest).Sub(tax)

	period := prev.Period + 1
	// the balance never goes below zero: once it would, and on the last
	// period, the installment settles exactly what is left
	if period == it.terms.Term || amortization.GreaterThan(prev.RemainingBalance) {
		amortization = prev.RemainingBalance
		payment = interest.Add(tax).Add(amortization)
	}

	it.current = domain.ScheduleEntry{
		Period:           period,
		PaymentDate:      NextPaymentDate(prev.PaymentDate, it.terms.Periodicity),
		Interest:         interest,
		Tax:              tax,
		Amortization:     amortization,
		Payment:          payment,
		RemainingBalance: prev.RemainingBalance.Sub(amortization),
	}
	return it.current, true
}

// Generate materializes the full schedule (term+1 entries) and its summary.
func (g *Generator) Generate(terms domain.LoanTerms, activation time.Time) (*domain.Schedule, error) {
	it, err := g.Iterate(terms, activation)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule %q: %w", terms.Name, err)
	}

	schedule := &domain.Schedule{
		Terms:           terms,
		PeriodicRate:    it.PeriodicRate(),
		PeriodicPayment: it.PeriodicPayment(),
		Entries:         make([]domain.ScheduleEntry, 0, terms.Term+1),
	}
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		schedule.Entries = append(schedule.Entries, entry)
	}
	schedule.Summary = summarize(schedule.Entries)

	last := schedule.Entries[len(schedule.Entries)-1]
	settlement := last.Payment.Sub(schedule.PeriodicPayment)
	switch {
	case settlement.Abs().GreaterThan(schedule.PeriodicPayment):
		g.Logger.Warnf("schedule %q: final installment %s is off the periodic payment %s by more than one installment",
			terms.Name, last.Payment.StringFixed(2), schedule.PeriodicPayment.StringFixed(2))
	case !money.WithinCent(settlement, decimal.Zero):
		g.Logger.Infof("schedule %q: final installment adjusted by %s", terms.Name, settlement.StringFixed(2))
	}
	if payoff := payoffPeriod(schedule.Entries); payoff < terms.Term {
		g.Logger.Warnf("schedule %q: balance paid off at period %d of %d, remaining installments are zero",
			terms.Name, payoff, terms.Term)
	}
	g.Logger.Infof("schedule %q generated: %d periods, expires %s (%d days)",
		terms.Name, terms.Term, schedule.Summary.ExpirationDate.Format(domain.DateLayout),
		dateutil.DaysBetween(schedule.Summary.ActivationDate, schedule.Summary.ExpirationDate))
	return schedule, nil
}

// GenerateAll runs one independent generation per loan of the plan.
func (g *Generator) GenerateAll(plan *domain.Plan) (*domain.ScheduleReport, error) {
	activation := plan.ActivationDate
	if activation.IsZero() {
		activation = Today()
	}
	report := &domain.ScheduleReport{Locale: plan.Locale, Schedules: make([]*domain.Schedule, 0, len(plan.Loans))}
	for _, terms := range plan.Loans {
		s, err := g.Generate(terms, activation)
		if err != nil {
			return nil, err
		}
		report.Schedules = append(report.Schedules, s)
	}
	return report, nil
}

// payoffPeriod returns the first period whose remaining balance is zero.
func payoffPeriod(entries []domain.ScheduleEntry) int {
	for _, e := range entries[1:] {
		if e.RemainingBalance.IsZero() {
			return e.Period
		}
	}
	return len(entries) - 1
}

func summarize(entries []domain.ScheduleEntry) domain.ScheduleSummary {
	summary := domain.ScheduleSummary{
		TotalInterest:     decimal.Zero,
		TotalTax:          decimal.Zero,
		TotalAmortization: decimal.Zero,
		TotalPaid:         decimal.Zero,
	}
	if len(entries) == 0 {
		return summary
	}
	summary.ActivationDate = entries[0].PaymentDate
	summary.ExpirationDate = entries[len(entries)-1].PaymentDate
	if len(entries) > 1 {
		summary.FirstPaymentDate = entries[1].PaymentDate
	}
	for _, e := range entries[1:] {
		summary.TotalInterest = summary.TotalInterest.Add(e.Interest)
		summary.TotalTax = summary.TotalTax.Add(e.Tax)
		summary.TotalAmortization = summary.TotalAmortization.Add(e.Amortization)
		summary.TotalPaid = summary.TotalPaid.Add(e.Payment)
	}
	return summary
}
