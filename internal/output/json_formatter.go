package output

import (
	"encoding/json"

	"github.com/rpgo/loan-amortizer/internal/domain"
	money "github.com/rpgo/loan-amortizer/pkg/decimal"
	"github.com/shopspring/decimal"
)

// JSONFormatter serializes the schedule report as pretty-printed JSON.
// Amounts are written at cent precision; the periodic rate is kept as computed.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *domain.ScheduleReport) ([]byte, error) {
	return json.MarshalIndent(centsReport(report), "", "  ")
}

func cents(d decimal.Decimal) decimal.Decimal {
	return money.NewMoneyFromDecimal(d).Round().Decimal
}

// centsReport copies the report with every amount rounded to cents.
func centsReport(report *domain.ScheduleReport) *domain.ScheduleReport {
	out := &domain.ScheduleReport{Locale: report.Locale, Schedules: make([]*domain.Schedule, 0, len(report.Schedules))}
	for _, s := range report.Schedules {
		c := *s
		c.PeriodicPayment = cents(s.PeriodicPayment)
		c.Entries = make([]domain.ScheduleEntry, len(s.Entries))
		for i, e := range s.Entries {
			e.Interest = cents(e.Interest)
			e.Tax = cents(e.Tax)
			e.Amortization = cents(e.Amortization)
			e.Payment = cents(e.Payment)
			e.RemainingBalance = cents(e.RemainingBalance)
			c.Entries[i] = e
		}
		c.Summary.TotalInterest = cents(s.Summary.TotalInterest)
		c.Summary.TotalTax = cents(s.Summary.TotalTax)
		c.Summary.TotalAmortization = cents(s.Summary.TotalAmortization)
		c.Summary.TotalPaid = cents(s.Summary.TotalPaid)
		out.Schedules = append(out.Schedules, &c)
	}
	return out
}
