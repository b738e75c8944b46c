package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter exports one row per loan period.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *domain.ScheduleReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Loan", "Period", "PaymentDate", "Amortization", "Interest", "Tax", "Payment", "RemainingBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.Schedules {
		for _, e := range s.Entries {
			row := []string{
				s.Terms.Name,
				intToString(e.Period),
				e.PaymentDate.Format(domain.DateLayout),
				e.Amortization.StringFixed(2),
				e.Interest.StringFixed(2),
				e.Tax.StringFixed(2),
				rowPayment(s, e).StringFixed(2),
				e.RemainingBalance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// rowPayment is the installment column; row 0 shows the periodic payment.
func rowPayment(s *domain.Schedule, e domain.ScheduleEntry) decimal.Decimal {
	if e.Period == 0 {
		return s.PeriodicPayment
	}
	return e.Payment
}
