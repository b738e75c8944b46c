package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/loan-amortizer/internal/domain"
)

// ConsoleFormatter prints each schedule as a pipe separated table followed by
// its activation, first payment and expiration dates.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.ScheduleReport) ([]byte, error) {
	var buf bytes.Buffer
	loc := LocaleFor(report.Locale)

	for i, s := range report.Schedules {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		title := strings.ToUpper(s.Terms.Name)
		if title == "" {
			title = fmt.Sprintf("LOAN %d", i+1)
		}
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
		fmt.Fprintf(&buf, "%s: %s\n", loc.Rate, FormatPercentage(s.PeriodicRate))
		fmt.Fprintf(&buf, "%s: %s\n", loc.Payment, FormatAmount(s.PeriodicPayment))
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, strings.Join(loc.Columns[:], "  |  "))

		for _, e := range s.Entries {
			fmt.Fprintf(&buf, "%d  |  %s  |  %s  |  %s  |  %s  |  %s  |  %s\n",
				e.Period,
				loc.FormatDate(e.PaymentDate),
				FormatAmount(e.Amortization),
				FormatAmount(e.Interest),
				FormatAmount(e.Tax),
				FormatAmount(rowPayment(s, e)),
				FormatAmount(e.RemainingBalance),
			)
		}

		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s: %s\n", loc.Activation, loc.FormatDate(s.Summary.ActivationDate))
		if !s.Summary.FirstPaymentDate.IsZero() {
			fmt.Fprintf(&buf, "%s: %s\n", loc.FirstPayment, loc.FormatDate(s.Summary.FirstPaymentDate))
		}
		fmt.Fprintf(&buf, "%s: %s\n", loc.Expiration, loc.FormatDate(s.Summary.ExpirationDate))
	}
	return buf.Bytes(), nil
}
