package calculation

import (
	"time"

	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/rpgo/loan-amortizer/pkg/dateutil"
)

// NextPaymentDate snaps ref to the next canonical payment date for the periodicity.
// An unrecognized periodicity returns ref unchanged; callers that need a hard
// failure validate the periodicity through PeriodsPerYear first.
func NextPaymentDate(ref time.Time, p domain.Periodicity) time.Time {
	switch p {
	case domain.Weekly:
		return dateutil.RollWeekly(ref)
	case domain.Biweekly:
		return dateutil.RollSemiMonthly(ref)
	case domain.Monthly:
		return dateutil.RollMonthly(ref)
	default:
		return ref
	}
}
