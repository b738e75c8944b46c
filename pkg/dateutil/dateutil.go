package dateutil

import (
	"time"
)

// PaymentWeekday is the day weekly installments fall due
const PaymentWeekday = time.Saturday

// MidMonthDay is the second semi-monthly payment day
const MidMonthDay = 15

// SetDay returns t moved to the given day of its month. Out of range days
// overflow into the following month, the same way time.Date normalizes.
func SetDay(t time.Time, day int) time.Time {
	return time.Date(t.Year(), t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// FirstOfMonthAfter returns day one of the month that is months after t's month.
// Building the date from day one avoids the month-end overflow of AddDate
// (Jan 31 + 1 month would otherwise land in March).
func FirstOfMonthAfter(t time.Time, months int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DayOfMonthAfter returns the given day of the month that is months after t's month.
func DayOfMonthAfter(t time.Time, months, day int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(months), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// RollWeekly moves t to the Saturday of the same week when t falls on
// Sunday through Wednesday, and to the Saturday of the following week otherwise.
func RollWeekly(t time.Time) time.Time {
	dow := int(t.Weekday())
	if dow <= int(time.Wednesday) {
		return t.AddDate(0, 0, int(PaymentWeekday)-dow)
	}
	return t.AddDate(0, 0, int(PaymentWeekday)+7-dow)
}

// RollSemiMonthly snaps t to the next 1st/15th payment date:
// days 1-7 go to the 15th, days 8-23 to the 1st of next month and
// later days to the 15th of next month.
func RollSemiMonthly(t time.Time) time.Time {
	switch d := t.Day(); {
	case d <= 7:
		return SetDay(t, MidMonthDay)
	case d <= 23:
		return FirstOfMonthAfter(t, 1)
	default:
		return DayOfMonthAfter(t, 1, MidMonthDay)
	}
}

// RollMonthly snaps t to the first of next month for days 1-15 and to the
// first of the month after next otherwise.
func RollMonthly(t time.Time) time.Time {
	if t.Day() <= MidMonthDay {
		return FirstOfMonthAfter(t, 1)
	}
	return FirstOfMonthAfter(t, 2)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
