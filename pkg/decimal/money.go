package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cent is the smallest currency unit handled by the calculator
var Cent = decimal.New(1, -2)

// Money represents a monetary amount displayed at cent precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string.
// Thousands separators and a leading currency symbol are tolerated.
func NewMoneyFromString(value string) (Money, error) {
	d, err := ParseAmount(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents, half away from zero
func (m Money) Round() Money {
	return Money{RoundCents(m.Decimal)}
}

// String returns the amount fixed at two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the amount with a currency symbol
func (m Money) Format(symbol string) string {
	if m.Decimal.IsNegative() {
		return "-" + symbol + m.Decimal.Neg().StringFixed(2)
	}
	return symbol + m.String()
}

// RoundCents rounds d to two decimal places. shopspring rounds half away
// from zero, which is half-up for the non-negative amounts used here.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinCent reports whether a and b differ by at most one cent.
func WithinCent(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Cent)
}

// ParseAmount parses a user supplied amount such as "10,000.50" or "$600".
func ParseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return d, nil
}

// Min returns the minimum of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
