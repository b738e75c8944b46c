package calculation

import (
	"fmt"

	"github.com/rpgo/loan-amortizer/internal/domain"
	money "github.com/rpgo/loan-amortizer/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PeriodsPerYear returns the number of installments per year for a periodicity
func PeriodsPerYear(p domain.Periodicity) (int, error) {
	switch p {
	case domain.Weekly:
		return 52, nil
	case domain.Biweekly:
		return 24, nil
	case domain.Monthly:
		return 12, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidPeriodicity, string(p))
	}
}

// PeriodicRate divides the annual nominal rate by the periods per year.
// It depends only on the periodicity, never on the term.
func PeriodicRate(annualRate decimal.Decimal, p domain.Periodicity) (decimal.Decimal, error) {
	n, err := PeriodsPerYear(p)
	if err != nil {
		return decimal.Zero, err
	}
	return annualRate.Div(decimal.NewFromInt(int64(n))), nil
}

// TaxAdjustedRate scales the periodic rate by (1 + taxRate).
func TaxAdjustedRate(periodicRate, taxRate decimal.Decimal) decimal.Decimal {
	return periodicRate.Mul(decimal.NewFromInt(1).Add(taxRate))
}

// PeriodicPayment computes the fixed installment with the annuity formula
//
//	r       = periodicRate * (1 + taxRate)
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// rounded half-up to cents. A zero rate degenerates to P / n.
func PeriodicPayment(principal decimal.Decimal, term int, periodicRate, taxRate decimal.Decimal) (decimal.Decimal, error) {
	if term < 1 {
		return decimal.Zero, fmt.Errorf("%w: term must be at least 1, got %d", domain.ErrInvalidTerm, term)
	}
	one := decimal.NewFromInt(1)
	r := TaxAdjustedRate(periodicRate, taxRate)
	if r.LessThanOrEqual(one.Neg()) {
		return decimal.Zero, fmt.Errorf("%w: tax-adjusted rate %s must be greater than -1", domain.ErrInvalidRate, r.String())
	}
	n := decimal.NewFromInt(int64(term))
	if r.IsZero() {
		return money.RoundCents(principal.Div(n)), nil
	}

	factor := one.Add(r).Pow(n)
	payment := principal.Mul(r).Mul(factor).Div(factor.Sub(one))
	return money.RoundCents(payment), nil
}
