package output

import (
	"strconv"

	money "github.com/rpgo/loan-amortizer/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatAmount formats a decimal fixed at 2 decimals, the way every monetary column is shown.
func FormatAmount(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).String()
}

// FormatCurrency formats a decimal with a currency symbol and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format("$")
}

// FormatPercentage formats a rate (0.0333) as a percentage with 4 decimals.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(4) + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }
