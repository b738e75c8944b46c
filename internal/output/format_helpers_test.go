package output

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "413.60", FormatAmount(decimal.RequireFromString("413.6")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "$123.45", FormatCurrency(decimal.NewFromFloat(123.45)))
	assert.Equal(t, "3.3333%", FormatPercentage(decimal.RequireFromString("0.0333333333333333")))
	assert.Equal(t, "42", intToString(42))
}

func TestLocaleFormatDate(t *testing.T) {
	d := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Miercoles, 15 Enero de 2025", LocaleFor("es").FormatDate(d))
	assert.Equal(t, "Wednesday, January 15, 2025", LocaleFor("en").FormatDate(d))
	assert.Equal(t, "Lunes, 1 Setiembre de 2025", LocaleFor("").FormatDate(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
}
