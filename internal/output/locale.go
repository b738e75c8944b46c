package output

import (
	"fmt"
	"time"
)

// Locale holds the labels and date layout used when rendering a schedule
type Locale struct {
	Code    string
	Days    [7]string
	Months  [12]string
	Columns [7]string
	// Summary labels: activation, first payment, expiration, payment, rate
	Activation   string
	FirstPayment string
	Expiration   string
	Payment      string
	Rate         string
	formatDate   func(l Locale, t time.Time) string
}

var spanish = Locale{
	Code:         "es",
	Days:         [7]string{"Domingo", "Lunes", "Martes", "Miercoles", "Jueves", "Viernes", "Sabado"},
	Months:       [12]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Setiembre", "Octubre", "Noviembre", "Diciembre"},
	Columns:      [7]string{"Periodo", "Fecha", "Amortizacion", "Intereses", "IVA", "Cuota", "Saldo"},
	Activation:   "Fecha de activacion",
	FirstPayment: "Fecha de primer pago",
	Expiration:   "Fecha de expiracion",
	Payment:      "Pago periodico",
	Rate:         "Tasa periodica",
	formatDate: func(l Locale, t time.Time) string {
		return fmt.Sprintf("%s, %d %s de %d", l.Days[t.Weekday()], t.Day(), l.Months[t.Month()-1], t.Year())
	},
}

var english = Locale{
	Code:         "en",
	Days:         [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Months:       [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	Columns:      [7]string{"Period", "Date", "Amortization", "Interest", "Tax", "Payment", "Balance"},
	Activation:   "Activation date",
	FirstPayment: "First payment date",
	Expiration:   "Expiration date",
	Payment:      "Periodic payment",
	Rate:         "Periodic rate",
	formatDate: func(l Locale, t time.Time) string {
		return fmt.Sprintf("%s, %s %d, %d", l.Days[t.Weekday()], l.Months[t.Month()-1], t.Day(), t.Year())
	},
}

// LocaleFor returns the locale for a code, falling back to Spanish.
func LocaleFor(code string) Locale {
	if code == english.Code {
		return english
	}
	return spanish
}

// FormatDate renders a long, localized date such as "Miercoles, 15 Enero de 2025".
func (l Locale) FormatDate(t time.Time) string {
	return l.formatDate(l, t)
}
