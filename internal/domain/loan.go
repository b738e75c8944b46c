package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Periodicity is the payment cadence of a loan
type Periodicity string

const (
	Weekly   Periodicity = "weekly"
	Biweekly Periodicity = "biweekly"
	Monthly  Periodicity = "monthly"
)

// periodicityLabels maps accepted boundary labels (including the Spanish ones) to the enum.
var periodicityLabels = map[string]Periodicity{
	"weekly":      Weekly,
	"semanal":     Weekly,
	"biweekly":    Biweekly,
	"semimonthly": Biweekly,
	"quincenal":   Biweekly,
	"monthly":     Monthly,
	"mensual":     Monthly,
}

// ParsePeriodicity normalizes a configuration label into a Periodicity.
func ParsePeriodicity(label string) (Periodicity, error) {
	if p, ok := periodicityLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriodicity, label)
}

// Valid reports whether p is one of the three supported cadences.
func (p Periodicity) Valid() bool {
	switch p {
	case Weekly, Biweekly, Monthly:
		return true
	}
	return false
}

func (p Periodicity) String() string { return string(p) }

// UnmarshalText lets JSON payloads carry localized labels.
func (p *Periodicity) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriodicity(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for Periodicity
func (p *Periodicity) UnmarshalYAML(value *yaml.Node) error {
	var label string
	if err := value.Decode(&label); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(label))
}

// LoanTerms is the immutable input of a schedule run. A new value is built
// whenever an adjustment forces a recomputation.
type LoanTerms struct {
	Name        string          `yaml:"name" json:"name,omitempty"`
	Principal   decimal.Decimal `yaml:"principal" json:"principal"`
	Term        int             `yaml:"term" json:"term"`
	Periodicity Periodicity     `yaml:"periodicity" json:"periodicity"`
	AnnualRate  decimal.Decimal `yaml:"annual_rate" json:"annual_rate"`
	TaxRate     decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
}

// WithRemainder returns a copy of the terms describing the unpaid remainder of the loan.
func (t LoanTerms) WithRemainder(principal decimal.Decimal, remainingTerm int) LoanTerms {
	t.Principal = principal
	t.Term = remainingTerm
	return t
}

// ScheduleEntry is one row of an amortization schedule. Period 0 is the
// disbursement and carries no payment.
type ScheduleEntry struct {
	Period           int             `json:"period"`
	PaymentDate      time.Time       `json:"payment_date"`
	Interest         decimal.Decimal `json:"interest"`
	Tax              decimal.Decimal `json:"tax"`
	Amortization     decimal.Decimal `json:"amortization"`
	Payment          decimal.Decimal `json:"payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// Schedule is a fully materialized amortization table for one LoanTerms.
type Schedule struct {
	Terms           LoanTerms       `json:"terms"`
	PeriodicRate    decimal.Decimal `json:"periodic_rate"`
	PeriodicPayment decimal.Decimal `json:"periodic_payment"`
	Entries         []ScheduleEntry `json:"entries"`
	Summary         ScheduleSummary `json:"summary"`
}

// ScheduleSummary holds the key dates and totals of a schedule
type ScheduleSummary struct {
	ActivationDate    time.Time       `json:"activation_date"`
	FirstPaymentDate  time.Time       `json:"first_payment_date"`
	ExpirationDate    time.Time       `json:"expiration_date"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	TotalAmortization decimal.Decimal `json:"total_amortization"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
}

// FinalBalance returns the remaining balance after the last period.
func (s *Schedule) FinalBalance() decimal.Decimal {
	if len(s.Entries) == 0 {
		return decimal.Zero
	}
	return s.Entries[len(s.Entries)-1].RemainingBalance
}

// LoanBalanceState tracks dues and overpayments between scheduled periods.
type LoanBalanceState struct {
	OutstandingDue decimal.Decimal `yaml:"outstanding_due" json:"outstanding_due"`
	CreditBalance  decimal.Decimal `yaml:"credit_balance" json:"credit_balance"`
	PeriodsElapsed int             `yaml:"periods_elapsed" json:"periods_elapsed"`
}

// ScheduleReport groups the schedules rendered together by the output layer.
type ScheduleReport struct {
	Locale    string      `json:"locale"`
	Schedules []*Schedule `json:"schedules"`
}
