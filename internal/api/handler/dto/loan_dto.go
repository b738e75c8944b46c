package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpgo/loan-amortizer/internal/config"
	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/shopspring/decimal"
)

type LoanTermsRequest struct {
	Name        string          `json:"name"`
	Principal   decimal.Decimal `json:"principal"`
	Term        int             `json:"term"`
	Periodicity string          `json:"periodicity"`
	AnnualRate  decimal.Decimal `json:"annualRate"`
	TaxRate     decimal.Decimal `json:"taxRate"`
}

// ToDomain parses the periodicity label and validates the terms.
func (r LoanTermsRequest) ToDomain() (domain.LoanTerms, error) {
	p, err := domain.ParsePeriodicity(r.Periodicity)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	terms := domain.LoanTerms{
		Name:        strings.TrimSpace(r.Name),
		Principal:   r.Principal,
		Term:        r.Term,
		Periodicity: p,
		AnnualRate:  r.AnnualRate,
		TaxRate:     r.TaxRate,
	}
	if err := config.ValidateTerms(&terms); err != nil {
		return domain.LoanTerms{}, err
	}
	return terms, nil
}

type CreateScheduleRequest struct {
	LoanTermsRequest
	ActivationDate string `json:"activationDate"`
}

// Activation parses the activation date; empty means "today" and is resolved by the caller.
func (r CreateScheduleRequest) Activation() (time.Time, error) {
	return parseOptionalDate(r.ActivationDate, "activationDate")
}

type BalanceStateRequest struct {
	OutstandingDue decimal.Decimal `json:"outstandingDue"`
	CreditBalance  decimal.Decimal `json:"creditBalance"`
	PeriodsElapsed int             `json:"periodsElapsed"`
}

func (r BalanceStateRequest) ToDomain() domain.LoanBalanceState {
	return domain.LoanBalanceState{
		OutstandingDue: r.OutstandingDue,
		CreditBalance:  r.CreditBalance,
		PeriodsElapsed: r.PeriodsElapsed,
	}
}

type PayRequest struct {
	State  BalanceStateRequest `json:"state"`
	Amount decimal.Decimal     `json:"amount"`
}

// CreditRequest describes the unpaid remainder of a loan: Loan.Principal is the
// current principal and Loan.Term the number of periods left after AsOf.
type CreditRequest struct {
	Loan   LoanTermsRequest    `json:"loan"`
	AsOf   string              `json:"asOf"`
	State  BalanceStateRequest `json:"state"`
	Amount decimal.Decimal     `json:"amount"`
}

func (r CreditRequest) AsOfDate() (time.Time, error) {
	return parseOptionalDate(r.AsOf, "asOf")
}

func parseOptionalDate(value, field string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format (use YYYY-MM-DD): %w", field, err)
	}
	return t, nil
}

type ScheduleEntryResponse struct {
	Period           int    `json:"period"`
	PaymentDate      string `json:"paymentDate"`
	Interest         string `json:"interest"`
	Tax              string `json:"tax"`
	Amortization     string `json:"amortization"`
	Payment          string `json:"payment"`
	RemainingBalance string `json:"remainingBalance"`
}

type ScheduleResponse struct {
	Name             string                  `json:"name,omitempty"`
	Principal        string                  `json:"principal"`
	Term             int                     `json:"term"`
	Periodicity      string                  `json:"periodicity"`
	PeriodicRate     string                  `json:"periodicRate"`
	PeriodicPayment  string                  `json:"periodicPayment"`
	ActivationDate   string                  `json:"activationDate"`
	FirstPaymentDate string                  `json:"firstPaymentDate"`
	ExpirationDate   string                  `json:"expirationDate"`
	TotalInterest    string                  `json:"totalInterest"`
	TotalTax         string                  `json:"totalTax"`
	TotalPaid        string                  `json:"totalPaid"`
	Entries          []ScheduleEntryResponse `json:"entries"`
}

func NewScheduleResponse(s *domain.Schedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		Name:             s.Terms.Name,
		Principal:        s.Terms.Principal.StringFixed(2),
		Term:             s.Terms.Term,
		Periodicity:      s.Terms.Periodicity.String(),
		PeriodicRate:     s.PeriodicRate.StringFixed(6),
		PeriodicPayment:  s.PeriodicPayment.StringFixed(2),
		ActivationDate:   formatDate(s.Summary.ActivationDate),
		FirstPaymentDate: formatDate(s.Summary.FirstPaymentDate),
		ExpirationDate:   formatDate(s.Summary.ExpirationDate),
		TotalInterest:    s.Summary.TotalInterest.StringFixed(2),
		TotalTax:         s.Summary.TotalTax.StringFixed(2),
		TotalPaid:        s.Summary.TotalPaid.StringFixed(2),
		Entries:          make([]ScheduleEntryResponse, 0, len(s.Entries)),
	}
	for _, e := range s.Entries {
		resp.Entries = append(resp.Entries, ScheduleEntryResponse{
			Period:           e.Period,
			PaymentDate:      formatDate(e.PaymentDate),
			Interest:         e.Interest.StringFixed(2),
			Tax:              e.Tax.StringFixed(2),
			Amortization:     e.Amortization.StringFixed(2),
			Payment:          e.Payment.StringFixed(2),
			RemainingBalance: e.RemainingBalance.StringFixed(2),
		})
	}
	return resp
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

type BalanceStateResponse struct {
	OutstandingDue string `json:"outstandingDue"`
	CreditBalance  string `json:"creditBalance"`
	PeriodsElapsed int    `json:"periodsElapsed"`
}

func NewBalanceStateResponse(s domain.LoanBalanceState) BalanceStateResponse {
	return BalanceStateResponse{
		OutstandingDue: s.OutstandingDue.StringFixed(2),
		CreditBalance:  s.CreditBalance.StringFixed(2),
		PeriodsElapsed: s.PeriodsElapsed,
	}
}

type CreditResponse struct {
	State     BalanceStateResponse `json:"state"`
	Principal string               `json:"principal"`
	Retired   bool                 `json:"retired"`
	Schedule  *ScheduleResponse    `json:"schedule,omitempty"`
}

type ErrorDetail struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
