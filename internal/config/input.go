package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/loan-amortizer/internal/domain"
	"gopkg.in/yaml.v3"
)

// SupportedLocales lists the locales the output layer can render
var SupportedLocales = []string{"es", "en"}

// DefaultLocale renders Spanish labels and dates
const DefaultLocale = "es"

// InputParser handles parsing of loan plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a loan plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates plan bytes
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if plan.Locale == "" {
		plan.Locale = DefaultLocale
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan validates the loaded plan
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if len(plan.Loans) == 0 {
		return fmt.Errorf("no loans provided")
	}

	if !isSupportedLocale(plan.Locale) {
		return fmt.Errorf("unsupported locale %q (supported: %s)", plan.Locale, strings.Join(SupportedLocales, ", "))
	}

	seen := make(map[string]bool, len(plan.Loans))
	for i := range plan.Loans {
		loan := &plan.Loans[i]
		if loan.Name == "" {
			loan.Name = fmt.Sprintf("loan-%d", i+1)
		}
		if seen[loan.Name] {
			return fmt.Errorf("duplicate loan name %q", loan.Name)
		}
		seen[loan.Name] = true

		if err := ValidateTerms(loan); err != nil {
			return fmt.Errorf("loan %s validation failed: %w", loan.Name, err)
		}
	}

	return nil
}

// ValidateTerms validates a single loan's terms
func ValidateTerms(terms *domain.LoanTerms) error {
	if !terms.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive", domain.ErrInvalidAmount)
	}
	if terms.Term < 1 {
		return fmt.Errorf("%w: term must be at least 1 period", domain.ErrInvalidTerm)
	}
	if !terms.Periodicity.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPeriodicity, string(terms.Periodicity))
	}
	if terms.AnnualRate.IsNegative() {
		return fmt.Errorf("%w: annual rate cannot be negative", domain.ErrInvalidRate)
	}
	if terms.TaxRate.IsNegative() {
		return fmt.Errorf("%w: tax rate cannot be negative", domain.ErrInvalidRate)
	}
	return nil
}

// SavePlan writes a plan back to YAML
func SavePlan(plan *domain.Plan, filename string) error {
	b, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

func isSupportedLocale(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}
