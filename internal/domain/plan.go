package domain

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the calendar date format used in plan files and API payloads.
const DateLayout = "2006-01-02"

// Plan is the top-level loan plan file: one or more loans sharing an
// activation date and a rendering locale.
type Plan struct {
	ActivationDate time.Time   `yaml:"activation_date" json:"activation_date"`
	Locale         string      `yaml:"locale" json:"locale"`
	Loans          []LoanTerms `yaml:"loans" json:"loans"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Plan
func (p *Plan) UnmarshalYAML(value *yaml.Node) error {
	// Dates are plain calendar days; parse them as strings so both quoted and
	// unquoted forms are accepted.
	type Alias struct {
		ActivationDate string      `yaml:"activation_date"`
		Locale         string      `yaml:"locale"`
		Loans          []LoanTerms `yaml:"loans"`
	}
	var alias Alias
	if err := value.Decode(&alias); err != nil {
		return err
	}
	if alias.ActivationDate != "" {
		t, err := ParseDate(alias.ActivationDate)
		if err != nil {
			return fmt.Errorf("invalid activation_date: %w", err)
		}
		p.ActivationDate = t
	}
	p.Locale = alias.Locale
	p.Loans = alias.Loans
	return nil
}

// MarshalYAML writes the activation date back in DateLayout.
func (p Plan) MarshalYAML() (interface{}, error) {
	type Alias struct {
		ActivationDate string      `yaml:"activation_date,omitempty"`
		Locale         string      `yaml:"locale,omitempty"`
		Loans          []LoanTerms `yaml:"loans"`
	}
	alias := Alias{Locale: p.Locale, Loans: p.Loans}
	if !p.ActivationDate.IsZero() {
		alias.ActivationDate = p.ActivationDate.Format(DateLayout)
	}
	return alias, nil
}

// ParseDate parses a calendar date (or an RFC3339 timestamp) into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
