package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/loan-amortizer/internal/domain"
	"github.com/shopspring/decimal"
)

func buildTestReport(locale string) *domain.ScheduleReport {
	d := func(m time.Month, day int) time.Time { return time.Date(2025, m, day, 0, 0, 0, 0, time.UTC) }
	dec := decimal.RequireFromString
	s := &domain.Schedule{
		Terms: domain.LoanTerms{
			Name:        "quincenal-2",
			Principal:   dec("1000"),
			Term:        2,
			Periodicity: domain.Biweekly,
			AnnualRate:  dec("0.24"),
			TaxRate:     dec("0.16"),
		},
		PeriodicRate:    dec("0.01"),
		PeriodicPayment: dec("508.77"),
		Entries: []domain.ScheduleEntry{
			{Period: 0, PaymentDate: d(1, 6), RemainingBalance: dec("1000")},
			{Period: 1, PaymentDate: d(1, 15), Interest: dec("10"), Tax: dec("1.6"), Amortization: dec("497.17"), Payment: dec("508.77"), RemainingBalance: dec("502.83")},
			{Period: 2, PaymentDate: d(2, 1), Interest: dec("5.03"), Tax: dec("0.8"), Amortization: dec("502.83"), Payment: dec("508.66"), RemainingBalance: dec("0")},
		},
		Summary: domain.ScheduleSummary{ActivationDate: d(1, 6), FirstPaymentDate: d(1, 15), ExpirationDate: d(2, 1)},
	}
	return &domain.ScheduleReport{Locale: locale, Schedules: []*domain.Schedule{s}}
}

func TestConsoleFormatter_Spanish(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport("es"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"QUINCENAL-2",
		"Periodo  |  Fecha  |  Amortizacion  |  Intereses  |  IVA  |  Cuota  |  Saldo",
		"0  |  Lunes, 6 Enero de 2025  |  0.00  |  0.00  |  0.00  |  508.77  |  1000.00",
		"1  |  Miercoles, 15 Enero de 2025  |  497.17  |  10.00  |  1.60  |  508.77  |  502.83",
		"2  |  Sabado, 1 Febrero de 2025  |  502.83  |  5.03  |  0.80  |  508.66  |  0.00",
		"Fecha de expiracion: Sabado, 1 Febrero de 2025",
		"Tasa periodica: 1.0000%",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, content)
		}
	}
}

func TestConsoleFormatter_English(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport("en"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "First payment date: Wednesday, January 15, 2025") {
		t.Fatalf("expected english summary, got:\n%s", content)
	}
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport("es"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header+3 rows), got %d", len(lines))
	}
	if lines[2] != "quincenal-2,1,2025-01-15,497.17,10.00,1.60,508.77,502.83" {
		t.Fatalf("unexpected row: %s", lines[2])
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport("es"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		Locale    string `json:"locale"`
		Schedules []struct {
			PeriodicPayment string `json:"periodic_payment"`
			Entries         []struct {
				Period int `json:"period"`
			} `json:"entries"`
		} `json:"schedules"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Locale != "es" || len(decoded.Schedules) != 1 || len(decoded.Schedules[0].Entries) != 3 {
		t.Fatalf("unexpected decoded report: %+v", decoded)
	}
	if decoded.Schedules[0].PeriodicPayment != "508.77" {
		t.Fatalf("unexpected payment %q", decoded.Schedules[0].PeriodicPayment)
	}
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport("es"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"<html lang=\"es\">", "<h2>quincenal-2</h2>", "<th>Intereses</th>", "Miercoles, 15 Enero de 2025", ">502.83<"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in html output", want)
		}
	}
}

func TestGetFormatterByName(t *testing.T) {
	cases := map[string]string{
		"console":     "console",
		" TABLE ":     "console",
		"json-pretty": "json",
		"csv":         "csv",
		"html-report": "html",
	}
	for in, want := range cases {
		f := GetFormatterByName(in)
		if f == nil || f.Name() != want {
			t.Fatalf("GetFormatterByName(%q) = %v, want %s", in, f, want)
		}
	}
	if GetFormatterByName("pdf") != nil {
		t.Fatalf("expected nil for unknown format")
	}
}

func TestAvailableFormatterNames(t *testing.T) {
	got := strings.Join(AvailableFormatterNames(), ",")
	if got != "console,csv,html,json" {
		t.Fatalf("unexpected formatter names %s", got)
	}
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "count", Ext: "txt", F: func(r *domain.ScheduleReport) ([]byte, error) {
		return []byte(intToString(len(r.Schedules))), nil
	}}
	out, err := f.Format(buildTestReport("es"))
	if err != nil || string(out) != "1" || f.Name() != "count" || f.Extension() != "txt" {
		t.Fatalf("FormatterFunc mismatch: %q %v", out, err)
	}
}

func TestWriteFormatted(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	dir := t.TempDir()
	path, err := WriteFormatted(CSVFormatter{}, buildTestReport("es"), dir)
	if err != nil {
		t.Fatalf("WriteFormatted error: %v", err)
	}
	if filepath.Base(path) != "amortization_schedule_20250106_093000.csv" {
		t.Fatalf("unexpected file name %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}
