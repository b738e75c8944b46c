package output

import (
	"io"

	"github.com/rpgo/loan-amortizer/internal/domain"
)

// Render formats the report with the named formatter and writes it to w.
func Render(w io.Writer, report *domain.ScheduleReport, format string) error {
	f, err := LookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the report to a timestamped file in dir and returns its path.
func GenerateReport(report *domain.ScheduleReport, format, dir string) (string, error) {
	f, err := LookupFormatter(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, dir)
}
