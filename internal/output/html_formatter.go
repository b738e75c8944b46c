package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/loan-amortizer/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with one table per schedule.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/schedule.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("schedule").Funcs(template.FuncMap{
	"amount":  FormatAmount,
	"pct":     FormatPercentage,
	"payment": rowPayment,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.ScheduleReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ScheduleReport
		Locale Locale
	}{report, LocaleFor(report.Locale)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
