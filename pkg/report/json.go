package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/toyinlola/planetscope/pkg/interfaces"
)

// ReportSchema identifies the layout of JSON reports.
const ReportSchema = "planetscope.report/v1"

// jsonReport is a report with the schema tag and a one-line headline
// alongside its own fields.
type jsonReport struct {
	Schema string `json:"schema"`
	*interfaces.Report
	Headline string `json:"headline"`
}

// JSONFormatter writes a report as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON report formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the report as indented JSON. NaN statistics cannot be
// encoded and are reported as an error rather than written partially.
func (f *JSONFormatter) Format(w io.Writer, report *interfaces.Report) error {
	out, err := json.MarshalIndent(jsonReport{
		Schema:   ReportSchema,
		Report:   report,
		Headline: Headline(report),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("report: encoding %s: %w", report.TicID, err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
