package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/toyinlola/planetscope/pkg/interfaces"
	"github.com/toyinlola/planetscope/pkg/quantity"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	PageIndex     = "index.html"
	PageResult    = "result.html"
	PageError     = "error.html"
	PageTicIndex  = "tic_index.html"
	PageTicResult = "tic_result.html"
)

// ErrorPage is the data for PageError.
type ErrorPage struct {
	Message string
	Back    string
}

// Pages holds the parsed HTML templates.
type Pages struct {
	tmpl *template.Template
}

var funcs = template.FuncMap{
	"num":      formatNumber,
	"quantity": func(v quantity.Value) string { return formatNumber(v.Float()) },
	"utc":      func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05 MST") },
}

// NewPages parses the embedded templates.
func NewPages() (*Pages, error) {
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("report: parsing templates: %w", err)
	}
	return &Pages{tmpl: tmpl}, nil
}

// Render executes the named page into w. The page is rendered into a
// buffer first so a template failure never leaves a partial page.
func (p *Pages) Render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("report: rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// HTMLFormatter writes a report as a standalone HTML page.
type HTMLFormatter struct {
	pages *Pages
}

// NewHTMLFormatter creates an HTML report formatter.
func NewHTMLFormatter() (*HTMLFormatter, error) {
	pages, err := NewPages()
	if err != nil {
		return nil, err
	}
	return &HTMLFormatter{pages: pages}, nil
}

// Format writes the report as the result page.
func (f *HTMLFormatter) Format(w io.Writer, report *interfaces.Report) error {
	return f.pages.Render(w, PageResult, report)
}

// formatNumber prints finite values compactly and anything else as "n/a".
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}
