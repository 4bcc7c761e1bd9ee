package report

import (
	"fmt"
	"io"

	"github.com/toyinlola/planetscope/pkg/interfaces"
)

// MarkdownFormatter writes a report as Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a Markdown report formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the report as Markdown to the given writer.
func (f *MarkdownFormatter) Format(w io.Writer, report *interfaces.Report) error {
	f.writeHeader(w, report)
	f.writeClassificationTable(w, report)
	f.writeStatistics(w, report)
	f.writeFooter(w, report)
	return nil
}

func (f *MarkdownFormatter) writeHeader(w io.Writer, report *interfaces.Report) {
	fmt.Fprintf(w, "# Planetscope Report: %s %s\n\n", report.TicID, lifeBadge(report.Habitability.LifeType))
}

func (f *MarkdownFormatter) writeClassificationTable(w io.Writer, report *interfaces.Report) {
	h := report.Habitability

	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|--------|-------|")
	fmt.Fprintf(w, "| **Habitability** | %.2f |\n", h.Score)
	fmt.Fprintf(w, "| **Life Type** | %s |\n", h.LifeType)
	fmt.Fprintf(w, "| **Trees** | %d |\n", h.NumTrees)
	fmt.Fprintf(w, "| **Amplitude** | %.6g |\n", h.Amplitude)
	fmt.Fprintf(w, "| **Star Radius** | %.2f |\n", h.StarRadius)
	fmt.Fprintf(w, "| **Planet Radius** | %.6g |\n", h.PlanetRadius)
	fmt.Fprintf(w, "| **Resources** | %s |\n", h.ResourceType)
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeStatistics(w io.Writer, report *interfaces.Report) {
	s := report.Summary

	fmt.Fprintf(w, "## Flux statistics (%d samples)\n\n", s.Count)
	fmt.Fprintln(w, "| Mean | Median | Std | Peak-to-peak | IQR |")
	fmt.Fprintln(w, "|------|--------|-----|--------------|-----|")
	fmt.Fprintf(w, "| %.6g | %.6g | %.6g | %.6g | %.6g |\n\n", s.Mean, s.Median, s.StdDev, s.PeakToPeak, s.IQR)

	if report.Span != nil {
		fmt.Fprintf(w, "Observed from %s to %s (UTC).\n\n",
			report.Span.Start.Format("2006-01-02 15:04"), report.Span.End.Format("2006-01-02 15:04"))
	}
}

func (f *MarkdownFormatter) writeFooter(w io.Writer, report *interfaces.Report) {
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "*Report ID: %s | Generated: %s*\n",
		report.ID, report.Timestamp.Format("2006-01-02 15:04:05"))
}

// lifeBadge returns a text badge for a life type.
func lifeBadge(lifeType string) string {
	switch lifeRank(lifeType) {
	case 0, 1:
		return "🟢"
	case 2:
		return "🟡"
	case 3:
		return "🔴"
	default:
		return "⚪"
	}
}
