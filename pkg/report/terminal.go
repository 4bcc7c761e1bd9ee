package report

import (
	"fmt"
	"io"

	"github.com/toyinlola/planetscope/pkg/interfaces"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// TerminalFormatter writes a color-coded report to a terminal.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a terminal report formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// Format writes the report to the given writer using ANSI colors.
func (f *TerminalFormatter) Format(w io.Writer, report *interfaces.Report) error {
	f.writeHeader(w, report)
	f.writeClassification(w, report)
	f.writeStatistics(w, report)
	f.writeFooter(w, report)
	return nil
}

func (f *TerminalFormatter) writeHeader(w io.Writer, report *interfaces.Report) {
	fmt.Fprintf(w, "\n%s%s══════════════════════════════════════════%s\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(w, "%s%s  Planetscope Report: %s%s\n", colorBold, colorCyan, report.TicID, colorReset)
	fmt.Fprintf(w, "%s%s══════════════════════════════════════════%s\n\n", colorBold, colorCyan, colorReset)
}

func (f *TerminalFormatter) writeClassification(w io.Writer, report *interfaces.Report) {
	h := report.Habitability
	color := lifeColor(h.LifeType)

	fmt.Fprintf(w, "  %s%sHabitability: %.2f%s\n", colorBold, color, h.Score, colorReset)
	fmt.Fprintf(w, "  %s%s%s\n\n", color, h.LifeType, colorReset)

	fmt.Fprintf(w, "  Amplitude       %.6g\n", h.Amplitude)
	fmt.Fprintf(w, "  Trees           %d\n", h.NumTrees)
	fmt.Fprintf(w, "  Star radius     %.2f\n", h.StarRadius)
	fmt.Fprintf(w, "  Planet radius   %.6g\n", h.PlanetRadius)
	fmt.Fprintf(w, "  Resources       %s\n\n", h.ResourceType)
}

func (f *TerminalFormatter) writeStatistics(w io.Writer, report *interfaces.Report) {
	s := report.Summary
	fmt.Fprintf(w, "  %s── Flux statistics (%d samples) ──%s\n", colorBold, s.Count, colorReset)
	fmt.Fprintf(w, "    mean %.6g | median %.6g | std %.6g\n", s.Mean, s.Median, s.StdDev)
	fmt.Fprintf(w, "    peak-to-peak %.6g | IQR %.6g\n\n", s.PeakToPeak, s.IQR)
}

func (f *TerminalFormatter) writeFooter(w io.Writer, report *interfaces.Report) {
	fmt.Fprintf(w, "  %s%s──────────────────────────────────────────%s\n", colorDim, colorCyan, colorReset)
	if report.Span != nil {
		fmt.Fprintf(w, "  %sObserved: %s to %s%s\n", colorDim,
			report.Span.Start.Format("2006-01-02 15:04"), report.Span.End.Format("2006-01-02 15:04"), colorReset)
	}
	fmt.Fprintf(w, "  %sMission: %s | Report: %s%s\n", colorDim, missionOrUnknown(report.Mission), report.ID, colorReset)
	fmt.Fprintf(w, "  %sGenerated: %s%s\n\n",
		colorDim, report.Timestamp.Format("2006-01-02 15:04:05"), colorReset)
}

// lifeColor returns the ANSI color for a life type.
func lifeColor(lifeType string) string {
	switch lifeRank(lifeType) {
	case 0, 1:
		return colorGreen
	case 2:
		return colorYellow
	case 3:
		return colorRed
	default:
		return colorReset
	}
}

func missionOrUnknown(m string) string {
	if m == "" {
		return "unknown"
	}
	return m
}
