// Package report renders classification reports for terminals, Markdown,
// JSON and HTML.
package report

import (
	"fmt"
	"io"

	"github.com/toyinlola/planetscope/pkg/interfaces"
	"github.com/toyinlola/planetscope/pkg/scorer"
)

// Formatter writes a report to a writer.
type Formatter interface {
	Format(w io.Writer, report *interfaces.Report) error
}

// lifeOrder ranks life types from most to least habitable.
var lifeOrder = map[string]int{
	scorer.LifeAdvanced:  0,
	scorer.LifeComplex:   1,
	scorer.LifeMicrobial: 2,
	scorer.LifeNone:      3,
}

// Formats lists the names accepted by NewFormatter.
func Formats() []string {
	return []string{"html", "json", "markdown", "terminal"}
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", "terminal":
		return NewTerminalFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "markdown":
		return NewMarkdownFormatter(), nil
	case "html":
		return NewHTMLFormatter()
	default:
		return nil, fmt.Errorf("report: unknown format %q (want one of %v)", name, Formats())
	}
}

// Headline returns a one-line summary of the report.
func Headline(report *interfaces.Report) string {
	h := report.Habitability
	return fmt.Sprintf("%s: habitability %.2f, %d trees, %s", report.TicID, h.Score, h.NumTrees, h.LifeType)
}

// lifeRank returns the habitability rank of a life type; unknown labels sort last.
func lifeRank(lifeType string) int {
	if r, ok := lifeOrder[lifeType]; ok {
		return r
	}
	return len(lifeOrder)
}
