package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/toyinlola/planetscope/pkg/apperr"
)

// Output formats understood by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write prints files to w. The text format lists each file with its
// uncovered functions and missed-branch count; json prints the records.
func Write(w io.Writer, files []File, format string) error {
	switch format {
	case "", FormatText:
		return writeText(w, files)
	case FormatJSON:
		if files == nil {
			files = []File{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	default:
		return apperr.Input("unsupported coverage format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

func writeText(w io.Writer, files []File) error {
	var b strings.Builder

	if len(files) == 0 {
		b.WriteString("No coverage records found.\n")
	}

	for i := range files {
		f := &files[i]
		b.WriteString(f.Path + "\n")

		uncovered := f.Uncovered()
		if len(uncovered) == 0 {
			b.WriteString("  All functions executed\n")
		} else {
			fmt.Fprintf(&b, "  Unexecuted functions (%d of %d):\n", len(uncovered), len(f.Functions))
			for _, fn := range uncovered {
				if fn.Line > 0 {
					fmt.Fprintf(&b, "    - %s (line %d)\n", fn.Name, fn.Line)
				} else {
					fmt.Fprintf(&b, "    - %s\n", fn.Name)
				}
			}
		}
		fmt.Fprintf(&b, "  Branches missed: %d of %d\n", f.MissedBranches, f.Branches)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
