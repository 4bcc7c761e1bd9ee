// Package coverage reads LCOV tracefiles and reports what the tests never reached.
package coverage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/toyinlola/planetscope/pkg/apperr"
)

// Function is one FN record joined with its FNDA execution count.
type Function struct {
	Name string `json:"name"`
	Line int    `json:"line"`
	Hits int    `json:"hits"`
	// Seen is false when the tracefile has no FNDA line for the function.
	Seen bool `json:"seen"`
}

// Covered reports whether the function ran at least once.
func (f Function) Covered() bool {
	return f.Seen && f.Hits > 0
}

// File is the coverage record of one source file.
type File struct {
	Path           string     `json:"path"`
	Functions      []Function `json:"functions"`
	Branches       int        `json:"branches"`
	MissedBranches int        `json:"missed_branches"`
	Lines          int        `json:"lines"`
	MissedLines    int        `json:"missed_lines"`
}

// Uncovered returns the functions that never ran, in declaration order.
func (f *File) Uncovered() []Function {
	var out []Function
	for _, fn := range f.Functions {
		if !fn.Covered() {
			out = append(out, fn)
		}
	}
	return out
}

// ParseFile reads the tracefile at path.
func ParseFile(ctx context.Context, path string) ([]File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFound("coverage file %s does not exist", path)
		}
		return nil, fmt.Errorf("coverage: opening %s: %w", path, err)
	}
	defer f.Close()

	return Parse(ctx, f)
}

// Parse reads LCOV records from r. Unknown record types are skipped; a file
// section that is still open at EOF is kept.
func Parse(ctx context.Context, r io.Reader) ([]File, error) {
	var (
		files   []File
		current *File
		index   map[string]int
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNo++
		if lineNo%1024 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "end_of_record" {
			if current != nil {
				files = append(files, *current)
				current = nil
			}
			continue
		}

		tag, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		if tag == "SF" {
			if current != nil {
				files = append(files, *current)
			}
			current = &File{Path: value}
			index = make(map[string]int)
			continue
		}
		if current == nil {
			// Records outside an SF section (TN, etc.) carry nothing we report.
			continue
		}

		switch tag {
		case "FN":
			fields := strings.SplitN(value, ",", 2)
			if len(fields) != 2 {
				return nil, malformed(lineNo, line)
			}
			ln, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, malformed(lineNo, line)
			}
			if i, known := index[fields[1]]; known {
				current.Functions[i].Line = ln
				continue
			}
			index[fields[1]] = len(current.Functions)
			current.Functions = append(current.Functions, Function{Name: fields[1], Line: ln})

		case "FNDA":
			fields := strings.SplitN(value, ",", 2)
			if len(fields) != 2 {
				return nil, malformed(lineNo, line)
			}
			hits, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, malformed(lineNo, line)
			}
			i, known := index[fields[1]]
			if !known {
				index[fields[1]] = len(current.Functions)
				current.Functions = append(current.Functions, Function{Name: fields[1]})
				i = len(current.Functions) - 1
			}
			current.Functions[i].Hits += hits
			current.Functions[i].Seen = true

		case "BRDA":
			fields := strings.Split(value, ",")
			if len(fields) != 4 {
				return nil, malformed(lineNo, line)
			}
			current.Branches++
			if fields[3] == "-" || fields[3] == "0" {
				current.MissedBranches++
			}

		case "DA":
			fields := strings.Split(value, ",")
			if len(fields) < 2 {
				return nil, malformed(lineNo, line)
			}
			hits, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, malformed(lineNo, line)
			}
			current.Lines++
			if hits == 0 {
				current.MissedLines++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("coverage: reading tracefile: %w", err)
	}
	if current != nil {
		files = append(files, *current)
	}

	return files, nil
}

func malformed(lineNo int, line string) error {
	return apperr.Input("coverage: malformed record on line %d: %q", lineNo, line)
}
