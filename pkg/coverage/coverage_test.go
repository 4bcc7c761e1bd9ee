package coverage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/toyinlola/planetscope/pkg/apperr"
)

const tracefile = `TN:
SF:src/lib/scorer.ts
FN:3,treesFromFlux
FN:12,lifeType
FN:20,planetType
FNDA:4,treesFromFlux
FNDA:0,lifeType
DA:3,4
DA:12,0
BRDA:4,0,0,3
BRDA:4,0,1,-
BRDA:5,1,0,0
BRDA:5,1,1,2
end_of_record
SF:src/lib/stats.ts
FN:1,median
FNDA:9,median
BRDA:2,0,0,9
end_of_record
`

func TestParse(t *testing.T) {
	files, err := Parse(context.Background(), strings.NewReader(tracefile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []File{
		{
			Path: "src/lib/scorer.ts",
			Functions: []Function{
				{Name: "treesFromFlux", Line: 3, Hits: 4, Seen: true},
				{Name: "lifeType", Line: 12, Hits: 0, Seen: true},
				{Name: "planetType", Line: 20},
			},
			Branches:       4,
			MissedBranches: 2,
			Lines:          2,
			MissedLines:    1,
		},
		{
			Path:      "src/lib/stats.ts",
			Functions: []Function{{Name: "median", Line: 1, Hits: 9, Seen: true}},
			Branches:  1,
		},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("parsed records mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_Uncovered(t *testing.T) {
	files, err := Parse(context.Background(), strings.NewReader(tracefile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, fn := range files[0].Uncovered() {
		names = append(names, fn.Name)
	}
	if diff := cmp.Diff([]string{"lifeType", "planetType"}, names); diff != "" {
		t.Errorf("uncovered mismatch (-want +got):\n%s", diff)
	}
	if got := files[1].Uncovered(); len(got) != 0 {
		t.Errorf("expected no uncovered functions, got %v", got)
	}
}

func TestParse_FNDABeforeFN(t *testing.T) {
	input := "SF:a.go\nFNDA:2,run\nFN:7,run\n"

	files, err := Parse(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected unterminated record to be kept, got %d files", len(files))
	}
	want := []Function{{Name: "run", Line: 7, Hits: 2, Seen: true}}
	if diff := cmp.Diff(want, files[0].Functions); diff != "" {
		t.Errorf("functions mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"FN without name", "SF:a.go\nFN:12\n"},
		{"FN bad line", "SF:a.go\nFN:x,run\n"},
		{"FNDA bad count", "SF:a.go\nFNDA:lots,run\n"},
		{"BRDA short", "SF:a.go\nBRDA:1,0,0\n"},
		{"DA bad hits", "SF:a.go\nDA:1,x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), strings.NewReader(tt.input))
			if !apperr.Is(err, apperr.KindInput) {
				t.Errorf("expected input error, got %v", err)
			}
		})
	}
}

func TestParse_IgnoresRecordsOutsideSection(t *testing.T) {
	files, err := Parse(context.Background(), strings.NewReader("TN:suite\nFN:1,orphan\nVER:2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %d", len(files))
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lcov.info")
	if err := os.WriteFile(path, []byte(tracefile), 0o644); err != nil {
		t.Fatalf("writing tracefile: %v", err)
	}

	files, err := ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}

	_, err = ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.info"))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestWrite_Text(t *testing.T) {
	files, err := Parse(context.Background(), strings.NewReader(tracefile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, files, FormatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"src/lib/scorer.ts\n",
		"Unexecuted functions (2 of 3):",
		"- lifeType (line 12)",
		"- planetType (line 20)",
		"Branches missed: 2 of 4",
		"src/lib/stats.ts\n  All functions executed\n  Branches missed: 0 of 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "treesFromFlux") {
		t.Error("executed function should not be listed")
	}
}

func TestWrite_JSON(t *testing.T) {
	files, err := Parse(context.Background(), strings.NewReader(tracefile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, files, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []File
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if diff := cmp.Diff(files, decoded); diff != "" {
		t.Errorf("json output mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_EmptyAndUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No coverage records") {
		t.Errorf("unexpected empty text output %q", buf.String())
	}

	if err := Write(&buf, nil, "xml"); !apperr.Is(err, apperr.KindInput) {
		t.Errorf("expected input error for unknown format, got %v", err)
	}
}
