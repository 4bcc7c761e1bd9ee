package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/toyinlola/planetscope/pkg/interfaces"
	"github.com/toyinlola/planetscope/pkg/quantity"
	"github.com/toyinlola/planetscope/pkg/scorer"
)

func sampleReport() *interfaces.Report {
	ts := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	return &interfaces.Report{
		ID:        "3f0c9f1e-1111-4a2b-9c3d-000000000001",
		Timestamp: ts,
		TicID:     "TIC 12345",
		Mission:   "TESS",
		Summary: interfaces.Summary{
			Count: 4, Mean: 2.5, Median: 2.5, StdDev: 1.118, PeakToPeak: 3, IQR: 1.5,
		},
		Habitability: scorer.NewCalculator().Habitability("TIC 12345", 2.5),
		Span: &interfaces.TimeSpan{
			Start: time.Date(2019, 7, 18, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2019, 8, 14, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range append(Formats(), "") {
		if _, err := NewFormatter(name); err != nil {
			t.Errorf("NewFormatter(%q) returned error: %v", name, err)
		}
	}
	if _, err := NewFormatter("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatters(t *testing.T) {
	rpt := sampleReport()

	tests := []struct {
		format string
		want   []string
	}{
		{"terminal", []string{"Planetscope Report: TIC 12345", "Habitability: 2510.00", scorer.LifeAdvanced, "Trees           1", "Mission: TESS"}},
		{"markdown", []string{"# Planetscope Report: TIC 12345 🟢", "| **Trees** | 1 |", "| 2.5 | 2.5 | 1.118 | 3 | 1.5 |", "Observed from 2019-07-18 00:00"}},
		{"html", []string{"<td>TIC 12345</td>", "<td>2510</td>", scorer.LifeAdvanced, "Observed 2019-07-18 00:00:00 UTC"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := NewFormatter(tt.format)
			if err != nil {
				t.Fatalf("NewFormatter returned error: %v", err)
			}
			var buf bytes.Buffer
			if err := f.Format(&buf, rpt); err != nil {
				t.Fatalf("Format returned error: %v", err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("expected output to contain %q\n%s", s, out)
				}
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(&buf, sampleReport()); err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	hab, ok := decoded["habitability"].(map[string]any)
	if !ok {
		t.Fatalf("expected habitability object, got %v", decoded["habitability"])
	}
	if hab["num_trees"] != float64(1) {
		t.Errorf("expected num_trees 1, got %v", hab["num_trees"])
	}
	if hab["habitability"] != float64(2510) {
		t.Errorf("expected habitability 2510, got %v", hab["habitability"])
	}
	if decoded["schema"] != ReportSchema {
		t.Errorf("expected schema %q, got %v", ReportSchema, decoded["schema"])
	}
	if decoded["headline"] != Headline(sampleReport()) {
		t.Errorf("expected headline %q, got %v", Headline(sampleReport()), decoded["headline"])
	}
	if decoded["tic_id"] != sampleReport().TicID {
		t.Errorf("expected report fields at the top level, got %v", decoded["tic_id"])
	}
}

func TestPages_Render(t *testing.T) {
	pages, err := NewPages()
	if err != nil {
		t.Fatalf("NewPages returned error: %v", err)
	}

	tests := []struct {
		name string
		page string
		data any
		want string
	}{
		{"index", PageIndex, nil, `action="/"`},
		{"tic index", PageTicIndex, nil, `action="/tic"`},
		{"error escapes", PageError, ErrorPage{Message: "<script>x</script>"}, "&lt;script&gt;"},
		{"tic result", PageTicResult, struct {
			Digits  string
			Period  quantity.Value
			T0      quantity.Value
			Samples int
			Span    *interfaces.TimeSpan
		}{"12345", 3.5, quantity.Value(math.NaN()), 10, nil}, "<td>n/a</td>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := pages.Render(&buf, tt.page, tt.data); err != nil {
				t.Fatalf("Render returned error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected page to contain %q\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestPages_UnknownPage(t *testing.T) {
	pages, err := NewPages()
	if err != nil {
		t.Fatalf("NewPages returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := pages.Render(&buf, "missing.html", nil); err == nil {
		t.Error("expected error for unknown page")
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written on failure")
	}
}

func TestHeadline(t *testing.T) {
	got := Headline(sampleReport())
	want := "TIC 12345: habitability 2510.00, 1 trees, " + scorer.LifeAdvanced
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLifeRank(t *testing.T) {
	if lifeRank(scorer.LifeAdvanced) >= lifeRank(scorer.LifeNone) {
		t.Error("expected advanced life to rank above none")
	}
	if lifeRank("something else") != len(lifeOrder) {
		t.Error("expected unknown labels to rank last")
	}
}
