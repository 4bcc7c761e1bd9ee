package lightcurve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/toyinlola/planetscope/pkg/apperr"
)

func TestArchive_TransitParameters(t *testing.T) {
	var gotPath, gotInput, gotColumns string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInput = r.URL.Query().Get("input")
		gotColumns = r.URL.Query().Get("columns")
		_, _ = w.Write([]byte(`{"data":[{"period": 3.52, "t0": "1325.73"},{"period": 9.1, "t0": 1400}]}`))
	}))
	defer server.Close()

	tr, err := NewArchive(server.URL).TransitParameters(context.Background(), "TIC 12345")
	if err != nil {
		t.Fatalf("TransitParameters returned error: %v", err)
	}

	if gotPath != "/api/v0.1/exoplanets/identifiers/" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotInput != "TIC 12345" {
		t.Errorf("unexpected input: %q", gotInput)
	}
	if gotColumns != "t0, period" {
		t.Errorf("unexpected columns: %q", gotColumns)
	}
	if tr.Period.Float() != 3.52 {
		t.Errorf("expected first planet's period 3.52, got %v", tr.Period.Float())
	}
	if tr.T0.Float() != 1325.73 {
		t.Errorf("expected t0 1325.73, got %v", tr.T0.Float())
	}
}

func TestArchive_TransitParameters_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"period": null, "t0": null}]}`))
	}))
	defer server.Close()

	tr, err := NewArchive(server.URL).TransitParameters(context.Background(), "TIC 1")
	if err != nil {
		t.Fatalf("TransitParameters returned error: %v", err)
	}
	if tr.Period.IsFinite() || tr.T0.IsFinite() {
		t.Errorf("expected blank values to decode as NaN, got %+v", tr)
	}
}

func TestArchive_TransitParameters_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apperr.Kind
	}{
		{"empty data", http.StatusOK, `{"data":[]}`, apperr.KindNotFound},
		{"404", http.StatusNotFound, ``, apperr.KindNotFound},
		{"502", http.StatusBadGateway, `upstream down`, apperr.KindUpstream},
		{"garbage", http.StatusOK, `<html>`, apperr.KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewArchive(server.URL).TransitParameters(context.Background(), "TIC 1")
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Errorf("expected kind %s, got %s (%v)", tt.wantKind, got, err)
			}
		})
	}
}

func TestNewArchive_DefaultURL(t *testing.T) {
	a := NewArchive("")
	if a.baseURL != DefaultArchiveURL {
		t.Errorf("expected default URL, got %q", a.baseURL)
	}
}
