package lightcurve

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/toyinlola/planetscope/pkg/apperr"
)

const samplePayload = `{
  "target": "TIC 12345",
  "mission": "TESS",
  "time_format": "btjd",
  "time": [1325.1, 1325.2, 1325.3, 1325.4, 1325.5],
  "flux": [1.0, {"value": 2.0, "unit": "electron / s"}, 3.0, null, 4.0]
}`

func TestClient_Fetch(t *testing.T) {
	var gotPath, gotTarget, gotAuth, gotUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTarget = r.URL.Query().Get("target")
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", WithToken("mast-token"), WithUserAgent("planetscope-test"))
	lc, err := client.Fetch(context.Background(), "TIC 12345")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if gotPath != "/api/v1/lightcurves" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotTarget != "TIC 12345" {
		t.Errorf("unexpected target query: %q", gotTarget)
	}
	if gotAuth != "token mast-token" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotUA != "planetscope-test" {
		t.Errorf("unexpected user agent: %q", gotUA)
	}

	if lc.Len() != 5 {
		t.Fatalf("expected 5 samples, got %d", lc.Len())
	}
	if lc.Flux[1].Float() != 2.0 {
		t.Errorf("expected wrapped flux to be unwrapped to 2.0, got %v", lc.Flux[1].Float())
	}
	if !math.IsNaN(lc.Flux[3].Float()) {
		t.Errorf("expected null flux to decode as NaN, got %v", lc.Flux[3].Float())
	}
	if lc.Mission != "TESS" {
		t.Errorf("unexpected mission: %q", lc.Mission)
	}
}

func TestClient_Fetch_NoAuth(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	_, _ = NewClient(server.URL).Fetch(context.Background(), "TIC 1")

	if gotAuth != "" {
		t.Errorf("expected no auth header, got %q", gotAuth)
	}
}

func TestClient_Fetch_DefaultsTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"flux": [1, 2]}`))
	}))
	defer server.Close()

	lc, err := NewClient(server.URL).Fetch(context.Background(), "TIC 9")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if lc.Target != "TIC 9" {
		t.Errorf("expected target to default to identifier, got %q", lc.Target)
	}
}

func TestClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apperr.Kind
	}{
		{"not found", http.StatusNotFound, `{"error":"no such target"}`, apperr.KindNotFound},
		{"empty flux", http.StatusOK, `{"target":"TIC 1","flux":[]}`, apperr.KindNotFound},
		{"server error", http.StatusInternalServerError, `boom`, apperr.KindUpstream},
		{"bad json", http.StatusOK, `{"flux": [1,`, apperr.KindUpstream},
		{"bad flux value", http.StatusOK, `{"flux": ["bright"]}`, apperr.KindUpstream},
		{"length mismatch", http.StatusOK, `{"time":[1],"flux":[1,2]}`, apperr.KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Fetch(context.Background(), "TIC 1")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Errorf("expected kind %s, got %s (%v)", tt.wantKind, got, err)
			}
		})
	}
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, WithTimeout(time.Second)).Fetch(context.Background(), "TIC 1")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestClient_Fetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewClient(server.URL).Fetch(ctx, "TIC 1"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
