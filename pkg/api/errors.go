package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/toyinlola/planetscope/pkg/apperr"
	"github.com/toyinlola/planetscope/pkg/report"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  apperr.Kind `json:"code"`
}

// writeJSON writes v with the given status. The body is encoded before the
// header goes out so an encoding failure can still become a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Error: "internal server error", Code: apperr.KindInternal})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// writeError maps err to a status code through its apperr.Kind.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "kind", kind, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: kind})
}

// render writes an HTML page. Template failures fall back to a plain-text 500.
func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf bytes.Buffer
	if err := s.pages.Render(&buf, page, data); err != nil {
		slog.Error("rendering page", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows err on the HTML error page with its mapped status code.
func (s *Server) renderError(w http.ResponseWriter, err error, back string) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		slog.Error("page request failed", "kind", kind, "error", err)
	}
	s.render(w, status, report.PageError, report.ErrorPage{Message: err.Error(), Back: back})
}
