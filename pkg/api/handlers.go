package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/toyinlola/planetscope/pkg/apperr"
	"github.com/toyinlola/planetscope/pkg/interfaces"
	"github.com/toyinlola/planetscope/pkg/pipeline"
	"github.com/toyinlola/planetscope/pkg/quantity"
	"github.com/toyinlola/planetscope/pkg/report"
	"github.com/toyinlola/planetscope/pkg/scorer"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// TicRequest is the body of the identifier-based endpoints.
type TicRequest struct {
	TicID string `json:"tic_id"`
}

// ValueRequest is the body of the table endpoints.
type ValueRequest struct {
	Value     *quantity.Value `json:"value"`
	Amplitude *quantity.Value `json:"amplitude"`
}

// ClassifyResponse is returned by /api/classify/{table}.
type ClassifyResponse struct {
	Table  string         `json:"table"`
	Value  quantity.Value `json:"value"`
	Output any            `json:"output"`
}

// decodeJSON reads a JSON body into v, reporting malformed input as apperr.KindInput.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Input("request body is required")
		}
		return apperr.Input("invalid request body: %v", err)
	}
	return nil
}

func decodeTicID(r *http.Request) (string, error) {
	var req TicRequest
	if err := decodeJSON(r, &req); err != nil {
		return "", err
	}
	return req.TicID, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"history": s.pipeline.HasStore(),
	})
}

func (s *Server) handleTrees(w http.ResponseWriter, r *http.Request) {
	id, err := decodeTicID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := s.pipeline.Trees(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"num_trees": n})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	id, err := decodeTicID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.pipeline.Query(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id, err := decodeTicID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.pipeline.Stats(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHabitability(w http.ResponseWriter, r *http.Request) {
	id, err := decodeTicID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rpt, err := s.pipeline.Run(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.ObserveClassification(rpt.Habitability.LifeType)
	writeJSON(w, http.StatusOK, rpt)
}

func (s *Server) handlePlanetType(w http.ResponseWriter, r *http.Request) {
	var req pipeline.PlanetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.pipeline.PlanetType(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAmplitudeTrees(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Amplitude == nil {
		writeError(w, apperr.Input("amplitude is required"))
		return
	}
	out, err := s.classify(scorer.TableTreesFromAmplitude, *req.Amplitude)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"num_trees": out})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")

	var req ValueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Value == nil {
		writeError(w, apperr.Input("value is required"))
		return
	}
	out, err := s.classify(table, *req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ClassifyResponse{Table: table, Value: *req.Value, Output: out})
}

// classify runs a registered table. NaN is passed through and lands in the
// table's overflow bucket.
func (s *Server) classify(table string, v quantity.Value) (any, error) {
	c := s.registry.Get(table)
	if c == nil {
		return nil, apperr.NotFound("unknown table %q", table)
	}
	return c.Output(v.Float()), nil
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tables": s.registry.List()})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, apperr.Input("limit must be a non-negative integer, got %q", raw))
			return
		}
		limit = n
	}
	records, err := s.pipeline.History(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []interfaces.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, report.PageIndex, nil)
}

func (s *Server) handleIndexSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := formTicID(r)
	if err != nil {
		s.renderError(w, err, "/")
		return
	}
	rpt, err := s.pipeline.Run(r.Context(), id)
	if err != nil {
		s.renderError(w, err, "/")
		return
	}
	s.metrics.ObserveClassification(rpt.Habitability.LifeType)
	s.render(w, http.StatusOK, report.PageResult, rpt)
}

func (s *Server) handleTicIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, report.PageTicIndex, nil)
}

func (s *Server) handleTicSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := formTicID(r)
	if err != nil {
		s.renderError(w, err, "/tic")
		return
	}
	view, err := s.pipeline.Transit(r.Context(), id)
	if err != nil {
		s.renderError(w, err, "/tic")
		return
	}
	s.render(w, http.StatusOK, report.PageTicResult, view)
}

// formTicID reads tic_id from a submitted form.
func formTicID(r *http.Request) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", apperr.Input("invalid form: %v", err)
	}
	return r.PostForm.Get("tic_id"), nil
}
