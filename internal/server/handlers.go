package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/tablekit/internal/registry"
	"github.com/leapstack-labs/tablekit/pkg/filterql"
	"github.com/leapstack-labs/tablekit/pkg/schema"
)

type errorResponse struct {
	Error string `json:"error"`
}

type schemaSummary struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type queryResponse struct {
	OK     bool           `json:"ok"`
	Values map[string]any `json:"values,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// projectionColumn is the JSON-safe slice of a column definition; the
// attached renderer callbacks cannot travel over the wire.
type projectionColumn struct {
	Key      string `json:"key"`
	Header   string `json:"header"`
	Cell     string `json:"cell"`
	Unit     string `json:"unit,omitempty"`
	FilterFn string `json:"filterFn,omitempty"`
	Size     *int   `json:"size,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
	Sortable bool   `json:"sortable"`
}

type projectionFilter struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Kind        string   `json:"kind"`
	Options     []string `json:"options,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	DefaultOpen bool     `json:"defaultOpen,omitempty"`
}

type projectionResponse struct {
	Columns    []projectionColumn `json:"columns"`
	Filters    []projectionFilter `json:"filters"`
	Visibility map[string]bool    `json:"visibility"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	summaries := make([]schemaSummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, schemaSummary{Name: e.Name, UpdatedAt: e.UpdatedAt})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Get(chi.URLParam(r, "name"))
	if errors.Is(err, registry.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(entry.Document)
}

func (s *Server) handlePutSchema(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Parse up front so schema violations and malformed payloads get
	// distinct status codes.
	if _, err := schema.FromJSON(body); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.store.Save(chi.URLParam(r, "name"), body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, schemaSummary{Name: entry.Name, UpdatedAt: entry.UpdatedAt})
}

func (s *Server) handleDeleteSchema(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(chi.URLParam(r, "name"))
	if errors.Is(err, registry.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInfer(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	inferred, err := schema.InferFromJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := inferred.JSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	sch, err := s.store.Schema(chi.URLParam(r, "name"))
	if errors.Is(err, registry.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// An invalid query is not an HTTP failure; the result reports it.
	result := filterql.Parse(r.URL.Query().Get("q"), sch.QuerySpec())
	resp := queryResponse{OK: result.Ok(), Values: result.Values}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	sch, err := s.store.Schema(chi.URLParam(r, "name"))
	if errors.Is(err, registry.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := projectionResponse{
		Columns:    make([]projectionColumn, 0),
		Filters:    make([]projectionFilter, 0),
		Visibility: sch.DefaultVisibility(),
	}
	for _, def := range sch.ColumnDefs() {
		resp.Columns = append(resp.Columns, projectionColumn{
			Key:      def.Key,
			Header:   def.Header,
			Cell:     string(def.Cell.Type),
			Unit:     def.Cell.Unit,
			FilterFn: def.FilterFn,
			Size:     def.Size,
			Hidden:   def.Hidden,
			Sortable: def.Sortable,
		})
	}
	for _, f := range sch.FilterFields() {
		resp.Filters = append(resp.Filters, projectionFilter{
			Key:         f.Key,
			Label:       f.Label,
			Kind:        string(f.Kind),
			Options:     f.Options,
			Min:         f.Min,
			Max:         f.Max,
			DefaultOpen: f.DefaultOpen,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
