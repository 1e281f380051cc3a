package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"

	"github.com/umputun/crewbook/app/enums"
	"github.com/umputun/crewbook/app/roster"
	"github.com/umputun/crewbook/app/worker"
)

// APIListResponse is the JSON response for GET /api/v1/workers
type APIListResponse struct {
	Workers []worker.Record `json:"workers"`
	Count   int             `json:"count"`
}

// handleAPIList returns all workers in roster order
func (s *Server) handleAPIList(w http.ResponseWriter, _ *http.Request) {
	ws := s.roster.List()
	resp := APIListResponse{Workers: make([]worker.Record, 0, len(ws)), Count: len(ws)}
	for _, wr := range ws {
		resp.Workers = append(resp.Workers, worker.Serialize(wr))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleAPIGet returns a single worker by id
func (s *Server) handleAPIGet(w http.ResponseWriter, r *http.Request) {
	wr, ok := s.roster.Get(r.PathValue("id"))
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "worker not found")
		return
	}
	s.writeJSON(w, http.StatusOK, worker.Serialize(wr))
}

// handleAPICreate adds a worker from a JSON object of fields. The kind rule is the same as for
// the form, Plumber or Driver only; other values are coerced like form input.
func (s *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	fields := worker.Fields{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	kind, err := enums.ParseKind(worker.AsText(fields[worker.FieldKind]))
	if err != nil || !worker.IsSpecialized(kind) {
		s.writeJSONError(w, http.StatusBadRequest, "kind must be Plumber or Driver")
		return
	}
	delete(fields, worker.FieldID) // ids are always assigned here

	wr := worker.New(kind, fields)
	if err := s.roster.Add(wr); err != nil {
		log.Printf("[WARN] failed to add worker: %v", err)
		if errors.Is(err, roster.ErrDuplicateID) {
			s.writeJSONError(w, http.StatusConflict, "worker already exists")
			return
		}
		s.writeJSONError(w, http.StatusInternalServerError, "failed to save workers")
		return
	}
	s.writeJSON(w, http.StatusCreated, worker.Serialize(wr))
}

// handleAPIDelete removes a worker by id
func (s *Server) handleAPIDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	found, err := s.roster.Delete(id)
	if err != nil {
		log.Printf("[WARN] failed to delete worker %s: %v", id, err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to save workers")
		return
	}
	if !found {
		s.writeJSONError(w, http.StatusNotFound, "worker not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAPIClear removes all workers, requires confirm=true query parameter
func (s *Server) handleAPIClear(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		s.writeJSONError(w, http.StatusPreconditionFailed, "confirm=true required to delete all workers")
		return
	}
	if err := s.roster.Clear(); err != nil {
		log.Printf("[WARN] failed to clear workers: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to save workers")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAPIExport returns all workers as a YAML document, accepted by --seed
func (s *Server) handleAPIExport(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := roster.WriteYAML(&buf, s.roster.List()); err != nil {
		log.Printf("[ERROR] failed to export workers: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to export workers")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="workers.yml"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write export: %v", err)
	}
}

// handleAPISchema returns JSON schema of the worker record
func (s *Server) handleAPISchema(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, recordSchema())
}

func recordSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&worker.Record{})
	schema.Title = "crewbook worker record"
	return schema
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
