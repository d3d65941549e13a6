package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/preview"
	"github.com/goliatone/go-uigen/pkg/sandbox"
	"github.com/goliatone/go-uigen/pkg/validate"
)

const maxBodyBytes = 1 << 20

type planResponse struct {
	SessionID    string          `json:"sessionId"`
	Valid        bool            `json:"valid"`
	Errors       []string        `json:"errors,omitempty"`
	Warnings     []string        `json:"warnings,omitempty"`
	PatchApplied int             `json:"patchApplied,omitempty"`
	PatchErrors  []string        `json:"patchErrors,omitempty"`
	Salvaged     bool            `json:"salvaged,omitempty"`
	Reasoning    string          `json:"reasoning,omitempty"`
	CacheHit     bool            `json:"cacheHit,omitempty"`
	Code         string          `json:"code,omitempty"`
	Document     json.RawMessage `json:"document,omitempty"`
}

type renderRequest struct {
	Source string `json:"source"`
}

type renderResponse struct {
	HTML    string   `json:"html,omitempty"`
	Error   string   `json:"error,omitempty"`
	Stage   string   `json:"stage,omitempty"`
	Issues  []string `json:"issues,omitempty"`
	Timeout bool     `json:"timeout,omitempty"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, s.orchestrator.Registry().Describe())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	session := s.sessions.Create()
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: session.ID})
}

func (s *Server) handleRunPlan(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	result, err := s.orchestrator.Run(r.Context(), session.Document, payload)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := planResponse{
		SessionID:    session.ID,
		Valid:        result.Validation.Valid,
		Errors:       result.Validation.Errors,
		Warnings:     result.Warnings,
		PatchApplied: result.PatchApplied,
		PatchErrors:  result.PatchErrors,
		Salvaged:     result.Salvaged,
		Reasoning:    result.Reasoning,
		CacheHit:     result.CacheHit,
		Code:         result.Code,
	}

	if result.Document != nil {
		doc, err := json.Marshal(result.Document)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "encode document: "+err.Error())
			return
		}
		resp.Document = doc
		s.sessions.Update(session.ID, result.Document, result.Code, result.HTML)
		s.hub.Broadcast(session.ID, result.HTML)
	}

	status := http.StatusOK
	if !result.Validation.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	doc, err := ast.ParseDocument(payload)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validate.Result{
			Valid:  false,
			Errors: []string{err.Error()},
		})
		return
	}

	result := validate.New(validate.WithRegistry(s.orchestrator.Registry())).Validate(doc)
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	html, _, err := s.orchestrator.RenderEdited(r.Context(), req.Source)
	if err != nil {
		resp := renderResponse{Error: err.Error()}
		var renderErr *sandbox.RenderError
		if errors.As(err, &renderErr) {
			resp.Stage = renderErr.Stage
			resp.Issues = renderErr.Issues
			resp.Timeout = renderErr.Timeout
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{HTML: string(html)})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	if len(session.HTML) == 0 {
		writeError(w, http.StatusNotFound, "session has no preview yet")
		return
	}
	w.Header().Set("Content-Type", preview.ContentType)
	w.Write(session.HTML)
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	if session.Code == "" {
		writeError(w, http.StatusNotFound, "session has no generated code yet")
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	io.WriteString(w, session.Code)
}

func (s *Server) handlePreviewSocket(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	s.hub.serve(w, r, session.ID, session.HTML)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
