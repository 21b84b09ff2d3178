package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/initializ/websearch/search"
)

// Error messages returned in {"error": ...} bodies.
const (
	errNoQuery        = "No query provided"
	errNoQuestion     = "No question provided"
	errInvalidJSON    = "Invalid JSON"
	errBodyTooLarge   = "Request body too large"
	errNoAgent        = "Search agent not initialized"
	errMaskedInternal = "Internal server error"
)

// SessionHeader carries the chat session id in both directions.
const SessionHeader = "X-Session-ID"

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []search.Result `json:"results"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Turns     int    `json:"turns"`
}

func (s *Server) handleSearchGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, errNoQuery)
		return
	}
	s.search(w, r, query)
}

func (s *Server) handleSearchPost(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if status, msg := decodeBody(w, r, &req); status != 0 {
		writeError(w, status, msg)
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, errNoQuery)
		return
	}
	s.search(w, r, req.Query)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, query string) {
	if s.searcher == nil {
		s.internalError(w, errNoAgent)
		return
	}
	results := s.searcher.Search(r.Context(), query)
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if status, msg := decodeBody(w, r, &req); status != 0 {
		writeError(w, status, msg)
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, errNoQuestion)
		return
	}

	id, a := s.sessions.Get(r.Header.Get(SessionHeader))
	answer := a.Process(r.Context(), req.Question)

	w.Header().Set(SessionHeader, id)
	writeJSON(w, http.StatusOK, chatResponse{
		Response:  answer,
		SessionID: id,
		Turns:     a.History().Len(),
	})
}

// decodeBody decodes a JSON object from the request body into v. It returns a
// zero status on success, otherwise the status and message to report.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) (int, string) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(v)
	if err == nil {
		// The body must hold exactly one JSON value.
		if err = dec.Decode(&struct{}{}); errors.Is(err, io.EOF) {
			return 0, ""
		}
		if err == nil {
			err = errors.New("trailing data after JSON value")
		}
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, errBodyTooLarge
	}
	return http.StatusBadRequest, errInvalidJSON
}

// forwardedPrefix returns the X-Forwarded-Prefix header normalized to a
// slash-delimited path, or "".
func forwardedPrefix(r *http.Request) string {
	prefix := strings.TrimSpace(r.Header.Get("X-Forwarded-Prefix"))
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func (s *Server) internalError(w http.ResponseWriter, msg string) {
	s.logger.Error("search request failed", map[string]any{"error": msg})
	if s.cfg.MaskErrors {
		msg = errMaskedInternal
	}
	writeError(w, http.StatusInternalServerError, msg)
}
