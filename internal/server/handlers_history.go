package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// handleListHistory lists saved generation runs, newest first. Query params:
// username to filter by handle, limit to bound the page size.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get("username")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.db.ListGenerations(r.Context(), handle, limit)
	if err != nil {
		log.Printf("[server] listing history failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

// handleGetHistory returns one saved generation run with its full proposals.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid history id")
		return
	}

	entry, err := s.db.GetGeneration(r.Context(), id)
	if err != nil {
		log.Printf("[server] fetching history %s failed: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		notFound := &ErrEntryNotFound{ID: id.String()}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, entry)
}

// handleDeleteHistory removes one saved generation run.
func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid history id")
		return
	}

	deleted, err := s.db.DeleteGeneration(r.Context(), id)
	if err != nil {
		log.Printf("[server] deleting history %s failed: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		notFound := &ErrEntryNotFound{ID: id.String()}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleClearHistory removes all saved runs, or only one handle's runs when
// the username query param is set.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get("username")

	deleted, err := s.db.ClearGenerations(r.Context(), handle)
	if err != nil {
		log.Printf("[server] clearing history failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "cleared",
		"deleted": deleted,
	})
}
