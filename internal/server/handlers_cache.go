package server

import (
	"net/http"
)

// handleCacheInfo reports cache freshness for a handle's posts and author
// info.
func (s *Server) handleCacheInfo(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		err := &ErrValidation{Field: "handle", Message: "handle is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.cache.Stats(handle))
}

// handleCacheInvalidate drops a handle's cached posts and author info so the
// next request refetches.
func (s *Server) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		err := &ErrValidation{Field: "handle", Message: "handle is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.cache.Invalidate(handle)
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "invalidated",
		"handle": handle,
	})
}
