package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/voice-agent/internal/health"
)

const defaultHealthPosts = 200

// handleProfileHealth scores a handle's posting health from its recent
// posts. Query params: max_posts (default 200), save=true to persist the
// report.
func (s *Server) handleProfileHealth(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		err := &ErrValidation{Field: "handle", Message: "handle is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	maxPosts := defaultHealthPosts
	if raw := r.URL.Query().Get("max_posts"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "max_posts must be a positive integer")
			return
		}
		maxPosts = n
	}

	posts, err := s.postsClient.UserPosts(r.Context(), handle, maxPosts)
	if err != nil {
		log.Printf("[server] health posts for %s failed: %v", handle, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Author info and a stored voice profile sharpen the report but are
	// not required for it.
	info, err := s.postsClient.UserInfo(r.Context(), handle)
	if err != nil {
		log.Printf("[server] health info for %s unavailable: %v", handle, err)
		info = nil
	}
	profile, _, err := s.profiles.Load(handle)
	if err != nil {
		profile = nil
	}

	result := health.ScoreProfileHealth(handle, posts, info, profile)

	if r.URL.Query().Get("save") == "true" {
		if _, err := s.db.SaveHealthReport(r.Context(), handle, result); err != nil {
			log.Printf("[server] saving health report for %s failed: %v", handle, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}
