package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/voice-agent/internal/voice"
)

// AnalyzeRequest asks for a voice analysis of a handle's recent posts.
type AnalyzeRequest struct {
	Handle      string `json:"username" validate:"required,min=1,max=64"`
	MaxPosts    int    `json:"max_posts" validate:"omitempty,min=1,max=1000"`
	SaveProfile *bool  `json:"save_profile"`
}

// AnalyzeResponse carries the resulting voice profile.
type AnalyzeResponse struct {
	Profile any    `json:"profile"`
	Saved   bool   `json:"saved"`
	Status  string `json:"status"`
}

// handleAnalyze fetches a handle's posts, runs voice analysis, and
// optionally persists the resulting profile.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	analyzer := s.analyzer
	if req.MaxPosts > 0 {
		analyzer = voice.NewAnalyzer(s.postsClient, s.llmClient, req.MaxPosts)
	}

	profile, err := analyzer.Analyze(r.Context(), req.Handle)
	if err != nil {
		log.Printf("[server] analyze %s failed: %v", req.Handle, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Save by default; the request must opt out explicitly.
	save := req.SaveProfile == nil || *req.SaveProfile
	if save {
		if err := s.profiles.Save(profile); err != nil {
			log.Printf("[server] saving profile for %s failed: %v", req.Handle, err)
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Profile: profile,
		Saved:   save,
		Status:  "ok",
	})
}
