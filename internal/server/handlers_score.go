package server

import (
	"encoding/json"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/voice-agent/internal/virality"
)

// ScoreItem is one piece of content to score: either a single text or, for
// threads, the ordered segment list.
type ScoreItem struct {
	Content     string   `json:"content"`
	Texts       []string `json:"texts"`
	ContentType string   `json:"content_type"`
}

// ScoreRequest scores one item directly or a batch via Items.
type ScoreRequest struct {
	ScoreItem
	Items []ScoreItem `json:"items" validate:"omitempty,max=50,dive"`
}

// ScoreResponse carries virality results in request order.
type ScoreResponse struct {
	Results []virality.ViralityResult `json:"results"`
	Status  string                    `json:"status"`
}

// handleScore estimates virality for submitted content. Batch items are
// scored concurrently.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	items := req.Items
	if len(items) == 0 {
		items = []ScoreItem{req.ScoreItem}
	}

	results := make([]virality.ViralityResult, len(items))
	g, _ := errgroup.WithContext(r.Context())
	for i, item := range items {
		g.Go(func() error {
			contentType, err := parseContentType(item.ContentType)
			if err != nil {
				return err
			}
			texts := item.Texts
			if len(texts) == 0 {
				texts = []string{item.Content}
			}
			results[i] = s.scorer.Score(texts, contentType)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ScoreResponse{Results: results, Status: "ok"})
}
