package server

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/voice-agent/internal/analytics"
	"github.com/jonathan/voice-agent/internal/db"
	"github.com/jonathan/voice-agent/internal/generation"
	"github.com/jonathan/voice-agent/internal/research"
	"github.com/jonathan/voice-agent/internal/types"
)

// GenerateRequest asks for content proposals in a handle's analyzed voice.
// PostURL switches the run into response mode: the referenced post is
// fetched and the proposals respond to it.
type GenerateRequest struct {
	Handle       string `json:"username" validate:"required,min=1,max=64"`
	ContentType  string `json:"content_type"`
	Count        int    `json:"count" validate:"omitempty,min=1,max=10"`
	ThreadCount  int    `json:"thread_count" validate:"omitempty,min=2,max=25"`
	Topic        string `json:"topic"`
	PostURL      string `json:"post_url"`
	Vibe         string `json:"vibe"`
	UseContent   bool   `json:"use_content"`
	UseAnalytics bool   `json:"use_analytics"`
	UseCalendar  bool   `json:"use_calendar"`
	Score        bool   `json:"score"`
}

// RegenerateRequest reruns a previous response-mode generation from its
// cached research, optionally with revised parameters.
type RegenerateRequest struct {
	ResearchID  string `json:"research_id" validate:"required"`
	ContentType string `json:"content_type"`
	ThreadCount int    `json:"thread_count" validate:"omitempty,min=2,max=25"`
	Vibe        string `json:"vibe"`
	Suggestions string `json:"suggestions"`
}

// GenerateResponse carries the proposals plus the ids needed to revisit
// the run later.
type GenerateResponse struct {
	Proposals  []types.ContentProposal `json:"proposals"`
	ResearchID string                  `json:"research_id,omitempty"`
	HistoryID  string                  `json:"history_id,omitempty"`
	Status     string                  `json:"status"`
}

// handleGenerate produces content proposals in the requested voice.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType, err := parseContentType(req.ContentType)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile, found, err := s.profiles.Load(req.Handle)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		notFound := &ErrProfileNotFound{Handle: req.Handle}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	opts := generation.Options{
		ContentType:  contentType,
		Count:        req.Count,
		Topic:        req.Topic,
		ThreadCount:  req.ThreadCount,
		Vibe:         req.Vibe,
		UseContent:   req.UseContent,
		UseAnalytics: req.UseAnalytics,
		UseCalendar:  req.UseCalendar,
	}

	record := research.Record{
		Handle:       req.Handle,
		PostURL:      req.PostURL,
		VoiceProfile: profile,
	}
	if req.PostURL != "" {
		if err := s.researchPost(r, req.PostURL, &record, &opts); err != nil {
			log.Printf("[server] researching %s failed: %v", req.PostURL, err)
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	assembler := generation.NewAssembler(s.llmClient, profile, s.content, s.insightsFor(r, req.Handle, req.UseAnalytics), s.calendar)
	proposals, err := assembler.Generate(r.Context(), opts)
	if err != nil {
		log.Printf("[server] generate for %s failed: %v", req.Handle, err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if req.Score {
		assembler.ScoreProposals(proposals)
	}

	var researchID string
	if req.PostURL != "" {
		researchID = s.research.Put(record)
	}

	resp := GenerateResponse{
		Proposals:  proposals,
		ResearchID: researchID,
		Status:     "ok",
	}
	resp.HistoryID = s.recordHistory(r, db.HistoryEntry{
		Handle:       req.Handle,
		PostURL:      req.PostURL,
		OriginalPost: record.OriginalPost,
		Proposals:    proposals,
		ResearchID:   researchID,
		Prompt:       req.Topic,
	})

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRegenerate reruns a response-mode generation from cached research.
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	record, found := s.research.Get(req.ResearchID)
	if !found {
		notFound := &ErrResearchNotFound{ID: req.ResearchID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	contentType, err := parseContentType(req.ContentType)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile := record.VoiceProfile
	if profile == nil {
		profile, found, err = s.profiles.Load(record.Handle)
		if err != nil || !found {
			notFound := &ErrProfileNotFound{Handle: record.Handle}
			s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
			return
		}
	}

	vibe := req.Vibe
	if req.Suggestions != "" {
		if vibe != "" {
			vibe += ". "
		}
		vibe += "Incorporate this feedback: " + req.Suggestions
	}

	opts := generation.Options{
		ContentType:  contentType,
		OriginalPost: record.OriginalText,
		Topic:        record.TopicInfo,
		ThreadCount:  req.ThreadCount,
		Vibe:         vibe,
	}

	assembler := generation.NewAssembler(s.llmClient, profile, nil, nil, nil)
	proposals, err := assembler.Generate(r.Context(), opts)
	if err != nil {
		log.Printf("[server] regenerate %s failed: %v", req.ResearchID, err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := GenerateResponse{
		Proposals:  proposals,
		ResearchID: req.ResearchID,
		Status:     "ok",
	}
	resp.HistoryID = s.recordHistory(r, db.HistoryEntry{
		Handle:       record.Handle,
		PostURL:      record.PostURL,
		OriginalPost: record.OriginalPost,
		Proposals:    proposals,
		ResearchID:   req.ResearchID,
	})

	s.jsonResponse(w, http.StatusOK, resp)
}

// researchPost fetches the referenced post, pulls any linked article, and
// fills the research record and generation options for response mode.
func (s *Server) researchPost(r *http.Request, postURL string, record *research.Record, opts *generation.Options) error {
	id, err := postIDFromURL(postURL)
	if err != nil {
		return err
	}

	post, err := s.postsClient.PostByID(r.Context(), id)
	if err != nil {
		return err
	}
	record.OriginalPost = post
	record.OriginalText = post.Text
	opts.OriginalPost = post.Text

	if article, ok := s.articles.ExtractFromPost(r.Context(), post.Text); ok {
		record.ArticleContent = article
		record.TopicInfo = "Topic: linked article\n\n" + article
	} else if topic, err := s.analyzer.ExtractTopic(r.Context(), post.Text); err == nil && topic != "" {
		record.ExtractedTopic = topic
		record.TopicInfo = "Topic: " + topic
	}
	if opts.Topic == "" {
		opts.Topic = record.TopicInfo
	}
	return nil
}

// insightsFor builds an analytics source from the handle's cached or fetched
// posts. Analytics are best-effort context; a fetch failure drops them.
func (s *Server) insightsFor(r *http.Request, handle string, enabled bool) generation.InsightsSource {
	if !enabled {
		return nil
	}
	posts, err := s.postsClient.UserPosts(r.Context(), handle, 0)
	if err != nil || len(posts) == 0 {
		if err != nil {
			log.Printf("[server] analytics posts for %s unavailable: %v", handle, err)
		}
		return nil
	}
	return analytics.NewProcessor(posts)
}

// recordHistory persists a generation run, returning the new id or "" when
// persistence fails. History is auxiliary; failures never fail the request.
func (s *Server) recordHistory(r *http.Request, entry db.HistoryEntry) string {
	id, err := s.db.SaveGeneration(r.Context(), entry)
	if err != nil {
		log.Printf("[server] saving history failed: %v", err)
		return ""
	}
	return id.String()
}

// parseContentType maps the request string to a content type, defaulting to
// a single post when absent.
func parseContentType(raw string) (types.ContentType, error) {
	if raw == "" {
		return types.ContentTypeTweet, nil
	}
	return types.ParseContentType(raw)
}

// postIDFromURL extracts the numeric post id from a status URL. Bare ids
// pass through unchanged.
func postIDFromURL(raw string) (string, error) {
	if !strings.Contains(raw, "/") {
		return raw, nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", &ErrValidation{Field: "post_url", Message: "not a valid URL"}
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if isDigits(segments[i]) {
			return segments[i], nil
		}
	}
	return "", &ErrValidation{Field: "post_url", Message: "no post id found in URL"}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
