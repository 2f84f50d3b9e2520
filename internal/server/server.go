// Package server provides the HTTP REST API for the voice agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/voice-agent/internal/articles"
	"github.com/jonathan/voice-agent/internal/calendar"
	"github.com/jonathan/voice-agent/internal/config"
	"github.com/jonathan/voice-agent/internal/db"
	"github.com/jonathan/voice-agent/internal/files"
	"github.com/jonathan/voice-agent/internal/llm"
	"github.com/jonathan/voice-agent/internal/posts"
	"github.com/jonathan/voice-agent/internal/research"
	"github.com/jonathan/voice-agent/internal/server/middleware"
	"github.com/jonathan/voice-agent/internal/server/ratelimit"
	"github.com/jonathan/voice-agent/internal/virality"
	"github.com/jonathan/voice-agent/internal/voice"
)

// researchSweepInterval is how often expired research entries are dropped.
const researchSweepInterval = time.Hour

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	llmClient   llm.Client
	articles    *articles.Extractor
	postsClient *posts.Client
	cache       *posts.Cache
	profiles    *voice.ProfileStore
	analyzer    *voice.Analyzer
	research    *research.Store
	content     *files.Processor
	calendar    *calendar.Processor
	scorer      *virality.Scorer
	validate    *validator.Validate
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService // nil when JWT_SECRET is unset (auth disabled)
	sweepStop   chan struct{}
}

// Config holds server configuration
type Config struct {
	Port         int
	DatabaseURL  string
	PostsAPIKey  string
	CacheDir     string
	ProfileDir   string
	ContentDir   string
	CalendarFile string
	MaxPosts     int
	CacheOnly    bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(context.Background()); err != nil {
		database.Close()
		return nil, err
	}

	llmClient, err := llm.NewClient(context.Background(), llm.DefaultConfig())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	cache, err := posts.NewCache(cfg.CacheDir, posts.DefaultCacheTTL)
	if err != nil {
		database.Close()
		return nil, err
	}
	postsClient, err := posts.NewClient(posts.ClientConfig{
		APIKey:          cfg.PostsAPIKey,
		Cache:           cache,
		PreferCacheOnly: cfg.CacheOnly,
	})
	if err != nil {
		database.Close()
		return nil, err
	}

	profiles, err := voice.NewProfileStore(cfg.ProfileDir)
	if err != nil {
		database.Close()
		return nil, err
	}

	cal := calendar.NewProcessor()
	if cfg.CalendarFile != "" {
		if err := cal.Load(cfg.CalendarFile); err != nil {
			log.Printf("[server] %v", err)
		}
	}

	s := &Server{
		db:          database,
		llmClient:   llmClient,
		articles:    articles.NewExtractor(),
		postsClient: postsClient,
		cache:       cache,
		profiles:    profiles,
		analyzer:    voice.NewAnalyzer(postsClient, llmClient, cfg.MaxPosts),
		research:    research.NewStore(research.DefaultTTL),
		content:     files.NewProcessor(cfg.ContentDir),
		calendar:    cal,
		scorer:      virality.NewScorer(),
		validate:    validator.New(),
		sweepStop:   make(chan struct{}),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// API auth is optional; enabled when JWT_SECRET is present.
	jwtConfig, err := config.OptionalJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtConfig != nil {
		s.jwtService = NewJWTService(jwtConfig)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /generate/regenerate", s.handleRegenerate)
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("GET /profiles/{handle}/health", s.handleProfileHealth)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Generation history endpoints
	mux.HandleFunc("GET /history", s.handleListHistory)
	mux.HandleFunc("GET /history/{id}", s.handleGetHistory)
	mux.HandleFunc("DELETE /history/{id}", s.handleDeleteHistory)
	mux.HandleFunc("DELETE /history", s.handleClearHistory)

	// Posts cache endpoints
	mux.HandleFunc("GET /cache/{handle}", s.handleCacheInfo)
	mux.HandleFunc("DELETE /cache/{handle}", s.handleCacheInvalidate)

	var handler http.Handler = mux
	if s.jwtService != nil {
		handler = s.withAuth(handler)
	}

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(handler))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for LLM-backed generation
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go s.sweepResearch()

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	close(s.sweepStop)
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	_ = s.llmClient.Close()
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// sweepResearch periodically drops expired research entries.
func (s *Server) sweepResearch() {
	ticker := time.NewTicker(researchSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if removed := s.research.SweepExpired(); removed > 0 {
				log.Printf("[server] swept %d expired research entries", removed)
			}
		case <-s.sweepStop:
			return
		}
	}
}

// withAuth requires a valid bearer token on every route except the health
// check.
func (s *Server) withAuth(next http.Handler) http.Handler {
	authenticated := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.Method == "OPTIONS" {
			next.ServeHTTP(w, r)
			return
		}
		authenticated.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit
// information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
