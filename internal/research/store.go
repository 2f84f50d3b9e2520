// Package research holds the context gathered for a generation request so a
// follow-up regeneration can reuse it without repeating the research.
package research

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/voice-agent/internal/types"
)

// DefaultTTL is how long stored research stays available for regeneration.
const DefaultTTL = 24 * time.Hour

// Record is the research context captured during a generation request.
type Record struct {
	Handle         string
	PostURL        string
	OriginalPost   *types.Post
	TopicInfo      string
	ExtractedTopic string
	OriginalText   string
	VoiceProfile   *types.VoiceProfile
	ThreadContent  string
	ArticleContent string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Store is an in-memory TTL store for research records, keyed by research id.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]Record
}

// NewStore creates a store with the given TTL. A zero ttl uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		records: make(map[string]Record),
	}
}

// Put stores a record and returns its research id.
func (s *Store) Put(record Record) string {
	id := uuid.New().String()
	now := time.Now()
	record.CreatedAt = now
	record.ExpiresAt = now.Add(s.ttl)

	s.mu.Lock()
	s.records[id] = record
	s.mu.Unlock()
	return id
}

// Get returns the record for an id, if present and not expired. Expired
// records are removed on access.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	if time.Now().After(record.ExpiresAt) {
		delete(s.records, id)
		return Record{}, false
	}
	return record, true
}

// SweepExpired removes expired records and reports how many were dropped.
func (s *Store) SweepExpired() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, record := range s.records {
		if now.After(record.ExpiresAt) {
			delete(s.records, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored records, including any not yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
