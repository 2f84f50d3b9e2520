package voice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/voice-agent/internal/types"
)

// ProfileStore persists voice profiles as JSON files, one per handle.
type ProfileStore struct {
	dir string
}

// NewProfileStore creates a store rooted at dir, creating it if needed.
func NewProfileStore(dir string) (*ProfileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &ProfileStoreError{Path: dir, Message: "failed to create directory", Cause: err}
	}
	return &ProfileStore{dir: dir}, nil
}

// Save writes the profile for its handle, replacing any existing one.
func (s *ProfileStore) Save(profile *types.VoiceProfile) error {
	path := s.path(profile.Handle)
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return &ProfileStoreError{Path: path, Message: "failed to encode profile", Cause: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ProfileStoreError{Path: path, Message: "failed to write profile", Cause: err}
	}
	return nil
}

// Load reads and validates the saved profile for a handle. The boolean is
// false when no profile has been saved.
func (s *ProfileStore) Load(handle string) (*types.VoiceProfile, bool, error) {
	path := s.path(handle)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &ProfileStoreError{Path: path, Message: "failed to read profile", Cause: err}
	}

	if err := ValidateProfileJSON(data); err != nil {
		return nil, false, &ProfileStoreError{Path: path, Message: "saved profile is invalid", Cause: err}
	}

	var profile types.VoiceProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false, &ProfileStoreError{Path: path, Message: "failed to decode profile", Cause: err}
	}
	return &profile, true, nil
}

// Delete removes the saved profile for a handle, if any.
func (s *ProfileStore) Delete(handle string) error {
	err := os.Remove(s.path(handle))
	if err != nil && !os.IsNotExist(err) {
		return &ProfileStoreError{Path: s.path(handle), Message: "failed to delete profile", Cause: err}
	}
	return nil
}

func (s *ProfileStore) path(handle string) string {
	safe := strings.TrimPrefix(strings.ToLower(handle), "@")
	return filepath.Join(s.dir, fmt.Sprintf("%s_profile.json", safe))
}
