package voice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/voice-agent/internal/types"
)

func sampleProfile() *types.VoiceProfile {
	return &types.VoiceProfile{
		Handle:        "Someone",
		WritingStyle:  "casual",
		Tone:          "warm",
		CommonTopics:  []string{"go", "testing"},
		TagUsage:      map[string]int{"#go": 3},
		AverageLength: 120,
		AnalyzedAt:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProfileStore_SaveAndLoad(t *testing.T) {
	store, err := NewProfileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleProfile()))

	loaded, found, err := store.Load("someone")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sampleProfile(), loaded)
}

func TestProfileStore_LoadMissing(t *testing.T) {
	store, err := NewProfileStore(t.TempDir())
	require.NoError(t, err)

	profile, found, err := store.Load("nobody")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, profile)
}

func TestProfileStore_HandleNormalization(t *testing.T) {
	dir := t.TempDir()
	store, err := NewProfileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleProfile()))

	// Saved under the lowercased handle; the @ prefix is stripped on lookup.
	_, err = os.Stat(filepath.Join(dir, "someone_profile.json"))
	assert.NoError(t, err)

	_, found, err := store.Load("@Someone")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestProfileStore_LoadRejectsInvalidProfile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewProfileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken_profile.json"), []byte(`{"handle": "broken"}`), 0o644))

	_, _, err = store.Load("broken")
	require.Error(t, err)

	var storeErr *ProfileStoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestProfileStore_Delete(t *testing.T) {
	store, err := NewProfileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleProfile()))
	require.NoError(t, store.Delete("someone"))

	_, found, err := store.Load("someone")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing profile is not an error.
	assert.NoError(t, store.Delete("someone"))
}

func TestValidateProfileJSON(t *testing.T) {
	valid := []byte(`{"handle":"a","writing_style":"b","tone":"c","analyzed_at":"2025-08-01T00:00:00Z"}`)
	assert.NoError(t, ValidateProfileJSON(valid))

	missing := []byte(`{"handle":"a"}`)
	err := ValidateProfileJSON(missing)
	require.Error(t, err)

	var validationErr *SchemaValidationError
	assert.ErrorAs(t, err, &validationErr)
}
