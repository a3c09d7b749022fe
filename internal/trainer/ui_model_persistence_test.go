package trainer

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsStore_MissingFile(t *testing.T) {
	p := NewPrefsStore(filepath.Join(t.TempDir(), "prefs.json"), log.New(io.Discard, "", 0))

	_, ok := p.PreferredRest()
	assert.False(t, ok)
	assert.Equal(t, "", p.LastWorkout())
}

func TestPrefsStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	logger := log.New(io.Discard, "", 0)

	p := NewPrefsStore(path, logger)
	p.SetPreferredRest(75 * time.Second)
	p.SetLastWorkout("Leg Day")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"preferred_rest_seconds": 75, "last_workout": "Leg Day"}`, string(raw))

	reloaded := NewPrefsStore(path, logger)
	rest, ok := reloaded.PreferredRest()
	require.True(t, ok)
	assert.Equal(t, 75*time.Second, rest)
	assert.Equal(t, "Leg Day", reloaded.LastWorkout())
}

func TestPrefsStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	p := NewPrefsStore(path, log.New(io.Discard, "", 0))
	_, ok := p.PreferredRest()
	assert.False(t, ok)

	// Saving replaces the broken file
	p.SetLastWorkout("Quick Start")
	assert.Equal(t, "Quick Start", NewPrefsStore(path, log.New(io.Discard, "", 0)).LastWorkout())
}

func TestPrefsStore_UnchangedValueIsNotWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	p := NewPrefsStore(path, log.New(io.Discard, "", 0))
	p.SetPreferredRest(time.Minute)
	require.NoError(t, os.Remove(path))

	p.SetPreferredRest(time.Minute)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
