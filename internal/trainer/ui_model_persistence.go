package trainer

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type prefsData struct {
	PreferredRestSeconds int    `json:"preferred_rest_seconds,omitempty"`
	LastWorkout          string `json:"last_workout,omitempty"`
}

// PrefsStore keeps user preferences in a small JSON file. Load and save
// failures are logged and otherwise ignored; preferences are best effort.
type PrefsStore struct {
	mu       sync.Mutex
	filePath string
	data     prefsData
	logger   *log.Logger
}

// NewPrefsStore loads preferences from filePath. A missing or unreadable
// file leaves every preference unset.
func NewPrefsStore(filePath string, logger *log.Logger) *PrefsStore {
	if logger == nil {
		panic("PrefsStore: logger cannot be nil")
	}
	p := &PrefsStore{
		filePath: filePath,
		logger:   logger,
	}
	p.load()
	return p
}

// PreferredRest returns the rest duration the user last adjusted to
func (p *PrefsStore) PreferredRest() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data.PreferredRestSeconds <= 0 {
		return 0, false
	}
	return time.Duration(p.data.PreferredRestSeconds) * time.Second, true
}

func (p *PrefsStore) SetPreferredRest(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	secs := int(d / time.Second)
	if secs == p.data.PreferredRestSeconds {
		return
	}
	p.logger.Printf("PrefsStore: setPreferredRest -> %ds", secs)
	p.data.PreferredRestSeconds = secs
	p.save()
}

// LastWorkout returns the name of the last started workout, "" if none
func (p *PrefsStore) LastWorkout() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.LastWorkout
}

func (p *PrefsStore) SetLastWorkout(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if name == p.data.LastWorkout {
		return
	}
	p.logger.Printf("PrefsStore: setLastWorkout -> %q", name)
	p.data.LastWorkout = name
	p.save()
}

func (p *PrefsStore) load() {
	raw, err := os.ReadFile(p.filePath)
	if err != nil {
		p.logger.Printf("PrefsStore: load %s (no existing file)", p.filePath)
		return
	}
	var data prefsData
	if err := json.Unmarshal(raw, &data); err != nil {
		p.logger.Printf("PrefsStore: load %s failed to parse: %v", p.filePath, err)
		return
	}
	p.data = data
	p.logger.Printf("PrefsStore: load %s -> %+v", p.filePath, p.data)
}

// save must be called with mu held
func (p *PrefsStore) save() {
	if err := os.MkdirAll(filepath.Dir(p.filePath), 0755); err != nil {
		p.logger.Printf("PrefsStore: save mkdir failed: %v", err)
		return
	}
	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		p.logger.Printf("PrefsStore: save marshal failed: %v", err)
		return
	}
	if err := os.WriteFile(p.filePath, raw, 0644); err != nil {
		p.logger.Printf("PrefsStore: save %s failed: %v", p.filePath, err)
		return
	}
	p.logger.Printf("PrefsStore: save %s -> %+v", p.filePath, p.data)
}
