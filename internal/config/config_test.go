package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/rep-runner/internal/engine"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Rest.Default)
	assert.Equal(t, 15*time.Second, cfg.Rest.Min)
	assert.Equal(t, 300*time.Second, cfg.Rest.Max)
	assert.Equal(t, 15*time.Second, cfg.Rest.Step)
	assert.Equal(t, 30*time.Second, cfg.SetRest.Default)
	assert.Equal(t, 10*time.Second, cfg.GetReady)
	assert.Equal(t, time.Second, cfg.Tick)
	assert.Equal(t, 5, cfg.CountdownFrom)
	assert.True(t, cfg.Cues.Color)
	assert.True(t, cfg.Cues.Haptics)
	assert.Equal(t, "rep-runner.log", filepath.Base(cfg.Log.File))
	assert.Equal(t, "prefs.json", filepath.Base(cfg.Prefs.File))
}

const sampleYAML = `
rest:
  default: 60s
get_ready: 5s
countdown_from: 3
voices:
  getReady: calm
  completed: cheerful
log:
  file: /tmp/rr.log
  max_backups: 1
`

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	t.Setenv("REPRUNNER_GET_READY", "7s")
	t.Setenv("REPRUNNER_LOG_STDERR", "true")

	cfg, err := Load(newFlags(t, "--config", path, "--rest", "90s", "--no-color"))
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Rest.Default, "flag beats file")
	assert.Equal(t, 7*time.Second, cfg.GetReady, "env beats file")
	assert.Equal(t, 3, cfg.CountdownFrom)
	assert.Equal(t, "/tmp/rr.log", cfg.Log.File)
	assert.Equal(t, 1, cfg.Log.MaxBackups)
	assert.True(t, cfg.Log.Stderr)
	assert.False(t, cfg.Cues.Color)

	settings := cfg.EngineSettings()
	assert.Equal(t, 90*time.Second, settings.RestDuration)
	assert.Equal(t, engine.VoiceProfile("calm"), settings.Voice(engine.KindGetReady))
	assert.Equal(t, engine.VoiceProfile("cheerful"), settings.Voice(engine.KindCompleted))
}

func TestLoad_UnsetFlagsKeepDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Prefs.File)
	assert.NotEmpty(t, cfg.Log.File)
	assert.Equal(t, 45*time.Second, cfg.Rest.Default)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Rest:          RestConfig{Default: 45 * time.Second, Min: 15 * time.Second, Max: 300 * time.Second, Step: 15 * time.Second},
			SetRest:       SetRestConfig{Default: 30 * time.Second},
			GetReady:      10 * time.Second,
			Tick:          time.Second,
			CountdownFrom: 5,
			Log:           LogConfig{File: "x.log"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"rest min", func(c *Config) { c.Rest.Min = 0 }},
		{"rest max below min", func(c *Config) { c.Rest.Max = 10 * time.Second }},
		{"rest step", func(c *Config) { c.Rest.Step = 0 }},
		{"rest default out of range", func(c *Config) { c.Rest.Default = 10 * time.Minute }},
		{"set rest", func(c *Config) { c.SetRest.Default = 0 }},
		{"get ready", func(c *Config) { c.GetReady = 0 }},
		{"tick", func(c *Config) { c.Tick = time.Minute }},
		{"countdown", func(c *Config) { c.CountdownFrom = 0 }},
		{"voice kind", func(c *Config) { c.Voices = map[string]string{"warmup": "x"} }},
		{"log file", func(c *Config) { c.Log.File = "" }},
	}

	c := valid()
	require.NoError(t, c.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
