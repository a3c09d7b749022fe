package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lowaak/rep-runner/internal/engine"
)

// EnvPrefix is the prefix of environment overrides, e.g. REPRUNNER_REST_DEFAULT
const EnvPrefix = "REPRUNNER"

// AppDirName is the per-user directory holding config, prefs and logs
const AppDirName = ".rep-runner"

type Config struct {
	Rest          RestConfig        `mapstructure:"rest"`
	SetRest       SetRestConfig     `mapstructure:"set_rest"`
	GetReady      time.Duration     `mapstructure:"get_ready"`
	Tick          time.Duration     `mapstructure:"tick"`
	CountdownFrom int               `mapstructure:"countdown_from"`
	Voices        map[string]string `mapstructure:"voices"`
	Log           LogConfig         `mapstructure:"log"`
	Workouts      WorkoutsConfig    `mapstructure:"workouts"`
	Prefs         PrefsConfig       `mapstructure:"prefs"`
	Cues          CuesConfig        `mapstructure:"cues"`
}

type RestConfig struct {
	Default time.Duration `mapstructure:"default"`
	Min     time.Duration `mapstructure:"min"`
	Max     time.Duration `mapstructure:"max"`
	Step    time.Duration `mapstructure:"step"`
}

type SetRestConfig struct {
	Default time.Duration `mapstructure:"default"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Stderr     bool   `mapstructure:"stderr"` // Also write to stderr (line mode only)
}

type WorkoutsConfig struct {
	File string `mapstructure:"file"` // Optional TOML file added to the built-in workouts
}

type PrefsConfig struct {
	File string `mapstructure:"file"`
}

type CuesConfig struct {
	Color     bool `mapstructure:"color"`
	Haptics   bool `mapstructure:"haptics"` // Print haptic cues
	QueueSize int  `mapstructure:"queue_size"`
}

// appDir returns ~/.rep-runner, or a relative directory if there is no home
func appDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return AppDirName
	}
	return filepath.Join(home, AppDirName)
}

// SetDefaults registers every key with its default so env overrides and
// Unmarshal see the full key set
func SetDefaults(v *viper.Viper) {
	v.SetDefault("rest.default", engine.DefaultRestDuration)
	v.SetDefault("rest.min", engine.MinRestDuration)
	v.SetDefault("rest.max", engine.MaxRestDuration)
	v.SetDefault("rest.step", engine.RestStepDuration)
	v.SetDefault("set_rest.default", engine.DefaultSetRestDuration)
	v.SetDefault("get_ready", engine.DefaultGetReadyDuration)
	v.SetDefault("tick", engine.DefaultTickInterval)
	v.SetDefault("countdown_from", engine.DefaultCountdownFrom)
	v.SetDefault("voices", map[string]string{})

	dir := appDir()
	v.SetDefault("log.file", filepath.Join(dir, "rep-runner.log"))
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.stderr", false)
	v.SetDefault("workouts.file", "")
	v.SetDefault("prefs.file", filepath.Join(dir, "prefs.json"))
	v.SetDefault("cues.color", true)
	v.SetDefault("cues.haptics", true)
	v.SetDefault("cues.queue_size", 32)
}

// RegisterFlags adds the command line flags that override config keys
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default $HOME/"+AppDirName+"/config.yaml)")
	fs.Duration("rest", engine.DefaultRestDuration, "default rest between exercises")
	fs.Duration("get-ready", engine.DefaultGetReadyDuration, "get ready countdown before the first exercise")
	fs.Duration("tick", engine.DefaultTickInterval, "engine tick interval")
	fs.String("workouts", "", "TOML file with additional workouts")
	fs.String("prefs", "", "preferences file")
	fs.String("log-file", "", "log file")
	fs.Bool("log-stderr", false, "also log to stderr")
	fs.Bool("no-color", false, "disable coloured cue output")
}

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"rest":       "rest.default",
	"get-ready":  "get_ready",
	"tick":       "tick",
	"workouts":   "workouts.file",
	"prefs":      "prefs.file",
	"log-file":   "log.file",
	"log-stderr": "log.stderr",
}

// BindFlags binds the flags registered by RegisterFlags to their keys. Only
// flags that were set on the command line override file and env values.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	if f := fs.Lookup("no-color"); f != nil && f.Changed {
		v.Set("cues.color", f.Value.String() != "true")
	}
	return nil
}

// Load builds the configuration from defaults, an optional config file,
// REPRUNNER_ environment variables and flags, in increasing precedence.
// fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
		if err := BindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(appDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// knownVoiceKinds lists the phase kinds a voice can be set for
var knownVoiceKinds = []engine.PhaseKind{
	engine.KindGetReady, engine.KindExercise, engine.KindSet,
	engine.KindSetRest, engine.KindRest, engine.KindCompleted,
}

func (c *Config) Validate() error {
	if c.Rest.Min <= 0 {
		return fmt.Errorf("rest.min must be positive")
	}
	if c.Rest.Max < c.Rest.Min {
		return fmt.Errorf("rest.max (%v) is below rest.min (%v)", c.Rest.Max, c.Rest.Min)
	}
	if c.Rest.Step <= 0 {
		return fmt.Errorf("rest.step must be positive")
	}
	if c.Rest.Default < c.Rest.Min || c.Rest.Default > c.Rest.Max {
		return fmt.Errorf("rest.default (%v) is outside [%v, %v]", c.Rest.Default, c.Rest.Min, c.Rest.Max)
	}
	if c.SetRest.Default <= 0 {
		return fmt.Errorf("set_rest.default must be positive")
	}
	if c.GetReady <= 0 {
		return fmt.Errorf("get_ready must be positive")
	}
	if c.Tick <= 0 || c.Tick > 10*time.Second {
		return fmt.Errorf("tick must be in (0, 10s]")
	}
	if c.CountdownFrom < 1 || c.CountdownFrom > 60 {
		return fmt.Errorf("countdown_from must be between 1 and 60")
	}
	for kind := range c.Voices {
		if !isKnownVoiceKind(kind) {
			return fmt.Errorf("voices: unknown phase kind %q", kind)
		}
	}
	if c.Log.File == "" {
		return fmt.Errorf("log.file is required")
	}
	return nil
}

// isKnownVoiceKind compares case-insensitively since viper lower-cases keys
func isKnownVoiceKind(kind string) bool {
	for _, k := range knownVoiceKinds {
		if strings.EqualFold(string(k), kind) {
			return true
		}
	}
	return false
}

// EngineSettings converts the timing keys into engine settings
func (c *Config) EngineSettings() engine.Settings {
	s := engine.Settings{
		GetReadyDuration: c.GetReady,
		RestDuration:     c.Rest.Default,
		MinRest:          c.Rest.Min,
		MaxRest:          c.Rest.Max,
		RestStep:         c.Rest.Step,
		SetRestDuration:  c.SetRest.Default,
		TickInterval:     c.Tick,
		CountdownFrom:    c.CountdownFrom,
	}
	if len(c.Voices) > 0 {
		s.Voices = make(map[engine.PhaseKind]engine.VoiceProfile, len(c.Voices))
		for kind, voice := range c.Voices {
			for _, k := range knownVoiceKinds {
				if strings.EqualFold(string(k), kind) {
					s.Voices[k] = engine.VoiceProfile(voice)
				}
			}
		}
	}
	return s
}
