package workout

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

//
// For TOML parsing only
//

type fileTOML struct {
	Workouts []workoutTOML `toml:"workout"`
}

type workoutTOML struct {
	Name      string         `toml:"name"`
	Exercises []exerciseTOML `toml:"exercise"`
}

type exerciseTOML struct {
	Name            string  `toml:"name"`
	Category        string  `toml:"category"`
	Type            string  `toml:"type"`
	DurationSeconds int     `toml:"duration_seconds"`
	Sets            int     `toml:"sets"`
	Target          int     `toml:"target"`
	Weight          float64 `toml:"weight"`
	SetRestSeconds  *int    `toml:"set_rest_seconds"`
	RestAfterSecs   *int    `toml:"rest_after_seconds"`
}

// LoadFile reads workouts from a TOML file. Each [[workout]] table holds
// [[workout.exercise]] entries whose "type" selects the configuration variant.
func LoadFile(path string) ([]Workout, error) {
	var raw fileTOML
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("decoding workout file %s: %w", path, err)
	}
	return convert(raw)
}

// Parse decodes workouts from TOML text
func Parse(data string) ([]Workout, error) {
	var raw fileTOML
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding workouts: %w", err)
	}
	return convert(raw)
}

func convert(raw fileTOML) ([]Workout, error) {
	if len(raw.Workouts) == 0 {
		return nil, errors.New("no workouts defined")
	}
	workouts := make([]Workout, 0, len(raw.Workouts))
	for _, w := range raw.Workouts {
		if w.Name == "" {
			return nil, errors.New("workout without a name")
		}
		out := Workout{Name: w.Name, Exercises: make([]Exercise, 0, len(w.Exercises))}
		for i, e := range w.Exercises {
			ex, err := e.toExercise()
			if err != nil {
				return nil, fmt.Errorf("workout %q exercise %d: %w", w.Name, i+1, err)
			}
			out.Exercises = append(out.Exercises, ex)
		}
		workouts = append(workouts, out)
	}
	return workouts, nil
}

func (e exerciseTOML) toExercise() (Exercise, error) {
	if e.Name == "" {
		return Exercise{}, errors.New("missing name")
	}
	kind, err := ParseConfigKind(e.Type)
	if err != nil {
		return Exercise{}, err
	}

	duration := time.Duration(e.DurationSeconds) * time.Second
	var setRest *time.Duration
	if e.SetRestSeconds != nil {
		setRest = Seconds(*e.SetRestSeconds)
	}

	var cfg Config
	switch kind {
	case KindTimeBased:
		cfg = TimeBased(duration)
	case KindTimeSets:
		cfg = TimeSets(duration, e.Sets, setRest)
	case KindCountBased:
		cfg = CountBased(e.Target)
	case KindRepsOnly:
		cfg = RepsOnly(e.Target)
	case KindRepsSets:
		cfg = RepsSets(e.Target, e.Sets)
	case KindWeightRepsSets:
		cfg = WeightRepsSets(e.Weight, e.Target, e.Sets, setRest)
	}

	if cfg.AutoCompletes() && duration <= 0 {
		return Exercise{}, fmt.Errorf("%s: duration_seconds must be positive", e.Name)
	}
	if cfg.IsManual() && cfg.Target() <= 0 {
		return Exercise{}, fmt.Errorf("%s: target must be positive", e.Name)
	}
	if cfg.IsSetBased() && e.Sets < 1 {
		return Exercise{}, fmt.Errorf("%s: sets must be at least 1", e.Name)
	}
	if e.SetRestSeconds != nil && *e.SetRestSeconds < 0 {
		return Exercise{}, fmt.Errorf("%s: set_rest_seconds cannot be negative", e.Name)
	}
	if e.RestAfterSecs != nil && *e.RestAfterSecs < 0 {
		return Exercise{}, fmt.Errorf("%s: rest_after_seconds cannot be negative", e.Name)
	}

	ex := Exercise{Name: e.Name, Category: e.Category, Config: cfg}
	if e.RestAfterSecs != nil {
		ex.RestAfter = Seconds(*e.RestAfterSecs)
	}
	return ex, nil
}
