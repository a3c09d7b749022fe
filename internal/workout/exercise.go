package workout

import (
	"fmt"
	"time"
)

// ConfigKind identifies which exercise configuration variant is in use
type ConfigKind int

const (
	KindTimeBased      ConfigKind = iota // Single countdown, auto-completes
	KindTimeSets                         // Countdown repeated per set, auto-completes
	KindCountBased                       // Manual count, user completes
	KindRepsOnly                         // Manual reps, user completes
	KindRepsSets                         // Manual reps per set with rest between sets
	KindWeightRepsSets                   // Like RepsSets, weight is display only
)

// DefaultSetRest is used when a set-based exercise does not carry its own rest
const DefaultSetRest = 30 * time.Second

// String returns the variant name used in workout files
func (k ConfigKind) String() string {
	switch k {
	case KindTimeBased:
		return "time"
	case KindTimeSets:
		return "time_sets"
	case KindCountBased:
		return "count"
	case KindRepsOnly:
		return "reps"
	case KindRepsSets:
		return "reps_sets"
	case KindWeightRepsSets:
		return "weight_reps_sets"
	default:
		return "unknown"
	}
}

// ParseConfigKind converts a workout file variant name to a ConfigKind
func ParseConfigKind(s string) (ConfigKind, error) {
	for k := KindTimeBased; k <= KindWeightRepsSets; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown exercise type %q", s)
}

// Config is the tagged configuration of one exercise. Only the fields relevant
// to Kind are meaningful; use the constructors below to build one.
type Config struct {
	Kind            ConfigKind
	Duration        time.Duration  // TimeBased, TimeSets (per set)
	SetCount        int            // TimeSets, RepsSets, WeightRepsSets
	TargetCount     int            // CountBased
	TargetReps      int            // RepsOnly, RepsSets, WeightRepsSets
	Weight          float64        // WeightRepsSets, display only
	RestBetweenSets *time.Duration // TimeSets, WeightRepsSets (optional)
}

func TimeBased(duration time.Duration) Config {
	return Config{Kind: KindTimeBased, Duration: duration}
}

func TimeSets(duration time.Duration, setCount int, restBetweenSets *time.Duration) Config {
	return Config{Kind: KindTimeSets, Duration: duration, SetCount: setCount, RestBetweenSets: restBetweenSets}
}

func CountBased(targetCount int) Config {
	return Config{Kind: KindCountBased, TargetCount: targetCount}
}

func RepsOnly(targetReps int) Config {
	return Config{Kind: KindRepsOnly, TargetReps: targetReps}
}

func RepsSets(targetReps, setCount int) Config {
	return Config{Kind: KindRepsSets, TargetReps: targetReps, SetCount: setCount}
}

func WeightRepsSets(weight float64, targetReps, setCount int, restBetweenSets *time.Duration) Config {
	return Config{Kind: KindWeightRepsSets, Weight: weight, TargetReps: targetReps, SetCount: setCount, RestBetweenSets: restBetweenSets}
}

// AutoCompletes reports whether the exercise finishes on its own when its countdown runs out
func (c Config) AutoCompletes() bool {
	return c.Kind == KindTimeBased || c.Kind == KindTimeSets
}

// IsManual reports whether the user drives completion (count/reps variants)
func (c Config) IsManual() bool {
	return !c.AutoCompletes()
}

// IsSetBased reports whether the exercise runs work/rest cycles within its slot
func (c Config) IsSetBased() bool {
	switch c.Kind {
	case KindTimeSets, KindRepsSets, KindWeightRepsSets:
		return true
	default:
		return false
	}
}

// CountsReps reports whether manual progress is tracked as reps rather than count
func (c Config) CountsReps() bool {
	switch c.Kind {
	case KindRepsOnly, KindRepsSets, KindWeightRepsSets:
		return true
	default:
		return false
	}
}

// Sets returns the number of sets, 1 for variants without sets
func (c Config) Sets() int {
	if !c.IsSetBased() || c.SetCount < 1 {
		return 1
	}
	return c.SetCount
}

// Target returns the count or reps ceiling for manual variants, 0 otherwise
func (c Config) Target() int {
	switch c.Kind {
	case KindCountBased:
		return c.TargetCount
	case KindRepsOnly, KindRepsSets, KindWeightRepsSets:
		return c.TargetReps
	default:
		return 0
	}
}

// CountdownDuration returns the length of one countdown (per set for TimeSets),
// 0 for manual variants
func (c Config) CountdownDuration() time.Duration {
	if !c.AutoCompletes() {
		return 0
	}
	return c.Duration
}

// SetRest returns the rest between sets, falling back to def when the variant has none
func (c Config) SetRest(def time.Duration) time.Duration {
	if c.RestBetweenSets != nil {
		return *c.RestBetweenSets
	}
	return def
}

// Summary returns a short human readable description, e.g. "3 x 8 reps @ 40kg"
func (c Config) Summary() string {
	switch c.Kind {
	case KindTimeBased:
		return formatSeconds(c.Duration)
	case KindTimeSets:
		return fmt.Sprintf("%d x %s", c.Sets(), formatSeconds(c.Duration))
	case KindCountBased:
		return fmt.Sprintf("%d count", c.TargetCount)
	case KindRepsOnly:
		return fmt.Sprintf("%d reps", c.TargetReps)
	case KindRepsSets:
		return fmt.Sprintf("%d x %d reps", c.Sets(), c.TargetReps)
	case KindWeightRepsSets:
		return fmt.Sprintf("%d x %d reps @ %gkg", c.Sets(), c.TargetReps, c.Weight)
	default:
		return ""
	}
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// Exercise describes one slot of a workout
type Exercise struct {
	Name      string
	Category  string
	Config    Config
	RestAfter *time.Duration // Overrides the session rest after this exercise
}

// RestDuration returns the rest that follows this exercise
func (e Exercise) RestDuration(sessionDefault time.Duration) time.Duration {
	if e.RestAfter != nil {
		return *e.RestAfter
	}
	return sessionDefault
}

// Workout is an ordered, read-only list of exercises
type Workout struct {
	Name      string
	Exercises []Exercise
}

// ExerciseCount returns the number of exercises in the workout
func (w *Workout) ExerciseCount() int {
	if w == nil {
		return 0
	}
	return len(w.Exercises)
}

// EstimatedDuration sums countdowns, set rests and between-exercise rests.
// Manual exercises contribute nothing since their length is up to the user.
func (w *Workout) EstimatedDuration(rest time.Duration) time.Duration {
	var total time.Duration
	for i, ex := range w.Exercises {
		sets := ex.Config.Sets()
		total += time.Duration(sets) * ex.Config.CountdownDuration()
		if ex.Config.IsSetBased() && sets > 1 {
			total += time.Duration(sets-1) * ex.Config.SetRest(DefaultSetRest)
		}
		if i < len(w.Exercises)-1 {
			total += ex.RestDuration(rest)
		}
	}
	return total
}

// Seconds is a helper for building optional durations inline
func Seconds(n int) *time.Duration {
	d := time.Duration(n) * time.Second
	return &d
}
