package workout

import "time"

// Exercise categories used by the built-in workouts
const (
	CategoryCardio   = "cardio"
	CategoryStrength = "strength"
	CategoryCore     = "core"
	CategoryMobility = "mobility"
)

// AllWorkouts defines the built-in workouts
var AllWorkouts = []Workout{
	{
		Name: "Quick Start",
		Exercises: []Exercise{
			{Name: "Jumping Jacks", Category: CategoryCardio, Config: TimeBased(30 * time.Second)},
			{Name: "Squats", Category: CategoryStrength, Config: CountBased(15)},
			{Name: "Plank", Category: CategoryCore, Config: TimeBased(45 * time.Second)},
		},
	},
	{
		Name: "Tabata Core",
		Exercises: []Exercise{
			{Name: "Mountain Climbers", Category: CategoryCore, Config: TimeSets(20*time.Second, 8, Seconds(10))},
			{Name: "Hollow Hold", Category: CategoryCore, Config: TimeSets(20*time.Second, 4, Seconds(10)), RestAfter: Seconds(60)},
			{Name: "Dead Bug", Category: CategoryCore, Config: RepsOnly(20)},
		},
	},
	{
		Name: "Upper Body Strength",
		Exercises: []Exercise{
			{Name: "Arm Circles", Category: CategoryMobility, Config: TimeBased(30 * time.Second), RestAfter: Seconds(15)},
			{Name: "Push-ups", Category: CategoryStrength, Config: RepsSets(12, 3)},
			{Name: "Dumbbell Row", Category: CategoryStrength, Config: WeightRepsSets(20, 10, 3, Seconds(60))},
			{Name: "Overhead Press", Category: CategoryStrength, Config: WeightRepsSets(15, 8, 3, nil)},
		},
	},
	{
		Name: "Leg Day",
		Exercises: []Exercise{
			{Name: "Leg Swings", Category: CategoryMobility, Config: CountBased(20), RestAfter: Seconds(15)},
			{Name: "Goblet Squat", Category: CategoryStrength, Config: WeightRepsSets(24, 10, 4, Seconds(90))},
			{Name: "Walking Lunges", Category: CategoryStrength, Config: RepsSets(12, 3)},
			{Name: "Wall Sit", Category: CategoryStrength, Config: TimeSets(45*time.Second, 2, nil)},
			{Name: "Calf Raises", Category: CategoryStrength, Config: RepsOnly(25)},
		},
	},
	{
		Name: "Cardio Blast",
		Exercises: []Exercise{
			{Name: "High Knees", Category: CategoryCardio, Config: TimeBased(40 * time.Second)},
			{Name: "Burpees", Category: CategoryCardio, Config: CountBased(10)},
			{Name: "Skater Jumps", Category: CategoryCardio, Config: TimeBased(40 * time.Second)},
			{Name: "Jump Rope", Category: CategoryCardio, Config: TimeSets(60*time.Second, 3, Seconds(20))},
		},
	},
}

// FindWorkout returns the workout with the given name from the list
func FindWorkout(workouts []Workout, name string) (*Workout, bool) {
	for i := range workouts {
		if workouts[i].Name == name {
			return &workouts[i], true
		}
	}
	return nil, false
}
