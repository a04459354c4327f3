// ABOUTME: Workout session models: performed workouts and logged sets.
// ABOUTME: A workout moves from active to finished and is then immutable.
package models

// Workout statuses. A finished workout accepts no further sets.
const (
	WorkoutActive   = "active"
	WorkoutFinished = "finished"
)

// Workout is one performed session bound to a group template.
type Workout struct {
	ID          int64   `json:"id"`
	GroupID     int64   `json:"group_id"`
	PerformedOn string  `json:"performed_on"`
	Notes       *string `json:"notes,omitempty"`
	Status      string  `json:"status"`
	StartedAt   string  `json:"started_at"`
	FinishedAt  *string `json:"finished_at"`
	GroupName   string  `json:"group_name"`
}

// WorkoutSet is one logged set under a (workout, group-exercise) pair.
// Set numbers are sequential per pair. Joined exercise/variation names
// are populated on reads.
type WorkoutSet struct {
	ID              int64    `json:"id"`
	WorkoutID       int64    `json:"workout_id"`
	GroupExerciseID int64    `json:"group_exercise_id"`
	SetNumber       int      `json:"set_number"`
	Reps            int      `json:"reps"`
	Weight          float64  `json:"weight"`
	RPE             *float64 `json:"rpe"`
	Notes           *string  `json:"notes"`
	CreatedAt       string   `json:"created_at"`
	ExerciseID      int64    `json:"exercise_id"`
	ExerciseName    string   `json:"exercise_name"`
	VariationID     *int64   `json:"variation_id"`
	VariationName   *string  `json:"variation_name"`
}

// WorkoutSetInput carries the fields for logging a set.
// Weight defaults to 0 when not supplied; RPE is optional.
type WorkoutSetInput struct {
	WorkoutID       int64
	GroupExerciseID int64
	Reps            int
	Weight          float64
	RPE             *float64
	Notes           string
}

// LoggedSet is the result of logging a set.
type LoggedSet struct {
	ID        int64 `json:"id"`
	SetNumber int   `json:"set_number"`
}

// WorkoutDetail is a workout with its template slots and logged sets.
type WorkoutDetail struct {
	Workout Workout         `json:"workout"`
	Items   []GroupExercise `json:"groupItems"`
	Sets    []WorkoutSet    `json:"sets"`
}

// RecentSet is a denormalized read model of a logged set with its
// workout date and exercise/group names, used for history views.
type RecentSet struct {
	ID            int64    `json:"id"`
	SetNumber     int      `json:"set_number"`
	Reps          int      `json:"reps"`
	Weight        float64  `json:"weight"`
	RPE           *float64 `json:"rpe"`
	PerformedOn   string   `json:"performed_on"`
	GroupName     string   `json:"group_name"`
	ExerciseID    int64    `json:"exercise_id"`
	ExerciseName  string   `json:"exercise_name"`
	VariationName *string  `json:"variation_name"`
}
