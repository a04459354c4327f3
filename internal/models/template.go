// ABOUTME: Template models: groups and their ordered exercise slots.
// ABOUTME: A group is a reusable workout template composed from the catalog.
package models

// Group is a named, reusable ordered list of exercises with targets.
type Group struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// GroupExercise is one slot within a group, binding an exercise and an
// optional variation with target sets/reps. Joined names are populated
// on reads.
type GroupExercise struct {
	ID            int64   `json:"id"`
	GroupID       int64   `json:"group_id"`
	ExerciseID    int64   `json:"exercise_id"`
	VariationID   *int64  `json:"variation_id"`
	TargetSets    int     `json:"target_sets"`
	TargetReps    *string `json:"target_reps"`
	OrderIndex    int     `json:"order_index"`
	ExerciseName  string  `json:"exercise_name"`
	ExerciseType  string  `json:"exercise_type"`
	VariationName *string `json:"variation_name"`
	Grip          *string `json:"grip"`
	Stance        *string `json:"stance"`
}

// GroupExerciseInput carries the fields for adding a slot to a group.
// TargetSets defaults to 3 and OrderIndex to current-max-plus-one when
// left zero.
type GroupExerciseInput struct {
	GroupID     int64
	ExerciseID  int64
	VariationID *int64
	TargetSets  int
	TargetReps  string
	OrderIndex  int
}

// GroupDetail is a group together with its ordered exercise slots.
type GroupDetail struct {
	Group Group           `json:"group"`
	Items []GroupExercise `json:"items"`
}
