// ABOUTME: Error values returned by the storage layer.
// ABOUTME: Separates not-found failures from state-invariant conflicts.
package storage

import "errors"

// Not-found errors: the operation targeted a nonexistent entity id.
var (
	ErrExerciseNotFound      = errors.New("exercise not found")
	ErrVariationNotFound     = errors.New("variation not found")
	ErrGroupNotFound         = errors.New("template not found")
	ErrWorkoutNotFound       = errors.New("workout not found")
	ErrGroupExerciseNotFound = errors.New("workout or group exercise not found")
	ErrFoodLogNotFound       = errors.New("food log entry not found")
)

// State-conflict errors: the operation violates a state invariant.
var (
	ErrWorkoutFinished      = errors.New("workout is already finished")
	ErrVariationMismatch    = errors.New("variation does not belong to selected exercise")
	ErrWorkoutGroupMismatch = errors.New("group exercise does not belong to this workout")
)

// IsNotFound reports whether err is one of the not-found errors.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrExerciseNotFound, ErrVariationNotFound, ErrGroupNotFound,
		ErrWorkoutNotFound, ErrGroupExerciseNotFound, ErrFoodLogNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
