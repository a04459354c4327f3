// ABOUTME: Personal record model and the four derived record metrics.
// ABOUTME: Record values are best-so-far and only ever increase.
package models

// Record types derived from logged sets.
const (
	RecordMaxReps   = "max_reps"
	RecordMaxWeight = "max_weight"
	RecordMaxVolume = "max_volume"
	RecordEst1RM    = "est_1rm"
)

// PersonalRecord is the best-ever value for one
// (exercise, variation, record type) bucket. A missing variation is its
// own bucket, not merged across variations.
type PersonalRecord struct {
	ID            int64   `json:"id"`
	ExerciseID    int64   `json:"exercise_id"`
	VariationID   *int64  `json:"variation_id"`
	RecordType    string  `json:"record_type"`
	Value         float64 `json:"value"`
	AchievedOn    string  `json:"achieved_on"`
	UpdatedAt     string  `json:"updated_at"`
	ExerciseName  string  `json:"exercise_name"`
	VariationName *string `json:"variation_name"`
}

// EstimateOneRepMax returns the Epley estimate weight * (1 + reps/30).
func EstimateOneRepMax(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}
