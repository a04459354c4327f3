// ABOUTME: Daily log models: free-form per-day exercise entries with sets.
// ABOUTME: Decoupled from templates; days are replaced wholesale on save.
package models

// DailyLogSet is one set within a daily log entry. Reps and weight are
// nullable: an entry can exist before its numbers are filled in.
type DailyLogSet struct {
	SetNumber int      `json:"set_number"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
}

// DailyLogEntry is one (date, exercise) entry with its ordered sets and
// the tag values selected from the exercise's sub-options.
type DailyLogEntry struct {
	ID           int64         `json:"id"`
	ExerciseID   int64         `json:"exercise_id"`
	ExerciseName string        `json:"exercise_name"`
	MuscleGroups []string      `json:"muscle_groups"`
	Suboptions   []string      `json:"suboptions"`
	SelectedTags []string      `json:"selected_tags"`
	OrderIndex   int           `json:"order_index"`
	Sets         []DailyLogSet `json:"sets"`
}

// DailyLogDay is every entry logged for one date.
type DailyLogDay struct {
	PerformedOn string          `json:"performed_on"`
	Entries     []DailyLogEntry `json:"entries"`
}

// DailyLogSetInput is the caller-supplied shape of one set; nil values
// mean "not yet entered".
type DailyLogSetInput struct {
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
}

// DailyLogEntryInput is the caller-supplied shape of one entry for a
// full-day replace.
type DailyLogEntryInput struct {
	ExerciseID   int64              `json:"exerciseId"`
	Sets         []DailyLogSetInput `json:"sets"`
	SelectedTags []string           `json:"selectedTags"`
}

// AnalyticsQuery selects daily-log rows for one exercise over an
// inclusive date range, optionally filtered by a selected tag.
type AnalyticsQuery struct {
	ExerciseID int64
	StartDate  string
	EndDate    string
	Tag        string
}

// AnalyticsPoint is the per-day aggregate over a day's sets. Sets with
// missing reps or weight are excluded from the affected aggregates.
type AnalyticsPoint struct {
	Date      string  `json:"date"`
	RepsAvg   float64 `json:"reps_avg"`
	RepsMax   int     `json:"reps_max"`
	WeightAvg float64 `json:"weight_avg"`
	WeightMax float64 `json:"weight_max"`
	VolumeAvg float64 `json:"volume_avg"`
	VolumeMax float64 `json:"volume_max"`
	SetsCount int     `json:"sets_count"`
}

// ExerciseAnalytics is the ordered per-day series for one exercise.
type ExerciseAnalytics struct {
	ExerciseID int64            `json:"exercise_id"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Points     []AnalyticsPoint `json:"points"`
}
