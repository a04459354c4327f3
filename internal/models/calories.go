// ABOUTME: Nutrition ledger models: daily targets and per-item food logs.
// ABOUTME: Food rows carry values computed by the external food database.
package models

// CaloriesTargets is the singleton daily kcal/protein target.
type CaloriesTargets struct {
	TargetKcal    float64 `json:"target_kcal"`
	TargetProtein float64 `json:"target_protein"`
	UpdatedAt     string  `json:"updated_at"`
}

// FoodLog is one food item consumed on a date. FoodID, kcal and protein
// come from the external food database lookup.
type FoodLog struct {
	ID         int64   `json:"id"`
	ConsumedOn string  `json:"consumed_on"`
	FoodID     string  `json:"food_id"`
	Title      string  `json:"title"`
	Grams      float64 `json:"grams"`
	Kcal       float64 `json:"kcal"`
	Protein    float64 `json:"protein"`
	ImageURL   *string `json:"image_url"`
	CreatedAt  string  `json:"created_at"`
}

// FoodLogInput carries the fields for recording a consumed food item.
type FoodLogInput struct {
	ConsumedOn string
	FoodID     string
	Title      string
	Grams      float64
	Kcal       float64
	Protein    float64
	ImageURL   string
}

// DaySummary is the kcal/protein total for one date.
type DaySummary struct {
	ConsumedOn string  `json:"consumed_on"`
	Kcal       float64 `json:"kcal"`
	Protein    float64 `json:"protein"`
}

// MonthPoint is one date's totals within a month summary. Only dates
// with at least one food log appear.
type MonthPoint struct {
	Date    string  `json:"date"`
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
}

// MonthSummary is the sparse per-day series for one calendar month.
type MonthSummary struct {
	Month     string       `json:"month"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Points    []MonthPoint `json:"points"`
}

// Dashboard aggregates headline counts and recent workout activity.
type Dashboard struct {
	ExercisesCount int       `json:"exercises_count"`
	GroupsCount    int       `json:"groups_count"`
	WorkoutsCount  int       `json:"workouts_count"`
	RecordsCount   int       `json:"records_count"`
	ActiveWorkouts []Workout `json:"activeWorkouts"`
	LatestWorkouts []Workout `json:"latestWorkouts"`
}
