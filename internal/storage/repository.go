// ABOUTME: Repository interface for the fitness and nutrition store.
// ABOUTME: Defines the full contract consumed by the CLI and MCP surfaces.
package storage

import "github.com/obycajnypes/logly/internal/models"

// Repository defines the storage interface for all tracker data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Catalog
	CreateCategory(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	AssignCategory(exerciseID, categoryID int64) error
	CreateExercise(in models.ExerciseInput) (*models.Exercise, error)
	UpdateExercise(exerciseID int64, in models.ExerciseInput) (*models.Exercise, error)
	DeleteExercise(exerciseID int64) error
	ListExercises() ([]models.Exercise, error)
	CreateVariation(in models.VariationInput) (*models.Variation, error)
	CreateExerciseTag(name string) (*models.ExerciseTag, error)
	ListExerciseTags() ([]models.ExerciseTag, error)
	DeleteExerciseTag(name string) error

	// Templates
	CreateGroup(name, description string) (*models.Group, error)
	ListGroups() ([]models.Group, error)
	GetGroupDetail(groupID int64) (*models.GroupDetail, error)
	AddGroupExercise(in models.GroupExerciseInput) (int64, error)
	RemoveGroupExercise(groupExerciseID int64) error
	DeleteGroup(groupID int64) error
	ClearAllTemplates() error

	// Workout sessions
	StartWorkout(groupID int64, performedOn, notes string) (*models.WorkoutDetail, error)
	FinishWorkout(workoutID int64) (*models.WorkoutDetail, error)
	GetWorkoutDetail(workoutID int64) (*models.WorkoutDetail, error)
	ListWorkouts(limit int) ([]models.Workout, error)
	ListActiveWorkouts() ([]models.Workout, error)
	LogWorkoutSet(in models.WorkoutSetInput) (*models.LoggedSet, error)

	// Personal records and history
	ListPersonalRecords(exerciseID int64) ([]models.PersonalRecord, error)
	ListRecentSets(exerciseID int64, limit int) ([]models.RecentSet, error)

	// Daily log
	GetDailyLogDay(performedOn string) (*models.DailyLogDay, error)
	ReplaceDailyLogDay(performedOn string, entries []models.DailyLogEntryInput) (*models.DailyLogDay, error)

	// Nutrition ledger
	GetCaloriesTargets() (*models.CaloriesTargets, error)
	SetCaloriesTargets(targetKcal, targetProtein float64) (*models.CaloriesTargets, error)
	AddFoodLog(in models.FoodLogInput) (*models.FoodLog, error)
	ListFoodLogs(consumedOn string) ([]models.FoodLog, error)
	DeleteFoodLog(logID int64, consumedOn string) (*models.DaySummary, error)
	GetDaySummary(consumedOn string) (*models.DaySummary, error)
	GetMonthSummary(month string) (*models.MonthSummary, error)

	// Analytics and overview
	GetRepsAnalytics(q models.AnalyticsQuery) (*models.ExerciseAnalytics, error)
	GetDashboard() (*models.Dashboard, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error
	ExportJSON() ([]byte, error)
	ExportYAML() ([]byte, error)
	ImportJSON(data []byte) error

	// Lifecycle
	Close() error
}
