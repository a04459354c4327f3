// ABOUTME: Tests for full-dataset export and import.
// ABOUTME: A snapshot must round-trip into a fresh database losslessly.
package storage

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/obycajnypes/logly/internal/models"
)

// seedFullDataset populates one of everything across the schema.
func seedFullDataset(t *testing.T, db *DB) workoutFixture {
	t.Helper()
	fx := setupWorkout(t, db)

	if _, err := db.LogWorkoutSet(models.WorkoutSetInput{
		WorkoutID: fx.workoutID, GroupExerciseID: fx.slotID, Reps: 10, Weight: 50,
	}); err != nil {
		t.Fatalf("LogWorkoutSet failed: %v", err)
	}
	if _, err := db.ReplaceDailyLogDay("2025-03-10", []models.DailyLogEntryInput{
		{ExerciseID: fx.exercise.ID, Sets: []models.DailyLogSetInput{{Reps: intp(10), Weight: floatp(50)}}},
	}); err != nil {
		t.Fatalf("ReplaceDailyLogDay failed: %v", err)
	}
	if _, err := db.AddFoodLog(models.FoodLogInput{
		ConsumedOn: "2025-03-10", FoodID: "1", Title: "Oats", Grams: 80, Kcal: 300, Protein: 10,
	}); err != nil {
		t.Fatalf("AddFoodLog failed: %v", err)
	}
	if _, err := db.SetCaloriesTargets(2400, 170); err != nil {
		t.Fatalf("SetCaloriesTargets failed: %v", err)
	}
	return fx
}

func TestGetAllData(t *testing.T) {
	db := setupTestDB(t)
	seedFullDataset(t, db)

	data, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	if data.Version != "1.0" || data.Tool != "logly" {
		t.Errorf("snapshot header mismatch: %+v", data)
	}
	if data.SnapshotID == "" {
		t.Error("SnapshotID not set")
	}
	if len(data.Exercises) != 1 {
		t.Errorf("expected 1 exercise, got %d", len(data.Exercises))
	}
	if len(data.Workouts) != 1 || len(data.WorkoutSets) != 1 {
		t.Errorf("workout rows mismatch: %d workouts, %d sets", len(data.Workouts), len(data.WorkoutSets))
	}
	if len(data.PersonalRecords) != 4 {
		t.Errorf("expected 4 personal records, got %d", len(data.PersonalRecords))
	}
	if data.CaloriesTargets == nil || data.CaloriesTargets.TargetKcal != 2400 {
		t.Errorf("targets mismatch: %+v", data.CaloriesTargets)
	}
	// Seeded default categories come along too.
	if len(data.Categories) != len(DefaultCategories) {
		t.Errorf("expected %d categories, got %d", len(DefaultCategories), len(data.Categories))
	}
}

func TestImportDataRoundTrip(t *testing.T) {
	source := setupTestDB(t)
	fx := seedFullDataset(t, source)

	data, err := source.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}

	target := setupTestDB(t)
	// The target's own seeded categories would collide with the
	// snapshot's ids; imports are meant for empty databases.
	if _, err := target.db.Exec("DELETE FROM categories"); err != nil {
		t.Fatalf("clear target categories failed: %v", err)
	}
	if err := target.ImportData(data); err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	detail, err := target.GetWorkoutDetail(fx.workoutID)
	if err != nil {
		t.Fatalf("GetWorkoutDetail after import failed: %v", err)
	}
	if detail.Workout.GroupName != "Push Day" || len(detail.Sets) != 1 {
		t.Errorf("imported workout mismatch: %+v", detail)
	}

	records, err := target.ListPersonalRecords(fx.exercise.ID)
	if err != nil {
		t.Fatalf("ListPersonalRecords after import failed: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("expected 4 imported records, got %d", len(records))
	}

	summary, err := target.GetDaySummary("2025-03-10")
	if err != nil {
		t.Fatalf("GetDaySummary after import failed: %v", err)
	}
	if summary.Kcal != 300 {
		t.Errorf("imported food logs mismatch: %+v", summary)
	}

	targets, err := target.GetCaloriesTargets()
	if err != nil {
		t.Fatalf("GetCaloriesTargets after import failed: %v", err)
	}
	if targets.TargetKcal != 2400 || targets.TargetProtein != 170 {
		t.Errorf("imported targets mismatch: %+v", targets)
	}
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedFullDataset(t, db)

	raw, err := db.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var decoded ExportData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.Tool != "logly" || len(decoded.Exercises) != 1 {
		t.Errorf("decoded snapshot mismatch: %+v", decoded)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedFullDataset(t, db)

	raw, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	text := string(raw)
	for _, want := range []string{"version:", "tool: logly", "exercises:", "food_logs:"} {
		if !strings.Contains(text, want) {
			t.Errorf("YAML export missing %q", want)
		}
	}
}

func TestImportJSON(t *testing.T) {
	source := setupTestDB(t)
	seedFullDataset(t, source)
	raw, err := source.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	target := setupTestDB(t)
	if _, err := target.db.Exec("DELETE FROM categories"); err != nil {
		t.Fatalf("Failed to clear seeded categories: %v", err)
	}
	if err := target.ImportJSON(raw); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	exercises, err := target.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 1 {
		t.Errorf("Expected 1 exercise after import, got %d", len(exercises))
	}

	if err := target.ImportJSON([]byte("not json")); err == nil {
		t.Error("Expected error for malformed snapshot")
	}
}
