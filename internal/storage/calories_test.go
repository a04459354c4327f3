// ABOUTME: Tests for the nutrition ledger: targets, food logs, summaries.
// ABOUTME: Covers seeded defaults, scoped deletes, and month boundaries.
package storage

import (
	"testing"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

func TestCaloriesTargetsSeededDefaults(t *testing.T) {
	db := setupTestDB(t)

	targets, err := db.GetCaloriesTargets()
	if err != nil {
		t.Fatalf("GetCaloriesTargets failed: %v", err)
	}
	if targets.TargetKcal != DefaultTargetKcal {
		t.Errorf("TargetKcal default mismatch: got %v", targets.TargetKcal)
	}
	if targets.TargetProtein != DefaultTargetProtein {
		t.Errorf("TargetProtein default mismatch: got %v", targets.TargetProtein)
	}
}

func TestSetCaloriesTargets(t *testing.T) {
	db := setupTestDB(t)

	updated, err := db.SetCaloriesTargets(2500, 180)
	if err != nil {
		t.Fatalf("SetCaloriesTargets failed: %v", err)
	}
	if updated.TargetKcal != 2500 || updated.TargetProtein != 180 {
		t.Errorf("targets mismatch: %+v", updated)
	}

	again, err := db.GetCaloriesTargets()
	if err != nil {
		t.Fatalf("GetCaloriesTargets failed: %v", err)
	}
	if again.TargetKcal != 2500 || again.TargetProtein != 180 {
		t.Errorf("targets not persisted: %+v", again)
	}

	if _, err := db.SetCaloriesTargets(-1, 180); !validate.IsValidation(err) {
		t.Errorf("expected validation error for negative kcal, got %v", err)
	}
	if _, err := db.SetCaloriesTargets(0, 150); !validate.IsValidation(err) {
		t.Errorf("expected validation error for zero kcal, got %v", err)
	}
	if _, err := db.SetCaloriesTargets(2200, 0); !validate.IsValidation(err) {
		t.Errorf("expected validation error for zero protein, got %v", err)
	}

	// Rejected calls must not clobber the stored row.
	kept, err := db.GetCaloriesTargets()
	if err != nil {
		t.Fatalf("GetCaloriesTargets failed: %v", err)
	}
	if kept.TargetKcal != 2500 || kept.TargetProtein != 180 {
		t.Errorf("targets changed by rejected call: %+v", kept)
	}
}

func TestAddAndListFoodLogs(t *testing.T) {
	db := setupTestDB(t)

	log, err := db.AddFoodLog(models.FoodLogInput{
		ConsumedOn: "2025-06-01",
		FoodID:     "12345",
		Title:      "Chicken Breast",
		Grams:      200,
		Kcal:       330,
		Protein:    62,
	})
	if err != nil {
		t.Fatalf("AddFoodLog failed: %v", err)
	}
	if log.Title != "Chicken Breast" || log.Grams != 200 {
		t.Errorf("stored log mismatch: %+v", log)
	}
	if log.ImageURL != nil {
		t.Errorf("blank image should store NULL, got %v", log.ImageURL)
	}

	if _, err := db.AddFoodLog(models.FoodLogInput{
		ConsumedOn: "2025-06-01", FoodID: "1", Title: "Air", Grams: 0,
	}); !validate.IsValidation(err) {
		t.Errorf("expected validation error for zero grams, got %v", err)
	}

	logs, err := db.ListFoodLogs("2025-06-01")
	if err != nil {
		t.Fatalf("ListFoodLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("expected 1 log, got %d", len(logs))
	}
}

func TestDeleteFoodLogScopedToDate(t *testing.T) {
	db := setupTestDB(t)

	log, err := db.AddFoodLog(models.FoodLogInput{
		ConsumedOn: "2025-06-01", FoodID: "1", Title: "Oats", Grams: 80, Kcal: 300, Protein: 10,
	})
	if err != nil {
		t.Fatalf("AddFoodLog failed: %v", err)
	}

	// Wrong date does not delete.
	if _, err := db.DeleteFoodLog(log.ID, "2025-06-02"); err != ErrFoodLogNotFound {
		t.Errorf("expected ErrFoodLogNotFound for wrong date, got %v", err)
	}

	summary, err := db.DeleteFoodLog(log.ID, "2025-06-01")
	if err != nil {
		t.Fatalf("DeleteFoodLog failed: %v", err)
	}
	if summary.Kcal != 0 || summary.Protein != 0 {
		t.Errorf("summary after delete mismatch: %+v", summary)
	}
}

func TestGetDaySummary(t *testing.T) {
	db := setupTestDB(t)

	items := []models.FoodLogInput{
		{ConsumedOn: "2025-06-01", FoodID: "1", Title: "Oats", Grams: 80, Kcal: 300, Protein: 10},
		{ConsumedOn: "2025-06-01", FoodID: "2", Title: "Eggs", Grams: 150, Kcal: 215, Protein: 19},
		{ConsumedOn: "2025-06-02", FoodID: "3", Title: "Rice", Grams: 100, Kcal: 130, Protein: 2.7},
	}
	for _, in := range items {
		if _, err := db.AddFoodLog(in); err != nil {
			t.Fatalf("AddFoodLog failed: %v", err)
		}
	}

	summary, err := db.GetDaySummary("2025-06-01")
	if err != nil {
		t.Fatalf("GetDaySummary failed: %v", err)
	}
	if summary.Kcal != 515 || summary.Protein != 29 {
		t.Errorf("summary mismatch: %+v", summary)
	}

	empty, err := db.GetDaySummary("2025-06-09")
	if err != nil {
		t.Fatalf("empty GetDaySummary failed: %v", err)
	}
	if empty.Kcal != 0 || empty.Protein != 0 {
		t.Errorf("empty day should sum to zero: %+v", empty)
	}
}

func TestGetMonthSummarySparse(t *testing.T) {
	db := setupTestDB(t)

	items := []models.FoodLogInput{
		{ConsumedOn: "2024-03-01", FoodID: "1", Title: "Oats", Grams: 80, Kcal: 300, Protein: 10},
		{ConsumedOn: "2024-03-15", FoodID: "2", Title: "Eggs", Grams: 150, Kcal: 215, Protein: 19},
		{ConsumedOn: "2024-03-15", FoodID: "3", Title: "Rice", Grams: 100, Kcal: 130, Protein: 2.7},
		{ConsumedOn: "2024-04-01", FoodID: "4", Title: "Bread", Grams: 60, Kcal: 160, Protein: 5},
	}
	for _, in := range items {
		if _, err := db.AddFoodLog(in); err != nil {
			t.Fatalf("AddFoodLog failed: %v", err)
		}
	}

	summary, err := db.GetMonthSummary("2024-03")
	if err != nil {
		t.Fatalf("GetMonthSummary failed: %v", err)
	}
	if summary.StartDate != "2024-03-01" || summary.EndDate != "2024-03-31" {
		t.Errorf("month bounds mismatch: %+v", summary)
	}
	if len(summary.Points) != 2 {
		t.Fatalf("expected 2 sparse points, got %d", len(summary.Points))
	}
	if summary.Points[1].Date != "2024-03-15" || summary.Points[1].Kcal != 345 {
		t.Errorf("point mismatch: %+v", summary.Points[1])
	}
}

func TestGetMonthSummaryLeapFebruary(t *testing.T) {
	db := setupTestDB(t)

	summary, err := db.GetMonthSummary("2024-02")
	if err != nil {
		t.Fatalf("GetMonthSummary failed: %v", err)
	}
	if summary.EndDate != "2024-02-29" {
		t.Errorf("leap February end mismatch: got %q", summary.EndDate)
	}

	plain, err := db.GetMonthSummary("2025-02")
	if err != nil {
		t.Fatalf("GetMonthSummary failed: %v", err)
	}
	if plain.EndDate != "2025-02-28" {
		t.Errorf("plain February end mismatch: got %q", plain.EndDate)
	}
}

func TestGetMonthSummaryRejectsBadMonth(t *testing.T) {
	db := setupTestDB(t)

	for _, bad := range []string{"2024", "2024-13", "2024-1", "march", "2024-03-01"} {
		if _, err := db.GetMonthSummary(bad); !validate.IsValidation(err) {
			t.Errorf("expected validation error for %q, got %v", bad, err)
		}
	}
}
