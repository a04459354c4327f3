// ABOUTME: Tests for the daily-log analytics aggregator.
// ABOUTME: Covers null exclusion, tag filtering, and date-range bounds.
package storage

import (
	"math"
	"testing"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

func TestGetRepsAnalyticsAggregates(t *testing.T) {
	db := setupTestDB(t)
	ex := mustCreateExercise(t, db, "Bench Press")

	_, err := db.ReplaceDailyLogDay("2025-05-01", []models.DailyLogEntryInput{
		{
			ExerciseID: ex.ID,
			Sets: []models.DailyLogSetInput{
				{Reps: intp(10), Weight: floatp(60)},
				{Reps: intp(8), Weight: floatp(70)},
				{Reps: nil, Weight: floatp(80)},  // counts for weight only
				{Reps: intp(12), Weight: nil},    // counts for reps only
			},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceDailyLogDay failed: %v", err)
	}

	result, err := db.GetRepsAnalytics(models.AnalyticsQuery{
		ExerciseID: ex.ID, StartDate: "2025-05-01", EndDate: "2025-05-31",
	})
	if err != nil {
		t.Fatalf("GetRepsAnalytics failed: %v", err)
	}
	if len(result.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(result.Points))
	}
	p := result.Points[0]
	if p.Date != "2025-05-01" {
		t.Errorf("Date mismatch: got %q", p.Date)
	}
	if p.SetsCount != 3 {
		t.Errorf("SetsCount should count sets with reps: got %d, want 3", p.SetsCount)
	}
	if p.RepsMax != 12 {
		t.Errorf("RepsMax mismatch: got %d", p.RepsMax)
	}
	if math.Abs(p.RepsAvg-10) > 1e-9 {
		t.Errorf("RepsAvg mismatch: got %v, want 10", p.RepsAvg)
	}
	if p.WeightMax != 80 {
		t.Errorf("WeightMax mismatch: got %v", p.WeightMax)
	}
	if math.Abs(p.WeightAvg-70) > 1e-9 {
		t.Errorf("WeightAvg mismatch: got %v, want 70", p.WeightAvg)
	}
	// Volume only counts sets with both reps and weight: 600 and 560.
	if p.VolumeMax != 600 {
		t.Errorf("VolumeMax mismatch: got %v", p.VolumeMax)
	}
	if math.Abs(p.VolumeAvg-580) > 1e-9 {
		t.Errorf("VolumeAvg mismatch: got %v, want 580", p.VolumeAvg)
	}
}

func TestGetRepsAnalyticsTagFilter(t *testing.T) {
	db := setupTestDB(t)
	ex, err := db.CreateExercise(models.ExerciseInput{
		Name: "Bench Press", Type: "strength",
		Suboptions: []string{"Close Grip", "Wide Grip"},
	})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	days := []struct {
		date string
		tags []string
	}{
		{"2025-05-01", []string{"Close Grip"}},
		{"2025-05-02", []string{"Wide Grip"}},
		{"2025-05-03", nil},
	}
	for _, d := range days {
		_, err := db.ReplaceDailyLogDay(d.date, []models.DailyLogEntryInput{
			{
				ExerciseID:   ex.ID,
				Sets:         []models.DailyLogSetInput{{Reps: intp(10), Weight: floatp(60)}},
				SelectedTags: d.tags,
			},
		})
		if err != nil {
			t.Fatalf("ReplaceDailyLogDay %s failed: %v", d.date, err)
		}
	}

	result, err := db.GetRepsAnalytics(models.AnalyticsQuery{
		ExerciseID: ex.ID, StartDate: "2025-05-01", EndDate: "2025-05-31",
		Tag: "close grip",
	})
	if err != nil {
		t.Fatalf("GetRepsAnalytics failed: %v", err)
	}
	if len(result.Points) != 1 || result.Points[0].Date != "2025-05-01" {
		t.Errorf("tag filter mismatch: got %+v", result.Points)
	}

	all, err := db.GetRepsAnalytics(models.AnalyticsQuery{
		ExerciseID: ex.ID, StartDate: "2025-05-01", EndDate: "2025-05-31",
	})
	if err != nil {
		t.Fatalf("unfiltered GetRepsAnalytics failed: %v", err)
	}
	if len(all.Points) != 3 {
		t.Errorf("expected 3 points unfiltered, got %d", len(all.Points))
	}
}

func TestGetRepsAnalyticsDateRange(t *testing.T) {
	db := setupTestDB(t)
	ex := mustCreateExercise(t, db, "Squat")

	for _, date := range []string{"2025-05-01", "2025-05-15", "2025-06-01"} {
		_, err := db.ReplaceDailyLogDay(date, []models.DailyLogEntryInput{
			{ExerciseID: ex.ID, Sets: []models.DailyLogSetInput{{Reps: intp(5), Weight: floatp(100)}}},
		})
		if err != nil {
			t.Fatalf("ReplaceDailyLogDay %s failed: %v", date, err)
		}
	}

	result, err := db.GetRepsAnalytics(models.AnalyticsQuery{
		ExerciseID: ex.ID, StartDate: "2025-05-01", EndDate: "2025-05-31",
	})
	if err != nil {
		t.Fatalf("GetRepsAnalytics failed: %v", err)
	}
	if len(result.Points) != 2 {
		t.Fatalf("range should be inclusive within May: got %d points", len(result.Points))
	}
	if result.Points[0].Date != "2025-05-01" || result.Points[1].Date != "2025-05-15" {
		t.Errorf("points not in ascending date order: %+v", result.Points)
	}
}

func TestGetRepsAnalyticsRequiresQueryFields(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRepsAnalytics(models.AnalyticsQuery{StartDate: "2025-05-01", EndDate: "2025-05-31"})
	if !validate.IsValidation(err) {
		t.Errorf("expected validation error for missing exercise, got %v", err)
	}
	_, err = db.GetRepsAnalytics(models.AnalyticsQuery{ExerciseID: 1, EndDate: "2025-05-31"})
	if !validate.IsValidation(err) {
		t.Errorf("expected validation error for missing start date, got %v", err)
	}
}
