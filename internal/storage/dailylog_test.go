// ABOUTME: Tests for the daily log store's replace-the-day semantics.
// ABOUTME: Covers dedupe, placeholder sets, renumbering, and atomic replace.
package storage

import (
	"testing"

	"github.com/obycajnypes/logly/internal/models"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestReplaceDailyLogDay(t *testing.T) {
	db := setupTestDB(t)
	ex := mustCreateExercise(t, db, "Bench Press")

	day, err := db.ReplaceDailyLogDay("2025-04-01", []models.DailyLogEntryInput{
		{
			ExerciseID: ex.ID,
			Sets: []models.DailyLogSetInput{
				{Reps: intp(10), Weight: floatp(60)},
				{Reps: intp(8), Weight: floatp(65)},
			},
			SelectedTags: []string{"Close Grip", " close grip ", ""},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceDailyLogDay failed: %v", err)
	}
	if len(day.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(day.Entries))
	}
	entry := day.Entries[0]
	if entry.ExerciseName != "Bench Press" {
		t.Errorf("ExerciseName mismatch: got %q", entry.ExerciseName)
	}
	if len(entry.SelectedTags) != 1 || entry.SelectedTags[0] != "Close Grip" {
		t.Errorf("SelectedTags not normalized: got %v", entry.SelectedTags)
	}
	if len(entry.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(entry.Sets))
	}
	if entry.Sets[0].SetNumber != 1 || entry.Sets[1].SetNumber != 2 {
		t.Errorf("set numbers not sequential: %+v", entry.Sets)
	}
}

func TestReplaceDailyLogDayDedupesByExercise(t *testing.T) {
	db := setupTestDB(t)
	ex := mustCreateExercise(t, db, "Squat")

	day, err := db.ReplaceDailyLogDay("2025-04-02", []models.DailyLogEntryInput{
		{ExerciseID: ex.ID, Sets: []models.DailyLogSetInput{{Reps: intp(5), Weight: floatp(100)}}},
		{ExerciseID: ex.ID, Sets: []models.DailyLogSetInput{{Reps: intp(3), Weight: floatp(120)}}},
	})
	if err != nil {
		t.Fatalf("ReplaceDailyLogDay failed: %v", err)
	}
	if len(day.Entries) != 1 {
		t.Fatalf("expected duplicate exercise collapsed to 1 entry, got %d", len(day.Entries))
	}
	// First occurrence wins.
	set := day.Entries[0].Sets[0]
	if set.Reps == nil || *set.Reps != 5 {
		t.Errorf("first occurrence should win: got %+v", set)
	}
}

func TestReplaceDailyLogDayPlaceholderSet(t *testing.T) {
	db := setupTestDB(t)
	ex := mustCreateExercise(t, db, "Plank")

	day, err := db.ReplaceDailyLogDay("2025-04-03", []models.DailyLogEntryInput{
		{ExerciseID: ex.ID},
	})
	if err != nil {
		t.Fatalf("ReplaceDailyLogDay failed: %v", err)
	}
	sets := day.Entries[0].Sets
	if len(sets) != 1 {
		t.Fatalf("expected 1 placeholder set, got %d", len(sets))
	}
	if sets[0].SetNumber != 1 || sets[0].Reps != nil || sets[0].Weight != nil {
		t.Errorf("placeholder set mismatch: %+v", sets[0])
	}
}

func TestReplaceDailyLogDayReplacesWholesale(t *testing.T) {
	db := setupTestDB(t)
	bench := mustCreateExercise(t, db, "Bench Press")
	squat := mustCreateExercise(t, db, "Squat")

	if _, err := db.ReplaceDailyLogDay("2025-04-04", []models.DailyLogEntryInput{
		{ExerciseID: bench.ID, Sets: []models.DailyLogSetInput{{Reps: intp(10)}}},
	}); err != nil {
		t.Fatalf("first ReplaceDailyLogDay failed: %v", err)
	}

	day, err := db.ReplaceDailyLogDay("2025-04-04", []models.DailyLogEntryInput{
		{ExerciseID: squat.ID, Sets: []models.DailyLogSetInput{{Reps: intp(5)}}},
	})
	if err != nil {
		t.Fatalf("second ReplaceDailyLogDay failed: %v", err)
	}
	if len(day.Entries) != 1 || day.Entries[0].ExerciseID != squat.ID {
		t.Errorf("day not replaced wholesale: %+v", day.Entries)
	}

	// Other days are untouched.
	if _, err := db.ReplaceDailyLogDay("2025-04-05", nil); err != nil {
		t.Fatalf("empty ReplaceDailyLogDay failed: %v", err)
	}
	again, err := db.GetDailyLogDay("2025-04-04")
	if err != nil {
		t.Fatalf("GetDailyLogDay failed: %v", err)
	}
	if len(again.Entries) != 1 {
		t.Errorf("neighboring day affected: %+v", again.Entries)
	}
}

func TestReplaceDailyLogDayRejectsBadEntry(t *testing.T) {
	db := setupTestDB(t)
	ex := mustCreateExercise(t, db, "Row")

	if _, err := db.ReplaceDailyLogDay("2025-04-06", []models.DailyLogEntryInput{
		{ExerciseID: ex.ID, Sets: []models.DailyLogSetInput{{Reps: intp(10)}}},
	}); err != nil {
		t.Fatalf("seed ReplaceDailyLogDay failed: %v", err)
	}

	// A bad entry rejects the whole replace and leaves the day intact.
	_, err := db.ReplaceDailyLogDay("2025-04-06", []models.DailyLogEntryInput{
		{ExerciseID: 0},
	})
	if err == nil {
		t.Fatal("expected error for invalid exercise id")
	}
	day, err := db.GetDailyLogDay("2025-04-06")
	if err != nil {
		t.Fatalf("GetDailyLogDay failed: %v", err)
	}
	if len(day.Entries) != 1 {
		t.Errorf("failed replace should not modify the day: %+v", day.Entries)
	}
}

func TestGetDailyLogDayEmpty(t *testing.T) {
	db := setupTestDB(t)

	day, err := db.GetDailyLogDay("2025-04-07")
	if err != nil {
		t.Fatalf("GetDailyLogDay failed: %v", err)
	}
	if day.PerformedOn != "2025-04-07" {
		t.Errorf("PerformedOn mismatch: got %q", day.PerformedOn)
	}
	if len(day.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(day.Entries))
	}
}
