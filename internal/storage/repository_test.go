// ABOUTME: Tests for the catalog side of the Repository implementation.
// ABOUTME: Covers categories, exercises, variations, and the tag vocabulary.
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

var _ Repository = (*DB)(nil)

func TestCreateCategory(t *testing.T) {
	db := setupTestDB(t)

	cat, err := db.CreateCategory("  Arms  ")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if cat.Name != "Arms" {
		t.Errorf("Name mismatch: got %q, want %q", cat.Name, "Arms")
	}

	if _, err := db.CreateCategory(""); !validate.IsValidation(err) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
}

func TestCreateExerciseDefaultsAndLists(t *testing.T) {
	db := setupTestDB(t)

	ex, err := db.CreateExercise(models.ExerciseInput{
		Name:         "Bench Press",
		Type:         "strength",
		MuscleGroups: []string{"Chest", " chest ", "Triceps"},
		Suboptions:   []string{"Close Grip", "Wide Grip", "close grip"},
	})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	if ex.Equipment != "bodyweight" {
		t.Errorf("Equipment default mismatch: got %q", ex.Equipment)
	}
	if len(ex.MuscleGroups) != 2 {
		t.Errorf("MuscleGroups not deduplicated: got %v", ex.MuscleGroups)
	}
	if len(ex.Suboptions) != 2 {
		t.Errorf("Suboptions not deduplicated: got %v", ex.Suboptions)
	}

	// Sub-options feed the global tag vocabulary.
	tags, err := db.ListExerciseTags()
	if err != nil {
		t.Fatalf("ListExerciseTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("expected 2 tags from suboptions, got %d", len(tags))
	}
}

func TestCreateExerciseRequiresNameAndType(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateExercise(models.ExerciseInput{Type: "strength"}); !validate.IsValidation(err) {
		t.Errorf("expected validation error for missing name, got %v", err)
	}
	if _, err := db.CreateExercise(models.ExerciseInput{Name: "Squat"}); !validate.IsValidation(err) {
		t.Errorf("expected validation error for missing type, got %v", err)
	}
}

func TestUpdateExerciseReplacesRecord(t *testing.T) {
	db := setupTestDB(t)

	ex := mustCreateExercise(t, db, "Row")
	updated, err := db.UpdateExercise(ex.ID, models.ExerciseInput{
		Name:      "Barbell Row",
		Equipment: "barbell",
		Notes:     "strict form",
	})
	if err != nil {
		t.Fatalf("UpdateExercise failed: %v", err)
	}
	if updated.Name != "Barbell Row" {
		t.Errorf("Name mismatch: got %q", updated.Name)
	}
	if updated.Type != "general" {
		t.Errorf("Type default mismatch: got %q, want %q", updated.Type, "general")
	}
	if updated.Equipment != "barbell" {
		t.Errorf("Equipment mismatch: got %q", updated.Equipment)
	}
	if updated.Notes == nil || *updated.Notes != "strict form" {
		t.Errorf("Notes mismatch: got %v", updated.Notes)
	}

	if _, err := db.UpdateExercise(99999, models.ExerciseInput{Name: "X"}); err != ErrExerciseNotFound {
		t.Errorf("expected ErrExerciseNotFound, got %v", err)
	}
}

func TestAssignCategoryAndListExercises(t *testing.T) {
	db := setupTestDB(t)

	ex := mustCreateExercise(t, db, "Deadlift")
	cat, err := db.CreateCategory("Posterior")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if err := db.AssignCategory(ex.ID, cat.ID); err != nil {
		t.Fatalf("AssignCategory failed: %v", err)
	}
	// Re-assigning the same pair is a no-op.
	if err := db.AssignCategory(ex.ID, cat.ID); err != nil {
		t.Fatalf("repeat AssignCategory failed: %v", err)
	}

	exercises, err := db.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	var found *models.Exercise
	for i := range exercises {
		if exercises[i].ID == ex.ID {
			found = &exercises[i]
		}
	}
	if found == nil {
		t.Fatal("created exercise missing from list")
	}
	if len(found.Categories) != 1 || found.Categories[0] != "Posterior" {
		t.Errorf("Categories mismatch: got %v", found.Categories)
	}
}

func TestCreateVariation(t *testing.T) {
	db := setupTestDB(t)

	ex := mustCreateExercise(t, db, "Pulldown")
	v, err := db.CreateVariation(models.VariationInput{
		ExerciseID: ex.ID,
		Name:       "Wide Grip",
		Grip:       "overhand",
	})
	if err != nil {
		t.Fatalf("CreateVariation failed: %v", err)
	}
	if v.ExerciseID != ex.ID {
		t.Errorf("ExerciseID mismatch: got %d", v.ExerciseID)
	}
	if v.Grip == nil || *v.Grip != "overhand" {
		t.Errorf("Grip mismatch: got %v", v.Grip)
	}

	_, err = db.CreateVariation(models.VariationInput{ExerciseID: 99999, Name: "X"})
	if err != ErrExerciseNotFound {
		t.Errorf("expected ErrExerciseNotFound, got %v", err)
	}
}

func TestExerciseTagUpsertIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)

	first, err := db.CreateExerciseTag("Close Grip")
	if err != nil {
		t.Fatalf("CreateExerciseTag failed: %v", err)
	}
	second, err := db.CreateExerciseTag("close grip")
	if err != nil {
		t.Fatalf("repeat CreateExerciseTag failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same tag row, got ids %d and %d", first.ID, second.ID)
	}
	if second.Name != "Close Grip" {
		t.Errorf("stored casing should win: got %q", second.Name)
	}

	tags, err := db.ListExerciseTags()
	if err != nil {
		t.Fatalf("ListExerciseTags failed: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("expected 1 tag, got %d", len(tags))
	}
}

func TestDeleteExerciseTagStripsSuboptions(t *testing.T) {
	db := setupTestDB(t)

	ex, err := db.CreateExercise(models.ExerciseInput{
		Name:       "Bench Press",
		Type:       "strength",
		Suboptions: []string{"Close Grip", "Wide Grip"},
	})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	if err := db.DeleteExerciseTag("close grip"); err != nil {
		t.Fatalf("DeleteExerciseTag failed: %v", err)
	}

	exercises, err := db.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	for _, got := range exercises {
		if got.ID != ex.ID {
			continue
		}
		if len(got.Suboptions) != 1 || got.Suboptions[0] != "Wide Grip" {
			t.Errorf("Suboptions mismatch after tag delete: got %v", got.Suboptions)
		}
	}

	tags, err := db.ListExerciseTags()
	if err != nil {
		t.Fatalf("ListExerciseTags failed: %v", err)
	}
	for _, tag := range tags {
		if tag.Name == "Close Grip" {
			t.Error("deleted tag still present in vocabulary")
		}
	}
}

func TestDeleteExercise(t *testing.T) {
	db := setupTestDB(t)

	ex := mustCreateExercise(t, db, "Curl")
	if err := db.DeleteExercise(ex.ID); err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}
	if err := db.DeleteExercise(ex.ID); err != ErrExerciseNotFound {
		t.Errorf("expected ErrExerciseNotFound, got %v", err)
	}
}

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "logly-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "logly.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func mustCreateExercise(t *testing.T, db *DB, name string) *models.Exercise {
	t.Helper()
	ex, err := db.CreateExercise(models.ExerciseInput{Name: name, Type: "strength"})
	if err != nil {
		t.Fatalf("CreateExercise %q failed: %v", name, err)
	}
	return ex
}
