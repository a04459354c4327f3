// ABOUTME: Tests for workout group templates and their exercise slots.
// ABOUTME: Covers slot defaults, variation ownership, and cascade deletes.
package storage

import (
	"testing"

	"github.com/obycajnypes/logly/internal/models"
)

func TestCreateAndListGroups(t *testing.T) {
	db := setupTestDB(t)

	g, err := db.CreateGroup("Push A", "heavy pressing")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if g.Description == nil || *g.Description != "heavy pressing" {
		t.Errorf("Description mismatch: got %v", g.Description)
	}

	groups, err := db.ListGroups()
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Push A" {
		t.Errorf("ListGroups mismatch: got %+v", groups)
	}
}

func TestAddGroupExerciseDefaults(t *testing.T) {
	db := setupTestDB(t)

	ex := mustCreateExercise(t, db, "Bench Press")
	g, err := db.CreateGroup("Push", "")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	first, err := db.AddGroupExercise(models.GroupExerciseInput{GroupID: g.ID, ExerciseID: ex.ID})
	if err != nil {
		t.Fatalf("AddGroupExercise failed: %v", err)
	}
	second, err := db.AddGroupExercise(models.GroupExerciseInput{
		GroupID: g.ID, ExerciseID: ex.ID, TargetSets: 5, TargetReps: "8-12",
	})
	if err != nil {
		t.Fatalf("second AddGroupExercise failed: %v", err)
	}
	if first == second {
		t.Fatal("slot ids should differ")
	}

	detail, err := db.GetGroupDetail(g.ID)
	if err != nil {
		t.Fatalf("GetGroupDetail failed: %v", err)
	}
	if len(detail.Items) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(detail.Items))
	}
	if detail.Items[0].TargetSets != 3 {
		t.Errorf("TargetSets default mismatch: got %d, want 3", detail.Items[0].TargetSets)
	}
	if detail.Items[0].OrderIndex >= detail.Items[1].OrderIndex {
		t.Errorf("order indexes not sequential: %d, %d",
			detail.Items[0].OrderIndex, detail.Items[1].OrderIndex)
	}
	if detail.Items[1].TargetReps == nil || *detail.Items[1].TargetReps != "8-12" {
		t.Errorf("TargetReps mismatch: got %v", detail.Items[1].TargetReps)
	}
}

func TestAddGroupExerciseVariationOwnership(t *testing.T) {
	db := setupTestDB(t)

	bench := mustCreateExercise(t, db, "Bench Press")
	squat := mustCreateExercise(t, db, "Squat")
	v, err := db.CreateVariation(models.VariationInput{ExerciseID: squat.ID, Name: "Pause"})
	if err != nil {
		t.Fatalf("CreateVariation failed: %v", err)
	}
	g, err := db.CreateGroup("Mixed", "")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	// Variation belongs to squat, not bench.
	_, err = db.AddGroupExercise(models.GroupExerciseInput{
		GroupID: g.ID, ExerciseID: bench.ID, VariationID: &v.ID,
	})
	if err != ErrVariationMismatch {
		t.Errorf("expected ErrVariationMismatch, got %v", err)
	}

	unknown := int64(99999)
	_, err = db.AddGroupExercise(models.GroupExerciseInput{
		GroupID: g.ID, ExerciseID: squat.ID, VariationID: &unknown,
	})
	if err != ErrVariationNotFound {
		t.Errorf("expected ErrVariationNotFound, got %v", err)
	}

	if _, err := db.AddGroupExercise(models.GroupExerciseInput{
		GroupID: g.ID, ExerciseID: squat.ID, VariationID: &v.ID,
	}); err != nil {
		t.Errorf("owned variation rejected: %v", err)
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	db := setupTestDB(t)

	ex := mustCreateExercise(t, db, "Deadlift")
	g, err := db.CreateGroup("Pull", "")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	slotID, err := db.AddGroupExercise(models.GroupExerciseInput{GroupID: g.ID, ExerciseID: ex.ID})
	if err != nil {
		t.Fatalf("AddGroupExercise failed: %v", err)
	}
	detail, err := db.StartWorkout(g.ID, "2025-02-01", "")
	if err != nil {
		t.Fatalf("StartWorkout failed: %v", err)
	}
	_, err = db.LogWorkoutSet(models.WorkoutSetInput{
		WorkoutID: detail.Workout.ID, GroupExerciseID: slotID, Reps: 5, Weight: 100,
	})
	if err != nil {
		t.Fatalf("LogWorkoutSet failed: %v", err)
	}

	if err := db.DeleteGroup(g.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if _, err := db.GetGroupDetail(g.ID); err != ErrGroupNotFound {
		t.Errorf("expected ErrGroupNotFound after delete, got %v", err)
	}
	if _, err := db.GetWorkoutDetail(detail.Workout.ID); err != ErrWorkoutNotFound {
		t.Errorf("expected ErrWorkoutNotFound after group delete, got %v", err)
	}

	if err := db.DeleteGroup(g.ID); err != ErrGroupNotFound {
		t.Errorf("expected ErrGroupNotFound for repeat delete, got %v", err)
	}
}

func TestRemoveGroupExercise(t *testing.T) {
	db := setupTestDB(t)

	ex := mustCreateExercise(t, db, "Row")
	g, err := db.CreateGroup("Back", "")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	slotID, err := db.AddGroupExercise(models.GroupExerciseInput{GroupID: g.ID, ExerciseID: ex.ID})
	if err != nil {
		t.Fatalf("AddGroupExercise failed: %v", err)
	}

	if err := db.RemoveGroupExercise(slotID); err != nil {
		t.Fatalf("RemoveGroupExercise failed: %v", err)
	}
	if err := db.RemoveGroupExercise(slotID); err != ErrGroupExerciseNotFound {
		t.Errorf("expected ErrGroupExerciseNotFound, got %v", err)
	}
}

func TestClearAllTemplates(t *testing.T) {
	db := setupTestDB(t)

	ex := mustCreateExercise(t, db, "Press")
	g, err := db.CreateGroup("Shoulders", "")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := db.AddGroupExercise(models.GroupExerciseInput{GroupID: g.ID, ExerciseID: ex.ID}); err != nil {
		t.Fatalf("AddGroupExercise failed: %v", err)
	}

	if err := db.ClearAllTemplates(); err != nil {
		t.Fatalf("ClearAllTemplates failed: %v", err)
	}
	groups, err := db.ListGroups()
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups after clear, got %d", len(groups))
	}

	// The catalog survives a template wipe.
	exercises, err := db.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 1 {
		t.Errorf("exercises should survive template clear, got %d", len(exercises))
	}
}
