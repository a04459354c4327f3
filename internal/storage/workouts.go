// ABOUTME: Workout session engine: start, finish, set logging, history.
// ABOUTME: Set logging guards workout state and triggers record updates.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

// StartWorkout creates an active workout bound to a group and date and
// returns the full detail.
func (d *DB) StartWorkout(groupID int64, performedOn, notes string) (*models.WorkoutDetail, error) {
	if _, err := validate.PositiveInt("Group ID", groupID); err != nil {
		return nil, err
	}
	date, err := validate.RequiredText("Workout date", performedOn)
	if err != nil {
		return nil, err
	}

	res, err := d.db.Exec(`
		INSERT INTO workouts (group_id, performed_on, notes, status)
		VALUES (?, ?, ?, 'active')`,
		groupID, date, validate.OptionalText(notes),
	)
	if err != nil {
		return nil, fmt.Errorf("start workout: %w", err)
	}
	workoutID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("start workout: %w", err)
	}
	return d.GetWorkoutDetail(workoutID)
}

// FinishWorkout marks a workout finished and records the finish
// timestamp. Finishing an already-finished workout is a no-op; the
// detail re-read still fails for unknown ids.
func (d *DB) FinishWorkout(workoutID int64) (*models.WorkoutDetail, error) {
	if _, err := validate.PositiveInt("Workout ID", workoutID); err != nil {
		return nil, err
	}
	_, err := d.db.Exec(`
		UPDATE workouts
		SET status = 'finished', finished_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("finish workout: %w", err)
	}
	return d.GetWorkoutDetail(workoutID)
}

// GetWorkoutDetail returns a workout with its template slots and sets.
func (d *DB) GetWorkoutDetail(workoutID int64) (*models.WorkoutDetail, error) {
	if _, err := validate.PositiveInt("Workout ID", workoutID); err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`
		SELECT
			w.id, w.group_id, w.performed_on, w.notes, w.status,
			w.started_at, w.finished_at,
			g.name AS group_name
		FROM workouts w
		JOIN groups g ON g.id = w.group_id
		WHERE w.id = ?`,
		workoutID,
	)

	var (
		w                 models.Workout
		notes, finishedAt sql.NullString
	)
	err := row.Scan(&w.ID, &w.GroupID, &w.PerformedOn, &notes, &w.Status,
		&w.StartedAt, &finishedAt, &w.GroupName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	if notes.Valid {
		w.Notes = &notes.String
	}
	if finishedAt.Valid {
		w.FinishedAt = &finishedAt.String
	}

	items, err := d.listGroupExercises(w.GroupID)
	if err != nil {
		return nil, err
	}
	sets, err := d.listWorkoutSets(workoutID)
	if err != nil {
		return nil, err
	}
	return &models.WorkoutDetail{Workout: w, Items: items, Sets: sets}, nil
}

// ListWorkouts returns workouts most-recent-first with a bounded page
// size; limit 0 means the default of 30.
func (d *DB) ListWorkouts(limit int) ([]models.Workout, error) {
	if limit == 0 {
		limit = 30
	}
	if _, err := validate.PositiveInt("Limit", int64(limit)); err != nil {
		return nil, err
	}

	rows, err := d.db.Query(`
		SELECT
			w.id, w.group_id, w.performed_on, w.notes, w.status,
			w.started_at, w.finished_at,
			g.name AS group_name
		FROM workouts w
		JOIN groups g ON g.id = w.group_id
		ORDER BY w.id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// ListActiveWorkouts returns all workouts still in the active state,
// most recently started first.
func (d *DB) ListActiveWorkouts() ([]models.Workout, error) {
	rows, err := d.db.Query(`
		SELECT
			w.id, w.group_id, w.performed_on, w.notes, w.status,
			w.started_at, w.finished_at,
			g.name AS group_name
		FROM workouts w
		JOIN groups g ON g.id = w.group_id
		WHERE w.status = 'active'
		ORDER BY w.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list active workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// LogWorkoutSet validates the workout is active and owns the given
// group exercise, inserts the set with the next sequential set number,
// and updates personal records in the same transaction so reads
// immediately reflect new bests.
func (d *DB) LogWorkoutSet(in models.WorkoutSetInput) (*models.LoggedSet, error) {
	if _, err := validate.PositiveInt("Workout ID", in.WorkoutID); err != nil {
		return nil, err
	}
	if _, err := validate.PositiveInt("Group exercise ID", in.GroupExerciseID); err != nil {
		return nil, err
	}
	reps64, err := validate.PositiveInt("Reps", int64(in.Reps))
	if err != nil {
		return nil, err
	}
	reps := int(reps64)
	weight, err := validate.NonNegativeNumber("Weight", in.Weight)
	if err != nil {
		return nil, err
	}
	var rpe *float64
	if in.RPE != nil {
		parsed, err := validate.NonNegativeNumber("RPE", *in.RPE)
		if err != nil {
			return nil, err
		}
		rpe = &parsed
	}
	notes := validate.OptionalText(in.Notes)

	// Guard: workout exists, is active, and the group exercise belongs
	// to the workout's group.
	var workoutGroupID, exerciseGroupID int64
	var status string
	err = d.db.QueryRow(`
		SELECT w.group_id, w.status, ge.group_id
		FROM workouts w
		JOIN group_exercises ge ON ge.id = ?
		WHERE w.id = ?`,
		in.GroupExerciseID, in.WorkoutID,
	).Scan(&workoutGroupID, &status, &exerciseGroupID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("check workout: %w", err)
	}
	if status != models.WorkoutActive {
		return nil, ErrWorkoutFinished
	}
	if workoutGroupID != exerciseGroupID {
		return nil, ErrWorkoutGroupMismatch
	}

	logged := &models.LoggedSet{}
	err = d.withTx(func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			SELECT COALESCE(MAX(set_number), 0) + 1
			FROM workout_sets
			WHERE workout_id = ? AND group_exercise_id = ?`,
			in.WorkoutID, in.GroupExerciseID,
		).Scan(&logged.SetNumber)
		if err != nil {
			return fmt.Errorf("next set number: %w", err)
		}

		res, err := tx.Exec(`
			INSERT INTO workout_sets (workout_id, group_exercise_id, set_number, reps, weight, rpe, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			in.WorkoutID, in.GroupExerciseID, logged.SetNumber, reps, weight, rpe, notes,
		)
		if err != nil {
			return fmt.Errorf("create workout set: %w", err)
		}
		logged.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create workout set: %w", err)
		}

		return updateRecordsForSet(tx, in.WorkoutID, in.GroupExerciseID, logged.ID, reps, weight)
	})
	if err != nil {
		return nil, err
	}
	return logged, nil
}

// ListRecentSets returns the most recently logged workout sets joined
// with their names; exerciseID 0 lists across all exercises, limit 0
// means the default of 40.
func (d *DB) ListRecentSets(exerciseID int64, limit int) ([]models.RecentSet, error) {
	if limit == 0 {
		limit = 40
	}
	if _, err := validate.PositiveInt("Limit", int64(limit)); err != nil {
		return nil, err
	}

	query := `
		SELECT
			ws.id, ws.set_number, ws.reps, ws.weight, ws.rpe,
			w.performed_on,
			g.name AS group_name,
			e.id AS exercise_id,
			e.name AS exercise_name,
			ev.name AS variation_name
		FROM workout_sets ws
		JOIN workouts w ON w.id = ws.workout_id
		JOIN groups g ON g.id = w.group_id
		JOIN group_exercises ge ON ge.id = ws.group_exercise_id
		JOIN exercises e ON e.id = ge.exercise_id
		LEFT JOIN exercise_variations ev ON ev.id = ge.variation_id`
	args := []any{}
	if exerciseID > 0 {
		query += " WHERE e.id = ?"
		args = append(args, exerciseID)
	}
	query += " ORDER BY ws.id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent sets: %w", err)
	}
	defer rows.Close()

	sets := []models.RecentSet{}
	for rows.Next() {
		var (
			s             models.RecentSet
			rpe           sql.NullFloat64
			variationName sql.NullString
		)
		err := rows.Scan(&s.ID, &s.SetNumber, &s.Reps, &s.Weight, &rpe,
			&s.PerformedOn, &s.GroupName, &s.ExerciseID, &s.ExerciseName, &variationName)
		if err != nil {
			return nil, fmt.Errorf("scan recent set: %w", err)
		}
		if rpe.Valid {
			s.RPE = &rpe.Float64
		}
		if variationName.Valid {
			s.VariationName = &variationName.String
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// GetDashboard returns headline counts plus active and latest workouts.
func (d *DB) GetDashboard() (*models.Dashboard, error) {
	var dash models.Dashboard
	err := d.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM exercises),
			(SELECT COUNT(*) FROM groups),
			(SELECT COUNT(*) FROM workouts),
			(SELECT COUNT(*) FROM personal_records)`,
	).Scan(&dash.ExercisesCount, &dash.GroupsCount, &dash.WorkoutsCount, &dash.RecordsCount)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	if dash.ActiveWorkouts, err = d.ListActiveWorkouts(); err != nil {
		return nil, err
	}
	if dash.LatestWorkouts, err = d.ListWorkouts(5); err != nil {
		return nil, err
	}
	return &dash, nil
}

// listWorkoutSets returns a workout's sets ordered by slot and number.
func (d *DB) listWorkoutSets(workoutID int64) ([]models.WorkoutSet, error) {
	rows, err := d.db.Query(`
		SELECT
			ws.id, ws.workout_id, ws.group_exercise_id, ws.set_number,
			ws.reps, ws.weight, ws.rpe, ws.notes, ws.created_at,
			e.id AS exercise_id,
			e.name AS exercise_name,
			ev.id AS variation_id,
			ev.name AS variation_name
		FROM workout_sets ws
		JOIN group_exercises ge ON ge.id = ws.group_exercise_id
		JOIN exercises e ON e.id = ge.exercise_id
		LEFT JOIN exercise_variations ev ON ev.id = ge.variation_id
		WHERE ws.workout_id = ?
		ORDER BY ws.group_exercise_id ASC, ws.set_number ASC`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("list workout sets: %w", err)
	}
	defer rows.Close()

	sets := []models.WorkoutSet{}
	for rows.Next() {
		var (
			s                    models.WorkoutSet
			rpe                  sql.NullFloat64
			notes, variationName sql.NullString
			variationID          sql.NullInt64
		)
		err := rows.Scan(&s.ID, &s.WorkoutID, &s.GroupExerciseID, &s.SetNumber,
			&s.Reps, &s.Weight, &rpe, &notes, &s.CreatedAt,
			&s.ExerciseID, &s.ExerciseName, &variationID, &variationName)
		if err != nil {
			return nil, fmt.Errorf("scan workout set: %w", err)
		}
		if rpe.Valid {
			s.RPE = &rpe.Float64
		}
		if notes.Valid {
			s.Notes = &notes.String
		}
		if variationID.Valid {
			s.VariationID = &variationID.Int64
		}
		if variationName.Valid {
			s.VariationName = &variationName.String
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// scanWorkouts scans workout rows joined with the group name.
func scanWorkouts(rows *sql.Rows) ([]models.Workout, error) {
	workouts := []models.Workout{}
	for rows.Next() {
		var (
			w                 models.Workout
			notes, finishedAt sql.NullString
		)
		err := rows.Scan(&w.ID, &w.GroupID, &w.PerformedOn, &notes, &w.Status,
			&w.StartedAt, &finishedAt, &w.GroupName)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		if notes.Valid {
			w.Notes = &notes.String
		}
		if finishedAt.Valid {
			w.FinishedAt = &finishedAt.String
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
