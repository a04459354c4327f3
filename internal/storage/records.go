// ABOUTME: Personal record engine: conditional best-so-far upserts.
// ABOUTME: A record only changes when the new value strictly exceeds it.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/obycajnypes/logly/internal/models"
)

// updateRecordsForSet derives candidate records from a freshly logged
// set and upserts each one. The upsert only overwrites when the new
// value strictly exceeds the stored value, preserving monotonicity.
// The achieved-on date is the workout's performed-on date, not "now",
// so past-dated workouts keep historical accuracy.
func updateRecordsForSet(tx *sql.Tx, workoutID, groupExerciseID, setID int64, reps int, weight float64) error {
	var exerciseID int64
	var variationID sql.NullInt64
	err := tx.QueryRow(`
		SELECT exercise_id, variation_id
		FROM group_exercises
		WHERE id = ?`,
		groupExerciseID,
	).Scan(&exerciseID, &variationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get group exercise: %w", err)
	}

	var achievedOn string
	err = tx.QueryRow("SELECT performed_on FROM workouts WHERE id = ?", workoutID).Scan(&achievedOn)
	if err != nil || achievedOn == "" {
		achievedOn = time.Now().Format("2006-01-02")
	}

	// "No variation" is its own record bucket, keyed as 0.
	var variationKey int64
	var variation *int64
	if variationID.Valid {
		variationKey = variationID.Int64
		variation = &variationID.Int64
	}

	upsert := func(recordType string, value float64) error {
		_, err := tx.Exec(`
			INSERT INTO personal_records (
				exercise_id, variation_id, variation_key, record_type,
				value, achieved_on, workout_set_id, updated_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(exercise_id, variation_key, record_type)
			DO UPDATE SET
				value = excluded.value,
				achieved_on = excluded.achieved_on,
				workout_set_id = excluded.workout_set_id,
				updated_at = CURRENT_TIMESTAMP
			WHERE excluded.value > personal_records.value`,
			exerciseID, variation, variationKey, recordType, value, achievedOn, setID,
		)
		if err != nil {
			return fmt.Errorf("upsert %s record: %w", recordType, err)
		}
		return nil
	}

	if err := upsert(models.RecordMaxReps, float64(reps)); err != nil {
		return err
	}
	if weight > 0 {
		if err := upsert(models.RecordMaxWeight, weight); err != nil {
			return err
		}
		if err := upsert(models.RecordMaxVolume, weight*float64(reps)); err != nil {
			return err
		}
		if err := upsert(models.RecordEst1RM, models.EstimateOneRepMax(weight, reps)); err != nil {
			return err
		}
	}
	return nil
}

// ListPersonalRecords returns records joined with exercise and
// variation names; exerciseID 0 lists all, ordered by exercise name
// then record type.
func (d *DB) ListPersonalRecords(exerciseID int64) ([]models.PersonalRecord, error) {
	query := `
		SELECT
			pr.id, pr.exercise_id, pr.variation_id, pr.record_type,
			pr.value, pr.achieved_on, pr.updated_at,
			e.name AS exercise_name,
			ev.name AS variation_name
		FROM personal_records pr
		JOIN exercises e ON e.id = pr.exercise_id
		LEFT JOIN exercise_variations ev ON ev.id = pr.variation_id`
	args := []any{}
	if exerciseID > 0 {
		query += " WHERE pr.exercise_id = ? ORDER BY pr.record_type ASC"
		args = append(args, exerciseID)
	} else {
		query += " ORDER BY e.name ASC, pr.record_type ASC"
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	defer rows.Close()

	records := []models.PersonalRecord{}
	for rows.Next() {
		var (
			r             models.PersonalRecord
			variationID   sql.NullInt64
			variationName sql.NullString
		)
		err := rows.Scan(&r.ID, &r.ExerciseID, &variationID, &r.RecordType,
			&r.Value, &r.AchievedOn, &r.UpdatedAt, &r.ExerciseName, &variationName)
		if err != nil {
			return nil, fmt.Errorf("scan personal record: %w", err)
		}
		if variationID.Valid {
			r.VariationID = &variationID.Int64
		}
		if variationName.Valid {
			r.VariationName = &variationName.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
