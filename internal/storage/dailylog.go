// ABOUTME: Daily log store: free-form, date-keyed exercise scratchpad.
// ABOUTME: A day is replaced wholesale in one transaction, never patched.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

// GetDailyLogDay returns every entry for a date with its nested sets
// and selected tags. Malformed stored tag JSON degrades to an empty
// list.
func (d *DB) GetDailyLogDay(performedOn string) (*models.DailyLogDay, error) {
	date, err := validate.RequiredText("Date", performedOn)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.Query(`
		SELECT
			dl.id, dl.exercise_id, dl.selected_tags, dl.order_index,
			e.name AS exercise_name,
			e.muscle_groups, e.suboptions
		FROM daily_logs dl
		JOIN exercises e ON e.id = dl.exercise_id
		WHERE dl.performed_on = ?
		ORDER BY dl.order_index ASC, dl.id ASC`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	defer rows.Close()

	entries := []models.DailyLogEntry{}
	for rows.Next() {
		var (
			entry                                 models.DailyLogEntry
			selectedTags, muscleGroups, suboption string
		)
		err := rows.Scan(&entry.ID, &entry.ExerciseID, &selectedTags, &entry.OrderIndex,
			&entry.ExerciseName, &muscleGroups, &suboption)
		if err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		entry.SelectedTags = validate.ParseJSONArray(selectedTags)
		entry.MuscleGroups = validate.ParseJSONArray(muscleGroups)
		entry.Suboptions = validate.ParseJSONArray(suboption)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		sets, err := d.listDailyLogSets(entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Sets = sets
	}

	return &models.DailyLogDay{PerformedOn: date, Entries: entries}, nil
}

// ReplaceDailyLogDay atomically replaces a date's entries. Entries are
// deduped by exercise id with the first occurrence winning; an entry
// with no sets gets one placeholder set with null reps/weight; set
// numbers are reassigned sequentially. Returns the fresh day read.
func (d *DB) ReplaceDailyLogDay(performedOn string, rawEntries []models.DailyLogEntryInput) (*models.DailyLogDay, error) {
	date, err := validate.RequiredText("Date", performedOn)
	if err != nil {
		return nil, err
	}

	type preparedSet struct {
		setNumber int
		reps      *int
		weight    *float64
	}
	type preparedEntry struct {
		exerciseID   int64
		sets         []preparedSet
		selectedTags []string
	}

	deduped := []preparedEntry{}
	seen := make(map[int64]struct{})
	for _, raw := range rawEntries {
		exerciseID, err := validate.PositiveInt("Exercise ID", raw.ExerciseID)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[exerciseID]; ok {
			// Later duplicates for the same exercise are dropped.
			continue
		}
		seen[exerciseID] = struct{}{}

		sets := []preparedSet{}
		for i, set := range raw.Sets {
			sets = append(sets, preparedSet{
				setNumber: i + 1,
				reps:      validate.OptionalPositiveInt(set.Reps),
				weight:    validate.OptionalNonNegativeNumber(set.Weight),
			})
		}
		if len(sets) == 0 {
			sets = append(sets, preparedSet{setNumber: 1})
		}

		selectedTags, err := validate.TextArray("Selected tags", raw.SelectedTags)
		if err != nil {
			return nil, err
		}
		deduped = append(deduped, preparedEntry{
			exerciseID:   exerciseID,
			sets:         sets,
			selectedTags: selectedTags,
		})
	}

	err = d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM daily_logs WHERE performed_on = ?", date); err != nil {
			return fmt.Errorf("clear daily logs: %w", err)
		}

		for index, entry := range deduped {
			res, err := tx.Exec(`
				INSERT INTO daily_logs (performed_on, exercise_id, selected_tags, order_index)
				VALUES (?, ?, ?, ?)`,
				date, entry.exerciseID,
				validate.MarshalJSONArray(entry.selectedTags), index+1,
			)
			if err != nil {
				return fmt.Errorf("insert daily log: %w", err)
			}
			dailyLogID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("insert daily log: %w", err)
			}

			for _, set := range entry.sets {
				_, err := tx.Exec(`
					INSERT INTO daily_log_sets (daily_log_id, set_number, reps, weight)
					VALUES (?, ?, ?, ?)`,
					dailyLogID, set.setNumber, set.reps, set.weight,
				)
				if err != nil {
					return fmt.Errorf("insert daily log set: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return d.GetDailyLogDay(date)
}

// listDailyLogSets returns one entry's sets in order.
func (d *DB) listDailyLogSets(dailyLogID int64) ([]models.DailyLogSet, error) {
	rows, err := d.db.Query(`
		SELECT set_number, reps, weight
		FROM daily_log_sets
		WHERE daily_log_id = ?
		ORDER BY set_number ASC`,
		dailyLogID,
	)
	if err != nil {
		return nil, fmt.Errorf("list daily log sets: %w", err)
	}
	defer rows.Close()

	sets := []models.DailyLogSet{}
	for rows.Next() {
		var (
			s      models.DailyLogSet
			reps   sql.NullInt64
			weight sql.NullFloat64
		)
		if err := rows.Scan(&s.SetNumber, &reps, &weight); err != nil {
			return nil, fmt.Errorf("scan daily log set: %w", err)
		}
		if reps.Valid {
			v := int(reps.Int64)
			s.Reps = &v
		}
		if weight.Valid {
			s.Weight = &weight.Float64
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}
