// ABOUTME: Export and import of the full tracker dataset.
// ABOUTME: Supports JSON and YAML snapshots with preserved row identity.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ExportData is the full snapshot format. Rows keep their original ids
// so relationships survive a round trip into an empty database.
type ExportData struct {
	Version    string `json:"version" yaml:"version"`
	SnapshotID string `json:"snapshot_id" yaml:"snapshot_id"`
	ExportedAt string `json:"exported_at" yaml:"exported_at"`
	Tool       string `json:"tool" yaml:"tool"`

	Categories         []exportCategory      `json:"categories" yaml:"categories"`
	Exercises          []exportExercise      `json:"exercises" yaml:"exercises"`
	ExerciseCategories []exportExerciseCat   `json:"exercise_categories" yaml:"exercise_categories"`
	Variations         []exportVariation     `json:"variations" yaml:"variations"`
	ExerciseTags       []exportTag           `json:"exercise_tags" yaml:"exercise_tags"`
	Groups             []exportGroup         `json:"groups" yaml:"groups"`
	GroupExercises     []exportGroupExercise `json:"group_exercises" yaml:"group_exercises"`
	Workouts           []exportWorkout       `json:"workouts" yaml:"workouts"`
	WorkoutSets        []exportWorkoutSet    `json:"workout_sets" yaml:"workout_sets"`
	PersonalRecords    []exportRecord        `json:"personal_records" yaml:"personal_records"`
	DailyLogs          []exportDailyLog      `json:"daily_logs" yaml:"daily_logs"`
	DailyLogSets       []exportDailyLogSet   `json:"daily_log_sets" yaml:"daily_log_sets"`
	CaloriesTargets    *exportTargets        `json:"calories_targets" yaml:"calories_targets"`
	FoodLogs           []exportFoodLog       `json:"food_logs" yaml:"food_logs"`
}

type exportCategory struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type exportExercise struct {
	ID           int64   `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Type         string  `json:"type" yaml:"type"`
	Notes        *string `json:"notes" yaml:"notes"`
	Equipment    string  `json:"equipment" yaml:"equipment"`
	MuscleGroups string  `json:"muscle_groups" yaml:"muscle_groups"`
	Suboptions   string  `json:"suboptions" yaml:"suboptions"`
}

type exportExerciseCat struct {
	ExerciseID int64 `json:"exercise_id" yaml:"exercise_id"`
	CategoryID int64 `json:"category_id" yaml:"category_id"`
}

type exportVariation struct {
	ID         int64   `json:"id" yaml:"id"`
	ExerciseID int64   `json:"exercise_id" yaml:"exercise_id"`
	Name       string  `json:"name" yaml:"name"`
	Grip       *string `json:"grip" yaml:"grip"`
	Stance     *string `json:"stance" yaml:"stance"`
	Notes      *string `json:"notes" yaml:"notes"`
}

type exportTag struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type exportGroup struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
}

type exportGroupExercise struct {
	ID          int64   `json:"id" yaml:"id"`
	GroupID     int64   `json:"group_id" yaml:"group_id"`
	ExerciseID  int64   `json:"exercise_id" yaml:"exercise_id"`
	VariationID *int64  `json:"variation_id" yaml:"variation_id"`
	TargetSets  int     `json:"target_sets" yaml:"target_sets"`
	TargetReps  *string `json:"target_reps" yaml:"target_reps"`
	OrderIndex  int     `json:"order_index" yaml:"order_index"`
}

type exportWorkout struct {
	ID          int64   `json:"id" yaml:"id"`
	GroupID     int64   `json:"group_id" yaml:"group_id"`
	PerformedOn string  `json:"performed_on" yaml:"performed_on"`
	Notes       *string `json:"notes" yaml:"notes"`
	Status      string  `json:"status" yaml:"status"`
	StartedAt   string  `json:"started_at" yaml:"started_at"`
	FinishedAt  *string `json:"finished_at" yaml:"finished_at"`
}

type exportWorkoutSet struct {
	ID              int64    `json:"id" yaml:"id"`
	WorkoutID       int64    `json:"workout_id" yaml:"workout_id"`
	GroupExerciseID int64    `json:"group_exercise_id" yaml:"group_exercise_id"`
	SetNumber       int      `json:"set_number" yaml:"set_number"`
	Reps            int      `json:"reps" yaml:"reps"`
	Weight          float64  `json:"weight" yaml:"weight"`
	RPE             *float64 `json:"rpe" yaml:"rpe"`
	Notes           *string  `json:"notes" yaml:"notes"`
}

type exportRecord struct {
	ID           int64   `json:"id" yaml:"id"`
	ExerciseID   int64   `json:"exercise_id" yaml:"exercise_id"`
	VariationID  *int64  `json:"variation_id" yaml:"variation_id"`
	VariationKey int64   `json:"variation_key" yaml:"variation_key"`
	RecordType   string  `json:"record_type" yaml:"record_type"`
	Value        float64 `json:"value" yaml:"value"`
	AchievedOn   string  `json:"achieved_on" yaml:"achieved_on"`
	WorkoutSetID int64   `json:"workout_set_id" yaml:"workout_set_id"`
}

type exportDailyLog struct {
	ID           int64  `json:"id" yaml:"id"`
	PerformedOn  string `json:"performed_on" yaml:"performed_on"`
	ExerciseID   int64  `json:"exercise_id" yaml:"exercise_id"`
	SelectedTags string `json:"selected_tags" yaml:"selected_tags"`
	OrderIndex   int    `json:"order_index" yaml:"order_index"`
}

type exportDailyLogSet struct {
	ID         int64    `json:"id" yaml:"id"`
	DailyLogID int64    `json:"daily_log_id" yaml:"daily_log_id"`
	SetNumber  int      `json:"set_number" yaml:"set_number"`
	Reps       *int     `json:"reps" yaml:"reps"`
	Weight     *float64 `json:"weight" yaml:"weight"`
}

type exportTargets struct {
	TargetKcal    float64 `json:"target_kcal" yaml:"target_kcal"`
	TargetProtein float64 `json:"target_protein" yaml:"target_protein"`
}

type exportFoodLog struct {
	ID         int64   `json:"id" yaml:"id"`
	ConsumedOn string  `json:"consumed_on" yaml:"consumed_on"`
	FoodID     string  `json:"food_id" yaml:"food_id"`
	Title      string  `json:"title" yaml:"title"`
	Grams      float64 `json:"grams" yaml:"grams"`
	Kcal       float64 `json:"kcal" yaml:"kcal"`
	Protein    float64 `json:"protein" yaml:"protein"`
	ImageURL   *string `json:"image_url" yaml:"image_url"`
}

// GetAllData retrieves every table for export.
func (d *DB) GetAllData() (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		SnapshotID: uuid.NewString(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tool:       "logly",
	}

	if err := d.queryInto("SELECT id, name FROM categories ORDER BY id", func(rows *sql.Rows) error {
		var r exportCategory
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return err
		}
		data.Categories = append(data.Categories, r)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}

	err := d.queryInto(`
		SELECT id, name, type, notes, equipment, muscle_groups, suboptions
		FROM exercises ORDER BY id`, func(rows *sql.Rows) error {
		var r exportExercise
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Notes, &r.Equipment, &r.MuscleGroups, &r.Suboptions); err != nil {
			return err
		}
		data.Exercises = append(data.Exercises, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export exercises: %w", err)
	}

	err = d.queryInto("SELECT exercise_id, category_id FROM exercise_categories ORDER BY exercise_id, category_id", func(rows *sql.Rows) error {
		var r exportExerciseCat
		if err := rows.Scan(&r.ExerciseID, &r.CategoryID); err != nil {
			return err
		}
		data.ExerciseCategories = append(data.ExerciseCategories, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export exercise categories: %w", err)
	}

	err = d.queryInto("SELECT id, exercise_id, name, grip, stance, notes FROM exercise_variations ORDER BY id", func(rows *sql.Rows) error {
		var r exportVariation
		if err := rows.Scan(&r.ID, &r.ExerciseID, &r.Name, &r.Grip, &r.Stance, &r.Notes); err != nil {
			return err
		}
		data.Variations = append(data.Variations, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export variations: %w", err)
	}

	err = d.queryInto("SELECT id, name FROM exercise_tags ORDER BY id", func(rows *sql.Rows) error {
		var r exportTag
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return err
		}
		data.ExerciseTags = append(data.ExerciseTags, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export exercise tags: %w", err)
	}

	err = d.queryInto("SELECT id, name, description FROM groups ORDER BY id", func(rows *sql.Rows) error {
		var r exportGroup
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return err
		}
		data.Groups = append(data.Groups, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export groups: %w", err)
	}

	err = d.queryInto(`
		SELECT id, group_id, exercise_id, variation_id, target_sets, target_reps, order_index
		FROM group_exercises ORDER BY id`, func(rows *sql.Rows) error {
		var r exportGroupExercise
		if err := rows.Scan(&r.ID, &r.GroupID, &r.ExerciseID, &r.VariationID, &r.TargetSets, &r.TargetReps, &r.OrderIndex); err != nil {
			return err
		}
		data.GroupExercises = append(data.GroupExercises, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export group exercises: %w", err)
	}

	err = d.queryInto(`
		SELECT id, group_id, performed_on, notes, status, started_at, finished_at
		FROM workouts ORDER BY id`, func(rows *sql.Rows) error {
		var r exportWorkout
		if err := rows.Scan(&r.ID, &r.GroupID, &r.PerformedOn, &r.Notes, &r.Status, &r.StartedAt, &r.FinishedAt); err != nil {
			return err
		}
		data.Workouts = append(data.Workouts, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export workouts: %w", err)
	}

	err = d.queryInto(`
		SELECT id, workout_id, group_exercise_id, set_number, reps, weight, rpe, notes
		FROM workout_sets ORDER BY id`, func(rows *sql.Rows) error {
		var r exportWorkoutSet
		if err := rows.Scan(&r.ID, &r.WorkoutID, &r.GroupExerciseID, &r.SetNumber, &r.Reps, &r.Weight, &r.RPE, &r.Notes); err != nil {
			return err
		}
		data.WorkoutSets = append(data.WorkoutSets, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export workout sets: %w", err)
	}

	err = d.queryInto(`
		SELECT id, exercise_id, variation_id, variation_key, record_type, value, achieved_on, workout_set_id
		FROM personal_records ORDER BY id`, func(rows *sql.Rows) error {
		var r exportRecord
		if err := rows.Scan(&r.ID, &r.ExerciseID, &r.VariationID, &r.VariationKey, &r.RecordType, &r.Value, &r.AchievedOn, &r.WorkoutSetID); err != nil {
			return err
		}
		data.PersonalRecords = append(data.PersonalRecords, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export personal records: %w", err)
	}

	err = d.queryInto(`
		SELECT id, performed_on, exercise_id, selected_tags, order_index
		FROM daily_logs ORDER BY id`, func(rows *sql.Rows) error {
		var r exportDailyLog
		if err := rows.Scan(&r.ID, &r.PerformedOn, &r.ExerciseID, &r.SelectedTags, &r.OrderIndex); err != nil {
			return err
		}
		data.DailyLogs = append(data.DailyLogs, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export daily logs: %w", err)
	}

	err = d.queryInto(`
		SELECT id, daily_log_id, set_number, reps, weight
		FROM daily_log_sets ORDER BY id`, func(rows *sql.Rows) error {
		var r exportDailyLogSet
		if err := rows.Scan(&r.ID, &r.DailyLogID, &r.SetNumber, &r.Reps, &r.Weight); err != nil {
			return err
		}
		data.DailyLogSets = append(data.DailyLogSets, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export daily log sets: %w", err)
	}

	targets, err := d.GetCaloriesTargets()
	if err != nil {
		return nil, err
	}
	data.CaloriesTargets = &exportTargets{
		TargetKcal:    targets.TargetKcal,
		TargetProtein: targets.TargetProtein,
	}

	err = d.queryInto(`
		SELECT id, consumed_on, food_id, title, grams, kcal, protein, image_url
		FROM calories_food_logs ORDER BY id`, func(rows *sql.Rows) error {
		var r exportFoodLog
		if err := rows.Scan(&r.ID, &r.ConsumedOn, &r.FoodID, &r.Title, &r.Grams, &r.Kcal, &r.Protein, &r.ImageURL); err != nil {
			return err
		}
		data.FoodLogs = append(data.FoodLogs, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export food logs: %w", err)
	}

	return data, nil
}

// ImportData loads a snapshot into the database in one transaction.
// Rows keep their snapshot ids; importing over conflicting existing ids
// fails rather than silently renumbering.
func (d *DB) ImportData(data *ExportData) error {
	return d.withTx(func(tx *sql.Tx) error {
		for _, r := range data.Categories {
			if _, err := tx.Exec("INSERT INTO categories (id, name) VALUES (?, ?)", r.ID, r.Name); err != nil {
				return fmt.Errorf("import category: %w", err)
			}
		}
		for _, r := range data.Exercises {
			_, err := tx.Exec(`
				INSERT INTO exercises (id, name, type, notes, equipment, muscle_groups, suboptions)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				r.ID, r.Name, r.Type, r.Notes, r.Equipment, r.MuscleGroups, r.Suboptions)
			if err != nil {
				return fmt.Errorf("import exercise: %w", err)
			}
		}
		for _, r := range data.ExerciseCategories {
			_, err := tx.Exec(
				"INSERT INTO exercise_categories (exercise_id, category_id) VALUES (?, ?)",
				r.ExerciseID, r.CategoryID)
			if err != nil {
				return fmt.Errorf("import exercise category: %w", err)
			}
		}
		for _, r := range data.Variations {
			_, err := tx.Exec(`
				INSERT INTO exercise_variations (id, exercise_id, name, grip, stance, notes)
				VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, r.ExerciseID, r.Name, r.Grip, r.Stance, r.Notes)
			if err != nil {
				return fmt.Errorf("import variation: %w", err)
			}
		}
		for _, r := range data.ExerciseTags {
			if _, err := tx.Exec("INSERT OR IGNORE INTO exercise_tags (id, name) VALUES (?, ?)", r.ID, r.Name); err != nil {
				return fmt.Errorf("import exercise tag: %w", err)
			}
		}
		for _, r := range data.Groups {
			_, err := tx.Exec(
				"INSERT INTO groups (id, name, description) VALUES (?, ?, ?)",
				r.ID, r.Name, r.Description)
			if err != nil {
				return fmt.Errorf("import group: %w", err)
			}
		}
		for _, r := range data.GroupExercises {
			_, err := tx.Exec(`
				INSERT INTO group_exercises (id, group_id, exercise_id, variation_id, target_sets, target_reps, order_index)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				r.ID, r.GroupID, r.ExerciseID, r.VariationID, r.TargetSets, r.TargetReps, r.OrderIndex)
			if err != nil {
				return fmt.Errorf("import group exercise: %w", err)
			}
		}
		for _, r := range data.Workouts {
			_, err := tx.Exec(`
				INSERT INTO workouts (id, group_id, performed_on, notes, status, started_at, finished_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				r.ID, r.GroupID, r.PerformedOn, r.Notes, r.Status, r.StartedAt, r.FinishedAt)
			if err != nil {
				return fmt.Errorf("import workout: %w", err)
			}
		}
		for _, r := range data.WorkoutSets {
			_, err := tx.Exec(`
				INSERT INTO workout_sets (id, workout_id, group_exercise_id, set_number, reps, weight, rpe, notes)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ID, r.WorkoutID, r.GroupExerciseID, r.SetNumber, r.Reps, r.Weight, r.RPE, r.Notes)
			if err != nil {
				return fmt.Errorf("import workout set: %w", err)
			}
		}
		for _, r := range data.PersonalRecords {
			_, err := tx.Exec(`
				INSERT INTO personal_records (id, exercise_id, variation_id, variation_key, record_type, value, achieved_on, workout_set_id)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ID, r.ExerciseID, r.VariationID, r.VariationKey, r.RecordType, r.Value, r.AchievedOn, r.WorkoutSetID)
			if err != nil {
				return fmt.Errorf("import personal record: %w", err)
			}
		}
		for _, r := range data.DailyLogs {
			_, err := tx.Exec(`
				INSERT INTO daily_logs (id, performed_on, exercise_id, selected_tags, order_index)
				VALUES (?, ?, ?, ?, ?)`,
				r.ID, r.PerformedOn, r.ExerciseID, r.SelectedTags, r.OrderIndex)
			if err != nil {
				return fmt.Errorf("import daily log: %w", err)
			}
		}
		for _, r := range data.DailyLogSets {
			_, err := tx.Exec(`
				INSERT INTO daily_log_sets (id, daily_log_id, set_number, reps, weight)
				VALUES (?, ?, ?, ?, ?)`,
				r.ID, r.DailyLogID, r.SetNumber, r.Reps, r.Weight)
			if err != nil {
				return fmt.Errorf("import daily log set: %w", err)
			}
		}
		if t := data.CaloriesTargets; t != nil {
			_, err := tx.Exec(`
				INSERT INTO calories_targets (id, target_kcal, target_protein, updated_at)
				VALUES (1, ?, ?, CURRENT_TIMESTAMP)
				ON CONFLICT(id) DO UPDATE SET
					target_kcal = excluded.target_kcal,
					target_protein = excluded.target_protein,
					updated_at = CURRENT_TIMESTAMP`,
				t.TargetKcal, t.TargetProtein)
			if err != nil {
				return fmt.Errorf("import calories targets: %w", err)
			}
		}
		for _, r := range data.FoodLogs {
			_, err := tx.Exec(`
				INSERT INTO calories_food_logs (id, consumed_on, food_id, title, grams, kcal, protein, image_url)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ID, r.ConsumedOn, r.FoodID, r.Title, r.Grams, r.Kcal, r.Protein, r.ImageURL)
			if err != nil {
				return fmt.Errorf("import food log: %w", err)
			}
		}
		return nil
	})
}

// ExportJSON exports the full snapshot as indented JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports the full snapshot as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON parses a JSON snapshot and imports it.
func (d *DB) ImportJSON(data []byte) error {
	var snapshot ExportData
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return d.ImportData(&snapshot)
}

// queryInto runs a query and feeds each row to scan.
func (d *DB) queryInto(query string, scan func(*sql.Rows) error) error {
	rows, err := d.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
