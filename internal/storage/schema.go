// ABOUTME: SQLite schema definition, column migrations, and seed data.
// ABOUTME: Idempotent on every startup; ensureColumn is the only migration mechanism.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/obycajnypes/logly/internal/validate"
)

// DefaultCategories are seeded once, only when the category table is
// empty. A user who later deletes every category is not re-seeded.
var DefaultCategories = []string{
	"Push Day", "Pull Day", "Leg Day", "Upper", "Lower", "Full Body",
}

// Default nutrition targets seeded into the singleton row.
const (
	DefaultTargetKcal    = 2200
	DefaultTargetProtein = 150
)

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS exercise_variations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		grip TEXT,
		stance TEXT,
		notes TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(exercise_id, name),
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS exercise_categories (
		exercise_id INTEGER NOT NULL,
		category_id INTEGER NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (exercise_id, category_id),
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE,
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS group_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		variation_id INTEGER,
		target_sets INTEGER NOT NULL DEFAULT 3,
		target_reps TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE,
		FOREIGN KEY (variation_id) REFERENCES exercise_variations(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_id INTEGER NOT NULL,
		performed_on TEXT NOT NULL,
		notes TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		started_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TEXT,
		FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE RESTRICT
	);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		group_exercise_id INTEGER NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		weight REAL NOT NULL DEFAULT 0,
		rpe REAL,
		notes TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE,
		FOREIGN KEY (group_exercise_id) REFERENCES group_exercises(id) ON DELETE RESTRICT,
		UNIQUE(workout_id, group_exercise_id, set_number)
	);

	CREATE TABLE IF NOT EXISTS daily_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		performed_on TEXT NOT NULL,
		exercise_id INTEGER NOT NULL,
		selected_tags TEXT NOT NULL DEFAULT '[]',
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(performed_on, exercise_id),
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS daily_log_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		daily_log_id INTEGER NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER,
		weight REAL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(daily_log_id, set_number),
		FOREIGN KEY (daily_log_id) REFERENCES daily_logs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS calories_targets (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		target_kcal REAL NOT NULL DEFAULT 2200,
		target_protein REAL NOT NULL DEFAULT 150,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS calories_food_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		consumed_on TEXT NOT NULL,
		food_id TEXT NOT NULL,
		title TEXT NOT NULL,
		grams REAL NOT NULL,
		kcal REAL NOT NULL DEFAULT 0,
		protein REAL NOT NULL DEFAULT 0,
		image_url TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS personal_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id INTEGER NOT NULL,
		variation_id INTEGER,
		variation_key INTEGER NOT NULL DEFAULT 0,
		record_type TEXT NOT NULL,
		value REAL NOT NULL,
		achieved_on TEXT NOT NULL,
		workout_set_id INTEGER NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE,
		FOREIGN KEY (variation_id) REFERENCES exercise_variations(id) ON DELETE SET NULL,
		FOREIGN KEY (workout_set_id) REFERENCES workout_sets(id) ON DELETE CASCADE,
		UNIQUE(exercise_id, variation_key, record_type)
	);

	CREATE TABLE IF NOT EXISTS exercise_tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_group_exercises_group ON group_exercises(group_id, order_index);
	CREATE INDEX IF NOT EXISTS idx_workouts_group ON workouts(group_id, performed_on);
	CREATE INDEX IF NOT EXISTS idx_workout_sets_workout ON workout_sets(workout_id, group_exercise_id, set_number);
	CREATE INDEX IF NOT EXISTS idx_daily_logs_date ON daily_logs(performed_on, order_index);
	CREATE INDEX IF NOT EXISTS idx_daily_log_sets_log ON daily_log_sets(daily_log_id, set_number);
	CREATE INDEX IF NOT EXISTS idx_pr_exercise ON personal_records(exercise_id, variation_key, record_type);
	CREATE INDEX IF NOT EXISTS idx_exercise_tags_name ON exercise_tags(name COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_calories_food_logs_day ON calories_food_logs(consumed_on, id DESC);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return err
	}

	// Columns added after the initial release. Each declares a non-null
	// default so rows from older installations remain valid.
	migrations := []struct {
		table, column, definition string
	}{
		{"exercises", "equipment", "TEXT NOT NULL DEFAULT 'bodyweight'"},
		{"exercises", "muscle_groups", "TEXT NOT NULL DEFAULT '[]'"},
		{"exercises", "suboptions", "TEXT NOT NULL DEFAULT '[]'"},
		{"daily_logs", "selected_tags", "TEXT NOT NULL DEFAULT '[]'"},
	}
	for _, m := range migrations {
		if err := d.ensureColumn(m.table, m.column, m.definition); err != nil {
			return err
		}
	}
	return nil
}

// ensureColumn appends the column only if it is missing from the table.
func (d *DB) ensureColumn(table, column, definition string) error {
	rows, err := d.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal any
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = d.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	if err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

// seedDefaults inserts the singleton nutrition target row and, on a
// true first run only, the default categories.
func (d *DB) seedDefaults() error {
	_, err := d.db.Exec(`
		INSERT OR IGNORE INTO calories_targets (id, target_kcal, target_protein)
		VALUES (1, ?, ?)`,
		DefaultTargetKcal, DefaultTargetProtein,
	)
	if err != nil {
		return fmt.Errorf("seed calories targets: %w", err)
	}

	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	// An empty table is not enough: a user who deleted every category
	// must not get the defaults back on reopen. The table uses
	// AUTOINCREMENT, so a sqlite_sequence entry means rows existed at
	// some point even if none remain.
	var everHeld int
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_sequence WHERE name = 'categories'",
	).Scan(&everHeld)
	if err != nil {
		return fmt.Errorf("check categories seed state: %w", err)
	}
	if everHeld > 0 {
		return nil
	}

	return d.withTx(func(tx *sql.Tx) error {
		for _, name := range DefaultCategories {
			if _, err := tx.Exec("INSERT INTO categories (name) VALUES (?)", name); err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}
		}
		return nil
	})
}

// backfillExerciseTags registers every distinct sub-option already
// stored on exercises into the global tag vocabulary. Handles
// installations that predate the global-tag concept.
func (d *DB) backfillExerciseTags() error {
	rows, err := d.db.Query(`
		SELECT suboptions
		FROM exercises
		WHERE suboptions IS NOT NULL AND TRIM(suboptions) <> ''`)
	if err != nil {
		return fmt.Errorf("list suboptions: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("scan suboptions: %w", err)
		}
		tags = append(tags, validate.ParseJSONArray(raw)...)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	return d.saveExerciseTags(tags)
}
