// ABOUTME: Catalog CRUD: categories, exercises, variations, global tags.
// ABOUTME: Tag deletion cascades a text-level strip through exercise sub-options.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

// CreateCategory inserts a new category. Names are globally unique.
func (d *DB) CreateCategory(name string) (*models.Category, error) {
	parsed, err := validate.RequiredText("Category name", name)
	if err != nil {
		return nil, err
	}

	res, err := d.db.Exec("INSERT INTO categories (name) VALUES (?)", parsed)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &models.Category{ID: id, Name: parsed}, nil
}

// ListCategories returns all categories ordered by name.
func (d *DB) ListCategories() ([]models.Category, error) {
	rows, err := d.db.Query("SELECT id, name, created_at FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// AssignCategory links an exercise to a category. Duplicate assignment
// is a no-op.
func (d *DB) AssignCategory(exerciseID, categoryID int64) error {
	if _, err := validate.PositiveInt("Exercise ID", exerciseID); err != nil {
		return err
	}
	if _, err := validate.PositiveInt("Category ID", categoryID); err != nil {
		return err
	}
	_, err := d.db.Exec(`
		INSERT OR IGNORE INTO exercise_categories (exercise_id, category_id)
		VALUES (?, ?)`,
		exerciseID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("assign category: %w", err)
	}
	return nil
}

// validateExerciseInput normalizes the caller-supplied exercise fields.
func validateExerciseInput(in models.ExerciseInput, typeRequired bool) (*models.Exercise, error) {
	name, err := validate.RequiredText("Exercise name", in.Name)
	if err != nil {
		return nil, err
	}

	var exerciseType string
	if typeRequired {
		exerciseType, err = validate.RequiredText("Exercise type", in.Type)
		if err != nil {
			return nil, err
		}
	} else {
		exerciseType = "general"
		if t := validate.OptionalText(in.Type); t != nil {
			exerciseType = *t
		}
	}

	equipment := "bodyweight"
	if e := validate.OptionalText(in.Equipment); e != nil {
		equipment = *e
	}

	muscleGroups, err := validate.TextArray("Muscle groups", in.MuscleGroups)
	if err != nil {
		return nil, err
	}
	suboptions, err := validate.TextArray("Sub-options", in.Suboptions)
	if err != nil {
		return nil, err
	}

	return &models.Exercise{
		Name:         name,
		Type:         exerciseType,
		Notes:        validate.OptionalText(in.Notes),
		Equipment:    equipment,
		MuscleGroups: muscleGroups,
		Suboptions:   suboptions,
	}, nil
}

// CreateExercise inserts a new exercise and registers its sub-options
// into the global tag vocabulary.
func (d *DB) CreateExercise(in models.ExerciseInput) (*models.Exercise, error) {
	e, err := validateExerciseInput(in, true)
	if err != nil {
		return nil, err
	}

	res, err := d.db.Exec(`
		INSERT INTO exercises (name, type, notes, equipment, muscle_groups, suboptions)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Name, e.Type, e.Notes, e.Equipment,
		validate.MarshalJSONArray(e.MuscleGroups),
		validate.MarshalJSONArray(e.Suboptions),
	)
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}

	if err := d.saveExerciseTags(e.Suboptions); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateExercise replaces the stored exercise fields wholesale.
func (d *DB) UpdateExercise(exerciseID int64, in models.ExerciseInput) (*models.Exercise, error) {
	if _, err := validate.PositiveInt("Exercise ID", exerciseID); err != nil {
		return nil, err
	}
	e, err := validateExerciseInput(in, false)
	if err != nil {
		return nil, err
	}
	e.ID = exerciseID

	res, err := d.db.Exec(`
		UPDATE exercises
		SET name = ?, type = ?, notes = ?, equipment = ?, muscle_groups = ?, suboptions = ?
		WHERE id = ?`,
		e.Name, e.Type, e.Notes, e.Equipment,
		validate.MarshalJSONArray(e.MuscleGroups),
		validate.MarshalJSONArray(e.Suboptions),
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}

	if err := d.saveExerciseTags(e.Suboptions); err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}
	if affected == 0 {
		return nil, ErrExerciseNotFound
	}
	return e, nil
}

// DeleteExercise removes an exercise. Variations, category links, group
// slots and their dependent sets/records go with it by foreign-key
// cascade.
func (d *DB) DeleteExercise(exerciseID int64) error {
	if _, err := validate.PositiveInt("Exercise ID", exerciseID); err != nil {
		return err
	}

	res, err := d.db.Exec("DELETE FROM exercises WHERE id = ?", exerciseID)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// ListExercises returns all exercises with comma-aggregated category
// names and their variations.
func (d *DB) ListExercises() ([]models.Exercise, error) {
	rows, err := d.db.Query(`
		SELECT
			e.id, e.name, e.type, e.notes, e.equipment,
			e.muscle_groups, e.suboptions, e.created_at,
			COALESCE(GROUP_CONCAT(DISTINCT c.name), '') AS categories
		FROM exercises e
		LEFT JOIN exercise_categories ec ON ec.exercise_id = e.id
		LEFT JOIN categories c ON c.id = ec.category_id
		GROUP BY e.id
		ORDER BY e.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var (
			e                                   models.Exercise
			notes                               sql.NullString
			muscleGroups, suboptions, catenated string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &notes, &e.Equipment,
			&muscleGroups, &suboptions, &e.CreatedAt, &catenated); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if notes.Valid {
			e.Notes = &notes.String
		}
		e.MuscleGroups = validate.ParseJSONArray(muscleGroups)
		e.Suboptions = validate.ParseJSONArray(suboptions)
		e.Categories = []string{}
		if catenated != "" {
			e.Categories = strings.Split(catenated, ",")
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exercises {
		variations, err := d.listVariations(exercises[i].ID)
		if err != nil {
			return nil, err
		}
		exercises[i].Variations = variations
	}
	return exercises, nil
}

// listVariations returns an exercise's variations ordered by name.
func (d *DB) listVariations(exerciseID int64) ([]models.Variation, error) {
	rows, err := d.db.Query(`
		SELECT id, exercise_id, name, grip, stance, notes, created_at
		FROM exercise_variations
		WHERE exercise_id = ?
		ORDER BY name ASC`,
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	defer rows.Close()

	variations := []models.Variation{}
	for rows.Next() {
		var (
			v                   models.Variation
			grip, stance, notes sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.ExerciseID, &v.Name, &grip, &stance, &notes, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan variation: %w", err)
		}
		if grip.Valid {
			v.Grip = &grip.String
		}
		if stance.Valid {
			v.Stance = &stance.String
		}
		if notes.Valid {
			v.Notes = &notes.String
		}
		variations = append(variations, v)
	}
	return variations, rows.Err()
}

// CreateVariation adds a variation under an existing exercise.
func (d *DB) CreateVariation(in models.VariationInput) (*models.Variation, error) {
	if _, err := validate.PositiveInt("Exercise ID", in.ExerciseID); err != nil {
		return nil, err
	}
	name, err := validate.RequiredText("Variation name", in.Name)
	if err != nil {
		return nil, err
	}

	var exists int
	err = d.db.QueryRow("SELECT COUNT(*) FROM exercises WHERE id = ?", in.ExerciseID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check exercise: %w", err)
	}
	if exists == 0 {
		return nil, ErrExerciseNotFound
	}

	v := &models.Variation{
		ExerciseID: in.ExerciseID,
		Name:       name,
		Grip:       validate.OptionalText(in.Grip),
		Stance:     validate.OptionalText(in.Stance),
		Notes:      validate.OptionalText(in.Notes),
	}
	res, err := d.db.Exec(`
		INSERT INTO exercise_variations (exercise_id, name, grip, stance, notes)
		VALUES (?, ?, ?, ?, ?)`,
		v.ExerciseID, v.Name, v.Grip, v.Stance, v.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("create variation: %w", err)
	}
	v.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create variation: %w", err)
	}
	return v, nil
}

// CreateExerciseTag upserts a tag into the global vocabulary by
// case-insensitive name and returns the stored row.
func (d *DB) CreateExerciseTag(name string) (*models.ExerciseTag, error) {
	parsed, err := validate.RequiredText("Tag name", name)
	if err != nil {
		return nil, err
	}
	if err := d.saveExerciseTags([]string{parsed}); err != nil {
		return nil, err
	}

	var tag models.ExerciseTag
	err = d.db.QueryRow(`
		SELECT id, name, created_at
		FROM exercise_tags
		WHERE name = ? COLLATE NOCASE
		LIMIT 1`,
		parsed,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get exercise tag: %w", err)
	}
	return &tag, nil
}

// ListExerciseTags returns the vocabulary ordered case-insensitively.
func (d *DB) ListExerciseTags() ([]models.ExerciseTag, error) {
	rows, err := d.db.Query(`
		SELECT id, name, created_at
		FROM exercise_tags
		ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, fmt.Errorf("list exercise tags: %w", err)
	}
	defer rows.Close()

	tags := []models.ExerciseTag{}
	for rows.Next() {
		var tag models.ExerciseTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exercise tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// DeleteExerciseTag removes the vocabulary entry and strips the tag
// text, case-insensitively, from every exercise's stored sub-option
// list in one transaction.
func (d *DB) DeleteExerciseTag(name string) error {
	parsed, err := validate.RequiredText("Tag name", name)
	if err != nil {
		return err
	}
	tagKey := strings.ToLower(parsed)

	type suboptionRow struct {
		id  int64
		raw string
	}
	rows, err := d.db.Query(`
		SELECT id, suboptions
		FROM exercises
		WHERE suboptions IS NOT NULL AND TRIM(suboptions) <> ''`)
	if err != nil {
		return fmt.Errorf("list suboptions: %w", err)
	}
	var stored []suboptionRow
	for rows.Next() {
		var r suboptionRow
		if err := rows.Scan(&r.id, &r.raw); err != nil {
			rows.Close()
			return fmt.Errorf("scan suboptions: %w", err)
		}
		stored = append(stored, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM exercise_tags WHERE name = ? COLLATE NOCASE", parsed); err != nil {
			return fmt.Errorf("delete exercise tag: %w", err)
		}

		for _, r := range stored {
			current := validate.ParseJSONArray(r.raw)
			if len(current) == 0 {
				continue
			}
			filtered := make([]string, 0, len(current))
			for _, value := range current {
				if strings.ToLower(value) != tagKey {
					filtered = append(filtered, value)
				}
			}
			if len(filtered) == len(current) {
				continue
			}
			_, err := tx.Exec("UPDATE exercises SET suboptions = ? WHERE id = ?",
				validate.MarshalJSONArray(filtered), r.id)
			if err != nil {
				return fmt.Errorf("strip tag from exercise %d: %w", r.id, err)
			}
		}
		return nil
	})
}

// saveExerciseTags upserts each tag into the vocabulary inside one
// transaction. Input passes through the bounded text-array validator.
func (d *DB) saveExerciseTags(tagNames []string) error {
	tags, err := validate.TextArray("Sub-options", tagNames)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	return d.withTx(func(tx *sql.Tx) error {
		for _, tag := range tags {
			if _, err := tx.Exec("INSERT OR IGNORE INTO exercise_tags (name) VALUES (?)", tag); err != nil {
				return fmt.Errorf("upsert exercise tag %q: %w", tag, err)
			}
		}
		return nil
	})
}
