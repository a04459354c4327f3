// ABOUTME: Template (group) store: groups and their ordered exercise slots.
// ABOUTME: Group deletion runs an explicit ordered cascade in one transaction.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

// CreateGroup inserts a new template group. Names are globally unique.
func (d *DB) CreateGroup(name, description string) (*models.Group, error) {
	parsed, err := validate.RequiredText("Group name", name)
	if err != nil {
		return nil, err
	}
	g := &models.Group{Name: parsed, Description: validate.OptionalText(description)}

	res, err := d.db.Exec("INSERT INTO groups (name, description) VALUES (?, ?)", g.Name, g.Description)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	g.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return g, nil
}

// ListGroups returns all groups ordered by name.
func (d *DB) ListGroups() ([]models.Group, error) {
	rows, err := d.db.Query("SELECT id, name, description, created_at FROM groups ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// GetGroupDetail returns a group with its ordered exercise slots joined
// with exercise and variation names.
func (d *DB) GetGroupDetail(groupID int64) (*models.GroupDetail, error) {
	if _, err := validate.PositiveInt("Group ID", groupID); err != nil {
		return nil, err
	}

	group, err := d.getGroup(groupID)
	if err != nil {
		return nil, err
	}
	items, err := d.listGroupExercises(groupID)
	if err != nil {
		return nil, err
	}
	return &models.GroupDetail{Group: *group, Items: items}, nil
}

// AddGroupExercise adds a slot to a group. A supplied variation must
// exist and belong to the specified exercise. Target sets defaults to 3
// and the order index to current-max-plus-one, computed in the same
// transaction as the insert to avoid gaps.
func (d *DB) AddGroupExercise(in models.GroupExerciseInput) (int64, error) {
	if _, err := validate.PositiveInt("Group ID", in.GroupID); err != nil {
		return 0, err
	}
	if _, err := validate.PositiveInt("Exercise ID", in.ExerciseID); err != nil {
		return 0, err
	}

	var variationID *int64
	if in.VariationID != nil {
		if _, err := validate.PositiveInt("Variation ID", *in.VariationID); err != nil {
			return 0, err
		}
		variationID = in.VariationID

		var owner int64
		err := d.db.QueryRow("SELECT exercise_id FROM exercise_variations WHERE id = ?", *variationID).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrVariationNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("check variation: %w", err)
		}
		if owner != in.ExerciseID {
			return 0, ErrVariationMismatch
		}
	}

	targetSets := in.TargetSets
	if targetSets == 0 {
		targetSets = 3
	}
	if _, err := validate.PositiveInt("Target sets", int64(targetSets)); err != nil {
		return 0, err
	}
	targetReps := validate.OptionalText(in.TargetReps)

	var id int64
	err := d.withTx(func(tx *sql.Tx) error {
		orderIndex := in.OrderIndex
		if orderIndex == 0 {
			err := tx.QueryRow(`
				SELECT COALESCE(MAX(order_index), 0) + 1
				FROM group_exercises
				WHERE group_id = ?`,
				in.GroupID,
			).Scan(&orderIndex)
			if err != nil {
				return fmt.Errorf("next order index: %w", err)
			}
		} else if _, err := validate.PositiveInt("Order index", int64(orderIndex)); err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO group_exercises (group_id, exercise_id, variation_id, target_sets, target_reps, order_index)
			VALUES (?, ?, ?, ?, ?, ?)`,
			in.GroupID, in.ExerciseID, variationID, targetSets, targetReps, orderIndex,
		)
		if err != nil {
			return fmt.Errorf("add group exercise: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("add group exercise: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RemoveGroupExercise deletes one slot by id.
func (d *DB) RemoveGroupExercise(groupExerciseID int64) error {
	if _, err := validate.PositiveInt("Group exercise ID", groupExerciseID); err != nil {
		return err
	}
	res, err := d.db.Exec("DELETE FROM group_exercises WHERE id = ?", groupExerciseID)
	if err != nil {
		return fmt.Errorf("remove group exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove group exercise: %w", err)
	}
	if affected == 0 {
		return ErrGroupExerciseNotFound
	}
	return nil
}

// DeleteGroup removes a group and everything created from it. The
// deletion order matters: workouts reference the group via RESTRICT, so
// dependents go first, all inside one transaction.
func (d *DB) DeleteGroup(groupID int64) error {
	if _, err := validate.PositiveInt("Group ID", groupID); err != nil {
		return err
	}
	if _, err := d.getGroup(groupID); err != nil {
		return err
	}

	return d.withTx(func(tx *sql.Tx) error {
		steps := []string{
			`DELETE FROM workout_sets
				WHERE workout_id IN (SELECT id FROM workouts WHERE group_id = ?)`,
			`DELETE FROM workouts WHERE group_id = ?`,
			`DELETE FROM group_exercises WHERE group_id = ?`,
			`DELETE FROM groups WHERE id = ?`,
		}
		for _, stmt := range steps {
			if _, err := tx.Exec(stmt, groupID); err != nil {
				return fmt.Errorf("delete group: %w", err)
			}
		}
		return nil
	})
}

// ClearAllTemplates wipes all template data and everything recorded
// under it, in dependency order.
func (d *DB) ClearAllTemplates() error {
	return d.withTx(func(tx *sql.Tx) error {
		for _, table := range []string{"workout_sets", "workouts", "group_exercises", "groups"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// getGroup fetches one group row.
func (d *DB) getGroup(groupID int64) (*models.Group, error) {
	row := d.db.QueryRow("SELECT id, name, description, created_at FROM groups WHERE id = ?", groupID)

	var g models.Group
	var description sql.NullString
	err := row.Scan(&g.ID, &g.Name, &description, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if description.Valid {
		g.Description = &description.String
	}
	return &g, nil
}

// listGroupExercises returns a group's slots in order.
func (d *DB) listGroupExercises(groupID int64) ([]models.GroupExercise, error) {
	rows, err := d.db.Query(`
		SELECT
			ge.id, ge.group_id, ge.exercise_id, ge.variation_id,
			ge.target_sets, ge.target_reps, ge.order_index,
			e.name AS exercise_name,
			e.type AS exercise_type,
			ev.name AS variation_name,
			ev.grip, ev.stance
		FROM group_exercises ge
		JOIN exercises e ON e.id = ge.exercise_id
		LEFT JOIN exercise_variations ev ON ev.id = ge.variation_id
		WHERE ge.group_id = ?
		ORDER BY ge.order_index ASC, ge.id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list group exercises: %w", err)
	}
	defer rows.Close()

	items := []models.GroupExercise{}
	for rows.Next() {
		var (
			ge                                      models.GroupExercise
			variationID                             sql.NullInt64
			targetReps, variationName, grip, stance sql.NullString
		)
		err := rows.Scan(&ge.ID, &ge.GroupID, &ge.ExerciseID, &variationID,
			&ge.TargetSets, &targetReps, &ge.OrderIndex,
			&ge.ExerciseName, &ge.ExerciseType, &variationName, &grip, &stance)
		if err != nil {
			return nil, fmt.Errorf("scan group exercise: %w", err)
		}
		if variationID.Valid {
			ge.VariationID = &variationID.Int64
		}
		if targetReps.Valid {
			ge.TargetReps = &targetReps.String
		}
		if variationName.Valid {
			ge.VariationName = &variationName.String
		}
		if grip.Valid {
			ge.Grip = &grip.String
		}
		if stance.Valid {
			ge.Stance = &stance.String
		}
		items = append(items, ge)
	}
	return items, rows.Err()
}

// scanGroup scans a group row from a multi-row query.
func scanGroup(rows *sql.Rows) (*models.Group, error) {
	var g models.Group
	var description sql.NullString
	if err := rows.Scan(&g.ID, &g.Name, &description, &g.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan group: %w", err)
	}
	if description.Valid {
		g.Description = &description.String
	}
	return &g, nil
}
