// ABOUTME: Catalog models: categories, exercises, variations, and the
// ABOUTME: global exercise tag vocabulary.
package models

// Category is a named grouping that exercises can be assigned to.
// Names are globally unique.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Exercise is a catalog entry. MuscleGroups and Suboptions are ordered,
// case-insensitively deduplicated string lists stored as JSON text.
type Exercise struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Notes        *string     `json:"notes"`
	Equipment    string      `json:"equipment"`
	MuscleGroups []string    `json:"muscle_groups"`
	Suboptions   []string    `json:"suboptions"`
	CreatedAt    string      `json:"created_at"`
	Categories   []string    `json:"category_names,omitempty"`
	Variations   []Variation `json:"variations,omitempty"`
}

// ExerciseInput carries the caller-supplied fields for creating or
// updating an exercise. The stored record is replaced wholesale.
type ExerciseInput struct {
	Name         string
	Type         string
	Notes        string
	Equipment    string
	MuscleGroups []string
	Suboptions   []string
}

// Variation is a named grip/stance specialization of an exercise.
// The name is unique within its exercise.
type Variation struct {
	ID         int64   `json:"id"`
	ExerciseID int64   `json:"exercise_id"`
	Name       string  `json:"name"`
	Grip       *string `json:"grip"`
	Stance     *string `json:"stance"`
	Notes      *string `json:"notes"`
	CreatedAt  string  `json:"created_at"`
}

// VariationInput carries the fields for creating a variation.
type VariationInput struct {
	ExerciseID int64
	Name       string
	Grip       string
	Stance     string
	Notes      string
}

// ExerciseTag is an entry in the global, case-insensitively unique
// sub-option vocabulary. Exercises reference tags by string value, not
// by foreign key.
type ExerciseTag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
