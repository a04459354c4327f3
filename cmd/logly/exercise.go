// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Covers exercises, variations, sub-option tags, and categories.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/obycajnypes/logly/internal/models"
)

var (
	exerciseType      string
	exerciseEquipment string
	exerciseNotes     string
	exerciseMuscles   []string
	exerciseSubopts   []string

	variationGrip   string
	variationStance string
	variationNotes  string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
	Long: `Manage the exercise catalog: the named movements that group
templates, workout sessions, and the daily log all reference.

An exercise carries a type (strength, cardio, mobility, ...), the
equipment it uses, the muscle groups it works, and optional sub-option
tags like grips or stances. Sub-options feed the shared tag vocabulary
and can be selected per daily-log entry.

COMMANDS:

  add         Add an exercise
  list        List the catalog
  rm          Delete an exercise (cascades to templates and logs)
  variation   Add a named variation to an exercise
  tag         Manage the shared sub-option tag vocabulary
  category    Manage categories and exercise assignments`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise",
	Long: `Add an exercise to the catalog.

Examples:
  logly exercise add "Bench Press" --type strength --equipment barbell
  logly exercise add "Pull Up" -t strength -m Lats -m Biceps -s "Wide Grip"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := repo.CreateExercise(models.ExerciseInput{
			Name:         args[0],
			Type:         exerciseType,
			Equipment:    exerciseEquipment,
			Notes:        exerciseNotes,
			MuscleGroups: exerciseMuscles,
			Suboptions:   exerciseSubopts,
		})
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", ex.Name)
		fmt.Printf("  ID: %d  type: %s  equipment: %s\n", ex.ID, ex.Type, ex.Equipment)
		if len(ex.Suboptions) > 0 {
			fmt.Printf("  sub-options: %s\n", strings.Join(ex.Suboptions, ", "))
		}
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := repo.ListExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, ex := range exercises {
			extra := ""
			if len(ex.Categories) > 0 {
				extra = faint.Sprintf(" [%s]", strings.Join(ex.Categories, ", "))
			}
			if len(ex.Variations) > 0 {
				names := make([]string, 0, len(ex.Variations))
				for _, v := range ex.Variations {
					names = append(names, v.Name)
				}
				extra += faint.Sprintf(" (%s)", strings.Join(names, ", "))
			}
			fmt.Printf("%s %s %s %s%s\n",
				faint.Sprintf("%4d", ex.ID),
				padRight(truncate(ex.Name, 28), 28),
				padRight(ex.Type, 10),
				ex.Equipment,
				extra)
		}
		return nil
	},
}

var exerciseRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete an exercise",
	Long: `Delete an exercise by ID.

CAUTION:

  This cascades: the exercise's variations, template slots, logged
  sets, records, and daily log entries are removed with it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteExercise(id); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		color.Yellow("✗ Deleted exercise %d", id)
		return nil
	},
}

var exerciseVariationCmd = &cobra.Command{
	Use:   "variation <exercise-id> <name>",
	Short: "Add a variation to an exercise",
	Long: `Add a named variation (e.g. "Close Grip") to an exercise.

Variations keep separate personal records from the base movement.

Examples:
  logly exercise variation 1 "Close Grip" --grip close
  logly exercise variation 2 "Deficit" --notes "2 inch deficit"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exerciseID, err := parseID(args[0])
		if err != nil {
			return err
		}
		v, err := repo.CreateVariation(models.VariationInput{
			ExerciseID: exerciseID,
			Name:       args[1],
			Grip:       variationGrip,
			Stance:     variationStance,
			Notes:      variationNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to add variation: %w", err)
		}
		color.Green("✓ Added variation %s", v.Name)
		fmt.Printf("  ID: %d\n", v.ID)
		return nil
	},
}

var exerciseTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage sub-option tags",
	Long: `Manage the shared sub-option tag vocabulary.

Tags are deduplicated case-insensitively; adding an existing tag in a
different casing returns the stored one. Removing a tag also strips it
from every exercise's sub-options.`,
}

var exerciseTagAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := repo.CreateExerciseTag(args[0])
		if err != nil {
			return fmt.Errorf("failed to add tag: %w", err)
		}
		color.Green("✓ Tag %s (ID %d)", tag.Name, tag.ID)
		return nil
	},
}

var exerciseTagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := repo.ListExerciseTags()
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		if len(tags) == 0 {
			fmt.Println("No tags found.")
			return nil
		}
		for _, tag := range tags {
			fmt.Printf("%s %s\n", color.New(color.Faint).Sprintf("%4d", tag.ID), tag.Name)
		}
		return nil
	},
}

var exerciseTagRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a tag",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteExerciseTag(args[0]); err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		color.Yellow("✗ Deleted tag %s", args[0])
		return nil
	},
}

var exerciseCategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage exercise categories",
}

var exerciseCategoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := repo.CreateCategory(args[0])
		if err != nil {
			return fmt.Errorf("failed to add category: %w", err)
		}
		color.Green("✓ Category %s (ID %d)", cat.Name, cat.ID)
		return nil
	},
}

var exerciseCategoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := repo.ListCategories()
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		for _, cat := range categories {
			fmt.Printf("%s %s\n", color.New(color.Faint).Sprintf("%4d", cat.ID), cat.Name)
		}
		return nil
	},
}

var exerciseCategoryAssignCmd = &cobra.Command{
	Use:   "assign <exercise-id> <category-id>",
	Short: "Assign an exercise to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exerciseID, err := parseID(args[0])
		if err != nil {
			return err
		}
		categoryID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := repo.AssignCategory(exerciseID, categoryID); err != nil {
			return fmt.Errorf("failed to assign category: %w", err)
		}
		color.Green("✓ Assigned exercise %d to category %d", exerciseID, categoryID)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseType, "type", "t", "general", "exercise type")
	exerciseAddCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "equipment (default bodyweight)")
	exerciseAddCmd.Flags().StringVar(&exerciseNotes, "notes", "", "exercise notes")
	exerciseAddCmd.Flags().StringArrayVarP(&exerciseMuscles, "muscle", "m", nil, "muscle group (repeatable)")
	exerciseAddCmd.Flags().StringArrayVarP(&exerciseSubopts, "suboption", "s", nil, "sub-option tag (repeatable)")

	exerciseVariationCmd.Flags().StringVar(&variationGrip, "grip", "", "grip descriptor")
	exerciseVariationCmd.Flags().StringVar(&variationStance, "stance", "", "stance descriptor")
	exerciseVariationCmd.Flags().StringVar(&variationNotes, "notes", "", "variation notes")

	exerciseTagCmd.AddCommand(exerciseTagAddCmd)
	exerciseTagCmd.AddCommand(exerciseTagListCmd)
	exerciseTagCmd.AddCommand(exerciseTagRmCmd)

	exerciseCategoryCmd.AddCommand(exerciseCategoryAddCmd)
	exerciseCategoryCmd.AddCommand(exerciseCategoryListCmd)
	exerciseCategoryCmd.AddCommand(exerciseCategoryAssignCmd)

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseRmCmd)
	exerciseCmd.AddCommand(exerciseVariationCmd)
	exerciseCmd.AddCommand(exerciseTagCmd)
	exerciseCmd.AddCommand(exerciseCategoryCmd)
	rootCmd.AddCommand(exerciseCmd)
}
