// ABOUTME: CLI commands for workout group templates.
// ABOUTME: Covers groups, their ordered exercise slots, and template reset.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/obycajnypes/logly/internal/models"
)

var (
	groupDescription string
	slotSets         int
	slotReps         string
	slotOrder        int
	slotVariation    int64
)

var groupCmd = &cobra.Command{
	Use:     "group",
	Aliases: []string{"g"},
	Short:   "Manage workout group templates",
	Long: `Manage group templates: reusable ordered lists of exercise slots
with target sets and reps. Workout sessions are started from a group.

WORKFLOW:

  1. Create a group:       logly group add "Push Day"
  2. Add exercise slots:   logly group add-exercise 1 3 --sets 3 --reps 8-12
  3. Inspect it:           logly group show 1
  4. Train from it:        logly workout start 1

COMMANDS:

  add              Create a group
  list             List groups
  show             Show a group with its ordered slots
  add-exercise     Add an exercise slot to a group
  remove-exercise  Remove a slot
  rm               Delete a group (cascades to its workouts)
  clear            Delete all groups and workout history`,
}

var groupAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a group template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := repo.CreateGroup(args[0], groupDescription)
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		color.Green("✓ Created group %s", group.Name)
		fmt.Printf("  ID: %d\n", group.ID)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List group templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := repo.ListGroups()
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		if len(groups) == 0 {
			fmt.Println("No groups found.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, g := range groups {
			desc := ""
			if g.Description != nil && *g.Description != "" {
				desc = faint.Sprintf(" (%s)", truncate(*g.Description, 40))
			}
			fmt.Printf("%s %s%s\n", faint.Sprintf("%4d", g.ID), g.Name, desc)
		}
		return nil
	},
}

var groupShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a group with its slots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		detail, err := repo.GetGroupDetail(id)
		if err != nil {
			return fmt.Errorf("failed to get group: %w", err)
		}

		fmt.Printf("Group: %s (ID %d)\n", detail.Group.Name, detail.Group.ID)
		if detail.Group.Description != nil && *detail.Group.Description != "" {
			fmt.Printf("Description: %s\n", *detail.Group.Description)
		}
		if len(detail.Items) == 0 {
			fmt.Println("No exercises in this group yet.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Println("\nExercises:")
		for _, item := range detail.Items {
			variation := ""
			if item.VariationName != nil {
				variation = fmt.Sprintf(" / %s", *item.VariationName)
			}
			reps := ""
			if item.TargetReps != nil {
				reps = " x " + *item.TargetReps
			}
			fmt.Printf("  %s %s%s  %d sets%s\n",
				faint.Sprintf("slot %d", item.ID),
				item.ExerciseName, variation,
				item.TargetSets, reps)
		}
		return nil
	},
}

var groupAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <group-id> <exercise-id>",
	Short: "Add an exercise slot to a group",
	Long: `Add an exercise slot to a group template.

Target sets default to 3 and the slot is appended to the end of the
order unless --order is given.

Examples:
  logly group add-exercise 1 3 --sets 4 --reps 8-12
  logly group add-exercise 1 3 --variation 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}

		in := models.GroupExerciseInput{
			GroupID:    groupID,
			ExerciseID: exerciseID,
			TargetSets: slotSets,
			TargetReps: slotReps,
			OrderIndex: slotOrder,
		}
		if slotVariation > 0 {
			in.VariationID = &slotVariation
		}

		slotID, err := repo.AddGroupExercise(in)
		if err != nil {
			return fmt.Errorf("failed to add exercise to group: %w", err)
		}
		color.Green("✓ Added exercise %d to group %d", exerciseID, groupID)
		fmt.Printf("  slot ID: %d\n", slotID)
		return nil
	},
}

var groupRemoveExerciseCmd = &cobra.Command{
	Use:   "remove-exercise <slot-id>",
	Short: "Remove a slot from its group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slotID, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := repo.RemoveGroupExercise(slotID); err != nil {
			return fmt.Errorf("failed to remove slot: %w", err)
		}
		color.Yellow("✗ Removed slot %d", slotID)
		return nil
	},
}

var groupRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a group",
	Long: `Delete a group template by ID.

CAUTION:

  Workouts performed from this group, including their logged sets, are
  deleted with it. Personal records are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteGroup(id); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		color.Yellow("✗ Deleted group %d", id)
		return nil
	},
}

var groupClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all groups and workout history",
	Long: `Delete every group template together with all workout sessions and
logged sets. The exercise catalog, personal records, daily logs, and
nutrition data are untouched.

There is no undo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.ClearAllTemplates(); err != nil {
			return fmt.Errorf("failed to clear templates: %w", err)
		}
		color.Yellow("✗ Cleared all groups and workout history")
		return nil
	},
}

func init() {
	groupAddCmd.Flags().StringVarP(&groupDescription, "description", "d", "", "group description")

	groupAddExerciseCmd.Flags().IntVar(&slotSets, "sets", 0, "target sets (default 3)")
	groupAddExerciseCmd.Flags().StringVar(&slotReps, "reps", "", "target reps, e.g. 8-12")
	groupAddExerciseCmd.Flags().IntVar(&slotOrder, "order", 0, "explicit order index")
	groupAddExerciseCmd.Flags().Int64Var(&slotVariation, "variation", 0, "variation ID")

	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupShowCmd)
	groupCmd.AddCommand(groupAddExerciseCmd)
	groupCmd.AddCommand(groupRemoveExerciseCmd)
	groupCmd.AddCommand(groupRmCmd)
	groupCmd.AddCommand(groupClearCmd)
	rootCmd.AddCommand(groupCmd)
}
