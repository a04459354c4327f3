// ABOUTME: CLI commands for workout sessions.
// ABOUTME: Start, log sets, finish, and browse session history.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/obycajnypes/logly/internal/models"
)

var (
	workoutDate  string
	workoutNotes string
	workoutLimit int
	setRPE       float64
	setNotes     string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workout sessions",
	Long: `Track workout sessions performed from a group template.

A session stays active until finished; sets can only be logged into an
active session, and each set is bound to one of the group's slots.
Personal records update as sets are logged.

WORKFLOW:

  1. Start from a template:  logly workout start 1
  2. Log sets per slot:      logly workout log 1 2 10 60
  3. Finish:                 logly workout finish 1

COMMANDS:

  start    Start a session from a group template
  log      Log a set (workout, slot, reps, optional weight)
  finish   Finish a session
  list     List recent sessions
  show     Show a session with its sets
  active   List active sessions`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start <group-id>",
	Short: "Start a workout from a group template",
	Long: `Start a new workout session from a group template.

The date defaults to today.

Examples:
  logly workout start 1
  logly workout start 1 --date 2025-04-01 --notes "felt strong"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := parseID(args[0])
		if err != nil {
			return err
		}
		date := workoutDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		detail, err := repo.StartWorkout(groupID, date, workoutNotes)
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		color.Green("✓ Started %s on %s", detail.Workout.GroupName, detail.Workout.PerformedOn)
		fmt.Printf("  workout ID: %d\n", detail.Workout.ID)
		for _, item := range detail.Items {
			variation := ""
			if item.VariationName != nil {
				variation = fmt.Sprintf(" / %s", *item.VariationName)
			}
			fmt.Printf("  slot %d: %s%s (%d sets)\n", item.ID, item.ExerciseName, variation, item.TargetSets)
		}
		return nil
	},
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <workout-id> <slot-id> <reps> [weight]",
	Short: "Log a set",
	Long: `Log a set into an active workout.

The slot ID comes from 'logly workout start' or 'logly group show'.
Weight is optional; omit it (or pass 0) for bodyweight work.

Examples:
  logly workout log 1 2 10 60
  logly workout log 1 2 12          # bodyweight
  logly workout log 1 2 8 80 --rpe 9`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := parseID(args[0])
		if err != nil {
			return err
		}
		slotID, err := parseID(args[1])
		if err != nil {
			return err
		}
		reps, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid reps: %s", args[2])
		}
		weight := 0.0
		if len(args) > 3 {
			weight, err = strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid weight: %s", args[3])
			}
		}

		in := models.WorkoutSetInput{
			WorkoutID:       workoutID,
			GroupExerciseID: slotID,
			Reps:            reps,
			Weight:          weight,
			Notes:           setNotes,
		}
		if setRPE > 0 {
			in.RPE = &setRPE
		}

		logged, err := repo.LogWorkoutSet(in)
		if err != nil {
			return fmt.Errorf("failed to log set: %w", err)
		}

		if weight > 0 {
			color.Green("✓ Set %d: %d reps at %.1f", logged.SetNumber, reps, weight)
		} else {
			color.Green("✓ Set %d: %d reps", logged.SetNumber, reps)
		}
		return nil
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish <workout-id>",
	Short: "Finish a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := parseID(args[0])
		if err != nil {
			return err
		}
		detail, err := repo.FinishWorkout(workoutID)
		if err != nil {
			return fmt.Errorf("failed to finish workout: %w", err)
		}
		color.Green("✓ Finished %s (%d sets)", detail.Workout.GroupName, len(detail.Sets))
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.ListWorkouts(workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		printWorkouts(workouts)
		return nil
	},
}

var workoutActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "List active workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.ListActiveWorkouts()
		if err != nil {
			return fmt.Errorf("failed to list active workouts: %w", err)
		}
		printWorkouts(workouts)
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <workout-id>",
	Short: "Show a workout with its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := parseID(args[0])
		if err != nil {
			return err
		}
		detail, err := repo.GetWorkoutDetail(workoutID)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		w := detail.Workout
		fmt.Printf("Workout %d: %s\n", w.ID, w.GroupName)
		fmt.Printf("Date: %s  Status: %s\n", w.PerformedOn, w.Status)
		if w.Notes != nil && *w.Notes != "" {
			fmt.Printf("Notes: %s\n", *w.Notes)
		}

		if len(detail.Sets) == 0 {
			fmt.Println("No sets logged yet.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Println("\nSets:")
		for _, set := range detail.Sets {
			variation := ""
			if set.VariationName != nil {
				variation = fmt.Sprintf(" / %s", *set.VariationName)
			}
			line := fmt.Sprintf("  %s %s%s  set %d: %d reps",
				faint.Sprintf("%4d", set.ID),
				set.ExerciseName, variation,
				set.SetNumber, set.Reps)
			if set.Weight > 0 {
				line += fmt.Sprintf(" at %.1f", set.Weight)
			}
			if set.RPE != nil {
				line += faint.Sprintf(" @%.1f RPE", *set.RPE)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func printWorkouts(workouts []models.Workout) {
	if len(workouts) == 0 {
		fmt.Println("No workouts found.")
		return
	}
	faint := color.New(color.Faint)
	for _, w := range workouts {
		status := w.Status
		if w.Status == models.WorkoutActive {
			status = color.GreenString(w.Status)
		}
		fmt.Printf("%s %s %s %s\n",
			faint.Sprintf("%4d", w.ID),
			faint.Sprint(w.PerformedOn),
			padRight(truncate(w.GroupName, 24), 24),
			status)
	}
}

func init() {
	workoutStartCmd.Flags().StringVarP(&workoutDate, "date", "d", "", "workout date (YYYY-MM-DD, default today)")
	workoutStartCmd.Flags().StringVar(&workoutNotes, "notes", "", "session notes")

	workoutLogCmd.Flags().Float64Var(&setRPE, "rpe", 0, "rating of perceived exertion")
	workoutLogCmd.Flags().StringVar(&setNotes, "notes", "", "set notes")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 0, "max number of results (default 30)")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutFinishCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutActiveCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	rootCmd.AddCommand(workoutCmd)
}
