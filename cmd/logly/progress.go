// ABOUTME: CLI commands for progress views.
// ABOUTME: Personal records, recent set history, analytics, and dashboard.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/obycajnypes/logly/internal/models"
)

var (
	recordsExercise int64
	recentExercise  int64
	recentLimit     int
	analyticsTag    string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List personal records",
	Long: `List personal records, grouped per exercise and variation.

Four record types are tracked per (exercise, variation): max reps, max
weight, max volume, and estimated one-rep max (Epley). Bodyweight sets
only feed max reps.

Examples:
  logly records                # all records
  logly records --exercise 3   # one exercise`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := repo.ListPersonalRecords(recordsExercise)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No personal records yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			name := r.ExerciseName
			if r.VariationName != nil {
				name += " / " + *r.VariationName
			}
			fmt.Printf("%s %s %s %s\n",
				padRight(truncate(name, 30), 30),
				padRight(r.RecordType, 12),
				fmt.Sprintf("%8.1f", r.Value),
				faint.Sprint(r.AchievedOn))
		}
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently logged sets",
	Long: `List recently logged sets across workouts, newest first.

Examples:
  logly recent                  # last sets, any exercise
  logly recent --exercise 3     # one exercise
  logly recent -n 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := repo.ListRecentSets(recentExercise, recentLimit)
		if err != nil {
			return fmt.Errorf("failed to list recent sets: %w", err)
		}

		if len(sets) == 0 {
			fmt.Println("No sets logged yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, set := range sets {
			name := set.ExerciseName
			if set.VariationName != nil {
				name += " / " + *set.VariationName
			}
			line := fmt.Sprintf("%s %s set %d: %d reps",
				faint.Sprint(set.PerformedOn),
				padRight(truncate(name, 28), 28),
				set.SetNumber, set.Reps)
			if set.Weight > 0 {
				line += fmt.Sprintf(" at %.1f", set.Weight)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics <exercise-id> <start> <end>",
	Short: "Per-day aggregates for an exercise",
	Long: `Per-day reps/weight/volume aggregates from the daily log for one
exercise over an inclusive date range.

Sets missing reps are skipped; volume needs both reps and weight.
Use --tag to restrict to entries where a sub-option was selected.

Examples:
  logly analytics 3 2025-04-01 2025-04-30
  logly analytics 3 2025-01-01 2025-06-30 --tag "Wide Grip"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		exerciseID, err := parseID(args[0])
		if err != nil {
			return err
		}

		analytics, err := repo.GetRepsAnalytics(models.AnalyticsQuery{
			ExerciseID: exerciseID,
			StartDate:  args[1],
			EndDate:    args[2],
			Tag:        analyticsTag,
		})
		if err != nil {
			return fmt.Errorf("failed to compute analytics: %w", err)
		}

		if len(analytics.Points) == 0 {
			fmt.Println("No daily log data in this range.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range analytics.Points {
			fmt.Printf("%s %s\n",
				faint.Sprint(p.Date),
				fmt.Sprintf("%d sets  reps %.1f avg / %d max  weight %.1f avg / %.1f max  volume %.0f max",
					p.SetsCount, p.RepsAvg, p.RepsMax, p.WeightAvg, p.WeightMax, p.VolumeMax))
		}
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show headline counts and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := repo.GetDashboard()
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		fmt.Printf("Exercises: %d  Groups: %d  Workouts: %d  Records: %d\n",
			dash.ExercisesCount, dash.GroupsCount, dash.WorkoutsCount, dash.RecordsCount)

		if len(dash.ActiveWorkouts) > 0 {
			fmt.Println("\nActive workouts:")
			printWorkouts(dash.ActiveWorkouts)
		}
		if len(dash.LatestWorkouts) > 0 {
			fmt.Println("\nLatest workouts:")
			printWorkouts(dash.LatestWorkouts)
		}
		return nil
	},
}

func init() {
	recordsCmd.Flags().Int64VarP(&recordsExercise, "exercise", "e", 0, "filter by exercise ID")

	recentCmd.Flags().Int64VarP(&recentExercise, "exercise", "e", 0, "filter by exercise ID")
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 0, "max number of results (default 40)")

	analyticsCmd.Flags().StringVarP(&analyticsTag, "tag", "t", "", "only entries with this selected tag")

	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(dashboardCmd)
}
