// ABOUTME: CLI commands for the nutrition ledger.
// ABOUTME: Food search, portion logging, daily/monthly totals, and targets.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/obycajnypes/logly/internal/models"
)

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"f"},
	Short:   "Track nutrition",
	Long: `Track food intake against daily kcal and protein targets.

Food lookups go through the kaloricketabulky.sk database; results are
cached locally so repeated lookups work offline.

WORKFLOW:

  1. Find a food:      logly food search "oat"
  2. Log a portion:    logly food log 2025-04-01 12345 150
  3. Check the day:    logly food day 2025-04-01

COMMANDS:

  search    Search the food database
  log       Log a portion for a date
  day       Show a date's logs and totals vs targets
  month     Show per-day totals for a month
  rm        Delete a food log entry
  targets   Show or set daily kcal/protein targets`,
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the food database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		foods, cleanup := cfg.NewNutritionClient()
		defer cleanup()

		hits, err := foods.Search(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(hits) == 0 {
			fmt.Println("No foods found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, hit := range hits {
			fmt.Printf("%s %s\n", faint.Sprint(padRight(hit.ID, 10)), hit.Title)
		}
		return nil
	},
}

var foodLogCmd = &cobra.Command{
	Use:   "log <date> <food-id> <grams>",
	Short: "Log a food portion",
	Long: `Look up a food's nutrition for a portion size and record it.

The food ID comes from 'logly food search'.

Examples:
  logly food log 2025-04-01 12345 150`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		grams, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid grams: %s", args[2])
		}

		foods, cleanup := cfg.NewNutritionClient()
		defer cleanup()

		detail, err := foods.Fetch(cmd.Context(), args[1], grams)
		if err != nil {
			return fmt.Errorf("failed to fetch food detail: %w", err)
		}

		log, err := repo.AddFoodLog(models.FoodLogInput{
			ConsumedOn: args[0],
			FoodID:     detail.FoodID,
			Title:      detail.Title,
			Grams:      detail.Grams,
			Kcal:       detail.Kcal,
			Protein:    detail.Protein,
			ImageURL:   detail.ImageURL,
		})
		if err != nil {
			return fmt.Errorf("failed to record food log: %w", err)
		}

		color.Green("✓ Logged %s", log.Title)
		fmt.Printf("  %.0f g  %.0f kcal  %.1f g protein\n", log.Grams, log.Kcal, log.Protein)
		return nil
	},
}

var foodDayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show a day's food logs and totals",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().Format("2006-01-02")
		if len(args) > 0 {
			date = args[0]
		}

		logs, err := repo.ListFoodLogs(date)
		if err != nil {
			return fmt.Errorf("failed to list food logs: %w", err)
		}
		summary, err := repo.GetDaySummary(date)
		if err != nil {
			return fmt.Errorf("failed to summarize day: %w", err)
		}
		targets, err := repo.GetCaloriesTargets()
		if err != nil {
			return fmt.Errorf("failed to get targets: %w", err)
		}

		faint := color.New(color.Faint)
		if len(logs) == 0 {
			fmt.Printf("No food logged for %s.\n", date)
		}
		for _, log := range logs {
			fmt.Printf("%s %s %s\n",
				faint.Sprintf("%4d", log.ID),
				padRight(truncate(log.Title, 32), 32),
				faint.Sprintf("%.0f g  %.0f kcal  %.1f g protein", log.Grams, log.Kcal, log.Protein))
		}

		fmt.Printf("\nTotal: %.0f / %.0f kcal  %.1f / %.0f g protein\n",
			summary.Kcal, targets.TargetKcal,
			summary.Protein, targets.TargetProtein)
		return nil
	},
}

var foodMonthCmd = &cobra.Command{
	Use:   "month <YYYY-MM>",
	Short: "Show per-day totals for a month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := repo.GetMonthSummary(args[0])
		if err != nil {
			return fmt.Errorf("failed to summarize month: %w", err)
		}

		if len(summary.Points) == 0 {
			fmt.Printf("No food logged in %s.\n", summary.Month)
			return nil
		}

		faint := color.New(color.Faint)
		for _, point := range summary.Points {
			fmt.Printf("%s %s\n",
				faint.Sprint(point.Date),
				fmt.Sprintf("%.0f kcal  %.1f g protein", point.Kcal, point.Protein))
		}
		return nil
	},
}

var foodRmCmd = &cobra.Command{
	Use:     "rm <id> <date>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a food log entry",
	Long: `Delete a food log entry by ID. The date must match the entry's
consumption date; this guards against deleting the wrong row.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		summary, err := repo.DeleteFoodLog(id, args[1])
		if err != nil {
			return fmt.Errorf("failed to delete food log: %w", err)
		}
		color.Yellow("✗ Deleted food log %d", id)
		fmt.Printf("  %s now at %.0f kcal  %.1f g protein\n", args[1], summary.Kcal, summary.Protein)
		return nil
	},
}

var foodTargetsCmd = &cobra.Command{
	Use:   "targets [kcal protein]",
	Short: "Show or set daily targets",
	Long: `Show the daily kcal/protein targets, or set them when both values
are given.

Examples:
  logly food targets             # show
  logly food targets 2200 150    # set`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("provide both kcal and protein, or neither")
		}

		if len(args) == 2 {
			kcal, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid kcal: %s", args[0])
			}
			protein, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid protein: %s", args[1])
			}
			targets, err := repo.SetCaloriesTargets(kcal, protein)
			if err != nil {
				return fmt.Errorf("failed to set targets: %w", err)
			}
			color.Green("✓ Targets set: %.0f kcal, %.0f g protein", targets.TargetKcal, targets.TargetProtein)
			return nil
		}

		targets, err := repo.GetCaloriesTargets()
		if err != nil {
			return fmt.Errorf("failed to get targets: %w", err)
		}
		fmt.Printf("Daily targets: %.0f kcal, %.0f g protein\n", targets.TargetKcal, targets.TargetProtein)
		return nil
	},
}

func init() {
	foodCmd.AddCommand(foodSearchCmd)
	foodCmd.AddCommand(foodLogCmd)
	foodCmd.AddCommand(foodDayCmd)
	foodCmd.AddCommand(foodMonthCmd)
	foodCmd.AddCommand(foodRmCmd)
	foodCmd.AddCommand(foodTargetsCmd)
	rootCmd.AddCommand(foodCmd)
}
