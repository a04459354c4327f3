// ABOUTME: CLI commands for the free-form daily training log.
// ABOUTME: Shows a day and replaces it wholesale from a JSON file.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/obycajnypes/logly/internal/models"
)

var dailyCmd = &cobra.Command{
	Use:     "daily",
	Aliases: []string{"d"},
	Short:   "Manage the daily training log",
	Long: `The daily log is a free-form per-day journal, independent of workout
sessions and templates. Each day holds an ordered list of exercise
entries with their sets and selected sub-option tags.

Saving a day replaces its contents wholesale: whatever was stored for
that date is dropped and the supplied entries take its place. Entries
without sets get a single empty placeholder set.

COMMANDS:

  show   Print a day's entries
  save   Replace a day from a JSON entries file`,
}

var dailyShowCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show a day's entries",
	Long: `Show the daily log for a date (default today).

Examples:
  logly daily show
  logly daily show 2025-04-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().Format("2006-01-02")
		if len(args) > 0 {
			date = args[0]
		}

		day, err := repo.GetDailyLogDay(date)
		if err != nil {
			return fmt.Errorf("failed to get daily log: %w", err)
		}

		if len(day.Entries) == 0 {
			fmt.Printf("No entries for %s.\n", day.PerformedOn)
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Printf("Daily log for %s:\n", day.PerformedOn)
		for _, entry := range day.Entries {
			tags := ""
			if len(entry.SelectedTags) > 0 {
				tags = faint.Sprintf(" [%s]", strings.Join(entry.SelectedTags, ", "))
			}
			fmt.Printf("\n%s %s%s\n", faint.Sprintf("%2d.", entry.OrderIndex), entry.ExerciseName, tags)
			for _, set := range entry.Sets {
				line := fmt.Sprintf("    set %d:", set.SetNumber)
				if set.Reps != nil {
					line += fmt.Sprintf(" %d reps", *set.Reps)
				}
				if set.Weight != nil {
					line += fmt.Sprintf(" at %.1f", *set.Weight)
				}
				if set.Reps == nil && set.Weight == nil {
					line += " (empty)"
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

var dailySaveCmd = &cobra.Command{
	Use:   "save <date> <entries.json>",
	Short: "Replace a day from a JSON entries file",
	Long: `Replace a date's daily log with the entries in a JSON file.

The file holds an array of entries:

  [
    {
      "exerciseId": 3,
      "selectedTags": ["Wide Grip"],
      "sets": [{"reps": 10, "weight": 60}, {"reps": 8}]
    }
  ]

Duplicate exercises within the file are collapsed to the first
occurrence. Passing an empty array clears the day.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var entries []models.DailyLogEntryInput
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to parse entries: %w", err)
		}

		day, err := repo.ReplaceDailyLogDay(args[0], entries)
		if err != nil {
			return fmt.Errorf("failed to save daily log: %w", err)
		}

		color.Green("✓ Saved %s (%d entries)", day.PerformedOn, len(day.Entries))
		return nil
	},
}

func init() {
	dailyCmd.AddCommand(dailyShowCmd)
	dailyCmd.AddCommand(dailySaveCmd)
	rootCmd.AddCommand(dailyCmd)
}
