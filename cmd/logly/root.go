// ABOUTME: Root Cobra command for logly CLI.
// ABOUTME: Opens storage via PersistentPre/PostRunE for all subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obycajnypes/logly/internal/config"
	"github.com/obycajnypes/logly/internal/storage"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "logly",
	Short: "Personal fitness and nutrition tracker",
	Long: `Logly is a CLI tool for tracking workouts, daily training logs,
personal records, and nutrition.

QUICK START:

  $ logly exercise add "Bench Press" --type strength   # Build your catalog
  $ logly group add "Push Day"                         # Create a template
  $ logly group add-exercise 1 1 --sets 3 --reps 8-12  # Add a slot to it
  $ logly workout start 1                              # Start a session
  $ logly workout log 1 1 10 60                        # Log 10 reps at 60
  $ logly workout finish 1                             # Finish the session

PERSONAL RECORDS:

  Records for max reps, max weight, max volume, and estimated one-rep
  max update automatically as you log sets. A bodyweight set (weight 0)
  only tracks reps.

  $ logly records                  # All personal records
  $ logly records --exercise 1     # Records for one exercise

DAILY LOG & ANALYTICS:

  The daily log is a free-form per-day journal, independent of workout
  sessions. Saving a day replaces it wholesale.

  $ logly daily show 2025-04-01
  $ logly analytics 1 2025-04-01 2025-04-30 --tag "Wide Grip"

NUTRITION:

  Food lookups go through the kaloricketabulky.sk database and are
  cached locally.

  $ logly food search "oat"                # Find a food ID
  $ logly food log 2025-04-01 12345 150    # Log a 150 g portion
  $ logly food day 2025-04-01              # Totals vs targets
  $ logly food targets 2200 150            # Set daily targets

MCP INTEGRATION:

  Run 'logly mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "logly": { "command": "logly", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in a SQLite database under ~/.local/share/logly (or the
  data_dir from the config file at ~/.config/logly/config.json).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
