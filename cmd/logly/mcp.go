// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/obycajnypes/logly/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "logly": {
        "command": "logly",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises      List the exercise catalog
  create_exercise     Add an exercise
  list_groups         List group templates
  get_group           Get a group with its slots
  start_workout       Start a session from a template
  log_set             Log a set (updates personal records)
  finish_workout      Finish a session
  list_workouts       List recent sessions
  list_records        List personal records
  recent_sets         List recently logged sets
  get_daily_log       Get a date's daily log
  save_daily_log      Replace a date's daily log
  exercise_analytics  Per-day aggregates for an exercise
  search_foods        Search the food database
  log_food            Log a food portion for a date
  day_nutrition       A date's food logs, totals, and targets
  set_targets         Set daily kcal/protein targets

AVAILABLE RESOURCES:

  logly://dashboard   Headline counts and recent activity
  logly://today       Today's training and nutrition
  logly://records     All personal records`,
	RunE: func(cmd *cobra.Command, args []string) error {
		foods, cleanup := cfg.NewNutritionClient()
		defer cleanup()

		server, err := mcp.NewServer(repo, foods)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
