// ABOUTME: MCP tool implementations for the tracker.
// ABOUTME: Exposes catalog, workouts, daily logs, and nutrition operations.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/obycajnypes/logly/internal/models"
)

func (s *Server) registerTools() {
	// Catalog
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List the exercise catalog with categories and variations",
	}, s.handleListExercises)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_exercise",
		Description: "Add an exercise to the catalog",
	}, s.handleCreateExercise)

	// Templates
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_groups",
		Description: "List workout group templates",
	}, s.handleListGroups)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_group",
		Description: "Get a group template with its ordered exercise slots",
	}, s.handleGetGroup)

	// Workout sessions
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start an active workout session from a group template",
	}, s.handleStartWorkout)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Log a set in an active workout; updates personal records",
	}, s.handleLogSet)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish an active workout session",
	}, s.handleFinishWorkout)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workout sessions",
	}, s.handleListWorkouts)

	// Records and history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List personal records, optionally for one exercise",
	}, s.handleListRecords)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recent_sets",
		Description: "List recently logged sets, optionally for one exercise",
	}, s.handleRecentSets)

	// Daily log
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_daily_log",
		Description: "Get the daily log entries for a date",
	}, s.handleGetDailyLog)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_daily_log",
		Description: "Replace a date's daily log entries wholesale",
	}, s.handleSaveDailyLog)

	// Analytics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exercise_analytics",
		Description: "Per-day reps/weight/volume aggregates for an exercise over a date range",
	}, s.handleExerciseAnalytics)

	// Nutrition
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_foods",
		Description: "Search the food database by name",
	}, s.handleSearchFoods)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_food",
		Description: "Look up a food's nutrition for a portion and record it for a date",
	}, s.handleLogFood)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "day_nutrition",
		Description: "Get a date's food logs, totals, and targets",
	}, s.handleDayNutrition)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_targets",
		Description: "Set daily kcal and protein targets",
	}, s.handleSetTargets)
}

var errNoFoodClient = errors.New("food database client is not configured")

// Tool input/output types

type createExerciseInput struct {
	Name         string   `json:"name" jsonschema:"Exercise name"`
	Type         string   `json:"type" jsonschema:"Exercise type (strength, cardio, mobility, ...)"`
	Equipment    string   `json:"equipment,omitempty" jsonschema:"Equipment, defaults to bodyweight"`
	Notes        string   `json:"notes,omitempty" jsonschema:"Optional notes"`
	MuscleGroups []string `json:"muscle_groups,omitempty" jsonschema:"Muscle groups worked"`
	Suboptions   []string `json:"suboptions,omitempty" jsonschema:"Sub-option tags (grips, stances, ...)"`
}

type getGroupInput struct {
	GroupID int64 `json:"group_id" jsonschema:"Group template ID"`
}

type startWorkoutInput struct {
	GroupID     int64  `json:"group_id" jsonschema:"Group template ID"`
	PerformedOn string `json:"performed_on" jsonschema:"Workout date (YYYY-MM-DD)"`
	Notes       string `json:"notes,omitempty" jsonschema:"Optional session notes"`
}

type logSetInput struct {
	WorkoutID       int64    `json:"workout_id" jsonschema:"Active workout ID"`
	GroupExerciseID int64    `json:"group_exercise_id" jsonschema:"Template slot ID within the workout's group"`
	Reps            int      `json:"reps" jsonschema:"Repetitions performed"`
	Weight          float64  `json:"weight,omitempty" jsonschema:"Weight used, 0 for bodyweight"`
	RPE             *float64 `json:"rpe,omitempty" jsonschema:"Rating of perceived exertion"`
	Notes           string   `json:"notes,omitempty" jsonschema:"Optional set notes"`
}

type logSetOutput struct {
	ID        int64  `json:"id"`
	SetNumber int    `json:"set_number"`
	Message   string `json:"message"`
}

type workoutIDInput struct {
	WorkoutID int64 `json:"workout_id" jsonschema:"Workout ID"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 30)"`
}

type exerciseFilterInput struct {
	ExerciseID int64 `json:"exercise_id,omitempty" jsonschema:"Filter by exercise ID"`
	Limit      int   `json:"limit,omitempty" jsonschema:"Max results"`
}

type dateInput struct {
	Date string `json:"date" jsonschema:"Date (YYYY-MM-DD)"`
}

type saveDailyLogInput struct {
	Date    string                      `json:"date" jsonschema:"Date (YYYY-MM-DD)"`
	Entries []models.DailyLogEntryInput `json:"entries" jsonschema:"Full entry list for the date; replaces what is stored"`
}

type analyticsInput struct {
	ExerciseID int64  `json:"exercise_id" jsonschema:"Exercise ID"`
	StartDate  string `json:"start_date" jsonschema:"Range start (YYYY-MM-DD)"`
	EndDate    string `json:"end_date" jsonschema:"Range end (YYYY-MM-DD) inclusive"`
	Tag        string `json:"tag,omitempty" jsonschema:"Only include entries tagged with this sub-option"`
}

type searchFoodsInput struct {
	Query string `json:"query" jsonschema:"Food name to search for"`
}

type logFoodInput struct {
	Date   string  `json:"date" jsonschema:"Consumption date (YYYY-MM-DD)"`
	FoodID string  `json:"food_id" jsonschema:"Food database ID from search_foods"`
	Grams  float64 `json:"grams" jsonschema:"Portion size in grams"`
}

type setTargetsInput struct {
	TargetKcal    float64 `json:"target_kcal" jsonschema:"Daily kcal target"`
	TargetProtein float64 `json:"target_protein" jsonschema:"Daily protein target in grams"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	exercises, err := s.repo.ListExercises()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, map[string]any{"message": "No exercises found."}, nil
	}
	return nil, exercises, nil
}

func (s *Server) handleCreateExercise(ctx context.Context, req *mcp.CallToolRequest, input createExerciseInput) (*mcp.CallToolResult, any, error) {
	ex, err := s.repo.CreateExercise(models.ExerciseInput{
		Name:         input.Name,
		Type:         input.Type,
		Equipment:    input.Equipment,
		Notes:        input.Notes,
		MuscleGroups: input.MuscleGroups,
		Suboptions:   input.Suboptions,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil, ex, nil
}

func (s *Server) handleListGroups(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	groups, err := s.repo.ListGroups()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, map[string]any{"message": "No group templates found."}, nil
	}
	return nil, groups, nil
}

func (s *Server) handleGetGroup(ctx context.Context, req *mcp.CallToolRequest, input getGroupInput) (*mcp.CallToolResult, any, error) {
	detail, err := s.repo.GetGroupDetail(input.GroupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get group: %w", err)
	}
	return nil, detail, nil
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, any, error) {
	detail, err := s.repo.StartWorkout(input.GroupID, input.PerformedOn, input.Notes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start workout: %w", err)
	}
	return nil, detail, nil
}

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, logSetOutput, error) {
	logged, err := s.repo.LogWorkoutSet(models.WorkoutSetInput{
		WorkoutID:       input.WorkoutID,
		GroupExerciseID: input.GroupExerciseID,
		Reps:            input.Reps,
		Weight:          input.Weight,
		RPE:             input.RPE,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, logSetOutput{}, fmt.Errorf("failed to log set: %w", err)
	}
	return nil, logSetOutput{
		ID:        logged.ID,
		SetNumber: logged.SetNumber,
		Message:   fmt.Sprintf("Logged set %d (%d reps at %.1f)", logged.SetNumber, input.Reps, input.Weight),
	}, nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, any, error) {
	detail, err := s.repo.FinishWorkout(input.WorkoutID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to finish workout: %w", err)
	}
	return nil, detail, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	workouts, err := s.repo.ListWorkouts(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, workouts, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input exerciseFilterInput) (*mcp.CallToolResult, any, error) {
	records, err := s.repo.ListPersonalRecords(input.ExerciseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list records: %w", err)
	}
	if len(records) == 0 {
		return nil, map[string]any{"message": "No personal records found."}, nil
	}
	return nil, records, nil
}

func (s *Server) handleRecentSets(ctx context.Context, req *mcp.CallToolRequest, input exerciseFilterInput) (*mcp.CallToolResult, any, error) {
	sets, err := s.repo.ListRecentSets(input.ExerciseID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list recent sets: %w", err)
	}
	if len(sets) == 0 {
		return nil, map[string]any{"message": "No sets logged yet."}, nil
	}
	return nil, sets, nil
}

func (s *Server) handleGetDailyLog(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	day, err := s.repo.GetDailyLogDay(input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get daily log: %w", err)
	}
	return nil, day, nil
}

func (s *Server) handleSaveDailyLog(ctx context.Context, req *mcp.CallToolRequest, input saveDailyLogInput) (*mcp.CallToolResult, any, error) {
	day, err := s.repo.ReplaceDailyLogDay(input.Date, input.Entries)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save daily log: %w", err)
	}
	return nil, day, nil
}

func (s *Server) handleExerciseAnalytics(ctx context.Context, req *mcp.CallToolRequest, input analyticsInput) (*mcp.CallToolResult, any, error) {
	analytics, err := s.repo.GetRepsAnalytics(models.AnalyticsQuery{
		ExerciseID: input.ExerciseID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Tag:        input.Tag,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute analytics: %w", err)
	}
	return nil, analytics, nil
}

func (s *Server) handleSearchFoods(ctx context.Context, req *mcp.CallToolRequest, input searchFoodsInput) (*mcp.CallToolResult, any, error) {
	if s.foods == nil {
		return nil, nil, errNoFoodClient
	}
	hits, err := s.foods.Search(ctx, input.Query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search foods: %w", err)
	}
	if len(hits) == 0 {
		return nil, map[string]any{"message": "No foods found."}, nil
	}
	return nil, hits, nil
}

func (s *Server) handleLogFood(ctx context.Context, req *mcp.CallToolRequest, input logFoodInput) (*mcp.CallToolResult, any, error) {
	if s.foods == nil {
		return nil, nil, errNoFoodClient
	}
	detail, err := s.foods.Fetch(ctx, input.FoodID, input.Grams)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch food detail: %w", err)
	}

	log, err := s.repo.AddFoodLog(models.FoodLogInput{
		ConsumedOn: input.Date,
		FoodID:     detail.FoodID,
		Title:      detail.Title,
		Grams:      detail.Grams,
		Kcal:       detail.Kcal,
		Protein:    detail.Protein,
		ImageURL:   detail.ImageURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record food log: %w", err)
	}
	return nil, log, nil
}

func (s *Server) handleDayNutrition(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	logs, err := s.repo.ListFoodLogs(input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list food logs: %w", err)
	}
	summary, err := s.repo.GetDaySummary(input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to summarize day: %w", err)
	}
	targets, err := s.repo.GetCaloriesTargets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get targets: %w", err)
	}
	return nil, map[string]any{
		"logs":    logs,
		"summary": summary,
		"targets": targets,
	}, nil
}

func (s *Server) handleSetTargets(ctx context.Context, req *mcp.CallToolRequest, input setTargetsInput) (*mcp.CallToolResult, simpleOutput, error) {
	targets, err := s.repo.SetCaloriesTargets(input.TargetKcal, input.TargetProtein)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to set targets: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Targets set: %.0f kcal, %.0f g protein", targets.TargetKcal, targets.TargetProtein),
	}, nil
}
