// ABOUTME: MCP resource implementations for the tracker.
// ABOUTME: Provides logly://dashboard, logly://today, and logly://records.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// logly://dashboard - headline counts and recent workout activity
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "logly://dashboard",
		Name:        "Tracker Dashboard",
		Description: "Catalog/template/workout/record counts plus active and latest workouts",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// logly://today - today's daily log and nutrition
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "logly://today",
		Name:        "Today's Log",
		Description: "Today's daily log entries, food logs, totals, and targets",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// logly://records - all personal records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "logly://records",
		Name:        "Personal Records",
		Description: "Best-ever values per exercise, variation, and record type",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	dash, err := s.repo.GetDashboard()
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return jsonResource("logly://dashboard", dash)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := time.Now().Format("2006-01-02")

	day, err := s.repo.GetDailyLogDay(today)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily log: %w", err)
	}
	logs, err := s.repo.ListFoodLogs(today)
	if err != nil {
		return nil, fmt.Errorf("failed to list food logs: %w", err)
	}
	summary, err := s.repo.GetDaySummary(today)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize day: %w", err)
	}
	targets, err := s.repo.GetCaloriesTargets()
	if err != nil {
		return nil, fmt.Errorf("failed to get targets: %w", err)
	}

	result := map[string]any{
		"daily_log": day,
		"food_logs": logs,
		"summary":   summary,
		"targets":   targets,
	}
	return jsonResource("logly://today", result)
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.ListPersonalRecords(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return jsonResource("logly://records", records)
}

// jsonResource marshals a value as an indented JSON resource payload.
func jsonResource(uri string, value any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
