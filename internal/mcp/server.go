// ABOUTME: MCP server setup for the fitness and nutrition tracker.
// ABOUTME: Wraps MCP server with storage Repository and food client access.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/obycajnypes/logly/internal/nutrition"
	"github.com/obycajnypes/logly/internal/storage"
)

// Server wraps the MCP server with storage and food database access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	foods     *nutrition.Client
}

// NewServer creates a new MCP server with the given storage and food
// client. The food client may be nil; nutrition lookup tools then
// report an error to callers instead of registering as unavailable.
func NewServer(repo storage.Repository, foods *nutrition.Client) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "logly",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		foods:     foods,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
