package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mnakata/mcp-gsheets/internal/gsheets"
	"github.com/sirupsen/logrus"
)

// Tool is the interface that all MCP tool implementations must satisfy.
type Tool interface {
	// Definition returns the tool's definition for MCP registration
	Definition() mcp.Tool

	// Execute runs the tool's logic against the shared sheets client handle
	// using parsed arguments. The client is passed in explicitly so tests can
	// substitute a fake remote client.
	Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error)
}
