package registry

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mnakata/mcp-gsheets/internal/gsheets"
	"github.com/mnakata/mcp-gsheets/internal/tools"
	"github.com/sirupsen/logrus"
)

var (
	// toolRegistry is a map of tool names to tool implementations
	toolRegistry = make(map[string]tools.Tool)

	// disabledTools is a set of tool names to disable
	disabledTools = make(map[string]bool)

	// logger is the shared logger instance
	logger *logrus.Logger

	// The sheets client handle is created at most once per process
	// lifetime and never re-created or invalidated. If credentials are
	// wrong, every subsequent operation fails with the stored error.
	clientOnce   sync.Once
	sharedClient gsheets.Client
	clientErr    error
)

// Init initialises the registry and shared resources
func Init(l *logrus.Logger) {
	logger = l
	parseDisabledTools()
}

// parseDisabledTools parses the DISABLED_TOOLS environment variable
func parseDisabledTools() {
	disabledTools = make(map[string]bool)

	disabledEnv := os.Getenv("DISABLED_TOOLS")
	if disabledEnv == "" {
		return
	}

	for _, tool := range strings.Split(disabledEnv, ",") {
		tool = strings.TrimSpace(tool)
		if tool != "" {
			disabledTools[tool] = true
			if logger != nil {
				logger.WithField("tool", tool).Debug("Tool disabled")
			}
		}
	}

	if logger != nil && len(disabledTools) > 0 {
		logger.WithField("count", len(disabledTools)).Debug("Parsed disabled tools from environment")
	}
}

// Register adds a tool implementation to the registry
func Register(tool tools.Tool) {
	if toolRegistry == nil {
		toolRegistry = make(map[string]tools.Tool)
	}

	toolName := tool.Definition().Name
	if disabledTools[toolName] {
		if logger != nil {
			logger.WithField("tool", toolName).Debug("Tool not registered (disabled)")
		}
		return
	}

	toolRegistry[toolName] = tool
	if logger != nil {
		logger.WithField("tool", toolName).Debug("Tool successfully registered")
	}
}

// GetTool retrieves a tool by name, returns false if disabled or unknown
func GetTool(name string) (tools.Tool, bool) {
	if disabledTools[name] {
		return nil, false
	}
	tool, ok := toolRegistry[name]
	return tool, ok
}

// GetTools returns all registered tools, excluding disabled ones
func GetTools() map[string]tools.Tool {
	filteredTools := make(map[string]tools.Tool)
	for name, tool := range toolRegistry {
		if disabledTools[name] {
			continue
		}
		filteredTools[name] = tool
	}
	return filteredTools
}

// GetToolNames returns a sorted list of enabled tool names
func GetToolNames() []string {
	var names []string
	for name := range toolRegistry {
		if disabledTools[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetLogger returns the shared logger instance
func GetLogger() *logrus.Logger {
	return logger
}

// SheetsClient returns the shared sheets client handle, building it on first
// use from the configured credentials. A construction failure is sticky: the
// same error is returned on every subsequent call.
func SheetsClient(ctx context.Context) (gsheets.Client, error) {
	clientOnce.Do(func() {
		sharedClient, clientErr = gsheets.New(ctx)
		if clientErr != nil && logger != nil {
			logger.WithError(clientErr).Error("Failed to create sheets client")
		}
	})
	return sharedClient, clientErr
}
