// Package sheets implements the Google Sheets MCP tools: spreadsheet
// metadata, value reads and writes, sheet management and cell formatting.
// Every tool is a thin pass-through: validate arguments, make one remote
// call, render the response as Markdown.
package sheets

import (
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mnakata/mcp-gsheets/internal/gsheets"
	"github.com/mnakata/mcp-gsheets/internal/registry"
	"github.com/mnakata/mcp-gsheets/internal/render"
)

// md renders all tool output; the display language is picked once at
// startup.
var md = render.NewFromEnv()

func init() {
	registry.Register(&GetSpreadsheetInfo{})
	registry.Register(&ReadValues{})
	registry.Register(&ReadFormulas{})
	registry.Register(&ReadAll{})
	registry.Register(&UpdateCells{})
	registry.Register(&BatchUpdateCells{})
	registry.Register(&AppendRows{})
	registry.Register(&AddSheet{})
	registry.Register(&DeleteSheet{})
	registry.Register(&GetFormatting{})
	registry.Register(&UpdateFormatting{})
}

// errorResult converts any tool failure into an error envelope. Remote
// not-found and permission errors get a localized guidance line appended.
func errorResult(err error) (*mcp.CallToolResult, error) {
	message := err.Error()

	var aerr *gsheets.APIError
	if errors.As(err, &aerr) {
		switch aerr.Kind {
		case gsheets.KindNotFound:
			message += "\n" + md.NotFoundGuidance()
		case gsheets.KindPermissionDenied:
			message += "\n" + md.PermissionGuidance()
		}
	}
	return mcp.NewToolResultError(message), nil
}
