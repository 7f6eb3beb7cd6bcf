package sheets

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mnakata/mcp-gsheets/internal/gsheets"
	"github.com/sirupsen/logrus"
)

// valueItemsSchema describes one row of cell values in a tool schema.
var valueItemsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": []string{"string", "number", "boolean", "null"},
	},
}

// UpdateCells overwrites a single range with new values.
type UpdateCells struct{}

func (t *UpdateCells) Definition() mcp.Tool {
	return mcp.NewTool(
		"update_cells",
		mcp.WithDescription("Write a 2D array of values to a range, overwriting existing content. Values are interpreted as if typed by a user: text starting with '=' becomes a formula."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range to write, e.g. 'Sheet1!A1:B2'"),
		),
		mcp.WithArray("values",
			mcp.Required(),
			mcp.Description("2D array of cell values (array of rows; rows may differ in length)"),
			mcp.Items(valueItemsSchema),
		),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (t *UpdateCells) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	writeRange := p.requiredString("range")
	values := p.requiredValues("values")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "range": writeRange, "rows": len(values)}).Debug("Updating cells")

	res, err := client.UpdateValues(ctx, spreadsheetID, writeRange, values)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.UpdateResult("Updated", res)), nil
}

// BatchUpdateCells writes several ranges in one atomic compound call.
type BatchUpdateCells struct{}

func (t *BatchUpdateCells) Definition() mcp.Tool {
	return mcp.NewTool(
		"batch_update_cells",
		mcp.WithDescription("Write values to several ranges in a single batch call. Each update names a range and a 2D array of values."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithArray("updates",
			mcp.Required(),
			mcp.Description("Array of {range, values} objects"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"range": map[string]any{
						"type":        "string",
						"description": "A1 notation range to write",
					},
					"values": map[string]any{
						"type":        "array",
						"description": "2D array of cell values",
						"items":       valueItemsSchema,
					},
				},
				"required": []string{"range", "values"},
			}),
		),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (t *BatchUpdateCells) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	updates := p.requiredUpdates("updates")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "ranges": len(updates)}).Debug("Batch updating cells")

	res, err := client.BatchUpdateValues(ctx, spreadsheetID, updates)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.BatchUpdateResult(res)), nil
}

// AppendRows appends rows after the last data row in a column range.
type AppendRows struct{}

func (t *AppendRows) Definition() mcp.Tool {
	return mcp.NewTool(
		"append_rows",
		mcp.WithDescription("Append rows after the last row with data in the given column range. The destination row is chosen by the service and cannot be specified."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation column range to append within, e.g. 'Sheet1!A:D'"),
		),
		mcp.WithArray("values",
			mcp.Required(),
			mcp.Description("2D array of cell values to append (array of rows)"),
			mcp.Items(valueItemsSchema),
		),
	)
}

func (t *AppendRows) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	appendRange := p.requiredString("range")
	values := p.requiredValues("values")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "range": appendRange, "rows": len(values)}).Debug("Appending rows")

	res, err := client.AppendValues(ctx, spreadsheetID, appendRange, values)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.UpdateResult("Appended", res)), nil
}
