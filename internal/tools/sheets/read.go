package sheets

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mnakata/mcp-gsheets/internal/gsheets"
	"github.com/sirupsen/logrus"
)

// GetSpreadsheetInfo returns spreadsheet metadata and the list of sheets.
type GetSpreadsheetInfo struct{}

func (t *GetSpreadsheetInfo) Definition() mcp.Tool {
	return mcp.NewTool(
		"get_spreadsheet_info",
		mcp.WithDescription("Get spreadsheet metadata: title, locale, time zone and a table of its sheets with their ids and dimensions."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *GetSpreadsheetInfo) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithField("spreadsheet_id", spreadsheetID).Debug("Fetching spreadsheet info")

	info, err := client.Info(ctx, spreadsheetID)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.SpreadsheetInfo(info)), nil
}

// ReadValues reads formatted display strings from a range.
type ReadValues struct{}

func (t *ReadValues) Definition() mcp.Tool {
	return mcp.NewTool(
		"read_values",
		mcp.WithDescription("Read cell values from a range as formatted display strings, rendered as a Markdown table."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range, e.g. 'Sheet1!A1:D10'"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *ReadValues) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	readRange := p.requiredString("range")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "range": readRange}).Debug("Reading values")

	grid, err := client.ReadValues(ctx, spreadsheetID, readRange)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.Values(grid)), nil
}

// ReadFormulas reads the raw formula source from a range.
type ReadFormulas struct{}

func (t *ReadFormulas) Definition() mcp.Tool {
	return mcp.NewTool(
		"read_formulas",
		mcp.WithDescription("Read the raw formula source of cells in a range, rendered as a Markdown table."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range, e.g. 'Sheet1!A1:D10'"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *ReadFormulas) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	readRange := p.requiredString("range")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "range": readRange}).Debug("Reading formulas")

	grid, err := client.ReadFormulas(ctx, spreadsheetID, readRange)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.Values(grid)), nil
}

// ReadAll reads values and formulas for the same range in one call.
type ReadAll struct{}

func (t *ReadAll) Definition() mcp.Tool {
	return mcp.NewTool(
		"read_all",
		mcp.WithDescription("Read both the formatted values and the raw formulas of a range, rendered as two labeled Markdown tables."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range, e.g. 'Sheet1!A1:D10'"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *ReadAll) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	readRange := p.requiredString("range")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "range": readRange}).Debug("Reading values and formulas")

	values, formulas, err := client.ReadAll(ctx, spreadsheetID, readRange)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.ValuesAndFormulas(values, formulas)), nil
}

// GetFormatting lists the explicitly formatted cells within a range.
type GetFormatting struct{}

func (t *GetFormatting) Definition() mcp.Tool {
	return mcp.NewTool(
		"get_formatting",
		mcp.WithDescription("List cells in a range that carry explicit formatting (bold, colors, number formats, alignment), one bullet per cell."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1 notation range, e.g. 'Sheet1!A1:D10'"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *GetFormatting) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	readRange := p.requiredString("range")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "range": readRange}).Debug("Reading formatting")

	info, err := client.Formatting(ctx, spreadsheetID, readRange)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.Formatting(info)), nil
}
