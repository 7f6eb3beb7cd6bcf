package sheets

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mnakata/mcp-gsheets/internal/gsheets"
	"github.com/sirupsen/logrus"
)

// AddSheet adds a new sheet (tab) to an existing spreadsheet.
type AddSheet struct{}

func (t *AddSheet) Definition() mcp.Tool {
	return mcp.NewTool(
		"add_sheet",
		mcp.WithDescription("Add a new sheet (tab) to an existing spreadsheet, optionally with explicit row and column counts."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title for the new sheet"),
		),
		mcp.WithNumber("row_count",
			mcp.Description("Number of rows (optional; service default when omitted)"),
		),
		mcp.WithNumber("column_count",
			mcp.Description("Number of columns (optional; service default when omitted)"),
		),
	)
}

func (t *AddSheet) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	title := p.requiredString("title")
	rowCount := p.optionalInt("row_count", 0)
	colCount := p.optionalInt("column_count", 0)
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "title": title}).Debug("Adding sheet")

	sheet, err := client.AddSheet(ctx, spreadsheetID, title, rowCount, colCount)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.AddedSheet(sheet)), nil
}

// DeleteSheet deletes a sheet by title, reporting a best-effort snapshot of
// its contents.
type DeleteSheet struct{}

func (t *DeleteSheet) Definition() mcp.Tool {
	return mcp.NewTool(
		"delete_sheet",
		mcp.WithDescription("Delete a sheet (tab) by its title. The sheet title match is case-insensitive. The response includes the sheet contents before deletion when they could be read."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("sheet_title",
			mcp.Required(),
			mcp.Description("Title of the sheet to delete"),
		),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

func (t *DeleteSheet) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	sheetTitle := p.requiredString("sheet_title")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{"spreadsheet_id": spreadsheetID, "sheet_title": sheetTitle}).Debug("Deleting sheet")

	res, err := client.DeleteSheet(ctx, spreadsheetID, sheetTitle)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.DeletedSheet(res)), nil
}

// UpdateFormatting applies a sparse cell format to a grid range.
type UpdateFormatting struct{}

func (t *UpdateFormatting) Definition() mcp.Tool {
	return mcp.NewTool(
		"update_formatting",
		mcp.WithDescription("Apply formatting to a cell range. Only the attributes present in the format object are changed; everything else stays untouched. Row and column indices are 0-based, start inclusive and end exclusive."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The spreadsheet ID (from the URL)"),
		),
		mcp.WithString("sheet_title",
			mcp.Required(),
			mcp.Description("Title of the sheet to format (case-insensitive)"),
		),
		mcp.WithNumber("start_row",
			mcp.Required(),
			mcp.Description("First row of the range (0-based, inclusive)"),
		),
		mcp.WithNumber("end_row",
			mcp.Required(),
			mcp.Description("End row of the range (0-based, exclusive)"),
		),
		mcp.WithNumber("start_col",
			mcp.Required(),
			mcp.Description("First column of the range (0-based, inclusive)"),
		),
		mcp.WithNumber("end_col",
			mcp.Required(),
			mcp.Description("End column of the range (0-based, exclusive)"),
		),
		mcp.WithObject("format",
			mcp.Required(),
			mcp.Description("Sparse format: bold, italic, strikethrough (booleans); font_size (integer); font_family (string); foreground_color, background_color ({red, green, blue} with 0-1 channels); horizontal_alignment (LEFT, CENTER or RIGHT); number_format ({type, pattern})"),
		),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (t *UpdateFormatting) Execute(ctx context.Context, logger *logrus.Logger, client gsheets.Client, args map[string]any) (*mcp.CallToolResult, error) {
	p := newArgParser(args)
	spreadsheetID := p.requiredString("spreadsheet_id")
	sheetTitle := p.requiredString("sheet_title")
	before := len(p.violations)
	gr := gsheets.GridRange{
		StartRow: p.requiredInt("start_row"),
		EndRow:   p.requiredInt("end_row"),
		StartCol: p.requiredInt("start_col"),
		EndCol:   p.requiredInt("end_col"),
	}
	if len(p.violations) == before {
		if gr.StartRow < 0 || gr.EndRow <= gr.StartRow {
			p.violate("end_row", "must be greater than start_row")
		}
		if gr.StartCol < 0 || gr.EndCol <= gr.StartCol {
			p.violate("end_col", "must be greater than start_col")
		}
	}
	format := p.requiredFormat("format")
	if err := p.err(); err != nil {
		return errorResult(err)
	}

	logger.WithFields(logrus.Fields{
		"spreadsheet_id": spreadsheetID,
		"sheet_title":    sheetTitle,
		"fields":         format.FieldPaths(),
	}).Debug("Updating formatting")

	res, err := client.UpdateFormatting(ctx, spreadsheetID, sheetTitle, gr, format)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(md.FormatUpdateResult(res)), nil
}
