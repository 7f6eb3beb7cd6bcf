package gsheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// snapshotRange is the wide fixed bound read before a sheet is deleted to
// produce the pre-deletion snapshot. Data beyond it is not captured.
const snapshotRange = "A1:Z1000"

// Client is the remote-resource façade the tools call. Each method maps to
// exactly one Sheets API invocation (one compound call for batch and append).
type Client interface {
	Info(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error)
	ReadValues(ctx context.Context, spreadsheetID, readRange string) (*ValueGrid, error)
	ReadFormulas(ctx context.Context, spreadsheetID, readRange string) (*ValueGrid, error)
	ReadAll(ctx context.Context, spreadsheetID, readRange string) (values, formulas *ValueGrid, err error)
	UpdateValues(ctx context.Context, spreadsheetID, writeRange string, values [][]any) (*UpdateResult, error)
	BatchUpdateValues(ctx context.Context, spreadsheetID string, updates []ValueInput) (*BatchUpdateResult, error)
	AppendValues(ctx context.Context, spreadsheetID, appendRange string, values [][]any) (*UpdateResult, error)
	AddSheet(ctx context.Context, spreadsheetID, title string, rowCount, colCount int64) (*SheetInfo, error)
	DeleteSheet(ctx context.Context, spreadsheetID, title string) (*DeleteSheetResult, error)
	Formatting(ctx context.Context, spreadsheetID, readRange string) (*FormattingInfo, error)
	UpdateFormatting(ctx context.Context, spreadsheetID, sheetTitle string, gr GridRange, format *CellFormat) (*FormatUpdateResult, error)
	ResolveSheet(ctx context.Context, spreadsheetID, title string) (*SheetInfo, error)
}

// SheetsClient implements Client against the Google Sheets v4 API.
type SheetsClient struct {
	svc *sheets.Service
}

// New builds an authenticated SheetsClient from the configured credential
// source. Call at most once per process; the handle is reused for all
// subsequent operations.
func New(ctx context.Context, extra ...option.ClientOption) (*SheetsClient, error) {
	opts, err := credentialOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return &SheetsClient{svc: svc}, nil
}

// NewWithService wraps an existing Sheets service, bypassing credential
// resolution. Used by tests that point the service at a stub endpoint.
func NewWithService(svc *sheets.Service) *SheetsClient {
	return &SheetsClient{svc: svc}
}

func (c *SheetsClient) Info(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	resp, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, classify("get spreadsheet info", err)
	}

	info := &SpreadsheetInfo{
		ID:       resp.SpreadsheetId,
		Title:    resp.Properties.Title,
		Locale:   resp.Properties.Locale,
		TimeZone: resp.Properties.TimeZone,
		URL:      resp.SpreadsheetUrl,
	}
	for _, sheet := range resp.Sheets {
		props := sheet.Properties
		si := SheetInfo{ID: props.SheetId, Title: props.Title, Index: props.Index}
		if props.GridProperties != nil {
			si.RowCount = props.GridProperties.RowCount
			si.ColCount = props.GridProperties.ColumnCount
		}
		info.Sheets = append(info.Sheets, si)
	}
	return info, nil
}

// ReadValues requests formatted display strings for the range.
func (c *SheetsClient) ReadValues(ctx context.Context, spreadsheetID, readRange string) (*ValueGrid, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, classify("read values", err)
	}
	return &ValueGrid{Range: resp.Range, Values: resp.Values}, nil
}

// ReadFormulas requests the raw formula source for the range.
func (c *SheetsClient) ReadFormulas(ctx context.Context, spreadsheetID, readRange string) (*ValueGrid, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("FORMULA").
		Context(ctx).Do()
	if err != nil {
		return nil, classify("read formulas", err)
	}
	return &ValueGrid{Range: resp.Range, Values: resp.Values}, nil
}

// ReadAll issues the values and formulas reads concurrently; the two legs
// are independent and order does not matter. It fails if either leg fails.
func (c *SheetsClient) ReadAll(ctx context.Context, spreadsheetID, readRange string) (*ValueGrid, *ValueGrid, error) {
	var values, formulas *ValueGrid

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		values, err = c.ReadValues(gctx, spreadsheetID, readRange)
		return err
	})
	g.Go(func() error {
		var err error
		formulas, err = c.ReadFormulas(gctx, spreadsheetID, readRange)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return values, formulas, nil
}

// UpdateValues writes values with user-entered interpretation: text starting
// with '=' becomes a formula on the remote side.
func (c *SheetsClient) UpdateValues(ctx context.Context, spreadsheetID, writeRange string, values [][]any) (*UpdateResult, error) {
	resp, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return nil, classify("update cells", err)
	}
	return &UpdateResult{
		Range: resp.UpdatedRange,
		Rows:  resp.UpdatedRows,
		Cols:  resp.UpdatedColumns,
		Cells: resp.UpdatedCells,
	}, nil
}

// BatchUpdateValues writes several ranges in a single compound call.
func (c *SheetsClient) BatchUpdateValues(ctx context.Context, spreadsheetID string, updates []ValueInput) (*BatchUpdateResult, error) {
	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, &sheets.ValueRange{Range: u.Range, Values: u.Values})
	}

	resp, err := c.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return nil, classify("batch update cells", err)
	}
	return &BatchUpdateResult{
		Ranges: int64(len(updates)),
		Rows:   resp.TotalUpdatedRows,
		Cells:  resp.TotalUpdatedCells,
		Sheets: resp.TotalUpdatedSheets,
	}, nil
}

// AppendValues appends after the last data row in the given column range.
// The destination row is chosen by the remote service, never by the caller.
func (c *SheetsClient) AppendValues(ctx context.Context, spreadsheetID, appendRange string, values [][]any) (*UpdateResult, error) {
	resp, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, appendRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return nil, classify("append rows", err)
	}
	result := &UpdateResult{}
	if resp.Updates != nil {
		result.Range = resp.Updates.UpdatedRange
		result.Rows = resp.Updates.UpdatedRows
		result.Cols = resp.Updates.UpdatedColumns
		result.Cells = resp.Updates.UpdatedCells
	}
	return result, nil
}

func (c *SheetsClient) AddSheet(ctx context.Context, spreadsheetID, title string, rowCount, colCount int64) (*SheetInfo, error) {
	props := &sheets.SheetProperties{Title: title}
	if rowCount > 0 || colCount > 0 {
		props.GridProperties = &sheets.GridProperties{RowCount: rowCount, ColumnCount: colCount}
	}

	resp, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{AddSheet: &sheets.AddSheetRequest{Properties: props}}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, classify("add sheet", err)
	}

	info := &SheetInfo{Title: title}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil {
		added := resp.Replies[0].AddSheet.Properties
		info.ID = added.SheetId
		info.Title = added.Title
		info.Index = added.Index
		if added.GridProperties != nil {
			info.RowCount = added.GridProperties.RowCount
			info.ColCount = added.GridProperties.ColumnCount
		}
	}
	return info, nil
}

// DeleteSheet resolves the title, takes a best-effort snapshot of the sheet
// contents, then deletes it. The snapshot read is non-blocking: if it fails
// (e.g. an empty sheet) deletion proceeds and the snapshot is omitted.
func (c *SheetsClient) DeleteSheet(ctx context.Context, spreadsheetID, title string) (*DeleteSheetResult, error) {
	sheet, err := c.ResolveSheet(ctx, spreadsheetID, title)
	if err != nil {
		return nil, err
	}

	var snapshot *ValueGrid
	if grid, err := c.ReadValues(ctx, spreadsheetID, fmt.Sprintf("'%s'!%s", sheet.Title, snapshotRange)); err == nil {
		snapshot = grid
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheet.ID}}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, classify("delete sheet", err)
	}
	return &DeleteSheetResult{Sheet: *sheet, Snapshot: snapshot}, nil
}

// Formatting fetches the grid data for a range and keeps only cells that
// carry an explicit user-entered format.
func (c *SheetsClient) Formatting(ctx context.Context, spreadsheetID, readRange string) (*FormattingInfo, error) {
	resp, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Ranges(readRange).
		IncludeGridData(true).
		Context(ctx).Do()
	if err != nil {
		return nil, classify("get formatting", err)
	}

	info := &FormattingInfo{Range: readRange}
	for _, sheet := range resp.Sheets {
		for _, grid := range sheet.Data {
			for ri, row := range grid.RowData {
				for ci, cell := range row.Values {
					if cell == nil || cell.UserEnteredFormat == nil {
						continue
					}
					fc := FormattedCell{
						Row:   grid.StartRow + int64(ri),
						Col:   grid.StartColumn + int64(ci),
						Value: cell.FormattedValue,
					}
					applyFormat(&fc, cell.UserEnteredFormat)
					info.Cells = append(info.Cells, fc)
				}
			}
		}
	}
	return info, nil
}

// applyFormat copies the explicit attributes of a Sheets cell format into a
// FormattedCell.
func applyFormat(fc *FormattedCell, f *sheets.CellFormat) {
	if tf := f.TextFormat; tf != nil {
		fc.Bold = tf.Bold
		fc.Italic = tf.Italic
		fc.Strikethrough = tf.Strikethrough
		fc.FontSize = tf.FontSize
		fc.FontFamily = tf.FontFamily
		if tf.ForegroundColor != nil {
			fc.Foreground = &RGB{Red: tf.ForegroundColor.Red, Green: tf.ForegroundColor.Green, Blue: tf.ForegroundColor.Blue}
		}
	}
	if f.BackgroundColor != nil {
		fc.Background = &RGB{Red: f.BackgroundColor.Red, Green: f.BackgroundColor.Green, Blue: f.BackgroundColor.Blue}
	}
	fc.Alignment = f.HorizontalAlignment
	if nf := f.NumberFormat; nf != nil {
		fc.NumberFormatType = nf.Type
		fc.NumberFormatPattern = nf.Pattern
	}
}

// UpdateFormatting applies a sparse format to a grid range via a RepeatCell
// request. The field mask names exactly the attributes present in format, so
// omitted attributes stay untouched on the target cells.
func (c *SheetsClient) UpdateFormatting(ctx context.Context, spreadsheetID, sheetTitle string, gr GridRange, format *CellFormat) (*FormatUpdateResult, error) {
	sheet, err := c.ResolveSheet(ctx, spreadsheetID, sheetTitle)
	if err != nil {
		return nil, err
	}

	paths := format.FieldPaths()
	masked := make([]string, len(paths))
	for i, p := range paths {
		masked[i] = "userEnteredFormat." + p
	}

	req := &sheets.RepeatCellRequest{
		Range: &sheets.GridRange{
			SheetId:          sheet.ID,
			StartRowIndex:    gr.StartRow,
			EndRowIndex:      gr.EndRow,
			StartColumnIndex: gr.StartCol,
			EndColumnIndex:   gr.EndCol,
		},
		Cell:   &sheets.CellData{UserEnteredFormat: toCellFormat(format)},
		Fields: strings.Join(masked, ","),
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{RepeatCell: req}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, classify("update formatting", err)
	}
	return &FormatUpdateResult{Sheet: *sheet, Range: gr, Fields: paths}, nil
}

// toCellFormat builds the Sheets API cell format carrying only the set
// attributes. Unset boolean fields are forced into the wire payload when
// present so an explicit false survives serialisation.
func toCellFormat(f *CellFormat) *sheets.CellFormat {
	out := &sheets.CellFormat{}
	tf := &sheets.TextFormat{}
	usesText := false

	if f.Bold != nil {
		tf.Bold = *f.Bold
		tf.ForceSendFields = append(tf.ForceSendFields, "Bold")
		usesText = true
	}
	if f.Italic != nil {
		tf.Italic = *f.Italic
		tf.ForceSendFields = append(tf.ForceSendFields, "Italic")
		usesText = true
	}
	if f.Strikethrough != nil {
		tf.Strikethrough = *f.Strikethrough
		tf.ForceSendFields = append(tf.ForceSendFields, "Strikethrough")
		usesText = true
	}
	if f.FontSize != nil {
		tf.FontSize = *f.FontSize
		usesText = true
	}
	if f.FontFamily != nil {
		tf.FontFamily = *f.FontFamily
		usesText = true
	}
	if f.Foreground != nil {
		tf.ForegroundColor = &sheets.Color{Red: f.Foreground.Red, Green: f.Foreground.Green, Blue: f.Foreground.Blue}
		usesText = true
	}
	if usesText {
		out.TextFormat = tf
	}
	if f.Background != nil {
		out.BackgroundColor = &sheets.Color{Red: f.Background.Red, Green: f.Background.Green, Blue: f.Background.Blue}
	}
	if f.Alignment != nil {
		out.HorizontalAlignment = *f.Alignment
	}
	if f.NumberFormat != nil {
		out.NumberFormat = &sheets.NumberFormat{Type: f.NumberFormat.Type, Pattern: f.NumberFormat.Pattern}
	}
	return out
}

// ResolveSheet maps a human-readable sheet title to its descriptor using a
// case-insensitive exact match over the spreadsheet metadata.
func (c *SheetsClient) ResolveSheet(ctx context.Context, spreadsheetID, title string) (*SheetInfo, error) {
	info, err := c.Info(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	for i := range info.Sheets {
		if strings.EqualFold(info.Sheets[i].Title, title) {
			return &info.Sheets[i], nil
		}
	}
	return nil, notFoundf("resolve sheet", "sheet %q not found; available sheets: %s", title, sheetTitles(info.Sheets))
}
