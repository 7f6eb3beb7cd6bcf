package gsheets

import (
	"sort"
	"strconv"
	"strings"
)

// SheetInfo describes a single sheet (tab) within a spreadsheet.
type SheetInfo struct {
	ID       int64
	Title    string
	Index    int64
	RowCount int64
	ColCount int64
}

// SpreadsheetInfo is the metadata for a whole spreadsheet.
type SpreadsheetInfo struct {
	ID       string
	Title    string
	Locale   string
	TimeZone string
	URL      string
	Sheets   []SheetInfo
}

// ValueGrid is a rectangular-ish block of cell values as returned by the
// remote service. Rows may be ragged.
type ValueGrid struct {
	Range  string
	Values [][]any
}

// ValueInput is one range+values pair for a batch update.
type ValueInput struct {
	Range  string
	Values [][]any
}

// UpdateResult summarises a single-range write or an append.
type UpdateResult struct {
	Range string
	Rows  int64
	Cols  int64
	Cells int64
}

// BatchUpdateResult summarises a multi-range write.
type BatchUpdateResult struct {
	Ranges int64
	Rows   int64
	Cells  int64
	Sheets int64
}

// DeleteSheetResult reports a sheet deletion. Snapshot is the best-effort
// pre-deletion read of the sheet contents and may be nil (e.g. empty sheet).
type DeleteSheetResult struct {
	Sheet    SheetInfo
	Snapshot *ValueGrid
}

// RGB is a colour with each channel in the 0-1 range, as used by the
// Sheets API.
type RGB struct {
	Red   float64
	Green float64
	Blue  float64
}

// NumberFormat is a Sheets number format: a type such as NUMBER, CURRENCY
// or DATE, plus an optional pattern.
type NumberFormat struct {
	Type    string
	Pattern string
}

// CellFormat is a sparse set of visual attributes for update_formatting.
// Nil fields are absent: they are excluded from the outgoing field mask and
// left untouched on the target cells.
type CellFormat struct {
	Bold          *bool
	Italic        *bool
	Strikethrough *bool
	FontSize      *int64
	FontFamily    *string
	Foreground    *RGB
	Background    *RGB
	Alignment     *string
	NumberFormat  *NumberFormat
}

// FieldPaths returns the field-mask paths (relative to userEnteredFormat)
// for exactly the attributes that are set. The order is stable.
func (f *CellFormat) FieldPaths() []string {
	var paths []string
	add := func(present bool, path string) {
		if present {
			paths = append(paths, path)
		}
	}
	add(f.Bold != nil, "textFormat.bold")
	add(f.Italic != nil, "textFormat.italic")
	add(f.Strikethrough != nil, "textFormat.strikethrough")
	add(f.FontSize != nil, "textFormat.fontSize")
	add(f.FontFamily != nil, "textFormat.fontFamily")
	add(f.Foreground != nil, "textFormat.foregroundColor")
	add(f.Background != nil, "backgroundColor")
	add(f.Alignment != nil, "horizontalAlignment")
	add(f.NumberFormat != nil, "numberFormat")
	return paths
}

// IsEmpty reports whether no attribute at all is set.
func (f *CellFormat) IsEmpty() bool {
	return len(f.FieldPaths()) == 0
}

// GridRange is a rectangular region on a sheet. Indices are 0-based,
// start-inclusive and end-exclusive, matching the Sheets API GridRange.
type GridRange struct {
	StartRow int64
	EndRow   int64
	StartCol int64
	EndCol   int64
}

// FormatUpdateResult reports which cells a formatting update touched.
type FormatUpdateResult struct {
	Sheet  SheetInfo
	Range  GridRange
	Fields []string
}

// FormattedCell is one cell carrying an explicit (user-entered) format.
// Row and Col are absolute 0-based grid coordinates.
type FormattedCell struct {
	Row                 int64
	Col                 int64
	Value               string
	Bold                bool
	Italic              bool
	Strikethrough       bool
	FontSize            int64
	FontFamily          string
	Foreground          *RGB
	Background          *RGB
	Alignment           string
	NumberFormatType    string
	NumberFormatPattern string
}

// FormattingInfo is the set of explicitly formatted cells within a range.
// Cells without an explicit format are not included.
type FormattingInfo struct {
	Range string
	Cells []FormattedCell
}

// sheetTitles returns all titles in sheet order, for not-found messages.
func sheetTitles(sheets []SheetInfo) string {
	titles := make([]string, 0, len(sheets))
	for _, s := range sheets {
		titles = append(titles, strconv.Quote(s.Title))
	}
	sort.Strings(titles)
	return strings.Join(titles, ", ")
}
