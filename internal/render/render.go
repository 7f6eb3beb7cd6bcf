// Package render turns Google Sheets API results into human-readable
// Markdown. All transforms are pure: no I/O, no shared state beyond the
// renderer's display language.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/mnakata/mcp-gsheets/internal/gsheets"
)

// SpreadsheetInfo renders spreadsheet metadata: title, locale, timezone and
// a table of the contained sheets.
func (r *Renderer) SpreadsheetInfo(info *gsheets.SpreadsheetInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", info.Title))
	sb.WriteString(fmt.Sprintf("- ID: %s\n", info.ID))
	if info.Locale != "" {
		sb.WriteString(fmt.Sprintf("- Locale: %s\n", info.Locale))
	}
	if info.TimeZone != "" {
		sb.WriteString(fmt.Sprintf("- Time zone: %s\n", info.TimeZone))
	}
	if info.URL != "" {
		sb.WriteString(fmt.Sprintf("- URL: %s\n", info.URL))
	}
	sb.WriteString("\n")

	rows := make([][]any, 0, len(info.Sheets))
	for _, s := range info.Sheets {
		rows = append(rows, []any{s.Title, s.ID, s.RowCount, s.ColCount})
	}
	sb.WriteString(r.TableWithHeader([]string{"Sheet", "ID", "Rows", "Columns"}, rows))
	return sb.String()
}

// Values renders a single value grid with its range as a heading.
func (r *Renderer) Values(grid *gsheets.ValueGrid) string {
	var sb strings.Builder
	if grid.Range != "" {
		sb.WriteString(fmt.Sprintf("## %s\n\n", grid.Range))
	}
	sb.WriteString(r.Table(grid.Values))
	return sb.String()
}

// ValuesAndFormulas renders the two legs of a combined read under labeled
// headings for the same range.
func (r *Renderer) ValuesAndFormulas(values, formulas *gsheets.ValueGrid) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Values (%s)\n\n", values.Range))
	sb.WriteString(r.Table(values.Values))
	sb.WriteString(fmt.Sprintf("\n## Formulas (%s)\n\n", formulas.Range))
	sb.WriteString(r.Table(formulas.Values))
	return sb.String()
}

// Formatting renders one bullet per explicitly formatted cell; cells with no
// explicit format are omitted. With nothing to show it emits an explicit
// no-formatting line rather than an empty section.
func (r *Renderer) Formatting(info *gsheets.FormattingInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Formatting (%s)\n\n", info.Range))

	if len(info.Cells) == 0 {
		sb.WriteString(msgNoFormatting.in(r.lang))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, cell := range info.Cells {
		ref := fmt.Sprintf("%s%d", ColumnLabel(int(cell.Col)), cell.Row+1)
		attrs := describeFormat(cell)
		value := cell.Value
		if value == "" {
			value = "(empty)"
		}
		sb.WriteString(fmt.Sprintf("- **%s** `%s`: %s\n", ref, EscapeCell(value), strings.Join(attrs, ", ")))
	}
	return sb.String()
}

// describeFormat humanizes the explicit attributes of one cell.
func describeFormat(cell gsheets.FormattedCell) []string {
	var attrs []string
	if cell.Bold {
		attrs = append(attrs, "bold")
	}
	if cell.Italic {
		attrs = append(attrs, "italic")
	}
	if cell.Strikethrough {
		attrs = append(attrs, "strikethrough")
	}
	if cell.FontSize > 0 {
		attrs = append(attrs, fmt.Sprintf("font size %d", cell.FontSize))
	}
	if cell.FontFamily != "" {
		attrs = append(attrs, fmt.Sprintf("font %s", cell.FontFamily))
	}
	if cell.Foreground != nil {
		attrs = append(attrs, fmt.Sprintf("text color %s", HexColor(*cell.Foreground)))
	}
	if cell.Background != nil {
		attrs = append(attrs, fmt.Sprintf("background %s", HexColor(*cell.Background)))
	}
	if cell.NumberFormatType != "" {
		nf := cell.NumberFormatType
		if cell.NumberFormatPattern != "" {
			nf += " (" + cell.NumberFormatPattern + ")"
		}
		attrs = append(attrs, fmt.Sprintf("number format %s", nf))
	}
	if cell.Alignment != "" {
		attrs = append(attrs, fmt.Sprintf("aligned %s", cell.Alignment))
	}
	if len(attrs) == 0 {
		attrs = append(attrs, "default")
	}
	return attrs
}

// HexColor converts 0-1 RGB channels into a #RRGGBB string, rounding each
// channel to 0-255.
func HexColor(c gsheets.RGB) string {
	to255 := func(ch float64) int {
		v := int(math.Round(ch * 255))
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return v
	}
	return fmt.Sprintf("#%02X%02X%02X", to255(c.Red), to255(c.Green), to255(c.Blue))
}

// UpdateResult renders a single-range write summary.
func (r *Renderer) UpdateResult(verb string, res *gsheets.UpdateResult) string {
	return fmt.Sprintf("%s %d cells (%d rows x %d columns) in %s", verb, res.Cells, res.Rows, res.Cols, res.Range)
}

// BatchUpdateResult renders a multi-range write summary.
func (r *Renderer) BatchUpdateResult(res *gsheets.BatchUpdateResult) string {
	return fmt.Sprintf("Updated %d cells across %d ranges (%d sheets affected)", res.Cells, res.Ranges, res.Sheets)
}

// AddedSheet renders the descriptor of a newly added sheet.
func (r *Renderer) AddedSheet(sheet *gsheets.SheetInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Added sheet %q (id %d)", sheet.Title, sheet.ID))
	if sheet.RowCount > 0 || sheet.ColCount > 0 {
		sb.WriteString(fmt.Sprintf(" with %d rows x %d columns", sheet.RowCount, sheet.ColCount))
	}
	return sb.String()
}

// DeletedSheet renders a deletion report with the optional pre-deletion
// snapshot of the sheet contents.
func (r *Renderer) DeletedSheet(res *gsheets.DeleteSheetResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Deleted sheet %q (id %d)", res.Sheet.Title, res.Sheet.ID))
	if res.Snapshot != nil && len(res.Snapshot.Values) > 0 {
		sb.WriteString("\n\n### Contents before deletion\n\n")
		sb.WriteString(r.Table(res.Snapshot.Values))
	}
	return sb.String()
}

// FormatUpdateResult renders a formatting update summary naming the applied
// attributes.
func (r *Renderer) FormatUpdateResult(res *gsheets.FormatUpdateResult) string {
	return fmt.Sprintf("Applied formatting (%s) to sheet %q rows %d-%d, columns %d-%d",
		strings.Join(res.Fields, ", "), res.Sheet.Title,
		res.Range.StartRow, res.Range.EndRow, res.Range.StartCol, res.Range.EndCol)
}

// NotFoundGuidance is the localized hint appended to not-found errors.
func (r *Renderer) NotFoundGuidance() string {
	return msgNotFoundGuidance.in(r.lang)
}

// PermissionGuidance is the localized hint appended to permission errors.
func (r *Renderer) PermissionGuidance() string {
	return msgPermissionGuidance.in(r.lang)
}
