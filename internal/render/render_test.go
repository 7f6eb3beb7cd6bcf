package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/mnakata/mcp-gsheets/internal/gsheets"
)

func TestSpreadsheetInfo(t *testing.T) {
	r := New(language.English)
	out := r.SpreadsheetInfo(&gsheets.SpreadsheetInfo{
		ID:       "abc123",
		Title:    "Budget",
		Locale:   "en_US",
		TimeZone: "America/New_York",
		Sheets: []gsheets.SheetInfo{
			{ID: 0, Title: "Q1", RowCount: 1000, ColCount: 26},
			{ID: 42, Title: "Q2", RowCount: 50, ColCount: 10},
		},
	})

	assert.Contains(t, out, "# Budget")
	assert.Contains(t, out, "- ID: abc123")
	assert.Contains(t, out, "- Locale: en_US")
	assert.Contains(t, out, "- Time zone: America/New_York")
	assert.Contains(t, out, "| Sheet | ID | Rows | Columns |")
	assert.Contains(t, out, "| Q1 | 0 | 1000 | 26 |")
	assert.Contains(t, out, "| Q2 | 42 | 50 | 10 |")
}

func TestValues_RangeHeading(t *testing.T) {
	r := New(language.English)
	out := r.Values(&gsheets.ValueGrid{
		Range: "Sheet1!A1:B2",
		Values: [][]any{
			{"Name", "Age"},
			{"Ann", float64(30)},
		},
	})

	assert.Contains(t, out, "## Sheet1!A1:B2")
	assert.Contains(t, out, "| A | B |")
	assert.Contains(t, out, "| Name | Age |")
	assert.Contains(t, out, "| Ann | 30 |")
}

func TestValuesAndFormulas(t *testing.T) {
	r := New(language.English)
	out := r.ValuesAndFormulas(
		&gsheets.ValueGrid{Range: "Sheet1!A1:A2", Values: [][]any{{float64(3)}, {float64(7)}}},
		&gsheets.ValueGrid{Range: "Sheet1!A1:A2", Values: [][]any{{"=1+2"}, {"=3+4"}}},
	)

	assert.Contains(t, out, "## Values (Sheet1!A1:A2)")
	assert.Contains(t, out, "## Formulas (Sheet1!A1:A2)")
	assert.Contains(t, out, "| 3 |")
	assert.Contains(t, out, "| =1+2 |")
}

func TestFormatting_BulletPerCell(t *testing.T) {
	r := New(language.English)
	out := r.Formatting(&gsheets.FormattingInfo{
		Range: "Sheet1!A1:B2",
		Cells: []gsheets.FormattedCell{
			{Row: 0, Col: 0, Value: "Title", Bold: true, FontSize: 14},
			{Row: 1, Col: 1, Value: "3.50", Background: &gsheets.RGB{Red: 1, Green: 1}, NumberFormatType: "CURRENCY", NumberFormatPattern: "$#,##0.00"},
		},
	})

	assert.Contains(t, out, "## Formatting (Sheet1!A1:B2)")
	assert.Contains(t, out, "- **A1** `Title`: bold, font size 14")
	assert.Contains(t, out, "- **B2** `3.50`: background #FFFF00, number format CURRENCY ($#,##0.00)")
	assert.NotContains(t, out, "No formatting data")
}

func TestFormatting_Empty(t *testing.T) {
	r := New(language.English)
	out := r.Formatting(&gsheets.FormattingInfo{Range: "Sheet1!A1:B2"})
	assert.Contains(t, out, "_No formatting data found in this range._")
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#000000", HexColor(gsheets.RGB{}))
	assert.Equal(t, "#FFFFFF", HexColor(gsheets.RGB{Red: 1, Green: 1, Blue: 1}))
	assert.Equal(t, "#FF0000", HexColor(gsheets.RGB{Red: 1}))
	assert.Equal(t, "#808080", HexColor(gsheets.RGB{Red: 0.5, Green: 0.5, Blue: 0.5}))
	// Out-of-range channels are clamped.
	assert.Equal(t, "#FF0000", HexColor(gsheets.RGB{Red: 2, Green: -1}))
}

func TestUpdateResult(t *testing.T) {
	r := New(language.English)
	out := r.UpdateResult("Updated", &gsheets.UpdateResult{
		Range: "Sheet1!A1:B2", Rows: 2, Cols: 2, Cells: 4,
	})
	assert.Equal(t, "Updated 4 cells (2 rows x 2 columns) in Sheet1!A1:B2", out)
}

func TestBatchUpdateResult(t *testing.T) {
	r := New(language.English)
	out := r.BatchUpdateResult(&gsheets.BatchUpdateResult{Ranges: 3, Cells: 12, Sheets: 2})
	assert.Equal(t, "Updated 12 cells across 3 ranges (2 sheets affected)", out)
}

func TestAddedSheet(t *testing.T) {
	r := New(language.English)
	out := r.AddedSheet(&gsheets.SheetInfo{ID: 7, Title: "Data", RowCount: 100, ColCount: 20})
	assert.Equal(t, `Added sheet "Data" (id 7) with 100 rows x 20 columns`, out)

	out = r.AddedSheet(&gsheets.SheetInfo{ID: 8, Title: "Bare"})
	assert.Equal(t, `Added sheet "Bare" (id 8)`, out)
}

func TestDeletedSheet_WithSnapshot(t *testing.T) {
	r := New(language.English)
	out := r.DeletedSheet(&gsheets.DeleteSheetResult{
		Sheet: gsheets.SheetInfo{ID: 3, Title: "Old"},
		Snapshot: &gsheets.ValueGrid{
			Range:  "'Old'!A1:Z1000",
			Values: [][]any{{"kept", "data"}},
		},
	})

	assert.Contains(t, out, `Deleted sheet "Old" (id 3)`)
	assert.Contains(t, out, "### Contents before deletion")
	assert.Contains(t, out, "| kept | data |")
}

func TestDeletedSheet_NoSnapshot(t *testing.T) {
	r := New(language.English)
	out := r.DeletedSheet(&gsheets.DeleteSheetResult{
		Sheet: gsheets.SheetInfo{ID: 3, Title: "Old"},
	})
	assert.Equal(t, `Deleted sheet "Old" (id 3)`, out)
}

func TestFormatUpdateResult(t *testing.T) {
	r := New(language.English)
	out := r.FormatUpdateResult(&gsheets.FormatUpdateResult{
		Sheet:  gsheets.SheetInfo{ID: 0, Title: "Sheet1"},
		Range:  gsheets.GridRange{StartRow: 0, EndRow: 2, StartCol: 1, EndCol: 3},
		Fields: []string{"textFormat.bold", "backgroundColor"},
	})
	assert.Equal(t, `Applied formatting (textFormat.bold, backgroundColor) to sheet "Sheet1" rows 0-2, columns 1-3`, out)
}

func TestJapaneseMessages(t *testing.T) {
	r := New(language.Japanese)
	assert.Contains(t, r.Table(nil), "データが見つかりませんでした")
	assert.Contains(t, r.NotFoundGuidance(), "スプレッドシート")
}

func TestDetectLanguage(t *testing.T) {
	t.Run("mcp lang wins", func(t *testing.T) {
		t.Setenv("MCP_LANG", "ja")
		t.Setenv("LANG", "en_US.UTF-8")
		assert.Equal(t, language.Japanese, DetectLanguage())
	})

	t.Run("posix locale suffix stripped", func(t *testing.T) {
		t.Setenv("MCP_LANG", "")
		t.Setenv("LANG", "ja_JP.UTF-8")
		assert.Equal(t, language.Japanese, DetectLanguage())
	})

	t.Run("unsupported falls back to english", func(t *testing.T) {
		t.Setenv("MCP_LANG", "fr_FR")
		t.Setenv("LANG", "")
		assert.Equal(t, language.English, DetectLanguage())
	})

	t.Run("unset defaults to english", func(t *testing.T) {
		t.Setenv("MCP_LANG", "")
		t.Setenv("LANG", "")
		assert.Equal(t, language.English, DetectLanguage())
	})
}
