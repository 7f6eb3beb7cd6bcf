package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// MaxTableRows caps how many data rows a rendered table may contain. Rows
// beyond the cap are replaced by a truncation notice.
const MaxTableRows = 500

// Renderer turns remote results into Markdown. It is stateless apart from
// the display language, so every method is deterministic given its input.
type Renderer struct {
	lang language.Tag
}

// New returns a Renderer for the given display language.
func New(lang language.Tag) *Renderer {
	return &Renderer{lang: lang}
}

// NewFromEnv returns a Renderer using the language detected from the
// environment.
func NewFromEnv() *Renderer {
	return New(DetectLanguage())
}

// ColumnLabel converts a 0-based column index into its spreadsheet-style
// letter label using bijective base-26: 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnLabel(index int) string {
	label := ""
	n := index
	for {
		label = string(rune('A'+n%26)) + label
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return label
}

// Table renders a rectangular-ish block as a Markdown table with synthesized
// A, B, C column headers. The column count is the width of the widest row;
// narrower rows are padded with empty cells.
func (r *Renderer) Table(values [][]any) string {
	if len(values) == 0 {
		return msgNoData.in(r.lang)
	}

	width := 0
	for _, row := range values {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return msgNoData.in(r.lang)
	}

	header := make([]string, width)
	for i := range header {
		header[i] = ColumnLabel(i)
	}
	return r.tableWithHeader(header, values, width)
}

// TableWithHeader renders a table with an explicit header row. The column
// count is the larger of the header width and the widest data row.
func (r *Renderer) TableWithHeader(header []string, values [][]any) string {
	width := len(header)
	for _, row := range values {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([]string, width)
	copy(padded, header)
	for i := len(header); i < width; i++ {
		padded[i] = ColumnLabel(i)
	}
	return r.tableWithHeader(padded, values, width)
}

func (r *Renderer) tableWithHeader(header []string, values [][]any, width int) string {
	var sb strings.Builder

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" ")
			sb.WriteString(c)
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	escaped := make([]string, width)
	for i, h := range header {
		escaped[i] = EscapeCell(h)
	}
	writeRow(escaped)

	separator := make([]string, width)
	for i := range separator {
		separator[i] = "---"
	}
	writeRow(separator)

	total := len(values)
	shown := values
	if total > MaxTableRows {
		shown = values[:MaxTableRows]
	}

	row := make([]string, width)
	for _, cells := range shown {
		for i := 0; i < width; i++ {
			if i < len(cells) {
				row[i] = EscapeCell(formatValue(cells[i]))
			} else {
				row[i] = ""
			}
		}
		writeRow(row)
	}

	if total > MaxTableRows {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(msgTruncated.in(r.lang), MaxTableRows, total, total-MaxTableRows))
		sb.WriteString("\n")
	}
	return sb.String()
}

// EscapeCell makes a cell value safe inside a Markdown table row: pipes are
// escaped and newlines collapsed so they cannot corrupt the table structure.
func EscapeCell(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "\r", "<br>")
	return s
}

// formatValue renders a single cell value. Cell values are text, numbers,
// booleans or empty.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers: render integers without a trailing ".000000".
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", val)
	}
}
