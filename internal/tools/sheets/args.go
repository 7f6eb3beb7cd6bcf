package sheets

import (
	"fmt"
	"strings"

	"github.com/mnakata/mcp-gsheets/internal/gsheets"
)

// ArgumentError reports every violated field of a tool call in one error,
// so callers see the full list rather than the first failure.
type ArgumentError struct {
	Violations []FieldViolation
}

// FieldViolation names one offending argument.
type FieldViolation struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// argParser accumulates violations while pulling typed values out of the raw
// argument map. Call err() last.
type argParser struct {
	args       map[string]any
	violations []FieldViolation
}

func newArgParser(args map[string]any) *argParser {
	if args == nil {
		args = map[string]any{}
	}
	return &argParser{args: args}
}

func (p *argParser) violate(field, message string) {
	p.violations = append(p.violations, FieldViolation{Field: field, Message: message})
}

func (p *argParser) err() error {
	if len(p.violations) == 0 {
		return nil
	}
	return &ArgumentError{Violations: p.violations}
}

// requiredString returns a non-empty string argument, recording a violation
// when it is missing, empty or of the wrong type.
func (p *argParser) requiredString(name string) string {
	raw, ok := p.args[name]
	if !ok || raw == nil {
		p.violate(name, "required")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		p.violate(name, fmt.Sprintf("expected string, got %T", raw))
		return ""
	}
	if s == "" {
		p.violate(name, "required")
	}
	return s
}

// requiredInt returns an integer argument. JSON numbers arrive as float64;
// fractional values are rejected. Zero is a valid value.
func (p *argParser) requiredInt(name string) int64 {
	raw, ok := p.args[name]
	if !ok || raw == nil {
		p.violate(name, "required")
		return 0
	}
	return p.toInt(name, raw)
}

// optionalInt returns an integer argument or def when absent.
func (p *argParser) optionalInt(name string, def int64) int64 {
	raw, ok := p.args[name]
	if !ok || raw == nil {
		return def
	}
	return p.toInt(name, raw)
}

func (p *argParser) toInt(name string, raw any) int64 {
	f, ok := raw.(float64)
	if !ok {
		p.violate(name, fmt.Sprintf("expected number, got %T", raw))
		return 0
	}
	if f != float64(int64(f)) {
		p.violate(name, "expected an integer")
		return 0
	}
	return int64(f)
}

// requiredValues returns a 2D array of cell values. Rows may be ragged;
// cells must be text, number, boolean or null.
func (p *argParser) requiredValues(name string) [][]any {
	raw, ok := p.args[name]
	if !ok || raw == nil {
		p.violate(name, "required")
		return nil
	}
	return p.toValues(name, raw)
}

func (p *argParser) toValues(name string, raw any) [][]any {
	rows, ok := raw.([]any)
	if !ok {
		p.violate(name, fmt.Sprintf("expected array of rows, got %T", raw))
		return nil
	}
	if len(rows) == 0 {
		p.violate(name, "must contain at least one row")
		return nil
	}

	values := make([][]any, 0, len(rows))
	for i, rawRow := range rows {
		row, ok := rawRow.([]any)
		if !ok {
			p.violate(fmt.Sprintf("%s[%d]", name, i), fmt.Sprintf("expected array of cells, got %T", rawRow))
			continue
		}
		for j, cell := range row {
			switch cell.(type) {
			case nil, string, float64, bool:
			default:
				p.violate(fmt.Sprintf("%s[%d][%d]", name, i, j), fmt.Sprintf("unsupported cell type %T", cell))
			}
		}
		values = append(values, row)
	}
	return values
}

// requiredUpdates returns the range+values pairs for batch_update_cells.
func (p *argParser) requiredUpdates(name string) []gsheets.ValueInput {
	raw, ok := p.args[name]
	if !ok || raw == nil {
		p.violate(name, "required")
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		p.violate(name, fmt.Sprintf("expected array, got %T", raw))
		return nil
	}
	if len(items) == 0 {
		p.violate(name, "must contain at least one update")
		return nil
	}

	updates := make([]gsheets.ValueInput, 0, len(items))
	for i, rawItem := range items {
		item, ok := rawItem.(map[string]any)
		if !ok {
			p.violate(fmt.Sprintf("%s[%d]", name, i), fmt.Sprintf("expected object with range and values, got %T", rawItem))
			continue
		}
		rng, ok := item["range"].(string)
		if !ok || rng == "" {
			p.violate(fmt.Sprintf("%s[%d].range", name, i), "required")
			continue
		}
		values := p.toValues(fmt.Sprintf("%s[%d].values", name, i), item["values"])
		if values == nil {
			continue
		}
		updates = append(updates, gsheets.ValueInput{Range: rng, Values: values})
	}
	return updates
}

// requiredFormat parses the sparse format object for update_formatting.
// Only the keys explicitly present become set fields.
func (p *argParser) requiredFormat(name string) *gsheets.CellFormat {
	raw, ok := p.args[name]
	if !ok || raw == nil {
		p.violate(name, "required")
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		p.violate(name, fmt.Sprintf("expected object, got %T", raw))
		return nil
	}

	before := len(p.violations)
	format := &gsheets.CellFormat{}
	for key, val := range obj {
		field := name + "." + key
		switch key {
		case "bold":
			format.Bold = p.boolField(field, val)
		case "italic":
			format.Italic = p.boolField(field, val)
		case "strikethrough":
			format.Strikethrough = p.boolField(field, val)
		case "font_size":
			if f, ok := val.(float64); ok && f == float64(int64(f)) && f > 0 {
				size := int64(f)
				format.FontSize = &size
			} else {
				p.violate(field, "expected a positive integer")
			}
		case "font_family":
			if s, ok := val.(string); ok && s != "" {
				format.FontFamily = &s
			} else {
				p.violate(field, "expected a non-empty string")
			}
		case "foreground_color":
			format.Foreground = p.colorField(field, val)
		case "background_color":
			format.Background = p.colorField(field, val)
		case "horizontal_alignment":
			if s, ok := val.(string); ok && validAlignment(s) {
				upper := strings.ToUpper(s)
				format.Alignment = &upper
			} else {
				p.violate(field, "expected one of LEFT, CENTER, RIGHT")
			}
		case "number_format":
			format.NumberFormat = p.numberFormatField(field, val)
		default:
			p.violate(field, "unrecognized attribute")
		}
	}

	if len(p.violations) == before && format.IsEmpty() {
		p.violate(name, "must set at least one attribute")
	}
	return format
}

func (p *argParser) boolField(field string, val any) *bool {
	b, ok := val.(bool)
	if !ok {
		p.violate(field, fmt.Sprintf("expected boolean, got %T", val))
		return nil
	}
	return &b
}

// colorField parses a {red, green, blue} object with 0-1 channels.
func (p *argParser) colorField(field string, val any) *gsheets.RGB {
	obj, ok := val.(map[string]any)
	if !ok {
		p.violate(field, "expected an object with red, green, blue channels")
		return nil
	}
	color := &gsheets.RGB{}
	for name, target := range map[string]*float64{"red": &color.Red, "green": &color.Green, "blue": &color.Blue} {
		ch, ok := obj[name].(float64)
		if !ok || ch < 0 || ch > 1 {
			p.violate(field+"."+name, "expected a number between 0 and 1")
			continue
		}
		*target = ch
	}
	return color
}

func (p *argParser) numberFormatField(field string, val any) *gsheets.NumberFormat {
	obj, ok := val.(map[string]any)
	if !ok {
		p.violate(field, "expected an object with type and optional pattern")
		return nil
	}
	nf := &gsheets.NumberFormat{}
	if t, ok := obj["type"].(string); ok && t != "" {
		nf.Type = strings.ToUpper(t)
	} else {
		p.violate(field+".type", "required")
	}
	if pat, ok := obj["pattern"].(string); ok {
		nf.Pattern = pat
	}
	return nf
}

func validAlignment(s string) bool {
	switch strings.ToUpper(s) {
	case "LEFT", "CENTER", "RIGHT":
		return true
	}
	return false
}
