package cli

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToolDef() mcp.Tool {
	return mcp.NewTool(
		"read_values",
		mcp.WithDescription("Read cell values from a range."),
		mcp.WithString("spreadsheet_id", mcp.Required()),
		mcp.WithString("range", mcp.Required()),
		mcp.WithNumber("start_row"),
		mcp.WithBoolean("verbose"),
		mcp.WithArray("values"),
		mcp.WithObject("format"),
	)
}

func TestParseArgs_Flags(t *testing.T) {
	params, err := parseArgs([]string{
		"--spreadsheet-id=sp1",
		"--range", "Sheet1!A1:B2",
		"--start-row=3",
		"--verbose",
	}, testToolDef())
	require.NoError(t, err)

	assert.Equal(t, "sp1", params["spreadsheet_id"])
	assert.Equal(t, "Sheet1!A1:B2", params["range"])
	// Numbers arrive as float64, exactly as they would over the MCP wire.
	assert.Equal(t, float64(3), params["start_row"])
	assert.Equal(t, true, params["verbose"])
}

func TestParseArgs_JSONObject(t *testing.T) {
	params, err := parseArgs([]string{
		`{"spreadsheet_id":"sp1","range":"Sheet1!A1","start_row":2}`,
	}, testToolDef())
	require.NoError(t, err)
	assert.Equal(t, "sp1", params["spreadsheet_id"])
	assert.Equal(t, float64(2), params["start_row"])
}

func TestParseArgs_FlagsTakePrecedenceOverJSON(t *testing.T) {
	params, err := parseArgs([]string{
		"--range=Sheet1!B2",
		`{"spreadsheet_id":"sp1","range":"Sheet1!A1"}`,
	}, testToolDef())
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!B2", params["range"])
	assert.Equal(t, "sp1", params["spreadsheet_id"])
}

func TestParseArgs_Errors(t *testing.T) {
	_, err := parseArgs([]string{"{not json"}, testToolDef())
	assert.Error(t, err)

	_, err = parseArgs([]string{"stray"}, testToolDef())
	assert.Error(t, err)

	_, err = parseArgs([]string{"--range"}, testToolDef())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a value")
}

func TestCoerceValue(t *testing.T) {
	assert.Equal(t, float64(7), coerceValue("7", "number"))
	assert.Equal(t, 1.5, coerceValue("1.5", "number"))
	assert.Equal(t, true, coerceValue("yes", "boolean"))
	assert.Equal(t, false, coerceValue("0", "boolean"))
	assert.Equal(t, []any{[]any{"a", "b"}}, coerceValue(`[["a","b"]]`, "array"))
	assert.Equal(t, map[string]any{"bold": true}, coerceValue(`{"bold":true}`, "object"))
	assert.Equal(t, "plain", coerceValue("plain", "string"))
	// Values that fail coercion pass through as strings.
	assert.Equal(t, "abc", coerceValue("abc", "number"))
}

func TestToFlagName(t *testing.T) {
	assert.Equal(t, "spreadsheet-id", toFlagName("spreadsheet_id"))
	assert.Equal(t, "start-row", toFlagName("start_row"))
	assert.Equal(t, "camel-case", toFlagName("camelCase"))
	assert.Equal(t, "plain", toFlagName("plain"))
}
