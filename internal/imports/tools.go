package imports

import (
	// Import tool packages so their init functions register with the registry
	_ "github.com/mnakata/mcp-gsheets/internal/tools/sheets"
)
