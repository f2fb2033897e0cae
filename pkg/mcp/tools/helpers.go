package tools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// trimString removes leading and trailing whitespace from a string.
func trimString(s string) string {
	return strings.TrimSpace(s)
}

// getOptionalInt returns a pointer to an integer argument, or nil when the
// argument is absent or not a number. JSON numbers arrive as float64.
func getOptionalInt(req mcp.CallToolRequest, key string) *int {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	}
	return nil
}

// getOptionalStrings returns a string array argument with blank entries
// dropped, or nil when absent.
func getOptionalStrings(req mcp.CallToolRequest, key string) []string {
	values := req.GetStringSlice(key, nil)
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = trimString(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
