package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/doctorew/pocket-morties/pkg/dataset"
)

type healthResult struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Dataset string `json:"dataset"`
	Records int    `json:"records"`
}

// RegisterHealthTool adds a health check tool to the MCP server.
// The tool returns the server version and whether the dataset can be read.
// A failing dataset is reported in the result, not as a tool error.
func RegisterHealthTool(s *server.MCPServer, version string, source dataset.Source) {
	tool := mcp.NewTool(
		"health",
		mcp.WithDescription("Returns server health status, version and dataset reachability"),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := healthResult{Status: "ok", Version: version, Dataset: "ok"}

		records, err := source.Fetch(ctx)
		if err != nil {
			res.Status = "degraded"
			res.Dataset = err.Error()
		} else {
			res.Records = len(records)
		}

		result, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal health result: %w", err)
		}
		return mcp.NewToolResultText(string(result)), nil
	})
}
