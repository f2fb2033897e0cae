// Package mcp serves the query engine to agent clients over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/dataset"
	"github.com/doctorew/pocket-morties/pkg/mcp/tools"
)

// ServerName is reported to clients during initialization.
const ServerName = "pocket-morties"

const instructions = "Read-only access to the Pocket Morties dataset. " +
	"Use sorted_pocket_morties for best/worst questions and search_pocket_morties for filtering."

// Server wraps the mcp-go MCPServer with every tool registered.
type Server struct {
	mcp    *server.MCPServer
	logger *zap.Logger
}

// NewServer creates the MCP server and registers the health and record tools
// against source. Tool handler panics are recovered into tool errors.
func NewServer(version string, source dataset.Source, logger *zap.Logger) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	tools.RegisterHealthTool(mcpServer, version, source)
	tools.RegisterMortyTools(mcpServer, &tools.MortyToolDeps{
		Source: source,
		Logger: logger.Named("mcp.tools"),
	})

	return &Server{
		mcp:    mcpServer,
		logger: logger,
	}
}

// MCP returns the underlying MCPServer.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// NewStreamableHTTPServer creates a stateless HTTP transport for this server.
// The HTTP mux handles routing to /mcp, so no endpoint path is configured here.
func (s *Server) NewStreamableHTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s.mcp,
		server.WithStateLess(true),
	)
}
