// Package mcpserver exposes the analysis engine over the Model Context
// Protocol.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the augur analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "augur",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_project",
		Description: "Run the full dependency and duplication analysis over a project: " +
			"entity graph, dead code, duplicate groups, naming mismatches, and graph statistics.",
	}, handleAnalyzeProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_deadcode",
		Description: "Find functions and classes unreachable from any entry point " +
			"(main, __main__, run/start names).",
	}, handleAnalyzeDeadcode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_duplicates",
		Description: "Group structurally identical functions and classes, recommend a keeper " +
			"per group, and list near-duplicate clone pairs.",
	}, handleAnalyzeDuplicates)
}
