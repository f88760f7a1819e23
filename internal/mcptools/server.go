package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewMergeMCPServer creates an MCP server with the merge_scripts tool
// registered.
func NewMergeMCPServer(svc *MergeService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "assmerge",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_scripts",
		Description: "Three-way merge of Advanced SubStation Alpha subtitle scripts. Writes the merged script to output and reports whether events or styles conflicted.",
	}, svc.MergeScripts)

	return server
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
